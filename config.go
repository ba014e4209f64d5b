// Package mommy wraps a shell command (or a bare exit code) and answers its
// outcome with a randomly chosen, templated affirmation styled for the
// terminal. The wrapped command's exit code is always passed through, so the
// wrapper is safe to use in scripts:
//
//	$ mommy cargo build
//	you're doing so well~ 💖
//	$ echo $?
//	0
//
// All behavior is driven by environment variables under one of two fixed
// prefixes: SHELL_MOMMYS for the shell wrapper and the interactive shell,
// CARGO_MOMMYS for the cargo subcommand. An optional TOML config file fills
// in anything the environment leaves unset.
package mommy

import (
	"slices"
	"strconv"
	"strings"
)

// Mode selects the front-end and with it the environment prefix.
type Mode int

const (
	// ModeShell wraps a command line run through bash.
	ModeShell Mode = iota
	// ModeCargo runs as a cargo subcommand (cargo-mommy).
	ModeCargo
	// ModeInteractive is the readline loop started by mommy-shell.
	ModeInteractive
)

// Prefix returns the environment variable prefix for m.
func (m Mode) Prefix() string {
	if m == ModeCargo {
		return "CARGO_MOMMYS"
	}
	return "SHELL_MOMMYS"
}

func (m Mode) String() string {
	switch m {
	case ModeCargo:
		return "cargo"
	case ModeInteractive:
		return "interactive"
	default:
		return "shell"
	}
}

// Setting names, appended to the mode prefix with an underscore.
const (
	KeyRoles          = "ROLES"
	KeyPronouns       = "PRONOUNS"
	KeyLittle         = "LITTLE"
	KeyEmotes         = "EMOTES"
	KeyMoods          = "MOODS"
	KeyColor          = "COLOR"
	KeyColorRGB       = "COLOR_RGB"
	KeyStyle          = "STYLE"
	KeyAffirmations   = "AFFIRMATIONS"
	KeyAliases        = "ALIASES"
	KeyNeedy          = "NEEDY"
	KeyOnlyNegative   = "ONLY_NEGATIVE"
	KeyMoodMixing     = "MOOD_MIXING"
	KeyDebug          = "DEBUG"
	KeyRecursionDepth = "RECURSION_DEPTH"
	KeyConfig         = "CONFIG"
)

const (
	defaultRole    = "mommy"
	defaultMood    = "chill"
	defaultColor   = "white"
	defaultStyle   = "bold"
	defaultPronoun = "her"
	defaultLittle  = "girl"
)

var defaultEmotes = []string{"💖", "💗", "💓", "💞"}

// ColorSpec is one color candidate. Names and RGB triples are kept raw; the
// [Styler] decides whether they mean anything.
type ColorSpec struct {
	Value string
	RGB   bool
}

// StyleSet is one combination of style attributes, e.g. {bold, italic}.
type StyleSet []string

// Settings is the resolved configuration for one invocation. Every list
// field is non-empty. Settings is never mutated after [Resolve] returns it.
type Settings struct {
	// Roles, Pronouns, Little and Emotes feed the {roles}, {pronouns},
	// {little} and {emotes} placeholders.
	Roles    []string
	Pronouns []string
	Little   []string
	Emotes   []string

	// Moods lists the moods one is drawn from per invocation.
	Moods []string

	// Colors holds the color candidates. When COLOR_RGB is set it replaces
	// COLOR entirely.
	Colors []ColorSpec

	// Styles holds the style combinations; one is drawn per message.
	Styles []StyleSet

	// AffirmationsPath points at a custom catalog. Empty means the embedded
	// catalog.
	AffirmationsPath string

	// AliasesPath is sourced into bash before the wrapped command runs.
	AliasesPath string

	// Needy makes the sole argument an exit code instead of a command.
	Needy bool

	// OnlyNegative suppresses the message when the outcome is a success.
	OnlyNegative bool

	// MoodMixing occasionally blends thirsty lines into the ominous mood.
	MoodMixing bool

	// Debug turns on debug logging to stderr.
	Debug bool

	// RecursionDepth counts nested cargo-mommy invocations.
	RecursionDepth int
}

// Identity is what the invoking binary's name says about how to behave.
type Identity struct {
	Mode Mode
	Role string
}

// Resolve builds Settings for id from env, falling back to file (which may be
// nil) and then to built-in defaults. file is keyed by the lowercase setting
// name ("roles", "color_rgb", ...). Resolve never fails: values that do not
// parse are treated as absent.
func Resolve(id Identity, env Source, file Source) Settings {
	r := resolver{prefix: id.Mode.Prefix(), env: env, file: file}

	role := id.Role
	if role == "" {
		role = defaultRole
	}

	s := Settings{
		Roles:            r.list(KeyRoles, []string{role}),
		Pronouns:         r.list(KeyPronouns, []string{defaultPronoun}),
		Little:           r.list(KeyLittle, []string{defaultLittle}),
		Emotes:           r.list(KeyEmotes, defaultEmotes),
		Moods:            r.list(KeyMoods, []string{defaultMood}),
		AffirmationsPath: r.str(KeyAffirmations),
		AliasesPath:      r.str(KeyAliases),
		Needy:            r.flag(KeyNeedy),
		OnlyNegative:     r.flag(KeyOnlyNegative),
		MoodMixing:       r.flag(KeyMoodMixing),
		Debug:            r.flag(KeyDebug),
	}

	if rgb := r.list(KeyColorRGB, nil); len(rgb) > 0 {
		for _, v := range rgb {
			s.Colors = append(s.Colors, ColorSpec{Value: v, RGB: true})
		}
	} else {
		for _, v := range r.list(KeyColor, []string{defaultColor}) {
			s.Colors = append(s.Colors, ColorSpec{Value: v})
		}
	}

	for _, combo := range r.list(KeyStyle, []string{defaultStyle}) {
		s.Styles = append(s.Styles, splitTrim(combo, ","))
	}

	// Only the process environment carries the depth counter.
	if v, ok := r.envValue(KeyRecursionDepth); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.RecursionDepth = n
		}
	}

	return s
}

// EnvKey returns the full environment variable name for a setting in mode m.
func EnvKey(m Mode, name string) string {
	return m.Prefix() + "_" + name
}

type resolver struct {
	prefix string
	env    Source
	file   Source
}

func (r resolver) envValue(name string) (string, bool) {
	if r.env == nil {
		return "", false
	}
	v, ok := r.env.Lookup(r.prefix + "_" + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r resolver) lookup(name string) (string, bool) {
	if v, ok := r.envValue(name); ok {
		return v, true
	}
	if r.file == nil {
		return "", false
	}
	v, ok := r.file.Lookup(strings.ToLower(name))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r resolver) str(name string) string {
	v, _ := r.lookup(name)
	return strings.TrimSpace(v)
}

func (r resolver) flag(name string) bool {
	v, _ := r.lookup(name)
	return v == "1"
}

func (r resolver) list(name string, def []string) []string {
	v, ok := r.lookup(name)
	if !ok {
		return slices.Clone(def)
	}
	parts := splitTrim(v, "/")
	if len(parts) == 0 {
		return slices.Clone(def)
	}
	return parts
}

// splitTrim splits s on sep, trims each piece and drops the empty ones.
func splitTrim(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
