package mommy

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/muesli/termenv"
)

// RecursionLimit is the nesting depth at which cargo-mommy refuses to run
// itself again.
const RecursionLimit = 100

// Invocation is one run of a one-shot front-end. Everything it touches is a
// field so tests can run it without a real environment or terminal; zero
// fields fall back to the process's own.
type Invocation struct {
	Identity Identity

	// Args are the command-line arguments without the program name.
	Args []string

	// Env is consulted for settings. It defaults to [OSEnv].
	Env Source

	// ConfigFile is the optional config layer beneath Env. When nil it is
	// loaded from [ConfigFilePath].
	ConfigFile Source

	Stdout io.Writer
	Stderr io.Writer

	Rand Rand

	// Profile selects how affirmations are styled. When nil it is detected
	// from Stderr.
	Profile *termenv.Profile

	// Run executes the wrapped command. It defaults to [RunPlain].
	Run Runner

	// Executable is the path copied by "i mean <role>". It defaults to
	// os.Executable.
	Executable string

	// Logger overrides the debug logger built from the DEBUG setting.
	Logger *slog.Logger
}

// Execute runs the invocation to completion and returns the process exit
// code: the wrapped command's, the needy argument, or one of [ExitUsage] and
// [ExitRecursion].
func (inv *Invocation) Execute() int {
	inv.defaults()

	file := inv.ConfigFile
	var fileErr error
	if file == nil {
		file, fileErr = inv.loadConfigFile()
	}
	s := Resolve(inv.Identity, inv.Env, file)

	logger := inv.Logger
	if logger == nil {
		logger = NewLogger(inv.Stderr, s.Debug)
	}
	if fileErr != nil {
		logger.Debug("config file ignored", "err", fileErr)
	}
	logger.Debug("settings resolved", "mode", inv.Identity.Mode, "role", inv.Identity.Role,
		"moods", s.Moods, "needy", s.Needy, "only_negative", s.OnlyNegative)

	if inv.Identity.Mode == ModeCargo && s.RecursionDepth >= RecursionLimit {
		diag(inv.Stderr, "Recursion limit exceeded! %s is stuck in a loop~", s.Roles[0])
		return ExitRecursion
	}

	args := inv.Args
	quiet := false
	if inv.Identity.Mode == ModeCargo {
		if len(args) > 0 && (args[0] == inv.Identity.Role || args[0] == "cargo") {
			args = args[1:]
		}
		quiet = slices.Contains(args, "--quiet") || slices.Contains(args, "-q")
	}

	if len(args) == 0 {
		diag(inv.Stderr, "%v", &UsageError{Usage: inv.usage(s)})
		return ExitUsage
	}

	if role, ok := transformArgs(args); ok {
		dst, err := Transform(inv.Executable, inv.Identity.Mode, role)
		if err != nil {
			diag(inv.Stderr, "%v", err)
			return ExitUsage
		}
		_, _ = fmt.Fprintf(inv.Stdout, "Created new binary: %s\n", dst)
		return 0
	}

	args = dropPlease(args)
	code, err := inv.outcome(args, s)
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			diag(inv.Stderr, "%v", usageErr)
			return ExitUsage
		}
		diag(inv.Stderr, "%v", err)
	}
	logger.Debug("command finished", "exit_code", code)

	if quiet {
		return code
	}
	engine := &Engine{
		Settings: s,
		Catalog:  Load(s.AffirmationsPath, logger),
		Styler:   inv.styler(),
		Rand:     inv.Rand,
		Logger:   logger,
	}
	engine.Write(inv.Stderr, code)
	return code
}

// outcome returns the exit code that drives the affirmation: the needy
// argument, or the wrapped command's.
func (inv *Invocation) outcome(args []string, s Settings) (int, error) {
	if len(args) == 0 {
		return ExitUsage, &UsageError{Usage: inv.usage(s), Err: ErrEmptyCommand}
	}
	if s.Needy {
		if len(args) > 1 {
			return ExitUsage, &UsageError{Usage: inv.usage(s), Err: fmt.Errorf("%w: got %q", ErrExtraArguments, args)}
		}
		code, err := strconv.Atoi(args[0])
		if err != nil {
			return ExitUsage, &UsageError{Usage: inv.usage(s), Err: fmt.Errorf("%w: %q", ErrMissingExitCode, args[0])}
		}
		// The process can only report the low 8 bits.
		if code < 0 || code > 255 {
			return ExitUsage, &UsageError{Usage: inv.usage(s), Err: fmt.Errorf("%w: %d", ErrExitCodeRange, code)}
		}
		return code, nil
	}

	env := inv.environ()
	switch inv.Identity.Mode {
	case ModeCargo:
		cargo := "cargo"
		if v, ok := inv.Env.Lookup("CARGO"); ok && v != "" {
			cargo = v
		}
		env = append(env, fmt.Sprintf("%s=%d", EnvKey(ModeCargo, KeyRecursionDepth), s.RecursionDepth+1))
		code, err := inv.Run(cargo, args, env)
		if err != nil {
			return code, fmt.Errorf("run %s: %w", cargo, err)
		}
		return code, nil
	default:
		code, err := inv.Run("bash", shellArgs(args, s.AliasesPath), env)
		if err != nil {
			return code, fmt.Errorf("run bash: %w", err)
		}
		return code, nil
	}
}

func (inv *Invocation) usage(s Settings) string {
	switch {
	case inv.Identity.Mode == ModeCargo:
		return fmt.Sprintf("cargo %s <cargo-command> [args...]", inv.Identity.Role)
	case s.Needy:
		return inv.Identity.Role + " <exit_code>"
	default:
		return inv.Identity.Role + " <command> [args ...]"
	}
}

func (inv *Invocation) defaults() {
	if inv.Env == nil {
		inv.Env = OSEnv
	}
	if inv.Stdout == nil {
		inv.Stdout = os.Stdout
	}
	if inv.Stderr == nil {
		inv.Stderr = os.Stderr
	}
	if inv.Rand == nil {
		inv.Rand = NewRand()
	}
	if inv.Run == nil {
		inv.Run = RunPlain
	}
	if inv.Executable == "" {
		if exe, err := os.Executable(); err == nil {
			inv.Executable = exe
		}
	}
	if inv.Identity.Role == "" {
		inv.Identity.Role = defaultRole
	}
}

func (inv *Invocation) loadConfigFile() (Source, error) {
	path := ConfigFilePath(inv.Identity.Mode, inv.Env)
	if path == "" {
		return nil, nil
	}
	return LoadConfigFile(path)
}

func (inv *Invocation) styler() Styler {
	if inv.Profile != nil {
		return Styler{Profile: *inv.Profile}
	}
	return NewStyler(inv.Stderr)
}

func (inv *Invocation) environ() []string {
	return environOf(inv.Env)
}
