package mommy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/muesli/termenv"
)

// ShellConfig configures the interactive shell. Zero fields take defaults
// when passed to [NewShell].
type ShellConfig struct {
	// Identity names the role; Mode is forced to ModeInteractive.
	Identity Identity

	// Prompt replaces the default "<role>> " prompt.
	Prompt string

	// HistoryFile defaults to ~/.<binary>_history.
	HistoryFile string

	// EnvBuiltin, when non-empty, enables a session env built-in under this
	// name: "list", "set KEY VALUE" and "unset KEY".
	EnvBuiltin string

	// Env is the base environment beneath the session overrides. It
	// defaults to [OSEnv].
	Env Source

	// ConfigFile is the optional config layer. When nil it is loaded from
	// [ConfigFilePath] once, at construction.
	ConfigFile Source

	Stdout io.Writer
	Stderr io.Writer
	Rand   Rand

	// Profile selects how affirmations are styled. When nil it is detected
	// from Stderr.
	Profile *termenv.Profile

	// Run executes each command line. It defaults to [RunTerminal].
	Run Runner
}

// Shell is a readline loop that runs every line through bash and answers
// the outcome with an affirmation. Create one with [NewShell].
type Shell struct {
	cfg          ShellConfig
	sessionEnv   map[string]string // overrides set with the env built-in
	lastExitCode int
}

// NewShell creates a Shell from cfg. It never returns nil.
func NewShell(cfg ShellConfig) *Shell {
	cfg.Identity.Mode = ModeInteractive
	if cfg.Identity.Role == "" {
		cfg.Identity.Role = defaultRole
	}
	if cfg.Env == nil {
		cfg.Env = OSEnv
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Rand == nil {
		cfg.Rand = NewRand()
	}
	if cfg.Run == nil {
		cfg.Run = RunTerminal
	}
	if cfg.Prompt == "" {
		cfg.Prompt = cfg.Identity.Role + "> "
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = defaultHistoryFilePath(cfg.Identity.Role + "-shell")
	}
	if cfg.ConfigFile == nil {
		if path := ConfigFilePath(ModeInteractive, cfg.Env); path != "" {
			if src, err := LoadConfigFile(path); err == nil {
				cfg.ConfigFile = src
			} else {
				NewLogger(cfg.Stderr, Resolve(cfg.Identity, cfg.Env, nil).Debug).
					Debug("config file ignored", "err", err)
			}
		}
	}
	return &Shell{cfg: cfg, sessionEnv: make(map[string]string)}
}

// Run starts the loop and blocks until Ctrl-D or "exit". It returns an error
// only when readline cannot start or fails while reading.
func (s *Shell) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.cfg.Prompt,
		HistoryFile:     s.cfg.HistoryFile,
		AutoComplete:    &completer{shell: s},
		InterruptPrompt: "",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("mommy-shell: initialise readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl-C at the prompt only clears the line.
			continue
		}
		if err != nil {
			return fmt.Errorf("mommy-shell: readline: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}

		if s.execute(line) {
			rl.SetPrompt(s.prompt())
		}
	}
	return nil
}

// prompt is the configured prompt, green after a success and red after a
// failure.
func (s *Shell) prompt() string {
	code := ColorGreen
	if s.lastExitCode != 0 {
		code = ColorRed
	}
	return Colorize(s.cfg.Prompt, code)
}

// execute runs one line. It reports whether a command ran, which is when the
// prompt color may change.
func (s *Shell) execute(line string) bool {
	tokens, err := shlex.Split(line)
	if err != nil {
		diag(s.cfg.Stderr, "mommy-shell: parse error: %v", err)
		return false
	}
	kept := dropPlease(tokens)
	if len(kept) == 0 {
		return false
	}

	// The env built-in never reaches bash and is not affirmed.
	if s.handleEnvBuiltin(kept) {
		return false
	}

	settings := s.settings()
	logger := NewLogger(s.cfg.Stderr, settings.Debug)

	var code int
	if kept[0] == "cd" && !strings.ContainsAny(line, shellMetachars) {
		code = s.changeDir(kept[1:])
	} else {
		script := []string{line}
		if len(kept) != len(tokens) {
			script = kept
		}
		code, err = s.cfg.Run("bash", shellArgs(script, settings.AliasesPath), s.buildEnv())
		if err != nil {
			diag(s.cfg.Stderr, "mommy-shell: %v", err)
		}
	}
	s.lastExitCode = code
	logger.Debug("command finished", "exit_code", code)

	engine := &Engine{
		Settings: settings,
		Catalog:  Load(settings.AffirmationsPath, logger),
		Styler:   s.styler(),
		Rand:     s.cfg.Rand,
		Logger:   logger,
	}
	engine.Write(s.cfg.Stderr, code)
	return true
}

// settings resolves the settings for the next command, with session
// overrides taking precedence over the base environment.
func (s *Shell) settings() Settings {
	return Resolve(s.cfg.Identity, Layered(MapSource(s.sessionEnv), s.cfg.Env), s.cfg.ConfigFile)
}

func (s *Shell) styler() Styler {
	if s.cfg.Profile != nil {
		return Styler{Profile: *s.cfg.Profile}
	}
	return NewStyler(s.cfg.Stderr)
}

// shellMetachars mark a line that bash has to interpret, so a leading cd in
// such a line is left to bash.
const shellMetachars = ";&|<>()$`"

// changeDir implements the cd built-in; a child shell could not change this
// process's working directory.
func (s *Shell) changeDir(args []string) int {
	var dir string
	switch len(args) {
	case 0:
		home, err := os.UserHomeDir()
		if err != nil {
			diag(s.cfg.Stderr, "cd: %v", err)
			return 1
		}
		dir = home
	case 1:
		dir = args[0]
	default:
		diag(s.cfg.Stderr, "cd: too many arguments")
		return 1
	}
	if err := os.Chdir(dir); err != nil {
		diag(s.cfg.Stderr, "cd: %v", err)
		return 1
	}
	return 0
}

// defaultHistoryFilePath returns ~/.{name}_history. Errors from
// os.UserHomeDir are ignored; readline treats an empty HistoryFile as no
// persistence.
func defaultHistoryFilePath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(home, "."+base+"_history")
}
