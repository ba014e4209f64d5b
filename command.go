package mommy

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command returns the root command of a one-shot front-end. Flag parsing is
// disabled: every argument, flags included, belongs to the wrapped command.
// The invocation's exit code is stored in *code.
//
//	var code int
//	_ = mommy.Command(mommy.DetectIdentity(os.Args[0]), &code).Execute()
//	os.Exit(code)
func Command(id Identity, code *int) *cobra.Command {
	use := id.Role + " <command> [args ...]"
	short := "Run a command and hear how it went"
	if id.Mode == ModeCargo {
		use = "cargo " + id.Role + " <cargo-command> [args...]"
		short = "Run cargo and hear how it went"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: "Runs the given command, passes its exit code through, and prints an " +
			"affirmation to stderr chosen by whether it succeeded. Behavior is set " +
			"with " + id.Mode.Prefix() + "_* environment variables.",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := &Invocation{
				Identity: id,
				Args:     args,
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
			}
			*code = inv.Execute()
			return nil
		},
	}
}

// ShellCommand returns the root command of the interactive shell.
func ShellCommand(id Identity) *cobra.Command {
	cfg := ShellConfig{Identity: id}
	cmd := &cobra.Command{
		Use:   id.Role + "-shell",
		Short: "Start an interactive shell that affirms every command",
		Long: "Starts a readline shell with tab completion and persistent history. " +
			"Each line runs through bash and is answered with an affirmation.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Stdout = cmd.OutOrStdout()
			cfg.Stderr = cmd.ErrOrStderr()
			return NewShell(cfg).Run()
		},
	}
	bindShellFlags(cmd.Flags(), &cfg)
	return cmd
}

func bindShellFlags(fs *pflag.FlagSet, cfg *ShellConfig) {
	fs.StringVarP(&cfg.Prompt, "prompt", "p", "", `Prompt string (default: "<role>> ")`)
	fs.StringVar(&cfg.HistoryFile, "history", "", "History file path (default: ~/.<role>-shell_history)")
	fs.StringVar(&cfg.EnvBuiltin, "env-builtin", "env", `Name of the session env built-in ("" disables it). Supports: list, set KEY VALUE, unset KEY`)
}

// Main runs the front-end for id and returns the process exit code.
func Main(id Identity) int {
	if id.Mode == ModeInteractive {
		if err := ShellCommand(id).Execute(); err != nil {
			diag(os.Stderr, "%v", err)
			return 1
		}
		return 0
	}

	var code int
	if err := Command(id, &code).Execute(); err != nil {
		diag(os.Stderr, "%v", err)
		return 1
	}
	return code
}
