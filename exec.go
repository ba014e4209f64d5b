package mommy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// Runner starts name with args and env, waits for it, and returns its exit
// code. err is set only when the process could not be run at all.
type Runner func(name string, args []string, env []string) (exitCode int, err error)

// RunPlain is a Runner that hands the child this process's stdio.
func RunPlain(name string, args []string, env []string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = env
	return runPlain(cmd)
}

// RunTerminal is a Runner that puts the child behind a PTY when stdin is a
// real terminal, so interactive programs and isatty checks behave as they
// would at a normal prompt. It falls back to [RunPlain] otherwise.
func RunTerminal(name string, args []string, env []string) (int, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		cmd := exec.Command(name, args...)
		cmd.Env = env
		// On error pty.Start has not started cmd, so a fresh plain run is safe.
		if ptmx, err := pty.Start(cmd); err == nil {
			return runWithPTY(cmd, ptmx)
		}
	}
	return RunPlain(name, args, env)
}

// runWithPTY drives an already-started child through its PTY master.
//
// term.MakeRaw disables ISIG on the real terminal, so Ctrl-C arrives as byte
// 0x03 and is forwarded to the master; the slave's line discipline turns it
// into SIGINT for the child. This process never sees the signal.
func runWithPTY(cmd *exec.Cmd, ptmx *os.File) (int, error) {
	defer func() { _ = ptmx.Close() }()

	winchC := make(chan os.Signal, 1)
	signal.Notify(winchC, syscall.SIGWINCH)
	defer func() {
		signal.Stop(winchC)
		close(winchC)
	}()
	go func() {
		for range winchC {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winchC <- syscall.SIGWINCH

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		_ = cmd.Wait()
		return 0, fmt.Errorf("set raw mode: %w", err)
	}
	defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()

	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()
	// Returns with EIO once the slave side closes.
	_, _ = io.Copy(os.Stdout, ptmx)

	return exitStatus(cmd.Wait())
}

// runPlain runs cmd with inherited stdio. SIGINT is ignored here while the
// child runs; the terminal delivers it to the whole foreground process group,
// so the child still gets it.
func runPlain(cmd *exec.Cmd) (int, error) {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	return exitStatus(cmd.Run())
}

// exitStatus converts the result of Wait or Run into an exit code. A child
// killed by a signal has no code of its own and reports 1.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, err
}

// shellArgs builds the bash arguments for a wrapped command line, sourcing
// the aliases file first when one is configured.
func shellArgs(args []string, aliases string) []string {
	script := strings.Join(args, " ")
	if aliases != "" {
		script = fmt.Sprintf(`shopt -s expand_aliases; source "%s"; eval %s`, aliases, script)
	}
	return []string{"-c", script}
}
