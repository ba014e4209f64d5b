package mommy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// transformArgs reports whether args are exactly "i mean <role>" and returns
// the role.
func transformArgs(args []string) (string, bool) {
	if len(args) != 3 || args[0] != "i" || args[1] != "mean" {
		return "", false
	}
	return args[2], true
}

// TransformTarget is the path a copy of exe should take to answer to role in
// mode m: a sibling named role, or cargo-role for the cargo subcommand.
func TransformTarget(exe string, m Mode, role string) string {
	name := role
	if m == ModeCargo {
		name = "cargo-" + role
	}
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(exe), name)
}

// Transform copies the binary at exe to its role sibling and marks it
// executable. It returns the new path.
func Transform(exe string, m Mode, role string) (string, error) {
	if !isRoleWord(role) {
		return "", fmt.Errorf("role %q must be a single lowercase word", role)
	}
	dst := TransformTarget(exe, m, role)
	if dst == exe {
		return "", fmt.Errorf("already answering to %s", role)
	}
	if err := copyExecutable(exe, dst); err != nil {
		return "", fmt.Errorf("transform into %s: %w", role, err)
	}
	return dst, nil
}

func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile's mode is filtered by the umask and ignored for existing files.
	return os.Chmod(dst, 0o755)
}

// dropPlease removes every argument that is literally "please".
func dropPlease(args []string) []string {
	return slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == "please" })
}
