// mommy runs a command and answers its outcome with an affirmation.
//
// Usage:
//
//	mommy <command> [args ...]
//	mommy <exit_code>              (with SHELL_MOMMYS_NEEDY=1)
//	mommy i mean <role>
//
// Examples:
//
//	mommy cargo build
//	mommy ls -la please
//	SHELL_MOMMYS_NEEDY=1 mommy $?
//
// Copied or linked under another name the binary takes the role from that
// name (daddy, cargo-mommy, mommy-shell).
package main

import (
	"os"

	mommy "github.com/pable/shell-mommy"
)

func main() {
	os.Exit(mommy.Main(mommy.DetectIdentity(os.Args[0])))
}
