// mommy-shell starts an interactive shell in which every command is answered
// with an affirmation.
//
// Usage:
//
//	mommy-shell [--prompt <string>] [--history <file>] [--env-builtin <name>]
//
// Examples:
//
//	mommy-shell
//	mommy-shell --prompt "~> "
//	mommy-shell --env-builtin ""
package main

import (
	"os"

	mommy "github.com/pable/shell-mommy"
)

func main() {
	id := mommy.DetectIdentity(os.Args[0])
	id.Mode = mommy.ModeInteractive
	os.Exit(mommy.Main(id))
}
