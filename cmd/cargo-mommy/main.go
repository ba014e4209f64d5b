// cargo-mommy is a cargo subcommand that runs cargo and answers the outcome
// with an affirmation.
//
// Usage:
//
//	cargo mommy <cargo-command> [args...]
//
// Settings are read from CARGO_MOMMYS_* variables. --quiet or -q silences the
// affirmation and is still passed on to cargo.
package main

import (
	"os"

	mommy "github.com/pable/shell-mommy"
)

func main() {
	id := mommy.DetectIdentity(os.Args[0])
	id.Mode = mommy.ModeCargo
	os.Exit(mommy.Main(id))
}
