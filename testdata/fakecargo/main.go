// fakecargo stands in for cargo in the integration tests. It prints the
// arguments and the recursion depth it was given and exits with a chosen
// status.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "fakecargo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	build := &cobra.Command{
		Use:   "build",
		Short: "Print what was received and succeed",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("args=%s\n", strings.Join(os.Args[1:], " "))
			fmt.Printf("depth=%s\n", os.Getenv("CARGO_MOMMYS_RECURSION_DEPTH"))
		},
	}
	build.Flags().BoolP("quiet", "q", false, "accepted and ignored")
	root.AddCommand(build)

	var code int
	exit := &cobra.Command{
		Use:   "exit",
		Short: "Exit with --code",
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(code)
		},
	}
	exit.Flags().IntVar(&code, "code", 1, "exit status")
	root.AddCommand(exit)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
