// Command hashtree builds hash trees over the lines of text files,
// and produces, verifies and compares them from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/gordian-engine/hashtree/cmd/hashtree/cmd"
)

func main() {
	rootCmd := cmd.RootCmd{}

	if err := rootCmd.Command().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
