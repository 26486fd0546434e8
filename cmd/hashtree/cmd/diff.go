package cmd

import (
	"fmt"
	"os"

	"github.com/gordian-engine/hashtree"
	"github.com/spf13/cobra"
)

// DiffCmd prints the lines that differ between two equally long files.
type DiffCmd struct {
	root *RootCmd

	// flags
	IndexSetPath string
}

// Command returns the cobra command.
func (c *DiffCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file-a> <file-b>",
		Short: "Print the 0-based line numbers that differ between two files",
		Args:  cobra.ExactArgs(2),
		RunE:  c.RunE,
	}
	cmd.Flags().StringVar(&c.IndexSetPath, "index-set", "",
		"also write the differing line set in compact binary form to this file",
	)
	return cmd
}

// RunE builds both trees and diffs them.
func (c *DiffCmd) RunE(cmd *cobra.Command, args []string) error {
	a, err := c.root.loadTree(args[0])
	if err != nil {
		return err
	}
	b, err := c.root.loadTree(args[1])
	if err != nil {
		return err
	}

	invalid, err := a.FindInvalidIndices(b)
	if err != nil {
		return err
	}

	c.root.Log.Info("Diffed trees", "width", a.Width(), "differing", invalid.Count())

	out := cmd.OutOrStdout()
	for i, ok := invalid.NextSet(0); ok; i, ok = invalid.NextSet(i + 1) {
		if _, err := fmt.Fprintln(out, i); err != nil {
			return err
		}
	}

	if c.IndexSetPath == "" {
		return nil
	}

	f, err := os.Create(c.IndexSetPath)
	if err != nil {
		return fmt.Errorf("failed to create index set file: %w", err)
	}
	defer f.Close()

	if err := hashtree.WriteIndexSet(f, invalid); err != nil {
		return err
	}
	return f.Close()
}
