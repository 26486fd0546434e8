package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// TreeCmd prints the shape and root digest of a file's tree.
type TreeCmd struct {
	root *RootCmd
}

// Command returns the cobra command.
func (c *TreeCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "root <file>",
		Short: "Print the width, height and root digest of a file's tree",
		Args:  cobra.ExactArgs(1),
		RunE:  c.RunE,
	}
}

// RunE builds the tree and prints its summary.
func (c *TreeCmd) RunE(cmd *cobra.Command, args []string) error {
	t, err := c.root.loadTree(args[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(
		cmd.OutOrStdout(),
		"width=%d height=%d root=%s\n",
		t.Width(), t.Height(), t.RootDigest(),
	)
	return err
}
