package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// ProofCmd prints an encoded proof for one line of a file.
type ProofCmd struct {
	root *RootCmd
}

// Command returns the cobra command.
func (c *ProofCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "proof <file> <line>",
		Short: "Print the hex-encoded proof for the 0-based line of a file",
		Args:  cobra.ExactArgs(2),
		RunE:  c.RunE,
	}
}

// RunE builds the tree, then proves the line by position.
func (c *ProofCmd) RunE(cmd *cobra.Command, args []string) error {
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid line number %q: %w", args[1], err)
	}

	t, err := c.root.loadTree(args[0])
	if err != nil {
		return err
	}

	p, err := t.ProofForLeaf(idx)
	if err != nil {
		return fmt.Errorf("failed to build proof: %w", err)
	}

	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}

	c.root.Log.Debug("Built proof", "line", idx, "steps", p.Len())

	_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
	return err
}
