package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gordian-engine/hashtree"
	"github.com/spf13/cobra"
)

// errVerifyFailed is returned so that a failed verification
// exits with a non-zero status.
var errVerifyFailed = errors.New("proof does not verify")

// VerifyCmd checks a line against an encoded proof.
type VerifyCmd struct {
	root *RootCmd

	// flags
	ExpectRoot string
}

// Command returns the cobra command.
func (c *VerifyCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <proof-hex> <line-text>",
		Short: "Verify that a line of text matches a hex-encoded proof",
		Args:  cobra.ExactArgs(2),
		RunE:  c.RunE,
	}
	cmd.Flags().StringVar(&c.ExpectRoot, "root", "",
		"hex root digest the proof must commit to; defaults to trusting the proof's root",
	)
	return cmd
}

// RunE decodes the proof and verifies the line.
func (c *VerifyCmd) RunE(cmd *cobra.Command, args []string) error {
	b, err := hex.DecodeString(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid proof hex: %w", err)
	}

	p, err := hashtree.UnmarshalProof(b, c.root.Hasher)
	if err != nil {
		return err
	}

	if c.ExpectRoot == "" {
		// The proof is then only checked against itself.
		c.root.Log.Warn(
			"No --root given; trusting the root carried in the proof",
			"root", p.RootDigest(),
		)
	} else {
		want, err := hex.DecodeString(c.ExpectRoot)
		if err != nil {
			return fmt.Errorf("invalid --root hex: %w", err)
		}
		if !p.RootDigest().Equal(want) {
			c.root.Log.Info(
				"Proof root mismatch",
				"want", hashtree.Digest(want),
				"got", p.RootDigest(),
			)
			return errVerifyFailed
		}
	}

	ok, err := p.VerifyData(args[1])
	if err != nil {
		return err
	}
	if !ok {
		return errVerifyFailed
	}

	out := cmd.OutOrStdout()
	if idx, ok := p.LeafIndex(); ok {
		_, err = fmt.Fprintf(out, "OK line=%d root=%s\n", idx, p.RootDigest())
	} else {
		_, err = fmt.Fprintf(out, "OK root=%s\n", p.RootDigest())
	}
	return err
}
