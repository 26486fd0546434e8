// Package cmd contains the cobra commands for the hashtree CLI.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/gordian-engine/hashtree"
	"github.com/gordian-engine/hashtree/htcodec"
	"github.com/gordian-engine/hashtree/htdigest"
	"github.com/gordian-engine/hashtree/htdigest/htblake3"
	"github.com/gordian-engine/hashtree/htdigest/htkeccak"
	"github.com/gordian-engine/hashtree/htdigest/htmd5"
	"github.com/gordian-engine/hashtree/htdigest/htsha256"
	"github.com/spf13/cobra"
)

const (
	flagDigest   = "digest"
	flagLogLevel = "log-level"
)

var digesters = map[string]htdigest.Digester{
	"sha256": htsha256.Digester{},
	"md5":    htmd5.Digester{},
	"blake3": htblake3.Digester{},
	"keccak": htkeccak.Digester{},
}

// RootCmd is the top level command.
// Its persistent flags are shared by every subcommand.
type RootCmd struct {
	cmd *cobra.Command

	// flags
	DigestName string
	LogLevel   string

	// Set in PersistentPreRunE.
	Log    *slog.Logger
	Hasher hashtree.Hasher[string]
}

// Command returns the cobra command with all subcommands attached.
func (r *RootCmd) Command() *cobra.Command {
	if r.cmd != nil {
		return r.cmd
	}

	r.cmd = &cobra.Command{
		Use:               "hashtree",
		Short:             "Build, prove and compare hash trees over file lines",
		PersistentPreRunE: r.PersistentPreRunE,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	names := make([]string, 0, len(digesters))
	for name := range digesters {
		names = append(names, name)
	}
	slices.Sort(names)

	r.cmd.PersistentFlags().StringVar(&r.DigestName, flagDigest, "sha256",
		"digest function, one of: "+strings.Join(names, ","),
	)
	r.cmd.PersistentFlags().StringVar(&r.LogLevel, flagLogLevel, "warn",
		"log level, one of: debug,info,warn,error",
	)

	r.cmd.AddCommand(
		(&TreeCmd{root: r}).Command(),
		(&ProofCmd{root: r}).Command(),
		(&VerifyCmd{root: r}).Command(),
		(&DiffCmd{root: r}).Command(),
	)

	return r.cmd
}

// PersistentPreRunE resolves the shared flags.
func (r *RootCmd) PersistentPreRunE(cmd *cobra.Command, _ []string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(r.LogLevel)); err != nil {
		return fmt.Errorf("invalid --%s %q: %w", flagLogLevel, r.LogLevel, err)
	}
	r.Log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: lvl,
	}))

	d, ok := digesters[r.DigestName]
	if !ok {
		return fmt.Errorf("invalid --%s %q", flagDigest, r.DigestName)
	}
	r.Hasher = hashtree.Hasher[string]{
		Encoder:  htcodec.String,
		Digester: d,
	}

	r.Log.Debug("Resolved flags", "digest", r.DigestName, "log_level", lvl)
	return nil
}

// loadTree builds a tree whose items are the lines of the named file.
func (r *RootCmd) loadTree(path string) (*hashtree.Tree[string], error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	lines := splitLines(string(b))
	t, err := hashtree.New(lines, r.Hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree from %s: %w", path, err)
	}

	r.Log.Info(
		"Built tree",
		"path", path,
		"width", t.Width(),
		"height", t.Height(),
	)
	return t, nil
}

// splitLines splits s on newlines.
// A final newline does not start an extra empty line,
// and carriage returns before newlines are dropped.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
