package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gordian-engine/hashtree"
	"github.com/gordian-engine/hashtree/cmd/hashtree/cmd"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out, _, err := runWithStderr(t, args...)
	return out, err
}

func runWithStderr(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := cmd.RootCmd{}
	c := root.Command()
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(args)

	err = c.Execute()
	t.Log(errOut.String())
	return out.String(), errOut.String(), err
}

func TestRoot(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "abc.txt", "A\nB\nC\n")

	out, err := run(t, "root", p)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "width=3 height=2 root="), out)

	// A trailing newline does not add a line, and CRLF matches LF.
	crlf := writeFile(t, "abc-crlf.txt", "A\r\nB\r\nC")
	out2, err := run(t, "root", crlf)
	require.NoError(t, err)
	require.Equal(t, out, out2)

	// Different digests give different roots.
	md5Out, err := run(t, "--digest", "md5", "root", p)
	require.NoError(t, err)
	require.NotEqual(t, out, md5Out)
}

func TestRoot_errors(t *testing.T) {
	t.Parallel()

	empty := writeFile(t, "empty.txt", "")
	_, err := run(t, "root", empty)
	require.ErrorIs(t, err, hashtree.ErrEmptyInput)

	_, err = run(t, "root", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	p := writeFile(t, "a.txt", "A\n")
	_, err = run(t, "--digest", "crc32", "root", p)
	require.ErrorContains(t, err, "--digest")

	_, err = run(t, "--log-level", "loud", "root", p)
	require.ErrorContains(t, err, "--log-level")
}

func TestProofAndVerify(t *testing.T) {
	t.Parallel()

	for _, digest := range []string{"sha256", "md5", "blake3", "keccak"} {
		t.Run(digest, func(t *testing.T) {
			t.Parallel()

			p := writeFile(t, "lines.txt", "alpha\nbeta\ngamma\ndelta\nepsilon\n")

			rootOut, err := run(t, "--digest", digest, "root", p)
			require.NoError(t, err)
			rootHex := strings.TrimSpace(rootOut[strings.Index(rootOut, "root=")+len("root="):])

			proofOut, err := run(t, "--digest", digest, "proof", p, "2")
			require.NoError(t, err)
			proofHex := strings.TrimSpace(proofOut)

			out, err := run(t, "--digest", digest, "verify", "--root", rootHex, proofHex, "gamma")
			require.NoError(t, err)
			require.Equal(t, "OK line=2 root="+rootHex+"\n", out)

			_, err = run(t, "--digest", digest, "verify", proofHex, "beta")
			require.Error(t, err)

			_, err = run(t, "--digest", digest, "verify", "--root", strings.Repeat("00", len(rootHex)/2), proofHex, "gamma")
			require.Error(t, err)
		})
	}
}

func TestVerify_withoutRootWarns(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "lines.txt", "alpha\nbeta\ngamma\n")

	proofOut, err := run(t, "proof", p, "1")
	require.NoError(t, err)
	proofHex := strings.TrimSpace(proofOut)

	out, stderr, err := runWithStderr(t, "verify", proofHex, "beta")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "OK line=1 "), out)
	require.Contains(t, stderr, "trusting the root carried in the proof")

	// An explicit root silences the warning.
	rootOut, err := run(t, "root", p)
	require.NoError(t, err)
	rootHex := strings.TrimSpace(rootOut[strings.Index(rootOut, "root=")+len("root="):])

	_, stderr, err = runWithStderr(t, "verify", "--root", rootHex, proofHex, "beta")
	require.NoError(t, err)
	require.NotContains(t, stderr, "trusting")
}

func TestProof_errors(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "lines.txt", "a\nb\n")

	_, err := run(t, "proof", p, "2")
	require.ErrorIs(t, err, hashtree.ErrInvalidInput)

	_, err = run(t, "proof", p, "two")
	require.Error(t, err)

	_, err = run(t, "verify", "zz", "a")
	require.Error(t, err)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	a := writeFile(t, "a.txt", "1\n2\n3\n4\n5\n")
	b := writeFile(t, "b.txt", "1\nX\n3\n4\nY\n")
	setPath := filepath.Join(t.TempDir(), "diff.bin")

	out, err := run(t, "diff", "--index-set", setPath, a, b)
	require.NoError(t, err)
	require.Equal(t, "1\n4\n", out)

	f, err := os.Open(setPath)
	require.NoError(t, err)
	defer f.Close()

	bs, err := hashtree.ReadIndexSet(f, 5)
	require.NoError(t, err)
	require.True(t, bs.Test(1))
	require.True(t, bs.Test(4))
	require.Equal(t, uint(2), bs.Count())

	short := writeFile(t, "short.txt", "1\n2\n")
	_, err = run(t, "diff", a, short)
	require.ErrorIs(t, err, hashtree.ErrWidthMismatch)
}
