// Package httest contains helpers shared across tests in this module.
package httest

import (
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
)

// NewLogger returns a logger that writes through t.Log,
// so output is attributed to the test and only shown on failure or with -v.
func NewLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slogt.New(t, slogt.Text())
}
