package hashtree

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the root of every error reported for bad arguments.
// Use errors.Is to check for it;
// more specific errors below wrap it.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmptyInput is returned when constructing a tree from no items.
var ErrEmptyInput = fmt.Errorf("%w: empty input sequence", ErrInvalidInput)

// ErrNilArgument is returned when a required item, node, tree, or digest is nil.
var ErrNilArgument = fmt.Errorf("%w: nil argument", ErrInvalidInput)

// ErrWidthMismatch is returned when diffing trees of different widths.
var ErrWidthMismatch = fmt.Errorf("%w: tree widths differ", ErrInvalidInput)

// ErrNotInTree is returned when a proof is requested
// for an item or branch that the tree does not contain.
var ErrNotInTree = fmt.Errorf("%w: not present in tree", ErrInvalidInput)

// EncodeError is returned when an item cannot be encoded for digesting.
// It matches [ErrInvalidInput] with errors.Is.
type EncodeError struct {
	Err error
}

func (e EncodeError) Error() string {
	return "failed to encode item: " + e.Err.Error()
}

func (e EncodeError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}
