// Package htcodec converts typed items into the bytes
// that a hash tree digests for its leaves.
//
// The same item must always encode to the same bytes,
// or else lookups and proofs for that item stop matching its leaf.
package htcodec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Encoder converts an item to the bytes that are digested for its leaf.
//
// Encoders must be deterministic and safe to call concurrently.
type Encoder[T any] func(item T) ([]byte, error)

// Bytes is the identity encoder for raw byte slices.
// The returned slice aliases the item.
func Bytes(item []byte) ([]byte, error) {
	return item, nil
}

// String encodes a string as its UTF-8 bytes.
func String(item string) ([]byte, error) {
	return []byte(item), nil
}

// Stringer encodes any [fmt.Stringer] through its String method.
func Stringer[T fmt.Stringer](item T) ([]byte, error) {
	return []byte(item.String()), nil
}

// detEncMode is safe for concurrent use once built.
var detEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("BUG: invalid deterministic CBOR options: %w", err))
	}
	return em
}()

// CBOR returns an encoder that serializes items
// with the core deterministic CBOR encoding from RFC 8949.
// Map keys are sorted, so maps with equal contents encode identically.
func CBOR[T any]() Encoder[T] {
	return func(item T) ([]byte, error) {
		b, err := detEncMode.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to CBOR-encode item: %w", err)
		}
		return b, nil
	}
}
