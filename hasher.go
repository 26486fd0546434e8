package hashtree

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gordian-engine/hashtree/htcodec"
	"github.com/gordian-engine/hashtree/htdigest"
)

// Hasher maps items of type T to leaf digests
// and combines child digests into parent digests.
//
// A tree and every proof produced from it share the tree's Hasher;
// verifying a proof with a different Hasher will fail.
type Hasher[T any] struct {
	Encoder  htcodec.Encoder[T]
	Digester htdigest.Digester
}

// validate panics if h cannot be used.
func (h Hasher[T]) validate() {
	// Collect every problem so a misconfiguration is reported in one go.
	var panicErrs error

	if h.Encoder == nil {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("Hasher.Encoder must not be nil"),
		)
	}

	if h.Digester == nil {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("Hasher.Digester must not be nil"),
		)
	} else if h.Digester.Size() <= 0 {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("Hasher.Digester must have a positive size (got %d)", h.Digester.Size()),
		)
	}

	if panicErrs != nil {
		panic(fmt.Errorf("BUG: invalid Hasher: %w", panicErrs))
	}
}

// Item returns the leaf digest of item.
//
// A nil item reports [ErrNilArgument],
// and an encoding failure reports an [EncodeError].
func (h Hasher[T]) Item(item T) (Digest, error) {
	if isNil(item) {
		return nil, ErrNilArgument
	}

	b, err := h.Encoder(item)
	if err != nil {
		return nil, EncodeError{Err: err}
	}

	d := make(Digest, h.Digester.Size())
	h.Digester.Sum(b, d[:0])
	return d, nil
}

// Combine returns the digest of left followed by right.
// An empty right digest re-hashes left alone.
func (h Hasher[T]) Combine(left, right Digest) Digest {
	d := make(Digest, h.Digester.Size())
	h.Digester.SumPair(left, right, d[:0])
	return d
}

// isNil reports whether v is a nil interface, pointer, map, channel, or func.
// Nil slices are not considered nil items;
// an empty byte slice is a legitimate item to digest.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
