package hashtree

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Proofs are encoded as CBOR arrays:
// [root, maxLength, [[digest, isLeft], ...]].
type proofWire struct {
	_ struct{} `cbor:",toarray"`

	Root      []byte
	MaxLength uint
	Steps     []stepWire
}

type stepWire struct {
	_ struct{} `cbor:",toarray"`

	Digest []byte
	IsLeft bool
}

// No tree built from an int-sized input is taller than this.
const maxProofLength = 64

var (
	proofEncMode cbor.EncMode
	proofDecMode cbor.DecMode
)

func init() {
	var err error
	proofEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("BUG: failed to build CBOR encoding mode: %w", err))
	}

	proofDecMode, err = cbor.DecOptions{
		MaxArrayElements: 1 << 16,
	}.DecMode()
	if err != nil {
		panic(fmt.Errorf("BUG: failed to build CBOR decoding mode: %w", err))
	}
}

// MarshalBinary encodes p as deterministic CBOR.
// The hasher is not encoded;
// the decoder must supply the same hasher the proof was made with.
func (p *Proof[T]) MarshalBinary() ([]byte, error) {
	w := proofWire{
		Root:      p.root,
		MaxLength: uint(p.maxLength),
		Steps:     make([]stepWire, 0, p.steps.Len()),
	}
	for s := range p.steps.All() {
		w.Steps = append(w.Steps, stepWire{Digest: s.Digest, IsLeft: s.IsLeftSibling})
	}

	b, err := proofEncMode.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal proof: %w", err)
	}
	return b, nil
}

// UnmarshalProof decodes a proof written by [*Proof.MarshalBinary].
//
// Every digest must be h.Digester.Size() bytes,
// except that a step digest may be empty.
// A proof with more steps than its max length is rejected.
// All decoding failures match [ErrInvalidInput].
func UnmarshalProof[T any](b []byte, h Hasher[T]) (*Proof[T], error) {
	h.validate()

	var w proofWire
	if err := proofDecMode.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal proof: %w", ErrInvalidInput, err)
	}

	sz := h.Digester.Size()
	if len(w.Root) != sz {
		return nil, fmt.Errorf(
			"%w: proof root digest has length %d, want %d",
			ErrInvalidInput, len(w.Root), sz,
		)
	}
	if w.MaxLength > maxProofLength {
		return nil, fmt.Errorf(
			"%w: proof max length %d exceeds %d",
			ErrInvalidInput, w.MaxLength, maxProofLength,
		)
	}
	if uint(len(w.Steps)) > w.MaxLength {
		return nil, fmt.Errorf(
			"%w: proof has %d steps but max length %d",
			ErrInvalidInput, len(w.Steps), w.MaxLength,
		)
	}

	p := NewProof(Digest(w.Root), int(w.MaxLength), h)
	for i, s := range w.Steps {
		if len(s.Digest) != 0 && len(s.Digest) != sz {
			return nil, fmt.Errorf(
				"%w: proof step %d has digest length %d, want 0 or %d",
				ErrInvalidInput, i, len(s.Digest), sz,
			)
		}
		_ = p.AddStep(Digest(s.Digest), s.IsLeft)
	}

	return p, nil
}
