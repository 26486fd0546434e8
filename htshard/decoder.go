package htshard

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/hashtree"
	"github.com/gordian-engine/hashtree/htdigest"
	"github.com/klauspost/reedsolomon"
)

// ErrInvalidShard is returned from [*Decoder.AddShard]
// when the shard or its proof does not check out against the root.
var ErrInvalidShard = errors.New("invalid shard")

// ErrAlreadyHaveShard is returned from [*Decoder.AddShard]
// when a shard for the same index was already accepted.
var ErrAlreadyHaveShard = errors.New("already have shard at index")

// ErrInsufficientShards is returned from [*Decoder.Reconstruct]
// when fewer than DataShards shards have been accepted.
var ErrInsufficientShards = errors.New("insufficient shards to reconstruct")

// DecoderConfig is the configuration for [NewDecoder].
// The shard counts, digester, root and data length
// must match the values the data was encoded with.
type DecoderConfig struct {
	Log *slog.Logger

	DataShards, ParityShards int

	Digester htdigest.Digester

	// Root digest of the shard tree.
	Root hashtree.Digest

	// Length of the original data.
	DataLen int
}

func (c DecoderConfig) validate() {
	err := validateShardConfig(c.DataShards, c.ParityShards, c.Digester)

	if c.Log == nil {
		err = errors.Join(err, errors.New("Log must not be nil"))
	}
	if c.Digester != nil && len(c.Root) != c.Digester.Size() {
		err = errors.Join(err, fmt.Errorf(
			"Root must have the digester's size %d (got %d)", c.Digester.Size(), len(c.Root),
		))
	}
	if c.DataLen <= 0 {
		err = errors.Join(err, fmt.Errorf("DataLen must be positive (got %d)", c.DataLen))
	}

	if err != nil {
		panic(fmt.Errorf("BUG: invalid DecoderConfig: %w", err))
	}
}

// Decoder accepts verified shards one at a time
// and reconstructs the original data once enough have arrived.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	log *slog.Logger

	enc    reedsolomon.Encoder
	hasher hashtree.Hasher[[]byte]

	root    hashtree.Digest
	dataLen int

	nData     int
	shardSize int
	height    int

	shards [][]byte
	have   *bitset.BitSet
}

// NewDecoder returns a decoder for data encoded with matching parameters.
// It panics if cfg is invalid.
func NewDecoder(cfg DecoderConfig) (*Decoder, error) {
	cfg.validate()

	enc, err := reedsolomon.New(cfg.DataShards, cfg.ParityShards)
	if err != nil {
		return nil, fmt.Errorf("failed to build Reed-Solomon decoder: %w", err)
	}

	total := cfg.DataShards + cfg.ParityShards

	return &Decoder{
		log: cfg.Log,

		enc:    enc,
		hasher: shardHasher(cfg.Digester),

		root:    slices.Clone(cfg.Root),
		dataLen: cfg.DataLen,

		nData: cfg.DataShards,

		// Matches the padding applied by the encoder's split.
		shardSize: (cfg.DataLen + cfg.DataShards - 1) / cfg.DataShards,

		height: bits.Len(uint(total - 1)),

		shards: make([][]byte, total),
		have:   bitset.MustNew(uint(total)),
	}, nil
}

// AddShard verifies shard against the configured root
// and, if valid, retains a copy of it.
//
// The proof must be a full-length proof for leaf idx.
// Only the proof's steps are used;
// verification always uses the decoder's own root and digester.
func (d *Decoder) AddShard(idx int, shard []byte, proof *hashtree.Proof[[]byte]) error {
	if idx < 0 || idx >= len(d.shards) {
		return fmt.Errorf("%w: index %d out of range [0, %d)", ErrInvalidShard, idx, len(d.shards))
	}
	if d.have.Test(uint(idx)) {
		return fmt.Errorf("%w %d", ErrAlreadyHaveShard, idx)
	}
	if proof == nil {
		return fmt.Errorf("%w: nil proof for index %d", ErrInvalidShard, idx)
	}

	if len(shard) != d.shardSize {
		return fmt.Errorf(
			"%w: shard %d has length %d, want %d",
			ErrInvalidShard, idx, len(shard), d.shardSize,
		)
	}
	if !proof.RootDigest().Equal(d.root) {
		return fmt.Errorf("%w: proof for shard %d has a different root", ErrInvalidShard, idx)
	}
	if proof.MaxLength() != d.height {
		return fmt.Errorf(
			"%w: proof for shard %d has max length %d, want %d",
			ErrInvalidShard, idx, proof.MaxLength(), d.height,
		)
	}
	if leaf, ok := proof.LeafIndex(); !ok || leaf != idx {
		return fmt.Errorf("%w: proof is not for shard %d", ErrInvalidShard, idx)
	}

	// Rebuild the proof with the decoder's hasher and root,
	// so a proof carrying a different digester cannot pass.
	p := hashtree.NewProof(d.root, d.height, d.hasher)
	for s := range proof.Steps() {
		_ = p.AddStep(s.Digest, s.IsLeftSibling)
	}

	ok, err := p.VerifyData(shard)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShard, err)
	}
	if !ok {
		return fmt.Errorf("%w: shard %d failed verification", ErrInvalidShard, idx)
	}

	d.shards[idx] = slices.Clone(shard)
	d.have.Set(uint(idx))
	return nil
}

// HaveShards returns a copy of the set of accepted shard indices.
func (d *Decoder) HaveShards() *bitset.BitSet {
	return d.have.Clone()
}

// CanReconstruct reports whether enough shards have been accepted
// for [*Decoder.Reconstruct] to succeed.
func (d *Decoder) CanReconstruct() bool {
	return d.have.Count() >= uint(d.nData)
}

// Reconstruct returns the original data.
// It returns [ErrInsufficientShards] if [*Decoder.CanReconstruct] is false.
func (d *Decoder) Reconstruct() ([]byte, error) {
	have := d.have.Count()
	if have < uint(d.nData) {
		d.log.Debug(
			"Cannot reconstruct yet",
			"have", have,
			"need", d.nData,
		)
		return nil, fmt.Errorf(
			"%w: have %d, need %d", ErrInsufficientShards, have, d.nData,
		)
	}

	d.log.Debug(
		"Reconstructing data",
		"have", have,
		"missing", uint(len(d.shards))-have,
	)

	if err := d.enc.ReconstructData(d.shards); err != nil {
		// Every shard was verified against the root,
		// so this indicates a mismatched configuration or a bug.
		return nil, fmt.Errorf("failed to reconstruct data shards: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(d.dataLen)
	if err := d.enc.Join(&buf, d.shards, d.dataLen); err != nil {
		return nil, fmt.Errorf("failed to join data shards: %w", err)
	}

	return buf.Bytes(), nil
}
