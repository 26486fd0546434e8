// Package htshard erasure-codes data into shards
// and commits to the shards with a hash tree,
// so that a receiver can verify each shard independently
// and reconstruct the data from any sufficient subset.
package htshard

import (
	"errors"
	"fmt"

	"github.com/gordian-engine/hashtree"
	"github.com/gordian-engine/hashtree/htcodec"
	"github.com/gordian-engine/hashtree/htdigest"
	"github.com/klauspost/reedsolomon"
)

// MaxShards is the largest total shard count supported.
const MaxShards = 256

// EncodeConfig is the configuration for [Encode].
type EncodeConfig struct {
	// Number of data shards the input is split into.
	// Any DataShards of the resulting shards suffice to reconstruct the input.
	DataShards int

	// Number of additional parity shards.
	// Zero is allowed, but then every data shard is required.
	ParityShards int

	// Digest function for the shard tree.
	Digester htdigest.Digester
}

func (c EncodeConfig) validate() {
	if err := validateShardConfig(c.DataShards, c.ParityShards, c.Digester); err != nil {
		panic(fmt.Errorf("BUG: invalid EncodeConfig: %w", err))
	}
}

func validateShardConfig(nData, nParity int, d htdigest.Digester) error {
	var err error

	if nData <= 0 {
		err = errors.Join(err, fmt.Errorf("DataShards must be positive (got %d)", nData))
	}
	if nParity < 0 {
		err = errors.Join(err, fmt.Errorf("ParityShards must be non-negative (got %d)", nParity))
	}
	if nData+nParity > MaxShards {
		err = errors.Join(err, fmt.Errorf(
			"total shard count must be at most %d (got %d)", MaxShards, nData+nParity,
		))
	}
	if d == nil {
		err = errors.Join(err, errors.New("Digester must not be nil"))
	}

	return err
}

// Encoded is the result of [Encode].
type Encoded struct {
	// Data shards followed by parity shards, all of equal length.
	Shards [][]byte

	// Tree over Shards, in order.
	Tree *hashtree.Tree[[]byte]

	// Proofs[i] proves Shards[i] against Tree's root.
	Proofs []*hashtree.Proof[[]byte]

	// Length of the original data,
	// needed to strip padding after reconstruction.
	DataLen int
}

// Encode splits data into shards, adds parity shards,
// and builds a tree and per-shard proofs over the result.
//
// The data shards may alias data,
// so data must not be modified after calling Encode.
//
// Encode panics if cfg is invalid.
func Encode(data []byte, cfg EncodeConfig) (*Encoded, error) {
	cfg.validate()

	if len(data) == 0 {
		return nil, errors.New("cannot encode empty data")
	}

	enc, err := reedsolomon.New(cfg.DataShards, cfg.ParityShards)
	if err != nil {
		return nil, fmt.Errorf("failed to build Reed-Solomon encoder: %w", err)
	}

	shards, err := enc.Split(data)
	if err != nil {
		return nil, fmt.Errorf("failed to split data into shards: %w", err)
	}

	if err := enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("failed to erasure-code data: %w", err)
	}

	// Now that the parity shards are filled in,
	// we can commit to every shard.
	t, err := hashtree.New(shards, shardHasher(cfg.Digester))
	if err != nil {
		return nil, fmt.Errorf("failed to build shard tree: %w", err)
	}

	// Proofs are by position, since shards of zero padding
	// can be identical.
	proofs := make([]*hashtree.Proof[[]byte], len(shards))
	for i := range shards {
		proofs[i], err = t.ProofForLeaf(i)
		if err != nil {
			panic(fmt.Errorf("BUG: failed to build proof for shard %d: %w", i, err))
		}
	}

	return &Encoded{
		Shards:  shards,
		Tree:    t,
		Proofs:  proofs,
		DataLen: len(data),
	}, nil
}

func shardHasher(d htdigest.Digester) hashtree.Hasher[[]byte] {
	return hashtree.Hasher[[]byte]{
		Encoder:  htcodec.Bytes,
		Digester: d,
	}
}
