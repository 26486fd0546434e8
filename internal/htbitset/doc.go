// Package htbitset encodes and decodes fixed-length bit sets,
// such as the set of leaf indices that differ between two trees.
//
// The encoded form does not carry the bit set's length:
// both sides must already agree on it,
// and the decoder is given a bit set of that length to fill in.
package htbitset
