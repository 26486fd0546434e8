// Package htdigest declares the [Digester] interface
// used by hash trees to turn item bytes and child digests into digests.
//
// Concrete implementations live in subpackages
// (htsha256, htmd5, htblake3, htkeccak),
// and htdigesttest contains a compliance suite
// that every implementation should pass.
package htdigest
