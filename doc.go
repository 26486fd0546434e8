// Package hashtree builds binary hash trees ("Merkle trees")
// over an ordered sequence of items.
//
// A [Tree] is built once from a non-empty sequence and never changes afterwards.
// It can locate an item's leaf index, report whether an item or a subtree
// belongs to it, compare itself against another tree of the same width
// to find exactly which leaves differ, and produce a [Proof]
// that a single item or subtree is included under its root digest.
//
// Leaves are paired left to right at every level.
// When a level has an odd number of nodes, the final node has no sibling;
// it is promoted to the next level by hashing its digest alone,
// so a lone node's contribution to the root changes at every level it climbs.
// Every leaf therefore sits at the same depth, which is the tree's height.
//
// The digest function is pluggable through [htdigest.Digester],
// and items are converted to bytes through an [htcodec.Encoder].
// A [Hasher] pairs the two.
package hashtree
