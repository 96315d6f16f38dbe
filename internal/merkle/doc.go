// Package merkle computes Merkle roots and inclusion proofs over ordered
// sequences of hex-encoded SHA-256 hashes.
//
// The tree is never materialized: BuildRoot and BuildProof walk the levels
// iteratively, pairing nodes left to right and duplicating the final node of
// an odd-length level. Parent hashes are computed over the concatenated hex
// TEXT of the two children, not the raw digest bytes. Both properties are
// wire-compatible constraints and must not change.
//
// # Compatibility Quirk
//
// A single-leaf tree's root is the leaf itself, with no additional hashing
// at the top level. Conventional Merkle constructions rehash single leaves;
// this one does not. Every deployed fingerprint depends on this behavior,
// so it is preserved deliberately. See BuildRoot.
package merkle
