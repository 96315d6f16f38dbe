package merkle

import (
	"crypto/sha256"
	"encoding/hex"
)

// HexLength is the width of every hash value produced by this package:
// two hex characters per digest byte.
const HexLength = sha256.Size * 2

// EmptyTreeRoot is the canonical root of an empty tree: SHA-256 of the
// empty string. It is a computed constant so the hashing path and the
// sentinel can never drift apart.
var EmptyTreeRoot = Sum(nil)

// Sum computes the SHA-256 digest of data and returns it as a
// fixed-width lowercase hex string.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// SumString is Sum over the UTF-8 bytes of s.
func SumString(s string) string {
	return Sum([]byte(s))
}

// EqualRoots reports whether two roots are identical.
// Roots are plain hex strings, so this is exact byte equality.
func EqualRoots(a, b string) bool {
	return a == b
}
