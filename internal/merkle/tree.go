package merkle

// BuildRoot computes the Merkle root of an ordered sequence of hex-encoded
// leaf hashes. The input is not modified.
//
// Rules, in order:
//   - Empty input returns EmptyTreeRoot.
//   - A single leaf is returned unchanged (see the package doc for why this
//     quirk is load-bearing).
//   - Otherwise leaves are paired left to right; an unpaired final leaf is
//     paired with itself. Each parent is Sum(leftHex + rightHex) over the
//     hex text. Levels collapse until one hash remains.
//
// The result is a deterministic function of the ordered input: reordering
// leaves generally changes the root.
func BuildRoot(leaves []string) string {
	if len(leaves) == 0 {
		return EmptyTreeRoot
	}

	level := leaves
	for len(level) > 1 {
		level = nextLevel(level)
	}
	return level[0]
}

// nextLevel collapses one tree level into its parents.
// Always allocates; the caller's slice is never written to.
func nextLevel(level []string) []string {
	next := make([]string, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		left := level[i]
		right := left // duplicate-last-node rule
		if i+1 < len(level) {
			right = level[i+1]
		}
		next = append(next, SumString(left+right))
	}
	return next
}
