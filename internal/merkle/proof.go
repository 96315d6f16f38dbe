package merkle

// BuildProof returns the inclusion proof for the leaf at target: the
// sequence of sibling hashes needed to recompute the root from that leaf,
// ordered leaf level first.
//
// An empty input, an out-of-range target, or a single-leaf tree yields an
// empty proof. None of these are errors: a one-leaf tree's root IS the leaf,
// so there is nothing to prove against.
//
// When the target sits in the duplicate-last self-pair of an odd-length
// level, the recorded sibling is the target's own hash.
func BuildProof(leaves []string, target int) []string {
	if target < 0 || target >= len(leaves) || len(leaves) <= 1 {
		return nil
	}

	var proof []string
	level := leaves
	idx := target
	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			switch idx {
			case i:
				proof = append(proof, right)
			case i + 1:
				proof = append(proof, left)
			}
			next = append(next, SumString(left+right))
		}
		idx /= 2
		level = next
	}
	return proof
}

// FoldProof recomputes a root from one leaf, its position in the original
// leaf sequence, and a proof produced by BuildProof. An empty proof returns
// the leaf unchanged, matching the single-leaf root rule.
//
// This is a recomputation helper, not an untrusted-party verifier: callers
// compare the result against a root they already hold.
func FoldProof(leaf string, index int, proof []string) string {
	node := leaf
	for _, sibling := range proof {
		if index%2 == 0 {
			node = SumString(node + sibling)
		} else {
			node = SumString(sibling + node)
		}
		index /= 2
	}
	return node
}
