package merkle

import (
	"testing"
)

func TestBuildProof_EmptyCases(t *testing.T) {
	cases := []struct {
		name   string
		leaves []string
		target int
	}{
		{"no leaves", nil, 0},
		{"single leaf", []string{leafA}, 0},
		{"index out of range", []string{leafA, leafB}, 2},
		{"negative index", []string{leafA, leafB}, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if proof := BuildProof(tc.leaves, tc.target); len(proof) != 0 {
				t.Errorf("BuildProof = %v, want empty", proof)
			}
		})
	}
}

func TestBuildProof_TwoLeaves(t *testing.T) {
	// Proof for leaf 0 is its right sibling; for leaf 1 its left sibling.
	if proof := BuildProof([]string{leafA, leafB}, 0); len(proof) != 1 || proof[0] != leafB {
		t.Errorf("proof for index 0 = %v, want [%s]", proof, leafB)
	}
	if proof := BuildProof([]string{leafA, leafB}, 1); len(proof) != 1 || proof[0] != leafA {
		t.Errorf("proof for index 1 = %v, want [%s]", proof, leafA)
	}
}

func TestBuildProof_DuplicateLastSelfSibling(t *testing.T) {
	// With three leaves, leaf 2 pairs with itself, so its first sibling is
	// its own hash.
	proof := BuildProof([]string{leafA, leafB, leafC}, 2)
	if len(proof) != 2 {
		t.Fatalf("proof length = %d, want 2", len(proof))
	}
	if proof[0] != leafC {
		t.Errorf("self-pair sibling = %s, want the target leaf %s", proof[0], leafC)
	}
	if proof[1] != SumString(leafA+leafB) {
		t.Errorf("level-1 sibling = %s, want hash of (a,b) pair", proof[1])
	}
}

func TestBuildProof_FoldsBackToRoot(t *testing.T) {
	leaves := []string{leafA, leafB, leafC, leafD, leafE}
	for n := 2; n <= len(leaves); n++ {
		subset := leaves[:n]
		root := BuildRoot(subset)
		for i := range subset {
			proof := BuildProof(subset, i)
			if got := FoldProof(subset[i], i, proof); got != root {
				t.Errorf("n=%d i=%d: folded proof = %s, want root %s", n, i, got, root)
			}
		}
	}
}

func TestBuildProof_WrongLeafDoesNotFold(t *testing.T) {
	leaves := []string{leafA, leafB, leafC, leafD}
	root := BuildRoot(leaves)
	proof := BuildProof(leaves, 1)
	if FoldProof(leafC, 1, proof) == root {
		t.Error("proof for leaf 1 folded to the root with the wrong leaf")
	}
}

func TestFoldProof_EmptyProofReturnsLeaf(t *testing.T) {
	// Mirrors the single-leaf root rule: no siblings, root is the leaf.
	if got := FoldProof(leafA, 0, nil); got != leafA {
		t.Errorf("FoldProof with empty proof = %s, want %s", got, leafA)
	}
}
