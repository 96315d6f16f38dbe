// Package fingerprint derives Merkle leaf hashes from ledger records and
// computes whole-ledger roots.
//
// A record's leaf is SHA-256 over "seq:payload" with seq in decimal. The
// insertion timestamp and stored content hash are deliberately excluded so
// that two stores receiving the same payload sequence in the same order are
// fingerprint-identical no matter when each row was inserted.
package fingerprint

import (
	"strconv"

	"github.com/roach88/replicaudit/internal/ledger"
	"github.com/roach88/replicaudit/internal/merkle"
)

// LeafHash computes the Merkle leaf for one record.
func LeafHash(seq int64, payload string) string {
	return merkle.SumString(strconv.FormatInt(seq, 10) + ":" + payload)
}

// ComputeRoot maps records to leaves in sequence order and returns the
// Merkle root. An empty record set yields merkle.EmptyTreeRoot.
//
// Every call rehashes the full record set. Callers rely on the result
// reflecting the records exactly as passed; nothing is cached between
// calls.
func ComputeRoot(records []ledger.Record) string {
	leaves := make([]string, len(records))
	for i, rec := range records {
		leaves[i] = LeafHash(rec.Seq, rec.Payload)
	}
	return merkle.BuildRoot(leaves)
}
