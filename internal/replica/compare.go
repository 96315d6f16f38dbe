package replica

import (
	"context"

	"github.com/roach88/replicaudit/internal/merkle"
)

// DivergenceKind classifies a pairwise comparison result.
type DivergenceKind string

const (
	// DivergenceNone means both roots are identical.
	DivergenceNone DivergenceKind = "IDENTICAL"

	// DivergenceContent means equal record counts but differing roots:
	// same ledger length, different content.
	DivergenceContent DivergenceKind = "CONTENT_DIVERGENCE"

	// DivergenceCount means the replicas hold different numbers of
	// records.
	DivergenceCount DivergenceKind = "COUNT_DIVERGENCE"
)

// DivergenceReport is the result of comparing two replicas. Plain data;
// rendering belongs to the reporting layer.
type DivergenceReport struct {
	Identical bool           `json:"identical"`
	Kind      DivergenceKind `json:"kind"`

	SelfName   string `json:"self_name"`
	OtherName  string `json:"other_name"`
	RootSelf   string `json:"root_self"`
	RootOther  string `json:"root_other"`
	CountSelf  int    `json:"count_self"`
	CountOther int    `json:"count_other"`

	// Ahead names the replica holding more records and Lead says by how
	// many. Both are set only for COUNT_DIVERGENCE.
	Ahead string `json:"ahead,omitempty"`
	Lead  int    `json:"lead,omitempty"`
}

// Compare computes both replicas' roots and record counts and classifies
// the result. Both sides must be Initialized.
//
// Classification precedence: equal roots win regardless of counts; then
// equal counts with differing roots is content divergence; otherwise count
// divergence, naming the side that is ahead.
func (r *Replica) Compare(ctx context.Context, other *Replica) (DivergenceReport, error) {
	if r.state != StateInitialized {
		return DivergenceReport{}, &NotInitializedError{Replica: r.name, State: r.state}
	}
	if other.state != StateInitialized {
		return DivergenceReport{}, &NotInitializedError{Replica: other.name, State: other.state}
	}

	rootSelf, err := r.Root(ctx)
	if err != nil {
		return DivergenceReport{}, err
	}
	rootOther, err := other.Root(ctx)
	if err != nil {
		return DivergenceReport{}, err
	}
	countSelf, err := r.RecordCount(ctx)
	if err != nil {
		return DivergenceReport{}, err
	}
	countOther, err := other.RecordCount(ctx)
	if err != nil {
		return DivergenceReport{}, err
	}

	report := DivergenceReport{
		SelfName:   r.name,
		OtherName:  other.name,
		RootSelf:   rootSelf,
		RootOther:  rootOther,
		CountSelf:  countSelf,
		CountOther: countOther,
	}

	switch {
	case merkle.EqualRoots(rootSelf, rootOther):
		report.Identical = true
		report.Kind = DivergenceNone
	case countSelf == countOther:
		report.Kind = DivergenceContent
	case countSelf > countOther:
		report.Kind = DivergenceCount
		report.Ahead = r.name
		report.Lead = countSelf - countOther
	default:
		report.Kind = DivergenceCount
		report.Ahead = other.name
		report.Lead = countOther - countSelf
	}

	return report, nil
}
