// Package network partitions a collection of replicas into sync groups by
// fingerprint equality and reports aggregate health.
package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/replicaudit/internal/replica"
)

// HealthyThreshold is the minimum sync percentage for a network to be
// reported healthy.
const HealthyThreshold = 80.0

// MinReplicas is the smallest collection Compare accepts.
const MinReplicas = 2

// Report is the result of a network comparison.
//
// SyncGroups is an equivalence partition of replica names under root
// equality. Group order follows the first appearance of each root in the
// input, and names within a group follow input order, so identical input
// always produces an identical report.
type Report struct {
	SyncGroups     [][]string        `json:"sync_groups"`
	Roots          map[string]string `json:"roots"`
	TotalReplicas  int               `json:"total_replicas"`
	SyncedCount    int               `json:"synced_count"`
	SyncPercentage float64           `json:"sync_percentage"`
	Healthy        bool              `json:"network_healthy"`
}

// InsufficientReplicasError is returned when a network comparison is
// requested with fewer than MinReplicas replicas.
type InsufficientReplicasError struct {
	// Got is the number of replicas supplied.
	Got int
}

// Error implements the error interface.
func (e *InsufficientReplicasError) Error() string {
	return fmt.Sprintf("network comparison needs at least %d replicas, got %d", MinReplicas, e.Got)
}

// IsInsufficientReplicas reports whether the error is an
// InsufficientReplicasError. Uses errors.As to handle wrapped errors.
func IsInsufficientReplicas(err error) bool {
	var ie *InsufficientReplicasError
	return errors.As(err, &ie)
}

// Compare computes one root per replica, partitions the replicas into sync
// groups, and derives aggregate health. Every replica must already be
// Initialized; a lifecycle failure surfaces as the replica's own
// NotInitializedError.
//
// Singleton groups contribute nothing to SyncedCount: a replica agreeing
// only with itself is not synced with anyone.
func Compare(ctx context.Context, replicas []*replica.Replica) (*Report, error) {
	if len(replicas) < MinReplicas {
		return nil, &InsufficientReplicasError{Got: len(replicas)}
	}

	// One root per replica, in input order.
	names := make([]string, len(replicas))
	roots := make(map[string]string, len(replicas))
	for i, r := range replicas {
		root, err := r.Root(ctx)
		if err != nil {
			return nil, fmt.Errorf("network comparison: %w", err)
		}
		names[i] = r.Name()
		roots[r.Name()] = root
	}

	// Partition by root equality. Input order drives both group order and
	// intra-group member order.
	var groups [][]string
	grouped := make(map[string]bool, len(names))
	for i, name := range names {
		if grouped[name] {
			continue
		}
		group := []string{name}
		grouped[name] = true
		for _, other := range names[i+1:] {
			if !grouped[other] && roots[other] == roots[name] {
				group = append(group, other)
				grouped[other] = true
			}
		}
		groups = append(groups, group)
	}

	synced := 0
	for _, group := range groups {
		if len(group) > 1 {
			synced += len(group)
		}
	}

	percentage := float64(synced) / float64(len(replicas)) * 100

	return &Report{
		SyncGroups:     groups,
		Roots:          roots,
		TotalReplicas:  len(replicas),
		SyncedCount:    synced,
		SyncPercentage: percentage,
		Healthy:        percentage >= HealthyThreshold,
	}, nil
}
