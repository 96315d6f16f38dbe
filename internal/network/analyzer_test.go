package network

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/replicaudit/internal/replica"
)

func newReplica(t *testing.T, name string, payloads ...string) *replica.Replica {
	t.Helper()
	ctx := context.Background()
	r := replica.New(name, filepath.Join(t.TempDir(), name+".db"))
	require.NoError(t, r.Initialize(ctx))
	t.Cleanup(func() { r.Close() })
	for _, p := range payloads {
		_, err := r.AddEvent(ctx, p)
		require.NoError(t, err)
	}
	return r
}

func TestCompare_InsufficientReplicas(t *testing.T) {
	ctx := context.Background()

	_, err := Compare(ctx, nil)
	require.Error(t, err)
	assert.True(t, IsInsufficientReplicas(err))

	_, err = Compare(ctx, []*replica.Replica{newReplica(t, "solo")})
	require.Error(t, err)
	assert.True(t, IsInsufficientReplicas(err))

	var ie *InsufficientReplicasError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Got)
}

func TestCompare_UninitializedReplica(t *testing.T) {
	ctx := context.Background()
	a := newReplica(t, "alpha", "tx1")
	b := replica.New("beta", filepath.Join(t.TempDir(), "beta.db"))

	_, err := Compare(ctx, []*replica.Replica{a, b})
	require.Error(t, err)
	assert.True(t, replica.IsNotInitialized(err))
}

func TestCompare_TwoOfThreeSynced(t *testing.T) {
	ctx := context.Background()
	a := newReplica(t, "alpha", "tx1", "tx2")
	b := newReplica(t, "beta", "tx1", "tx2")
	c := newReplica(t, "gamma", "tx1", "rogue")

	report, err := Compare(ctx, []*replica.Replica{a, b, c})
	require.NoError(t, err)

	require.Len(t, report.SyncGroups, 2)
	assert.Equal(t, []string{"alpha", "beta"}, report.SyncGroups[0])
	assert.Equal(t, []string{"gamma"}, report.SyncGroups[1])

	assert.Equal(t, 3, report.TotalReplicas)
	assert.Equal(t, 2, report.SyncedCount, "singleton groups contribute nothing")
	assert.InDelta(t, 66.7, report.SyncPercentage, 0.1)
	assert.False(t, report.Healthy, "66.7%% is below the 80%% threshold")

	assert.Equal(t, report.Roots["alpha"], report.Roots["beta"])
	assert.NotEqual(t, report.Roots["alpha"], report.Roots["gamma"])
}

func TestCompare_AllSynced(t *testing.T) {
	ctx := context.Background()
	a := newReplica(t, "alpha", "tx1")
	b := newReplica(t, "beta", "tx1")
	c := newReplica(t, "gamma", "tx1")

	report, err := Compare(ctx, []*replica.Replica{a, b, c})
	require.NoError(t, err)

	require.Len(t, report.SyncGroups, 1)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, report.SyncGroups[0])
	assert.Equal(t, 3, report.SyncedCount)
	assert.Equal(t, 100.0, report.SyncPercentage)
	assert.True(t, report.Healthy)
}

func TestCompare_AllDiverged(t *testing.T) {
	ctx := context.Background()
	a := newReplica(t, "alpha", "one")
	b := newReplica(t, "beta", "two")

	report, err := Compare(ctx, []*replica.Replica{a, b})
	require.NoError(t, err)

	require.Len(t, report.SyncGroups, 2)
	assert.Equal(t, 0, report.SyncedCount)
	assert.Equal(t, 0.0, report.SyncPercentage)
	assert.False(t, report.Healthy)
}

func TestCompare_GroupOrderFollowsInput(t *testing.T) {
	ctx := context.Background()
	a := newReplica(t, "alpha", "x")
	b := newReplica(t, "beta", "y")
	c := newReplica(t, "gamma", "x")
	d := newReplica(t, "delta", "y")

	report, err := Compare(ctx, []*replica.Replica{a, b, c, d})
	require.NoError(t, err)

	// alpha's root appears first, so its group leads; beta's follows.
	require.Len(t, report.SyncGroups, 2)
	assert.Equal(t, []string{"alpha", "gamma"}, report.SyncGroups[0])
	assert.Equal(t, []string{"beta", "delta"}, report.SyncGroups[1])
	assert.Equal(t, 4, report.SyncedCount)
	assert.True(t, report.Healthy)
}

func TestCompare_Reproducible(t *testing.T) {
	ctx := context.Background()
	replicas := []*replica.Replica{
		newReplica(t, "alpha", "tx1"),
		newReplica(t, "beta", "tx1"),
		newReplica(t, "gamma", "other"),
	}

	first, err := Compare(ctx, replicas)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Compare(ctx, replicas)
		require.NoError(t, err)
		assert.Equal(t, first, again, "run %d differs", i)
	}
}

func TestCompare_EmptyLedgersAreSynced(t *testing.T) {
	// Two untouched ledgers share the canonical empty-tree root.
	ctx := context.Background()
	a := newReplica(t, "alpha")
	b := newReplica(t, "beta")

	report, err := Compare(ctx, []*replica.Replica{a, b})
	require.NoError(t, err)
	require.Len(t, report.SyncGroups, 1)
	assert.Equal(t, 2, report.SyncedCount)
	assert.True(t, report.Healthy)
}
