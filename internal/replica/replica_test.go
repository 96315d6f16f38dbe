package replica

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/replicaudit/internal/merkle"
)

func newTestReplica(t *testing.T, name string) *Replica {
	t.Helper()
	r := New(name, filepath.Join(t.TempDir(), name+".db"))
	t.Cleanup(func() { r.Close() })
	return r
}

func initTestReplica(t *testing.T, name string) *Replica {
	t.Helper()
	r := newTestReplica(t, name)
	require.NoError(t, r.Initialize(context.Background()))
	return r
}

func TestNew_StartsUninitialized(t *testing.T) {
	r := New("alpha", "/tmp/alpha.db")
	assert.Equal(t, StateUninitialized, r.State())
	assert.Equal(t, "alpha", r.Name())
	assert.Equal(t, "/tmp/alpha.db", r.DBPath())
}

func TestInitialize_Idempotent(t *testing.T) {
	ctx := context.Background()
	r := newTestReplica(t, "alpha")

	require.NoError(t, r.Initialize(ctx))
	assert.Equal(t, StateInitialized, r.State())

	// Second call is a no-op.
	require.NoError(t, r.Initialize(ctx))
	assert.Equal(t, StateInitialized, r.State())
}

func TestInitialize_AfterCloseFails(t *testing.T) {
	ctx := context.Background()
	r := newTestReplica(t, "alpha")

	require.NoError(t, r.Initialize(ctx))
	require.NoError(t, r.Close())

	err := r.Initialize(ctx)
	require.Error(t, err)
	assert.True(t, IsNotInitialized(err), "closed replica must not re-initialize")
	assert.Equal(t, StateClosed, r.State())
}

func TestLifecycleGatedOps_FailWhenUninitialized(t *testing.T) {
	ctx := context.Background()
	r := New("alpha", "/tmp/alpha.db")

	_, err := r.AddEvent(ctx, "event")
	assert.True(t, IsNotInitialized(err))

	_, err = r.Root(ctx)
	assert.True(t, IsNotInitialized(err))

	_, err = r.RecordCount(ctx)
	assert.True(t, IsNotInitialized(err))

	_, err = r.Records(ctx)
	assert.True(t, IsNotInitialized(err))

	var ne *NotInitializedError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "alpha", ne.Replica)
	assert.Equal(t, StateUninitialized, ne.State)
}

func TestLifecycleGatedOps_FailAfterClose(t *testing.T) {
	ctx := context.Background()
	r := initTestReplica(t, "alpha")
	require.NoError(t, r.Close())

	_, err := r.Root(ctx)
	require.Error(t, err)
	assert.True(t, IsNotInitialized(err))

	var ne *NotInitializedError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, StateClosed, ne.State)
}

func TestClose_Idempotent(t *testing.T) {
	r := initTestReplica(t, "alpha")
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, StateClosed, r.State())
}

func TestClose_FromUninitialized(t *testing.T) {
	r := New("alpha", "/tmp/alpha.db")
	require.NoError(t, r.Close())
	assert.Equal(t, StateClosed, r.State())
}

func TestAddEvent_ReturnsSequenceIDs(t *testing.T) {
	ctx := context.Background()
	r := initTestReplica(t, "alpha")

	seq, err := r.AddEvent(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	seq, err = r.AddEvent(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
}

func TestRoot_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	r := initTestReplica(t, "alpha")

	root, err := r.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, merkle.EmptyTreeRoot, root)
}

func TestRoot_ReflectsLatestState(t *testing.T) {
	ctx := context.Background()
	r := initTestReplica(t, "alpha")

	before, err := r.Root(ctx)
	require.NoError(t, err)

	_, err = r.AddEvent(ctx, "event")
	require.NoError(t, err)

	after, err := r.Root(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, after, "root must change after append")
}

func TestWith_ClosesOnAllPaths(t *testing.T) {
	ctx := context.Background()

	t.Run("normal return", func(t *testing.T) {
		r := newTestReplica(t, "alpha")
		err := r.With(ctx, func(r *Replica) error {
			_, err := r.AddEvent(ctx, "event")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, StateClosed, r.State())
	})

	t.Run("fn error still closes", func(t *testing.T) {
		r := newTestReplica(t, "beta")
		wantErr := errors.New("boom")
		err := r.With(ctx, func(*Replica) error { return wantErr })
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, StateClosed, r.State())
	})

	t.Run("initialize failure", func(t *testing.T) {
		r := New("gamma", "/nonexistent/dir/gamma.db")
		err := r.With(ctx, func(*Replica) error {
			t.Fatal("fn must not run when initialize fails")
			return nil
		})
		require.Error(t, err)
	})
}

func TestStatus_Uninitialized(t *testing.T) {
	ctx := context.Background()
	r := New("alpha", "/tmp/alpha.db")

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alpha", status.Name)
	assert.False(t, status.Initialized)
	assert.Empty(t, status.Root)
	assert.Zero(t, status.RecordCount)
	assert.Empty(t, status.RecentPayloads)
}

func TestStatus_Closed(t *testing.T) {
	ctx := context.Background()
	r := initTestReplica(t, "alpha")
	require.NoError(t, r.Close())

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Initialized)
}

func TestStatus_Initialized(t *testing.T) {
	ctx := context.Background()
	r := initTestReplica(t, "alpha")

	for _, p := range []string{"one", "two", "three", "four"} {
		_, err := r.AddEvent(ctx, p)
		require.NoError(t, err)
	}

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Initialized)
	assert.Equal(t, 4, status.RecordCount)
	assert.Len(t, status.Root, merkle.HexLength)

	// Last three payloads in insertion order.
	assert.Equal(t, []string{"two", "three", "four"}, status.RecentPayloads)
}

func TestStatus_FewerPayloadsThanLimit(t *testing.T) {
	ctx := context.Background()
	r := initTestReplica(t, "alpha")

	_, err := r.AddEvent(ctx, "only")
	require.NoError(t, err)

	status, err := r.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, status.RecentPayloads)
}
