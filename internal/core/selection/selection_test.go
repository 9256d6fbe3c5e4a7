package selection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/data/stores"
)

func newTestStore() (*Store, *eventbus.EventBus) {
	bus := eventbus.New()
	return NewStore(stores.NewMemoryKV(), bus), bus
}

func TestToggle(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	selected, err := s.Toggle(ctx, 1, 101)
	require.NoError(t, err)
	assert.True(t, selected)

	selected, err = s.Toggle(ctx, 1, 102)
	require.NoError(t, err)
	assert.True(t, selected)

	ids, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, ids)

	// Toggling again deselects.
	selected, err = s.Toggle(ctx, 1, 101)
	require.NoError(t, err)
	assert.False(t, selected)

	ids, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{102}, ids)
}

func TestSelectionIsPerCommit(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	_, err := s.Toggle(ctx, 1, 101)
	require.NoError(t, err)

	ids, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSelectAllAndClear(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.SelectAll(ctx, 1, []int64{101, 102, 103}))

	ids, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102, 103}, ids)

	require.NoError(t, s.Clear(ctx, 1))
	ids, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemoveOnResolution(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.SelectAll(ctx, 1, []int64{101, 102}))
	require.NoError(t, s.Remove(ctx, 1, 101))

	ids, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{102}, ids)

	// Removing an id that is not selected is a no-op.
	require.NoError(t, s.Remove(ctx, 1, 999))
}

func TestReconcilePrunesUnloadedIDs(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.SelectAll(ctx, 1, []int64{101, 102, 103}))
	require.NoError(t, s.Reconcile(ctx, 1, []int64{102}))

	ids, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{102}, ids)
}

func TestLockBlocksMutation(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.SelectAll(ctx, 1, []int64{101, 102}))
	s.Lock(1)

	_, err := s.Toggle(ctx, 1, 103)
	assert.ErrorIs(t, err, ErrLocked)
	assert.ErrorIs(t, s.SelectAll(ctx, 1, []int64{103}), ErrLocked)
	assert.ErrorIs(t, s.Clear(ctx, 1), ErrLocked)

	// The coordinator's own pruning path stays open.
	require.NoError(t, s.Remove(ctx, 1, 101))

	// Other commits are unaffected.
	_, err = s.Toggle(ctx, 2, 201)
	require.NoError(t, err)

	s.Unlock(1)
	_, err = s.Toggle(ctx, 1, 103)
	require.NoError(t, err)
}

func TestSelectionChangedEvents(t *testing.T) {
	s, bus := newTestStore()
	ctx := context.Background()

	var sizes []int
	bus.SubscribeSelectionChanged(func(p eventbus.SelectionChangedPayload) {
		sizes = append(sizes, p.Size)
	})

	_, err := s.Toggle(ctx, 1, 101)
	require.NoError(t, err)
	_, err = s.Toggle(ctx, 1, 102)
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx, 1))

	assert.Equal(t, []int{1, 2, 0}, sizes)
}

func TestFailureFlags(t *testing.T) {
	s, _ := newTestStore()

	s.FlagFailure(1, 101, "protected note")
	assert.Equal(t, "protected note", s.FailureReason(1, 101))
	assert.Empty(t, s.FailureReason(1, 102))

	s.ClearFailure(1, 101)
	assert.Empty(t, s.FailureReason(1, 101))
}
