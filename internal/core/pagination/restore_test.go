package pagination

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/data/stores"
)

func TestSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(stores.NewMemoryKV(), 5*time.Minute)
	now := time.Now()

	snap := Snapshot{
		CommitID:       7,
		ScrollPosition: 42,
		TargetNoteID:   101,
		LoadedCount:    30,
		Timestamp:      now,
	}
	require.NoError(t, store.Save(ctx, snap))

	got, ok, err := store.Take(ctx, 7, now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snap.TargetNoteID, got.TargetNoteID)
	assert.Equal(t, snap.LoadedCount, got.LoadedCount)

	// A snapshot is single use.
	_, ok, err = store.Take(ctx, 7, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotStoreDiscardsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(stores.NewMemoryKV(), 5*time.Minute)
	now := time.Now()

	snap := Snapshot{CommitID: 7, TargetNoteID: 101, LoadedCount: 10, Timestamp: now.Add(-6 * time.Minute)}
	require.NoError(t, store.Save(ctx, snap))

	_, ok, err := store.Take(ctx, 7, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotValid(t *testing.T) {
	now := time.Now()
	ttl := 5 * time.Minute

	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"fresh and complete", Snapshot{CommitID: 1, LoadedCount: 10, Timestamp: now}, true},
		{"missing commit", Snapshot{LoadedCount: 10, Timestamp: now}, false},
		{"zero loaded count", Snapshot{CommitID: 1, Timestamp: now}, false},
		{"zero timestamp", Snapshot{CommitID: 1, LoadedCount: 10}, false},
		{"stale", Snapshot{CommitID: 1, LoadedCount: 10, Timestamp: now.Add(-ttl)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.Valid(now, ttl))
		})
	}
}

func TestRestoreTargetPagesUpToSnapshot(t *testing.T) {
	ctx := context.Background()
	ctrl, session, fetcher := newFixture([]int64{1, 2, 3, 4, 5, 6}, 2)

	// The view starts with one page loaded, like any fresh open.
	_, err := ctrl.LoadMore(ctx)
	require.NoError(t, err)

	snap := Snapshot{CommitID: 1, TargetNoteID: 4, LoadedCount: 4, Timestamp: time.Now()}
	found, err := ctrl.RestoreTarget(ctx, snap)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, session.HasNote(4))

	// Exactly the gap was fetched: one initial page plus one restore page.
	assert.Equal(t, 2, fetcher.calls)
}

func TestRestoreTargetAlreadyLoaded(t *testing.T) {
	ctx := context.Background()
	ctrl, _, fetcher := newFixture([]int64{1, 2, 3}, 2)

	_, err := ctrl.LoadMore(ctx)
	require.NoError(t, err)
	calls := fetcher.calls

	found, err := ctrl.RestoreTarget(ctx, Snapshot{CommitID: 1, TargetNoteID: 2, LoadedCount: 2, Timestamp: time.Now()})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, calls, fetcher.calls)
}

func TestRestoreTargetMissingNoteFallsBack(t *testing.T) {
	ctx := context.Background()
	ctrl, _, _ := newFixture([]int64{1, 2, 3, 4}, 2)

	_, err := ctrl.LoadMore(ctx)
	require.NoError(t, err)

	// Note 99 was resolved between sessions; the fetch loop stays bounded
	// by the snapshot's loaded count and reports not found.
	snap := Snapshot{CommitID: 1, TargetNoteID: 99, LoadedCount: 4, Timestamp: time.Now()}
	found, err := ctrl.RestoreTarget(ctx, snap)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRestoreTargetNoTarget(t *testing.T) {
	ctrl, _, fetcher := newFixture([]int64{1, 2}, 2)

	found, err := ctrl.RestoreTarget(context.Background(), Snapshot{CommitID: 1, LoadedCount: 2, Timestamp: time.Now()})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, fetcher.calls)
}
