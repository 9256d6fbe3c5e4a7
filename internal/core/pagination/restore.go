package pagination

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/deckrev/deckrev/internal/core/kv"
)

// Snapshot captures where the operator was in a commit view so a full
// reload (after a batch edit, or a restart) can put them back. Snapshots
// are best effort: an expired or inconsistent one is discarded and the
// view simply starts at the top.
type Snapshot struct {
	CommitID       int       `json:"commit_id"`
	ScrollPosition int       `json:"scroll_position"`
	TargetNoteID   int64     `json:"target_note_id"`
	LoadedCount    int       `json:"loaded_count"`
	Timestamp      time.Time `json:"timestamp"`
}

// Valid reports whether the snapshot is usable at the given time.
func (s Snapshot) Valid(now time.Time, ttl time.Duration) bool {
	if s.CommitID <= 0 || s.LoadedCount <= 0 || s.Timestamp.IsZero() {
		return false
	}
	return now.Sub(s.Timestamp) < ttl
}

// SnapshotStore persists restoration snapshots through the kv port, one
// per commit.
type SnapshotStore struct {
	kv  *kv.TypedKV[Snapshot]
	ttl time.Duration
}

// NewSnapshotStore builds a store with the given snapshot lifetime.
func NewSnapshotStore(backend kv.KV, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		kv:  kv.Scoped[Snapshot](backend, "restore"),
		ttl: ttl,
	}
}

// Save records the snapshot, replacing any previous one for the commit.
func (s *SnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	if err := s.kv.SetTTL(ctx, strconv.Itoa(snap.CommitID), snap, s.ttl); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Take returns the commit's snapshot and removes it; a snapshot is
// consumed by the first restoration attempt whether or not that attempt
// succeeds. Expired or malformed snapshots report ok false.
func (s *SnapshotStore) Take(ctx context.Context, commitID int, now time.Time) (Snapshot, bool, error) {
	key := strconv.Itoa(commitID)
	snap, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	if delErr := s.kv.Delete(ctx, key); delErr != nil {
		return Snapshot{}, false, fmt.Errorf("consume snapshot: %w", delErr)
	}
	if !snap.Valid(now, s.ttl) {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// RestoreTarget re-loads pages until the snapshot's target note is in the
// session, fetching at most the number of pages the snapshot's loaded
// count implies. It reports whether the target was found; when it was
// not (the note was resolved, or the commit shrank underneath the
// snapshot), the caller falls back to the raw scroll position.
func (c *Controller) RestoreTarget(ctx context.Context, snap Snapshot) (bool, error) {
	if snap.TargetNoteID == 0 {
		return false, nil
	}
	if c.session.HasNote(snap.TargetNoteID) {
		return true, nil
	}

	// The gap bounds the fetch loop: restoring never pages past what the
	// operator had loaded before the reload.
	gap := snap.LoadedCount - c.State().Loaded
	if gap <= 0 {
		return false, nil
	}
	maxFetches := (gap + c.pageSize - 1) / c.pageSize

	for i := 0; i < maxFetches; i++ {
		if _, err := c.LoadMore(ctx); err != nil {
			if errors.Is(err, ErrExhausted) {
				return false, nil
			}
			return false, err
		}
		if c.session.HasNote(snap.TargetNoteID) {
			return true, nil
		}
	}
	return false, nil
}
