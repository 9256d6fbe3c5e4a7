// Package selection manages the per-commit bulk selection set. The set
// is keyed by commit id, persisted through the kv port so it survives
// reloads, and reconciled against note resolutions so it never retains
// ids for notes that no longer exist in the current view.
package selection

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/kv"
)

// ErrLocked is returned by selection-mutating calls while a bulk
// submission over the same commit is in flight.
var ErrLocked = errors.New("selection: locked during bulk submission")

// Store is the keyed selection store (commit id -> ordered note id set).
type Store struct {
	kv  *kv.TypedKV[[]int64]
	bus *eventbus.EventBus

	mu       sync.Mutex
	locked   map[int]bool
	failures map[int]map[int64]string
}

// NewStore builds a selection store over the persistence port.
func NewStore(backend kv.KV, bus *eventbus.EventBus) *Store {
	return &Store{
		kv:       kv.Scoped[[]int64](backend, "selection"),
		bus:      bus,
		locked:   make(map[int]bool),
		failures: make(map[int]map[int64]string),
	}
}

// Get returns the commit's selection in insertion order.
func (s *Store) Get(ctx context.Context, commitID int) ([]int64, error) {
	ids, err := s.kv.Get(ctx, key(commitID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}
	return ids, nil
}

// Toggle flips one note in or out of the selection and reports the new
// membership.
func (s *Store) Toggle(ctx context.Context, commitID int, noteID int64) (bool, error) {
	if s.isLocked(commitID) {
		return false, ErrLocked
	}

	ids, err := s.Get(ctx, commitID)
	if err != nil {
		return false, err
	}

	selected := true
	kept := ids[:0]
	for _, id := range ids {
		if id == noteID {
			selected = false
			continue
		}
		kept = append(kept, id)
	}
	if selected {
		kept = append(kept, noteID)
	}

	if err := s.save(ctx, commitID, kept); err != nil {
		return false, err
	}
	return selected, nil
}

// SelectAll replaces the selection with the currently loaded notes.
// Notes on unloaded pages are never touched implicitly.
func (s *Store) SelectAll(ctx context.Context, commitID int, loadedIDs []int64) error {
	if s.isLocked(commitID) {
		return ErrLocked
	}
	ids := make([]int64, len(loadedIDs))
	copy(ids, loadedIDs)
	return s.save(ctx, commitID, ids)
}

// Clear empties the commit's selection.
func (s *Store) Clear(ctx context.Context, commitID int) error {
	if s.isLocked(commitID) {
		return ErrLocked
	}
	return s.save(ctx, commitID, nil)
}

// Remove drops one id, used when an individual resolution removes a note
// from the view. Reconciliation bypasses the bulk lock: the bulk
// coordinator itself prunes succeeded ids through this path.
func (s *Store) Remove(ctx context.Context, commitID int, noteID int64) error {
	ids, err := s.Get(ctx, commitID)
	if err != nil {
		return err
	}

	kept := ids[:0]
	removed := false
	for _, id := range ids {
		if id == noteID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return nil
	}
	return s.save(ctx, commitID, kept)
}

// Reconcile prunes selection ids that are absent from the loaded view,
// validating the persisted set against the fresh session.
func (s *Store) Reconcile(ctx context.Context, commitID int, loadedIDs []int64) error {
	ids, err := s.Get(ctx, commitID)
	if err != nil {
		return err
	}

	loaded := make(map[int64]bool, len(loadedIDs))
	for _, id := range loadedIDs {
		loaded[id] = true
	}

	kept := ids[:0]
	for _, id := range ids {
		if loaded[id] {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return s.save(ctx, commitID, kept)
}

// Lock freezes selection mutation for the commit while a bulk submission
// runs.
func (s *Store) Lock(commitID int) {
	s.mu.Lock()
	s.locked[commitID] = true
	s.mu.Unlock()
}

// Unlock re-enables selection mutation.
func (s *Store) Unlock(commitID int) {
	s.mu.Lock()
	delete(s.locked, commitID)
	s.mu.Unlock()
}

// FlagFailure attaches a bulk failure reason to a still-selected note for
// operator visibility. Reasons are session-scoped, not persisted.
func (s *Store) FlagFailure(commitID int, noteID int64, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.failures[commitID]
	if !ok {
		m = make(map[int64]string)
		s.failures[commitID] = m
	}
	m[noteID] = reason
}

// FailureReason returns the flagged reason for a note, if any.
func (s *Store) FailureReason(commitID int, noteID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[commitID][noteID]
}

// ClearFailure removes a flag once the note is resubmitted or resolved.
func (s *Store) ClearFailure(commitID int, noteID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures[commitID], noteID)
}

func (s *Store) isLocked(commitID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked[commitID]
}

func (s *Store) save(ctx context.Context, commitID int, ids []int64) error {
	var err error
	if len(ids) == 0 {
		err = s.kv.Delete(ctx, key(commitID))
	} else {
		err = s.kv.Set(ctx, key(commitID), ids)
	}
	if err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	if s.bus != nil {
		s.bus.PublishSelectionChanged(eventbus.SelectionChangedPayload{CommitID: commitID, Size: len(ids)})
	}
	return nil
}

func key(commitID int) string {
	return strconv.Itoa(commitID)
}
