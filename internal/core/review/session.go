package review

import (
	"fmt"
	"sync"
	"time"

	"github.com/deckrev/deckrev/internal/core/deck"
	"github.com/deckrev/deckrev/internal/core/eventbus"
)

// Session is the in-memory review model for one commit view: the loaded
// notes plus the action machine. Rendered output is always a projection
// of this model; nothing is ever read back out of rendered markup.
type Session struct {
	commitID int
	machine  *Machine
	bus      *eventbus.EventBus

	mu    sync.Mutex
	notes []deck.Note
}

// NewSession creates an empty session for the given commit.
func NewSession(commitID int, failsafe time.Duration, bus *eventbus.EventBus) *Session {
	return &Session{
		commitID: commitID,
		machine:  NewMachine(failsafe),
		bus:      bus,
	}
}

// CommitID returns the commit this session reviews.
func (s *Session) CommitID() int {
	return s.commitID
}

// Machine exposes the action state machine for status queries.
func (s *Session) Machine() *Machine {
	return s.machine
}

// AppendNotes adds freshly loaded notes to the view, skipping ids that
// are already present (a restoration fetch can overlap the first page).
func (s *Session) AppendNotes(notes []deck.Note) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[int64]bool, len(s.notes))
	for _, n := range s.notes {
		existing[n.ID] = true
	}

	added := 0
	for _, n := range notes {
		if existing[n.ID] {
			continue
		}
		s.notes = append(s.notes, n)
		existing[n.ID] = true
		added++
	}
	return added
}

// Notes returns a snapshot of the loaded notes in view order.
func (s *Session) Notes() []deck.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]deck.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// NoteIDs returns the loaded note ids in view order.
func (s *Session) NoteIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.notes))
	for _, n := range s.notes {
		ids = append(ids, n.ID)
	}
	return ids
}

// HasNote reports whether the note is currently loaded.
func (s *Session) HasNote(noteID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(noteID) >= 0
}

// Begin guards and starts an action on one item. It validates that the
// item exists in the loaded model before handing out a token, so a
// malformed or stale control can never produce a network call.
func (s *Session) Begin(key deck.ItemKey, now time.Time) (uint64, bool, error) {
	s.mu.Lock()
	_, err := s.locateLocked(key)
	s.mu.Unlock()
	if err != nil {
		return 0, false, fmt.Errorf("begin %s: %w", key, err)
	}

	token, ok := s.machine.Begin(key, now)
	return token, ok, nil
}

// ApplySuccess commits a confirmed resolution into the model. Stale
// tokens are dropped without touching the model. Note-level resolutions
// remove the whole note and emit a note-resolved event for the
// pagination and selection layers.
func (s *Session) ApplySuccess(key deck.ItemKey, token uint64, accepted bool) error {
	outcome := OutcomeDenied
	if accepted {
		outcome = OutcomeAccepted
	}
	if !s.machine.Complete(key, token, outcome, "") {
		return nil
	}

	s.mu.Lock()
	idx, err := s.locateLocked(key)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if key.Kind.IsNoteLevel() {
		noteID := s.notes[idx].ID
		s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
		s.mu.Unlock()
		s.bus.PublishNoteResolved(eventbus.NoteResolvedPayload{
			CommitID: s.commitID,
			NoteID:   noteID,
			Action:   key.Kind.String(),
		})
		return nil
	}

	note := &s.notes[idx]
	switch key.Kind {
	case deck.ItemField:
		if accepted {
			err = applyFieldAccept(note, key.ID)
		} else {
			err = applyFieldDeny(note, key.ID)
		}
	case deck.ItemTag:
		if accepted {
			err = applyTagAccept(note, key.ID)
		} else {
			err = applyTagDeny(note, key.ID)
		}
	case deck.ItemMove:
		err = applyMoveResolve(note, key.ID)
	}
	s.mu.Unlock()
	return err
}

// ApplyFailure returns the item to idle with the failure reason attached;
// the model is untouched, so the view reverts to its pre-action
// appearance.
func (s *Session) ApplyFailure(key deck.ItemKey, token uint64, reason string) {
	s.machine.Complete(key, token, OutcomeFailed, reason)
}

// RemoveNote drops a note resolved outside the per-item flow (bulk
// actions) and emits the same note-resolved event.
func (s *Session) RemoveNote(noteID int64, action string) bool {
	s.mu.Lock()
	idx := s.indexOf(noteID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	s.mu.Unlock()

	s.bus.PublishNoteResolved(eventbus.NoteResolvedPayload{
		CommitID: s.commitID,
		NoteID:   noteID,
		Action:   action,
	})
	return true
}

// SweepStale applies the failsafe to any control stuck busy past the
// window. Runs on the UI tick.
func (s *Session) SweepStale(now time.Time) []deck.ItemKey {
	return s.machine.SweepStale(now)
}

// locateLocked finds the note index owning the item. Callers hold s.mu.
func (s *Session) locateLocked(key deck.ItemKey) (int, error) {
	if key.Kind.IsNoteLevel() {
		if idx := s.indexOf(key.ID); idx >= 0 {
			return idx, nil
		}
		return -1, ErrItemNotFound
	}

	for i := range s.notes {
		n := &s.notes[i]
		switch key.Kind {
		case deck.ItemField:
			for _, f := range n.Fields {
				if f.Suggestion != nil && f.Suggestion.ID == key.ID {
					return i, nil
				}
			}
		case deck.ItemTag:
			for _, t := range n.Tags {
				if t.ID == key.ID {
					return i, nil
				}
			}
		case deck.ItemMove:
			if n.MoveReq != nil && n.MoveReq.ID == key.ID {
				return i, nil
			}
		}
	}
	return -1, ErrItemNotFound
}

func (s *Session) indexOf(noteID int64) int {
	for i := range s.notes {
		if s.notes[i].ID == noteID {
			return i
		}
	}
	return -1
}
