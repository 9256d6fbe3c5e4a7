// Package editpanel manages a scoped multi-field edit session: all of a
// note's editable fields opened at once, seeded with plain content, and
// saved as one batch of changed fields. Saving invalidates the rendered
// diffs, so a successful save always ends in a full view reload.
package editpanel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/htmldiff"
	"github.com/deckrev/deckrev/internal/core/logging"
)

// Sentinel errors for edit sessions.
var (
	ErrNoSession   = errors.New("editpanel: no open session")
	ErrFieldFrozen = errors.New("editpanel: field is not editable")
	ErrNoChanges   = errors.New("editpanel: nothing changed")
)

// Field is one editable field of an open session.
type Field struct {
	Position  int
	Name      string
	Inherited bool // shown for context, never editable or saved

	seed    string // plain content the editor started from
	current string
}

// Content returns the field's working text.
func (f Field) Content() string {
	return f.current
}

// Dirty reports whether the field differs from its seed.
func (f Field) Dirty() bool {
	return f.current != f.seed
}

// Opener is the endpoint that loads a note's fields for editing.
type Opener interface {
	GetAllFieldsForEdit(ctx context.Context, noteID int64, commitID int) (api.EditSession, error)
}

// Saver is the endpoint that persists a batch of field changes.
type Saver interface {
	BatchUpdateFieldSuggestions(ctx context.Context, noteID int64, commitID int, updates []api.FieldUpdate) (api.BatchEditResult, error)
}

// Client combines the two endpoints a panel needs.
type Client interface {
	Opener
	Saver
}

// Panel is one open edit session over a note.
type Panel struct {
	api Client
	log zerolog.Logger

	mu       sync.Mutex
	open     bool
	noteID   int64
	commitID int
	reviewed bool
	fields   []Field
}

// NewPanel builds an edit panel over the given client.
func NewPanel(client Client) *Panel {
	return &Panel{
		api: client,
		log: logging.Component("editpanel"),
	}
}

// Open loads every field of the note and seeds the editors. Editable
// fields seed from the suggestion candidate when one is pending,
// otherwise from the published baseline; both are stripped of diff
// markers so the editor never sees rendered markup. Inherited fields are
// kept for context but frozen.
func (p *Panel) Open(ctx context.Context, noteID int64, commitID int) error {
	session, err := p.api.GetAllFieldsForEdit(ctx, noteID, commitID)
	if err != nil {
		return fmt.Errorf("open edit session for note %d: %w", noteID, err)
	}

	fields := make([]Field, 0, len(session.Fields))
	for _, ef := range session.Fields {
		seed := ef.ReviewedContent
		if ef.SuggestionContent != "" {
			seed = ef.SuggestionContent
		}
		seed = htmldiff.StripMarkers(seed)
		fields = append(fields, Field{
			Position:  ef.Position,
			Name:      ef.Name,
			Inherited: ef.Inherited,
			seed:      seed,
			current:   seed,
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Position < fields[j].Position })

	p.mu.Lock()
	p.open = true
	p.noteID = noteID
	p.commitID = commitID
	p.reviewed = session.NoteReviewed
	p.fields = fields
	p.mu.Unlock()

	p.log.Debug().Int64("note", noteID).Int("fields", len(fields)).Msg("edit session opened")
	return nil
}

// IsOpen reports whether a session is active.
func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// NoteID returns the note under edit.
func (p *Panel) NoteID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.noteID
}

// NoteReviewed reports whether the note already has published content.
func (p *Panel) NoteReviewed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reviewed
}

// Fields returns a snapshot of the session's fields in position order.
func (p *Panel) Fields() []Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// SetContent updates one field's working text. Inherited fields refuse.
func (p *Panel) SetContent(position int, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return ErrNoSession
	}
	for i := range p.fields {
		if p.fields[i].Position != position {
			continue
		}
		if p.fields[i].Inherited {
			return ErrFieldFrozen
		}
		p.fields[i].current = content
		return nil
	}
	return fmt.Errorf("%w: position %d", ErrFieldFrozen, position)
}

// Changes returns the batch payload: only fields whose content moved off
// the seed, never inherited ones.
func (p *Panel) Changes() []api.FieldUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	var updates []api.FieldUpdate
	for _, f := range p.fields {
		if f.Inherited || !f.Dirty() {
			continue
		}
		updates = append(updates, api.FieldUpdate{Position: f.Position, Content: f.current})
	}
	return updates
}

// Save submits the changed fields as one batch and closes the session.
// The caller must follow a successful save with a full view reload: the
// server re-renders diffs against the new suggestions, and the stale
// local model must not survive. ErrNoChanges leaves the session open.
func (p *Panel) Save(ctx context.Context) (api.BatchEditResult, error) {
	p.mu.Lock()
	if !p.open {
		p.mu.Unlock()
		return api.BatchEditResult{}, ErrNoSession
	}
	noteID, commitID := p.noteID, p.commitID
	p.mu.Unlock()

	updates := p.Changes()
	if len(updates) == 0 {
		return api.BatchEditResult{}, ErrNoChanges
	}

	result, err := p.api.BatchUpdateFieldSuggestions(ctx, noteID, commitID, updates)
	if err != nil {
		return api.BatchEditResult{}, fmt.Errorf("save edit session for note %d: %w", noteID, err)
	}

	p.Cancel()
	p.log.Info().
		Int64("note", noteID).
		Int("changed", len(updates)).
		Int("created", result.CreatedCount).
		Int("updated", result.UpdatedCount).
		Msg("edit session saved")
	return result, nil
}

// Cancel discards the session without any network traffic.
func (p *Panel) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.noteID = 0
	p.commitID = 0
	p.fields = nil
}
