// Package deck holds the client-side view of the shared deck's review
// domain: notes, fields, tags, commits, and the suggestion items a
// reviewer acts on. The server owns all of these; this package is a
// read/transient-mutation projection of server state.
package deck

import (
	"fmt"
	"time"
)

// Suggestion is a pending content proposal for a single field.
type Suggestion struct {
	ID      int64
	Content string
}

// Field is one positional field of a note. Position is a stable ordinal,
// not an identity; the same position can carry both a reviewed baseline
// and a pending suggestion.
type Field struct {
	Position   int
	Name       string
	Baseline   string // currently published content (reviewed_content)
	Suggestion *Suggestion
	Inherited  bool // derived from the notetype template, never editable
	Protected  bool // owner closed this field to contributor suggestions
}

// HasSuggestion reports whether the field carries a pending suggestion.
func (f Field) HasSuggestion() bool {
	return f.Suggestion != nil
}

// TagClass classifies a tag within the review view. A tag belongs to
// exactly one class at a time.
type TagClass int

const (
	TagReviewed TagClass = iota // already published
	TagNew                      // proposed addition
	TagRemoved                  // proposed removal
)

// String returns the class name for logs and rendering.
func (c TagClass) String() string {
	switch c {
	case TagReviewed:
		return "reviewed"
	case TagNew:
		return "new"
	case TagRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Tag is a single tag attached to a note.
type Tag struct {
	ID      int64
	Content string
	Class   TagClass
}

// MoveRequest is a proposal to move a note to another deck.
type MoveRequest struct {
	ID         int64
	TargetPath string
}

// Note is one card of the deck as presented in a commit review view.
type Note struct {
	ID        int64
	GUID      string
	DeckHash  string
	OwnerID   int64
	Reviewed  bool // false for brand-new notes awaiting first publish
	DeleteReq bool // contributor requested removal of the whole note
	Fields    []Field
	Tags      []Tag
	MoveReq   *MoveRequest
}

// FieldAt returns the field with the given position, if present.
func (n *Note) FieldAt(position int) (*Field, bool) {
	for i := range n.Fields {
		if n.Fields[i].Position == position {
			return &n.Fields[i], true
		}
	}
	return nil, false
}

// PublishedTags returns the note's reviewed tag contents in order.
func (n *Note) PublishedTags() []string {
	var out []string
	for _, t := range n.Tags {
		if t.Class == TagReviewed {
			out = append(out, t.Content)
		}
	}
	return out
}

// Validate checks the invariants the server guarantees for a note view.
// It exists so a malformed page fragment is caught at the boundary
// instead of surfacing as a confusing UI state later.
func (n *Note) Validate() error {
	for _, f := range n.Fields {
		if f.Inherited && f.Suggestion != nil {
			return fmt.Errorf("note %d: inherited field %d carries a suggestion", n.ID, f.Position)
		}
	}
	return nil
}

// Commit is a named batch of suggestions scoped to an ordered set of notes.
type Commit struct {
	ID        int
	DeckHash  string
	DeckName  string
	Timestamp time.Time
	Rationale string
	NoteIDs   []int64
}
