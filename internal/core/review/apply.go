package review

import (
	"errors"

	"github.com/deckrev/deckrev/internal/core/deck"
)

// ErrItemNotFound means the resolved item no longer exists in the local
// model, typically because the view was rebuilt while a response was in
// flight.
var ErrItemNotFound = errors.New("review: item not found in view")

// applyFieldAccept advances the field's baseline to the accepted
// candidate and clears the suggestion. With no suggestion left, the view
// projects static content and never re-offers accept/deny controls for
// this field.
func applyFieldAccept(note *deck.Note, suggestionID int64) error {
	for i := range note.Fields {
		s := note.Fields[i].Suggestion
		if s != nil && s.ID == suggestionID {
			note.Fields[i].Baseline = s.Content
			note.Fields[i].Suggestion = nil
			return nil
		}
	}
	return ErrItemNotFound
}

// applyFieldDeny discards the pending suggestion without touching the
// baseline. A field that never had published content disappears from the
// view entirely.
func applyFieldDeny(note *deck.Note, suggestionID int64) error {
	for i := range note.Fields {
		s := note.Fields[i].Suggestion
		if s == nil || s.ID != suggestionID {
			continue
		}
		if note.Fields[i].Baseline == "" {
			note.Fields = append(note.Fields[:i], note.Fields[i+1:]...)
		} else {
			note.Fields[i].Suggestion = nil
		}
		return nil
	}
	return ErrItemNotFound
}

// applyTagAccept resolves a tag proposal. A "new" tag joins the
// published list; a "removed" tag deletes every published tag with the
// same content along with the proposal itself.
func applyTagAccept(note *deck.Note, tagID int64) error {
	idx := -1
	for i := range note.Tags {
		if note.Tags[i].ID == tagID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}

	switch note.Tags[idx].Class {
	case deck.TagNew:
		note.Tags[idx].Class = deck.TagReviewed
	case deck.TagRemoved:
		content := note.Tags[idx].Content
		kept := note.Tags[:0]
		for _, t := range note.Tags {
			if t.ID == tagID || (t.Class == deck.TagReviewed && t.Content == content) {
				continue
			}
			kept = append(kept, t)
		}
		note.Tags = kept
	default:
		return ErrItemNotFound
	}
	return nil
}

// applyTagDeny removes the tag proposal from the view; the published
// list is untouched.
func applyTagDeny(note *deck.Note, tagID int64) error {
	for i := range note.Tags {
		if note.Tags[i].ID == tagID {
			note.Tags = append(note.Tags[:i], note.Tags[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// applyMoveResolve clears the move proposal regardless of direction; an
// accepted move changes deck membership server-side, which the view
// learns about on the next full load.
func applyMoveResolve(note *deck.Note, moveID int64) error {
	if note.MoveReq == nil || note.MoveReq.ID != moveID {
		return ErrItemNotFound
	}
	note.MoveReq = nil
	return nil
}
