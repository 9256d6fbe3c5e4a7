package deck

import "fmt"

// ItemKind enumerates every suggestion action a reviewer can take.
// Dispatch over kinds is exhaustive; adding a kind is a compile-visible
// change everywhere a switch omits a case.
type ItemKind int

const (
	ItemField ItemKind = iota
	ItemTag
	ItemMove
	ItemNotePublish
	ItemNoteDelete
	ItemNoteRemovalAccept
	ItemNoteRemovalDeny
)

// String returns the kind name used in logs and kv keys.
func (k ItemKind) String() string {
	switch k {
	case ItemField:
		return "field"
	case ItemTag:
		return "tag"
	case ItemMove:
		return "move"
	case ItemNotePublish:
		return "note-publish"
	case ItemNoteDelete:
		return "note-delete"
	case ItemNoteRemovalAccept:
		return "note-removal-accept"
	case ItemNoteRemovalDeny:
		return "note-removal-deny"
	default:
		return "unknown"
	}
}

// IsNoteLevel reports whether resolving the item removes the whole note
// from the review view.
func (k ItemKind) IsNoteLevel() bool {
	switch k {
	case ItemNotePublish, ItemNoteDelete, ItemNoteRemovalAccept, ItemNoteRemovalDeny:
		return true
	default:
		return false
	}
}

// ItemKey identifies one actionable suggestion item. For field, tag, and
// move kinds the ID is the suggestion row id; for note-level kinds it is
// the note id.
type ItemKey struct {
	Kind ItemKind
	ID   int64
}

// String renders the key as "kind/id" for logs and map keys.
func (k ItemKey) String() string {
	return fmt.Sprintf("%s/%d", k.Kind, k.ID)
}
