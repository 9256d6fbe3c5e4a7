package api

// Page is one page of a commit's note listing.
type Page struct {
	HTML       string `json:"html"`
	Loaded     int    `json:"loaded"`
	NextOffset *int   `json:"next_offset"`
	Total      int    `json:"total"`
}

// EditField is one field of an all-fields edit session.
type EditField struct {
	Position          int    `json:"position"`
	Name              string `json:"name"`
	ReviewedContent   string `json:"reviewed_content"`
	SuggestionContent string `json:"suggestion_content"`
	Inherited         bool   `json:"inherited"`
	SuggestionID      int64  `json:"suggestion_id"`
}

// EditSession is the response of GetAllFieldsForEdit.
type EditSession struct {
	Fields       []EditField `json:"fields"`
	NoteReviewed bool        `json:"note_reviewed"`
}

// FieldUpdate is one entry of a batch field-suggestion update.
type FieldUpdate struct {
	Position int    `json:"position"`
	Content  string `json:"content"`
}

// BatchEditResult is the response of BatchUpdateFieldSuggestions.
type BatchEditResult struct {
	Success      bool `json:"success"`
	CreatedCount int  `json:"created_count"`
	UpdatedCount int  `json:"updated_count"`
}

// BulkAction selects the bulk operation applied to a selection.
type BulkAction string

// Supported bulk actions.
const (
	BulkApprove BulkAction = "approve"
	BulkDeny    BulkAction = "deny"
)

// BulkFailure is one per-item failure of a bulk submission.
type BulkFailure struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult is the per-item outcome of a bulk submission. The operation
// is not atomic; both lists can be non-empty.
type BulkResult struct {
	Succeeded []int64       `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// Presigned is a short-lived media access URL.
type Presigned struct {
	URL       string `json:"presigned_url"`
	ExpiresIn int    `json:"expires_in,omitempty"` // seconds, 0 when the server omits it
}

// CommitSummary is one row of the open-reviews listing.
type CommitSummary struct {
	ID        int    `json:"commit_id"`
	DeckHash  string `json:"deck_hash"`
	DeckName  string `json:"deck_name"`
	Timestamp string `json:"timestamp"`
	Rationale string `json:"rationale"`
	NoteCount int    `json:"note_count"`
}
