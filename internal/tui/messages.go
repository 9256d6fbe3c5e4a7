package tui

import (
	"time"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/deck"
	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/pagination"
)

// initDoneMsg carries the result of the initial page load plus the
// restoration attempt.
type initDoneMsg struct {
	snap      pagination.Snapshot
	haveSnap  bool
	foundNote bool
	err       error
}

// pageLoadedMsg carries the result of a load-more fetch.
type pageLoadedMsg struct {
	added int
	err   error
}

// actionDoneMsg is the completion of one per-item resolution request.
type actionDoneMsg struct {
	key      deck.ItemKey
	token    uint64
	accepted bool
	err      error
}

// bulkDoneMsg is the completion of a bulk submission.
type bulkDoneMsg struct {
	action api.BulkAction
	result api.BulkResult
	err    error
}

// bulkFlashMsg ends the confirmation flash on resolved notes and removes
// them from the view.
type bulkFlashMsg struct {
	ids    []int64
	action api.BulkAction
}

// editOpenedMsg carries a freshly loaded edit session.
type editOpenedMsg struct {
	err error
}

// editSavedMsg is the completion of an edit-session save.
type editSavedMsg struct {
	err error
}

// mediaResolvedMsg is the completion of one presigned-URL exchange.
type mediaResolvedMsg struct {
	id  string
	err error
}

// busEventMsg wraps an engine event forwarded from the event bus.
type busEventMsg struct {
	noteResolved *eventbus.NoteResolvedPayload
	selection    *eventbus.SelectionChangedPayload
	notification *eventbus.NotificationPayload
}

// tickMsg drives the failsafe sweep and toast expiry.
type tickMsg time.Time
