// Package pagination drives incremental loading of a commit's notes and
// the cross-reload restoration protocol. The server pages by offset and
// limit; the controller tracks how much of the commit is loaded, appends
// parsed notes into the review session, and adjusts its counters locally
// when resolutions shrink the commit.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/fragment"
	"github.com/deckrev/deckrev/internal/core/logging"
	"github.com/deckrev/deckrev/internal/core/review"
)

// ErrExhausted means every remaining note of the commit is already
// loaded.
var ErrExhausted = errors.New("pagination: no more pages")

// Fetcher is the paging endpoint the controller needs.
type Fetcher interface {
	CommitPage(ctx context.Context, commitID, offset, limit int) (api.Page, error)
}

// State is a snapshot of the controller's counters.
type State struct {
	Loaded     int
	Total      int
	NextOffset *int
}

// HasMore reports whether another page can be fetched.
func (s State) HasMore() bool {
	return s.NextOffset != nil || (s.Loaded == 0 && s.Total == 0)
}

// Controller pages one commit into one session.
type Controller struct {
	api      Fetcher
	session  *review.Session
	pageSize int
	log      zerolog.Logger

	mu         sync.Mutex
	fetched    bool
	loaded     int
	total      int
	nextOffset *int
}

// NewController builds a controller for the session's commit.
func NewController(fetcher Fetcher, session *review.Session, pageSize int) *Controller {
	return &Controller{
		api:      fetcher,
		session:  session,
		pageSize: pageSize,
		log:      logging.Component("pagination"),
	}
}

// State returns the current counters.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Loaded: c.loaded, Total: c.total, NextOffset: c.nextOffset}
}

// LoadMore fetches the next page, parses it, and appends the notes to
// the session. The return value is the number of notes added to the
// view. ErrExhausted is returned once the cursor runs out; counters are
// untouched when the fetch or parse fails.
func (c *Controller) LoadMore(ctx context.Context) (int, error) {
	c.mu.Lock()
	offset := 0
	if c.fetched {
		if c.nextOffset == nil {
			c.mu.Unlock()
			return 0, ErrExhausted
		}
		offset = *c.nextOffset
	}
	c.mu.Unlock()

	page, err := c.api.CommitPage(ctx, c.session.CommitID(), offset, c.pageSize)
	if err != nil {
		return 0, fmt.Errorf("load page at offset %d: %w", offset, err)
	}

	notes, err := fragment.ParseNotes(page.HTML)
	if err != nil {
		return 0, fmt.Errorf("parse page at offset %d: %w", offset, err)
	}

	added := c.session.AppendNotes(notes)

	c.mu.Lock()
	c.fetched = true
	c.loaded += page.Loaded
	c.total = page.Total
	c.nextOffset = page.NextOffset
	if c.loaded > c.total {
		// Counters drifted against a shrinking commit; trust the server total.
		c.loaded = c.total
	}
	loaded, total := c.loaded, c.total
	c.mu.Unlock()

	c.log.Debug().
		Int("commit", c.session.CommitID()).
		Int("offset", offset).
		Int("added", added).
		Int("loaded", loaded).
		Int("total", total).
		Msg("page loaded")
	return added, nil
}

// OnNoteResolved shrinks both counters when a resolution removes a note
// from the commit. No fetch happens; the local model already removed the
// note, and remaining offsets stay valid because the cursor only ever
// moves forward.
func (c *Controller) OnNoteResolved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded > 0 {
		c.loaded--
	}
	if c.total > 0 {
		c.total--
	}
}
