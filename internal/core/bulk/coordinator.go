// Package bulk submits batch approve/deny actions over the current
// selection. A batch is not atomic: the server resolves each note
// independently, succeeded notes leave the selection, failed notes stay
// selected with their reasons attached. Dropping succeeded notes from
// the view is the caller's job, which lets the TUI show a confirmation
// badge before the card disappears.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/logging"
	"github.com/deckrev/deckrev/internal/core/selection"
)

// Sentinel errors for bulk submissions.
var (
	ErrEmptySelection = errors.New("bulk: nothing selected")
	ErrInFlight       = errors.New("bulk: a submission is already running")
)

// Submitter is the batch endpoint the coordinator needs.
type Submitter interface {
	BulkNoteAction(ctx context.Context, commitID int, noteIDs []int64, action api.BulkAction) (api.BulkResult, error)
}

// Coordinator runs one bulk submission at a time per process, locking the
// selection for its duration.
type Coordinator struct {
	api       Submitter
	selection *selection.Store
	bus       *eventbus.EventBus
	log       zerolog.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewCoordinator builds a coordinator over the batch endpoint and
// selection store.
func NewCoordinator(submitter Submitter, sel *selection.Store, bus *eventbus.EventBus) *Coordinator {
	return &Coordinator{
		api:       submitter,
		selection: sel,
		bus:       bus,
		log:       logging.Component("bulk"),
	}
}

// InFlight reports whether a submission is currently running.
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Submit sends the commit's current selection as one batch. On a
// transport-level failure the selection is left intact so the operator
// can resubmit. Succeeded notes leave the selection; failed notes keep
// their selection and get a visible reason. The caller removes
// succeeded notes from its view using the returned result.
func (c *Coordinator) Submit(ctx context.Context, commitID int, action api.BulkAction) (api.BulkResult, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return api.BulkResult{}, ErrInFlight
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	ids, err := c.selection.Get(ctx, commitID)
	if err != nil {
		return api.BulkResult{}, err
	}
	if len(ids) == 0 {
		return api.BulkResult{}, fmt.Errorf("%w: %s", api.ErrValidation, ErrEmptySelection)
	}

	submissionID := uuid.NewString()
	c.log.Info().
		Str("submission", submissionID).
		Int("commit", commitID).
		Int("notes", len(ids)).
		Str("action", string(action)).
		Msg("submitting bulk action")

	c.selection.Lock(commitID)
	defer c.selection.Unlock(commitID)

	result, err := c.api.BulkNoteAction(ctx, commitID, ids, action)
	if err != nil {
		c.log.Error().Err(err).Str("submission", submissionID).Msg("bulk submission failed")
		return api.BulkResult{}, fmt.Errorf("bulk %s: %w", action, err)
	}

	for _, id := range result.Succeeded {
		c.selection.ClearFailure(commitID, id)
		if rmErr := c.selection.Remove(ctx, commitID, id); rmErr != nil {
			c.log.Warn().Err(rmErr).Int64("note", id).Msg("selection prune failed")
		}
	}
	for _, f := range result.Failed {
		c.selection.FlagFailure(commitID, f.ID, f.Reason)
	}

	if c.bus != nil && len(result.Failed) > 0 {
		c.bus.PublishNotification(eventbus.NotificationPayload{
			Level:   eventbus.LevelWarning,
			Message: fmt.Sprintf("%d of %d notes failed", len(result.Failed), len(ids)),
		})
	}

	c.log.Info().
		Str("submission", submissionID).
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Msg("bulk action finished")
	return result, nil
}
