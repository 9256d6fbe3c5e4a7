package bulk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/selection"
	"github.com/deckrev/deckrev/internal/data/stores"
)

type fakeSubmitter struct {
	gotIDs    []int64
	gotAction api.BulkAction
	result    api.BulkResult
	err       error
}

func (f *fakeSubmitter) BulkNoteAction(_ context.Context, _ int, ids []int64, action api.BulkAction) (api.BulkResult, error) {
	f.gotIDs = ids
	f.gotAction = action
	return f.result, f.err
}

func newFixture(submitter *fakeSubmitter) (*Coordinator, *selection.Store, *eventbus.EventBus) {
	bus := eventbus.New()
	sel := selection.NewStore(stores.NewMemoryKV(), bus)
	return NewCoordinator(submitter, sel, bus), sel, bus
}

func TestSubmitEmptySelection(t *testing.T) {
	coord, _, _ := newFixture(&fakeSubmitter{})

	_, err := coord.Submit(context.Background(), 1, api.BulkApprove)
	assert.ErrorIs(t, err, api.ErrValidation)
}

func TestSubmitPartialFailure(t *testing.T) {
	ctx := context.Background()
	submitter := &fakeSubmitter{
		result: api.BulkResult{
			Succeeded: []int64{101, 103},
			Failed:    []api.BulkFailure{{ID: 102, Reason: "already resolved"}},
		},
	}
	coord, sel, _ := newFixture(submitter)
	require.NoError(t, sel.SelectAll(ctx, 1, []int64{101, 102, 103}))

	result, err := coord.Submit(ctx, 1, api.BulkApprove)
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 2)
	assert.Equal(t, []int64{101, 102, 103}, submitter.gotIDs)
	assert.Equal(t, api.BulkApprove, submitter.gotAction)

	// Succeeded notes leave the selection.
	ids, err := sel.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{102}, ids)

	// Failed notes stay selected with a visible reason.
	assert.Equal(t, "already resolved", sel.FailureReason(1, 102))
}

func TestSubmitTransportFailureKeepsSelection(t *testing.T) {
	ctx := context.Background()
	submitter := &fakeSubmitter{err: errors.New("connection refused")}
	coord, sel, _ := newFixture(submitter)
	require.NoError(t, sel.SelectAll(ctx, 1, []int64{101, 102}))

	_, err := coord.Submit(ctx, 1, api.BulkDeny)
	require.Error(t, err)

	// Nothing moved: the operator can resubmit as-is.
	ids, selErr := sel.Get(ctx, 1)
	require.NoError(t, selErr)
	assert.Equal(t, []int64{101, 102}, ids)

	// The lock was released.
	_, err = sel.Toggle(ctx, 1, 103)
	assert.NoError(t, err)
}

func TestSubmitNotifiesOnFailures(t *testing.T) {
	ctx := context.Background()
	submitter := &fakeSubmitter{
		result: api.BulkResult{Failed: []api.BulkFailure{{ID: 101, Reason: "locked"}}},
	}
	coord, sel, bus := newFixture(submitter)

	var notes []eventbus.NotificationPayload
	bus.SubscribeNotification(func(p eventbus.NotificationPayload) {
		notes = append(notes, p)
	})

	require.NoError(t, sel.SelectAll(ctx, 1, []int64{101}))
	_, err := coord.Submit(ctx, 1, api.BulkApprove)
	require.NoError(t, err)

	require.Len(t, notes, 1)
	assert.Equal(t, eventbus.LevelWarning, notes[0].Level)
}
