package pagination

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/review"
)

// fakeFetcher serves pages out of a fixed ordered note id list, rendering
// minimal note-card markup the way the server does.
type fakeFetcher struct {
	noteIDs []int64
	calls   int
}

func (f *fakeFetcher) CommitPage(_ context.Context, _ int, offset, limit int) (api.Page, error) {
	f.calls++
	if offset < 0 {
		offset = 0
	}
	end := offset + limit
	if end > len(f.noteIDs) {
		end = len(f.noteIDs)
	}

	var b strings.Builder
	for _, id := range f.noteIDs[offset:end] {
		fmt.Fprintf(&b, `<div class="note-card" data-note-id="%d" data-guid="g%d" data-deck-hash="h"></div>`, id, id)
	}

	page := api.Page{
		HTML:   b.String(),
		Loaded: end - offset,
		Total:  len(f.noteIDs),
	}
	if end < len(f.noteIDs) {
		next := end
		page.NextOffset = &next
	}
	return page, nil
}

func newFixture(noteIDs []int64, pageSize int) (*Controller, *review.Session, *fakeFetcher) {
	bus := eventbus.New()
	session := review.NewSession(1, 5*time.Second, bus)
	fetcher := &fakeFetcher{noteIDs: noteIDs}
	return NewController(fetcher, session, pageSize), session, fetcher
}

func TestLoadMorePagesThroughCommit(t *testing.T) {
	ctx := context.Background()
	ctrl, session, _ := newFixture([]int64{1, 2, 3, 4, 5}, 2)

	added, err := ctrl.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	st := ctrl.State()
	assert.Equal(t, 2, st.Loaded)
	assert.Equal(t, 5, st.Total)
	require.NotNil(t, st.NextOffset)
	assert.Equal(t, 2, *st.NextOffset)

	_, err = ctrl.LoadMore(ctx)
	require.NoError(t, err)
	added, err = ctrl.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	st = ctrl.State()
	assert.Equal(t, 5, st.Loaded)
	assert.Nil(t, st.NextOffset)
	assert.False(t, st.HasMore())
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, session.NoteIDs())

	_, err = ctrl.LoadMore(ctx)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestOnNoteResolvedShrinksCountersWithoutFetch(t *testing.T) {
	ctx := context.Background()
	ctrl, _, fetcher := newFixture([]int64{1, 2, 3, 4, 5}, 3)

	_, err := ctrl.LoadMore(ctx)
	require.NoError(t, err)
	calls := fetcher.calls

	ctrl.OnNoteResolved()
	ctrl.OnNoteResolved()

	st := ctrl.State()
	assert.Equal(t, 1, st.Loaded)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, calls, fetcher.calls)
}

func TestCountersNeverGoNegative(t *testing.T) {
	ctrl, _, _ := newFixture(nil, 3)
	ctrl.OnNoteResolved()
	st := ctrl.State()
	assert.Equal(t, 0, st.Loaded)
	assert.Equal(t, 0, st.Total)
}
