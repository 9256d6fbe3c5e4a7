package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/core/deck"
)

const samplePage = `
<div class="note-card" data-note-id="101" data-guid="abc123" data-deck-hash="deadbeef" data-owner="7" data-reviewed="true" data-delete-req="false">
  <div class="note-field" data-position="0" data-name="Front" data-inherited="false" data-protected="false">
    <div class="reviewed-content">the &lt;b&gt;old&lt;/b&gt; front</div>
    <div class="suggestion-content" data-suggestion-id="11">the &lt;b&gt;new&lt;/b&gt; front</div>
  </div>
  <div class="note-field" data-position="1" data-name="Back" data-inherited="true" data-protected="false">
    <div class="reviewed-content">inherited back</div>
  </div>
  <span class="note-tag" data-tag-id="0">verb</span>
  <span class="note-tag tag-new" data-tag-id="21">leech</span>
  <span class="note-tag tag-removed" data-tag-id="22">verb</span>
  <div class="move-req" data-move-id="31" data-target="Deck::Grammar"></div>
</div>
<div class="note-card" data-note-id="102" data-guid="def456" data-deck-hash="deadbeef" data-reviewed="false" data-delete-req="true">
  <div class="note-field" data-position="0" data-name="Front" data-inherited="false" data-protected="false">
    <div class="suggestion-content" data-suggestion-id="12">brand new note</div>
  </div>
</div>
`

func TestParseNotes(t *testing.T) {
	notes, err := ParseNotes(samplePage)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	n := notes[0]
	assert.Equal(t, int64(101), n.ID)
	assert.Equal(t, "abc123", n.GUID)
	assert.Equal(t, "deadbeef", n.DeckHash)
	assert.Equal(t, int64(7), n.OwnerID)
	assert.True(t, n.Reviewed)
	assert.False(t, n.DeleteReq)

	require.Len(t, n.Fields, 2)
	front := n.Fields[0]
	assert.Equal(t, "Front", front.Name)
	// Escaped field markup comes back as raw HTML.
	assert.Equal(t, "the <b>old</b> front", front.Baseline)
	require.NotNil(t, front.Suggestion)
	assert.Equal(t, int64(11), front.Suggestion.ID)
	assert.Equal(t, "the <b>new</b> front", front.Suggestion.Content)

	back := n.Fields[1]
	assert.True(t, back.Inherited)
	assert.Nil(t, back.Suggestion)

	require.Len(t, n.Tags, 3)
	assert.Equal(t, deck.TagReviewed, n.Tags[0].Class)
	assert.Equal(t, deck.Tag{ID: 21, Content: "leech", Class: deck.TagNew}, n.Tags[1])
	assert.Equal(t, deck.Tag{ID: 22, Content: "verb", Class: deck.TagRemoved}, n.Tags[2])

	require.NotNil(t, n.MoveReq)
	assert.Equal(t, int64(31), n.MoveReq.ID)
	assert.Equal(t, "Deck::Grammar", n.MoveReq.TargetPath)

	m := notes[1]
	assert.Equal(t, int64(102), m.ID)
	assert.True(t, m.DeleteReq)
	require.Len(t, m.Fields, 1)
	assert.Equal(t, "", m.Fields[0].Baseline)
}

func TestParseNotesEmptyPage(t *testing.T) {
	notes, err := ParseNotes("")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestParseNotesSkipsMalformedCards(t *testing.T) {
	// A card without a note id cannot join the model.
	page := `<div class="note-card" data-guid="x"><div class="note-field" data-position="0"></div></div>`
	notes, err := ParseNotes(page)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestParseNotesRejectsInheritedSuggestion(t *testing.T) {
	page := `
<div class="note-card" data-note-id="1" data-guid="g" data-deck-hash="h">
  <div class="note-field" data-position="0" data-name="F" data-inherited="true">
    <div class="suggestion-content" data-suggestion-id="5">nope</div>
  </div>
</div>`
	_, err := ParseNotes(page)
	assert.Error(t, err)
}
