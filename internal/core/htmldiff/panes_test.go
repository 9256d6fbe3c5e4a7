package htmldiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatePane(t *testing.T) {
	diffed := Diff("the quick fox", "the slow fox")
	pane := CandidatePane(diffed)

	assert.NotContains(t, pane, "quick")
	assert.Contains(t, pane, `<ins class="diffins">slow</ins>`)
}

func TestCandidatePaneDropsRemovedMedia(t *testing.T) {
	diffed := Diff(`text <img src="old.jpg">`, "text")
	pane := CandidatePane(diffed)

	assert.NotContains(t, pane, "old.jpg")
}

func TestBaselinePane(t *testing.T) {
	diffed := Diff("the quick fox", "the slow fox")
	pane := BaselinePane(diffed)

	assert.NotContains(t, pane, "slow")
	assert.Contains(t, pane, `<del class="diffdel">quick</del>`)
}

func TestBaselinePaneKeepsRemovedMedia(t *testing.T) {
	// Removed media is baseline content; the indicator stays on that side.
	diffed := Diff(`text <img src="old.jpg">`, `text <img src="new.jpg">`)
	pane := BaselinePane(diffed)

	assert.Contains(t, pane, "old.jpg")
	assert.NotContains(t, pane, "new.jpg")
}

func TestRenderingToggle(t *testing.T) {
	r := NewRendering("old words", "new words")
	diffView := r.Current()
	assert.Contains(t, diffView, `<ins class="diffins">`)
	assert.False(t, r.ShowingSource())

	r.Toggle()
	assert.True(t, r.ShowingSource())
	assert.Equal(t, "new words", r.Current())

	// Toggling back restores the exact diff rendering.
	r.Toggle()
	assert.Equal(t, diffView, r.Current())
}

func TestStaticRendering(t *testing.T) {
	r := StaticRendering("<b>final</b>")
	assert.Equal(t, "<b>final</b>", r.Current())
	r.Toggle()
	assert.Equal(t, "<b>final</b>", r.Current())
}
