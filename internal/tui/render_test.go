package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckrev/deckrev/internal/core/htmldiff"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		expected string
	}{
		{
			name:     "plain text passes through",
			fragment: "the quick fox",
			expected: "the quick fox",
		},
		{
			name:     "tags stripped",
			fragment: "<b>bold</b> and <i>italic</i>",
			expected: "bold and italic",
		},
		{
			name:     "entities resolved",
			fragment: "a &amp; b &lt;c&gt;",
			expected: "a & b <c>",
		},
		{
			name:     "br becomes newline",
			fragment: "line one<br>line two",
			expected: "line one\nline two",
		},
		{
			name:     "closing p becomes newline",
			fragment: "<p>first</p><p>second</p>",
			expected: "first\nsecond",
		},
		{
			name:     "image becomes filename badge",
			fragment: `before <img src="cat.jpg"> after`,
			expected: "before [cat.jpg] after",
		},
		{
			name:     "empty fragment",
			fragment: "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, flatten(tt.fragment))
		})
	}
}

func TestMediaLabel(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		expected string
	}{
		{"double quoted src", `<img src="photo.png">`, "photo.png"},
		{"single quoted src", `<img src='photo.png'>`, "photo.png"},
		{"uppercase attribute", `<IMG SRC="loud.gif">`, "loud.gif"},
		{"src among other attributes", `<img class="big" src="x.webp" alt="x">`, "x.webp"},
		{"audio tag", `<audio src="word.mp3"></audio>`, "word.mp3"},
		{"no src falls back", `<video controls>`, "media"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mediaLabel(tt.tag))
		})
	}
}

func TestIsBreakTag(t *testing.T) {
	assert.True(t, isBreakTag("<br>"))
	assert.True(t, isBreakTag("<br/>"))
	assert.True(t, isBreakTag("</p>"))
	assert.True(t, isBreakTag("</div>"))
	assert.False(t, isBreakTag("<p>"))
	assert.False(t, isBreakTag("<div>"))
	assert.False(t, isBreakTag("<b>"))
}

func TestRenderDiffContent(t *testing.T) {
	diffed := htmldiff.Diff("the old word", "the new word")
	out := renderDiff(diffed)

	assert.Contains(t, out, "the ")
	assert.Contains(t, out, "old")
	assert.Contains(t, out, "new")
	assert.Contains(t, out, " word")
}

func TestRenderDiffMediaBadges(t *testing.T) {
	diffed := htmldiff.Diff(
		`keep <img src="gone.png">`,
		`keep <img src="fresh.png">`,
	)
	out := renderDiff(diffed)

	assert.Contains(t, out, "[+fresh.png]")
	assert.Contains(t, out, "[-gone.png]")
	assert.NotContains(t, out, "<img")
}

func TestRenderDiffUnchangedHasNoBadges(t *testing.T) {
	diffed := htmldiff.Diff("same text", "same text")
	out := renderDiff(diffed)

	assert.Equal(t, "same text", out)
}
