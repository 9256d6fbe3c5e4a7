package htmldiff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			"words and spaces",
			"hello  world",
			[]Token{
				{TokenWord, "hello"},
				{TokenSpace, "  "},
				{TokenWord, "world"},
			},
		},
		{
			"tag is atomic",
			`<b class="x">hi</b>`,
			[]Token{
				{TokenTag, `<b class="x">`},
				{TokenWord, "hi"},
				{TokenTag, "</b>"},
			},
		},
		{
			"dangling bracket is text",
			"a < b",
			[]Token{
				{TokenWord, "a"},
				{TokenSpace, " "},
				{TokenWord, "< b"},
			},
		},
		{
			"empty input",
			"",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenIsMedia(t *testing.T) {
	assert.True(t, Token{TokenTag, `<img src="a.jpg">`}.IsMedia())
	assert.True(t, Token{TokenTag, `<IMG SRC="a.jpg">`}.IsMedia())
	assert.True(t, Token{TokenTag, `<audio controls>`}.IsMedia())
	assert.False(t, Token{TokenTag, "<b>"}.IsMedia())
	assert.False(t, Token{TokenWord, "img"}.IsMedia())
}

func TestDiffEqualInputsUnmarked(t *testing.T) {
	content := `<b>same</b> content <img src="pic.jpg">`
	assert.Equal(t, content, Diff(content, content))
}

func TestDiffEmptyBaselineAllInserted(t *testing.T) {
	got := Diff("", "hello world")
	assert.Equal(t, `<ins class="diffins">hello world</ins>`, got)
}

func TestDiffWordChange(t *testing.T) {
	got := Diff("the quick fox", "the slow fox")

	assert.Contains(t, got, `<del class="diffdel">quick</del>`)
	assert.Contains(t, got, `<ins class="diffins">slow</ins>`)
	assert.NotContains(t, StripMarkers(got), "quick")
}

func TestDiffNeverSplitsTags(t *testing.T) {
	got := Diff(`<b>old</b>`, `<b>new</b>`)

	assert.Contains(t, got, `<del class="diffdel">old</del>`)
	assert.Contains(t, got, `<ins class="diffins">new</ins>`)
	// The surrounding tags stay intact outside any marker.
	assert.NotContains(t, got, `<ins class="diffins"><b>`)
	assert.NotContains(t, got, `<del class="diffdel"><b>`)
}

func TestDiffMediaIndicators(t *testing.T) {
	t.Run("added media", func(t *testing.T) {
		got := Diff("", `<img src="a.jpg">`)
		assert.Equal(t, `<span class="media-diff media-added" title="Added"><img src="a.jpg"></span>`, got)
	})

	t.Run("removed media", func(t *testing.T) {
		got := Diff(`<img src="a.jpg">`, "")
		assert.Equal(t, `<span class="media-diff media-removed" title="Removed"><img src="a.jpg"></span>`, got)
	})

	t.Run("media indicator never nests inside a text marker", func(t *testing.T) {
		got := Diff("caption one", `caption two <img src="a.jpg">`)
		assert.NotContains(t, got, `<ins class="diffins"><span`)
		assert.NotContains(t, got, `<del class="diffdel"><span`)
		assert.Contains(t, got, `media-added`)
	})
}

// Stripping every marker from a diff must reconstruct the candidate
// exactly, whatever the inputs were.
func TestStripMarkersReconstructsCandidate(t *testing.T) {
	tests := []struct {
		name      string
		baseline  string
		candidate string
	}{
		{"word replacement", "the quick fox", "the slow fox"},
		{"empty baseline", "", "brand new content"},
		{"empty candidate", "old content", ""},
		{"tag change", `<b>bold</b> text`, `<i>italic</i> text`},
		{"media added", "a cat", `a cat <img src="cat.jpg">`},
		{"media removed", `a cat <img src="cat.jpg">`, "a cat"},
		{"media swapped", `<img src="old.png"> x`, `<img src="new.png"> x`},
		{"whitespace only", "a  b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffed := Diff(tt.baseline, tt.candidate)
			assert.Equal(t, tt.candidate, StripMarkers(diffed))
		})
	}
}

func TestStripMarkersOnPlainContentIsIdentity(t *testing.T) {
	content := `plain <b>markup</b> and <img src="x.jpg">`
	assert.Equal(t, content, StripMarkers(content))
}

func TestDiffLargeInputExceedsRuneEncoding(t *testing.T) {
	// More distinct tokens than fit below the surrogate range still diff
	// correctly; the encoder skips 0xD800..0xDFFF.
	var b strings.Builder
	for i := 0; i < 60000; i++ {
		fmt.Fprintf(&b, "w%d ", i)
	}
	baseline := b.String()
	candidate := baseline + "tail"

	diffed := Diff(baseline, candidate)
	require.Contains(t, diffed, `<ins class="diffins">`)
	assert.Equal(t, candidate, StripMarkers(diffed))
}
