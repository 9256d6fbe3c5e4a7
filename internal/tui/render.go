package tui

import (
	"html"
	"strings"

	"github.com/deckrev/deckrev/internal/core/htmldiff"
)

// renderDiff converts a diffed field fragment into styled terminal text:
// insertions green, deletions red strikethrough, media indicators as
// badges. The content's own markup is flattened to plain text.
func renderDiff(diffed string) string {
	var b strings.Builder
	for _, seg := range htmldiff.Segments(diffed) {
		switch seg.Kind {
		case htmldiff.SegEqual:
			b.WriteString(flatten(seg.Text))
		case htmldiff.SegInserted:
			b.WriteString(insStyle.Render(flatten(seg.Text)))
		case htmldiff.SegDeleted:
			b.WriteString(delStyle.Render(flatten(seg.Text)))
		case htmldiff.SegMediaAdded:
			b.WriteString(mediaAddedStyle.Render("[+" + mediaLabel(seg.Text) + "]"))
		case htmldiff.SegMediaRemoved:
			b.WriteString(mediaRemovedStyle.Render("[-" + mediaLabel(seg.Text) + "]"))
		}
	}
	return b.String()
}

// flatten strips markup tags from field content and resolves entities,
// replacing media tags with a filename badge.
func flatten(fragment string) string {
	var b strings.Builder
	for _, tok := range htmldiff.Tokenize(fragment) {
		switch {
		case tok.IsMedia():
			b.WriteString("[" + mediaLabel(tok.Text) + "]")
		case tok.Kind == htmldiff.TokenTag:
			if isBreakTag(tok.Text) {
				b.WriteString("\n")
			}
		default:
			b.WriteString(html.UnescapeString(tok.Text))
		}
	}
	return b.String()
}

func isBreakTag(tag string) bool {
	lower := strings.ToLower(tag)
	return strings.HasPrefix(lower, "<br") ||
		strings.HasPrefix(lower, "</p") ||
		strings.HasPrefix(lower, "</div")
}

// mediaLabel extracts a short label for a media tag, preferring the src
// filename.
func mediaLabel(mediaTag string) string {
	for _, attr := range []string{`src="`, `src='`} {
		if idx := strings.Index(strings.ToLower(mediaTag), attr); idx >= 0 {
			rest := mediaTag[idx+len(attr):]
			if end := strings.IndexAny(rest, `"'`); end >= 0 {
				return rest[:end]
			}
		}
	}
	return "media"
}
