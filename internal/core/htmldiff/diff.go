package htmldiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Marker markup emitted by Diff. Stripping helpers depend on these exact
// strings; they are never nested inside one another.
const (
	insOpen  = `<ins class="diffins">`
	insClose = `</ins>`
	delOpen  = `<del class="diffdel">`
	delClose = `</del>`

	mediaAddedOpen   = `<span class="media-diff media-added" title="Added">`
	mediaRemovedOpen = `<span class="media-diff media-removed" title="Removed">`
	mediaClose       = `</span>`
)

// Diff computes the word-level visual diff between baseline and candidate
// field HTML. Insertions are wrapped in <ins>, deletions in <del>, and
// media elements inside a changed region get an added/removed indicator
// wrapper instead of markers. Equal inputs come back unmarked; an empty
// baseline renders the entire candidate as inserted.
func Diff(baseline, candidate string) string {
	if baseline == candidate {
		return candidate
	}

	baseTokens := Tokenize(baseline)
	candTokens := Tokenize(candidate)

	enc := newTokenEncoder()
	encBase := enc.encode(baseTokens)
	encCand := enc.encode(candTokens)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(encBase, encCand, false)
	diffs = dmp.DiffCleanupSemanticLossless(diffs)

	var out strings.Builder
	w := markerWriter{out: &out}
	for _, d := range diffs {
		for _, tok := range enc.decode(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				w.writeEqual(tok)
			case diffmatchpatch.DiffInsert:
				w.writeChanged(tok, true)
			case diffmatchpatch.DiffDelete:
				w.writeChanged(tok, false)
			}
		}
	}
	w.closeRun()
	return out.String()
}

// markerWriter groups consecutive changed tokens under a single marker
// element and diverts media tokens into indicator wrappers.
type markerWriter struct {
	out *strings.Builder
	// run is 0 (none), 1 (inside <ins>), -1 (inside <del>).
	run int
}

func (w *markerWriter) writeEqual(tok Token) {
	w.closeRun()
	w.out.WriteString(tok.Text)
}

func (w *markerWriter) writeChanged(tok Token, insert bool) {
	if tok.IsMedia() {
		// Media never sits inside a text marker.
		w.closeRun()
		if insert {
			w.out.WriteString(mediaAddedOpen)
		} else {
			w.out.WriteString(mediaRemovedOpen)
		}
		w.out.WriteString(tok.Text)
		w.out.WriteString(mediaClose)
		return
	}

	want := -1
	if insert {
		want = 1
	}
	if w.run != want {
		w.closeRun()
		if insert {
			w.out.WriteString(insOpen)
		} else {
			w.out.WriteString(delOpen)
		}
		w.run = want
	}
	w.out.WriteString(tok.Text)
}

func (w *markerWriter) closeRun() {
	switch w.run {
	case 1:
		w.out.WriteString(insClose)
	case -1:
		w.out.WriteString(delClose)
	}
	w.run = 0
}

// tokenEncoder maps distinct tokens onto unique runes so the character
// diff operates on whole tokens, the same trick diffmatchpatch uses for
// its line mode.
type tokenEncoder struct {
	runes  map[string]rune
	tokens []Token
	next   rune
}

func newTokenEncoder() *tokenEncoder {
	return &tokenEncoder{runes: make(map[string]rune), next: 1}
}

func (e *tokenEncoder) encode(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		r, ok := e.runes[tok.Text]
		if !ok {
			r = e.next
			e.next++
			// Surrogate halves are not valid runes; skip the range.
			if e.next == 0xD800 {
				e.next = 0xE000
			}
			e.runes[tok.Text] = r
			e.tokens = append(e.tokens, tok)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (e *tokenEncoder) decode(encoded string) []Token {
	var out []Token
	for _, r := range encoded {
		idx := int(r) - 1
		if r >= 0xE000 {
			idx = int(r) - 1 - (0xE000 - 0xD800)
		}
		if idx >= 0 && idx < len(e.tokens) {
			out = append(out, e.tokens[idx])
		}
	}
	return out
}
