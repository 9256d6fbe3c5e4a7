// Package fragment parses the server-rendered commit page fragments into
// the in-memory note model. The rendered markup is strictly input here:
// the model is authoritative for the rest of the session and is never
// reconstructed from markup the client itself rendered.
package fragment

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/deckrev/deckrev/internal/core/deck"
)

// ParseNotes extracts every note card from a commit page fragment. Field
// baseline and candidate content arrive HTML-escaped inside the fragment;
// the parse unescapes them, so the returned model carries the raw field
// markup the diff renderer works on.
func ParseNotes(pageHTML string) ([]deck.Note, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(pageHTML), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse page fragment: %w", err)
	}

	var notes []deck.Note
	for _, n := range nodes {
		walk(n, func(el *html.Node) {
			if hasClass(el, "note-card") {
				note, err := parseNote(el)
				if err == nil {
					notes = append(notes, note)
				}
			}
		})
	}

	for i := range notes {
		if err := notes[i].Validate(); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

func parseNote(el *html.Node) (deck.Note, error) {
	noteID, err := int64Attr(el, "data-note-id")
	if err != nil {
		return deck.Note{}, err
	}

	note := deck.Note{
		ID:        noteID,
		GUID:      attr(el, "data-guid"),
		DeckHash:  attr(el, "data-deck-hash"),
		Reviewed:  boolAttr(el, "data-reviewed"),
		DeleteReq: boolAttr(el, "data-delete-req"),
	}
	if owner, err := int64Attr(el, "data-owner"); err == nil {
		note.OwnerID = owner
	}

	walk(el, func(child *html.Node) {
		switch {
		case hasClass(child, "note-field"):
			if f, err := parseField(child); err == nil {
				note.Fields = append(note.Fields, f)
			}
		case hasClass(child, "note-tag"):
			if t, err := parseTag(child); err == nil {
				note.Tags = append(note.Tags, t)
			}
		case hasClass(child, "move-req"):
			if id, err := int64Attr(child, "data-move-id"); err == nil {
				note.MoveReq = &deck.MoveRequest{ID: id, TargetPath: attr(child, "data-target")}
			}
		}
	})
	return note, nil
}

func parseField(el *html.Node) (deck.Field, error) {
	pos, err := intAttr(el, "data-position")
	if err != nil {
		return deck.Field{}, err
	}

	field := deck.Field{
		Position:  pos,
		Name:      attr(el, "data-name"),
		Inherited: boolAttr(el, "data-inherited"),
		Protected: boolAttr(el, "data-protected"),
	}

	walk(el, func(child *html.Node) {
		switch {
		case hasClass(child, "reviewed-content"):
			field.Baseline = textContent(child)
		case hasClass(child, "suggestion-content"):
			id, err := int64Attr(child, "data-suggestion-id")
			if err != nil {
				return
			}
			field.Suggestion = &deck.Suggestion{ID: id, Content: textContent(child)}
		}
	})
	return field, nil
}

func parseTag(el *html.Node) (deck.Tag, error) {
	id, err := int64Attr(el, "data-tag-id")
	if err != nil {
		return deck.Tag{}, err
	}

	class := deck.TagReviewed
	switch {
	case hasClass(el, "tag-new"):
		class = deck.TagNew
	case hasClass(el, "tag-removed"):
		class = deck.TagRemoved
	}

	return deck.Tag{ID: id, Content: strings.TrimSpace(textContent(el)), Class: class}, nil
}

// walk visits every element node beneath (and including) n.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// textContent concatenates all text beneath n. Escaped field HTML comes
// back as raw markup here because the tokenizer already resolved
// entities.
func textContent(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return strings.TrimSpace(b.String())
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func boolAttr(n *html.Node, name string) bool {
	v := attr(n, name)
	return v == "true" || v == "1"
}

func intAttr(n *html.Node, name string) (int, error) {
	v := attr(n, name)
	if v == "" {
		return 0, fmt.Errorf("missing attribute %s", name)
	}
	return strconv.Atoi(v)
}

func int64Attr(n *html.Node, name string) (int64, error) {
	v := attr(n, name)
	if v == "" {
		return 0, fmt.Errorf("missing attribute %s", name)
	}
	return strconv.ParseInt(v, 10, 64)
}
