package htmldiff

import "strings"

// SegmentKind classifies one region of a diffed fragment.
type SegmentKind int

const (
	SegEqual SegmentKind = iota
	SegInserted
	SegDeleted
	SegMediaAdded
	SegMediaRemoved
)

// Segment is one contiguous region of a diffed fragment. Text still
// contains the content's own markup, only the diff markers are resolved.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Segments splits a diffed fragment into its marked regions so renderers
// that cannot display HTML (the terminal view) can style each region
// directly. Unmarked content becomes SegEqual segments.
func Segments(diffed string) []Segment {
	var out []Segment
	var equal strings.Builder

	flushEqual := func() {
		if equal.Len() > 0 {
			out = append(out, Segment{Kind: SegEqual, Text: equal.String()})
			equal.Reset()
		}
	}

	marked := func(s string, open, close string, kind SegmentKind) (int, bool) {
		if !strings.HasPrefix(s, open) {
			return 0, false
		}
		end := strings.Index(s[len(open):], close)
		if end < 0 {
			return 0, false
		}
		flushEqual()
		out = append(out, Segment{Kind: kind, Text: s[len(open) : len(open)+end]})
		return len(open) + end + len(close), true
	}

	i := 0
	for i < len(diffed) {
		s := diffed[i:]
		if n, ok := marked(s, insOpen, insClose, SegInserted); ok {
			i += n
			continue
		}
		if n, ok := marked(s, delOpen, delClose, SegDeleted); ok {
			i += n
			continue
		}
		if n, ok := marked(s, mediaAddedOpen, mediaClose, SegMediaAdded); ok {
			i += n
			continue
		}
		if n, ok := marked(s, mediaRemovedOpen, mediaClose, SegMediaRemoved); ok {
			i += n
			continue
		}
		equal.WriteByte(diffed[i])
		i++
	}
	flushEqual()
	return out
}
