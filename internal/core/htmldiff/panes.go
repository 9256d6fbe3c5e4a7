package htmldiff

import "strings"

// StripMarkers removes all diff annotations from a diffed fragment:
// deletions disappear with their content, insertions are unwrapped, and
// media indicator wrappers are resolved the same way. The result's text
// content equals the candidate's text content.
func StripMarkers(diffed string) string {
	return strip(diffed, delOpen, delClose, insOpen, insClose, mediaRemovedOpen, mediaAddedOpen)
}

// CandidatePane renders the candidate-only side of a split view:
// deletions are stripped, insertions kept (unwrapped markers stay as
// markers so the pane still highlights what is new).
func CandidatePane(diffed string) string {
	return drop(diffed, delOpen, delClose, mediaRemovedOpen)
}

// BaselinePane renders the baseline-only side of a split view:
// insertions are stripped entirely, deletion markers stay since they
// annotate content the baseline actually has.
func BaselinePane(diffed string) string {
	return drop(diffed, insOpen, insClose, mediaAddedOpen)
}

// strip removes dropOpen..dropClose blocks with their content, unwraps
// unwrapOpen/unwrapClose pairs, and resolves media wrappers: dropMedia
// blocks vanish, keepMedia blocks are unwrapped. Marker markup is never
// nested, so a linear scan suffices.
func strip(s, dropOpen, dropClose, unwrapOpen, unwrapClose, dropMedia, keepMedia string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		switch {
		case dropOpen != "" && strings.HasPrefix(s[i:], dropOpen):
			end := strings.Index(s[i:], dropClose)
			if end < 0 {
				out.WriteString(s[i:])
				return out.String()
			}
			i += end + len(dropClose)
		case dropMedia != "" && strings.HasPrefix(s[i:], dropMedia):
			end := strings.Index(s[i:], mediaClose)
			if end < 0 {
				out.WriteString(s[i:])
				return out.String()
			}
			i += end + len(mediaClose)
		case unwrapOpen != "" && strings.HasPrefix(s[i:], unwrapOpen):
			i += len(unwrapOpen)
		case unwrapClose != "" && strings.HasPrefix(s[i:], unwrapClose):
			i += len(unwrapClose)
		case keepMedia != "" && strings.HasPrefix(s[i:], keepMedia):
			// Unwrap: emit the wrapped media tag, drop the wrapper.
			rest := s[i+len(keepMedia):]
			end := strings.Index(rest, mediaClose)
			if end < 0 {
				out.WriteString(rest)
				return out.String()
			}
			out.WriteString(rest[:end])
			i += len(keepMedia) + end + len(mediaClose)
		default:
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}

// drop removes open..close blocks with their content plus dropMedia
// wrappers with their content, leaving everything else untouched.
func drop(s, open, close, dropMedia string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], open):
			end := strings.Index(s[i:], close)
			if end < 0 {
				out.WriteString(s[i:])
				return out.String()
			}
			i += end + len(close)
		case strings.HasPrefix(s[i:], dropMedia):
			end := strings.Index(s[i:], mediaClose)
			if end < 0 {
				out.WriteString(s[i:])
				return out.String()
			}
			i += end + len(mediaClose)
		default:
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}
