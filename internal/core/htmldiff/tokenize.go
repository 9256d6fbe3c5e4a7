// Package htmldiff renders word-level visual diffs between a field's
// published baseline and its proposed candidate content. Markup tags are
// opaque atomic tokens, so insertion/deletion markers never split a tag,
// and embedded media is wrapped with an added/removed indicator instead
// of being text-diffed.
package htmldiff

import "strings"

// TokenKind classifies one diff token.
type TokenKind int

const (
	TokenWord TokenKind = iota
	TokenSpace
	TokenTag
)

// Token is one atomic unit of the diff: a word, a whitespace run, or a
// complete markup tag.
type Token struct {
	Kind TokenKind
	Text string
}

// IsMedia reports whether the token is an embedded media element.
func (t Token) IsMedia() bool {
	if t.Kind != TokenTag {
		return false
	}
	lower := strings.ToLower(t.Text)
	return strings.HasPrefix(lower, "<img") || strings.HasPrefix(lower, "<audio") || strings.HasPrefix(lower, "<video")
}

// Tokenize splits field HTML into diff tokens. Anything between '<' and
// the matching '>' is one tag token; text is split into word and
// whitespace runs. A dangling '<' with no closing '>' is treated as text.
func Tokenize(html string) []Token {
	var tokens []Token
	i := 0
	for i < len(html) {
		if html[i] == '<' {
			end := strings.IndexByte(html[i:], '>')
			if end >= 0 {
				tokens = append(tokens, Token{Kind: TokenTag, Text: html[i : i+end+1]})
				i += end + 1
				continue
			}
			// No closing bracket: fall through and treat as text.
		}

		start := i
		isSpace := isSpaceByte(html[i])
		for i < len(html) && html[i] != '<' && isSpaceByte(html[i]) == isSpace {
			i++
		}
		kind := TokenWord
		if isSpace {
			kind = TokenSpace
		}
		tokens = append(tokens, Token{Kind: kind, Text: html[start:i]})
	}
	return tokens
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
