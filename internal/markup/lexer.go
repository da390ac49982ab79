// Package markup parses the inline rich-text tags used in item names and lore
// lines (<gold>, <#FFAA00>, <italic>, technical <shift:...>/<glyph:...> tags)
// into styled spans and HTML.
package markup

import (
	"regexp"
	"strings"
)

// TokenKind tells literal text apart from tags
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenOpen
	TokenClose
)

// Token is one piece of a markup line
type Token struct {
	Kind TokenKind
	Text string // Literal text, or the tag as written
	Name string // Lowercase tag name; "#rrggbb" for hex tags
	Hex  bool
}

var (
	tagPattern   = regexp.MustCompile(`</?#[0-9a-fA-F]{6}>|</?[a-zA-Z_]+>`)
	shiftPattern = regexp.MustCompile(`<shift:[^>]+>`)
	glyphTagRe   = regexp.MustCompile(`<glyph:[^>]+>`)
)

// StripTechnicalTags removes <shift:...> and <glyph:...> tags, which only
// carry layout and categorisation data
func StripTechnicalTags(line string) string {
	line = shiftPattern.ReplaceAllString(line, "")
	return glyphTagRe.ReplaceAllString(line, "")
}

// Tokenize splits a line into text and tag tokens. Every character outside
// recognised tag syntax ends up in a text token.
func Tokenize(line string) []Token {
	var tokens []Token
	last := 0

	for _, loc := range tagPattern.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			tokens = append(tokens, Token{Kind: TokenText, Text: line[last:loc[0]]})
		}
		tokens = append(tokens, newTagToken(line[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(line) {
		tokens = append(tokens, Token{Kind: TokenText, Text: line[last:]})
	}

	return tokens
}

func newTagToken(raw string) Token {
	tok := Token{Kind: TokenOpen, Text: raw}

	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	if strings.HasPrefix(inner, "/") {
		tok.Kind = TokenClose
		inner = inner[1:]
	}

	tok.Name = strings.ToLower(inner)
	tok.Hex = strings.HasPrefix(inner, "#")
	return tok
}
