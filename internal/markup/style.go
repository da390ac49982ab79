package markup

import (
	"strings"

	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// Span is a run of literal text with the style active when it was read
type Span struct {
	Text   string
	Color  string // Empty when no colour is active
	Italic bool
}

// HTML renders the span as escaped text, wrapped in a styled <span> when a
// colour or italics is active
func (s Span) HTML() string {
	safe := EscapeHTML(s.Text)

	var style []string
	if s.Color != "" {
		style = append(style, "color: "+s.Color)
	}
	if s.Italic {
		style = append(style, "font-style: italic")
	}
	if len(style) == 0 {
		return safe
	}
	return `<span style="` + strings.Join(style, "; ") + `">` + safe + "</span>"
}

// Line is a parsed markup line
type Line struct {
	Spans     []Span
	BaseColor string
}

// HTML joins the rendered spans
func (l Line) HTML() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.HTML())
	}
	return b.String()
}

// Styled converts the line to its catalogue form
func (l Line) Styled() models.StyledLine {
	return models.StyledLine{
		Text:   l.HTML(),
		Color:  l.BaseColor,
		Italic: false,
	}
}

// styleState is deliberately flat: a close tag of any colour clears the
// current colour, there is no stack of open colours. Existing content is
// authored against this behaviour.
type styleState struct {
	color     string
	italic    bool
	baseColor string
	baseSet   bool
}

func (st *styleState) apply(tok Token) {
	closing := tok.Kind == TokenClose

	switch {
	case tok.Hex:
		st.setColor(tok.Name, closing)
	case tok.Name == "italic":
		st.italic = !closing
	default:
		if hex, ok := ColorMap[tok.Name]; ok {
			st.setColor(hex, closing)
		}
		// unknown tags are dropped without touching the state
	}
}

func (st *styleState) setColor(color string, closing bool) {
	if closing {
		st.color = ""
		return
	}
	st.color = color
	if !st.baseSet {
		st.baseColor = color
		st.baseSet = true
	}
}

// ParseLine runs the style accumulator over one raw lore line. It returns
// false when the line has nothing to display: empty input, or nothing but
// whitespace left once technical tags are stripped.
func ParseLine(raw string) (Line, bool) {
	if raw == "" {
		return Line{}, false
	}

	clean := StripTechnicalTags(raw)
	if strings.TrimSpace(clean) == "" {
		return Line{}, false
	}

	st := styleState{baseColor: DefaultColor}
	var spans []Span

	for _, tok := range Tokenize(clean) {
		if tok.Kind != TokenText {
			st.apply(tok)
			continue
		}
		spans = append(spans, Span{
			Text:   tok.Text,
			Color:  st.color,
			Italic: st.italic,
		})
	}

	return Line{Spans: spans, BaseColor: st.baseColor}, true
}

// ParseLore parses every displayable line of a lore list
func ParseLore(lines []string) []models.StyledLine {
	out := make([]models.StyledLine, 0, len(lines))
	for _, raw := range lines {
		if line, ok := ParseLine(raw); ok {
			out = append(out, line.Styled())
		}
	}
	return out
}
