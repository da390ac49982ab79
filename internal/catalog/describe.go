package catalog

import (
	"strings"

	"github.com/MrLemonHog/nylium-wiki-page/internal/markup"
	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// maxDescriptionLines caps how much lore goes into the short description
const maxDescriptionLines = 3

// structuralPrefixes mark lore lines that are metadata, not prose
var structuralPrefixes = []string{
	"◆",
	"Уровень:",
	"Владелец:",
	"Информация",
	"Заметка",
}

// Description picks the first descriptive lore lines and joins them with a
// space. Text is taken from the rendered HTML with the span tags removed, so
// entities such as &amp; stay escaped.
func Description(lines []models.StyledLine) string {
	var picked []string

	for _, line := range lines {
		text := markup.StripTags(line.Text)
		if strings.TrimSpace(text) == "" || isStructural(text) {
			continue
		}

		picked = append(picked, strings.TrimSpace(text))
		if len(picked) >= maxDescriptionLines {
			break
		}
	}

	return strings.Join(picked, " ")
}

func isStructural(text string) bool {
	for _, prefix := range structuralPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}
