package markup

import (
	"regexp"
	"sort"
	"strings"
)

var glyphPattern = regexp.MustCompile(`<glyph:(tag_[a-zA-Z0-9_]+)(?::[^>]+)?>`)

// layoutTagMarker marks glyph tags used for lore layout, never for categories
const layoutTagMarker = "tag_line"

// ExtractGlyphTags collects the distinct tag_* glyph identifiers found in the
// raw lore lines, sorted
func ExtractGlyphTags(lines []string) []string {
	buffer := strings.Join(lines, "\n")

	seen := make(map[string]bool)
	tags := []string{}
	for _, m := range glyphPattern.FindAllStringSubmatch(buffer, -1) {
		tag := m[1]
		if strings.Contains(tag, layoutTagMarker) || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	sort.Strings(tags)
	return tags
}
