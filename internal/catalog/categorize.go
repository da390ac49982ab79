package catalog

import (
	"strings"

	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// TagToCategory maps glyph tags to catalogue categories. Tags missing here
// only show up in glyph_tags.
var TagToCategory = map[string]string{
	"tag_equipment": models.CategoryEquipment,
	"tag_relic":     models.CategoryRelics,
	"tag_material":  models.CategoryMaterials,
	"tag_block":     models.CategoryBlocks,
	"tag_provision": models.CategoryFood,
	"tag_other":     models.CategoryMisc,
}

// Categorize derives categories from glyph tags, in tag order. Without a
// mapped tag the source file name decides: "block" files hold blocks, "food"
// files hold food, anything else is misc.
func Categorize(tags []string, filename string) []string {
	var categories []string
	for _, tag := range tags {
		if category, ok := TagToCategory[tag]; ok {
			categories = append(categories, category)
		}
	}
	if len(categories) > 0 {
		return categories
	}

	switch {
	case strings.Contains(filename, "block"):
		return []string{models.CategoryBlocks}
	case strings.Contains(filename, "food"):
		return []string{models.CategoryFood}
	default:
		return []string{models.CategoryMisc}
	}
}
