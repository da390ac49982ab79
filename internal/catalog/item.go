package catalog

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/MrLemonHog/nylium-wiki-page/internal/markup"
	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// SkipReason explains why a source entry produced no record
type SkipReason string

const (
	SkipNone        SkipReason = ""
	SkipNotMapping  SkipReason = "not_mapping"
	SkipNoItemName  SkipReason = "missing_itemname"
	SkipInvalidData SkipReason = "invalid_data"
)

// Outcome is the result of building one source entry
type Outcome struct {
	Item       models.Item
	Categories []string
	Skip       SkipReason
	// ModelResolved is false when a custom model was declared but could not be read
	ModelResolved bool
}

// Skipped reports whether the entry produced no record
func (o Outcome) Skipped() bool {
	return o.Skip != SkipNone
}

var emptyObject = json.RawMessage(`{}`)

// BuildItem turns one top-level entry of a source file into an item record
// and the categories it belongs to. resolver may be nil, leaving the model
// texture and parent empty.
func BuildItem(id string, node *yaml.Node, filename string, resolver *Resolver) Outcome {
	node = resolve(node)
	if !isMapping(node) {
		return Outcome{Skip: SkipNotMapping}
	}
	if !has(node, "itemname") {
		return Outcome{Skip: SkipNoItemName}
	}

	rawLore := loreLines(lookup(node, "lore"))
	tags := markup.ExtractGlyphTags(rawLore)
	lore := markup.ParseLore(rawLore)

	pack, err := passThrough(node, "Pack")
	if err != nil {
		return Outcome{Skip: SkipInvalidData}
	}
	components, err := passThrough(node, "Components")
	if err != nil {
		return Outcome{Skip: SkipInvalidData}
	}

	name, _ := scalarText(lookup(node, "itemname"))

	material, hasMaterial := scalarText(lookup(node, "material"))
	itemType := material
	if !hasMaterial {
		itemType = "UNKNOWN"
	}

	rarity, ok := scalarText(lookup(lookup(node, "Components"), "rarity"))
	if !ok {
		rarity = "COMMON"
	}

	item := models.Item{
		ID:          id,
		Name:        markup.CleanName(name),
		Type:        itemType,
		Description: Description(lore),
		Rarity:      rarity,
		Icon:        IconFor(material),
		CustomIcon:  CustomTexture(node),
		CustomModel: CustomModel(node),
		Lore:        lore,
		Mechanics:   Mechanics(node),
		GlyphTags:   tags,
		Image:       "",
		Pack:        pack,
		Components:  components,
	}

	out := Outcome{Categories: Categorize(tags, filename), ModelResolved: true}
	if item.CustomModel != "" && resolver != nil {
		item.CustomModelTexture, item.ParentModel, out.ModelResolved = resolver.ModelDetails(item.CustomModel)
	}

	out.Item = item
	return out
}

// loreLines returns the string lines of a lore value. A single scalar is
// treated as a one-line lore; non-string entries are dropped.
func loreLines(lore *yaml.Node) []string {
	lore = resolve(lore)
	if lore == nil {
		return nil
	}

	switch lore.Kind {
	case yaml.SequenceNode:
		lines := make([]string, 0, len(lore.Content))
		for _, c := range lore.Content {
			c = resolve(c)
			if c != nil && c.Kind == yaml.ScalarNode && c.Tag == "!!str" {
				lines = append(lines, c.Value)
			}
		}
		return lines
	case yaml.ScalarNode:
		if lore.Tag == "!!str" {
			return []string{lore.Value}
		}
	}
	return nil
}

// passThrough converts a raw block to JSON, {} when absent
func passThrough(node *yaml.Node, key string) (json.RawMessage, error) {
	if !has(node, key) {
		return emptyObject, nil
	}
	return nodeJSON(lookup(node, key))
}
