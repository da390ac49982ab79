package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category names used by the wiki frontend
const (
	CategoryEquipment = "equipment"
	CategoryRelics    = "relics"
	CategoryMaterials = "materials"
	CategoryBlocks    = "blocks"
	CategoryFood      = "food"
	CategoryMisc      = "misc"
	CategoryPlants    = "plants"
)

// RequiredCategories returns the default output schema, in output order
func RequiredCategories() []string {
	return []string{
		CategoryEquipment,
		CategoryRelics,
		CategoryMaterials,
		CategoryBlocks,
		CategoryFood,
		CategoryMisc,
		CategoryPlants,
	}
}

// Catalogue maps category names to items, keeping the schema order
type Catalogue struct {
	order []string
	items map[string][]Item
}

// NewCatalogue creates a catalogue with every category present and empty
func NewCatalogue(categories []string) *Catalogue {
	c := &Catalogue{
		order: make([]string, 0, len(categories)),
		items: make(map[string][]Item, len(categories)),
	}
	for _, name := range categories {
		if _, exists := c.items[name]; exists {
			continue
		}
		c.order = append(c.order, name)
		c.items[name] = []Item{}
	}
	return c
}

// Has reports whether the category is part of the schema
func (c *Catalogue) Has(category string) bool {
	_, ok := c.items[category]
	return ok
}

// Add appends an item to an existing category
func (c *Catalogue) Add(category string, item Item) bool {
	if !c.Has(category) {
		return false
	}
	c.items[category] = append(c.items[category], item)
	return true
}

// Categories returns category names in schema order
func (c *Catalogue) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Items returns the items filed under a category
func (c *Catalogue) Items(category string) []Item {
	return c.items[category]
}

// Len returns the number of filed records, counting each category separately
func (c *Catalogue) Len() int {
	n := 0
	for _, items := range c.items {
		n += len(items)
	}
	return n
}

// MarshalJSON encodes the catalogue as an object keyed in schema order
func (c *Catalogue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		items, err := marshalNoEscape(c.items[name])
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a catalogue keeping the document's category order
func (c *Catalogue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalogue: expected object, got %v", tok)
	}

	decoded := NewCatalogue(nil)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var items []Item
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("category %s: %w", name, err)
		}
		if items == nil {
			items = []Item{}
		}
		if !decoded.Has(name) {
			decoded.order = append(decoded.order, name)
		}
		decoded.items[name] = items
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = *decoded
	return nil
}
