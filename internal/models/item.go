package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StyledLine is one rendered lore line
type StyledLine struct {
	Text   string `json:"text"`   // HTML-escaped, span-wrapped
	Color  string `json:"color"`  // First colour seen on the line
	Italic bool   `json:"italic"` // Always false, italics live inside Text
}

// Item represents one entry of the generated catalogue
type Item struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Type               string          `json:"type"` // Source material
	Description        string          `json:"description"`
	Rarity             string          `json:"rarity"`
	Icon               string          `json:"icon"`
	CustomIcon         string          `json:"customIcon"`
	CustomModel        string          `json:"customModel"`
	CustomModelTexture string          `json:"customModelTexture"`
	ParentModel        string          `json:"parentmodel"`
	Lore               []StyledLine    `json:"lore"`
	Mechanics          Mechanics       `json:"mechanics"`
	GlyphTags          []string        `json:"glyph_tags"`
	Image              string          `json:"image"`
	Pack               json.RawMessage `json:"Pack"`       // Raw source block
	Components         json.RawMessage `json:"Components"` // Raw source block
}

// Attribute is a single formatted mechanic, e.g. "Насыщение" -> "2.5 ед."
type Attribute struct {
	Key   string
	Value string
}

// Mechanics keeps attributes in the order they were extracted
type Mechanics []Attribute

// MarshalJSON encodes mechanics as a JSON object in insertion order
func (m Mechanics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(a.Key)
		if err != nil {
			return nil, err
		}
		value, err := marshalNoEscape(a.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order
func (m *Mechanics) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("mechanics: expected object, got %v", tok)
	}

	attrs := Mechanics{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("mechanics %q: %w", key, err)
		}
		attrs = append(attrs, Attribute{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = attrs
	return nil
}

// marshalNoEscape encodes v without turning <, > and & into \u escapes
func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
