package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomTexture(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"Pack:\n  texture: nylium:item/ruby", "assets/textures/item/ruby.png"},
		{"Pack:\n  texture: item/ruby.png", "assets/textures/item/ruby.png"},
		{"Pack:\n  model: item/ruby", ""},
		{"Pack: generated", ""},
		{"material: STONE", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CustomTexture(parseEntry(t, tt.src)), tt.src)
	}
}

func TestCustomModel(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"pack model with folder", "Pack:\n  model: nylium:block/crate", "assets/models/block/crate.json"},
		{"pack model without folder", "Pack:\n  model: crown", "assets/models/item/crown.json"},
		{"pack model already json", "Pack:\n  model: item/crown.json", "assets/models/item/crown.json"},
		{"item_model", "Components:\n  item_model: nylium:staff", "assets/models/item/staff.json"},
		{"parent_model", "Components:\n  parent_model: item/handheld", "assets/models/item/handheld.json"},
		{"item_model wins", "Components:\n  parent_model: a\n  item_model: b", "assets/models/item/b.json"},
		{"pack without model uses components", "Pack:\n  texture: x\nComponents:\n  item_model: c", "assets/models/item/c.json"},
		{"nothing", "material: STONE", ""},
		{"empty model", "Pack:\n  model: ''", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CustomModel(parseEntry(t, tt.src)))
		})
	}
}

func TestResolverModelDetails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "assets/models/item/crown.json", `{
		"parent": "minecraft:item/generated",
		"textures": {"layer0": "nylium:item/crown"}
	}`)
	writeFile(t, root, "assets/models/block/crate.json", `{
		"parent": "block/cube",
		"textures": {"0": "#side", "layer0": "block/crate"}
	}`)
	writeFile(t, root, "assets/models/item/broken.json", `{not json`)

	r := NewResolver(root)

	texture, parent, ok := r.ModelDetails("assets/models/item/crown.json")
	assert.True(t, ok)
	assert.Equal(t, "assets/textures/item/crown.png", texture)
	assert.Equal(t, "assets/models/item/generated.json", parent)

	// "0" is present, so layer0 is not consulted, and "#" references are skipped
	texture, parent, ok = r.ModelDetails("assets/models/block/crate.json")
	assert.True(t, ok)
	assert.Equal(t, "", texture)
	assert.Equal(t, "assets/models/block/cube.json", parent)

	texture, parent, ok = r.ModelDetails("assets/models/item/missing.json")
	assert.False(t, ok)
	assert.Empty(t, texture)
	assert.Empty(t, parent)

	_, _, ok = r.ModelDetails("assets/models/item/broken.json")
	assert.False(t, ok)
}
