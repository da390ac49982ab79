package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

const relicsSource = `
sun_crown:
  itemname: "<gold>Корона солнца</gold>"
  material: PAPER
  lore:
    - "<glyph:tag_relic><glyph:tag_line_top>"
    - "<gold>Сияет</gold> & греет"
    - "◆ Уровень редкости"
    - "<italic>Древняя вещь"
  Pack:
    model: nylium:crown
    texture: nylium:item/crown
  Components:
    rarity: EPIC
broken_entry: 42
no_name:
  material: STONE
`

const blocksSource = `
diamond_block:
  itemname: Алмазный блок
  material: DIAMOND
`

func setupSources(t *testing.T) (root, dir string) {
	t.Helper()
	root = t.TempDir()
	dir = filepath.Join(root, "nexo-items")
	writeFile(t, dir, "relics.yml", relicsSource)
	writeFile(t, dir, "blocks_pack.yml", blocksSource)
	writeFile(t, dir, "broken.yaml", "a: [unclosed")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, root, "assets/models/item/crown.json", `{"parent":"item/generated","textures":{"layer0":"item/crown"}}`)
	return root, dir
}

func TestBuild(t *testing.T) {
	root, dir := setupSources(t)

	b := NewBuilder(models.RequiredCategories(), NewResolver(root))
	cat, report, err := b.Build(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Files)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "broken.yaml", report.Failed[0].File)
	assert.Equal(t, 2, report.Items)
	assert.Equal(t, 1, report.Skipped[SkipNotMapping])
	assert.Equal(t, 1, report.Skipped[SkipNoItemName])
	assert.Equal(t, 2, report.SkippedTotal())
	assert.Empty(t, report.UnresolvedModels)
	assert.Empty(t, report.Dropped)

	relics := cat.Items(models.CategoryRelics)
	require.Len(t, relics, 1)
	crown := relics[0]
	assert.Equal(t, "sun_crown", crown.ID)
	assert.Equal(t, "Корона солнца", crown.Name)
	assert.Equal(t, "PAPER", crown.Type)
	assert.Equal(t, "EPIC", crown.Rarity)
	assert.Equal(t, "scroll", crown.Icon)
	assert.Equal(t, "assets/textures/item/crown.png", crown.CustomIcon)
	assert.Equal(t, "assets/models/item/crown.json", crown.CustomModel)
	assert.Equal(t, "assets/textures/item/crown.png", crown.CustomModelTexture)
	assert.Equal(t, "assets/models/item/generated.json", crown.ParentModel)
	assert.Equal(t, []string{"tag_relic"}, crown.GlyphTags)
	assert.Equal(t, "Сияет &amp; греет Древняя вещь", crown.Description)
	require.Len(t, crown.Lore, 3)
	assert.Equal(t, "#FFAA00", crown.Lore[0].Color)
	assert.JSONEq(t, `{"model":"nylium:crown","texture":"nylium:item/crown"}`, string(crown.Pack))
	assert.JSONEq(t, `{"rarity":"EPIC"}`, string(crown.Components))

	blocks := cat.Items(models.CategoryBlocks)
	require.Len(t, blocks, 1)
	assert.Equal(t, "diamond_block", blocks[0].ID)
}

func TestBuildDiamondWithoutPackOrComponents(t *testing.T) {
	out := BuildItem("gem", parseEntry(t, "itemname: Gem\nmaterial: DIAMOND"), "misc.yml", NewResolver(t.TempDir()))
	require.False(t, out.Skipped())

	item := out.Item
	assert.Equal(t, "gem", item.Icon)
	assert.Equal(t, "", item.CustomIcon)
	assert.Equal(t, "", item.CustomModel)
	assert.Equal(t, "", item.CustomModelTexture)
	assert.Equal(t, "", item.ParentModel)
	assert.Equal(t, "COMMON", item.Rarity)
	assert.Equal(t, "", item.Image)
	assert.Equal(t, `{}`, string(item.Pack))
	assert.Equal(t, `{}`, string(item.Components))
	assert.NotNil(t, item.Lore)
	assert.NotNil(t, item.GlyphTags)
	assert.Equal(t, []string{"misc"}, out.Categories)
}

func TestBuildItemDefaults(t *testing.T) {
	out := BuildItem("plain", parseEntry(t, "itemname: ''"), "misc.yml", nil)
	require.False(t, out.Skipped())
	assert.Equal(t, "UNKNOWN", out.Item.Type)
	assert.Equal(t, "box", out.Item.Icon)
	assert.Equal(t, "", out.Item.Name)
}

func TestBuildItemUnresolvedModel(t *testing.T) {
	out := BuildItem("staff", parseEntry(t, "itemname: Staff\nComponents:\n  item_model: staff"), "misc.yml", NewResolver(t.TempDir()))

	assert.False(t, out.ModelResolved)
	assert.Equal(t, "assets/models/item/staff.json", out.Item.CustomModel)
	assert.Empty(t, out.Item.CustomModelTexture)
	assert.Empty(t, out.Item.ParentModel)
}

func TestBuildScalarLore(t *testing.T) {
	out := BuildItem("note", parseEntry(t, "itemname: Note\nlore: \"<glyph:tag_other>Одна строка\""), "x.yml", nil)

	require.Len(t, out.Item.Lore, 1)
	assert.Equal(t, "Одна строка", out.Item.Lore[0].Text)
	assert.Equal(t, []string{"misc"}, out.Categories)
}

func TestBuildMissingDirectory(t *testing.T) {
	b := NewBuilder(models.RequiredCategories(), nil)
	_, _, err := b.Build(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestBuildFallsBackToMisc(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "items.yml", "ring:\n  itemname: Ring\n  lore: ['<glyph:tag_equipment>']\n")

	b := NewBuilder([]string{models.CategoryMisc}, nil)
	cat, report, err := b.Build(root)
	require.NoError(t, err)

	require.Len(t, cat.Items(models.CategoryMisc), 1)
	assert.Empty(t, report.Dropped)
}

func TestBuildDropsWhenMiscAbsent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "items.yml", "ring:\n  itemname: Ring\n")

	b := NewBuilder([]string{models.CategoryEquipment}, nil)
	cat, report, err := b.Build(root)
	require.NoError(t, err)

	assert.Equal(t, 0, cat.Len())
	assert.Equal(t, 1, report.Items)
	assert.Equal(t, []string{"ring"}, report.Dropped)
}

func TestBuildIsDeterministic(t *testing.T) {
	root, dir := setupSources(t)

	run := func() []byte {
		b := NewBuilder(models.RequiredCategories(), NewResolver(root))
		cat, _, err := b.Build(dir)
		require.NoError(t, err)

		out := filepath.Join(t.TempDir(), "items.json")
		require.NoError(t, WriteFile(out, cat))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		return data
	}

	first := run()
	assert.Equal(t, first, run())
	assert.True(t, bytes.Contains(first, []byte(`<span style=\"color: #FFAA00\">Сияет</span>`)))
}

func TestBuildEmptyFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "empty.yml", "")
	writeFile(t, root, "comment.yml", "# nothing yet\n")

	b := NewBuilder(models.RequiredCategories(), nil)
	_, report, err := b.Build(root)
	require.NoError(t, err)
	assert.Empty(t, report.Failed)
	assert.Equal(t, 2, report.Files)
}
