package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrLemonHog/nylium-wiki-page/internal/log"
)

const (
	texturesDir = "assets/textures/"
	modelsDir   = "assets/models/"
)

// stripNamespace drops a "namespace:" prefix from a resource location
func stripNamespace(location string) string {
	if _, path, found := strings.Cut(location, ":"); found {
		return path
	}
	return location
}

func withSuffix(path, suffix string) string {
	if strings.HasSuffix(path, suffix) {
		return path
	}
	return path + suffix
}

// CustomTexture returns the texture path declared in the Pack block
func CustomTexture(item *yaml.Node) string {
	pack := lookup(item, "Pack")
	if !isMapping(pack) || !has(pack, "texture") {
		return ""
	}

	raw, _ := scalarText(lookup(pack, "texture"))
	return texturesDir + withSuffix(stripNamespace(raw), ".png")
}

// CustomModel returns the model path of an item. Pack.model wins; without it
// the Components item_model, then parent_model, are used.
func CustomModel(item *yaml.Node) string {
	var raw string

	pack := lookup(item, "Pack")
	if isMapping(pack) && has(pack, "model") {
		raw, _ = scalarText(lookup(pack, "model"))
	} else if has(item, "Components") {
		components := lookup(item, "Components")
		if has(components, "item_model") {
			raw, _ = scalarText(lookup(components, "item_model"))
		} else if has(components, "parent_model") {
			raw, _ = scalarText(lookup(components, "parent_model"))
		}
	}

	if raw == "" {
		return ""
	}

	path := stripNamespace(raw)
	if strings.Contains(path, "/") {
		path = modelsDir + path
	} else {
		path = modelsDir + "item/" + path
	}
	return withSuffix(path, ".json")
}

// modelFile is the part of a block/item model we care about
type modelFile struct {
	Parent   *string                    `json:"parent"`
	Textures map[string]json.RawMessage `json:"textures"`
}

// Resolver reads model files relative to the assets root
type Resolver struct {
	Root string
}

// NewResolver creates a resolver rooted at root
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root}
}

// ModelDetails reads the model at modelPath and returns its texture and
// parent model paths. ok is false when the file is missing or unreadable.
func (r *Resolver) ModelDetails(modelPath string) (texture, parent string, ok bool) {
	if modelPath == "" {
		return "", "", false
	}

	full := filepath.Join(r.Root, filepath.FromSlash(modelPath))
	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return "", "", false
	}
	if err != nil {
		log.Warn("failed to read model", "model", modelPath, "error", err)
		return "", "", false
	}

	var model modelFile
	if err := json.Unmarshal(data, &model); err != nil {
		log.Warn("failed to parse model", "model", modelPath, "error", err)
		return "", "", false
	}

	if model.Parent != nil {
		parent = withSuffix(modelsDir+stripNamespace(*model.Parent), ".json")
	}

	raw := textureRef(model.Textures, "0")
	if raw == "" {
		raw = textureRef(model.Textures, "layer0")
	}
	if raw != "" && !strings.HasPrefix(raw, "#") {
		texture = withSuffix(texturesDir+stripNamespace(raw), ".png")
	}

	return texture, parent, true
}

// textureRef returns a texture entry when it is a string
func textureRef(textures map[string]json.RawMessage, key string) string {
	var ref string
	if raw, ok := textures[key]; ok {
		_ = json.Unmarshal(raw, &ref)
	}
	return ref
}
