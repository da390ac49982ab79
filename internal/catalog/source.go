package catalog

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
)

// IsSourceFile reports whether name looks like an item definition file
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// ListSources returns the source files directly inside dir, sorted by name
func ListSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.CodeNotFound, "Dir "+dir+" not found").WithMeta("dir", dir)
		}
		return nil, errors.Wrapf(err, "read %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSourceFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadSource parses a source file. It returns a nil node for an empty
// document.
func LoadSource(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filepath.Base(path))
	}
	return DecodeSource(data)
}

// DecodeSource parses the first YAML document in data
func DecodeSource(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid yaml")
	}

	root := resolve(&doc)
	if root == nil || isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.InvalidArgument("top level is not a mapping of items")
	}
	return root, nil
}
