package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// Encode writes the catalogue as two-space indented JSON. Non-ASCII text
// and HTML in lore are written as is.
func Encode(w io.Writer, cat *models.Catalogue) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(cat)
}

// WriteFile writes the catalogue to path, replacing it
func WriteFile(path string, cat *models.Catalogue) error {
	var buf bytes.Buffer
	if err := Encode(&buf, cat); err != nil {
		return errors.Wrap(err, "encode catalogue")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// ReadFile loads a catalogue written by WriteFile, or edited by the renderer
func ReadFile(path string) (*models.Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, path+" not found")
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var cat models.Catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid catalogue "+path)
	}
	return &cat, nil
}
