package render

import (
	"bytes"
	"encoding/base64"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
)

// ImageWriter stores uploaded renders as PNG files
type ImageWriter struct {
	// Dir is where files are written
	Dir string
	// URLPrefix is the path recorded in the catalogue, e.g. "assets/renders"
	URLPrefix string
	// IconSize, when positive, shrinks larger renders to fit a square of
	// that size
	IconSize int
}

// NewImageWriter creates a writer storing files in dir
func NewImageWriter(dir, urlPrefix string, iconSize int) *ImageWriter {
	return &ImageWriter{Dir: dir, URLPrefix: urlPrefix, IconSize: iconSize}
}

// ValidID reports whether id can be used as a file name
func ValidID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, "/\\\x00")
}

// Save decodes a base64 image, optionally a data: URL, and writes it as
// <id>.png. Any format imaging can decode is accepted and re-encoded as PNG.
// It returns the path to reference from the catalogue.
func (w *ImageWriter) Save(id, dataURL string) (string, error) {
	if !ValidID(id) {
		return "", errors.InvalidArgumentf("invalid item id %q", id)
	}

	data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInvalidArgument, "image could not be decoded")
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create %s", w.Dir)
	}

	name := id + ".png"
	dest := filepath.Join(w.Dir, name)

	bounds := img.Bounds()
	if w.IconSize > 0 && (bounds.Dx() > w.IconSize || bounds.Dy() > w.IconSize) {
		// nearest neighbour keeps pixel art crisp
		img = imaging.Fit(img, w.IconSize, w.IconSize, imaging.NearestNeighbor)
	}
	if err := imaging.Save(img, dest); err != nil {
		return "", errors.Wrapf(err, "write %s", name)
	}

	return path.Join(w.URLPrefix, name), nil
}

// decodeDataURL strips a "data:...;base64," header and decodes the payload
func decodeDataURL(s string) ([]byte, error) {
	if _, payload, found := strings.Cut(s, ","); found {
		s = payload
	}
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "image is not valid base64")
	}
	return data, nil
}
