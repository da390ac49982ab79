package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.NRGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestImageWriterSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "assets", "renders")
	w := NewImageWriter(dir, "assets/renders", 0)

	rel, err := w.Save("sun_crown", pngDataURL(t, 32, 32))
	require.NoError(t, err)
	assert.Equal(t, "assets/renders/sun_crown.png", rel)

	img, err := imaging.Open(filepath.Join(dir, "sun_crown.png"))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestImageWriterAcceptsBareBase64(t *testing.T) {
	dir := t.TempDir()
	w := NewImageWriter(dir, "assets/renders", 0)

	dataURL := pngDataURL(t, 4, 4)
	_, bare, _ := bytes.Cut([]byte(dataURL), []byte(","))

	_, err := w.Save("bare", string(bare))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "bare.png"))
}

func TestImageWriterFitsIconSize(t *testing.T) {
	dir := t.TempDir()
	w := NewImageWriter(dir, "assets/renders", 64)

	_, err := w.Save("big", pngDataURL(t, 512, 256))
	require.NoError(t, err)

	img, err := imaging.Open(filepath.Join(dir, "big.png"))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestImageWriterStoresJPEGAsPNG(t *testing.T) {
	dir := t.TempDir()
	w := NewImageWriter(dir, "assets/renders", 0)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	rel, err := w.Save("photo", dataURL)
	require.NoError(t, err)
	assert.Equal(t, "assets/renders/photo.png", rel)

	f, err := os.Open(filepath.Join(dir, "photo.png"))
	require.NoError(t, err)
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestImageWriterRejects(t *testing.T) {
	dir := t.TempDir()
	w := NewImageWriter(dir, "assets/renders", 0)

	for _, id := range []string{"", ".", "..", "../escape", `a\b`} {
		_, err := w.Save(id, pngDataURL(t, 2, 2))
		assert.True(t, errors.IsInvalidArgument(err), id)
	}

	_, err := w.Save("x", "data:image/png;base64,!!!not base64")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = w.Save("x", base64.StdEncoding.EncodeToString([]byte("not an image")))
	assert.True(t, errors.IsInvalidArgument(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
