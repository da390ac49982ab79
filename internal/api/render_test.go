package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
)

type saverFunc func(id, dataURL string) (string, error)

func (f saverFunc) Save(id, dataURL string) (string, error) {
	return f(id, dataURL)
}

func newTestRender(t *testing.T, saver ImageSaver, onSaved func()) (*Render, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "items.json"), []byte(`{"misc":[]}`), 0644))

	return NewRender(RenderConfig{
		ItemsFile:  filepath.Join(root, "items.json"),
		AssetsRoot: root,
		PagePath:   "render_tool.html",
		Page:       []byte("<html>render</html>"),
		Images:     saver,
		OnSaved:    onSaved,
	}), root
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUploadImage(t *testing.T) {
	var gotID, gotImage string
	saver := saverFunc(func(id, dataURL string) (string, error) {
		gotID, gotImage = id, dataURL
		return "assets/renders/" + id + ".png", nil
	})
	srv, _ := newTestRender(t, saver, nil)

	rec := do(srv, http.MethodPost, "/upload_image", `{"id":"sun_crown","image":"data:image/png;base64,AAAA"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"status":"ok","path":"assets/renders/sun_crown.png"}`, strings.TrimSpace(rec.Body.String()))
	assert.Equal(t, "sun_crown", gotID)
	assert.Equal(t, "data:image/png;base64,AAAA", gotImage)
}

func TestUploadImageErrors(t *testing.T) {
	saver := saverFunc(func(id, dataURL string) (string, error) {
		return "", errors.InvalidArgument("invalid item id")
	})
	srv, _ := newTestRender(t, saver, nil)

	rec := do(srv, http.MethodPost, "/upload_image", `{"id":"../x","image":"AAAA"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid item id")

	rec = do(srv, http.MethodPost, "/upload_image", `{"id":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(srv, http.MethodPost, "/upload_image", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveJSON(t *testing.T) {
	saved := 0
	srv, root := newTestRender(t, nil, func() { saved++ })

	body := `{"items":{"relics":[{"id":"a","name":"<Б>","customIcon":"assets/renders/a.png"}],"misc":[]}}`
	rec := do(srv, http.MethodPost, "/save_json", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, saved)

	data, err := os.ReadFile(filepath.Join(root, "items.json"))
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "{\n  \"relics\": ["))
	assert.Less(t, strings.Index(out, `"relics"`), strings.Index(out, `"misc"`))
	assert.Contains(t, out, `"name": "<Б>"`)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
}

func TestSaveJSONRejectsMissingItems(t *testing.T) {
	saved := 0
	srv, root := newTestRender(t, nil, func() { saved++ })

	rec := do(srv, http.MethodPost, "/save_json", `{"other":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, saved)

	data, err := os.ReadFile(filepath.Join(root, "items.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"misc":[]}`, string(data))
}

func TestRenderUnknownPost(t *testing.T) {
	srv, _ := newTestRender(t, nil, nil)

	rec := do(srv, http.MethodPost, "/whatever", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderServesPageAndFiles(t *testing.T) {
	srv, _ := newTestRender(t, nil, nil)

	rec := do(srv, http.MethodGet, "/render_tool.html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>render</html>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = do(srv, http.MethodGet, "/items.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"misc":[]}`, rec.Body.String())

	rec = do(srv, http.MethodGet, "/health", "")
	assert.Equal(t, "OK", rec.Body.String())
}
