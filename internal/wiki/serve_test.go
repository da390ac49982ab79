package wiki

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrLemonHog/nylium-wiki-page/internal/catalog"
	"github.com/MrLemonHog/nylium-wiki-page/internal/errors"
	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
	rendermock "github.com/MrLemonHog/nylium-wiki-page/internal/render/mock"
)

func writeCatalogue(t *testing.T, path string) {
	t.Helper()
	cat := models.NewCatalogue(models.RequiredCategories())
	cat.Add(models.CategoryRelics, models.Item{ID: "sun_crown", Name: "Корона", Pack: json.RawMessage(`{}`), Components: json.RawMessage(`{}`)})
	require.NoError(t, catalog.WriteFile(path, cat))
}

func TestServe(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "wiki-copy.html"), []byte("<html>wiki</html>"), 0644))
	writeCatalogue(t, filepath.Join(root, "items.json"))

	ctrl := gomock.NewController(t)
	launcher := rendermock.NewMockLauncher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	urls := make(chan string, 1)
	opened := make(chan string, 1)
	launcher.EXPECT().
		Open(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string) error {
			opened <- url
			return nil
		})

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ServeConfig{
			Port:      0,
			Root:      root,
			Page:      "wiki-copy.html",
			ItemsFile: filepath.Join(root, "items.json"),
			DBPath:    filepath.Join(t.TempDir(), "nylium.db"),
			OpenDelay: 10 * time.Millisecond,
			Launcher:  launcher,
			Ready:     func(url string) { urls <- url },
		})
	}()

	var url string
	select {
	case url = <-urls:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	res, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, "<html>wiki</html>", string(body))

	base := strings.TrimSuffix(url, "wiki-copy.html")
	res, err = http.Get(base + "api/items/sun_crown")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	select {
	case got := <-opened:
		assert.Equal(t, url, got)
	case <-time.After(5 * time.Second):
		t.Fatal("browser was not opened")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestImportMissingFile(t *testing.T) {
	err := Import(nil, filepath.Join(t.TempDir(), "items.json"))
	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
}
