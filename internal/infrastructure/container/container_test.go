package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/cookbook/catalog/internal/domain/search"
	"github.com/cookbook/catalog/internal/infrastructure/config"
	"github.com/cookbook/catalog/internal/infrastructure/http/apiserver"
	"github.com/cookbook/catalog/internal/ports/inbound"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(previous) })
}

func listenAnywhere(cfg *config.Config) *config.Config {
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func TestModule_Validates(t *testing.T) {
	chdir(t, t.TempDir())

	assert.NoError(t, fx.ValidateApp(New("")))
}

func TestModule_StartsWithMemoryStorage(t *testing.T) {
	chdir(t, t.TempDir())

	var (
		server    *apiserver.Server
		catalog   inbound.CatalogService
		favorites inbound.FavoritesService
	)
	app := fxtest.New(t,
		New(""),
		fx.Decorate(listenAnywhere),
		fx.Populate(&server, &catalog, &favorites),
	)
	app.RequireStart()
	defer app.RequireStop()

	result, err := catalog.Search(context.Background(), search.FilterSpec{})
	require.NoError(t, err)
	assert.Equal(t, 21, result.Total)

	_, err = favorites.Toggle(context.Background(), "1")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestModule_SQLiteStorage(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"storage:\n  driver: sqlite\n  sqlite_path: "+filepath.Join(dir, "favorites.db")+"\ncatalog:\n  seed: false\n",
	), 0o600))

	var favorites inbound.FavoritesService
	start := func() *fxtest.App {
		app := fxtest.New(t,
			New(""),
			fx.Decorate(listenAnywhere),
			fx.Populate(&favorites),
		)
		app.RequireStart()
		return app
	}

	app := start()
	_, err := favorites.Toggle(context.Background(), "7")
	require.NoError(t, err)
	app.RequireStop()

	app = start()
	defer app.RequireStop()
	assert.Equal(t, []string{"7"}, favorites.List())
}
