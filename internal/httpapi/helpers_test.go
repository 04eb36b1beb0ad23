package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/catalog"
	"github.com/latoulicious/artgallery/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopFactory struct{}

func (nopFactory) CreateLogger(string) logging.Logger        { return logging.NewNopLogger() }
func (nopFactory) CreateCatalogLogger(string) logging.Logger { return logging.NewNopLogger() }
func (nopFactory) CreateHTTPLogger() logging.Logger          { return logging.NewNopLogger() }

// failingCatalog answers every query with err
type failingCatalog struct {
	err error
}

func (f failingCatalog) GetAvailableArtworks(context.Context) ([]artwork.Artwork, error) {
	return nil, f.err
}

func (f failingCatalog) GetArtworksByCategory(context.Context, string) ([]artwork.Artwork, error) {
	return nil, f.err
}

func (f failingCatalog) GetArtworkByID(context.Context, string) (*artwork.Artwork, error) {
	return nil, f.err
}

func (f failingCatalog) GetArtworkBySlug(context.Context, string) (*artwork.Artwork, error) {
	return nil, f.err
}

func (f failingCatalog) Stats(context.Context) (catalog.Stats, error) {
	return catalog.Stats{}, f.err
}

func (f failingCatalog) Mode() catalog.Mode { return catalog.ModeDatabase }

func fixtureCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Config{}, catalog.Deps{Loggers: nopFactory{}})
	require.NoError(t, err)
	return c
}

func newTestRouter(c catalog.Catalog) *gin.Engine {
	return NewRouter(RouterConfig{
		Catalog:     c,
		Loggers:     nopFactory{},
		CORSOrigins: []string{"*"},
	})
}

func serve(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
