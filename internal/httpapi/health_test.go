package httpapi

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latoulicious/artgallery/internal/version"
	"github.com/latoulicious/artgallery/pkg/catalog"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(fixtureCatalog(t))

	rec := serve(t, r, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[SystemHealth](t, rec)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, catalog.ModeFixture, health.Mode)
	assert.True(t, health.CatalogUp)
	assert.Equal(t, 12, health.CatalogSize)
}

func TestHealth_CatalogDown(t *testing.T) {
	r := newTestRouter(failingCatalog{err: catalog.ErrUnavailable})

	rec := serve(t, r, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	health := decode[SystemHealth](t, rec)
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, catalog.ModeDatabase, health.Mode)
	assert.False(t, health.CatalogUp)
}

func TestStatus(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	r := NewRouter(RouterConfig{
		Catalog:   failingCatalog{err: errors.New("down")},
		Loggers:   nopFactory{},
		StartTime: start,
	})

	rec := serve(t, r, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	type statusBody struct {
		Application version.Info `json:"application"`
		Status      string       `json:"status"`
		StartTime   string       `json:"start_time"`
		Components  struct {
			Catalog struct {
				Mode  catalog.Mode `json:"mode"`
				Ready bool         `json:"ready"`
			} `json:"catalog"`
		} `json:"components"`
	}
	body := decode[statusBody](t, rec)
	assert.Equal(t, version.Get(), body.Application)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, start.Format(time.RFC3339), body.StartTime)
	assert.Equal(t, catalog.ModeDatabase, body.Components.Catalog.Mode)
	assert.False(t, body.Components.Catalog.Ready)
}
