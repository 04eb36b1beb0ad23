package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latoulicious/artgallery/pkg/artwork"
)

func TestQueryError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &QueryError{Op: "getAvailableArtworks", Mode: ModeDatabase, Kind: ErrUnavailable, Err: cause}

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrFixtureUnavailable)
	assert.Equal(t, "catalog getAvailableArtworks (database): catalog data source unavailable: connection refused", err.Error())

	bare := &QueryError{Op: "stats", Mode: ModeFixture, Kind: ErrFixtureUnavailable}
	assert.Equal(t, "catalog stats (fixture): catalog fixture unavailable", bare.Error())
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	ok := Run(ctx, func(ctx context.Context) ([]artwork.Artwork, error) {
		return []artwork.Artwork{{ID: "a"}}, nil
	})
	assert.True(t, ok.OK())
	require.Len(t, ok.Data, 1)

	failed := Run(ctx, func(ctx context.Context) ([]artwork.Artwork, error) {
		return nil, &QueryError{Op: "getAvailableArtworks", Mode: ModeDatabase, Kind: ErrUnavailable}
	})
	assert.False(t, failed.OK())
	assert.Nil(t, failed.Data)
	assert.Contains(t, failed.Error, "unavailable")
}

type stubCatalog struct {
	Catalog
}

func (stubCatalog) Mode() Mode { return ModeFixture }

func TestSetDefault(t *testing.T) {
	SetDefault(stubCatalog{})

	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, ModeFixture, c.Mode())
}
