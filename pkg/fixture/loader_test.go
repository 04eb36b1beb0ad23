package fixture

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MixedFixture(t *testing.T) {
	raws, issues, err := Load(filepath.Join("testdata", "mixed.json"))
	require.NoError(t, err)
	require.Len(t, raws, 3)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Index)
	assert.Equal(t, "row", issues[0].Field)

	assert.Equal(t, LooseString("2"), raws[1].ID)
	require.NotNil(t, raws[1].Price.Value)
	assert.Equal(t, 420.0, *raws[1].Price.Value)
	assert.Nil(t, raws[2].Price.Value)

	records, _ := NewNormalizer(DefaultOptions()).NormalizeAll(raws)
	require.Len(t, records, 3)

	rose := records[1]
	assert.Equal(t, artwork.CategoryFlowers, rose.Category)
	assert.Equal(t, []string{"growth", "beauty", "renewal", "healing"}, rose.EmotionalTags)
	assert.Equal(t, artwork.DefaultDimensions, rose.Dimensions)
	assert.Equal(t, DefaultMedium, rose.Medium)
	assert.Equal(t, "/artwork/floral/Image9.jpg", rose.PrimaryImage.URL)
	assert.Equal(t, "The delicate beauty of rose garden captures nature's healing power and the promise of renewal.", rose.StoryBehindBrushstroke)

	portrait := records[2]
	assert.Equal(t, "a-3", portrait.Slug)
	assert.Equal(t, artwork.CategoryFlowers, portrait.Category)
	assert.Equal(t, []string{"beauty", "art"}, portrait.EmotionalTags)
	assert.Equal(t, artwork.Dimensions{Width: 25, Height: 35, Unit: "cm"}, portrait.Dimensions)
	assert.Equal(t, "A study in grey.", portrait.StoryBehindBrushstroke)
	assert.Equal(t, "/static/portrait.png", portrait.PrimaryImage.URL)
	assert.Equal(t, 3, portrait.GalleryOrder)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join("testdata", "does-not-exist.json"))
	assert.Error(t, err)
}

func TestParse_InvalidDocument(t *testing.T) {
	_, _, err := Parse([]byte(`{"artworks": 12}`))
	assert.Error(t, err)

	_, _, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestParse_EmptyDocument(t *testing.T) {
	raws, issues, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, raws)
	assert.Empty(t, issues)
}

func TestLooseNumber_RejectsGarbageWithoutFailing(t *testing.T) {
	raws, issues, err := Parse([]byte(`{"artworks":[{"id":"x","price":"call us"},{"id":"y","price":true}]}`))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, raws, 2)
	assert.Nil(t, raws[0].Price.Value)
	assert.Nil(t, raws[1].Price.Value)
}

func TestLooseNumber_RejectsNonFinite(t *testing.T) {
	raws, _, err := Parse([]byte(`{"artworks":[
		{"id":"a","price":"NaN"},
		{"id":"b","price":"Infinity"},
		{"id":"c","price":"-Inf"},
		{"id":"d","price":1e999},
		{"id":"e","price":"1200.50"}
	]}`))
	require.NoError(t, err)
	require.Len(t, raws, 5)
	for _, raw := range raws[:4] {
		assert.Nil(t, raw.Price.Value, "price of %s", raw.ID)
	}
	require.NotNil(t, raws[4].Price.Value)
	assert.Equal(t, 1200.5, *raws[4].Price.Value)

	records, _ := NewNormalizer(DefaultOptions()).NormalizeAll(raws)
	assert.Equal(t, "Price on request", records[0].Pricing.Display())
	_, err = json.Marshal(records)
	assert.NoError(t, err)
}

func TestParse_MistypedFieldsKeepTheRow(t *testing.T) {
	raws, issues, err := Parse([]byte(`{"artworks":[
		{"id":"a","title":"First","featured":"yes"},
		{"id":"b","title":1984,"featured":"true"},
		{"id":"c","title":{"text":"x"},"category":["birds"],"dimensions":40,"image":false,"featured":1}
	]}`))
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, raws, 3)

	records, _ := NewNormalizer(DefaultOptions()).NormalizeAll(raws)
	require.Len(t, records, 3)
	for i, record := range records {
		assert.Equal(t, i+1, record.GalleryOrder)
	}

	assert.Equal(t, "a", records[0].ID)
	assert.False(t, records[0].Featured)

	assert.Equal(t, "1984", records[1].Title)
	assert.True(t, records[1].Featured)

	assert.Equal(t, "c", records[2].ID)
	assert.Equal(t, "Untitled", records[2].Title)
	assert.Equal(t, artwork.CategoryFlowers, records[2].Category)
	assert.Equal(t, artwork.DefaultDimensions, records[2].Dimensions)
	assert.Equal(t, "", records[2].PrimaryImage.URL)
	assert.False(t, records[2].Featured)
}
