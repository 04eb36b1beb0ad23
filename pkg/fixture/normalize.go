// Package fixture turns the static artwork fixture into canonical catalog
// records. Normalization is pure and never fails: every malformed or
// missing field resolves to a documented default.
package fixture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/latoulicious/artgallery/pkg/artwork"
	"github.com/latoulicious/artgallery/pkg/slug"
)

const (
	DefaultMedium       = "Acrylic on Canvas"
	DefaultArtistName   = "Evgenia Portnov"
	DefaultCreationYear = 2023
	DefaultColorProfile = "sRGB"
	untitled            = "Untitled"
)

var dimensionPattern = regexp.MustCompile(`(?i)(\d+)\s*cm\s*x\s*(\d+)\s*cm`)

var emotionalTagsByCategory = map[artwork.Category][]string{
	artwork.CategoryBirds:   {"freedom", "joy", "flight", "nature"},
	artwork.CategoryFlowers: {"growth", "beauty", "renewal", "healing"},
	artwork.CategoryTowns:   {"serenity", "memories", "warmth", "peace"},
}

var fallbackEmotionalTags = []string{"beauty", "art"}

// AssetRewrite maps fixture image paths onto the deployed public assets
type AssetRewrite struct {
	SourcePrefix string `yaml:"source_prefix" toml:"source_prefix" env:"FIXTURE_IMAGE_SOURCE_PREFIX"`
	PublicPrefix string `yaml:"public_prefix" toml:"public_prefix" env:"FIXTURE_IMAGE_PUBLIC_PREFIX"`
	SourceExt    string `yaml:"source_ext" toml:"source_ext" env:"FIXTURE_IMAGE_SOURCE_EXT"`
	TargetExt    string `yaml:"target_ext" toml:"target_ext" env:"FIXTURE_IMAGE_TARGET_EXT"`
}

// DefaultAssetRewrite turns "images/artwork/birds/Image1.webp" into
// "/artwork/birds/Image1.jpg"
func DefaultAssetRewrite() AssetRewrite {
	return AssetRewrite{
		SourcePrefix: "images/artwork/",
		PublicPrefix: "/artwork/",
		SourceExt:    ".webp",
		TargetExt:    ".jpg",
	}
}

// Apply rewrites a single image path. It never touches the filesystem.
func (r AssetRewrite) Apply(path string) string {
	if r.SourcePrefix != "" {
		path = strings.Replace(path, r.SourcePrefix, r.PublicPrefix, 1)
	}
	if r.SourceExt != "" && strings.HasSuffix(path, r.SourceExt) {
		path = strings.TrimSuffix(path, r.SourceExt) + r.TargetExt
	}
	return path
}

// Options configures the derived fields of normalized records
type Options struct {
	Assets       AssetRewrite
	ArtistName   string
	CreationYear int
}

// DefaultOptions returns the options used by the public gallery
func DefaultOptions() Options {
	return Options{
		Assets:       DefaultAssetRewrite(),
		ArtistName:   DefaultArtistName,
		CreationYear: DefaultCreationYear,
	}
}

// Issue records a field that fell back to its default during normalization
type Issue struct {
	Index  int
	ID     string
	Field  string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d (id=%q) %s: %s", i.Index, i.ID, i.Field, i.Reason)
}

// Normalizer converts raw fixture rows into canonical artwork records
type Normalizer struct {
	opts Options
}

// NewNormalizer creates a Normalizer; zero-valued options take the defaults
func NewNormalizer(opts Options) *Normalizer {
	if opts.ArtistName == "" {
		opts.ArtistName = DefaultArtistName
	}
	if opts.CreationYear <= 0 {
		opts.CreationYear = DefaultCreationYear
	}
	if opts.Assets == (AssetRewrite{}) {
		opts.Assets = DefaultAssetRewrite()
	}
	return &Normalizer{opts: opts}
}

// Normalize converts raw into the canonical record at 0-based position index
func (n *Normalizer) Normalize(raw RawArtwork, index int) artwork.Artwork {
	record, _ := n.NormalizeWithIssues(raw, index)
	return record
}

// NormalizeAll normalizes rows in source order. GalleryOrder is the 1-based
// position in raws.
func (n *Normalizer) NormalizeAll(raws []RawArtwork) ([]artwork.Artwork, []Issue) {
	records := make([]artwork.Artwork, 0, len(raws))
	var issues []Issue
	for i, raw := range raws {
		record, rowIssues := n.NormalizeWithIssues(raw, i)
		records = append(records, record)
		issues = append(issues, rowIssues...)
	}
	return records, issues
}

// NormalizeWithIssues is Normalize plus the list of fields that fell back
// to defaults
func (n *Normalizer) NormalizeWithIssues(raw RawArtwork, index int) (artwork.Artwork, []Issue) {
	var issues []Issue
	id := strings.TrimSpace(string(raw.ID))
	report := func(field, reason string) {
		issues = append(issues, Issue{Index: index, ID: id, Field: field, Reason: reason})
	}

	if id == "" {
		id = fmt.Sprintf("fixture-%d", index+1)
		report("id", "missing id, using "+id)
	}

	title := strings.TrimSpace(raw.Title.String())
	if title == "" {
		title = untitled
		report("title", "missing title")
	}

	slugValue := slug.FromWithFallback(title, id, fmt.Sprintf("artwork-%d", index+1))
	if slug.From(title) == "" {
		report("slug", "title yields an empty slug, using "+slugValue)
	}

	category, known := artwork.ParseCategory(raw.Category.String())
	if !known {
		report("category", fmt.Sprintf("unknown category %q, using %s", raw.Category.String(), category))
	}

	medium := strings.TrimSpace(raw.Medium.String())
	if medium == "" {
		medium = DefaultMedium
		report("medium", "missing medium")
	}

	dimensions, parsed := ParseDimensions(raw.Dimensions.String())
	if !parsed {
		report("dimensions", fmt.Sprintf("unparsable dimensions %q", raw.Dimensions.String()))
	}

	if raw.Price.Value == nil {
		report("price", "missing price")
	}

	tags := EmotionalTags(raw.Category.String())
	record := artwork.Artwork{
		ID:                     id,
		Title:                  title,
		Slug:                   slugValue,
		Category:               category,
		Subcategory:            optionalString(raw.Subcategory.String()),
		Medium:                 medium,
		Dimensions:             dimensions,
		Pricing:                artwork.Pricing{Original: clonePrice(raw.Price.Value)},
		EmotionalTags:          tags,
		StoryBehindBrushstroke: Story(raw.Description.String(), title, category),
		InspirationSource:      fmt.Sprintf("Artist's %s collection", category),
		PrimaryImage: artwork.Image{
			URL:          n.opts.Assets.Apply(strings.TrimSpace(raw.Image.String())),
			AltText:      fmt.Sprintf("%s - %s", title, medium),
			ColorProfile: DefaultColorProfile,
		},
		AvailabilityStatus: artwork.StatusAvailable,
		IsOriginal:         true,
		Featured:           bool(raw.Featured),
		SearchTags:         searchTags(category, title, medium, tags),
		GalleryOrder:       index + 1,
		CreationYear:       n.opts.CreationYear,
		SEODescription:     n.seoDescription(title, medium, raw.Dimensions.String(), dimensions),
	}

	return record, issues
}

// ParseDimensions reads "<w>cm X <h>cm". The boolean is false when the
// default size was used.
func ParseDimensions(raw string) (artwork.Dimensions, bool) {
	match := dimensionPattern.FindStringSubmatch(raw)
	if match == nil {
		return artwork.DefaultDimensions, false
	}

	width, err := strconv.Atoi(match[1])
	if err != nil || width <= 0 {
		return artwork.DefaultDimensions, false
	}
	height, err := strconv.Atoi(match[2])
	if err != nil || height <= 0 {
		return artwork.DefaultDimensions, false
	}

	return artwork.Dimensions{Width: width, Height: height, Unit: "cm"}, true
}

// EmotionalTags returns a fresh copy of the tags for a raw category label.
// Unrecognized labels get the generic pair.
func EmotionalTags(rawCategory string) []string {
	category, known := artwork.ParseCategory(rawCategory)
	if !known {
		return append([]string(nil), fallbackEmotionalTags...)
	}
	return append([]string(nil), emotionalTagsByCategory[category]...)
}

// Story returns description when it has content, otherwise the templated
// sentence of the category
func Story(description, title string, category artwork.Category) string {
	if d := strings.TrimSpace(description); d != "" {
		return d
	}

	switch category {
	case artwork.CategoryBirds:
		return fmt.Sprintf("This %s represents the essence of freedom and the boundless spirit that soars within us all.", strings.ToLower(title))
	case artwork.CategoryTowns:
		return fmt.Sprintf("%s invites us to find peace in the simple moments and cherish the places that hold our memories.", title)
	default:
		return fmt.Sprintf("The delicate beauty of %s captures nature's healing power and the promise of renewal.", strings.ToLower(title))
	}
}

func searchTags(category artwork.Category, title, medium string, tags []string) []string {
	out := make([]string, 0, 3+len(tags))
	out = append(out, string(category), strings.ToLower(title), strings.ToLower(medium))
	return append(out, tags...)
}

func (n *Normalizer) seoDescription(title, medium, rawDims string, dims artwork.Dimensions) string {
	size := strings.TrimSpace(rawDims)
	if size == "" {
		size = dims.String()
	}
	return fmt.Sprintf("%s - Original %s by %s. %s.", title, medium, n.opts.ArtistName, size)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func clonePrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
