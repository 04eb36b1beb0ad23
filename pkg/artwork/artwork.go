package artwork

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AvailabilityStatus describes whether an artwork can currently be acquired
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "available"
	StatusSold      AvailabilityStatus = "sold"
	StatusReserved  AvailabilityStatus = "reserved"
	StatusInquire   AvailabilityStatus = "inquire"
)

// Valid reports whether s is one of the known availability states
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved, StatusInquire:
		return true
	}
	return false
}

// Dimensions is the physical size of a canvas
type Dimensions struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Unit   string `json:"unit"`
}

// DefaultDimensions is used whenever a size cannot be parsed
var DefaultDimensions = Dimensions{Width: 40, Height: 40, Unit: "cm"}

// String formats the dimensions for display, e.g. "40cm × 40cm"
func (d Dimensions) String() string {
	return fmt.Sprintf("%d%s × %d%s", d.Width, d.Unit, d.Height, d.Unit)
}

// Pricing holds the price of the original piece. A nil Original means the
// price is not published.
type Pricing struct {
	Original *float64 `json:"original,omitempty"`
}

var priceFormatter = message.NewPrinter(language.AmericanEnglish)

// Display renders the price in whole US dollars
func (p Pricing) Display() string {
	if p.Original == nil {
		return "Price on request"
	}
	return priceFormatter.Sprintf("$%d", int64(math.Round(*p.Original)))
}

// Image is a published image asset of an artwork
type Image struct {
	URL          string `json:"url"`
	AltText      string `json:"altText"`
	ColorProfile string `json:"colorProfile"`
}

// Artwork is the canonical catalog record. The database mapper and the
// fixture normalizer both produce exactly this type.
type Artwork struct {
	ID                     string             `json:"id"`
	Title                  string             `json:"title"`
	Slug                   string             `json:"slug"`
	Category               Category           `json:"category"`
	Subcategory            *string            `json:"subcategory"`
	Medium                 string             `json:"medium"`
	Dimensions             Dimensions         `json:"dimensions"`
	Pricing                Pricing            `json:"pricing"`
	EmotionalTags          []string           `json:"emotionalTags"`
	StoryBehindBrushstroke string             `json:"storyBehindBrushstroke"`
	InspirationSource      string             `json:"inspirationSource"`
	PrimaryImage           Image              `json:"primaryImage"`
	AvailabilityStatus     AvailabilityStatus `json:"availabilityStatus"`
	IsOriginal             bool               `json:"isOriginal"`
	Featured               bool               `json:"featured"`
	SearchTags             []string           `json:"searchTags"`
	GalleryOrder           int                `json:"galleryOrder"`
	CreationYear           int                `json:"creationYear"`
	SEODescription         string             `json:"seoDescription"`
	CreatedAt              time.Time          `json:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt"`
}

// IsAvailable reports whether the artwork is listed as available
func (a *Artwork) IsAvailable() bool {
	return a.AvailabilityStatus == StatusAvailable
}

// Clone returns a deep copy so callers can't mutate shared record sets
func (a Artwork) Clone() Artwork {
	out := a
	if a.Subcategory != nil {
		sub := *a.Subcategory
		out.Subcategory = &sub
	}
	if a.Pricing.Original != nil {
		price := *a.Pricing.Original
		out.Pricing.Original = &price
	}
	out.EmotionalTags = append([]string(nil), a.EmotionalTags...)
	out.SearchTags = append([]string(nil), a.SearchTags...)
	return out
}
