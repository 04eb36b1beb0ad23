package artwork

import "strings"

// Category is the closed set of gallery collections
type Category string

const (
	CategoryBirds   Category = "birds"
	CategoryFlowers Category = "flowers"
	CategoryTowns   Category = "towns"
)

// DefaultCategory receives every raw label that is not recognized
const DefaultCategory = CategoryFlowers

// Categories lists the collections in display order
var Categories = []Category{CategoryBirds, CategoryFlowers, CategoryTowns}

// categoryAliases maps lowercased raw labels onto the enumeration.
// Legacy fixtures call the flowers collection "floral".
var categoryAliases = map[string]Category{
	"birds":   CategoryBirds,
	"flowers": CategoryFlowers,
	"floral":  CategoryFlowers,
	"towns":   CategoryTowns,
}

// ParseCategory resolves a raw label. The label is always trimmed and
// lowercased before the alias lookup. Unknown labels resolve to
// DefaultCategory with ok set to false.
func ParseCategory(raw string) (c Category, ok bool) {
	c, ok = categoryAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return DefaultCategory, false
	}
	return c, true
}

// Valid reports whether c is a member of the enumeration
func (c Category) Valid() bool {
	switch c {
	case CategoryBirds, CategoryFlowers, CategoryTowns:
		return true
	}
	return false
}

// Label is the collection title shown in the gallery filter
func (c Category) Label() string {
	switch c {
	case CategoryBirds:
		return "Liberation & Freedom"
	case CategoryFlowers:
		return "Growth & Renewal"
	case CategoryTowns:
		return "Peace & Sanctuary"
	}
	return "All Collections"
}
