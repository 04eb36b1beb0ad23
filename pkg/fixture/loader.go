package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/artwork-data.json
var embeddedFixture []byte

// Load reads the fixture at path, or the embedded fixture when path is empty
func Load(path string) ([]RawArtwork, []Issue, error) {
	if path == "" {
		return Parse(embeddedFixture)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a fixture document. Fields of the wrong type decode to
// their zero value and are defaulted by the Normalizer. Only a row that is
// not a JSON object is skipped, reported as an Issue at its source index.
func Parse(data []byte) ([]RawArtwork, []Issue, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse fixture document: %w", err)
	}

	var issues []Issue
	raws := make([]RawArtwork, 0, len(doc.Artworks))
	for i, row := range doc.Artworks {
		var raw RawArtwork
		if err := json.Unmarshal(row, &raw); err != nil {
			issues = append(issues, Issue{
				Index:  i,
				Field:  "row",
				Reason: fmt.Sprintf("row skipped: %v", err),
			})
			continue
		}
		raws = append(raws, raw)
	}

	return raws, issues, nil
}
