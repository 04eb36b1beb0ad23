package fixture

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawArtwork is one entry of the static artwork fixture. The fixture is
// maintained by hand, so every field is optional and loosely typed.
type RawArtwork struct {
	ID          LooseString `json:"id"`
	Title       LooseString `json:"title"`
	Category    LooseString `json:"category"`
	Subcategory LooseString `json:"subcategory"`
	Dimensions  LooseString `json:"dimensions"`
	Medium      LooseString `json:"medium"`
	Price       LooseNumber `json:"price"`
	Description LooseString `json:"description"`
	Image       LooseString `json:"image"`
	Featured    LooseBool   `json:"featured"`
}

// Document is the top-level fixture shape
type Document struct {
	Artworks []json.RawMessage `json:"artworks"`
}

// LooseString accepts a JSON string or number. Any other value decodes to
// the empty string.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	*s = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err == nil {
			*s = LooseString(str)
		}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = LooseString(num.String())
	}
	return nil
}

func (s LooseString) String() string {
	return string(s)
}

// LooseBool accepts a JSON boolean or a boolean string such as "true".
// Anything else decodes to false.
type LooseBool bool

func (b *LooseBool) UnmarshalJSON(data []byte) error {
	*b = false

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = LooseBool(v)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(str)); err == nil {
			*b = LooseBool(parsed)
		}
	}
	return nil
}

// LooseNumber accepts a JSON number, a numeric string or null. Anything
// else, non-finite values included, decodes to an absent value rather than
// failing the whole row.
type LooseNumber struct {
	Value *float64
}

func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	n.Value = nil

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		raw = strings.TrimSpace(str)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.Value = &v
	return nil
}

func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
