package generator

import (
	"encoding/json"
	"fmt"
)

// Format selects one of the two card layouts a sample is built from.
type Format string

const (
	// FormatSimple is the single-language layout where each value follows its label.
	FormatSimple Format = "simple"
	// FormatBilingual is the French/English layout where several values are
	// printed after a contiguous block of labels.
	FormatBilingual Format = "bilingual"
)

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// ParseFormat converts a format name. An empty name means "choose per sample".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return "", nil
	case FormatSimple, FormatBilingual:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Entity labels emitted by the assemblers.
const (
	LabelCountry       = "Country"
	LabelDocType       = "DOC_TYPE"
	LabelDNI           = "DNI"
	LabelNationality   = "Nationality"
	LabelName          = "Name"
	LabelAltName       = "Alt_name"
	LabelGender        = "Gender"
	LabelBirthDate     = "Date of birthday"
	LabelBirthPlace    = "Birth_place"
	LabelHeight        = "Height"
	LabelValidityDate  = "Validity_date"
	LabelSupportNumber = "Support_number"
)

// GivenNameLabel returns the label of the i-th given name (1-based).
func GivenNameLabel(i int) string {
	return fmt.Sprintf("Surname_%d", i)
}

// Entity is a labeled span [Start, End) counted in runes of the sample text.
type Entity struct {
	Start int
	End   int
	Label string
	Value string
}

// MarshalJSON encodes the entity as [start, end, label, value].
func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Start, e.End, e.Label, e.Value})
}

// UnmarshalJSON decodes the [start, end, label, value] array form.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode entity: %w", err)
	}
	if len(raw) != 4 {
		return fmt.Errorf("decode entity: want 4 fields, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Start); err != nil {
		return fmt.Errorf("decode entity start: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.End); err != nil {
		return fmt.Errorf("decode entity end: %w", err)
	}
	if err := json.Unmarshal(raw[2], &e.Label); err != nil {
		return fmt.Errorf("decode entity label: %w", err)
	}
	if err := json.Unmarshal(raw[3], &e.Value); err != nil {
		return fmt.Errorf("decode entity value: %w", err)
	}
	return nil
}

// Sample is one generated card text with its annotations in left-to-right order.
type Sample struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
}

// NoiseLevel bundles the probabilities that drive the noise engine.
type NoiseLevel struct {
	Enabled bool
	// Global gates every other mechanism.
	Global      float64
	Word        float64
	Spacing     float64
	CharSub     float64
	CharExtra   float64
	CharMissing float64
	CharDouble  float64
}

// MediumNoise is used when the configuration selects no preset at all.
var MediumNoise = NoiseLevel{
	Enabled:     true,
	Global:      0.15,
	Word:        0.10,
	Spacing:     0.08,
	CharSub:     0.05,
	CharExtra:   0.02,
	CharMissing: 0.015,
	CharDouble:  0.02,
}

// CleanNoise disables all corruption.
var CleanNoise = NoiseLevel{}

// Weight is one option of a weighted choice table.
type Weight struct {
	Key string
	P   float64
}

// Weights is an ordered weighted choice table. Order decides the fallback.
type Weights []Weight

// Variants maps a pattern to its replacement candidates, keeping file order.
type Variants struct {
	Key      string
	Variants []string
}

// VariantTable is an ordered pattern→variants lookup table.
type VariantTable []Variants

// Lookup returns the variants registered for an exact key.
func (t VariantTable) Lookup(key string) ([]string, bool) {
	for _, v := range t {
		if v.Key == key {
			return v.Variants, true
		}
	}
	return nil, false
}

// Tables holds the lookup tables consumed by the noise engine.
type Tables struct {
	Words      VariantTable
	Spacing    VariantTable
	Chars      map[rune]string
	Fillers    []string
	FieldTypos VariantTable
}

// NoiseConfig is the immutable noise bundle shared by every generator.
type NoiseConfig struct {
	Level  NoiseLevel
	Tables Tables
}
