package generator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const defaultConfigFile = "config.json"

//go:embed default_config.json
var defaultConfigJSON []byte

// ErrUnknownNoiseLevel is returned for a noise level that names no preset.
var ErrUnknownNoiseLevel = errors.New("unknown noise level")

// Noise level names with special meaning.
const (
	NoiseLevelConfig = "config"
	NoiseLevelClean  = "clean"
)

// Field inclusion keys of the Simple layout.
const (
	KeyTwoLetterCode      = "two_letter_code"
	KeySignatureBeforeNom = "signature_noise_before_nom"
	KeySocialStatus       = "social_status_fields"
	KeyHyphenatedAltNames = "hyphenated_alt_names"
	KeyBirthPlace         = "birth_place"
	KeyHeight             = "height"
	KeyOptionalSignature  = "optional_signature"
)

// Field inclusion keys of the Bilingual layout (birth_place is shared).
const (
	KeyAltNameMarried = "alt_name_married"
	KeyExpiryDate     = "expiry_date"
	KeySupportNumber  = "support_number"
)

var defaultSimpleProbs = map[string]float64{
	KeyTwoLetterCode:      0.5,
	KeySignatureBeforeNom: 0.2,
	KeySocialStatus:       0.3,
	KeyHyphenatedAltNames: 0.3,
	KeyBirthPlace:         0.8,
	KeyHeight:             0.6,
	KeyOptionalSignature:  0.4,
}

var defaultBilingualProbs = map[string]float64{
	KeyBirthPlace:     0.9,
	KeyAltNameMarried: 0.3,
	KeyExpiryDate:     0.8,
	KeySupportNumber:  0.4,
}

var defaultSimpleSignature = Weights{
	{Key: "RF ", P: 0.3},
	{Key: "3F ", P: 0.2},
	{Key: "RERE ", P: 0.1},
	{Key: signatureNone, P: 0.4},
}

var defaultBilingualSignature = Weights{
	{Key: "MA ", P: 0.3},
	{Key: signatureRandom2Letter, P: 0.2},
	{Key: signatureRandomDigits, P: 0.1},
	{Key: signatureNone, P: 0.4},
}

var defaultFillers = []string{" ", ".", ",", "-"}

const defaultSimpleShare = 0.7

// NoisePreset is a named noise level from the configuration file.
type NoisePreset struct {
	Name        string
	Description string
	Enabled     bool
	Level       NoiseLevel
}

// CustomSettings overrides the presets when UseCustom is set.
type CustomSettings struct {
	UseCustom bool
	Level     NoiseLevel
}

// FieldProbabilities holds the per-layout inclusion probabilities and the
// signature noise tables.
type FieldProbabilities struct {
	Simple             map[string]float64
	Bilingual          map[string]float64
	SimpleSignature    Weights
	BilingualSignature Weights
}

// Config is the parsed generator configuration file.
type Config struct {
	Presets     []NoisePreset
	Custom      CustomSettings
	Tables      Tables
	Fields      FieldProbabilities
	SimpleShare float64
}

// LoadConfig loads configuration from the given path. An empty path tries
// ./config.json and falls back to the embedded defaults when it is absent.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return ParseConfig(defaultConfigJSON)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// DefaultConfig returns the embedded configuration.
func DefaultConfig() Config {
	cfg, err := ParseConfig(defaultConfigJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded config: %v", err))
	}
	return cfg
}

// DefaultConfigJSON returns a copy of the embedded configuration file.
func DefaultConfigJSON() []byte {
	return append([]byte(nil), defaultConfigJSON...)
}

// ParseConfig decodes a configuration document and applies defaults.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults populates missing tables and probabilities.
func (c *Config) ApplyDefaults() {
	if len(c.Tables.Fillers) == 0 {
		c.Tables.Fillers = append([]string(nil), defaultFillers...)
	}
	if c.Tables.Chars == nil {
		c.Tables.Chars = map[rune]string{}
	}
	if c.Fields.Simple == nil {
		c.Fields.Simple = map[string]float64{}
	}
	if c.Fields.Bilingual == nil {
		c.Fields.Bilingual = map[string]float64{}
	}
	for k, v := range defaultSimpleProbs {
		if _, ok := c.Fields.Simple[k]; !ok {
			c.Fields.Simple[k] = v
		}
	}
	for k, v := range defaultBilingualProbs {
		if _, ok := c.Fields.Bilingual[k]; !ok {
			c.Fields.Bilingual[k] = v
		}
	}
	if len(c.Fields.SimpleSignature) == 0 {
		c.Fields.SimpleSignature = append(Weights(nil), defaultSimpleSignature...)
	}
	if len(c.Fields.BilingualSignature) == 0 {
		c.Fields.BilingualSignature = append(Weights(nil), defaultBilingualSignature...)
	}
}

// PresetNames lists the configured presets in file order.
func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets)+1)
	for _, p := range c.Presets {
		names = append(names, p.Name)
	}
	return names
}

// ResolveNoise picks the noise level for a level name. "config" or "" use the
// custom settings, then the first enabled preset, then MediumNoise.
// A preset chosen by name is always enabled, except "clean".
func (c Config) ResolveNoise(level string) (NoisePreset, error) {
	level = strings.TrimSpace(level)
	switch level {
	case NoiseLevelClean:
		return NoisePreset{Name: NoiseLevelClean, Description: "no noise", Level: CleanNoise}, nil
	case "", NoiseLevelConfig:
		if c.Custom.UseCustom {
			return NoisePreset{Name: "custom", Description: "custom settings", Enabled: true, Level: c.Custom.Level}, nil
		}
		for _, p := range c.Presets {
			if !p.Enabled {
				continue
			}
			if p.Name == NoiseLevelClean {
				p.Level = CleanNoise
			}
			return p, nil
		}
		return NoisePreset{Name: "medium", Description: "default medium noise", Enabled: true, Level: MediumNoise}, nil
	}
	for _, p := range c.Presets {
		if p.Name == level {
			p.Level.Enabled = true
			return p, nil
		}
	}
	return NoisePreset{}, fmt.Errorf("%w: %q", ErrUnknownNoiseLevel, level)
}

// NoiseConfig binds a resolved level to the configured tables.
func (c Config) NoiseConfig(level NoiseLevel) *NoiseConfig {
	return &NoiseConfig{Level: level, Tables: c.Tables}
}

type presetJSON struct {
	Enabled     *bool    `json:"enabled"`
	Description string   `json:"description"`
	Global      *float64 `json:"global_probability"`
	Word        *float64 `json:"word_noise"`
	Spacing     *float64 `json:"spacing_noise"`
	CharSub     *float64 `json:"char_substitution"`
	CharExtra   *float64 `json:"char_extra"`
	CharMissing *float64 `json:"char_missing"`
	CharDouble  *float64 `json:"char_double"`
}

type customJSON struct {
	UseCustom   bool     `json:"use_custom"`
	Global      *float64 `json:"global_probability"`
	Word        *float64 `json:"word_noise_probability"`
	Spacing     *float64 `json:"spacing_noise_probability"`
	CharSub     *float64 `json:"character_substitution_probability"`
	CharExtra   *float64 `json:"extra_char_probability"`
	CharMissing *float64 `json:"missing_char_probability"`
	CharDouble  *float64 `json:"double_char_probability"`
}

type configJSON struct {
	NoisePresets      json.RawMessage   `json:"noise_presets"`
	CustomSettings    customJSON        `json:"custom_settings"`
	WordReplacements  json.RawMessage   `json:"word_replacements"`
	SpacingErrors     json.RawMessage   `json:"spacing_errors"`
	CharSubstitutions map[string]string `json:"character_substitutions"`
	ExtraCharsPool    []string          `json:"extra_chars_pool"`
	FieldTypos        json.RawMessage   `json:"field_typos"`
	FieldProbs        json.RawMessage   `json:"field_generation_probabilities"`
	SimpleShare       *float64          `json:"simple_format_probability"`
}

// UnmarshalJSON decodes the configuration file keeping table order.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw configJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	presets, err := decodeObject(raw.NoisePresets)
	if err != nil {
		return fmt.Errorf("noise_presets: %w", err)
	}
	c.Presets = c.Presets[:0]
	for _, m := range presets {
		if m.Key == "comment" {
			continue
		}
		var p presetJSON
		if err := json.Unmarshal(m.Value, &p); err != nil {
			return fmt.Errorf("noise_presets.%s: %w", m.Key, err)
		}
		c.Presets = append(c.Presets, NoisePreset{
			Name:        m.Key,
			Description: p.Description,
			Enabled:     p.Enabled != nil && *p.Enabled,
			Level: NoiseLevel{
				Enabled:     p.Enabled == nil || *p.Enabled,
				Global:      orDefault(p.Global, MediumNoise.Global),
				Word:        orDefault(p.Word, MediumNoise.Word),
				Spacing:     orDefault(p.Spacing, MediumNoise.Spacing),
				CharSub:     orDefault(p.CharSub, MediumNoise.CharSub),
				CharExtra:   orDefault(p.CharExtra, MediumNoise.CharExtra),
				CharMissing: orDefault(p.CharMissing, MediumNoise.CharMissing),
				CharDouble:  orDefault(p.CharDouble, MediumNoise.CharDouble),
			},
		})
	}

	cs := raw.CustomSettings
	c.Custom = CustomSettings{
		UseCustom: cs.UseCustom,
		Level: NoiseLevel{
			Enabled:     true,
			Global:      orDefault(cs.Global, MediumNoise.Global),
			Word:        orDefault(cs.Word, MediumNoise.Word),
			Spacing:     orDefault(cs.Spacing, MediumNoise.Spacing),
			CharSub:     orDefault(cs.CharSub, MediumNoise.CharSub),
			CharExtra:   orDefault(cs.CharExtra, MediumNoise.CharExtra),
			CharMissing: orDefault(cs.CharMissing, MediumNoise.CharMissing),
			CharDouble:  orDefault(cs.CharDouble, MediumNoise.CharDouble),
		},
	}

	if c.Tables.Words, err = decodeVariantTable(raw.WordReplacements); err != nil {
		return fmt.Errorf("word_replacements: %w", err)
	}
	if c.Tables.Spacing, err = decodeVariantTable(raw.SpacingErrors); err != nil {
		return fmt.Errorf("spacing_errors: %w", err)
	}
	if c.Tables.FieldTypos, err = decodeVariantTable(raw.FieldTypos); err != nil {
		return fmt.Errorf("field_typos: %w", err)
	}
	c.Tables.Chars = make(map[rune]string, len(raw.CharSubstitutions))
	for k, v := range raw.CharSubstitutions {
		// only single-rune keys can ever match the per-rune scan
		if utf8.RuneCountInString(k) != 1 {
			continue
		}
		ch, _ := utf8.DecodeRuneInString(k)
		c.Tables.Chars[ch] = v
	}
	c.Tables.Fillers = raw.ExtraCharsPool

	if err := c.Fields.decode(raw.FieldProbs); err != nil {
		return fmt.Errorf("field_generation_probabilities: %w", err)
	}
	c.SimpleShare = orDefault(raw.SimpleShare, defaultSimpleShare)
	return nil
}

func (f *FieldProbabilities) decode(data json.RawMessage) error {
	sections, err := decodeObject(data)
	if err != nil {
		return err
	}
	for _, s := range sections {
		switch s.Key {
		case "simple_format":
			if f.Simple, err = decodeProbabilities(s.Value, "probability"); err != nil {
				return fmt.Errorf("simple_format: %w", err)
			}
		case "bilingual_format":
			if f.Bilingual, err = decodeProbabilities(s.Value, "probability"); err != nil {
				return fmt.Errorf("bilingual_format: %w", err)
			}
		case "signature_noise_patterns":
			tables, err := decodeObject(s.Value)
			if err != nil {
				return fmt.Errorf("signature_noise_patterns: %w", err)
			}
			for _, t := range tables {
				var w Weights
				switch t.Key {
				case "simple_format", "bilingual_format":
					if w, err = decodeWeights(t.Value); err != nil {
						return fmt.Errorf("signature_noise_patterns.%s: %w", t.Key, err)
					}
				default:
					continue
				}
				if t.Key == "simple_format" {
					f.SimpleSignature = w
				} else {
					f.BilingualSignature = w
				}
			}
		}
	}
	return nil
}

type member struct {
	Key   string
	Value json.RawMessage
}

// decodeObject splits a JSON object into its members in document order.
// A missing or null object yields no members.
func decodeObject(data json.RawMessage) ([]member, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeVariantTable(data json.RawMessage) (VariantTable, error) {
	members, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	table := make(VariantTable, 0, len(members))
	for _, m := range members {
		if m.Key == "comment" {
			continue
		}
		var variants []string
		if err := json.Unmarshal(m.Value, &variants); err != nil {
			return nil, fmt.Errorf("%s: %w", m.Key, err)
		}
		table = append(table, Variants{Key: m.Key, Variants: variants})
	}
	return table, nil
}

// decodeProbabilities accepts both `key: 0.5` and `key: {"probability": 0.5}`.
func decodeProbabilities(data json.RawMessage, field string) (map[string]float64, error) {
	members, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(members))
	for _, m := range members {
		if m.Key == "comment" {
			continue
		}
		p, err := decodeNumberOrField(m.Value, field)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Key, err)
		}
		out[m.Key] = p
	}
	return out, nil
}

func decodeWeights(data json.RawMessage) (Weights, error) {
	members, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	out := make(Weights, 0, len(members))
	for _, m := range members {
		if m.Key == "comment" {
			continue
		}
		p, err := decodeNumberOrField(m.Value, "weight")
		if err != nil {
			return nil, fmt.Errorf("%q: %w", m.Key, err)
		}
		out = append(out, Weight{Key: m.Key, P: p})
	}
	return out, nil
}

func decodeNumberOrField(data json.RawMessage, field string) (float64, error) {
	var p float64
	if err := json.Unmarshal(data, &p); err == nil {
		return p, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return 0, fmt.Errorf("want number or object with %q", field)
	}
	raw, ok := obj[field]
	if !ok {
		return 0, fmt.Errorf("missing %q", field)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return p, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
