package app

import (
	"strings"

	"yashubustudio/idgen/generator"
	"yashubustudio/idgen/locales"
)

const (
	fyneAppID           = "studio.yashubu.idgen"
	defaultSettingsFile = "config/preview_settings.json"
	defaultGeneratorCfg = "config.json"

	defaultPreviewCount = 50
	maxPreviewCount     = 5000
)

var formatChoices = []struct {
	Label string
	Value generator.Format
}{
	{Label: "混在 (設定比率)", Value: ""},
	{Label: "シンプル", Value: generator.FormatSimple},
	{Label: "バイリンガル", Value: generator.FormatBilingual},
}

// Config holds the preview window settings persisted between sessions.
type Config struct {
	Count      int              `json:"count"`
	Seed       uint64           `json:"seed"`
	NoiseLevel string           `json:"noise_level"`
	Locales    []string         `json:"locales"`
	Format     generator.Format `json:"format"`
	Workers    int              `json:"workers"`

	// OverrideShare replaces the configured simple layout share with SimpleShare.
	OverrideShare bool    `json:"override_share"`
	SimpleShare   float64 `json:"simple_share"`

	GeneratorConfig string `json:"generator_config"`
	SettingsFile    string `json:"-"`
}

func defaultConfig() Config {
	return Config{
		Count:           defaultPreviewCount,
		Seed:            1,
		NoiseLevel:      generator.NoiseLevelConfig,
		Locales:         append([]string(nil), locales.DefaultLocales...),
		SimpleShare:     0.7,
		GeneratorConfig: defaultGeneratorCfg,
		SettingsFile:    defaultSettingsFile,
	}
}

func sanitizeConfig(cfg Config) Config {
	if cfg.Count < 1 {
		cfg.Count = 1
	}
	if cfg.Count > maxPreviewCount {
		cfg.Count = maxPreviewCount
	}
	cfg.NoiseLevel = strings.TrimSpace(cfg.NoiseLevel)
	if cfg.NoiseLevel == "" {
		cfg.NoiseLevel = generator.NoiseLevelConfig
	}
	cfg.Locales = uniqueNormalized(cfg.Locales)
	if len(cfg.Locales) == 0 {
		cfg.Locales = append([]string(nil), locales.DefaultLocales...)
	}
	if _, err := generator.ParseFormat(string(cfg.Format)); err != nil {
		cfg.Format = ""
	}
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}
	cfg.SimpleShare = clamp01(cfg.SimpleShare)
	cfg.GeneratorConfig = strings.TrimSpace(cfg.GeneratorConfig)
	cfg.SettingsFile = strings.TrimSpace(cfg.SettingsFile)
	return cfg
}

func formatLabel(f generator.Format) string {
	for _, c := range formatChoices {
		if c.Value == f {
			return c.Label
		}
	}
	return string(f)
}
