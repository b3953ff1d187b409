// Package generator synthesizes annotated identity-card texts for NER
// training. A Generator assembles one of two card layouts field by field,
// corrupts labels and values with OCR-style noise, and records the exact
// rune span of every annotated value after its noise has been applied.
//
// Usage:
//
//	cfg, _ := generator.LoadConfig("")
//	preset, _ := cfg.ResolveNoise("medium")
//	g, _ := generator.New(cfg, preset.Level, providers, generator.NewRand(42, 0))
//	sample := g.GenerateOne()
package generator

import (
	"errors"
	"math/rand/v2"
)

// ErrNoProviders is returned when a Generator is built without field providers.
var ErrNoProviders = errors.New("at least one field provider is required")

// Generator carries everything one sample needs: the random stream, the
// immutable noise configuration, the field providers and the layout
// probabilities. A Generator must not be used from several goroutines; use
// WithRand to derive one per worker.
type Generator struct {
	r           *rand.Rand
	noise       *NoiseConfig
	providers   []FieldProvider
	fields      FieldProbabilities
	simpleShare float64
}

// New builds a Generator from a parsed configuration and a resolved noise level.
func New(cfg Config, level NoiseLevel, providers []FieldProvider, r *rand.Rand) (*Generator, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if r == nil {
		r = NewRand(rand.Uint64(), 0)
	}
	cfg.ApplyDefaults()
	return &Generator{
		r:           r,
		noise:       cfg.NoiseConfig(level),
		providers:   append([]FieldProvider(nil), providers...),
		fields:      cfg.Fields,
		simpleShare: cfg.SimpleShare,
	}, nil
}

// NewRand returns a PCG stream for the given seed and stream id.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// WithRand returns a copy sharing the read-only state with its own stream.
func (g *Generator) WithRand(r *rand.Rand) *Generator {
	cp := *g
	cp.r = r
	return &cp
}

// Noise exposes the noise configuration in use.
func (g *Generator) Noise() *NoiseConfig {
	return g.noise
}

// ApplyNoise corrupts text using the generator's stream.
func (g *Generator) ApplyNoise(text string, allowed bool) string {
	return g.noise.Apply(g.r, text, allowed)
}

// FieldTypo corrupts a form label using the generator's stream.
func (g *Generator) FieldTypo(label string) string {
	return g.noise.FieldTypo(g.r, label)
}

// GenerateOne picks a layout by the configured share and builds one sample.
func (g *Generator) GenerateOne() Sample {
	s, _ := g.generate()
	return s
}

func (g *Generator) generate() (Sample, Format) {
	if g.r.Float64() < g.simpleShare {
		return g.GenerateSimple(), FormatSimple
	}
	return g.GenerateBilingual(), FormatBilingual
}

// Generate builds one sample of the given layout, or of a randomly chosen
// layout when f is empty.
func (g *Generator) Generate(f Format) Sample {
	switch f {
	case FormatSimple:
		return g.GenerateSimple()
	case FormatBilingual:
		return g.GenerateBilingual()
	}
	return g.GenerateOne()
}

// GenerateBatch builds count samples sequentially.
func (g *Generator) GenerateBatch(count int) []Sample {
	out := make([]Sample, 0, max(count, 0))
	for i := 0; i < count; i++ {
		out = append(out, g.GenerateOne())
	}
	return out
}

func (g *Generator) provider() FieldProvider {
	return choice(g.r, g.providers)
}

func (g *Generator) include(probs map[string]float64, key string) bool {
	return g.r.Float64() < probs[key]
}
