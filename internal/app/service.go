package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"yashubustudio/idgen/generator"
	"yashubustudio/idgen/locales"
)

// Service binds the preview settings to the generator.
type Service struct {
	mu     sync.RWMutex
	cfg    Config
	genCfg generator.Config
	logger *log.Logger
}

func NewService(cfg Config, logger *log.Logger) (*Service, error) {
	cfg = sanitizeConfig(cfg)
	genCfg, err := generator.LoadConfig(cfg.GeneratorConfig)
	if err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, genCfg: genCfg, logger: logger}, nil
}

func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// UpdateConfig applies new settings. The generator configuration is reloaded
// when its path changes; on failure the previous one is kept.
func (s *Service) UpdateConfig(cfg Config) Config {
	cfg = sanitizeConfig(cfg)
	s.mu.Lock()
	prevPath := s.cfg.GeneratorConfig
	s.cfg = cfg
	s.mu.Unlock()

	if cfg.GeneratorConfig != prevPath {
		genCfg, err := generator.LoadConfig(cfg.GeneratorConfig)
		if err != nil {
			s.logf("生成設定の読み込みに失敗しました (%s): %v", cfg.GeneratorConfig, err)
			return cfg
		}
		s.mu.Lock()
		s.genCfg = genCfg
		s.mu.Unlock()
		s.logf("生成設定を %s から読み込みました", cfg.GeneratorConfig)
	}
	return cfg
}

// NoiseChoices lists the selectable noise levels.
func (s *Service) NoiseChoices() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{generator.NoiseLevelClean}
	for _, name := range s.genCfg.PresetNames() {
		if name != generator.NoiseLevelClean {
			out = append(out, name)
		}
	}
	return append(out, generator.NoiseLevelConfig)
}

// Generate builds the preview batch described by the current settings.
func (s *Service) Generate(ctx context.Context, progress func(done, total int)) ([]PreviewRow, generator.Stats, error) {
	s.mu.RLock()
	cfg, genCfg := s.cfg, s.genCfg
	s.mu.RUnlock()

	if cfg.OverrideShare {
		genCfg.SimpleShare = cfg.SimpleShare
	}
	preset, err := genCfg.ResolveNoise(cfg.NoiseLevel)
	if err != nil {
		return nil, generator.Stats{}, err
	}
	providers, err := locales.New(cfg.Locales...)
	if err != nil {
		return nil, generator.Stats{}, err
	}
	gen, err := generator.New(genCfg, preset.Level, locales.FieldProviders(providers), generator.NewRand(cfg.Seed, 0))
	if err != nil {
		return nil, generator.Stats{}, err
	}
	svc, err := generator.NewService(gen, generator.ServiceOptions{
		Seed:     cfg.Seed,
		Workers:  cfg.Workers,
		Format:   cfg.Format,
		Progress: progress,
	}, s.logger)
	if err != nil {
		return nil, generator.Stats{}, err
	}
	s.logf("生成開始: %d件 / ノイズ %s / ロケール %v / seed %d", cfg.Count, preset.Name, cfg.Locales, cfg.Seed)

	samples, formats, stats, err := svc.GenerateWithFormats(ctx, cfg.Count)
	if err != nil {
		return nil, stats, fmt.Errorf("generate: %w", err)
	}
	return buildRows(samples, formats), stats, nil
}

func buildRows(samples []generator.Sample, formats []generator.Format) []PreviewRow {
	rows := make([]PreviewRow, len(samples))
	for i, s := range samples {
		rep := generator.Verify([]generator.Sample{s})
		rows[i] = PreviewRow{Index: i, Sample: s, Format: formats[i], Mismatches: rep.Errors}
	}
	return rows
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
