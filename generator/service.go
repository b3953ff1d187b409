package generator

import (
	"context"
	"encoding/binary"
	"errors"
	"log"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of consecutive samples drawn from one stream.
const chunkSize = 64

// ServiceOptions controls batch generation.
type ServiceOptions struct {
	Seed    uint64
	Workers int
	// Format forces one layout; empty picks per sample.
	Format Format
	// Progress, when set, is called after each finished chunk with the
	// number of samples done so far. Calls may come from several goroutines.
	Progress func(done, total int)
}

// Stats summarises a generated batch.
type Stats struct {
	Samples  int
	Entities int
	Formats  map[Format]int
	Labels   map[string]int
	Elapsed  time.Duration
}

// AveragePerSample returns the mean entity count.
func (s Stats) AveragePerSample() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Entities) / float64(s.Samples)
}

// SortedLabels returns the label names ordered by name.
func (s Stats) SortedLabels() []string {
	out := make([]string, 0, len(s.Labels))
	for l := range s.Labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Service orchestrates batch generation. Work is split into fixed chunks,
// each with a stream derived from the seed and the chunk index, so a seed
// reproduces the same batch whatever the worker count.
type Service struct {
	gen    *Generator
	opts   ServiceOptions
	logger *log.Logger
}

// NewService constructs a service around a configured generator.
func NewService(gen *Generator, opts ServiceOptions, logger *log.Logger) (*Service, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Service{gen: gen, opts: opts, logger: logger}, nil
}

// Options returns the options in effect.
func (s *Service) Options() ServiceOptions {
	return s.opts
}

// Generate builds count samples in order.
func (s *Service) Generate(ctx context.Context, count int) ([]Sample, Stats, error) {
	samples, _, stats, err := s.GenerateWithFormats(ctx, count)
	return samples, stats, err
}

// GenerateWithFormats is Generate that also reports the layout of each sample.
func (s *Service) GenerateWithFormats(ctx context.Context, count int) ([]Sample, []Format, Stats, error) {
	start := time.Now()
	if count <= 0 {
		return []Sample{}, []Format{}, newStats(), nil
	}
	samples := make([]Sample, count)
	formats := make([]Format, count)

	var done atomic.Int64
	chunks := (count + chunkSize - 1) / chunkSize
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for c := 0; c < chunks; c++ {
		lo := c * chunkSize
		hi := min(lo+chunkSize, count)
		gen := s.gen.WithRand(ChunkRand(s.opts.Seed, uint64(c)))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				samples[i], formats[i] = s.generateOne(gen)
			}
			n := done.Add(int64(hi - lo))
			if s.opts.Progress != nil {
				s.opts.Progress(int(n), count)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, Stats{}, err
	}

	stats := newStats()
	for i, sample := range samples {
		stats.add(sample, formats[i])
	}
	stats.Elapsed = time.Since(start)
	s.logf("Generated %d samples (%d entities, %.1f per sample) in %s",
		stats.Samples, stats.Entities, stats.AveragePerSample(), stats.Elapsed.Round(time.Millisecond))
	return samples, formats, stats, nil
}

func (s *Service) generateOne(gen *Generator) (Sample, Format) {
	if s.opts.Format != "" {
		return gen.Generate(s.opts.Format), s.opts.Format
	}
	return gen.generate()
}

// ChunkRand derives the stream of one chunk from the batch seed.
func ChunkRand(seed, chunk uint64) *rand.Rand {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], chunk)
	sum := blake2b.Sum256(buf[:])
	return NewRand(binary.LittleEndian.Uint64(sum[:8]), binary.LittleEndian.Uint64(sum[8:16]))
}

func newStats() Stats {
	return Stats{Formats: map[Format]int{}, Labels: map[string]int{}}
}

func (st *Stats) add(sample Sample, f Format) {
	st.Samples++
	st.Entities += len(sample.Entities)
	st.Formats[f]++
	for _, e := range sample.Entities {
		st.Labels[e.Label]++
	}
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
