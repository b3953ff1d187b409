package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"yashubustudio/idgen/generator"
	"yashubustudio/idgen/locales"
)

type cliOptions struct {
	outputPath  string
	count       int
	configPath  string
	noiseLevel  string
	localeList  string
	allLocales  bool
	listLocales bool
	seed        uint64
	workers     int
	format      string
	bioOutput   string
	tokenizer   string
	quiet       bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("idgen-cli: %v", err)
	}
	if opts.listLocales {
		printLocales()
		return
	}
	if err := run(opts); err != nil {
		log.Fatalf("idgen-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	// Best-effort: .env in the working directory provides flag defaults.
	_ = godotenv.Load()

	var opts cliOptions
	flag.StringVar(&opts.outputPath, "output", "", "Output JSON file path (required)")
	flag.IntVar(&opts.count, "count", 100, "Number of ID cards to generate")
	flag.StringVar(&opts.configPath, "config", envString("IDGEN_CONFIG", ""), "Path to config.json (default: ./config.json, then the built-in config)")
	flag.StringVar(&opts.noiseLevel, "noise-level", envString("IDGEN_NOISE_LEVEL", generator.NoiseLevelConfig), "Noise preset: clean, light, medium, heavy or config")
	flag.StringVar(&opts.localeList, "locales", envString("IDGEN_LOCALES", strings.Join(locales.DefaultLocales, ",")), "Comma-separated list of locales")
	flag.BoolVar(&opts.allLocales, "all-locales", false, "Use every available locale")
	flag.BoolVar(&opts.listLocales, "list-locales", false, "List available locales and exit")
	flag.Uint64Var(&opts.seed, "seed", envUint("IDGEN_SEED", 0), "Random seed; 0 picks one and prints it")
	flag.IntVar(&opts.workers, "workers", envInt("IDGEN_WORKERS", 0), "Parallel workers (default: GOMAXPROCS)")
	flag.StringVar(&opts.format, "format", "", "Force one layout: simple or bilingual (default: mixed)")
	flag.StringVar(&opts.bioOutput, "bio-output", "", "Also write BIO-tagged tokens as JSON lines to this file")
	flag.StringVar(&opts.tokenizer, "tokenizer", "", "tokenizer.json used for --bio-output (default: whitespace split)")
	flag.BoolVar(&opts.quiet, "quiet", false, "Suppress progress logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --output FILE [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.outputPath = strings.TrimSpace(opts.outputPath)
	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.bioOutput = strings.TrimSpace(opts.bioOutput)
	opts.tokenizer = strings.TrimSpace(opts.tokenizer)

	if opts.listLocales {
		return opts, nil
	}
	if opts.outputPath == "" {
		flag.Usage()
		return opts, errors.New("missing required --output file")
	}
	if opts.count < 0 {
		return opts, fmt.Errorf("--count must not be negative, got %d", opts.count)
	}
	if opts.tokenizer != "" && opts.bioOutput == "" {
		return opts, errors.New("--tokenizer requires --bio-output")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	format, err := generator.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := generator.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	preset, err := cfg.ResolveNoise(opts.noiseLevel)
	if err != nil {
		return fmt.Errorf("%w (available: clean, %s, config)", err, strings.Join(cfg.PresetNames(), ", "))
	}

	codes := locales.ParseList(opts.localeList)
	if opts.allLocales {
		codes = locales.Available()
	}
	providers, err := locales.New(codes...)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var logger *log.Logger
	if !opts.quiet {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	gen, err := generator.New(cfg, preset.Level, locales.FieldProviders(providers), generator.NewRand(seed, 0))
	if err != nil {
		return fmt.Errorf("init generator: %w", err)
	}
	service, err := generator.NewService(gen, generator.ServiceOptions{Seed: seed, Workers: opts.workers, Format: format}, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}

	fmt.Printf("Generating %d synthetic ID cards\n", opts.count)
	fmt.Printf("  noise:   %s (%s)\n", preset.Name, describeLevel(preset.Level))
	fmt.Printf("  locales: %s\n", describeLocales(providers))
	fmt.Printf("  seed:    %d\n", seed)
	fmt.Println(strings.Repeat("-", 70))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	samples, stats, err := service.Generate(ctx, opts.count)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := generator.WriteSamples(opts.outputPath, samples); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	if opts.bioOutput != "" {
		if err := writeBIO(opts.bioOutput, opts.tokenizer, samples); err != nil {
			return err
		}
	}

	printStats(stats)
	fmt.Printf("Saved to: %s\n", opts.outputPath)
	if opts.bioOutput != "" {
		fmt.Printf("BIO tokens saved to: %s\n", opts.bioOutput)
	}
	fmt.Printf("\nValidate with: idgen-verify %s\n", opts.outputPath)
	return nil
}

func writeBIO(path, tokenizerPath string, samples []generator.Sample) error {
	var enc generator.TokenEncoder = generator.WhitespaceEncoder{}
	if tokenizerPath != "" {
		hf, err := generator.NewHFEncoder(tokenizerPath)
		if err != nil {
			return err
		}
		enc = hf
	}
	tagged, err := generator.TagSamples(enc, samples)
	if err != nil {
		return fmt.Errorf("tag samples: %w", err)
	}
	if err := generator.WriteTagged(path, tagged); err != nil {
		return fmt.Errorf("write bio output: %w", err)
	}
	return nil
}

func printLocales() {
	fmt.Println("Available locales:")
	fmt.Println(strings.Repeat("=", 60))
	for _, code := range locales.Available() {
		fmt.Printf("  %-10s - %s\n", code, locales.DisplayName(code))
	}
	fmt.Println("\nUsage: --locales fr_FR,ar_EG,zh_CN")
	fmt.Println("   Or: --all-locales")
}

func printStats(stats generator.Stats) {
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Generated %d ID cards (%d simple, %d bilingual)\n",
		stats.Samples, stats.Formats[generator.FormatSimple], stats.Formats[generator.FormatBilingual])
	fmt.Printf("Total entities: %d\n", stats.Entities)
	fmt.Printf("Average entities per card: %.1f\n", stats.AveragePerSample())
	for _, label := range stats.SortedLabels() {
		fmt.Printf("  %-18s %d\n", label, stats.Labels[label])
	}
}

func describeLevel(l generator.NoiseLevel) string {
	if !l.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("global=%.3f word=%.3f spacing=%.3f sub=%.3f extra=%.3f missing=%.3f double=%.3f",
		l.Global, l.Word, l.Spacing, l.CharSub, l.CharExtra, l.CharMissing, l.CharDouble)
}

func describeLocales(ps []*locales.Provider) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Code()
	}
	return strings.Join(parts, ", ")
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return v
	}
	return def
}

func envUint(key string, def uint64) uint64 {
	if v, err := strconv.ParseUint(strings.TrimSpace(os.Getenv(key)), 10, 64); err == nil {
		return v
	}
	return def
}
