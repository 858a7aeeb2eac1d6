package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/local/layoutmd/internal/analyzer"
	cfgpkg "github.com/local/layoutmd/internal/config"
	"github.com/local/layoutmd/internal/converter"
	"github.com/local/layoutmd/internal/detect"
	"github.com/local/layoutmd/internal/generate"
	logpkg "github.com/local/layoutmd/internal/logger"
	"github.com/local/layoutmd/internal/metrics"
	"github.com/local/layoutmd/internal/pdf"
	"github.com/local/layoutmd/internal/pipeline"
)

func main() {
	_ = godotenv.Load()
	cfg := cfgpkg.FromEnv()

	if err := logpkg.Init(cfg.Logging, cfg.Axiom); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logpkg.Close()

	refs := os.Args[1:]
	if len(refs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: app <pdf-ref> [<pdf-ref> ...]")
		fmt.Fprintln(os.Stderr, "refs: local path, file://, http(s):// or s3://bucket/key")
		os.Exit(2)
	}

	metrics.Init()
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error().Err(err).Msg("metrics endpoint failed")
			}
		}()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint started")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv, err := buildConverter(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	exitCode := 0
	for _, ref := range refs {
		if err := convertOne(ctx, conv, cfg, ref); err != nil {
			log.Error().Err(err).Str("ref", ref).Msg("conversion failed")
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func buildConverter(cfg cfgpkg.Config) (*converter.Converter, error) {
	rectCfg := detect.DefaultRectangleConfig()
	rectCfg.BinaryThreshold = uint8(cfg.Detect.BinaryThreshold)
	rectCfg.MinWidthRatio = cfg.Detect.MinWidthRatio
	rectCfg.MinHeightRatio = cfg.Detect.MinHeightRatio
	rectCfg.MinAreaRatio = cfg.Detect.MinAreaRatio
	rectCfg.MaxAreaRatio = cfg.Detect.MaxAreaRatio
	rectCfg.MaxAspectRatio = cfg.Detect.MaxAspectRatio

	tableCfg := detect.DefaultTableConfig()
	tableCfg.ClusterThreshold = cfg.Detect.ClusterThreshold
	tableCfg.BoundaryMargin = cfg.Detect.BoundaryMargin

	var strategy detect.LineStrategy
	if cfg.Detect.TableStrategy == "segment" {
		strategy = detect.NewSegmentStrategy(tableCfg)
	}

	pipeCfg := pipeline.DefaultConfig()
	pipeCfg.MergeMaxGap = cfg.Pipeline.MergeMaxGap
	pipeCfg.MergePadding = cfg.Pipeline.MergePadding
	pipeCfg.NMSIoUThreshold = cfg.Pipeline.NMSIoUThreshold
	pipeCfg.FilterMinAreaRatio = cfg.Pipeline.MinAreaRatio
	pipe := pipeline.Default(pipeCfg)
	for _, name := range cfg.Pipeline.DisabledStages {
		pipe.SetEnabled(name, false)
	}

	gen, err := generate.ForStrategy(cfg.Generate.Strategy, cfg.Render.DPI)
	if err != nil {
		return nil, err
	}

	a := analyzer.New(
		detect.NewRectangleDetector(rectCfg),
		detect.NewTableDetector(tableCfg, strategy),
		pipe,
	)
	return converter.New(a, gen, converter.Options{
		DPI:      cfg.Render.DPI,
		Strategy: cfg.Generate.Strategy,
		Workers:  cfg.Render.Workers,
		DebugDir: cfg.Output.DebugDir,
	}), nil
}

func convertOne(ctx context.Context, conv *converter.Converter, cfg cfgpkg.Config, ref string) error {
	path, cleanup, err := pdf.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := pdf.Open(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	if !doc.HasTextLayer() {
		log.Warn().Str("ref", ref).Msg("document has no extractable text layer, output will be geometry only")
	}

	markdown, err := conv.Convert(ctx, doc)
	if err != nil {
		return err
	}

	out := outputPath(cfg.Output.Dir, ref)
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(out, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	log.Info().Str("ref", ref).Str("output", out).Int("pages", doc.PageCount()).Msg("document converted")
	return nil
}

// outputPath derives the markdown filename from the reference basename.
func outputPath(dir, ref string) string {
	base := filepath.Base(ref)
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "document"
	}
	return filepath.Join(dir, base+".md")
}
