package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// AxiomConfig holds Axiom log forwarding configuration.
type AxiomConfig struct {
	Send          bool
	APIKey        string
	OrgID         string
	Dataset       string
	FlushInterval time.Duration
}

// RenderConfig controls page rasterization and the page worker pool.
type RenderConfig struct {
	DPI     int
	Workers int
}

// DetectConfig tunes the layout detectors.
type DetectConfig struct {
	BinaryThreshold  int
	MinWidthRatio    float64
	MinHeightRatio   float64
	MinAreaRatio     float64
	MaxAreaRatio     float64
	MaxAspectRatio   float64
	TableStrategy    string // "projection" or "segment"
	ClusterThreshold int
	BoundaryMargin   int
}

// PipelineConfig tunes geometric post-processing.
type PipelineConfig struct {
	MergeMaxGap     int
	MergePadding    int
	NMSIoUThreshold float64
	MinAreaRatio    float64
	DisabledStages  []string
}

// GenerateConfig selects and tunes the markdown generator.
type GenerateConfig struct {
	Strategy string // "spatial", "structured" or "fixed"
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// OutputConfig controls where results land.
type OutputConfig struct {
	Dir      string
	DebugDir string
}

// Config is the top-level configuration.
type Config struct {
	Logging  LoggingConfig
	Axiom    AxiomConfig
	Render   RenderConfig
	Detect   DetectConfig
	Pipeline PipelineConfig
	Generate GenerateConfig
	Metrics  MetricsConfig
	Output   OutputConfig
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{}

	cfg.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
		File:       getEnv("LOG_FILE", "logs/layoutmd.log"),
		MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
		MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
		MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
		Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
	}

	baseDataset := getEnv("AXIOM_DATASET", "dev")
	cfg.Axiom = AxiomConfig{
		Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
		APIKey:        getEnv("AXIOM_API_KEY", ""),
		OrgID:         getEnv("AXIOM_ORG_ID", ""),
		Dataset:       baseDataset + "_layoutmd",
		FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
	}

	cfg.Render = RenderConfig{
		DPI:     parseInt(getEnv("RENDER_DPI", "300"), 300),
		Workers: parseInt(getEnv("RENDER_WORKERS", "4"), 4),
	}

	cfg.Detect = DetectConfig{
		BinaryThreshold:  parseInt(getEnv("DETECT_BINARY_THRESHOLD", "200"), 200),
		MinWidthRatio:    parseFloat(getEnv("DETECT_MIN_WIDTH_RATIO", "0.05"), 0.05),
		MinHeightRatio:   parseFloat(getEnv("DETECT_MIN_HEIGHT_RATIO", "0.025"), 0.025),
		MinAreaRatio:     parseFloat(getEnv("DETECT_MIN_AREA_RATIO", "0.02"), 0.02),
		MaxAreaRatio:     parseFloat(getEnv("DETECT_MAX_AREA_RATIO", "0.95"), 0.95),
		MaxAspectRatio:   parseFloat(getEnv("DETECT_MAX_ASPECT_RATIO", "15"), 15),
		TableStrategy:    getEnv("DETECT_TABLE_STRATEGY", "projection"),
		ClusterThreshold: parseInt(getEnv("DETECT_CLUSTER_THRESHOLD", "15"), 15),
		BoundaryMargin:   parseInt(getEnv("DETECT_BOUNDARY_MARGIN", "20"), 20),
	}

	cfg.Pipeline = PipelineConfig{
		MergeMaxGap:     parseInt(getEnv("PIPELINE_MERGE_MAX_GAP", "30"), 30),
		MergePadding:    parseInt(getEnv("PIPELINE_MERGE_PADDING", "10"), 10),
		NMSIoUThreshold: parseFloat(getEnv("PIPELINE_NMS_IOU", "0.6"), 0.6),
		MinAreaRatio:    parseFloat(getEnv("PIPELINE_MIN_AREA_RATIO", "0.01"), 0.01),
		DisabledStages:  parseList(getEnv("PIPELINE_DISABLED_STAGES", "")),
	}

	cfg.Generate = GenerateConfig{
		Strategy: getEnv("GENERATE_STRATEGY", "structured"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: parseBool(getEnv("METRICS_ENABLED", "0")),
		Addr:    getEnv("METRICS_ADDR", ":9090"),
	}

	cfg.Output = OutputConfig{
		Dir:      getEnv("OUTPUT_DIR", "."),
		DebugDir: getEnv("OUTPUT_DEBUG_DIR", ""),
	}

	return cfg
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func parseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func devDefaultPretty() string {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "dev" || env == "development" || env == "local" {
		return "true"
	}
	return "false"
}
