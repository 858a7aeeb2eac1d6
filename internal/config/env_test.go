package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 300, cfg.Render.DPI)
	assert.Equal(t, 4, cfg.Render.Workers)
	assert.Equal(t, 200, cfg.Detect.BinaryThreshold)
	assert.Equal(t, "projection", cfg.Detect.TableStrategy)
	assert.Equal(t, 30, cfg.Pipeline.MergeMaxGap)
	assert.InDelta(t, 0.6, cfg.Pipeline.NMSIoUThreshold, 0.001)
	assert.Equal(t, "structured", cfg.Generate.Strategy)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Axiom.FlushInterval)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RENDER_DPI", "150")
	t.Setenv("GENERATE_STRATEGY", "spatial")
	t.Setenv("PIPELINE_DISABLED_STAGES", "nms, filter")
	t.Setenv("METRICS_ENABLED", "true")

	cfg := FromEnv()
	assert.Equal(t, 150, cfg.Render.DPI)
	assert.Equal(t, "spatial", cfg.Generate.Strategy)
	assert.Equal(t, []string{"nms", "filter"}, cfg.Pipeline.DisabledStages)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("RENDER_DPI", "lots")
	t.Setenv("PIPELINE_NMS_IOU", "very high")

	cfg := FromEnv()
	assert.Equal(t, 300, cfg.Render.DPI)
	assert.InDelta(t, 0.6, cfg.Pipeline.NMSIoUThreshold, 0.001)
}

func TestParseHelpers(t *testing.T) {
	assert.True(t, parseBool("YES"))
	assert.False(t, parseBool("nope"))
	assert.Equal(t, 7, parseInt("7", 1))
	assert.Equal(t, 1, parseInt("x", 1))
	assert.Equal(t, 5*time.Second, parseDuration("5s", time.Second))
	assert.Nil(t, parseList(" "))
}
