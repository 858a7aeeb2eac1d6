// Package pipeline refines detected regions through an ordered,
// composable sequence of pure stages.
package pipeline

import (
	"github.com/rs/zerolog/log"

	"github.com/local/layoutmd/internal/geom"
)

// Context carries the per-page data stages may consult: the extracted
// text spans and the page pixel dimensions.
type Context struct {
	Spans  []geom.TextSpan
	Width  int
	Height int
}

// Stage transforms a region set. Implementations must be pure: empty
// input yields empty output and the input slice is never mutated.
type Stage interface {
	Name() string
	Process(regions []geom.Region, ctx Context) []geom.Region
}

// Pipeline runs stages in order. Stages can be looked up by name and
// toggled without removing them.
type Pipeline struct {
	stages   []Stage
	disabled map[string]bool
}

// New builds a pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages, disabled: make(map[string]bool)}
}

// Default returns the standard pipeline: merge, then non-maximum
// suppression, then area filtering.
func Default(cfg Config) *Pipeline {
	return New(
		NewMergeStage(cfg.MergeMaxGap, cfg.MergePadding),
		NewNMSStage(cfg.NMSIoUThreshold),
		NewFilterStage(cfg.FilterMinArea, cfg.FilterMaxArea, cfg.FilterMinAreaRatio),
	)
}

// Config holds the stage parameters of the default pipeline.
type Config struct {
	MergeMaxGap        int
	MergePadding       int
	NMSIoUThreshold    float64
	FilterMinArea      int
	FilterMaxArea      int
	FilterMinAreaRatio float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MergeMaxGap:        30,
		MergePadding:       10,
		NMSIoUThreshold:    0.6,
		FilterMinAreaRatio: 0.01,
	}
}

// Add appends a stage and returns the pipeline for chaining.
func (p *Pipeline) Add(s Stage) *Pipeline {
	p.stages = append(p.stages, s)
	return p
}

// Remove drops the first stage with the given name and reports whether
// one was found.
func (p *Pipeline) Remove(name string) bool {
	for i, s := range p.stages {
		if s.Name() == name {
			p.stages = append(p.stages[:i], p.stages[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the first stage with the given name, or nil.
func (p *Pipeline) Get(name string) Stage {
	for _, s := range p.stages {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// SetEnabled toggles a stage by name without removing it.
func (p *Pipeline) SetEnabled(name string, enabled bool) {
	p.disabled[name] = !enabled
}

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Process runs all enabled stages in order.
func (p *Pipeline) Process(regions []geom.Region, ctx Context) []geom.Region {
	out := regions
	for _, s := range p.stages {
		if p.disabled[s.Name()] {
			continue
		}
		before := len(out)
		out = s.Process(out, ctx)
		log.Debug().
			Str("stage", s.Name()).
			Int("in", before).
			Int("out", len(out)).
			Msg("pipeline stage applied")
	}
	return out
}
