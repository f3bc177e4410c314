// Package pipeline provides the frame pipeline for cardstack.
//
// This package implements the complete layout → render pipeline that is
// used by the CLI and the HTTP frame service. By centralizing this logic,
// both entry points compute frames and encode artifacts the same way and
// share one cache.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Compute one [stack.Frame] per scroll offset
//  2. Render: Encode the frames in various formats (SVG, PNG, PDF, JSON, YAML)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Config:   stack.DefaultConfig(),
//	    Viewport: stack.Viewport{Width: 200, Height: 300, ItemCount: 10},
//	    Offsets:  []float64{0, 50, 100, 150, 200},
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [stack.Frame]: github.com/matzehuels/cardstack/pkg/stack.Frame
package pipeline

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardstack/pkg/cache"
	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/render/sink"
	"github.com/matzehuels/cardstack/pkg/render/styles"
	"github.com/matzehuels/cardstack/pkg/render/styles/handdrawn"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultSteps is the number of frames sampled between From and To.
	DefaultSteps = 5

	// MaxFrames bounds a single pipeline run.
	MaxFrames = 1000

	// DefaultSeed is the default seed for the hand-drawn style.
	DefaultSeed = handdrawn.DefaultSeed
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatYAML: true,
}

// ValidRasterizers is the set of supported PNG rasterizers.
var ValidRasterizers = map[string]bool{
	string(sink.RasterAuto):   true,
	string(sink.RasterRsvg):   true,
	string(sink.RasterNative): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the frame pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Config   stack.Config   `json:"config"`
	Viewport stack.Viewport `json:"viewport"`
	// Offsets lists the scroll offsets to lay out. When empty, Steps offsets
	// are sampled evenly from From to To inclusive, and when those are unset
	// the viewport offset is used.
	Offsets []float64 `json:"offsets,omitempty"`
	From    float64   `json:"from,omitempty"`
	To      float64   `json:"to,omitempty"`
	Steps   int       `json:"steps,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`
	Columns    int      `json:"columns,omitempty"`
	Captions   bool     `json:"captions,omitempty"`
	Background bool     `json:"background,omitempty"`
	Labels     []string `json:"labels,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Rasterizer string   `json:"rasterizer,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Frames holds one frame per offset, in offset order.
	Frames []stack.Frame

	// FramesHash is the content hash of the frames.
	FramesHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FrameCount int
	ItemCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether frames came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, yaml)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.ByName(style)
	return err
}

// ValidateRasterizer checks that a PNG rasterizer is valid.
func ValidateRasterizer(r string) error {
	if !ValidRasterizers[r] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid rasterizer: %q (must be one of: auto, rsvg, native)", r)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Config == (stack.Config{}) {
		o.Config = stack.DefaultConfig()
	}
	if o.Config.Policy == "" {
		o.Config.Policy = stack.PolicyAnchored
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := errs.ValidatePositive(errs.ErrCodeInvalidViewport, "viewport width", o.Viewport.Width); err != nil {
		return err
	}
	if err := errs.ValidateNonNegative(errs.ErrCodeInvalidViewport, "viewport height", o.Viewport.Height); err != nil {
		return err
	}
	if err := errs.ValidateCount(errs.ErrCodeInvalidViewport, "item count", o.Viewport.ItemCount, 0); err != nil {
		return err
	}
	if err := errs.ValidateCount(errs.ErrCodeInvalidInput, "steps", o.Steps, 1); err != nil {
		return err
	}
	offsets := o.FrameOffsets()
	if len(offsets) > MaxFrames {
		return errs.New(errs.ErrCodeInvalidInput, "too many frames: %d (max %d)", len(offsets), MaxFrames)
	}
	for _, off := range offsets {
		if math.IsNaN(off) || math.IsInf(off, 0) {
			return errs.New(errs.ErrCodeInvalidViewport, "offset must be a finite number, got %v", off)
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Rasterizer == "" {
		o.Rasterizer = string(sink.RasterAuto)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateRasterizer(o.Rasterizer); err != nil {
		return err
	}
	if err := errs.ValidateCount(errs.ErrCodeInvalidInput, "columns", o.Columns, 0); err != nil {
		return err
	}
	return errs.ValidatePositive(errs.ErrCodeInvalidInput, "scale", o.Scale)
}

// FrameOffsets returns the offsets to lay out, in order.
func (o *Options) FrameOffsets() []float64 {
	if len(o.Offsets) > 0 {
		return o.Offsets
	}
	if o.From == 0 && o.To == 0 {
		return []float64{o.Viewport.Offset}
	}
	return SampleOffsets(o.From, o.To, o.Steps)
}

// SampleOffsets returns steps offsets evenly spaced from from to to inclusive.
func SampleOffsets(from, to float64, steps int) []float64 {
	if steps <= 1 {
		return []float64{from}
	}
	offsets := make([]float64, steps)
	for i := range offsets {
		offsets[i] = from + (to-from)*float64(i)/float64(steps-1)
	}
	return offsets
}

// FrameKeyOpts returns cache key options for frame computation.
func (o *Options) FrameKeyOpts() cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Width:     o.Viewport.Width,
		Height:    o.Viewport.Height,
		ItemCount: o.Viewport.ItemCount,
		Offsets:   o.FrameOffsets(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	style := fmt.Sprintf("%s/%d/c%d/cap=%t/bg=%t/labels=%s/%s",
		o.Style, o.Seed, o.Columns, o.Captions, o.Background, cache.HashJSON(o.Labels), o.Rasterizer)
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  style,
		Scale:  o.Scale,
	}
}
