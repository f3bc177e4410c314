package pipeline

import (
	"testing"

	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/stack"
)

func testViewport() stack.Viewport {
	return stack.Viewport{Width: 200, Height: 300, ItemCount: 10}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"yaml", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errs.GetCode(err), errs.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"outline", false},
		{"handdrawn", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" svg, PNG,,json ")
	want := []string{"svg", "png", "json"}
	if len(got) != len(want) {
		t.Fatalf("ParseFormats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseFormats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFrameOffsets(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []float64
	}{
		{"explicit", Options{Offsets: []float64{5, 1}}, []float64{5, 1}},
		{"viewport offset", Options{Viewport: stack.Viewport{Offset: 42}}, []float64{42}},
		{"sampled", Options{From: 0, To: 400, Steps: 5}, []float64{0, 100, 200, 300, 400}},
		{"single step", Options{From: 7, To: 400, Steps: 1}, []float64{7}},
		{"descending", Options{From: 200, To: 0, Steps: 3}, []float64{200, 100, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.FrameOffsets()
			if len(got) != len(tt.want) {
				t.Fatalf("FrameOffsets() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FrameOffsets()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"zero width", Options{Viewport: stack.Viewport{Height: 300, ItemCount: 3}}, errs.ErrCodeInvalidViewport},
		{"negative items", Options{Viewport: stack.Viewport{Width: 200, ItemCount: -1}}, errs.ErrCodeInvalidViewport},
		{"bad config", Options{Config: stack.Config{MaxVisible: 0, ScaleFactor: 0.9}, Viewport: testViewport()}, errs.ErrCodeInvalidConfig},
		{"negative steps", Options{Viewport: testViewport(), From: 0, To: 100, Steps: -2}, errs.ErrCodeInvalidInput},
		{"too many frames", Options{Viewport: testViewport(), From: 0, To: 100, Steps: MaxFrames + 1}, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errs.Is(err, tt.code) {
				t.Errorf("ValidateForLayout() = %v, want code %s", err, tt.code)
			}
		})
	}

	ok := Options{Viewport: testViewport()}
	if err := ok.ValidateForLayout(); err != nil {
		t.Errorf("valid options should pass: %v", err)
	}
	if ok.Config != stack.DefaultConfig() {
		t.Errorf("zero config should default, got %+v", ok.Config)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"format", Options{Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
		{"style", Options{Style: "neon"}, errs.ErrCodeInvalidStyle},
		{"rasterizer", Options{Rasterizer: "gpu"}, errs.ErrCodeInvalidInput},
		{"columns", Options{Columns: -1}, errs.ErrCodeInvalidInput},
		{"scale", Options{Scale: -2}, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errs.Is(err, tt.code) {
				t.Errorf("ValidateForRender() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Viewport: testViewport()}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalConfig := opts.Config
	originalStyle := opts.Style
	originalSteps := opts.Steps

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Config != originalConfig {
		t.Error("Config changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
	if opts.Steps != originalSteps {
		t.Error("Steps changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Config != stack.DefaultConfig() {
		t.Errorf("Config should default, got %+v", opts.Config)
	}
	if opts.Steps != DefaultSteps {
		t.Errorf("Steps should be %d, got %d", DefaultSteps, opts.Steps)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Rasterizer != "auto" {
		t.Errorf("Rasterizer should be auto, got %s", opts.Rasterizer)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Style: "simple"}
	b := Options{Style: "simple", Captions: true}
	if a.ArtifactKeyOpts("svg") == b.ArtifactKeyOpts("svg") {
		t.Error("captions should change the artifact key")
	}
	c := Options{Style: "simple", Labels: []string{"x"}}
	if a.ArtifactKeyOpts("svg") == c.ArtifactKeyOpts("svg") {
		t.Error("labels should change the artifact key")
	}
}
