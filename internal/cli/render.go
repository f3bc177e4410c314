package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardstack/pkg/pipeline"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string    // output file path (or base path for multiple outputs)
	formats    string    // output formats: "svg", "pdf", "png", "json", "yaml"
	offsets    []float64 // explicit offsets; overrides from/to/steps
	from       float64   // first sampled offset
	to         float64   // last sampled offset
	steps      int       // number of sampled offsets
	style      string    // visual style: "simple", "outline" or "handdrawn"
	seed       uint64    // handdrawn seed
	columns    int       // filmstrip panels per row
	captions   bool      // caption each panel with offset, page and progress
	background bool      // fill the viewport behind the cards
	labels     []string  // card labels, by index
	scale      float64   // PNG scale factor
	rasterizer string    // PNG rasterizer: auto, rsvg, native
	noCache    bool
	refresh    bool
	layout     *layoutFlags
}

// renderCommand creates the render command for generating filmstrips.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a filmstrip of stack frames",
		Long: `Render a filmstrip of stack frames to SVG, PNG, PDF, JSON or YAML.

Offsets are either given explicitly with --offsets or sampled evenly from
--from to --to. Without either, the full scroll range is sampled.`,
		Example: `  cardstack render -o strip.svg
  cardstack render --from 0 --to 400 --steps 9 --columns 3 --captions -f svg,png
  cardstack render --offsets 150 --style handdrawn -o frame.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, yaml (comma-separated)")
	f.Float64SliceVar(&opts.offsets, "offsets", nil, "explicit scroll offsets, comma-separated")
	f.Float64Var(&opts.from, "from", 0, "first sampled offset")
	f.Float64Var(&opts.to, "to", 0, "last sampled offset (default: last page)")
	f.IntVar(&opts.steps, "steps", pipeline.DefaultSteps, "number of sampled offsets")
	f.StringVar(&opts.style, "style", "", "visual style: simple, outline, handdrawn")
	f.Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed for the handdrawn style")
	f.IntVar(&opts.columns, "columns", 0, "filmstrip panels per row (0: one row)")
	f.BoolVar(&opts.captions, "captions", false, "caption each panel")
	f.BoolVar(&opts.background, "background", false, "fill the viewport background")
	f.StringSliceVar(&opts.labels, "labels", nil, "card labels by index, comma-separated")
	f.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	f.StringVar(&opts.rasterizer, "rasterizer", "auto", "PNG rasterizer: auto, rsvg, native")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	opts.layout = addLayoutFlags(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	layout, vpc, err := opts.layout.apply(cfg)
	if err != nil {
		return err
	}

	formats := cfg.Render.Formats
	if opts.formats != "" {
		formats = pipeline.ParseFormats(opts.formats)
	}
	style := cfg.Render.Style
	if opts.style != "" {
		style = opts.style
	}
	columns := cfg.Render.Columns
	if cmd.Flags().Changed("columns") {
		columns = opts.columns
	}

	vp, err := vpc.Viewport(0)
	if err != nil {
		return err
	}
	pipeOpts := pipeline.Options{
		Config:     layout,
		Viewport:   vp,
		Offsets:    opts.offsets,
		From:       opts.from,
		To:         opts.to,
		Steps:      opts.steps,
		Formats:    formats,
		Style:      style,
		Seed:       opts.seed,
		Columns:    columns,
		Captions:   opts.captions,
		Background: opts.background,
		Labels:     opts.labels,
		Scale:      opts.scale,
		Rasterizer: opts.rasterizer,
		Refresh:    opts.refresh,
	}
	if len(opts.offsets) == 0 && !cmd.Flags().Changed("to") {
		pipeOpts.To = stack.MaxOffset(vp)
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	rep := newReporter(cmd.ErrOrStderr())
	prog := newProgress(c.Logger)
	spinner := newSpinnerTo(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", strings.Join(pipeOpts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d frames", result.Stats.FrameCount))

	if err := writeArtifacts(rep, result.Artifacts, pipeOpts.Formats, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		rep.stats(result.Stats.FrameCount, result.Stats.ItemCount, result.CacheInfo.RenderHit)
	}
	return nil
}

// writeArtifacts writes one file per format. A single format goes to output
// as given (stdout when empty); several formats share output as a base path.
func writeArtifacts(rep reporter, artifacts map[string][]byte, formats []string, output string) error {
	if len(formats) == 1 {
		if err := writeOutput(output, artifacts[formats[0]]); err != nil {
			return err
		}
		if output != "" && output != "-" {
			rep.file(output)
		}
		return nil
	}

	base := basePath(output)
	for _, format := range formats {
		path := base + "." + format
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		rep.file(path)
	}
	return nil
}

// basePath strips a known format extension from output.
// An empty output defaults to "cardstack".
func basePath(output string) string {
	if output == "" {
		return appName
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
