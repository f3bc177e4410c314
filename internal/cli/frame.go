package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardstack/pkg/pipeline"
)

// frameOpts holds the flags of the frame command.
type frameOpts struct {
	offsets []float64
	format  string
	output  string
	noCache bool
	layout  *layoutFlags
}

// frameCommand creates the frame command, which prints computed frames.
func (c *CLI) frameCommand() *cobra.Command {
	opts := frameOpts{}

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Compute the card attributes for one or more scroll offsets",
		Long: `Compute the card attributes for one or more scroll offsets.

Each frame lists the visible cards front to back with their center, size,
scale, z-index and opacity. Centers are relative to the visible viewport.`,
		Example: `  cardstack frame --offset 150
  cardstack frame --offset 0,100,200 --max-visible 3 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFrame(cmd.Context(), &opts)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.offsets, "offset", []float64{0}, "scroll offset(s), comma-separated")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatJSON, "output format: json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	opts.layout = addLayoutFlags(cmd)

	return cmd
}

func (c *CLI) runFrame(ctx context.Context, opts *frameOpts) error {
	if opts.format != pipeline.FormatJSON && opts.format != pipeline.FormatYAML {
		return fmt.Errorf("invalid format: %s (must be 'json' or 'yaml')", opts.format)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	layout, vpc, err := opts.layout.apply(cfg)
	if err != nil {
		return err
	}
	vp, err := vpc.Viewport(0)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Config:   layout,
		Viewport: vp,
		Offsets:  opts.offsets,
		Formats:  []string{opts.format},
		Style:    cfg.Render.Style,
	})
	if err != nil {
		return err
	}
	c.Logger.Debug("computed frames", "frames", result.Stats.FrameCount, "cached", result.CacheInfo.LayoutHit)

	return writeOutput(opts.output, result.Artifacts[opts.format])
}
