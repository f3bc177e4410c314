package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cardstack/pkg/render/sink"
	"github.com/matzehuels/cardstack/pkg/render/styles"
	"github.com/matzehuels/cardstack/pkg/render/styles/handdrawn"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// Render generates output artifacts in the requested formats. Formats are
// encoded concurrently; the first failure cancels the rest.
func Render(ctx context.Context, frames []stack.Frame, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(ctx, frames, format, svgOpts, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, frames []stack.Frame, format string, svgOpts []sink.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(frames, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, frames,
			sink.WithPNGSVGOptions(svgOpts...),
			sink.WithScale(opts.Scale),
			sink.WithRasterizer(sink.Rasterizer(opts.Rasterizer)))
	case FormatPDF:
		return sink.RenderPDF(ctx, frames, svgOpts...)
	case FormatJSON:
		return sink.RenderJSON(frames, buildJSONOptions(opts)...)
	case FormatYAML:
		return sink.RenderYAML(frames, buildJSONOptions(opts)...)
	}
	return nil, ValidateFormat(format)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := resolveStyle(opts)
	if err != nil {
		return nil, err
	}

	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithColumns(opts.Columns)}
	if opts.Captions {
		svgOpts = append(svgOpts, sink.WithCaptions())
	}
	if opts.Background {
		svgOpts = append(svgOpts, sink.WithBackground())
	}
	if len(opts.Labels) > 0 {
		svgOpts = append(svgOpts, sink.WithLabels(opts.Labels))
	}
	return svgOpts, nil
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	jsonOpts := []sink.JSONOption{sink.WithJSONConfig(opts.Config), sink.WithJSONStyle(opts.Style)}
	if len(opts.Labels) > 0 {
		jsonOpts = append(jsonOpts, sink.WithJSONLabels(opts.Labels))
	}
	return jsonOpts
}

// resolveStyle maps the style name to an implementation. The hand-drawn
// style is seeded from the options.
func resolveStyle(opts Options) (styles.Style, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	if _, ok := style.(handdrawn.HandDrawn); ok {
		seed := opts.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		return handdrawn.New(seed), nil
	}
	return style, nil
}
