package server

import (
	"net/url"
	"strconv"
	"strings"

	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/pipeline"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// queryParser reads typed query parameters and remembers the first error.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) float(name string, def float64) float64 {
	raw := p.q.Get(name)
	if raw == "" || p.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid %s: %q", name, raw)
		return def
	}
	return v
}

func (p *queryParser) int(name string, def int) int {
	raw := p.q.Get(name)
	if raw == "" || p.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid %s: %q", name, raw)
		return def
	}
	return v
}

func (p *queryParser) bool(name string) bool {
	raw := p.q.Get(name)
	if raw == "" || p.err != nil {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.err = errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid %s: %q", name, raw)
	}
	return v
}

func (p *queryParser) string(name, def string) string {
	if v := p.q.Get(name); v != "" {
		return v
	}
	return def
}

// layout applies per-request overrides to the server's layout config.
func (p *queryParser) layout(base stack.Config) stack.Config {
	cfg := base
	cfg.ItemSize.Width = p.float("item_width", cfg.ItemSize.Width)
	cfg.ItemSize.Height = p.float("item_height", cfg.ItemSize.Height)
	cfg.Spacing = p.float("spacing", cfg.Spacing)
	cfg.MaxVisible = p.int("max_visible", cfg.MaxVisible)
	cfg.ScaleFactor = p.float("scale_factor", cfg.ScaleFactor)
	if raw := p.q.Get("policy"); raw != "" && p.err == nil {
		policy, err := stack.ParsePolicy(raw)
		if err != nil {
			p.err = err
		}
		cfg.Policy = policy
	}
	return cfg
}

// viewport reads offset, width, height and items over the defaults.
func (p *queryParser) viewport(def stack.Viewport) stack.Viewport {
	return stack.Viewport{
		Offset:    p.float("offset", 0),
		Width:     p.float("width", def.Width),
		Height:    p.float("height", def.Height),
		ItemCount: p.int("items", def.ItemCount),
	}
}

// pipelineOptions builds pipeline options for a single-frame or filmstrip
// request.
func (s *Server) pipelineOptions(q url.Values) (pipeline.Options, error) {
	p := &queryParser{q: q}
	opts := pipeline.Options{
		Config:     p.layout(s.opts.Layout),
		Viewport:   p.viewport(s.opts.Viewport),
		From:       p.float("from", 0),
		To:         p.float("to", 0),
		Steps:      p.int("steps", 0),
		Style:      p.string("style", s.opts.Style),
		Columns:    p.int("columns", 0),
		Captions:   p.bool("captions"),
		Background: p.bool("background"),
		Scale:      p.float("scale", 0),
		Rasterizer: p.string("rasterizer", ""),
		Logger:     s.logger,
	}
	if raw := q.Get("offsets"); raw != "" && p.err == nil {
		for _, part := range strings.Split(raw, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				p.err = errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid offsets: %q", raw)
				break
			}
			opts.Offsets = append(opts.Offsets, v)
		}
	}
	if opts.Offsets == nil && opts.From == 0 && opts.To == 0 {
		opts.Offsets = []float64{opts.Viewport.Offset}
	}
	if labels := q.Get("labels"); labels != "" {
		opts.Labels = strings.Split(labels, ",")
	}
	return opts, p.err
}
