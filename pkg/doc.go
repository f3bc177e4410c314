// Package pkg provides the core libraries for Cardstack, a layout engine for
// paged card-stack carousels.
//
// # Overview
//
// A card stack shows one card per page at the front and a few cards behind
// it, each smaller and inset to the right. Scrolling one page moves the front
// card off to the left while every card behind it slides one depth forward.
// The pkg directory is organized into these areas:
//
//  1. [stack] - The geometry: frames, pages, layout invalidation, paging
//  2. [render] - Filmstrip output (SVG, PNG, PDF, JSON, YAML) and styles
//  3. [pipeline] - Orchestration (layout → render) with caching
//  4. [server] - HTTP frame service
//  5. [config], [cache], [errors], [observability] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Host scroll state (offset, width, height, item count)
//	         ↓
//	    [stack] package (one frame per offset)
//	         ↓
//	    [render/sink] package (filmstrip panels, one per frame)
//	         ↓
//	    SVG/PNG/PDF/JSON/YAML output
//
// # Quick Start
//
// Compute a frame:
//
//	import "github.com/matzehuels/cardstack/pkg/stack"
//
//	cfg := stack.DefaultConfig()
//	frame := stack.Compute(cfg, stack.Viewport{
//	    Offset:    150,
//	    Width:     200,
//	    Height:    300,
//	    ItemCount: 10,
//	})
//	for _, it := range frame.PaintOrder() {
//	    fmt.Println(it.Index, it.Center, it.Scale, it.Opacity)
//	}
//
// Render a filmstrip through the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Viewport: stack.Viewport{Width: 200, Height: 300, ItemCount: 5},
//	    From:     0,
//	    To:       800,
//	    Steps:    9,
//	    Formats:  []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	    Style:    "handdrawn",
//	})
//
// UI hosts hold a [stack.Layout], which caches the last pass and notifies
// subscribers when the configuration or the bounds change, and a
// [stack.Pager] bound to their scroll container.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/stack/...    # Geometry only
//	go test -run Example       # Examples only
//
// [stack]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/stack
// [render]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cardstack/pkg/observability
package pkg
