// Package server provides the HTTP frame service.
//
// The service exposes the layout engine over HTTP so web and native hosts
// can fetch card attributes without linking the Go package:
//
//	GET /healthz                            liveness and version
//	GET /v1/frame?offset&width&height&items frame JSON for one offset
//	GET /v1/frame.svg?...                   the same frame as SVG
//	GET /v1/render?format&from&to&steps     filmstrip in any output format
//	GET /v1/page?offset&width               current page for an offset
//	GET /v1/pages/{page}/offset?width&items target offset for a page
//
// Layout parameters (spacing, max_visible, scale_factor, policy, item_width,
// item_height) override the server defaults per request. Errors are JSON
// objects with a code and message; validation failures map to 400.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cardstack/pkg/pipeline"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// Defaults for [Options].
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultStyle        = pipeline.DefaultStyle
	shutdownTimeout     = 5 * time.Second
)

// Options configures a [Server].
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Layout is the configuration used when a request does not override it.
	Layout stack.Config
	// Viewport holds the default viewport size and item count.
	Viewport stack.Viewport
	// Style is the default SVG style.
	Style string
}

func (o *Options) setDefaults() {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	if o.Layout == (stack.Config{}) {
		o.Layout = stack.DefaultConfig()
	}
	if o.Viewport.Width == 0 {
		o.Viewport.Width = o.Layout.ItemSize.Width
	}
	if o.Viewport.Height == 0 {
		o.Viewport.Height = o.Layout.ItemSize.Height
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
}

// Server serves frames over HTTP.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a server that computes frames with runner.
func New(runner *pipeline.Runner, opts Options, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	opts.setDefaults()

	s := &Server{runner: runner, opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.WriteTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/frame", s.handleFrame)
		r.Get("/frame.svg", s.handleFrameSVG)
		r.Get("/render", s.handleRender)
		r.Get("/page", s.handlePage)
		r.Get("/pages/{page}/offset", s.handlePageOffset)
	})
	r.NotFound(s.handleNotFound)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving frames", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
