package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cardstack/pkg/buildinfo"
	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/observability"
	"github.com/matzehuels/cardstack/pkg/pipeline"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatYAML: "application/yaml",
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

// PageResponse is returned by the paging endpoints.
type PageResponse struct {
	Page   int      `json:"page"`
	Offset *float64 `json:"offset,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
	})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	opts, err := s.singleFrameOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	frames, err := s.runner.ComputeFrames(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, frames[0])
}

func (s *Server) handleFrameSVG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.singleFrameOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatSVG}
	s.execute(w, r, opts, pipeline.FormatSVG)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.pipelineOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	s.execute(w, r, opts, format)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p := &queryParser{q: r.URL.Query()}
	offset := p.float("offset", 0)
	width := p.float("width", s.opts.Viewport.Width)
	if p.err != nil {
		s.writeError(w, r, p.err)
		return
	}
	if err := errs.ValidatePositive(errs.ErrCodeInvalidViewport, "width", width); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse{Page: stack.CurrentPage(offset, width)})
}

func (s *Server) handlePageOffset(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "page")
	page, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid page: %q", raw))
		return
	}

	p := &queryParser{q: r.URL.Query()}
	vp := p.viewport(s.opts.Viewport)
	if p.err != nil {
		s.writeError(w, r, p.err)
		return
	}
	if err := errs.ValidatePositive(errs.ErrCodeInvalidViewport, "width", vp.Width); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errs.ValidateCount(errs.ErrCodeInvalidViewport, "items", vp.ItemCount, 1); err != nil {
		s.writeError(w, r, err)
		return
	}

	offset := stack.OffsetForPage(page, vp.Width, vp.ItemCount)
	writeJSON(w, http.StatusOK, PageResponse{
		Page:   stack.CurrentPage(offset, vp.Width),
		Offset: &offset,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errs.New(errs.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

// singleFrameOptions reads a one-offset request; from/to/offsets are ignored.
func (s *Server) singleFrameOptions(r *http.Request) (pipeline.Options, error) {
	opts, err := s.pipelineOptions(r.URL.Query())
	if err != nil {
		return opts, err
	}
	opts.From, opts.To = 0, 0
	opts.Offsets = []float64{opts.Viewport.Offset}
	return opts, nil
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options, format string) {
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// writeError maps err to a status code and writes an [ErrorResponse].
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}

	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}

	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   errs.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
