package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/freehand/pkg/buildinfo"
	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/geom"
	"github.com/matzehuels/freehand/pkg/observability"
	"github.com/matzehuels/freehand/pkg/pipeline"
	"github.com/matzehuels/freehand/pkg/render"
	"github.com/matzehuels/freehand/pkg/scene"
)

// HeaderCache reports whether the artifact came from the cache.
const HeaderCache = "X-Freehand-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := scene.FormatFromContentType(r.Header.Get("Content-Type"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sc, err := scene.Read(http.MaxBytesReader(w, r.Body, s.maxBody), format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.execute(w, r, sc)
}

func (s *Server) handleLine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := geom.ParsePoint(q.Get("from"))
	if err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "from: %v", err))
		return
	}
	to, err := geom.ParsePoint(q.Get("to"))
	if err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "to: %v", err))
		return
	}
	s.quick(w, r, scene.Shape{
		Kind:   scene.KindLine,
		Points: [][2]float64{{from.X, from.Y}, {to.X, to.Y}},
	})
}

func (s *Server) handleRect(w http.ResponseWriter, r *http.Request) {
	rect, err := geom.ParseRect(r.URL.Query().Get("rect"))
	if err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "rect: %v", err))
		return
	}
	s.quick(w, r, scene.Shape{
		Kind: scene.KindRect,
		Rect: []float64{rect.X, rect.Y, rect.W, rect.H},
	})
}

// quick renders a one-shape scene styled from the query string.
func (s *Server) quick(w http.ResponseWriter, r *http.Request, sh scene.Shape) {
	style, err := parseOverrides(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sh.Style = style
	sc := &scene.Scene{
		Background: r.URL.Query().Get("background"),
		Shapes:     []scene.Shape{sh},
	}
	if err := sc.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	s.execute(w, r, sc)
}

// execute runs the pipeline for the format named by ?format= and writes the
// artifact.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, sc *scene.Scene) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	opts := pipeline.Options{
		Scene:     sc,
		Formats:   []string{format},
		Style:     s.style,
		RequestID: RequestIDFromContext(r.Context()),
	}

	var err error
	if opts.Seed, err = parseUint(q.Get("seed")); err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "seed: %v", err))
		return
	}
	if opts.Scale, err = parseFloat(q.Get("scale")); err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "scale: %v", err))
		return
	}
	if v := q.Get("refresh"); v != "" {
		if opts.Refresh, err = strconv.ParseBool(v); err != nil {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "refresh: %v", err))
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", render.ContentTypes[format])
	w.Header().Set(HeaderCache, cacheState)
	w.Header().Set("X-Freehand-Seed", strconv.FormatUint(res.Seed, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func parseOverrides(r *http.Request) (scene.Overrides, error) {
	q := r.URL.Query()
	var o scene.Overrides
	if v := q.Get("max_offset"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return o, errors.New(errors.ErrCodeInvalidInput, "max_offset: %v", err)
		}
		o.MaxOffset = &f
	}
	if v := q.Get("double_line"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return o, errors.New(errors.ErrCodeInvalidInput, "double_line: %v", err)
		}
		o.DoubleLine = &b
	}
	if v := q.Get("stroke_width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return o, errors.New(errors.ErrCodeInvalidInput, "stroke_width: %v", err)
		}
		o.StrokeWidth = &f
	}
	o.Stroke = q.Get("stroke")
	return o, nil
}

func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// fail writes err as a JSON error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) {
		err = errors.Wrap(errors.ErrCodeTimeout, err, "render timed out")
	}
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
		msg = "internal error"
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: msg},
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
