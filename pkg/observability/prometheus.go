package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus records every hook event as a Prometheus metric.
type Prometheus struct {
	draws        prometheus.Counter
	strokes      prometheus.Counter
	cubics       prometheus.Counter
	drawDuration prometheus.Histogram

	renders        *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	artifactBytes  *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		draws: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "freehand_draws_total",
			Help: "Scenes drawn into strokes",
		}),
		strokes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "freehand_strokes_total",
			Help: "Strokes recorded across all draws",
		}),
		cubics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "freehand_cubics_total",
			Help: "Cubic Bezier segments emitted across all draws",
		}),
		drawDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "freehand_draw_duration_seconds",
			Help:    "Time spent drawing a scene",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freehand_renders_total",
			Help: "Artifacts rendered by format",
		}, []string{"format"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freehand_render_errors_total",
			Help: "Failed renders by format",
		}, []string{"format"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freehand_render_duration_seconds",
			Help:    "Time spent rendering one artifact",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"format"}),
		artifactBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freehand_artifact_bytes",
			Help:    "Size of rendered artifacts",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"format"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freehand_cache_events_total",
			Help: "Cache hits, misses and writes",
		}, []string{"key_type", "event"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freehand_http_requests_total",
			Help: "Served HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freehand_http_request_duration_seconds",
			Help:    "HTTP handler latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "freehand_http_errors_total",
			Help: "HTTP requests that failed with an error",
		}, []string{"method", "route"}),
	}

	for _, c := range []prometheus.Collector{
		p.draws, p.strokes, p.cubics, p.drawDuration,
		p.renders, p.renderErrors, p.renderDuration, p.artifactBytes,
		p.cacheEvents,
		p.httpRequests, p.httpDuration, p.httpErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) OnDrawStart(context.Context, int) {}

func (p *Prometheus) OnDrawComplete(_ context.Context, strokes, cubics int, d time.Duration) {
	p.draws.Inc()
	p.strokes.Add(float64(strokes))
	p.cubics.Add(float64(cubics))
	p.drawDuration.Observe(d.Seconds())
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		p.renderErrors.WithLabelValues(format).Inc()
		return
	}
	p.renders.WithLabelValues(format).Inc()
	p.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	p.artifactBytes.WithLabelValues(format).Observe(float64(size))
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, _ int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

func (p *Prometheus) OnRequest(context.Context, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, method, route string, _ error) {
	p.httpErrors.WithLabelValues(method, route).Inc()
}

var (
	_ RenderHooks = (*Prometheus)(nil)
	_ CacheHooks  = (*Prometheus)(nil)
	_ HTTPHooks   = (*Prometheus)(nil)
)
