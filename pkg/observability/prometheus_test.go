package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	p.OnDrawComplete(ctx, 2, 30, time.Millisecond)
	p.OnDrawComplete(ctx, 1, 6, time.Millisecond)
	p.OnRenderComplete(ctx, "svg", 2048, time.Millisecond, nil)
	p.OnRenderComplete(ctx, "png", 0, time.Millisecond, errors.New("boom"))
	p.OnCacheHit(ctx, "artifact")
	p.OnCacheMiss(ctx, "artifact")
	p.OnCacheMiss(ctx, "artifact")
	p.OnResponse(ctx, "GET", "/v1/line", 200, time.Millisecond)
	p.OnError(ctx, "GET", "/v1/line", errors.New("bad"))

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"draws", p.draws, 2},
		{"strokes", p.strokes, 3},
		{"cubics", p.cubics, 36},
		{"svg renders", p.renders.WithLabelValues("svg"), 1},
		{"png errors", p.renderErrors.WithLabelValues("png"), 1},
		{"cache hits", p.cacheEvents.WithLabelValues("artifact", "hit"), 1},
		{"cache misses", p.cacheEvents.WithLabelValues("artifact", "miss"), 2},
		{"http 200", p.httpRequests.WithLabelValues("GET", "/v1/line", "200"), 1},
		{"http errors", p.httpErrors.WithLabelValues("GET", "/v1/line"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrometheusDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheus(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPrometheus(reg); err == nil {
		t.Error("registering twice on one registry should fail")
	}
}
