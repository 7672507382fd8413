package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/freehand/pkg/cache"
	"github.com/matzehuels/freehand/pkg/config"
)

func TestCacheLocation(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	tests := []struct {
		name   string
		mutate func(*CLI)
		want   string
	}{
		{"file default", func(c *CLI) {}, filepath.Join("/tmp/xdg-cache", appName)},
		{"file dir", func(c *CLI) { c.cfg.Cache.Dir = "/srv/cache" }, "/srv/cache"},
		{"no-cache", func(c *CLI) { c.noCache = true }, "disabled"},
		{"redis", func(c *CLI) { c.cfg.Cache.Backend = config.BackendRedis }, "redis://localhost:6379/0"},
		{"mongo", func(c *CLI) { c.cfg.Cache.Backend = config.BackendMongo }, "mongodb freehand.artifacts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			tt.mutate(c)
			if got := c.cacheLocation(); got != tt.want {
				t.Errorf("cacheLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheLocationHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/sketch")

	c := New(io.Discard, LogInfo)
	got := c.cacheLocation()
	if want := filepath.Join("/home/sketch", ".cache", appName); got != want {
		t.Errorf("cacheLocation() = %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, "freehand") {
		t.Errorf("cacheLocation() = %q, should end with 'freehand'", got)
	}
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c := New(io.Discard, LogInfo)
	c.cfg.Cache.Dir = dir

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"artifact:a", "artifact:b", "artifact:c"} {
		if err := fc.Set(ctx, key, []byte("<svg/>"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.clearCache(ctx)
	if err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	if n != 3 {
		t.Errorf("clearCache() = %d, want 3", n)
	}
	if _, hit, _ := fc.Get(ctx, "artifact:a"); hit {
		t.Error("entry survived clear")
	}

	c.noCache = true
	if n, err := c.clearCache(ctx); err != nil || n != 0 {
		t.Errorf("clearCache() with --no-cache = %d, %v; want 0, nil", n, err)
	}
}
