// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/snowfall"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newField(t *testing.T) *snowfall.Field {
	t.Helper()
	f, err := snowfall.NewField(20, 100, 50,
		snowfall.DefaultSizeRange, snowfall.DefaultSpeedRange, snowfall.WithSeed(1))
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil, newField(t)); !errors.Is(err, snowfall.ErrInvalidConfiguration) {
		t.Errorf("New(nil renderer) = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := New(snowfall.NewRenderer(), nil); !errors.Is(err, snowfall.ErrInvalidConfiguration) {
		t.Errorf("New(nil field) = %v, want ErrInvalidConfiguration", err)
	}
}

func TestCollectorValues(t *testing.T) {
	f := newField(t)
	c, err := New(snowfall.NewRenderer(), f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for range 100 {
		f.Advance(1)
	}
	if f.Recycled() == 0 {
		t.Fatal("no particle recycled after 100 ticks on a 50px surface")
	}

	const want = `
# HELP snowfall_field_particles Number of particles in the field.
# TYPE snowfall_field_particles gauge
snowfall_field_particles 20
# HELP snowfall_field_surface_height Surface height the field recycles against.
# TYPE snowfall_field_surface_height gauge
snowfall_field_surface_height 50
# HELP snowfall_renderer_running 1 while the renderer schedule is active.
# TYPE snowfall_renderer_running gauge
snowfall_renderer_running 0
# HELP snowfall_renderer_ticks_total Number of simulation ticks run by the renderer.
# TYPE snowfall_renderer_ticks_total counter
snowfall_renderer_ticks_total 0
`
	err = testutil.GatherAndCompare(c.Registry(), strings.NewReader(want),
		"snowfall_field_particles", "snowfall_field_surface_height",
		"snowfall_renderer_running", "snowfall_renderer_ticks_total")
	if err != nil {
		t.Error(err)
	}

	n, err := testutil.GatherAndCount(c.Registry(), "snowfall_field_recycled_total")
	if err != nil || n != 1 {
		t.Errorf("recycled_total series = %d, %v; want 1", n, err)
	}
}

func TestHandler(t *testing.T) {
	r := snowfall.NewRenderer()
	f := newField(t)
	c, err := New(r, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := r.Start(f, time.Millisecond, func([]snowfall.Particle) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for r.Ticks() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	r.Stop()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"snowfall_renderer_ticks_total", "snowfall_field_recycled_total", "go_goroutines"} {
		if !strings.Contains(body, name) {
			t.Errorf("body has no %s", name)
		}
	}
	if strings.Contains(body, "snowfall_renderer_ticks_total 0\n") {
		t.Error("ticks_total is still 0 after the renderer ran")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	c, err := New(snowfall.NewRenderer(), newField(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(b), "snowfall_field_particles 20") {
		t.Errorf("body missing particle gauge:\n%s", b)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ServeListener() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServeBadAddr(t *testing.T) {
	c, err := New(snowfall.NewRenderer(), newField(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Serve(context.Background(), "not-an-addr"); err == nil {
		t.Error("Serve(bad addr) = nil error")
	}
	if _, err := Listen("not-an-addr"); err == nil {
		t.Error("Listen(bad addr) = nil error")
	}
}
