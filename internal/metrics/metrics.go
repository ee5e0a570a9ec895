// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package metrics exposes renderer and field counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gogpu/snowfall"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "snowfall"

// Collector reads metrics lazily from a renderer and a field. All values are
// sampled at scrape time, so the simulation loop does no extra work.
type Collector struct {
	registry *prometheus.Registry
}

// New registers collectors for r and f on a fresh registry. Go runtime and
// process collectors are included.
func New(r *snowfall.Renderer, f *snowfall.Field) (*Collector, error) {
	if r == nil || f == nil {
		return nil, fmt.Errorf("%w: metrics need a renderer and a field", snowfall.ErrInvalidConfiguration)
	}
	reg := prometheus.NewRegistry()

	cs := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "renderer",
			Name:      "ticks_total",
			Help:      "Number of simulation ticks run by the renderer.",
		}, func() float64 { return float64(r.Ticks()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "field",
			Name:      "recycled_total",
			Help:      "Number of particles recycled to the top of the surface.",
		}, func() float64 { return float64(f.Recycled()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "field",
			Name:      "particles",
			Help:      "Number of particles in the field.",
		}, func() float64 { return float64(f.Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "renderer",
			Name:      "running",
			Help:      "1 while the renderer schedule is active.",
		}, func() float64 {
			if r.Running() {
				return 1
			}
			return 0
		}),
		surfaceGauge(f, "width", func(w, _ float64) float64 { return w }),
		surfaceGauge(f, "height", func(_, h float64) float64 { return h }),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return &Collector{registry: reg}, nil
}

func surfaceGauge(f *snowfall.Field, dim string, pick func(w, h float64) float64) prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "field",
		Name:      "surface_" + dim,
		Help:      "Surface " + dim + " the field recycles against.",
	}, func() float64 { return pick(f.Size()) })
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve serves /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	ln, err := Listen(addr)
	if err != nil {
		return err
	}
	return c.ServeListener(ctx, ln)
}

// Listen opens the TCP listener for Serve. Callers that serve in the
// background listen first so a bad address is reported before they start.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen %s: %w", addr, err)
	}
	return ln, nil
}

// ServeListener serves /metrics on ln until ctx is done. It closes ln.
func (c *Collector) ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	snowfall.Logger().Info("metrics: serving", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics: serve: %w", err)
	}
	return nil
}
