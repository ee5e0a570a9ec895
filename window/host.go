// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/snowfall"
)

// Default window geometry, a portrait phone screen.
const (
	DefaultTitle  = "snowfall"
	DefaultWidth  = 390
	DefaultHeight = 844
)

// Options configures a Host. Zero values mean the package defaults.
type Options struct {
	Title      string
	Width      int
	Height     int
	Background color.Color

	Count        int
	Size         snowfall.Range
	Speed        snowfall.Range
	Interval     time.Duration
	FieldOptions []snowfall.FieldOption
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Background == nil {
		o.Background = color.Black
	}
	if o.Count == 0 {
		o.Count = snowfall.DefaultCount
	}
	if o.Size == (snowfall.Range{}) {
		o.Size = snowfall.DefaultSizeRange
	}
	if o.Speed == (snowfall.Range{}) {
		o.Speed = snowfall.DefaultSpeedRange
	}
	if o.Interval <= 0 {
		o.Interval = snowfall.DefaultTickInterval
	}
	return o
}

// Host owns the field and the frame handoff between the renderer goroutine
// and the window's draw callback.
type Host struct {
	opts     Options
	renderer *snowfall.Renderer
	field    *snowfall.Field
	bg       gg.RGBA

	latest atomic.Pointer[[]snowfall.Particle]
	frames atomic.Uint64

	sizeMu        sync.Mutex
	width, height int
}

// NewHost creates a host and its field at the configured window size.
func NewHost(renderer *snowfall.Renderer, opts Options) (*Host, error) {
	if renderer == nil {
		return nil, fmt.Errorf("%w: window host needs a renderer", snowfall.ErrInvalidConfiguration)
	}
	opts = opts.withDefaults()

	field, err := snowfall.NewField(opts.Count, float64(opts.Width), float64(opts.Height),
		opts.Size, opts.Speed, opts.FieldOptions...)
	if err != nil {
		return nil, err
	}
	return &Host{
		opts:     opts,
		renderer: renderer,
		field:    field,
		bg:       gg.FromColor(opts.Background),
		width:    opts.Width,
		height:   opts.Height,
	}, nil
}

// Field returns the simulated field.
func (h *Host) Field() *snowfall.Field { return h.field }

// Options returns the effective options.
func (h *Host) Options() Options { return h.opts }

// Frames returns the number of snapshots published by the renderer.
func (h *Host) Frames() uint64 { return h.frames.Load() }

// Start begins publishing snapshots from the renderer.
func (h *Host) Start() error {
	return h.renderer.Start(h.field, h.opts.Interval, h.publish)
}

// TogglePause stops a running renderer or restarts a stopped one. The field
// keeps its state while paused.
func (h *Host) TogglePause() error {
	if h.renderer.Running() {
		h.renderer.Stop()
		snowfall.Logger().Info("window: paused")
		return nil
	}
	return h.Start()
}

// Stop stops the renderer. It is safe to call more than once.
func (h *Host) Stop() {
	h.renderer.Stop()
}

// publish runs on the renderer goroutine. The renderer reuses ps between
// ticks, so the host keeps its own copy.
func (h *Host) publish(ps []snowfall.Particle) {
	frame := append([]snowfall.Particle(nil), ps...)
	h.latest.Store(&frame)
	h.frames.Add(1)
}

// Latest returns the most recently published snapshot, or nil before the
// first tick.
func (h *Host) Latest() []snowfall.Particle {
	if p := h.latest.Load(); p != nil {
		return *p
	}
	return nil
}

// Resize records a new window size and forwards it to the field.
// It reports whether the size changed.
func (h *Host) Resize(width, height int) bool {
	h.sizeMu.Lock()
	changed := width != h.width || height != h.height
	h.width, h.height = width, height
	h.sizeMu.Unlock()

	if changed {
		h.field.Resize(float64(width), float64(height))
	}
	return changed
}

// Paint clears cc and draws the latest snapshot. Before the first tick it
// draws the field's initial state.
func (h *Host) Paint(cc *gg.Context) error {
	cc.ClearWithColor(h.bg)
	ps := h.Latest()
	if ps == nil {
		ps = h.field.Snapshot()
	}
	return h.renderer.Draw(ps, cc)
}
