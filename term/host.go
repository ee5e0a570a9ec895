// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package term

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/snowfall"
)

// Config configures a Host. Zero values mean the package defaults.
type Config struct {
	Count        int
	Size         snowfall.Range
	Speed        snowfall.Range
	Interval     time.Duration
	FieldOptions []snowfall.FieldOption

	CellWidth  float64
	CellHeight float64
	Background color.Color

	// OnField is called once the field exists, before the first tick. It is
	// used to attach metrics. An error aborts Run.
	OnField func(*snowfall.Field) error
}

func (c Config) withDefaults() Config {
	if c.Count == 0 {
		c.Count = snowfall.DefaultCount
	}
	if c.Size == (snowfall.Range{}) {
		c.Size = snowfall.DefaultSizeRange
	}
	if c.Speed == (snowfall.Range{}) {
		c.Speed = snowfall.DefaultSpeedRange
	}
	if c.Interval <= 0 {
		c.Interval = snowfall.DefaultTickInterval
	}
	if c.CellWidth <= 0 {
		c.CellWidth = DefaultCellWidth
	}
	if c.CellHeight <= 0 {
		c.CellHeight = DefaultCellHeight
	}
	if c.Background == nil {
		c.Background = color.Black
	}
	return c
}

// Host runs snowfall on a tcell screen until the user quits or the context
// is cancelled.
type Host struct {
	screen   tcell.Screen
	renderer *snowfall.Renderer
	cfg      Config

	mu     sync.Mutex // guards canvas and screen drawing
	canvas *Canvas
	field  *snowfall.Field
}

// NewHost creates a host. The screen is initialized by Run.
func NewHost(screen tcell.Screen, renderer *snowfall.Renderer, cfg Config) (*Host, error) {
	if screen == nil || renderer == nil {
		return nil, fmt.Errorf("%w: term host needs a screen and a renderer", snowfall.ErrInvalidConfiguration)
	}
	return &Host{screen: screen, renderer: renderer, cfg: cfg.withDefaults()}, nil
}

// Field returns the running field, or nil before Run has created it.
func (h *Host) Field() *snowfall.Field {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.field
}

// Run initializes the screen, starts the renderer and processes events.
// It returns nil when the user presses Esc, Ctrl-C or q, or when ctx is done.
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer h.screen.Fini()
	h.screen.HideCursor()

	cols, rows := h.screen.Size()
	canvas := NewCanvas(h.screen, cols, rows, h.cfg.CellWidth, h.cfg.CellHeight)
	canvas.SetBackground(h.cfg.Background)

	w, hgt := canvas.SurfaceSize()
	field, err := snowfall.NewField(h.cfg.Count, w, hgt, h.cfg.Size, h.cfg.Speed, h.cfg.FieldOptions...)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.canvas, h.field = canvas, field
	h.mu.Unlock()
	if h.cfg.OnField != nil {
		if err := h.cfg.OnField(field); err != nil {
			return err
		}
	}

	if err := h.renderer.Start(field, h.cfg.Interval, h.paint); err != nil {
		return err
	}
	defer h.renderer.Stop()

	snowfall.Logger().Info("term: running", "cols", cols, "rows", rows, "particles", field.Len())

	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			h.resize(ev.Size())
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		}
	}
}

// paint runs on the renderer goroutine.
func (h *Host) paint(ps []snowfall.Particle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.canvas.Clear()
	if err := h.renderer.Draw(ps, h.canvas); err != nil {
		snowfall.Logger().Warn("term: draw failed", "err", err)
	}
	h.screen.Show()
}

func (h *Host) resize(cols, rows int) {
	h.mu.Lock()
	h.canvas.Resize(cols, rows)
	w, hgt := h.canvas.SurfaceSize()
	h.screen.Sync()
	h.mu.Unlock()

	h.field.Resize(w, hgt)
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
