// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/snowfall"
)

// Run opens the window and blocks until it is closed or ctx is done.
// It must be called from the main goroutine.
func (h *Host) Run(ctx context.Context) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(h.opts.Title).
		WithSize(h.opts.Width, h.opts.Height))

	if err := h.Start(); err != nil {
		return err
	}
	defer h.Stop()

	var canvas *ggcanvas.Canvas
	var drawErrs int

	app.OnDraw(func(dc *gogpu.Context) {
		w, ht := dc.Width(), dc.Height()
		if w <= 0 || ht <= 0 {
			// Minimized. Particles keep falling without recycling.
			h.Resize(0, 0)
			return
		}

		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, w, ht)
			if err != nil {
				snowfall.Logger().Error("window: create canvas", "err", err)
				app.Quit()
				return
			}
			snowfall.Logger().Info("window: canvas created", "width", w, "height", ht)
		}

		if h.Resize(w, ht) {
			if err := canvas.Resize(w, ht); err != nil {
				snowfall.Logger().Warn("window: resize canvas", "err", err)
			}
		}

		var paintErr error
		if err := canvas.Draw(func(cc *gg.Context) {
			paintErr = h.Paint(cc)
		}); err != nil {
			paintErr = err
		}
		if paintErr == nil {
			paintErr = canvas.RenderTo(dc.AsTextureDrawer())
		}
		if paintErr != nil {
			drawErrs++
			// Log the first failure of a burst.
			if drawErrs == 1 {
				snowfall.Logger().Warn("window: draw failed", "err", paintErr)
			}
			return
		}
		drawErrs = 0
	})

	// Space pauses and resumes the simulation, Escape closes the window.
	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		switch key {
		case gpucontext.KeyEscape:
			app.Quit()
		case gpucontext.KeySpace:
			if err := h.TogglePause(); err != nil {
				snowfall.Logger().Warn("window: resume", "err", err)
			}
		}
	})

	app.OnClose(func() {
		h.Stop()
		gg.CloseAccelerator()
	})

	stop := context.AfterFunc(ctx, app.Quit)
	defer stop()

	snowfall.Logger().Info("window: running", "title", h.opts.Title,
		"width", h.opts.Width, "height", h.opts.Height, "particles", h.field.Len())

	if err := app.Run(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
