// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window renders snowfall in a GPU window through gogpu and ggcanvas.
//
// The data flow is:
//
//	Renderer tick -> snapshot -> OnDraw -> gg.Context -> ggcanvas.Canvas -> Window
//
// The renderer advances the field on its own goroutine and publishes each
// snapshot through an atomic pointer. The gogpu draw callback runs on the
// main thread and paints the most recent snapshot, so neither side blocks the
// other. Window resizes are forwarded to the field before the next tick.
//
// Usage:
//
//	host, err := window.NewHost(snowfall.NewRenderer(), window.Options{
//	    Title: "Snow", Width: 390, Height: 844,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := host.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package window
