// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package term renders snowfall in a terminal with tcell.
//
// The terminal is treated as a low resolution surface: each cell covers
// CellWidth x CellHeight surface units (8x16 by default, the usual glyph
// aspect). Flakes smaller than a cell print as a single glyph chosen by
// radius; larger flakes fill every cell whose center lies inside the disc.
//
// Host wires a Field and a Renderer to a tcell.Screen: the renderer's
// scheduler goroutine repaints the screen, while Run processes resize and
// quit events.
//
//	screen, err := tcell.NewScreen()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	host, err := term.NewHost(screen, snowfall.NewRenderer(), term.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := host.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package term
