// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package record provides a snowfall.Canvas that captures fill commands
// instead of rasterizing them.
//
// A Recorder mirrors the part of the gg.Context API the snowfall renderer
// uses. Each Fill turns the circles accumulated in the current path into
// commands tagged with the current color, so a frame can be inspected or
// replayed onto another canvas:
//
//	rec := record.NewRecorder()
//	_ = renderer.Draw(field.Snapshot(), rec)
//	for _, cmd := range rec.Commands() {
//	    fmt.Println(cmd.X, cmd.Y, cmd.Radius)
//	}
//
//	// Later, onto a real surface:
//	_ = rec.Replay(dc)
//
// The Recorder is not safe for concurrent use.
package record
