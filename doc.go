// Package snowfall provides a falling-snow particle effect for 2D surfaces.
//
// # Overview
//
// snowfall is a small Pure Go simulation designed to integrate with the GoGPU
// ecosystem. A Field owns a fixed number of particles and advances them on a
// fixed tick; a Renderer schedules the ticks and draws each particle as a
// filled circle on any immediate-mode surface, including gg.Context.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gg"
//	    "github.com/gogpu/snowfall"
//	)
//
//	field, err := snowfall.NewField(snowfall.DefaultCount, 800, 600,
//	    snowfall.DefaultSizeRange, snowfall.DefaultSpeedRange)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dc := gg.NewContext(800, 600)
//	r := snowfall.NewRenderer()
//	for range 120 {
//	    field.Advance(1)
//	}
//	dc.ClearWithColor(gg.Black)
//	_ = r.Draw(field.Snapshot(), dc)
//	_ = dc.SavePNG("snow.png")
//
// # Scheduling
//
// Renderer.Start runs ticks on its own goroutine at a fixed interval
// (DefaultTickInterval, 50 Hz). Each tick advances the field by one logical
// step and hands a snapshot to the host callback. Ticks never queue: a slow
// frame drops a beat. Hosts with their own frame clock can skip Start and
// call Field.Advance(1) directly.
//
// # Simulation
//
// Every tick moves each particle down by its FallSpeed. A particle that
// falls below the surface is recycled in place: it restarts at RecycleY with
// a new random X. The particle count never changes.
//
// # Coordinate System
//
// Same as gg:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Hosts
//
// Sub-packages adapt the effect to concrete surfaces:
//   - capture: PNG and animated GIF output through gg
//   - term: terminal output through tcell
//   - window: GPU window output through gogpu and ggcanvas
//   - record: a recording Canvas for tests and inspection
package snowfall

// Version is the current version of the library.
const Version = "0.1.0"
