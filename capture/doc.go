// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package capture renders snowfall frames to image files with gg.
//
// Capture is the host-driven mode of the effect: it owns a gg.Context sized
// to the field surface and steps the field itself, one logical tick per
// frame, without starting the renderer's scheduler.
//
//	field, _ := snowfall.NewField(100, 390, 844, snowfall.DefaultSizeRange, snowfall.DefaultSpeedRange)
//	c, err := capture.New(field, snowfall.NewRenderer(), capture.Options{Frames: 150})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	f, _ := os.Create("snow.gif")
//	defer f.Close()
//	if err := c.WriteGIF(f); err != nil {
//	    log.Fatal(err)
//	}
package capture
