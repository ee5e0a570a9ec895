// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package record

import (
	"fmt"
	"image/color"

	"github.com/gogpu/snowfall"
)

// Command is one recorded filled circle.
type Command struct {
	X, Y   float64
	Radius float64
	Color  color.RGBA
}

// String returns a compact human readable form, e.g. "circle(10,20 r=3 #ffffffff)".
func (c Command) String() string {
	return fmt.Sprintf("circle(%g,%g r=%g #%02x%02x%02x%02x)",
		c.X, c.Y, c.Radius, c.Color.R, c.Color.G, c.Color.B, c.Color.A)
}

type circle struct {
	x, y, r float64
}

// Recorder records fill-circle commands.
type Recorder struct {
	color    color.RGBA
	path     []circle
	commands []Command
}

var _ snowfall.Canvas = (*Recorder)(nil)

// NewRecorder creates an empty recorder. The initial color is opaque black,
// matching gg.Context.
func NewRecorder() *Recorder {
	return &Recorder{color: color.RGBA{A: 0xff}}
}

// SetColor sets the color recorded by subsequent fills.
func (r *Recorder) SetColor(c color.Color) {
	r.color = color.RGBAModel.Convert(c).(color.RGBA)
}

// DrawCircle appends a circle to the current path.
func (r *Recorder) DrawCircle(x, y, radius float64) {
	r.path = append(r.path, circle{x: x, y: y, r: radius})
}

// Fill records one command per circle in the current path and clears it.
// Filling an empty path records nothing.
func (r *Recorder) Fill() error {
	for _, c := range r.path {
		r.commands = append(r.commands, Command{X: c.x, Y: c.y, Radius: c.r, Color: r.color})
	}
	r.path = r.path[:0]
	return nil
}

// Commands returns the recorded commands in issue order.
// The returned slice is owned by the recorder until the next Reset.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Reset discards recorded commands and the current path, keeping the color.
func (r *Recorder) Reset() {
	r.path = r.path[:0]
	r.commands = r.commands[:0]
}

// Replay issues the recorded commands onto c in order.
func (r *Recorder) Replay(c snowfall.Canvas) error {
	for i, cmd := range r.commands {
		c.SetColor(cmd.Color)
		c.DrawCircle(cmd.X, cmd.Y, cmd.Radius)
		if err := c.Fill(); err != nil {
			return fmt.Errorf("record: replay command %d: %w", i, err)
		}
	}
	return nil
}
