// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/snowfall"
	"golang.org/x/image/draw"
)

// Errors returned by Capture.
var (
	// ErrClosed is returned when a closed Capture is used.
	ErrClosed = errors.New("capture: closed")

	// ErrNilField is returned when New is given a nil field or renderer.
	ErrNilField = errors.New("capture: nil field or renderer")
)

var _ snowfall.Canvas = (*gg.Context)(nil)

// Options controls frame size and animation output.
type Options struct {
	// Width and Height are the raster size in pixels. Zero means the
	// current field size, rounded up.
	Width, Height int

	// Background fills every frame before the flakes are drawn.
	// Default: black.
	Background color.Color

	// Frames is the number of GIF frames. Default: 50.
	Frames int

	// Skip is the number of ticks advanced before the first frame.
	Skip int

	// Delay is the GIF frame delay. Default: snowfall.DefaultTickInterval.
	// GIF stores delays in 10ms units; shorter delays are rounded up.
	Delay time.Duration

	// Scale resizes GIF frames. Default: 1.
	Scale float64
}

// DefaultFrames is the GIF length used when Options.Frames is zero.
const DefaultFrames = 50

func (o Options) withDefaults(field *snowfall.Field) Options {
	if o.Width <= 0 || o.Height <= 0 {
		w, h := field.Size()
		if o.Width <= 0 {
			o.Width = int(math.Ceil(w))
		}
		if o.Height <= 0 {
			o.Height = int(math.Ceil(h))
		}
	}
	if o.Background == nil {
		o.Background = color.Black
	}
	if o.Frames <= 0 {
		o.Frames = DefaultFrames
	}
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Delay <= 0 {
		o.Delay = snowfall.DefaultTickInterval
	}
	if o.Scale <= 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		o.Scale = 1
	}
	return o
}

// Capture draws a field into an offscreen gg.Context.
//
// Capture is not safe for concurrent use.
type Capture struct {
	field    *snowfall.Field
	renderer *snowfall.Renderer
	opts     Options
	dc       *gg.Context
	buf      []snowfall.Particle
}

// New creates a Capture for field. The renderer supplies the flake color.
func New(field *snowfall.Field, renderer *snowfall.Renderer, opts Options) (*Capture, error) {
	if field == nil || renderer == nil {
		return nil, ErrNilField
	}
	opts = opts.withDefaults(field)
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("capture: invalid dimensions: width=%d, height=%d", opts.Width, opts.Height)
	}

	return &Capture{
		field:    field,
		renderer: renderer,
		opts:     opts,
		dc:       gg.NewContext(opts.Width, opts.Height),
	}, nil
}

// Options returns the effective options after defaults were applied.
func (c *Capture) Options() Options {
	return c.opts
}

// Step advances the field by n logical ticks.
func (c *Capture) Step(n int) {
	for range n {
		c.field.Advance(1)
	}
}

// Render draws the current field state and returns the frame.
// The returned image is a copy and stays valid after the next Render.
func (c *Capture) Render() (image.Image, error) {
	if c.dc == nil {
		return nil, ErrClosed
	}

	c.dc.ClearWithColor(gg.FromColor(c.opts.Background))
	c.buf = c.field.SnapshotInto(c.buf)
	if err := c.renderer.Draw(c.buf, c.dc); err != nil {
		return nil, fmt.Errorf("capture: draw: %w", err)
	}
	if err := c.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("capture: flush: %w", err)
	}
	return c.dc.Image(), nil
}

// EncodePNG skips Options.Skip ticks, renders one frame and writes it as PNG.
func (c *Capture) EncodePNG(w io.Writer) error {
	if c.dc == nil {
		return ErrClosed
	}
	c.Step(c.opts.Skip)
	if _, err := c.Render(); err != nil {
		return err
	}
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("capture: encode png: %w", err)
	}
	return nil
}

// WritePNG is EncodePNG into the file at path.
func (c *Capture) WritePNG(path string) error {
	if c.dc == nil {
		return ErrClosed
	}
	c.Step(c.opts.Skip)
	if _, err := c.Render(); err != nil {
		return err
	}
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("capture: save %s: %w", path, err)
	}
	snowfall.Logger().Debug("capture: png written", "path", path,
		"width", c.opts.Width, "height", c.opts.Height)
	return nil
}

// WriteGIF skips Options.Skip ticks, then renders Options.Frames frames, one
// tick apart, as a looping animated GIF.
func (c *Capture) WriteGIF(w io.Writer) error {
	if c.dc == nil {
		return ErrClosed
	}
	c.Step(c.opts.Skip)

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, c.opts.Frames),
		Delay: make([]int, 0, c.opts.Frames),
	}
	delay := gifDelay(c.opts.Delay)

	for i := range c.opts.Frames {
		if i > 0 {
			c.Step(1)
		}
		frame, err := c.Render()
		if err != nil {
			return fmt.Errorf("capture: frame %d: %w", i, err)
		}
		anim.Image = append(anim.Image, c.quantize(frame))
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("capture: encode gif: %w", err)
	}
	snowfall.Logger().Debug("capture: gif written", "frames", len(anim.Image), "delay", c.opts.Delay)
	return nil
}

// quantize scales frame by Options.Scale and maps it onto the Plan 9
// palette with Floyd-Steinberg dithering.
func (c *Capture) quantize(frame image.Image) *image.Paletted {
	src := frame
	if c.opts.Scale != 1 {
		sb := frame.Bounds()
		dr := image.Rect(0, 0,
			max(1, int(math.Round(float64(sb.Dx())*c.opts.Scale))),
			max(1, int(math.Round(float64(sb.Dy())*c.opts.Scale))))
		scaled := image.NewRGBA(dr)
		draw.ApproxBiLinear.Scale(scaled, dr, frame, sb, draw.Src, nil)
		src = scaled
	}

	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, b.Min)
	return dst
}

// Close releases the drawing context. Close is idempotent.
func (c *Capture) Close() error {
	if c.dc == nil {
		return nil
	}
	err := c.dc.Close()
	c.dc = nil
	return err
}

// gifDelay converts d to GIF delay units (1/100 s), never below 1.
func gifDelay(d time.Duration) int {
	return max(1, int(math.Ceil(float64(d)/float64(10*time.Millisecond))))
}
