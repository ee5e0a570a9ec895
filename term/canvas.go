// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/snowfall"
)

// Default cell size in surface units.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Glyphs used for flakes smaller than a cell, by increasing radius.
const (
	glyphSmall  = '·'
	glyphMedium = '•'
	glyphLarge  = '*'
	glyphFill   = '█'
)

// Cells is the part of tcell.Screen the canvas writes to.
type Cells interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type circle struct {
	x, y, r float64
}

// Canvas is a snowfall.Canvas that draws into terminal cells.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	cells        Cells
	cols, rows   int
	cellW, cellH float64
	style        tcell.Style
	background   tcell.Style
	path         []circle
}

var _ snowfall.Canvas = (*Canvas)(nil)

// NewCanvas creates a canvas over a cols x rows grid. Non-positive cell
// sizes mean the defaults.
func NewCanvas(cells Cells, cols, rows int, cellW, cellH float64) *Canvas {
	if cellW <= 0 || math.IsNaN(cellW) {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 || math.IsNaN(cellH) {
		cellH = DefaultCellHeight
	}
	return &Canvas{
		cells:      cells,
		cols:       max(cols, 0),
		rows:       max(rows, 0),
		cellW:      cellW,
		cellH:      cellH,
		style:      tcell.StyleDefault.Foreground(tcell.ColorWhite),
		background: tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

// Resize updates the grid size after a terminal resize.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
}

// GridSize returns the grid size in cells.
func (c *Canvas) GridSize() (cols, rows int) {
	return c.cols, c.rows
}

// SurfaceSize returns the grid size in surface units, the size the field
// should simulate against.
func (c *Canvas) SurfaceSize() (width, height float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

// SetBackground sets the color Clear paints.
func (c *Canvas) SetBackground(col color.Color) {
	bg := toTcell(col)
	c.background = tcell.StyleDefault.Background(bg)
	c.style = c.style.Background(bg)
}

// SetColor sets the flake foreground color.
func (c *Canvas) SetColor(col color.Color) {
	c.style = c.style.Foreground(toTcell(col))
}

// DrawCircle appends a circle in surface units to the current path.
func (c *Canvas) DrawCircle(x, y, r float64) {
	c.path = append(c.path, circle{x: x, y: y, r: r})
}

// Fill rasterizes the current path into cells and clears it.
func (c *Canvas) Fill() error {
	for _, ci := range c.path {
		c.fillCircle(ci)
	}
	c.path = c.path[:0]
	return nil
}

// Clear paints every cell with the background.
func (c *Canvas) Clear() {
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			c.cells.SetContent(x, y, ' ', nil, c.background)
		}
	}
}

func (c *Canvas) fillCircle(ci circle) {
	if ci.r <= 0 || math.IsNaN(ci.x) || math.IsNaN(ci.y) {
		return
	}
	cx, cy := ci.x/c.cellW, ci.y/c.cellH

	if ci.r >= math.Min(c.cellW, c.cellH) && c.fillDisc(ci, cx, cy) {
		return
	}
	c.set(int(math.Floor(cx)), int(math.Floor(cy)), c.glyph(ci.r))
}

// fillDisc fills the cells whose centers lie inside the circle and reports
// whether any did.
func (c *Canvas) fillDisc(ci circle, cx, cy float64) bool {
	rx, ry := ci.r/c.cellW, ci.r/c.cellH
	x0, x1 := int(math.Floor(cx-rx)), int(math.Ceil(cx+rx))
	y0, y1 := int(math.Floor(cy-ry)), int(math.Ceil(cy+ry))

	hit := false
	for y := y0; y <= y1; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.set(x, y, glyphFill)
				hit = true
			}
		}
	}
	return hit
}

func (c *Canvas) glyph(r float64) rune {
	switch {
	case r < 0.4*c.cellW:
		return glyphSmall
	case r < 0.7*c.cellW:
		return glyphMedium
	default:
		return glyphLarge
	}
}

func (c *Canvas) set(x, y int, ch rune) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells.SetContent(x, y, ch, nil, c.style)
}

func toTcell(col color.Color) tcell.Color {
	r, g, b, _ := col.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
