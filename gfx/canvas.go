// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

// Package gfx rasterizes drawing primitives into a packed 1-bit frame
// buffer, mapping logical coordinates through one of four panel rotations.
package gfx

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/epaper-dev/epd2in7/image1bit"
)

// Canvas draws onto a fixed physical frame buffer through a rotation view.
// It implements draw.Image in the logical coordinate space, so anything that
// renders into a standard image (font.Drawer, draw.Draw, gg) lands on the
// panel correctly rotated.
//
// Out of range coordinates are silently dropped by the frame buffer; no
// primitive ever fails.
type Canvas struct {
	buf  *image1bit.HorizontalMSB
	rot  Rotation
	face font.Face
}

// NewCanvas creates a canvas over buf with the given initial rotation.
func NewCanvas(buf *image1bit.HorizontalMSB, rot Rotation) *Canvas {
	return &Canvas{
		buf:  buf,
		rot:  rot,
		face: basicfont.Face7x13,
	}
}

// Buffer returns the underlying physical frame buffer.
func (c *Canvas) Buffer() *image1bit.HorizontalMSB {
	return c.buf
}

// Rotation returns the current rotation.
func (c *Canvas) Rotation() Rotation {
	return c.rot
}

// SetRotation changes how subsequent logical coordinates are interpreted.
// The buffer contents are left untouched: already drawn pixels keep their
// physical position.
func (c *Canvas) SetRotation(rot Rotation) {
	c.rot = rot
}

// SetFace replaces the font face used by Text.
func (c *Canvas) SetFace(f font.Face) {
	c.face = f
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the logical bounds, with width and height exchanged for the
// 90° and 270° rotations.
func (c *Canvas) Bounds() image.Rectangle {
	w, h := c.rot.logicalDims(c.buf.Rect.Dx(), c.buf.Rect.Dy())
	return image.Rect(0, 0, w, h)
}

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color {
	return c.BitAt(x, y)
}

// BitAt returns the logical pixel at (x, y).
func (c *Canvas) BitAt(x, y int) image1bit.Bit {
	px, py := toPhysical(c.rot, c.buf.Rect.Dx(), c.buf.Rect.Dy(), x, y)
	return c.buf.BitAt(px, py)
}

// Set implements draw.Image.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetPixel(x, y, image1bit.BitModel.Convert(col).(image1bit.Bit))
}

// SetPixel sets a single logical pixel. This is the atomic operation every
// other primitive is built from.
func (c *Canvas) SetPixel(x, y int, col image1bit.Bit) {
	px, py := toPhysical(c.rot, c.buf.Rect.Dx(), c.buf.Rect.Dy(), x, y)
	c.buf.SetBit(px, py, col)
}

// Fill sets every pixel of the frame buffer to col.
func (c *Canvas) Fill(col image1bit.Bit) {
	c.buf.Fill(col)
}

// HLine draws a horizontal run of w pixels starting at (x, y).
func (c *Canvas) HLine(x, y, w int, col image1bit.Bit) {
	for i := 0; i < w; i++ {
		c.SetPixel(x+i, y, col)
	}
}

// VLine draws a vertical run of h pixels starting at (x, y).
func (c *Canvas) VLine(x, y, h int, col image1bit.Bit) {
	for i := 0; i < h; i++ {
		c.SetPixel(x, y+i, col)
	}
}

// Line draws a straight line from (x1, y1) to (x2, y2), both endpoints
// inclusive, using the integer Bresenham algorithm. The endpoints are put in
// a canonical order first so that swapping them yields the same pixel set.
func (c *Canvas) Line(x1, y1, x2, y2 int, col image1bit.Bit) {
	if x1 > x2 || (x1 == x2 && y1 > y2) {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx := x2 - x1
	dy := y2 - y1
	if dy < 0 {
		dy = -dy
	}
	sy := 1
	if y2 < y1 {
		sy = -1
	}

	e := dx - dy
	x, y := x1, y1
	for {
		c.SetPixel(x, y, col)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x++
		}
		if e2 < dx {
			e += dx
			y += sy
		}
	}
}

// Rect draws the outline of a w×h rectangle with its top-left corner at
// (x, y). A zero width or height degenerates to a line or a point.
func (c *Canvas) Rect(x, y, w, h int, col image1bit.Bit) {
	if w < 0 || h < 0 {
		return
	}
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	c.HLine(x, y, w, col)
	c.HLine(x, y+h-1, w, col)
	c.VLine(x, y, h, col)
	c.VLine(x+w-1, y, h, col)
}

// FillRect draws a solid w×h block with its top-left corner at (x, y),
// row by row for sequential buffer writes.
func (c *Canvas) FillRect(x, y, w, h int, col image1bit.Bit) {
	if w < 0 {
		return
	}
	for i := 0; i < h; i++ {
		c.HLine(x, y+i, w, col)
	}
}

// Circle draws a circle of radius r centered on (x, y) using the midpoint
// algorithm with 8-way symmetry. Radius 0 draws a single point, a negative
// radius nothing.
func (c *Canvas) Circle(x, y, r int, col image1bit.Bit) {
	if r < 0 {
		return
	}
	cx, cy := r, 0
	e := 1 - r
	for cx >= cy {
		c.SetPixel(x+cx, y+cy, col)
		c.SetPixel(x+cy, y+cx, col)
		c.SetPixel(x-cy, y+cx, col)
		c.SetPixel(x-cx, y+cy, col)
		c.SetPixel(x-cx, y-cy, col)
		c.SetPixel(x-cy, y-cx, col)
		c.SetPixel(x+cy, y-cx, col)
		c.SetPixel(x+cx, y-cy, col)
		cy++
		if e < 0 {
			e += 2*cy + 1
		} else {
			cx--
			e += 2*(cy-cx) + 1
		}
	}
}

// DrawImage blits src with its top-left corner at the logical (x, y),
// clipped to the canvas bounds.
func (c *Canvas) DrawImage(src image.Image, x, y int) {
	b := src.Bounds()
	draw.Draw(c, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Src)
}

var _ draw.Image = &Canvas{}
