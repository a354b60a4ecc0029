// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package epd2in7

import (
	"image"

	"github.com/epaper-dev/epd2in7/image1bit"
)

// Drawing operations. They mutate only the frame buffer; nothing is visible
// on the panel until Display. Coordinates are logical for the current
// rotation, and out of range shapes are clipped rather than failing: only
// the panel state can make these return an error.

// Pixel sets a single pixel.
func (d *Dev) Pixel(x, y int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.SetPixel(x, y, col)
	return nil
}

// Fill sets every pixel of the frame buffer without refreshing the panel.
func (d *Dev) Fill(col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.Fill(col)
	return nil
}

// HLine draws a horizontal run of w pixels starting at (x, y).
func (d *Dev) HLine(x, y, w int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.HLine(x, y, w, col)
	return nil
}

// VLine draws a vertical run of h pixels starting at (x, y).
func (d *Dev) VLine(x, y, h int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.VLine(x, y, h, col)
	return nil
}

// Line draws a line between two points, endpoints inclusive.
func (d *Dev) Line(x1, y1, x2, y2 int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.Line(x1, y1, x2, y2, col)
	return nil
}

// Rect draws a rectangle outline.
func (d *Dev) Rect(x, y, w, h int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.Rect(x, y, w, h, col)
	return nil
}

// FillRect draws a solid rectangle.
func (d *Dev) FillRect(x, y, w, h int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.FillRect(x, y, w, h, col)
	return nil
}

// Circle draws a circle outline centered on (x, y).
func (d *Dev) Circle(x, y, r int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.Circle(x, y, r, col)
	return nil
}

// Text renders s with the first glyph cell's top-left corner at (x, y).
func (d *Dev) Text(s string, x, y int, col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.Text(s, x, y, col)
	return nil
}

// DrawBitmap blits a decoded bitmap (for example from the bmp package) with
// its top-left corner at (x, y), clipped to the logical canvas.
func (d *Dev) DrawBitmap(src image.Image, x, y int) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.DrawImage(src, x, y)
	return nil
}
