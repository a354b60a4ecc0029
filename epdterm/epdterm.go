// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

// Package epdterm implements a display.Drawer that renders a monochrome
// frame to the terminal (stdout) using ANSI color codes.
//
// Useful to check layouts while the panel is not wired up, or from a
// machine without the panel at all.
package epdterm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/epaper-dev/epd2in7/image1bit"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height of the emulated panel in pixels.
	Width  int
	Height int

	Palette *ansi256.Palette
}

// Dev is a monochrome panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	bounds  image.Rectangle
	palette ansi256.Palette

	pixels *image1bit.HorizontalMSB
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	b := image.Rect(0, 0, opts.Width, opts.Height)
	d := &Dev{
		w:       colorable.NewColorableStdout(),
		bounds:  b,
		palette: *p,
		pixels:  image1bit.NewHorizontalMSB(b),
	}
	d.pixels.Fill(image1bit.White)
	return d
}

func (d *Dev) String() string {
	return "EPDTerm"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.bounds
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)
			d.pixels.Set(x, y, c)
		}
	}
	return d.refresh()
}

// Write accepts a full frame of packed 1-bit pixels in panel transmission
// order, as produced by HorizontalMSB.RawBytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.pixels.Pix) {
		return 0, errors.New("epdterm: invalid packed frame length")
	}
	copy(d.pixels.Pix, pixels)
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// refresh repaints the whole frame, one block character per pixel.
//
// This code is designed to minimize the amount of memory allocated per call.
func (d *Dev) refresh() error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[0m")
	for y := d.bounds.Min.Y; y < d.bounds.Max.Y; y++ {
		for x := d.bounds.Min.X; x < d.bounds.Max.X; x++ {
			_, _ = io.WriteString(&d.buf, d.palette.Block(toNRGBA(d.pixels.BitAt(x, y))))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func toNRGBA(b image1bit.Bit) color.NRGBA {
	if b {
		return color.NRGBA{255, 255, 255, 255}
	}
	return color.NRGBA{0, 0, 0, 255}
}

var _ display.Drawer = &Dev{}
