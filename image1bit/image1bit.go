// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

// Package image1bit implements the packed black and white image format used
// by the panel RAM.
//
// Pixels are stored row-major, one bit per pixel, most significant bit
// first within each byte. A set bit is White, matching the panel polarity
// where an 0xFF byte displays as eight white pixels.
package image1bit

import (
	"image"
	"image/color"
)

// Bit is a black or white color.
type Bit bool

// Possible bit values.
const (
	Black Bit = false
	White Bit = true
)

// RGBA implements color.Color.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "White"
	}
	return "Black"
}

// BitModel converts any color to Bit by luminance threshold.
var BitModel = color.ModelFunc(convertBit)

func convertBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// ITU-R BT.601 luma; 16 bit per channel in, threshold at mid-scale.
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// HorizontalMSB is a 1-bit image with pixels packed eight per byte, leftmost
// pixel in the most significant bit. It implements image.Image and
// draw.Image.
type HorizontalMSB struct {
	// Pix holds the packed pixels, in panel transmission order.
	Pix []byte
	// Stride is the number of bytes per row: ceil(width/8).
	Stride int
	// Rect is the image bounds.
	Rect image.Rectangle
}

// NewHorizontalMSB creates a zeroed (all Black) image with the given bounds.
func NewHorizontalMSB(r image.Rectangle) *HorizontalMSB {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalMSB{Rect: r}
	}
	stride := (w + 7) / 8
	return &HorizontalMSB{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (p *HorizontalMSB) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (p *HorizontalMSB) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *HorizontalMSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the bit at (x, y). Out of range coordinates return White,
// the panel's resting color.
func (p *HorizontalMSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return White
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set implements draw.Image.
func (p *HorizontalMSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, convertBit(c).(Bit))
}

// SetBit sets the bit at (x, y). Out of range coordinates are a no-op so
// that rasterization never has to bounds-check.
func (p *HorizontalMSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Fill sets every pixel to b in a single pass over the backing bytes.
func (p *HorizontalMSB) Fill(b Bit) {
	v := byte(0x00)
	if b {
		v = 0xFF
	}
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// RawBytes returns the packed pixels in transmission order. The caller must
// not modify the returned slice.
func (p *HorizontalMSB) RawBytes() []byte {
	return p.Pix
}

func (p *HorizontalMSB) pixOffset(x, y int) (offset int, mask byte) {
	x -= p.Rect.Min.X
	y -= p.Rect.Min.Y
	return y*p.Stride + x/8, 0x80 >> uint(x&7)
}

var _ image.Image = &HorizontalMSB{}
