// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package gfx

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/epaper-dev/epd2in7/image1bit"
)

// Text renders s in the canvas font with the first glyph cell's top-left
// corner at (x, y). Glyphs advance strictly left to right without wrapping;
// runes the face has no glyph for take up a blank cell of the same advance.
// Pixels falling outside the canvas are clipped.
func (c *Canvas) Text(s string, x, y int, col image1bit.Bit) {
	runes := []rune(s)
	for i, r := range runes {
		if _, ok := c.face.GlyphAdvance(r); !ok {
			runes[i] = ' '
		}
	}

	d := font.Drawer{
		Dst:  c,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(string(runes))
}
