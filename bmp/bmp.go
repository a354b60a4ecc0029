// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

// Package bmp decodes 1-bit uncompressed Windows bitmaps into the packed
// frame buffer format.
//
// Only the layout produced by common tooling for monochrome images is
// accepted: BITMAPFILEHEADER, a BITMAPINFOHEADER (or larger) with a bit
// depth of 1 and no compression, a two entry palette, and 4-byte aligned
// pixel rows. Anything else fails with ErrUnsupportedFormat before any
// pixel is produced, so a draw that follows a successful decode is
// all-or-nothing.
package bmp

import (
	"encoding/binary"
	"errors"
	"image"

	"github.com/epaper-dev/epd2in7/image1bit"
)

// ErrUnsupportedFormat is returned for any input that is not a well-formed
// 1-bit uncompressed BMP, including truncated pixel data.
var ErrUnsupportedFormat = errors.New("bmp: unsupported format")

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// Decode parses a 1-bit uncompressed BMP into a HorizontalMSB image where a
// set bit is White. The palette decides which of the two stored values maps
// to White, so both polarities of monochrome files display correctly.
func Decode(data []byte) (*image1bit.HorizontalMSB, error) {
	if len(data) < fileHeaderSize+infoHeaderSize {
		return nil, ErrUnsupportedFormat
	}
	if data[0] != 'B' || data[1] != 'M' {
		return nil, ErrUnsupportedFormat
	}

	pixOffset := binary.LittleEndian.Uint32(data[10:14])

	hdr := data[fileHeaderSize:]
	hdrSize := binary.LittleEndian.Uint32(hdr[0:4])
	if hdrSize < infoHeaderSize {
		// BITMAPCOREHEADER and friends are not produced by the tooling this
		// decoder targets.
		return nil, ErrUnsupportedFormat
	}
	width := int(int32(binary.LittleEndian.Uint32(hdr[4:8])))
	height := int(int32(binary.LittleEndian.Uint32(hdr[8:12])))
	planes := binary.LittleEndian.Uint16(hdr[12:14])
	bitCount := binary.LittleEndian.Uint16(hdr[14:16])
	compression := binary.LittleEndian.Uint32(hdr[16:20])

	if planes != 1 || bitCount != 1 || compression != 0 {
		return nil, ErrUnsupportedFormat
	}

	topDown := false
	if height < 0 {
		topDown = true
		height = -height
	}
	if width <= 0 || height == 0 {
		return nil, ErrUnsupportedFormat
	}

	// Two RGBQUAD palette entries follow the info header.
	palOffset := fileHeaderSize + int(hdrSize)
	if len(data) < palOffset+8 {
		return nil, ErrUnsupportedFormat
	}
	pal := [2]image1bit.Bit{
		paletteBit(data[palOffset : palOffset+4]),
		paletteBit(data[palOffset+4 : palOffset+8]),
	}

	// File rows are padded to 32-bit boundaries.
	fileStride := ((width + 31) / 32) * 4
	if int(pixOffset) < palOffset+8 || len(data) < int(pixOffset)+fileStride*height {
		return nil, ErrUnsupportedFormat
	}
	pix := data[pixOffset:]

	img := image1bit.NewHorizontalMSB(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcRow := height - 1 - y
		if topDown {
			srcRow = y
		}
		row := pix[srcRow*fileStride:]
		for x := 0; x < width; x++ {
			idx := row[x/8] >> uint(7-x&7) & 1
			img.SetBit(x, y, pal[idx])
		}
	}
	return img, nil
}

// paletteBit maps an RGBQUAD (blue, green, red, reserved) to Black or White
// by luminance.
func paletteBit(q []byte) image1bit.Bit {
	y := 299*int(q[2]) + 587*int(q[1]) + 114*int(q[0])
	return image1bit.Bit(y >= 128*1000)
}
