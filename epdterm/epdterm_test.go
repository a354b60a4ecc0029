// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package epdterm

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/epaper-dev/epd2in7/image1bit"
)

func newTestDev(w, h int) (*Dev, *bytes.Buffer) {
	d := New(&Opts{Width: w, Height: h})
	out := &bytes.Buffer{}
	d.w = out
	return d, out
}

func TestBounds(t *testing.T) {
	d, _ := newTestDev(8, 4)
	if got := d.Bounds(); got != image.Rect(0, 0, 8, 4) {
		t.Errorf("Bounds() = %v", got)
	}
}

func TestWrite(t *testing.T) {
	d, out := newTestDev(8, 2)

	n, err := d.Write([]byte{0xF0, 0x0F})
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Write() = %d, want 2", n)
	}

	if got := d.pixels.BitAt(0, 0); got != image1bit.White {
		t.Errorf("pixel (0, 0) = %v, want White", got)
	}
	if got := d.pixels.BitAt(7, 0); got != image1bit.Black {
		t.Errorf("pixel (7, 0) = %v, want Black", got)
	}
	if got := d.pixels.BitAt(0, 1); got != image1bit.Black {
		t.Errorf("pixel (0, 1) = %v, want Black", got)
	}

	// One line per pixel row, each reset at the end.
	if got := strings.Count(out.String(), "\n"); got != 2 {
		t.Errorf("output has %d newlines, want 2", got)
	}
}

func TestWriteBadLength(t *testing.T) {
	d, out := newTestDev(8, 2)

	if _, err := d.Write([]byte{0xFF}); err == nil {
		t.Error("Write() with a short frame succeeded")
	}
	if out.Len() != 0 {
		t.Errorf("a rejected frame produced output: %q", out.String())
	}
}

func TestDraw(t *testing.T) {
	d, out := newTestDev(4, 4)

	src := image1bit.NewHorizontalMSB(image.Rect(0, 0, 4, 4))
	// src stays all Black (zeroed).
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := d.pixels.BitAt(x, y); got != image1bit.Black {
				t.Errorf("pixel (%d, %d) = %v, want Black", x, y, got)
			}
		}
	}
	if out.Len() == 0 {
		t.Error("Draw() produced no output")
	}
}

func TestHalt(t *testing.T) {
	d, out := newTestDev(2, 2)
	if err := d.Halt(); err != nil {
		t.Fatalf("Halt() failed: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\033[0m") {
		t.Errorf("Halt() did not reset the terminal attributes: %q", out.String())
	}
}
