// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package gfx

// Rotation selects one of the four logical orientations of the panel. The
// frame buffer always stays in the physical portrait layout; a rotation only
// changes how logical coordinates are mapped onto it.
type Rotation uint8

// Supported rotations, counted clockwise from the physical portrait
// orientation.
const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0°"
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	}
	return "unknown"
}

// swapsAxes reports whether the rotation exchanges width and height.
func (r Rotation) swapsAxes() bool {
	return r == Rotate90 || r == Rotate270
}

// logicalDims returns the logical width and height for a physical w×h panel.
func (r Rotation) logicalDims(w, h int) (int, int) {
	if r.swapsAxes() {
		return h, w
	}
	return w, h
}

// toPhysical maps a logical coordinate onto the physical w×h pixel grid.
// Coordinates outside the logical rectangle pass through unchecked; clamping
// is centralized in the frame buffer.
func toPhysical(r Rotation, w, h, lx, ly int) (int, int) {
	switch r {
	case Rotate90:
		return w - 1 - ly, lx
	case Rotate180:
		return w - 1 - lx, h - 1 - ly
	case Rotate270:
		return ly, h - 1 - lx
	}
	return lx, ly
}

// toLogical is the inverse of toPhysical.
func toLogical(r Rotation, w, h, px, py int) (int, int) {
	switch r {
	case Rotate90:
		return py, w - 1 - px
	case Rotate180:
		return w - 1 - px, h - 1 - py
	case Rotate270:
		return h - 1 - py, px
	}
	return px, py
}
