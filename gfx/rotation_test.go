// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package gfx

import "testing"

const (
	physW = 176
	physH = 264
)

func TestLogicalDims(t *testing.T) {
	for _, tc := range []struct {
		rot          Rotation
		wantW, wantH int
	}{
		{Rotate0, 176, 264},
		{Rotate90, 264, 176},
		{Rotate180, 176, 264},
		{Rotate270, 264, 176},
	} {
		t.Run(tc.rot.String(), func(t *testing.T) {
			w, h := tc.rot.logicalDims(physW, physH)
			if w != tc.wantW || h != tc.wantH {
				t.Errorf("logicalDims = (%d, %d), want (%d, %d)", w, h, tc.wantW, tc.wantH)
			}
		})
	}
}

// TestToPhysicalBijection verifies every logical coordinate maps into the
// physical rectangle, round-trips through the inverse, and that no two
// logical coordinates collide.
func TestToPhysicalBijection(t *testing.T) {
	for _, rot := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		t.Run(rot.String(), func(t *testing.T) {
			lw, lh := rot.logicalDims(physW, physH)
			seen := make([]bool, physW*physH)

			for ly := 0; ly < lh; ly++ {
				for lx := 0; lx < lw; lx++ {
					px, py := toPhysical(rot, physW, physH, lx, ly)
					if px < 0 || px >= physW || py < 0 || py >= physH {
						t.Fatalf("toPhysical(%d, %d) = (%d, %d): outside the physical rectangle", lx, ly, px, py)
					}
					if idx := py*physW + px; seen[idx] {
						t.Fatalf("toPhysical(%d, %d) = (%d, %d): physical coordinate hit twice", lx, ly, px, py)
					} else {
						seen[idx] = true
					}
					if bx, by := toLogical(rot, physW, physH, px, py); bx != lx || by != ly {
						t.Fatalf("toLogical(toPhysical(%d, %d)) = (%d, %d)", lx, ly, bx, by)
					}
				}
			}

			// Full coverage plus uniqueness makes the mapping a bijection.
			for i, ok := range seen {
				if !ok {
					t.Fatalf("physical coordinate (%d, %d) never mapped", i%physW, i/physW)
				}
			}
		})
	}
}

func TestToPhysicalCorners(t *testing.T) {
	for _, tc := range []struct {
		rot          Rotation
		lx, ly       int
		wantX, wantY int
	}{
		{Rotate0, 0, 0, 0, 0},
		{Rotate0, 175, 263, 175, 263},
		{Rotate90, 0, 0, 175, 0},
		{Rotate90, 263, 175, 0, 263},
		{Rotate180, 0, 0, 175, 263},
		{Rotate180, 175, 263, 0, 0},
		{Rotate270, 0, 0, 0, 263},
		{Rotate270, 263, 175, 175, 0},
	} {
		px, py := toPhysical(tc.rot, physW, physH, tc.lx, tc.ly)
		if px != tc.wantX || py != tc.wantY {
			t.Errorf("toPhysical(%v, %d, %d) = (%d, %d), want (%d, %d)",
				tc.rot, tc.lx, tc.ly, px, py, tc.wantX, tc.wantY)
		}
	}
}
