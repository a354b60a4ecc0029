// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

// Package epd2in7 controls the Waveshare 2.7 inch black/white e-paper
// display (176x264, GDEW027W3 panel) over SPI.
//
// The driver owns a packed 1-bit frame buffer in the panel's physical
// layout. Drawing happens through logical coordinates that are mapped onto
// the buffer by one of four rotations (see the gfx package); Display
// transmits the buffer verbatim and triggers a full refresh, blocking on the
// panel's busy line.
//
// Product page:
//
// https://www.waveshare.com/wiki/2.7inch_e-Paper_HAT
package epd2in7
