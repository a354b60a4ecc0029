// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package epd2in7

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"

	"github.com/epaper-dev/epd2in7/gfx"
	"github.com/epaper-dev/epd2in7/image1bit"
)

// Errors returned by the display operations.
var (
	// ErrNotInitialized is returned for any display or drawing call made
	// before Init.
	ErrNotInitialized = errors.New("epd2in7: display not initialized")
	// ErrDisplayAsleep is returned for any display or drawing call made
	// after Sleep; only ResetDisplay recovers.
	ErrDisplayAsleep = errors.New("epd2in7: display is in deep sleep")
	// ErrBusyTimeout is returned when the busy line does not become idle
	// within Opts.BusyTimeout. The driver never retries on its own.
	ErrBusyTimeout = errors.New("epd2in7: busy line did not become idle")
)

// Data transfers are cut into chunks to bound the transport's per-call
// buffer; the panel cannot tell the difference.
const dataChunkSize = 64

// Opts holds the display configuration.
type Opts struct {
	// Width and Height are the physical panel dimensions in pixels.
	Width  int
	Height int

	// Rotation selects the initial logical orientation.
	Rotation gfx.Rotation

	// BusyPollInterval is the delay between two reads of the busy line.
	BusyPollInterval time.Duration

	// BusyTimeout bounds a busy wait. A full refresh takes 2-3 seconds; the
	// bound only exists so disconnected hardware cannot hang the caller
	// forever.
	BusyTimeout time.Duration

	// Debug, if set, receives a trace of the protocol steps. It has no
	// functional effect on the output.
	Debug func(format string, args ...interface{})
}

// EPD2in7 contains the display configuration for the Waveshare 2.7 inch
// black/white panel.
var EPD2in7 = Opts{
	Width:            176,
	Height:           264,
	BusyPollInterval: 10 * time.Millisecond,
	BusyTimeout:      30 * time.Second,
}

type panelState uint8

const (
	stateUninitialized panelState = iota
	stateAwake
	stateAsleep
)

// Dev is a handler for the display. It owns the frame buffer and the bus;
// it is not safe for concurrent use.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO

	canvas *gfx.Canvas
	state  panelState

	opts *Opts
}

// New creates a handler for the display connected to the given SPI port and
// control pins.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIO, opts *Opts) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	o := *opts
	if o.BusyPollInterval <= 0 {
		o.BusyPollInterval = EPD2in7.BusyPollInterval
	}
	if o.BusyTimeout <= 0 {
		o.BusyTimeout = EPD2in7.BusyTimeout
	}

	buf := image1bit.NewHorizontalMSB(image.Rect(0, 0, o.Width, o.Height))
	buf.Fill(image1bit.White)

	return &Dev{
		c:      c,
		dc:     dc,
		cs:     cs,
		rst:    rst,
		busy:   busy,
		canvas: gfx.NewCanvas(buf, o.Rotation),
		opts:   &o,
	}, nil
}

// NewHat creates a handler for the display mounted as a Raspberry Pi HAT,
// using the default Waveshare pin assignment.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// Init pulses the hardware reset line and runs the power-on and driver
// configuration sequence. It must be called before any display operation
// and may be called again while awake; it always leaves the panel awake.
func (d *Dev) Init() error {
	d.debugf("epd2in7: init")

	if err := d.reset(); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	initDisplay(&eh, d.opts)
	if eh.err != nil {
		return eh.err
	}

	d.state = stateAwake
	return nil
}

// Display transmits the frame buffer to the panel RAM and triggers a full
// refresh. It blocks until the panel reports the refresh complete. This is
// the only path that makes drawing visible on the physical panel.
func (d *Dev) Display() error {
	if err := d.ready(); err != nil {
		return err
	}
	d.debugf("epd2in7: display")

	eh := errorHandler{d: d}
	writeFrame(&eh, d.canvas.Buffer().RawBytes())
	if eh.err == nil {
		updateDisplay(&eh)
	}
	return eh.err
}

// Clear fills the frame buffer with white and refreshes the panel.
func (d *Dev) Clear() error {
	return d.fillDisplay(image1bit.White)
}

// FillBlack fills the frame buffer with black and refreshes the panel.
func (d *Dev) FillBlack() error {
	return d.fillDisplay(image1bit.Black)
}

// fillDisplay is the single-color transmission path: the whole frame is one
// value, so the row is synthesized instead of read back from the buffer.
func (d *Dev) fillDisplay(col image1bit.Bit) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.debugf("epd2in7: fill %s", col)

	d.canvas.Fill(col)

	v := byte(0x00)
	if col == image1bit.White {
		v = 0xFF
	}

	eh := errorHandler{d: d}
	writeUniformFrame(&eh, v, d.opts)
	if eh.err == nil {
		updateDisplay(&eh)
	}
	return eh.err
}

// Sleep puts the panel into deep sleep. No operation other than
// ResetDisplay is valid afterwards.
func (d *Dev) Sleep() error {
	if err := d.ready(); err != nil {
		return err
	}
	d.debugf("epd2in7: sleep")

	eh := errorHandler{d: d}
	enterDeepSleep(&eh)
	if eh.err != nil {
		return eh.err
	}

	d.state = stateAsleep
	return nil
}

// ResetDisplay pulses the reset line and replays the init sequence. It is
// valid from any state and always leaves the panel awake.
func (d *Dev) ResetDisplay() error {
	d.debugf("epd2in7: reset display")
	d.state = stateUninitialized
	return d.Init()
}

// SetRotation changes the logical orientation for subsequent drawing. The
// buffer contents are not touched; a Display call is needed for the change
// to become visible on hardware.
func (d *Dev) SetRotation(r gfx.Rotation) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.canvas.SetRotation(r)
	return nil
}

// Canvas returns the drawing surface backing the display. Direct canvas
// access bypasses the panel state checks; the buffer stays valid in every
// state.
func (d *Dev) Canvas() *gfx.Canvas {
	return d.canvas
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. It reports the logical bounds for the
// current rotation.
func (d *Dev) Bounds() image.Rectangle {
	return d.canvas.Bounds()
}

// Draw renders src into the frame buffer and refreshes the panel. It
// implements display.Drawer.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	draw.Draw(d.canvas, dstRect, src, srcPts, draw.Src)
	return d.Display()
}

// Halt implements conn.Resource; it puts the panel into deep sleep.
func (d *Dev) Halt() error {
	return d.Sleep()
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("epd2in7.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.opts.Width, d.opts.Height)
}

// ready gates every display and drawing operation on the panel state.
func (d *Dev) ready() error {
	switch d.state {
	case stateUninitialized:
		return ErrNotInitialized
	case stateAsleep:
		return ErrDisplayAsleep
	}
	return nil
}

// reset pulses the hardware reset line.
func (d *Dev) reset() error {
	eh := errorHandler{d: d}

	eh.rstOut(gpio.High)
	time.Sleep(200 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(2 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(200 * time.Millisecond)

	return eh.err
}

// sendCommand transmits a single command byte with DC low.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return err
	}
	err := d.c.Tx([]byte{cmd}, nil)
	if err2 := d.cs.Out(gpio.High); err == nil {
		err = err2
	}
	return err
}

// sendData transmits data bytes with DC high, chunked to bound the
// transport's per-call buffer.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return err
	}
	var err error
	for len(data) > 0 && err == nil {
		n := len(data)
		if n > dataChunkSize {
			n = dataChunkSize
		}
		err = d.c.Tx(data[:n], nil)
		data = data[n:]
	}
	if err2 := d.cs.Out(gpio.High); err == nil {
		err = err2
	}
	return err
}

// waitUntilIdle polls the busy line until the panel reports idle. The line
// is active low: 0 means busy, 1 means idle.
func (d *Dev) waitUntilIdle() error {
	deadline := time.Now().Add(d.opts.BusyTimeout)
	for d.busy.Read() == gpio.Low {
		if time.Now().After(deadline) {
			return ErrBusyTimeout
		}
		time.Sleep(d.opts.BusyPollInterval)
	}
	return nil
}

func (d *Dev) debugf(format string, args ...interface{}) {
	if d.opts.Debug != nil {
		d.opts.Debug(format, args...)
	}
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
