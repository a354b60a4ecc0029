// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package epd2in7

import "bytes"

// Commands
const (
	driverOutputControl byte = 0x01
	// The panel uses the legacy opcode for deep sleep rather than 0x10.
	deepSleepMode                  byte = 0x07
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	tempSensorSelect               byte = 0x18
	masterActivation               byte = 0x20
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
)

// controller is the command/data interface the protocol sequences run
// against. Dev implements it through errorHandler; tests substitute a
// recording fake.
type controller interface {
	sendCommand(byte)
	sendData([]byte)
	sendByte(byte)
	waitUntilIdle()
}

// initDisplay issues the power-on and driver configuration sequence. The
// caller is responsible for the hardware reset pulse that precedes it.
func initDisplay(ctrl controller, opts *Opts) {
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	// Gate setting, verbatim from the vendor init code.
	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{0xB7, 0x01, 0x00})

	// X increment, Y increment, counter updated in X direction.
	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendByte(0x03)

	setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendByte(0x05)

	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendByte(0x80)

	// Load the temperature value and waveform from OTP.
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(0xB1)
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()

	setCursor(ctrl, 0, 0)
}

// writeFrame uploads a full frame in panel RAM order.
func writeFrame(ctrl controller, pix []byte) {
	setCursor(ctrl, 0, 0)
	ctrl.sendCommand(writeRAMBW)
	ctrl.sendData(pix)
}

// writeUniformFrame uploads a single-color frame without reading a buffer,
// one repeated row at a time.
func writeUniformFrame(ctrl controller, color byte, opts *Opts) {
	setCursor(ctrl, 0, 0)
	ctrl.sendCommand(writeRAMBW)

	row := bytes.Repeat([]byte{color}, (opts.Width+7)/8)
	for y := 0; y < opts.Height; y++ {
		ctrl.sendData(row)
	}
}

// updateDisplay triggers a full refresh of the panel from its RAM and waits
// for it to complete.
func updateDisplay(ctrl controller) {
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(0xC7)
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

// enterDeepSleep cuts the panel's power rails. Only a hardware reset brings
// it back.
func enterDeepSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.sendByte(0xA5)
}

// setWindow sets the RAM window. X positions are in bytes of eight pixels.
func setWindow(ctrl controller, xStart, yStart, xEnd, yEnd int) {
	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{byte((xStart >> 3) & 0xFF), byte((xEnd >> 3) & 0xFF)})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData([]byte{
		byte(yStart & 0xFF), byte((yStart >> 8) & 0xFF),
		byte(yEnd & 0xFF), byte((yEnd >> 8) & 0xFF),
	})
}

// setCursor positions the RAM address counters.
func setCursor(ctrl controller, x, y int) {
	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendByte(byte((x >> 3) & 0xFF))

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData([]byte{byte(y & 0xFF), byte((y >> 8) & 0xFF)})
}
