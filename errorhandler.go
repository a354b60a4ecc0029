// Copyright 2023 The epd2in7 Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

package epd2in7

import "periph.io/x/conn/v3/gpio"

// errorHandler is a wrapper for error management: the first error of a
// command sequence wins, later steps become no-ops. It is the controller
// implementation the protocol sequences run against on real hardware.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}
	eh.d.debugf("epd2in7: command %#02x", cmd)
	eh.err = eh.d.sendCommand(cmd)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}
	eh.d.debugf("epd2in7: data (%d bytes)", len(data))
	eh.err = eh.d.sendData(data)
}

func (eh *errorHandler) sendByte(b byte) {
	eh.sendData([]byte{b})
}

func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.waitUntilIdle()
}
