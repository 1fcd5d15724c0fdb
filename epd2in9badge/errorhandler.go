// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in9badge

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. Once an I/O call failed
// all following calls are skipped and err holds the first failure.
type errorHandler struct {
	io   IO
	poll time.Duration
	err  error
}

func (eh *errorHandler) out(l Line, level gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.io.Out(l, level)
}

func (eh *errorHandler) transfer(b byte) {
	if eh.err != nil {
		return
	}
	_, eh.err = eh.io.Transfer(b)
}

func (eh *errorHandler) delay(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.io.Delay(d)
}

// waitUntilIdle polls the busy line until it reads Low. There is no timeout:
// a refresh takes as long as the controller needs.
func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	for eh.io.Read(BusyLine) == gpio.High {
		eh.io.Delay(eh.poll)
	}
}

func (eh *errorHandler) sendCommand(cmd byte) {
	eh.out(DataCommandLine, gpio.Low)
	eh.transfer(cmd)
}

func (eh *errorHandler) sendData(data []byte) {
	for _, b := range data {
		eh.out(DataCommandLine, gpio.High)
		eh.transfer(b)
	}
}
