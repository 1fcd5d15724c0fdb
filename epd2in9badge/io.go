// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in9badge

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Line identifies one of the auxiliary control lines of the panel.
type Line uint8

const (
	// ResetLine is the active low hardware reset input.
	ResetLine Line = iota
	// DataCommandLine selects between command (Low) and data (High) bytes.
	DataCommandLine
	// BusyLine is High while the controller is refreshing or entering sleep.
	BusyLine
)

func (l Line) String() string {
	switch l {
	case ResetLine:
		return "RST"
	case DataCommandLine:
		return "DC"
	case BusyLine:
		return "BUSY"
	default:
		return fmt.Sprintf("Line(%d)", uint8(l))
	}
}

// IO is the hardware capability the driver needs.
//
// Implementations own the bus and the control lines; the driver calls them
// from a single goroutine.
type IO interface {
	// Init prepares the transport. It may be called again after Sleep.
	Init() error
	// Transfer shifts one byte out on the bus and returns the byte read back.
	Transfer(b byte) (byte, error)
	// Out drives a control line.
	Out(l Line, level gpio.Level) error
	// Read samples a control line.
	Read(l Line) gpio.Level
	// Delay blocks for d.
	Delay(d time.Duration)
}

// SPI implements IO on top of a periph.io SPI port and GPIO pins.
type SPI struct {
	p spi.Port
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn
}

// NewSPIIO returns an IO for the given port and pins. The port is connected
// on the first call to Init. cs may be nil when the SPI driver handles chip
// select itself.
func NewSPIIO(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn) *SPI {
	return &SPI{p: p, dc: dc, cs: cs, rst: rst, busy: busy}
}

// Init connects the SPI port at 4MHz, mode 0. It is a no-op once connected.
func (s *SPI) Init() error {
	if s.c != nil {
		return nil
	}

	c, err := s.p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return err
	}

	if err := s.busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return err
	}

	s.c = c

	return nil
}

// Transfer sends b framed by chip select. The panel has no data output, the
// returned byte is always 0.
func (s *SPI) Transfer(b byte) (byte, error) {
	if s.c == nil {
		return 0, errors.New("epd2in9badge: transfer before Init")
	}

	if s.cs != nil {
		if err := s.cs.Out(gpio.Low); err != nil {
			return 0, err
		}
	}

	if err := s.c.Tx([]byte{b}, nil); err != nil {
		return 0, err
	}

	if s.cs != nil {
		if err := s.cs.Out(gpio.High); err != nil {
			return 0, err
		}
	}

	return 0, nil
}

// Out drives the reset or data/command pin.
func (s *SPI) Out(l Line, level gpio.Level) error {
	switch l {
	case ResetLine:
		return s.rst.Out(level)
	case DataCommandLine:
		return s.dc.Out(level)
	}
	return fmt.Errorf("epd2in9badge: %s is not an output", l)
}

// Read samples the busy pin. Other lines read Low.
func (s *SPI) Read(l Line) gpio.Level {
	if l != BusyLine {
		return gpio.Low
	}
	return s.busy.Read()
}

// Delay sleeps for d.
func (*SPI) Delay(d time.Duration) {
	time.Sleep(d)
}

// String returns the underlying connection, or the port before Init.
func (s *SPI) String() string {
	if s.c != nil {
		return s.c.String()
	}
	return s.p.String()
}

var _ IO = &SPI{}
