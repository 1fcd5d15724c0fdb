// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in9badge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"time"

	"golang.org/x/exp/slog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

// ErrTransportInit is returned by Init when the bus could not be prepared.
// No command has been sent in that case.
var ErrTransportInit = errors.New("epd2in9badge: transport initialization failed")

const (
	defaultBusyPollInterval = 100 * time.Millisecond
	defaultResetHold        = 200 * time.Millisecond
)

// Opts defines the structure of the display configuration.
type Opts struct {
	// Width and Height are in pixels. Width must be a multiple of 8.
	Width  int
	Height int

	// FullUpdate is loaded by SetFrameMemory and ClearFrameMemory. Defaults
	// to the package FullUpdate table.
	FullUpdate LUT

	// BusyPollInterval is the delay between two samples of the busy line.
	BusyPollInterval time.Duration
	// ResetHold is how long the reset line is held in each state.
	ResetHold time.Duration

	Logger *slog.Logger
}

// EPD2in9Badge contains the display configuration for the 128x296 badge panel.
var EPD2in9Badge = Opts{
	Width:  128,
	Height: 296,
}

// State is the initialization progress of the panel as seen by the driver.
type State uint8

// States in the order Init passes through them.
const (
	Uninitialized State = iota
	BusReady
	HardwareReset
	Configured
	Asleep
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case BusReady:
		return "bus ready"
	case HardwareReset:
		return "hardware reset"
	case Configured:
		return "configured"
	case Asleep:
		return "asleep"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Dev defines the handler which is used to access the display.
type Dev struct {
	io    IO
	opts  Opts
	log   *slog.Logger
	state State

	// lastLUT is the table sent most recently. It is only used to keep the
	// log quiet when the same table is loaded again.
	lastLUT LUT
}

// New creates a handler for a panel reachable through io. Nothing is sent
// until Init is called.
func New(io IO, opts *Opts) (*Dev, error) {
	if opts.Width <= 0 || opts.Width%8 != 0 {
		return nil, fmt.Errorf("epd2in9badge: width %d must be a positive multiple of 8", opts.Width)
	}
	// X addresses are sent as a single byte column index.
	if opts.Width > 256*8 {
		return nil, fmt.Errorf("epd2in9badge: width %d out of range", opts.Width)
	}
	if opts.Height <= 0 || opts.Height > 0x10000 {
		return nil, fmt.Errorf("epd2in9badge: height %d out of range", opts.Height)
	}

	o := *opts
	if o.FullUpdate == nil {
		o.FullUpdate = FullUpdate
	}
	if o.BusyPollInterval <= 0 {
		o.BusyPollInterval = defaultBusyPollInterval
	}
	if o.ResetHold <= 0 {
		o.ResetHold = defaultResetHold
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return &Dev{
		io:   io,
		opts: o,
		log:  o.Logger.With(slog.String("dev", "epd2in9badge")),
	}, nil
}

// NewSPI creates a handler for a panel on the given SPI port and pins.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	return New(NewSPIIO(p, dc, cs, rst, busy), opts)
}

// NewHat creates a handler using the default Waveshare HAT pin assignment.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return NewSPI(p, dc, cs, rst, busy, opts)
}

func (d *Dev) errorHandler() *errorHandler {
	return &errorHandler{io: d.io, poll: d.opts.BusyPollInterval}
}

// Init prepares the bus, resets the panel and configures the controller.
// It is also the only way to wake the panel from Sleep.
func (d *Dev) Init() error {
	if err := d.io.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrTransportInit, err)
	}
	d.state = BusReady

	if err := d.Reset(); err != nil {
		return err
	}

	eh := d.errorHandler()
	initDisplay(eh)
	if eh.err != nil {
		return eh.err
	}

	d.state = Configured
	d.lastLUT = nil

	return nil
}

// Reset pulses the hardware reset line. The controller needs both holds to
// latch again.
func (d *Dev) Reset() error {
	d.log.Debug("hardware reset")

	eh := d.errorHandler()

	eh.out(ResetLine, gpio.Low)
	eh.delay(d.opts.ResetHold)
	eh.out(ResetLine, gpio.High)
	eh.delay(d.opts.ResetHold)

	if eh.err == nil {
		d.state = HardwareReset
	}

	return eh.err
}

// SendCommand sends a single command byte. Together with SendData it can be
// used for sequences the driver does not cover.
func (d *Dev) SendCommand(cmd byte) error {
	eh := d.errorHandler()
	eh.sendCommand(cmd)
	return eh.err
}

// SendData sends a single data byte for the last command.
func (d *Dev) SendData(data byte) error {
	eh := d.errorHandler()
	eh.sendData([]byte{data})
	return eh.err
}

// SetLut loads a waveform table into the controller. Exactly LUTSize bytes
// are sent; the content is not validated.
func (d *Dev) SetLut(lut LUT) error {
	d.logLUT(lut)

	eh := d.errorHandler()
	setLut(eh, lut)
	return eh.err
}

func (d *Dev) logLUT(lut LUT) {
	if !lut.same(d.lastLUT) {
		d.log.Debug("writing LUT", slog.Int("len", len(lut)))
		d.lastLUT = lut
	}
}

// SetFrameMemoryArea writes an image of width x height pixels at (x, y)
// into frame memory without refreshing the display. buf holds width/8 bytes
// per row.
//
// x and width are rounded down to multiples of 8. The part outside the panel
// is dropped. Negative values, an empty image or a buffer too short for the
// visible part make the call a no-op.
func (d *Dev) SetFrameMemoryArea(buf []byte, x, y, width, height int) error {
	if len(buf) == 0 {
		d.log.Warn("ignoring frame memory write without buffer")
		return nil
	}

	w, ok := clipWindow(d.opts.Width, d.opts.Height, x, y, width, height)
	if !ok {
		d.log.Warn("ignoring frame memory write outside panel",
			slog.Int("x", x), slog.Int("y", y),
			slog.Int("width", width), slog.Int("height", height))
		return nil
	}
	if len(buf) < w.need() {
		d.log.Warn("ignoring frame memory write with short buffer",
			slog.Int("len", len(buf)), slog.Int("need", w.need()))
		return nil
	}

	eh := d.errorHandler()
	writeWindow(eh, w, buf)
	return eh.err
}

// SetFrameMemory loads the full update waveform and writes a whole frame
// (Width/8*Height bytes) without refreshing the display.
func (d *Dev) SetFrameMemory(buf []byte) error {
	if n := d.frameSize(); len(buf) < n {
		d.log.Warn("ignoring frame memory write with short buffer",
			slog.Int("len", len(buf)), slog.Int("need", n))
		return nil
	}

	d.logLUT(d.opts.FullUpdate)
	d.log.Debug("writing frame memory")

	eh := d.errorHandler()
	writeFullFrame(eh, d.opts.Width, d.opts.Height, d.opts.FullUpdate, buf)
	return eh.err
}

// ClearFrameMemory loads the full update waveform and fills the frame memory
// with color (0xFF is white) without refreshing the display.
func (d *Dev) ClearFrameMemory(color byte) error {
	d.logLUT(d.opts.FullUpdate)
	d.log.Debug("clearing frame memory", slog.Int("color", int(color)))

	eh := d.errorHandler()
	writeFullFrame(eh, d.opts.Width, d.opts.Height, d.opts.FullUpdate,
		bytes.Repeat([]byte{color}, d.frameSize()))
	return eh.err
}

// DisplayFrame refreshes the display from frame memory and blocks until the
// controller is idle again. It does not time out.
//
// Afterwards the next SetFrameMemory or ClearFrameMemory writes to the
// controller's other RAM bank, the one not being shown.
func (d *Dev) DisplayFrame() error {
	if d.state != Configured {
		d.log.Warn("displaying frame on a panel that is not configured", slog.String("state", d.state.String()))
	}
	d.log.Debug("displaying frame")

	eh := d.errorHandler()
	displayFrame(eh, d.opts.Height)
	return eh.err
}

// Sleep makes the controller enter deep sleep mode. Only Init wakes it up.
func (d *Dev) Sleep() error {
	d.log.Debug("entering deep sleep")

	eh := d.errorHandler()
	deepSleep(eh)
	if eh.err == nil {
		d.state = Asleep
	}
	return eh.err
}

// Halt implements conn.Resource by putting the panel to sleep. The image
// stays visible.
func (d *Dev) Halt() error {
	return d.Sleep()
}

// State returns how far the panel has been brought up.
func (d *Dev) State() State {
	return d.state
}

// Bounds returns the bounds for the configured display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("epd.Dev{%s, Width: %d, Height: %d}", d.io, d.opts.Width, d.opts.Height)
}

func (d *Dev) frameSize() int {
	return d.opts.Width / 8 * d.opts.Height
}

var _ conn.Resource = &Dev{}
