// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epdtest implements a simulated 2.9" badge panel.
//
// Panel records every bus transaction and keeps a model of the controller:
// RAM window and address counter, the two frame memory banks, the LUT
// register and the busy line. It can be passed to epd2in9badge.New in place
// of real hardware, and can draw the shown frame to a terminal.
package epdtest

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/maruel/ansi256"
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/epaper/epd2in9badge"
)

// Controller commands understood by the model.
const (
	cmdDeepSleep    byte = 0x10
	cmdActivate     byte = 0x20
	cmdWriteRAM     byte = 0x24
	cmdWriteLUT     byte = 0x32
	cmdRAMXStartEnd byte = 0x44
	cmdRAMYStartEnd byte = 0x45
	cmdRAMXCounter  byte = 0x4E
	cmdRAMYCounter  byte = 0x4F
)

var (
	blackColor = color.NRGBA{A: 255}
	whiteColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Op is one byte transferred on the bus.
type Op struct {
	// Command is true when the data/command line was Low.
	Command bool
	Value   byte
}

func (o Op) String() string {
	if o.Command {
		return fmt.Sprintf("C%02X", o.Value)
	}
	return fmt.Sprintf("D%02X", o.Value)
}

// Panel is a simulated panel. The zero value is not usable, use NewPanel.
type Panel struct {
	// InitErr is returned by Init when set.
	InitErr error
	// TransferErr is returned by Transfer when set. The byte is not recorded.
	TransferErr error
	// BusyPolls is the number of reads for which the busy line stays High
	// after a refresh or deep sleep command.
	BusyPolls int

	// Ops lists the bytes transferred since the last ResetOps.
	Ops []Op
	// Inits counts successful calls to Init.
	Inits int
	// Resets counts rising edges on the reset line.
	Resets int
	// Slept is the sum of all requested delays.
	Slept time.Duration
	// BusyReads counts samples of the busy line.
	BusyReads int

	width, height int
	palette       *ansi256.Palette

	dc    gpio.Level
	rst   gpio.Level
	busy  int
	sleep bool

	cmd  byte
	args []byte

	xStart, xEnd int
	yStart, yEnd int
	xCounter     int
	yCounter     int

	banks [2][]byte
	write int
	shown int
	lut   []byte
}

// NewPanel returns a simulated panel of width x height pixels. Both RAM
// banks start white (0xFF).
func NewPanel(width, height int) *Panel {
	p := &Panel{
		width:   width,
		height:  height,
		palette: ansi256.Default,
		rst:     gpio.High,
		xEnd:    width/8 - 1,
		yEnd:    height - 1,
		shown:   1,
	}
	for i := range p.banks {
		p.banks[i] = bytes.Repeat([]byte{0xFF}, width/8*height)
	}
	return p
}

// Init implements epd2in9badge.IO.
func (p *Panel) Init() error {
	if p.InitErr != nil {
		return p.InitErr
	}
	p.Inits++
	return nil
}

// Transfer implements epd2in9badge.IO. It decodes b according to the level
// of the data/command line.
func (p *Panel) Transfer(b byte) (byte, error) {
	if p.TransferErr != nil {
		return 0, p.TransferErr
	}

	op := Op{Command: p.dc == gpio.Low, Value: b}
	p.Ops = append(p.Ops, op)

	if op.Command {
		p.command(b)
	} else {
		p.data(b)
	}

	return 0, nil
}

// Out implements epd2in9badge.IO.
func (p *Panel) Out(l epd2in9badge.Line, level gpio.Level) error {
	switch l {
	case epd2in9badge.ResetLine:
		if p.rst == gpio.Low && level == gpio.High {
			p.hardwareReset()
		}
		p.rst = level
	case epd2in9badge.DataCommandLine:
		p.dc = level
	default:
		return fmt.Errorf("epdtest: %s is not an output", l)
	}
	return nil
}

// Read implements epd2in9badge.IO. The busy line reads High for BusyPolls
// samples after a refresh or sleep command.
func (p *Panel) Read(l epd2in9badge.Line) gpio.Level {
	if l != epd2in9badge.BusyLine {
		return gpio.Low
	}
	p.BusyReads++
	if p.busy > 0 {
		p.busy--
		return gpio.High
	}
	return gpio.Low
}

// Delay implements epd2in9badge.IO. It does not sleep.
func (p *Panel) Delay(d time.Duration) {
	p.Slept += d
}

func (p *Panel) String() string {
	return fmt.Sprintf("epdtest.Panel{%dx%d}", p.width, p.height)
}

// ResetOps forgets the recorded transactions.
func (p *Panel) ResetOps() {
	p.Ops = nil
}

// Commands returns the command bytes recorded so far, in order.
func (p *Panel) Commands() []byte {
	var out []byte
	for _, op := range p.Ops {
		if op.Command {
			out = append(out, op.Value)
		}
	}
	return out
}

// Frame returns a copy of the frame memory bank currently shown.
func (p *Panel) Frame() []byte {
	return append([]byte(nil), p.banks[p.shown]...)
}

// Pending returns a copy of the bank the next RAM write goes to.
func (p *Panel) Pending() []byte {
	return append([]byte(nil), p.banks[p.write]...)
}

// LUT returns the content of the LUT register.
func (p *Panel) LUT() []byte {
	return append([]byte(nil), p.lut...)
}

// Asleep reports whether the controller is in deep sleep.
func (p *Panel) Asleep() bool {
	return p.sleep
}

// Render writes the shown frame to w as ANSI 256 colour blocks, two
// characters per pixel.
func (p *Panel) Render(w io.Writer) error {
	var buf bytes.Buffer
	black := p.palette.Block(blackColor)
	white := p.palette.Block(whiteColor)
	stride := p.width / 8
	frame := p.banks[p.shown]

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			if frame[y*stride+x/8]&(0x80>>uint(x%8)) != 0 {
				_, _ = buf.WriteString(white)
				_, _ = buf.WriteString(white)
			} else {
				_, _ = buf.WriteString(black)
				_, _ = buf.WriteString(black)
			}
		}
		_, _ = buf.WriteString("\033[0m\n")
	}

	_, err := buf.WriteTo(w)
	return err
}

func (p *Panel) hardwareReset() {
	p.Resets++
	p.sleep = false
	p.busy = 0
	p.cmd = 0
	p.args = nil
	p.lut = nil
	p.xStart, p.xEnd = 0, p.width/8-1
	p.yStart, p.yEnd = 0, p.height-1
	p.xCounter, p.yCounter = 0, 0
}

func (p *Panel) command(b byte) {
	if p.sleep {
		return
	}

	p.cmd = b
	p.args = p.args[:0]

	switch b {
	case cmdActivate:
		p.shown = p.write
		p.write ^= 1
		p.busy = p.BusyPolls
	case cmdDeepSleep:
		p.sleep = true
		p.busy = p.BusyPolls
	case cmdWriteLUT:
		p.lut = p.lut[:0]
	}
}

func (p *Panel) data(b byte) {
	if p.sleep {
		return
	}

	switch p.cmd {
	case cmdWriteRAM:
		p.writeRAM(b)
		return
	case cmdWriteLUT:
		if len(p.lut) < epd2in9badge.LUTSize {
			p.lut = append(p.lut, b)
		}
		return
	}

	p.args = append(p.args, b)

	switch p.cmd {
	case cmdRAMXStartEnd:
		if len(p.args) == 2 {
			p.xStart, p.xEnd = int(p.args[0]), int(p.args[1])
		}
	case cmdRAMYStartEnd:
		if len(p.args) == 4 {
			p.yStart = int(p.args[0]) | int(p.args[1])<<8
			p.yEnd = int(p.args[2]) | int(p.args[3])<<8
		}
	case cmdRAMXCounter:
		if len(p.args) == 1 {
			p.xCounter = int(p.args[0])
		}
	case cmdRAMYCounter:
		if len(p.args) == 2 {
			p.yCounter = int(p.args[0]) | int(p.args[1])<<8
		}
	}
}

// writeRAM stores b at the address counter and advances it: X first, then
// Y, wrapping inside the window.
func (p *Panel) writeRAM(b byte) {
	stride := p.width / 8
	if p.xCounter < stride && p.yCounter < p.height {
		p.banks[p.write][p.yCounter*stride+p.xCounter] = b
	}

	p.xCounter++
	if p.xCounter > p.xEnd {
		p.xCounter = p.xStart
		p.yCounter++
		if p.yCounter > p.yEnd {
			p.yCounter = p.yStart
		}
	}
}

var _ epd2in9badge.IO = &Panel{}
