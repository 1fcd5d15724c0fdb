// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epdtest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/epaper/epd2in9badge"
)

func send(t *testing.T, p *Panel, cmd byte, data ...byte) {
	t.Helper()

	if err := p.Out(epd2in9badge.DataCommandLine, gpio.Low); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Transfer(cmd); err != nil {
		t.Fatal(err)
	}
	for _, b := range data {
		if err := p.Out(epd2in9badge.DataCommandLine, gpio.High); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Transfer(b); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWriteRAMWrapsInsideWindow(t *testing.T) {
	p := NewPanel(32, 4)

	// Columns 1-2, rows 1-2, cursor at the window origin.
	send(t, p, cmdRAMXStartEnd, 1, 2)
	send(t, p, cmdRAMYStartEnd, 1, 0, 2, 0)
	send(t, p, cmdRAMXCounter, 1)
	send(t, p, cmdRAMYCounter, 1, 0)
	send(t, p, cmdWriteRAM, 0xA1, 0xA2, 0xB1, 0xB2, 0xC1)

	want := []byte{
		0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xC1, 0xA2, 0xFF,
		0xFF, 0xB1, 0xB2, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF,
	}

	if diff := cmp.Diff(p.Pending(), want); diff != "" {
		t.Errorf("RAM difference (-got +want):\n%s", diff)
	}
}

func TestActivateSwapsBanks(t *testing.T) {
	p := NewPanel(8, 2)
	p.BusyPolls = 2

	send(t, p, cmdWriteRAM, 0x00, 0x0F)
	send(t, p, cmdActivate)

	if diff := cmp.Diff(p.Frame(), []byte{0x00, 0x0F}); diff != "" {
		t.Errorf("Frame() difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(p.Pending(), []byte{0xFF, 0xFF}); diff != "" {
		t.Errorf("Pending() difference (-got +want):\n%s", diff)
	}

	var levels []gpio.Level
	for i := 0; i < 3; i++ {
		levels = append(levels, p.Read(epd2in9badge.BusyLine))
	}

	if diff := cmp.Diff(levels, []gpio.Level{gpio.High, gpio.High, gpio.Low}); diff != "" {
		t.Errorf("busy line difference (-got +want):\n%s", diff)
	}
}

func TestDeepSleepIgnoresCommandsUntilReset(t *testing.T) {
	p := NewPanel(8, 1)

	send(t, p, cmdDeepSleep)
	send(t, p, cmdWriteRAM, 0x00)

	if !p.Asleep() {
		t.Fatalf("Asleep() = false after deep sleep")
	}
	if diff := cmp.Diff(p.Pending(), []byte{0xFF}); diff != "" {
		t.Errorf("RAM written while asleep (-got +want):\n%s", diff)
	}

	for _, l := range []gpio.Level{gpio.Low, gpio.High} {
		if err := p.Out(epd2in9badge.ResetLine, l); err != nil {
			t.Fatal(err)
		}
	}

	if p.Asleep() || p.Resets != 1 {
		t.Errorf("after reset: asleep = %v, resets = %d", p.Asleep(), p.Resets)
	}
}

func TestLUTRegister(t *testing.T) {
	p := NewPanel(8, 1)

	send(t, p, cmdWriteLUT, bytes.Repeat([]byte{7}, 80)...)

	if diff := cmp.Diff(p.LUT(), bytes.Repeat([]byte{7}, epd2in9badge.LUTSize)); diff != "" {
		t.Errorf("LUT() difference (-got +want):\n%s", diff)
	}

	if diff := cmp.Diff(p.Commands(), []byte{cmdWriteLUT}); diff != "" {
		t.Errorf("Commands() difference (-got +want):\n%s", diff)
	}
}

func TestOutRejectsBusyLine(t *testing.T) {
	p := NewPanel(8, 1)

	if err := p.Out(epd2in9badge.BusyLine, gpio.High); err == nil {
		t.Errorf("Out(BusyLine) succeeded")
	}
}

func TestRender(t *testing.T) {
	p := NewPanel(16, 2)

	send(t, p, cmdWriteRAM, 0x0F, 0xFF, 0x00, 0xFF)
	send(t, p, cmdActivate)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() wrote %d lines, want 2", len(lines))
	}

	black := p.palette.Block(blackColor)
	white := p.palette.Block(whiteColor)

	if got, want := strings.Count(lines[0], black), 2*4; got != want {
		t.Errorf("row 0 has %d black blocks, want %d", got, want)
	}
	if got, want := strings.Count(lines[1], white), 2*8; got != want {
		t.Errorf("row 1 has %d white blocks, want %d", got, want)
	}
}

func TestOpString(t *testing.T) {
	got := []string{Op{Command: true, Value: 0x24}.String(), Op{Value: 0x0a}.String()}

	if diff := cmp.Diff(got, []string{"C24", "D0A"}); diff != "" {
		t.Errorf("String() difference (-got +want):\n%s", diff)
	}
}
