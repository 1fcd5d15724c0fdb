// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// epd2in9badge drives a 2.9" badge e-paper panel from the command line.
//
// Usage:
//
//	epd2in9badge [flags] clear [color]
//	epd2in9badge [flags] pattern
//	epd2in9badge [flags] raw FILE
//	epd2in9badge [flags] window X Y W H FILE
//
// FILE holds raw 1 bit per pixel rows, most significant bit leftmost, a set
// bit being white. With -sim no hardware is touched and the result is drawn
// on the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-colorable"
	"golang.org/x/exp/slog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/epaper/epd2in9badge"
	"github.com/GermanBionicSystems/epaper/epd2in9badge/epdtest"
)

func pin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("unknown pin %q", name)
	}
	return p, nil
}

func mainImpl() error {
	spiID := flag.String("spi", "", "SPI port to use")
	dcName := flag.String("dc", "GPIO25", "data/command pin")
	csName := flag.String("cs", "GPIO8", "chip select pin")
	rstName := flag.String("rst", "GPIO17", "reset pin")
	busyName := flag.String("busy", "GPIO24", "busy pin")
	sim := flag.Bool("sim", false, "use a simulated panel and draw it on the terminal")
	partial := flag.Bool("partial", false, "refresh with the partial update waveform")
	sleep := flag.Bool("sleep", true, "enter deep sleep when done")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] clear [color] | pattern | raw FILE | window X Y W H FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		flag.Usage()
		return err
	}

	opts := epd2in9badge.EPD2in9Badge
	opts.Logger = logger

	var panel *epdtest.Panel
	var dev *epd2in9badge.Dev

	if *sim {
		panel = epdtest.NewPanel(opts.Width, opts.Height)
		if dev, err = epd2in9badge.New(panel, &opts); err != nil {
			return err
		}
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}

		p, err := spireg.Open(*spiID)
		if err != nil {
			return err
		}
		defer p.Close()

		dc, err := pin(*dcName)
		if err != nil {
			return err
		}
		cs, err := pin(*csName)
		if err != nil {
			return err
		}
		rst, err := pin(*rstName)
		if err != nil {
			return err
		}
		busy, err := pin(*busyName)
		if err != nil {
			return err
		}

		if dev, err = epd2in9badge.NewSPI(p, dc, cs, rst, busy, &opts); err != nil {
			return err
		}
	}

	logger.Debug("using display", slog.String("dev", dev.String()))

	if err := dev.Init(); err != nil {
		return err
	}

	if err := cmd.run(dev, opts.Width, opts.Height); err != nil {
		return err
	}

	// Full writes load the full update waveform themselves, so the partial
	// one goes in right before the refresh.
	if *partial {
		if err := dev.SetLut(epd2in9badge.PartialUpdate); err != nil {
			return err
		}
	}

	if err := dev.DisplayFrame(); err != nil {
		return err
	}

	if *sleep {
		if err := dev.Sleep(); err != nil {
			return err
		}
	}

	if panel != nil {
		return panel.Render(colorable.NewColorableStdout())
	}

	return nil
}

func parseColor(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return byte(v), nil
}

func main() {
	if err := mainImpl(); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "epd2in9badge: %s.\n", err)
		}
		os.Exit(1)
	}
}
