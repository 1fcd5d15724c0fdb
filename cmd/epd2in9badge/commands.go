// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// frameWriter is the part of epd2in9badge.Dev the commands use.
type frameWriter interface {
	ClearFrameMemory(color byte) error
	SetFrameMemory(buf []byte) error
	SetFrameMemoryArea(buf []byte, x, y, width, height int) error
}

type command interface {
	run(w frameWriter, width, height int) error
}

type clearCmd struct {
	color byte
}

func (c clearCmd) run(w frameWriter, _, _ int) error {
	return w.ClearFrameMemory(c.color)
}

type patternCmd struct{}

func (patternCmd) run(w frameWriter, width, height int) error {
	return w.SetFrameMemory(checkerboard(width, height, 8))
}

type rawCmd struct {
	path string
}

func (c rawCmd) run(w frameWriter, width, height int) error {
	buf, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	if want := width / 8 * height; len(buf) != want {
		return fmt.Errorf("%s holds %d bytes, want %d", c.path, len(buf), want)
	}
	return w.SetFrameMemory(buf)
}

type windowCmd struct {
	x, y, width, height int
	path                string
}

func (c windowCmd) run(w frameWriter, _, _ int) error {
	buf, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	return w.SetFrameMemoryArea(buf, c.x, c.y, c.width, c.height)
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return nil, errors.New("missing command")
	}

	switch name, rest := args[0], args[1:]; name {
	case "clear":
		c := clearCmd{color: 0xFF}
		if len(rest) > 1 {
			return nil, errors.New("clear takes at most one color")
		}
		if len(rest) == 1 {
			v, err := parseColor(rest[0])
			if err != nil {
				return nil, err
			}
			c.color = v
		}
		return c, nil

	case "pattern":
		if len(rest) != 0 {
			return nil, errors.New("pattern takes no arguments")
		}
		return patternCmd{}, nil

	case "raw":
		if len(rest) != 1 {
			return nil, errors.New("raw takes a file name")
		}
		return rawCmd{path: rest[0]}, nil

	case "window":
		if len(rest) != 5 {
			return nil, errors.New("window takes X Y W H FILE")
		}
		var v [4]int
		for i := range v {
			n, err := strconv.Atoi(rest[i])
			if err != nil {
				return nil, fmt.Errorf("invalid window coordinate %q: %w", rest[i], err)
			}
			v[i] = n
		}
		return windowCmd{x: v[0], y: v[1], width: v[2], height: v[3], path: rest[4]}, nil

	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
}

// checkerboard returns a frame of size x size squares, the top-left one
// black. size must be a multiple of 8.
func checkerboard(width, height, size int) []byte {
	stride := width / 8
	buf := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for col := 0; col < stride; col++ {
			if (y/size+col*8/size)%2 == 1 {
				buf[y*stride+col] = 0xFF
			}
		}
	}
	return buf
}
