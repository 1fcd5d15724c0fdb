// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in9badge

import "math"

// window is a RAM window in pixels, inclusive on both ends. x and xEnd+1 are
// multiples of 8. stride is the row length of the source buffer in bytes.
type window struct {
	x, y       int
	xEnd, yEnd int
	stride     int
}

// cols returns the number of bytes sent per row.
func (w window) cols() int {
	return (w.xEnd - w.x + 1) / 8
}

// rows returns the number of rows sent.
func (w window) rows() int {
	return w.yEnd - w.y + 1
}

// need returns the minimum source buffer length for w, saturated at
// math.MaxInt.
func (w window) need() int {
	if w.rows() == 0 || w.cols() == 0 {
		return 0
	}
	if w.rows()-1 > (math.MaxInt-w.cols())/w.stride {
		return math.MaxInt
	}
	return (w.rows()-1)*w.stride + w.cols()
}

func fullWindow(width, height int) window {
	return window{
		xEnd:   width - 1,
		yEnd:   height - 1,
		stride: width / 8,
	}
}

// alignX drops the sub-byte part of a horizontal position or extent. The
// controller ignores the low three bits of every X address.
func alignX(v int) int {
	return v &^ 7
}

// clipWindow computes the RAM window for an image of imageWidth x
// imageHeight pixels placed at (x, y) on a width x height panel. The image is
// clipped at the right and bottom edges; its stride stays imageWidth/8 so the
// visible part is read from the right offsets.
//
// ok is false when nothing would be written: negative input, an empty image
// after alignment, or a position outside the panel.
func clipWindow(width, height, x, y, imageWidth, imageHeight int) (w window, ok bool) {
	if x < 0 || y < 0 || imageWidth < 0 || imageHeight < 0 {
		return window{}, false
	}

	x = alignX(x)
	imageWidth = alignX(imageWidth)

	if imageWidth == 0 || imageHeight == 0 || x >= width || y >= height {
		return window{}, false
	}

	w = window{
		x:      x,
		y:      y,
		xEnd:   x + imageWidth - 1,
		yEnd:   y + imageHeight - 1,
		stride: imageWidth / 8,
	}

	if imageWidth >= width-x {
		w.xEnd = width - 1
	}
	if imageHeight >= height-y {
		w.yEnd = height - 1
	}

	return w, true
}
