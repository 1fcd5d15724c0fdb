// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in9badge

// LUTSize is the number of bytes the controller expects in the LUT register.
const LUTSize = 70

// LUT contains the waveform that is used to program the display.
type LUT []byte

// FullUpdate is the waveform for a full refresh: every pixel is driven
// through black and white before settling, which removes ghosting.
//
// Do not modify.
var FullUpdate = LUT{
	0x90, 0x50, 0xa0, 0x50, 0x50, 0x00, 0x00,
	0x00, 0x00, 0x10, 0xa0, 0xa0, 0x80, 0x00,
	0x90, 0x50, 0xa0, 0x50, 0x50, 0x00, 0x00,
	0x00, 0x00, 0x10, 0xa0, 0xa0, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	0x17, 0x04, 0x00, 0x00, 0x00,
	0x0b, 0x04, 0x00, 0x00, 0x00,
	0x06, 0x05, 0x00, 0x00, 0x00,
	0x04, 0x05, 0x00, 0x00, 0x00,
	0x01, 0x0e, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

// PartialUpdate is the waveform for a partial refresh. It only drives pixels
// that change, so it is fast and does not flicker, at the cost of ghosting.
//
// Do not modify.
var PartialUpdate = LUT{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x20, 0xa0, 0x80, 0x00, 0x00, 0x00, 0x00,
	0x50, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

	0x03, 0x05, 0x00, 0x00, 0x00,
	0x01, 0x08, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
}

// register returns exactly LUTSize bytes as sent to the LUT register. Short
// tables are padded with zeros.
func (l LUT) register() []byte {
	if len(l) >= LUTSize {
		return l[:LUTSize]
	}
	out := make([]byte, LUTSize)
	copy(out, l)
	return out
}

// same reports whether l and o share the same backing table.
func (l LUT) same(o LUT) bool {
	return len(l) > 0 && len(l) == len(o) && &l[0] == &o[0]
}
