// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in9badge

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClipWindow(t *testing.T) {
	for _, tc := range []struct {
		name       string
		x, y, w, h int
		want       window
		wantOK     bool
	}{
		{
			name:   "misaligned",
			x:      5,
			w:      10,
			h:      1,
			want:   window{x: 0, xEnd: 7, yEnd: 0, stride: 1},
			wantOK: true,
		},
		{
			name:   "inside",
			x:      16,
			y:      100,
			w:      32,
			h:      20,
			want:   window{x: 16, y: 100, xEnd: 47, yEnd: 119, stride: 4},
			wantOK: true,
		},
		{
			name:   "exact fit",
			w:      128,
			h:      296,
			want:   window{xEnd: 127, yEnd: 295, stride: 16},
			wantOK: true,
		},
		{
			name:   "clipped right and bottom",
			x:      120,
			y:      290,
			w:      64,
			h:      64,
			want:   window{x: 120, y: 290, xEnd: 127, yEnd: 295, stride: 8},
			wantOK: true,
		},
		{
			name:   "huge extent",
			x:      8,
			y:      1,
			w:      math.MaxInt,
			h:      math.MaxInt,
			want:   window{x: 8, y: 1, xEnd: 127, yEnd: 295, stride: (math.MaxInt &^ 7) / 8},
			wantOK: true,
		},
		{name: "negative x", x: -8, w: 8, h: 8},
		{name: "negative y", y: -1, w: 8, h: 8},
		{name: "negative width", w: -8, h: 8},
		{name: "negative height", w: 8, h: -8},
		{name: "narrower than a byte", w: 7, h: 8},
		{name: "zero height", w: 8},
		{name: "right of panel", x: 128, w: 8, h: 8},
		{name: "below panel", y: 296, w: 8, h: 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := clipWindow(128, 296, tc.x, tc.y, tc.w, tc.h)

			if ok != tc.wantOK {
				t.Errorf("clipWindow() ok = %v, want %v", ok, tc.wantOK)
			}

			if diff := cmp.Diff(got, tc.want, cmp.AllowUnexported(window{})); diff != "" {
				t.Errorf("clipWindow() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestClipWindowBounds(t *testing.T) {
	const width, height = 128, 296

	for x := 0; x < 2*width; x += 3 {
		for w := 0; w < 2*width; w += 5 {
			for _, y := range []int{0, 7, 150, 295, 400} {
				for _, h := range []int{0, 1, 146, 300} {
					win, ok := clipWindow(width, height, x, y, w, h)
					if !ok {
						continue
					}

					if win.x%8 != 0 || win.stride*8 != w&^7 {
						t.Fatalf("clipWindow(%d, %d, %d, %d) = %+v, not byte aligned", x, y, w, h, win)
					}
					if (win.xEnd+1)%8 != 0 {
						t.Fatalf("clipWindow(%d, %d, %d, %d) = %+v, end not byte aligned", x, y, w, h, win)
					}
					if win.xEnd > width-1 || win.yEnd > height-1 {
						t.Fatalf("clipWindow(%d, %d, %d, %d) = %+v, outside panel", x, y, w, h, win)
					}
					if win.cols() > win.stride || win.cols() <= 0 || win.rows() <= 0 {
						t.Fatalf("clipWindow(%d, %d, %d, %d) = %+v, invalid extent", x, y, w, h, win)
					}
				}
			}
		}
	}
}

func TestWindowNeed(t *testing.T) {
	for _, tc := range []struct {
		w    window
		want int
	}{
		{w: fullWindow(128, 296), want: 16 * 296},
		{w: window{x: 120, y: 0, xEnd: 127, yEnd: 2, stride: 8}, want: 2*8 + 1},
		{w: window{xEnd: 7, yEnd: 0, stride: 1}, want: 1},
		{w: window{xEnd: 7, yEnd: 295, stride: math.MaxInt / 8}, want: math.MaxInt},
	} {
		if got := tc.w.need(); got != tc.want {
			t.Errorf("%+v.need() = %d, want %d", tc.w, got, tc.want)
		}
	}
}
