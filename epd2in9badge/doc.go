// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd2in9badge controls the 2.9 inch 128x296 e-paper panel used on
// conference badges (DEPG0290B01, SSD1675-class controller).
//
// The driver is a thin sequencer: every operation is a fixed series of
// command and data bytes on the SPI bus. Hardware access goes through the IO
// interface; SPI implements it on top of periph.io and the epdtest package
// provides a simulated panel.
//
// # Frame memory
//
// The controller keeps two RAM banks. DisplayFrame shows the bank written
// last and points subsequent writes at the other one, so callers always
// write a frame and then display it, in pairs.
//
// Product page: https://www.waveshare.com/wiki/2.9inch_e-Paper_Module
package epd2in9badge
