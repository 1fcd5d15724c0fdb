// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epaper is a container for e-paper display drivers.
//
// epd2in9badge drives the 2.9" 128x296 badge panel. Its epdtest package
// simulates the controller for tests and for the command line tool in
// cmd/epd2in9badge.
package epaper
