// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd2in9badge

// Commands
const (
	driverOutputControl            byte = 0x01
	gateDrivingVoltageControl      byte = 0x03
	sourceDrivingVoltageControl    byte = 0x04
	gateScanStartPosition          byte = 0x0F
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	masterActivation               byte = 0x20
	displayUpdateControl2          byte = 0x22
	writeRAM                       byte = 0x24
	writeVcomRegister              byte = 0x2C
	writeLutRegister               byte = 0x32
	setDummyLinePeriod             byte = 0x3A
	setGateTime                    byte = 0x3B
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
	setAnalogBlockControl          byte = 0x74
	setDigitalBlockControl         byte = 0x7E
)

// Flags for the displayUpdateControl2 command, enabled in this order during
// an update.
const (
	displayUpdateDisableClock byte = 1 << iota
	displayUpdateDisableAnalog
	displayUpdatePattern
	displayUpdateInitial
	displayUpdateLoadLUT
	displayUpdateLoadTemperature
	displayUpdateEnableAnalog
	displayUpdateEnableClock
)

const (
	// Y increment, X increment; address counter is updated in X direction.
	dataEntryXIncYInc byte = 0b011

	gateDrivingVoltage20V byte = 0x17

	sourceDrivingVoltageVSH1_15V   byte = 0x41
	sourceDrivingVoltageVSH2_0V    byte = 0x00
	sourceDrivingVoltageVSL_neg15V byte = 0x32

	// 26 dummy lines per gate.
	dummyLinePeriod byte = 26
	// 62us per line.
	gateLineWidth byte = 0x08
)

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
}

// initDisplay sends the software reset and the register configuration. The
// order follows the controller's register dependencies.
func initDisplay(ctrl controller) {
	ctrl.sendCommand(swReset)

	ctrl.sendCommand(setAnalogBlockControl)
	ctrl.sendData([]byte{0x54})

	ctrl.sendCommand(setDigitalBlockControl)
	ctrl.sendData([]byte{0x3B})

	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{dataEntryXIncYInc})

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendData([]byte{0x01})

	ctrl.sendCommand(writeVcomRegister)
	ctrl.sendData([]byte{0x26})

	ctrl.sendCommand(gateDrivingVoltageControl)
	ctrl.sendData([]byte{gateDrivingVoltage20V})

	ctrl.sendCommand(sourceDrivingVoltageControl)
	ctrl.sendData([]byte{
		sourceDrivingVoltageVSH1_15V,
		sourceDrivingVoltageVSH2_0V,
		sourceDrivingVoltageVSL_neg15V,
	})
}

func setLut(ctrl controller, lut LUT) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut.register())
}

// setMemoryArea configures the RAM window. Horizontal positions are in
// pixels and sent as byte columns, vertical positions are 16 bit rows.
func setMemoryArea(ctrl controller, xStart, yStart, xEnd, yEnd int) {
	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{byte(xStart >> 3), byte(xEnd >> 3)})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData([]byte{
		byte(yStart), byte(yStart >> 8),
		byte(yEnd), byte(yEnd >> 8),
	})
}

// setMemoryPointer positions the RAM address counter. x must be inside the
// window set by setMemoryArea.
func setMemoryPointer(ctrl controller, x, y int) {
	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData([]byte{byte(x >> 3)})

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData([]byte{byte(y), byte(y >> 8)})
}

// writeWindow programs the window and streams the visible part of buf.
func writeWindow(ctrl controller, w window, buf []byte) {
	setMemoryArea(ctrl, w.x, w.y, w.xEnd, w.yEnd)
	setMemoryPointer(ctrl, w.x, w.y)

	ctrl.sendCommand(writeRAM)

	cols := w.cols()
	for row := 0; row < w.rows(); row++ {
		start := row * w.stride
		ctrl.sendData(buf[start : start+cols])
	}
}

// writeFullFrame loads lut and streams data over the whole panel.
func writeFullFrame(ctrl controller, width, height int, lut LUT, data []byte) {
	setLut(ctrl, lut)
	writeWindow(ctrl, fullWindow(width, height), data)
}

func displayFrame(ctrl controller, height int) {
	ctrl.sendCommand(setDummyLinePeriod)
	ctrl.sendData([]byte{dummyLinePeriod})

	ctrl.sendCommand(setGateTime)
	ctrl.sendData([]byte{gateLineWidth})

	// Number of gate lines to update.
	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{byte(height - 1), byte((height - 1) >> 8), 0x00})

	ctrl.sendCommand(gateScanStartPosition)
	ctrl.sendData([]byte{0x00, 0x00})

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendData([]byte{
		displayUpdateEnableClock |
			displayUpdateEnableAnalog |
			displayUpdatePattern |
			displayUpdateDisableAnalog |
			displayUpdateDisableClock,
	})

	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

func deepSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.waitUntilIdle()
}
