// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package aglcd controls HD44780 family character LCD controllers.
//
// The chip can be wired two ways, and both present the same Dev:
//
//   - Directly on GPIO lines, either 4 data lines (each byte framed as two
//     nibble pulses) or 8 data lines, plus register select and enable. See
//     NewParallel.
//   - Through a PCF8574 style I²C backpack, which latches the 4 data lines
//     and the control lines behind a single bus address. See NewI2C, and
//     NewSharedI2C when other devices share the bus.
//
// Constructors for the Adafruit I2C/SPI backpack (MCP23008 and 74HC595) are
// in backpack.go.
//
// The driver is write only: it never reads the busy flag, because most
// backpacks leave R/W strapped low. Instead every transfer is followed by the
// worst case execution delay from the datasheet.
//
// Implements periph.io/x/conn/display.TextDisplay.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package aglcd
