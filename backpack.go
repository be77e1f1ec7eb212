// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/mcp23xxx"
	"periph.io/x/devices/v3/nxp74hc595"
	"periph.io/x/devices/v3/pcf857x"
)

// Adafruit I2C/SPI backpack pin numbering on the MCP23008 side.
//
// https://www.adafruit.com/product/292
const (
	afD4        = 3
	afD5        = 4
	afD6        = 5
	afD7        = 6
	afRS        = 1
	afEnable    = 2
	afBacklight = 7
)

// PCF8574 backpack pin numbering, for driving the backpack through the
// pcf857x GPIO driver instead of the raw latch transport in expander.go.
const (
	pcfD4        = 4
	pcfD5        = 5
	pcfD6        = 6
	pcfD7        = 7
	pcfRS        = 0
	pcfRW        = 1
	pcfEnable    = 2
	pcfBacklight = 3
)

// NewAdafruitI2CBackpack builds a display behind the MCP23008 I/O expander
// of the Adafruit I2C/SPI LCD backpack.
func NewAdafruitI2CBackpack(bus i2c.Bus, address uint16, opts *Opts) (*Dev, error) {
	mcp, err := mcp23xxx.NewI2C(bus, mcp23xxx.MCP23008, address)
	if err != nil {
		return nil, wrap(err)
	}
	gr := *mcp.Group(0, []int{afD4, afD5, afD6, afD7, afRS, afEnable, afBacklight})
	rs, _ := gr.ByOffset(4).(gpio.PinOut)
	e, _ := gr.ByOffset(5).(gpio.PinOut)
	bl, _ := gr.ByOffset(6).(gpio.PinOut)
	return NewParallel(gr, rs, e, nil, bl, opts)
}

// NewAdafruitSPIBackpack builds a display behind the 74HC595 shift register
// on the SPI side of the same backpack. The SPI side carries the same
// signals as the I2C side but in reverse bit order.
func NewAdafruitSPIBackpack(conn spi.Conn, opts *Opts) (*Dev, error) {
	chip, err := nxp74hc595.New(conn)
	if err != nil {
		return nil, wrap(err)
	}
	gr, err := chip.Group(afD7, afD6, afD5, afD4)
	if err != nil {
		return nil, wrap(err)
	}
	return NewParallel(gr, chip.Pins[afRS], chip.Pins[afEnable], nil, chip.Pins[afBacklight], opts)
}

// NewPCF857xBackpack builds a display over a PCF857x expander using its pin
// group driver. Each line change is its own bus write here; NewI2C latches a
// whole nibble per write and is the faster path to the same hardware. Use
// this one when the expander is already shared with other consumers through
// the pcf857x package.
func NewPCF857xBackpack(bus i2c.Bus, address uint16, opts *Opts) (*Dev, error) {
	pcf, err := pcf857x.New(bus, address, pcf857x.PCF8574)
	if err != nil {
		return nil, wrap(err)
	}
	// R/W is wired through on this backpack; park it low.
	if err := pcf.Pins[pcfRW].Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	gr, err := pcf.Group(pcfD4, pcfD5, pcfD6, pcfD7, pcfRS, pcfEnable, pcfBacklight)
	if err != nil {
		return nil, wrap(err)
	}
	pins := gr.Pins()
	rs, _ := pins[4].(gpio.PinOut)
	e, _ := pins[5].(gpio.PinOut)
	bl, _ := pins[6].(gpio.PinOut)
	return NewParallel(gr, rs, e, nil, bl, opts)
}
