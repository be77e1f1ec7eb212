// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Parallel drives the controller bus directly: a gpio.Group for the data
// lines plus discrete register select and enable pins. With four data lines
// each byte goes out as two nibble pulses, high nibble first, register
// select held constant across both; with eight lines it goes out in one
// pulse.
type Parallel struct {
	data  gpio.Group
	rs    gpio.PinOut
	e     gpio.PinOut
	rw    gpio.PinOut
	width int
	sleep func(time.Duration)
}

// NewParallelTransport wires a transport over discrete output lines. The
// first 4 or 8 pins of data must be the display's D4..D7 (or D0..D7 for a
// full bus); 8 or more pins in the group selects 8 bit framing.
//
// rw may be nil if the display's R/W line is strapped low. When given it is
// parked low once; this driver never reads from the chip.
func NewParallelTransport(data gpio.Group, rs, e, rw gpio.PinOut) (*Parallel, error) {
	n := len(data.Pins())
	if n < 4 {
		return nil, fmt.Errorf("%s: parallel transport needs at least 4 data pins, got %d", packageName, n)
	}
	width := 4
	if n >= 8 {
		width = 8
	}
	p := &Parallel{data: data, rs: rs, e: e, rw: rw, width: width, sleep: time.Sleep}
	if err := p.e.Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	if p.rw != nil {
		if err := p.rw.Out(gpio.Low); err != nil {
			return nil, wrap(err)
		}
	}
	return p, nil
}

func (p *Parallel) BusWidth() int {
	return p.width
}

func (p *Parallel) Send(value byte, data bool) error {
	if err := p.rs.Out(gpio.Level(data)); err != nil {
		return wrap(err)
	}
	var err error
	if p.width == 4 {
		err = p.pulse(gpio.GPIOValue(value>>4), 0x0f)
		if err == nil {
			err = p.pulse(gpio.GPIOValue(value&0x0f), 0x0f)
		}
	} else {
		err = p.pulse(gpio.GPIOValue(value), 0xff)
	}
	if err != nil {
		return err
	}
	p.sleep(settleTime(value, data))
	return nil
}

// SendNibble pulses a bare nibble with register select low. On an eight bit
// bus the nibble is driven on D4..D7, which is where the chip's power on
// mode detection looks for it.
func (p *Parallel) SendNibble(value byte) error {
	if err := p.rs.Out(gpio.Low); err != nil {
		return wrap(err)
	}
	if p.width == 4 {
		return p.pulse(gpio.GPIOValue(value&0x0f), 0x0f)
	}
	return p.pulse(gpio.GPIOValue(value&0x0f)<<4, 0xff)
}

// pulse latches value onto the data lines with one enable strobe.
func (p *Parallel) pulse(value, mask gpio.GPIOValue) error {
	if err := p.data.Out(value, mask); err != nil {
		return wrap(err)
	}
	if err := p.e.Out(gpio.High); err != nil {
		return wrap(err)
	}
	p.sleep(enablePulse)
	return wrap(p.e.Out(gpio.Low))
}

func (p *Parallel) Halt() error {
	return p.data.Halt()
}

func (p *Parallel) String() string {
	return fmt.Sprintf("parallel%d{%s}", p.width, p.data)
}

var _ Transport = &Parallel{}
