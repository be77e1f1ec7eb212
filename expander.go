// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

// PCF8574 backpack latch layout. The expander's eight outputs drive the bus
// through this fixed wiring on every backpack sold as LCD1602/LCD2004.
const (
	latchRS        byte = 0x01
	latchRW        byte = 0x02
	latchE         byte = 0x04
	latchBacklight byte = 0x08
	// D4..D7 occupy bits 4-7.
)

// I2CExpander frames bytes through a PCF8574 style I²C backpack: eight
// output lines behind one bus address, four of them wired to D4..D7. The
// framing is always 4 bit, the expander has no lines left for D0..D3.
//
// One Send is several bus writes. The internal mutex keeps those writes
// together when a transport is used from more than one goroutine; Shared
// extends the exclusion across multiple displays on one physical bus, where
// interleaved strobes would latch garbage on both.
type I2CExpander struct {
	// Shared, when non nil, is held for the duration of each Send. Give
	// every display on the same bus the same lock.
	Shared sync.Locker

	mu        sync.Mutex
	d         *i2c.Dev
	backlight bool
	sleep     func(time.Duration)
}

// NewI2CExpanderTransport returns a transport over a PCF8574 backpack at
// addr. Both the PCF8574 (0x20-0x27) and PCF8574A (0x38-0x3f) address ranges
// are accepted. The backlight line starts high.
func NewI2CExpanderTransport(bus i2c.Bus, addr uint16) (*I2CExpander, error) {
	switch {
	case addr >= 0x20 && addr <= 0x27: // PCF8574
	case addr >= 0x38 && addr <= 0x3f: // PCF8574A
	default:
		return nil, fmt.Errorf("%s: %#x is not a pcf8574 address", packageName, addr)
	}
	return &I2CExpander{
		d:         &i2c.Dev{Bus: bus, Addr: addr},
		backlight: true,
		sleep:     time.Sleep,
	}, nil
}

func (t *I2CExpander) BusWidth() int {
	return 4
}

func (t *I2CExpander) Send(value byte, data bool) error {
	t.lock()
	defer t.unlock()
	var rs byte
	if data {
		rs = latchRS
	}
	if err := t.strobe(value&0xf0 | rs); err != nil {
		return err
	}
	if err := t.strobe(value<<4 | rs); err != nil {
		return err
	}
	t.sleep(settleTime(value, data))
	return nil
}

func (t *I2CExpander) SendNibble(value byte) error {
	t.lock()
	defer t.unlock()
	return t.strobe(value << 4)
}

// strobe latches one nibble: data and control lines with enable high, hold,
// then the same latch with enable low.
func (t *I2CExpander) strobe(latch byte) error {
	if t.backlight {
		latch |= latchBacklight
	}
	if err := t.write(latch | latchE); err != nil {
		return err
	}
	t.sleep(enablePulse)
	return t.write(latch &^ latchE)
}

func (t *I2CExpander) write(latch byte) error {
	if err := t.d.Tx([]byte{latch}, nil); err != nil {
		// A failed write can leave the chip mid-strobe; retrying blindly
		// won't unlatch it, so propagate and let the caller re-init.
		log.Debugf("%s: expander write %#02x failed: %v", packageName, latch, err)
		return wrap(err)
	}
	return nil
}

func (t *I2CExpander) lock() {
	t.mu.Lock()
	if t.Shared != nil {
		t.Shared.Lock()
	}
}

func (t *I2CExpander) unlock() {
	if t.Shared != nil {
		t.Shared.Unlock()
	}
	t.mu.Unlock()
}

// Backlight drives the backpack's backlight line. Any non zero intensity is
// on; the line has no dimming.
func (t *I2CExpander) Backlight(intensity display.Intensity) error {
	t.lock()
	defer t.unlock()
	t.backlight = intensity > 0
	var latch byte
	if t.backlight {
		latch = latchBacklight
	}
	return t.write(latch)
}

func (t *I2CExpander) Halt() error {
	return t.Backlight(0)
}

func (t *I2CExpander) String() string {
	return fmt.Sprintf("pcf8574{%s}", t.d)
}

var _ Transport = &I2CExpander{}
var _ display.DisplayBacklight = &I2CExpander{}
