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
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Opts is the build time configuration of a display. Every field has a
// usable default; the zero value of the flag fields matches the chip's
// documented power on state.
type Opts struct {
	// Cols is the number of visible character cells per row.
	Cols int
	// Lines is the row configuration of the panel.
	Lines Lines
	// Font is the character cell size. Font5x10 is only valid with OneLine.
	Font Font
	// Display, Cursor and Blink are the initial display control flags.
	Display bool
	Cursor  bool
	Blink   bool
	// Direction is the initial entry mode direction.
	Direction Direction
	// Autoscroll is the initial entry mode shift flag.
	Autoscroll bool
	// Backlight optionally controls the panel backlight and should implement
	// display.DisplayBacklight or display.DisplayRGBBacklight. Leave nil if
	// the backlight is hard wired or driven by the transport.
	Backlight any
}

// DefaultOpts is the configuration of a common 16x2 panel.
var DefaultOpts = Opts{
	Cols:      16,
	Lines:     TwoLines,
	Font:      Font5x8,
	Display:   true,
	Direction: LeftToRight,
}

func (o *Opts) validate() error {
	// Each line's DDRAM window is 0x40 addresses; four line panels split the
	// windows in half.
	maxCols := 64
	if o.Lines == FourLines {
		maxCols = 32
	}
	if o.Cols < 1 || o.Cols > maxCols {
		return fmt.Errorf("%s: %d columns out of range", packageName, o.Cols)
	}
	switch o.Lines {
	case OneLine, TwoLines, FourLines:
	default:
		return fmt.Errorf("%s: invalid line count %d", packageName, int(o.Lines))
	}
	if o.Font == Font5x10 && o.Lines != OneLine {
		// The chip cannot raster a 10 dot glyph with more than one display
		// line. Rejecting here beats coercing to 5x8, which would hide the
		// configuration bug until the panel shows the wrong glyphs.
		return fmt.Errorf("%s: 5x10 font requires a one line display", packageName)
	}
	return nil
}

// New runs the power on initialization over t and returns a ready Dev. opts
// may be nil for DefaultOpts. The bus width is taken from the transport; it
// was fixed by the wiring, not by configuration.
func New(t Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	d := &Dev{
		tr:      t,
		rows:    int(opts.Lines),
		cols:    opts.Cols,
		offsets: rowOffsets(byte(opts.Cols)),
		fn: functionSet{
			eightBit: t.BusWidth() == 8,
			lines:    opts.Lines,
			font:     opts.Font,
		},
		ctrl: displayControl{display: opts.Display, cursor: opts.Cursor, blink: opts.Blink},
		mode: entryMode{direction: opts.Direction, autoscroll: opts.Autoscroll},
	}
	switch bl := opts.Backlight.(type) {
	case display.DisplayBacklight:
		d.blMono = bl
	case display.DisplayRGBBacklight:
		d.blRGB = bl
	}
	if bl, ok := t.(display.DisplayBacklight); ok && d.blMono == nil && d.blRGB == nil {
		d.blMono = bl
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init is the datasheet power on sequence, the one place its ordering is
// enforced. In 4 bit wiring the chip needs three bare 0x3 nibbles to
// resynchronize its bus mode detection, then a single 0x2 nibble to drop to
// 4 bit framing; only after that does normal framing hold. In 8 bit wiring
// the function set instruction itself is repeated instead.
func (d *Dev) init() error {
	log.Debugf("%s: init %s, %d lines, function set %#02x", packageName, d.tr, d.rows, d.fn.byte())
	time.Sleep(50 * time.Millisecond)
	if d.fn.eightBit {
		for _, wait := range []time.Duration{4500 * time.Microsecond, 150 * time.Microsecond} {
			if err := d.command(d.fn.byte()); err != nil {
				return err
			}
			time.Sleep(wait)
		}
	} else {
		for _, wait := range []time.Duration{4500 * time.Microsecond, 4500 * time.Microsecond, 150 * time.Microsecond} {
			if err := d.tr.SendNibble(0x03); err != nil {
				return err
			}
			time.Sleep(wait)
		}
		if err := d.tr.SendNibble(0x02); err != nil {
			return err
		}
	}
	if err := d.command(d.fn.byte()); err != nil {
		return err
	}
	if err := d.command(d.ctrl.byte()); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.command(d.mode.byte()); err != nil {
		return err
	}
	if d.blMono != nil || d.blRGB != nil {
		_ = d.Backlight(0xff)
	}
	return nil
}

// NewParallel wires a display directly to GPIO lines. data carries D4..D7
// (or D0..D7), rs and e the register select and enable lines. rw and
// backlight may be nil.
func NewParallel(data gpio.Group, rs, e, rw, backlight gpio.PinOut, opts *Opts) (*Dev, error) {
	t, err := NewParallelTransport(data, rs, e, rw)
	if err != nil {
		return nil, err
	}
	if backlight != nil {
		opts = withBacklight(opts, backlight)
	}
	return New(t, opts)
}

// NewI2C wires a display through a PCF8574 style backpack on bus at addr.
// Common backpacks answer at 0x27 or 0x3f.
func NewI2C(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	t, err := NewI2CExpanderTransport(bus, addr)
	if err != nil {
		return nil, err
	}
	return New(t, opts)
}

// NewSharedI2C is NewI2C for a bus carrying several displays, or other
// devices whose multi write sequences must not interleave with a strobe.
// Give every display on the bus the same lock.
func NewSharedI2C(bus i2c.Bus, addr uint16, lock sync.Locker, opts *Opts) (*Dev, error) {
	t, err := NewI2CExpanderTransport(bus, addr)
	if err != nil {
		return nil, err
	}
	t.Shared = lock
	return New(t, opts)
}

// withBacklight copies opts with bl filled in, leaving the caller's Opts and
// DefaultOpts untouched.
func withBacklight(opts *Opts, bl gpio.PinOut) *Opts {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Backlight == nil {
		o.Backlight = NewBacklight(bl)
	}
	return &o
}
