// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

const packageName = "aglcd"

// ErrNotImplemented is returned for display.TextDisplay capabilities this
// chip does not have.
var ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// Dev is a connected HD44780 controller. Get one from New or one of the
// backpack constructors; the zero value is not usable, the chip demands an
// ordered power on sequence before it accepts anything else.
//
// Implements display.TextDisplay. The native methods below are 0-based; the
// TextDisplay surface (MoveTo, MinRow, MinCol) is 1-based like the other
// periph character drivers.
type Dev struct {
	tr      Transport
	rows    int
	cols    int
	offsets [4]byte

	fn     functionSet
	ctrl   displayControl
	mode   entryMode
	blMono display.DisplayBacklight
	blRGB  display.DisplayRGBBacklight
}

func (d *Dev) command(value byte) error {
	return d.tr.Send(value, false)
}

// Clear wipes DDRAM and returns the cursor to row 0, col 0.
func (d *Dev) Clear() error {
	return d.command(cmdClearDisplay)
}

// Home returns the cursor and any display shift to the origin without
// touching DDRAM.
func (d *Dev) Home() error {
	return d.command(cmdReturnHome)
}

// SetPosition moves the cursor to the 0-based row and col. Out of range
// positions are rejected, not clamped; clamping would mask addressing bugs
// as corrupted output.
func (d *Dev) SetPosition(row, col int) error {
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return fmt.Errorf("%s: position (%d,%d) out of range on %dx%d display", packageName, row, col, d.rows, d.cols)
	}
	return d.command(cmdSetDDRAMAddr | (d.offsets[row] + byte(col)))
}

// WriteByte puts one character code at the current address. The address
// counter then advances per the entry mode; wrapping at line ends is the
// chip's behavior, not computed host side.
//
// Codes 0-7 select the CGRAM glyphs loaded with CreateChar.
func (d *Dev) WriteByte(b byte) error {
	return d.tr.Send(b, true)
}

// Write puts p on the display one byte per character cell. Each byte costs a
// full instruction round trip; there is no batching on this bus.
func (d *Dev) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := d.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString puts text on the display at the current position.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

func (d *Dev) setControl(c displayControl) error {
	if err := d.command(c.byte()); err != nil {
		return err
	}
	d.ctrl = c
	return nil
}

func (d *Dev) setMode(m entryMode) error {
	if err := d.command(m.byte()); err != nil {
		return err
	}
	d.mode = m
	return nil
}

// Display implements display.TextDisplay on top of SetDisplay.
func (d *Dev) Display(on bool) error {
	return d.SetDisplay(on)
}

// SetDisplay turns the display output on or off. DDRAM and the other control
// flags are preserved.
func (d *Dev) SetDisplay(on bool) error {
	c := d.ctrl
	c.display = on
	return d.setControl(c)
}

// SetCursor shows or hides the underline cursor.
func (d *Dev) SetCursor(on bool) error {
	c := d.ctrl
	c.cursor = on
	return d.setControl(c)
}

// SetBlink turns cursor cell blinking on or off.
func (d *Dev) SetBlink(on bool) error {
	c := d.ctrl
	c.blink = on
	return d.setControl(c)
}

// SetDirection sets which way text advances on each write.
func (d *Dev) SetDirection(dir Direction) error {
	m := d.mode
	m.direction = dir
	return d.setMode(m)
}

// SetAutoscroll makes each write shift the display instead of the cursor
// when enabled, keeping the write position on the same visible cell.
func (d *Dev) SetAutoscroll(on bool) error {
	m := d.mode
	m.autoscroll = on
	return d.setMode(m)
}

// Scroll shifts the visible window count cells without touching DDRAM. A
// negative count is rejected; callers flip dir instead. The
// host's cursor bookkeeping is not adjusted: after a scroll the logical
// address and the visible position diverge, and a following SetPosition
// addresses DDRAM, not the visible cell.
func (d *Dev) Scroll(dir ScrollDirection, count int) error {
	if count < 0 {
		return fmt.Errorf("%s: negative scroll count %d", packageName, count)
	}
	v := cmdCursorShift | shiftDisplay
	if dir == ScrollRight {
		v |= shiftRight
	}
	for i := 0; i < count; i++ {
		if err := d.command(v); err != nil {
			return err
		}
	}
	return nil
}

// CreateChar loads a glyph bitmap into CGRAM slot 0-7, five bits per row.
// The glyph shows at character codes slot and slot+8. CGRAM is volatile chip
// memory; the bitmap survives until overwritten or power off.
//
// Loading leaves the chip's address counter in CGRAM: issue SetPosition or
// Home before the next data write, or the bytes land in the glyph.
func (d *Dev) CreateChar(slot int, bitmap [8]byte) error {
	if slot < 0 || slot > 7 {
		return fmt.Errorf("%s: CGRAM slot %d out of range 0-7", packageName, slot)
	}
	if err := d.command(cmdSetCGRAMAddr | byte(slot)<<3); err != nil {
		return err
	}
	for _, b := range bitmap {
		if err := d.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

// Cols returns the number of columns the display supports.
func (d *Dev) Cols() int {
	return d.cols
}

// Rows returns the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.rows
}

// MinCol returns the min column position for MoveTo.
func (d *Dev) MinCol() int {
	return 1
}

// MinRow returns the min row position for MoveTo.
func (d *Dev) MinRow() int {
	return 1
}

// MoveTo moves the cursor to a 1-based row and column.
func (d *Dev) MoveTo(row, col int) error {
	if row < d.MinRow() || row > d.rows || col < d.MinCol() || col > d.cols {
		return fmt.Errorf("%s: MoveTo(%d,%d) out of range", packageName, row, col)
	}
	return d.SetPosition(row-1, col-1)
}

// Move shifts the cursor one cell without writing.
func (d *Dev) Move(dir display.CursorDirection) error {
	v := cmdCursorShift
	switch dir {
	case display.Backward:
	case display.Forward:
		v |= shiftRight
	default:
		return ErrNotImplemented
	}
	return d.command(v)
}

// Cursor sets the cursor style for display.TextDisplay callers. Modes are
// applied in order over a cleared cursor/blink state.
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	c := d.ctrl
	c.cursor = false
	c.blink = false
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
		case display.CursorUnderline:
			c.cursor = true
		case display.CursorBlink, display.CursorBlock:
			c.cursor = true
			c.blink = true
		default:
			return fmt.Errorf("%s: unexpected cursor mode %d", packageName, mode)
		}
	}
	return d.setControl(c)
}

// AutoScroll implements display.TextDisplay on top of the chip's entry mode
// shift flag.
func (d *Dev) AutoScroll(enabled bool) error {
	return d.SetAutoscroll(enabled)
}

// Backlight sets the backlight intensity. Wirings without a dimmer treat any
// non zero intensity as on.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if d.blMono != nil {
		return d.blMono.Backlight(intensity)
	} else if d.blRGB != nil {
		return d.blRGB.RGBBacklight(intensity, intensity, intensity)
	}
	return ErrNotImplemented
}

// RGBBacklight sets the backlight color on units that have one.
func (d *Dev) RGBBacklight(red, green, blue display.Intensity) error {
	if d.blRGB != nil {
		return d.blRGB.RGBBacklight(red, green, blue)
	} else if d.blMono != nil {
		return d.blMono.Backlight(red | green | blue)
	}
	return ErrNotImplemented
}

// Halt clears the display and turns the output and backlight off.
func (d *Dev) Halt() error {
	_ = d.Clear()
	_ = d.Backlight(0)
	_ = d.SetDisplay(false)
	return d.tr.Halt()
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s, %dx%d}", packageName, d.tr, d.rows, d.cols)
}

var _ conn.Resource = &Dev{}
var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ display.DisplayRGBBacklight = &Dev{}
