// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

// HD44780 instruction bytes. The set bit selects the instruction; operand
// bits are OR-ed in below it.
const (
	cmdClearDisplay   byte = 0x01
	cmdReturnHome     byte = 0x02
	cmdEntryModeSet   byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdCursorShift    byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAMAddr   byte = 0x40
	cmdSetDDRAMAddr   byte = 0x80
)

// cmdCursorShift operand bits.
const (
	shiftDisplay byte = 0x08
	shiftRight   byte = 0x04
)

// cmdFunctionSet operand bits.
const (
	funcEightBit byte = 0x10
	funcTwoLine  byte = 0x08
	func5x10     byte = 0x04
)

// cmdDisplayControl operand bits.
const (
	ctrlDisplayOn byte = 0x04
	ctrlCursorOn  byte = 0x02
	ctrlBlinkOn   byte = 0x01
)

// cmdEntryModeSet operand bits.
const (
	entryLeftToRight byte = 0x02
	entryAutoscroll  byte = 0x01
)

// Lines is the row configuration of the panel.
type Lines int

const (
	// OneLine is a single row panel.
	OneLine Lines = 1
	// TwoLines is a two row panel, by far the most common.
	TwoLines Lines = 2
	// FourLines is a four row panel. The chip itself only knows one and two
	// line modes; a four row panel is a two line panel with rows 2 and 3
	// mapped past the end of rows 0 and 1 in DDRAM.
	FourLines Lines = 4
)

// Font is the character cell size. Font5x10 exists only on some one line
// panels; the chip cannot raster 10 dot glyphs in two line mode.
type Font int

const (
	Font5x8 Font = iota
	Font5x10
)

// Direction is the way the address counter moves after each data write.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// ScrollDirection is the direction for Dev.Scroll.
type ScrollDirection int

const (
	ScrollLeft ScrollDirection = iota
	ScrollRight
)

// The chip's function set, display control and entry mode registers are
// write only. Each is mirrored host side as a value that is replaced
// wholesale on any change and resent whole; the chip has no per-bit writes.
// The shadow is only updated after the instruction was accepted by the
// transport, so it always equals the last value on the chip.

type functionSet struct {
	eightBit bool
	lines    Lines
	font     Font
}

func (f functionSet) byte() byte {
	v := cmdFunctionSet
	if f.eightBit {
		v |= funcEightBit
	}
	if f.lines != OneLine {
		v |= funcTwoLine
	}
	if f.font == Font5x10 {
		v |= func5x10
	}
	return v
}

type displayControl struct {
	display bool
	cursor  bool
	blink   bool
}

func (c displayControl) byte() byte {
	v := cmdDisplayControl
	if c.display {
		v |= ctrlDisplayOn
	}
	if c.cursor {
		v |= ctrlCursorOn
	}
	if c.blink {
		v |= ctrlBlinkOn
	}
	return v
}

type entryMode struct {
	direction  Direction
	autoscroll bool
}

func (m entryMode) byte() byte {
	v := cmdEntryModeSet
	if m.direction == LeftToRight {
		v |= entryLeftToRight
	}
	if m.autoscroll {
		v |= entryAutoscroll
	}
	return v
}

// rowOffsets is the DDRAM base address of each row. Row 1 always starts at
// 0x40; on four row panels rows 2 and 3 continue cols cells past rows 0
// and 1.
func rowOffsets(cols byte) [4]byte {
	return [4]byte{0x00, 0x40, cols, 0x40 + cols}
}
