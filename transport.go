// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

import "time"

// Transport moves one instruction or data byte onto the controller bus. A
// Dev owns its Transport exclusively.
//
// Send frames value per the transport's bus width and applies the settle
// delay from settleTime before returning; callers never add their own
// execution delays.
//
// SendNibble pulses one bare nibble with register select low. It exists only
// for the power on sequence, where the chip's bus mode detection has to be
// walked through raw high nibbles before normal framing holds. No settle
// delay is applied; the initialization code owns the waits between pulses.
type Transport interface {
	Send(value byte, data bool) error
	SendNibble(value byte) error
	// BusWidth returns the number of data lines driven per pulse, 4 or 8.
	BusWidth() int
	// Halt releases the underlying lines.
	Halt() error
	String() string
}

// Settle times per instruction class. Clear and home keep the chip busy for
// over a millisecond while it walks DDRAM; everything else completes in tens
// of microseconds.
const (
	settleLong  = 2 * time.Millisecond
	settleShort = 50 * time.Microsecond

	// Minimum enable pulse width. The datasheet asks for 450ns; 2µs keeps
	// slow level shifters happy.
	enablePulse = 2 * time.Microsecond
)

// settleTime returns the delay a transport must apply after sending value.
// Only clear (0x01) and home (0x02, don't-care low bit) need the long one.
func settleTime(value byte, data bool) time.Duration {
	if !data && (value == cmdClearDisplay || value&^0x01 == cmdReturnHome) {
		return settleLong
	}
	return settleShort
}
