// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

const testAddr uint16 = 0x27

// latchOps turns a stream of expected latch bytes into playback ops.
func latchOps(latches ...byte) []i2ctest.IO {
	ops := make([]i2ctest.IO, len(latches))
	for i, l := range latches {
		ops[i] = i2ctest.IO{Addr: testAddr, W: []byte{l}}
	}
	return ops
}

// getExpander returns a transport over a playback bus with sleeps captured
// instead of slept.
func getExpander(t *testing.T, ops []i2ctest.IO) (*I2CExpander, *[]time.Duration) {
	t.Helper()
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	tr, err := NewI2CExpanderTransport(bus, testAddr)
	if err != nil {
		t.Fatal(err)
	}
	var sleeps []time.Duration
	tr.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return tr, &sleeps
}

func TestExpanderSendData(t *testing.T) {
	// 0xa5 as data, backlight on: high nibble with RS and backlight bits,
	// enable high then low, then the same for the low nibble.
	tr, sleeps := getExpander(t, latchOps(0xad, 0xa9, 0x5d, 0x59))
	if tr.BusWidth() != 4 {
		t.Fatalf("BusWidth() = %d, want 4", tr.BusWidth())
	}
	if err := tr.Send(0xa5, true); err != nil {
		t.Fatal(err)
	}
	// One enable hold per strobe, then the short settle for a data write.
	want := []time.Duration{enablePulse, enablePulse, settleShort}
	if diff := cmp.Diff(*sleeps, want); diff != "" {
		t.Errorf("delay difference (-got +want):\n%s", diff)
	}
}

func TestExpanderSendCommand(t *testing.T) {
	// Clear has RS low in every latch byte.
	tr, sleeps := getExpander(t, latchOps(0x0c, 0x08, 0x1c, 0x18))
	if err := tr.Send(0x01, false); err != nil {
		t.Fatal(err)
	}
	want := []time.Duration{enablePulse, enablePulse, settleLong}
	if diff := cmp.Diff(*sleeps, want); diff != "" {
		t.Errorf("delay difference (-got +want):\n%s", diff)
	}
}

func TestExpanderSendNibble(t *testing.T) {
	tr, _ := getExpander(t, latchOps(0x3c, 0x38))
	if err := tr.SendNibble(0x03); err != nil {
		t.Fatal(err)
	}
}

func TestExpanderBacklight(t *testing.T) {
	// Backlight off drops bit 3 from the standalone write and from every
	// following strobe.
	tr, _ := getExpander(t, latchOps(0x00, 0x45, 0x41, 0x15, 0x11))
	if err := tr.Backlight(0); err != nil {
		t.Fatal(err)
	}
	if err := tr.Send(0x41, true); err != nil {
		t.Fatal(err)
	}
}

func TestExpanderAddressValidation(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	for _, addr := range []uint16{0x10, 0x28, 0x37, 0x40} {
		if _, err := NewI2CExpanderTransport(bus, addr); err == nil {
			t.Errorf("address %#x was accepted", addr)
		}
	}
	for _, addr := range []uint16{0x20, 0x27, 0x38, 0x3f} {
		if _, err := NewI2CExpanderTransport(bus, addr); err != nil {
			t.Errorf("address %#x was rejected: %v", addr, err)
		}
	}
}

type countingLock struct {
	locks   int
	unlocks int
}

func (l *countingLock) Lock()   { l.locks++ }
func (l *countingLock) Unlock() { l.unlocks++ }

func TestExpanderSharedLock(t *testing.T) {
	tr, _ := getExpander(t, latchOps(0xad, 0xa9, 0x5d, 0x59))
	lock := &countingLock{}
	tr.Shared = lock
	if err := tr.Send(0xa5, true); err != nil {
		t.Fatal(err)
	}
	if lock.locks != 1 || lock.unlocks != 1 {
		t.Errorf("shared lock held %d/%d times, want 1/1 across one strobe sequence", lock.locks, lock.unlocks)
	}
}

func TestExpanderSharedLockReleasedOnError(t *testing.T) {
	// An empty playback rejects the first write; the lock must still be
	// released.
	tr, _ := getExpander(t, nil)
	lock := &countingLock{}
	tr.Shared = lock
	if err := tr.Send(0xa5, true); err == nil {
		t.Fatal("send over an empty playback did not fail")
	}
	if lock.locks != 1 || lock.unlocks != 1 {
		t.Errorf("shared lock held %d/%d times after a failed send, want 1/1", lock.locks, lock.unlocks)
	}
}

// TestExpanderInit drives the whole power on sequence through the backpack
// and checks the exact latch traffic: three raw 0x3 nibbles, the drop to 4
// bit framing, function set, display control, clear, entry mode, and the
// final backlight refresh.
func TestExpanderInit(t *testing.T) {
	ops := latchOps(
		0x3c, 0x38, 0x3c, 0x38, 0x3c, 0x38, // 0x3 nibbles
		0x2c, 0x28, // 0x2 nibble
		0x2c, 0x28, 0x8c, 0x88, // function set 0x28
		0x0c, 0x08, 0xcc, 0xc8, // display control 0x0c
		0x0c, 0x08, 0x1c, 0x18, // clear 0x01
		0x0c, 0x08, 0x6c, 0x68, // entry mode 0x06
		0x08, // backlight refresh
	)
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	dev, err := NewI2C(bus, testAddr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if dev.Rows() != 2 || dev.Cols() != 16 {
		t.Errorf("Rows/Cols = %d/%d, want 2/16", dev.Rows(), dev.Cols())
	}
}
