// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd_test

import (
	"fmt"
	"log"
	"sync"
	"time"

	aglcd "github.com/mjhouse/ag-lcd"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/gpioioctl"
)

// This example drives a 16x2 display wired directly to GPIO lines in 4 bit
// mode. The first 4 pins of the line set are D4..D7, then register select,
// enable, and backlight.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	chip := gpioioctl.Chips[0]
	ls, err := chip.LineSet(gpioioctl.LineOutput, gpio.NoEdge, gpio.PullNoChange,
		"GPIO27", "GPIO22", "GPIO23", "GPIO24", "GPIO17", "GPIO18", "GPIO25")
	if err != nil {
		log.Fatal(err)
	}
	pins := ls.Pins()
	rs := pins[4].(gpio.PinOut)
	e := pins[5].(gpio.PinOut)
	bl := pins[6].(gpio.PinOut)

	lcd, err := aglcd.NewParallel(ls, rs, e, nil, bl, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lcd.Halt() }()

	_, _ = lcd.WriteString("Hello")
	_ = lcd.SetPosition(1, 0)
	_, _ = lcd.WriteString("World")
	fmt.Println("lcd =", lcd.String())
	time.Sleep(5 * time.Second)
}

// This example drives the same display through a PCF8574 I²C backpack and
// loads a custom glyph.
func ExampleNewI2C() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	lcd, err := aglcd.NewI2C(bus, 0x27, &aglcd.Opts{
		Cols:      16,
		Lines:     aglcd.TwoLines,
		Display:   true,
		Cursor:    true,
		Direction: aglcd.LeftToRight,
	})
	if err != nil {
		log.Fatal(err)
	}

	heart := [8]byte{0x00, 0x0a, 0x1f, 0x1f, 0x0e, 0x04, 0x00, 0x00}
	_ = lcd.CreateChar(0, heart)
	// CreateChar leaves the address counter in CGRAM; re-address first.
	_ = lcd.SetPosition(0, 0)
	_, _ = lcd.WriteString("periph ")
	_ = lcd.WriteByte(0)
	time.Sleep(5 * time.Second)
	_ = lcd.Clear()
}

// Two displays on one bus share a lock so their strobe sequences cannot
// interleave.
func ExampleNewSharedI2C() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	var mu sync.Mutex
	top, err := aglcd.NewSharedI2C(bus, 0x26, &mu, nil)
	if err != nil {
		log.Fatal(err)
	}
	bottom, err := aglcd.NewSharedI2C(bus, 0x27, &mu, nil)
	if err != nil {
		log.Fatal(err)
	}
	_, _ = top.WriteString("one")
	_, _ = bottom.WriteString("two")
}

// This example uses the MCP23008 side of the Adafruit I2C/SPI backpack.
func ExampleNewAdafruitI2CBackpack() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()
	lcd, err := aglcd.NewAdafruitI2CBackpack(bus, 0x20, &aglcd.Opts{
		Cols: 20, Lines: aglcd.FourLines, Display: true, Direction: aglcd.LeftToRight,
	})
	if err != nil {
		log.Fatal(err)
	}
	_, _ = lcd.WriteString("Hello")
	fmt.Println(lcd.String())
}
