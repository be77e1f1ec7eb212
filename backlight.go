// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aglcd

import (
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// GPIOMonoBacklight switches a backlight supply through a single GPIO line.
// Implements display.DisplayBacklight.
type GPIOMonoBacklight struct {
	pin gpio.PinOut
}

// NewBacklight returns a backlight controller over pin, for use as
// Opts.Backlight.
func NewBacklight(pin gpio.PinOut) *GPIOMonoBacklight {
	return &GPIOMonoBacklight{pin: pin}
}

// Backlight turns the line on for any non zero intensity.
func (b *GPIOMonoBacklight) Backlight(intensity display.Intensity) error {
	if intensity == 0 {
		return b.pin.Out(gpio.Low)
	}
	return b.pin.Out(gpio.High)
}

var _ display.DisplayBacklight = &GPIOMonoBacklight{}
