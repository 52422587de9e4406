package parser

import (
	"math"
	"testing"
)

func TestTemperature(t *testing.T) {
	tests := []struct {
		raw  uint16
		want float64
	}{
		{27315, 0.0},
		{27415, 1.0},
		{29315, 20.0},
		{0, -273.15},
	}
	for _, tt := range tests {
		if got := Temperature(tt.raw); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Temperature(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDepth(t *testing.T) {
	// With a 100 kPa atmosphere and a 10 kPa/m water column every 100
	// millibar above 1000 is exactly one metre.
	tests := []struct {
		raw  uint16
		want float64
	}{
		{1000, 0.0},
		{1500, 5.0},
		{2500, 15.0},
	}
	for _, tt := range tests {
		if got := Depth(tt.raw, 100000, 10000); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Depth(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDepthSurfaceReading(t *testing.T) {
	// A raw reading of zero sits far below atmospheric pressure and
	// converts to a negative depth.
	if got := Depth(0, Atm, DensitySalt*Gravity); got >= 0 {
		t.Errorf("Depth(0) = %v, want negative", got)
	}
}

func TestSeawaterColumn(t *testing.T) {
	if got := DensitySalt * Gravity; math.Abs(got-10051.81625) > 1e-6 {
		t.Errorf("seawater column = %v Pa/m, want 10051.81625", got)
	}
}
