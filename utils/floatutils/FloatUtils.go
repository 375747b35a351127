// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max.
// If min exceeds the floating point, then the function returns the min.
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// WrapInterval wraps a floating point around into an interval, treating
// the interval as periodic. For example, wrapping into [-π, π) maps
// 3π/2 to -π/2. The interval must have positive width.
func WrapInterval(value float64, interval r1.Interval) float64 {
	period := interval.Max - interval.Min
	if period <= 0 {
		panic("wrapInterval: interval must have positive width")
	}

	wrapped := math.Mod(value-interval.Min, period)
	if wrapped < 0 {
		wrapped += period
	}
	return wrapped + interval.Min
}
