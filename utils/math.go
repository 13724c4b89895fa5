// Package utils contains small numeric helpers shared by the evaluators.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Square returns n*n. Math.pow( x, 2 ) is slow, this is faster.
func Square(n float64) float64 {
	return n * n
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RootMeanSquare accumulates values one at a time and reports their root mean square
// without keeping the values around.
type RootMeanSquare struct {
	sumSq float64
	n     int
}

// Add records a value.
func (r *RootMeanSquare) Add(v float64) {
	r.sumSq += v * v
	r.n++
}

// Count returns how many values have been added.
func (r *RootMeanSquare) Count() int {
	return r.n
}

// Value returns the root mean square of the values added so far, or NaN if there are none.
func (r *RootMeanSquare) Value() float64 {
	if r.n == 0 {
		return math.NaN()
	}
	return math.Sqrt(r.sumSq / float64(r.n))
}

// RunningMean accumulates values and reports their arithmetic mean.
type RunningMean struct {
	sum float64
	n   int
}

// Add records a value.
func (m *RunningMean) Add(v float64) {
	m.sum += v
	m.n++
}

// Count returns how many values have been added.
func (m *RunningMean) Count() int {
	return m.n
}

// Value returns the mean of the values added so far, or NaN if there are none.
func (m *RunningMean) Value() float64 {
	if m.n == 0 {
		return math.NaN()
	}
	return m.sum / float64(m.n)
}
