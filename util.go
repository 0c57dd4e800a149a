package main

import (
	"crypto/rand"
	"encoding/hex"
	"math"
)

// GenerateID returns a random hex string of the given byte length
func GenerateID(byteLen int) string {
	b := make([]byte, byteLen)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Clamp restricts v to [min, max]
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Distance returns the distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp linearly interpolates between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Normalize scales (x, y) to unit length; the zero vector stays zero
func Normalize(x, y float64) (float64, float64) {
	length := math.Sqrt(x*x + y*y)
	if length == 0 {
		return 0, 0
	}
	return x / length, y / length
}

// round1 rounds to one decimal place (wire precision for positions)
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places (wire precision for timers)
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
