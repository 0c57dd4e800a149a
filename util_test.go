package main

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("in-range value should be unchanged")
	}
	if Clamp(-1, 0, 10) != 0 {
		t.Error("below min should clamp to min")
	}
	if Clamp(11, 0, 10) != 10 {
		t.Error("above max should clamp to max")
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("expected 5, got %f", d)
	}
	if d := Distance(1, 1, 1, 1); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestLerp(t *testing.T) {
	if Lerp(0, 10, 0.5) != 5 {
		t.Error("midpoint lerp failed")
	}
	if Lerp(0, 10, 0) != 0 {
		t.Error("t=0 should return start")
	}
	if Lerp(0, 10, 1) != 10 {
		t.Error("t=1 should return end")
	}
}

func TestNormalize(t *testing.T) {
	x, y := Normalize(3, 4)
	if math.Abs(x-0.6) > 1e-9 || math.Abs(y-0.8) > 1e-9 {
		t.Errorf("expected (0.6, 0.8), got (%f, %f)", x, y)
	}

	x, y = Normalize(0, 0)
	if x != 0 || y != 0 {
		t.Error("zero vector should stay zero")
	}

	// Diagonal input must not exceed unit length
	x, y = Normalize(1, 1)
	if math.Abs(math.Sqrt(x*x+y*y)-1) > 1e-9 {
		t.Error("normalized diagonal should have unit length")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(4)
	if len(id) != 8 {
		t.Errorf("expected 8 hex chars, got %d", len(id))
	}
	if id == GenerateID(4) {
		t.Error("two ids should differ")
	}
}
