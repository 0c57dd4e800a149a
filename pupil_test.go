package main

import (
	"testing"

	"recess-server/protocol"
)

func TestEggPoolRefill(t *testing.T) {
	pool := NewEggPool()
	pool.Count = 2

	pool.StartRefill()
	if !pool.Refilling || pool.RefillTimer != RefillDelay {
		t.Fatal("refill should arm the timer")
	}

	// Starting again while refilling is a no-op
	pool.RefillTimer = 0.3
	pool.StartRefill()
	if pool.RefillTimer != 0.3 {
		t.Error("refill restart should be ignored")
	}

	for i := 0; i < int(RefillDelay*TickRate)+1; i++ {
		pool.Advance(testDT)
	}
	if pool.Refilling {
		t.Error("refill should have completed")
	}
	if pool.Count != 4 {
		t.Errorf("expected 4 eggs after refill, got %d", pool.Count)
	}
}

func TestEggPoolRefillCapsAtMax(t *testing.T) {
	pool := NewEggPool()
	pool.Count = pool.Max - 1

	pool.StartRefill()
	for i := 0; i < int(RefillDelay*TickRate)+1; i++ {
		pool.Advance(testDT)
	}
	if pool.Count != pool.Max {
		t.Errorf("refill must cap at max, got %d", pool.Count)
	}

	// Full pool rejects refill requests
	pool.StartRefill()
	if pool.Refilling {
		t.Error("full pool should not start refilling")
	}
}

func TestEggPoolTakeEgg(t *testing.T) {
	pool := NewEggPool()
	for i := 0; i < pool.Max; i++ {
		if !pool.TakeEgg() {
			t.Fatalf("take %d should succeed", i)
		}
	}
	if pool.TakeEgg() {
		t.Error("empty pool must refuse")
	}
	if pool.Count != 0 {
		t.Errorf("count should be 0, got %d", pool.Count)
	}
}

// Ammo conservation: arbitrary interleavings of throws and refills keep the
// count in [0, max] and only successful throws decrement it.
func TestEggPoolConservation(t *testing.T) {
	pool := NewEggPool()
	for i := 0; i < 500; i++ {
		before := pool.Count
		switch i % 5 {
		case 0, 1, 2:
			took := pool.TakeEgg()
			if took && pool.Count != before-1 {
				t.Fatal("successful throw must decrement by exactly 1")
			}
			if !took && pool.Count != before {
				t.Fatal("failed throw must not change the count")
			}
		case 3:
			pool.StartRefill()
		case 4:
			pool.Advance(testDT * 7)
		}
		if pool.Count < 0 || pool.Count > pool.Max {
			t.Fatalf("count %d out of [0, %d]", pool.Count, pool.Max)
		}
	}
}

func TestPupilCrosshairClamping(t *testing.T) {
	pu := NewPupil(0)
	pool := NewEggPool()

	pu.Update(testDT, protocol.InputPayload{MouseX: 10, MouseY: -50}, pool, nil)

	safeZoneX := teacherSpawns[0].X + safeZoneOffset
	if pu.CrossX != safeZoneX {
		t.Errorf("crosshair must stay out of the safe zone, got %f", pu.CrossX)
	}
	if pu.CrossY != 0 {
		t.Errorf("crosshair y should clamp to 0, got %f", pu.CrossY)
	}

	pu.Update(testDT, protocol.InputPayload{MouseX: 900, MouseY: ArenaHeight + 100}, pool, nil)
	if pu.CrossX != 900 || pu.CrossY != ArenaHeight {
		t.Errorf("expected (900, %f), got (%f, %f)", float64(ArenaHeight), pu.CrossX, pu.CrossY)
	}
}

func TestPupilThrow(t *testing.T) {
	pu := NewPupil(0)
	pool := NewEggPool()

	req := pu.Update(testDT, protocol.InputPayload{MouseX: 600, MouseY: 400, Click: true}, pool, nil)
	if req == nil {
		t.Fatal("expected a throw request")
	}
	if req.StartX != pupilLaunches[0].X || req.StartY != pupilLaunches[0].Y {
		t.Error("throw should launch from the slot's fixed point")
	}
	if req.TargetX != 600 || req.TargetY != 400 {
		t.Errorf("throw should target the crosshair, got (%f, %f)", req.TargetX, req.TargetY)
	}
	if pool.Count != PupilStartingEggs-1 {
		t.Error("throw should consume one egg")
	}
	if pu.CanThrow || pu.Cooldown != EggThrowCooldown {
		t.Error("throw should start the cooldown")
	}
	if pu.Anim != "throw" {
		t.Errorf("expected throw animation, got %s", pu.Anim)
	}

	// Cooldown gates the next click
	req = pu.Update(testDT, protocol.InputPayload{MouseX: 600, MouseY: 400, Click: true}, pool, nil)
	if req != nil {
		t.Error("throw during cooldown must be ignored")
	}
}

func TestPupilThrowWithEmptyPool(t *testing.T) {
	pu := NewPupil(0)
	pool := NewEggPool()
	pool.Count = 0

	req := pu.Update(testDT, protocol.InputPayload{MouseX: 600, MouseY: 400, Click: true}, pool, nil)
	if req != nil {
		t.Error("no ammunition means no throw")
	}
	if !pu.CanThrow {
		t.Error("failed throw must not start the cooldown")
	}
}

func TestPupilCoopClickRefills(t *testing.T) {
	obstacles := DefaultObstacleLayout()
	coop := findCoop(obstacles)
	if coop == nil {
		t.Fatal("layout must contain the chicken coop")
	}

	pu := NewPupil(0)
	pool := NewEggPool()
	pool.Count = 1

	in := protocol.InputPayload{
		MouseX: coop.X + coop.Width/2,
		MouseY: coop.Y + coop.Height/2,
		Click:  true,
	}
	req := pu.Update(testDT, in, pool, obstacles)

	if req != nil {
		t.Error("a refill click must not also throw")
	}
	if !pool.Refilling {
		t.Error("coop click should start a refill")
	}
	if pool.Count != 1 {
		t.Error("refill click must not consume an egg")
	}
}

func TestPupilThrowAnimationReverts(t *testing.T) {
	pu := NewPupil(0)
	pool := NewEggPool()

	pu.Update(testDT, protocol.InputPayload{MouseX: 600, MouseY: 400, Click: true}, pool, nil)

	// 0.3s into the cooldown the throw pose returns to idle
	for i := 0; i < 8; i++ {
		pu.Update(testDT, protocol.InputPayload{MouseX: 600, MouseY: 400}, pool, nil)
	}
	if pu.Anim != "idle" {
		t.Errorf("expected idle after throw animation, got %s", pu.Anim)
	}
}
