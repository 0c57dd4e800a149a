package main

import "testing"

func TestCircleCollision(t *testing.T) {
	// Overlapping circles
	if !CircleCollision(0, 0, 10, 15, 0, 10) {
		t.Error("circles should collide (overlapping)")
	}

	// Exactly touching circles do not overlap
	if CircleCollision(0, 0, 10, 20, 0, 10) {
		t.Error("touching circles should not collide")
	}

	// Far apart
	if CircleCollision(0, 0, 10, 25, 0, 10) {
		t.Error("circles should not collide")
	}

	// Same position
	if !CircleCollision(5, 5, 1, 5, 5, 1) {
		t.Error("same position should collide")
	}
}

func TestCircleRectCollision(t *testing.T) {
	// Circle center inside rect
	if !CircleRectCollision(5, 5, 1, 0, 0, 10, 10) {
		t.Error("circle inside rect should collide")
	}

	// Circle overlapping edge
	if !CircleRectCollision(-3, 5, 4, 0, 0, 10, 10) {
		t.Error("circle overlapping left edge should collide")
	}

	// Circle near corner but outside
	if CircleRectCollision(-4, -4, 5, 0, 0, 10, 10) {
		t.Error("circle outside corner radius should not collide")
	}

	// Circle clear of rect
	if CircleRectCollision(50, 50, 5, 0, 0, 10, 10) {
		t.Error("distant circle should not collide")
	}
}

func TestPointRectCollision(t *testing.T) {
	if !PointRectCollision(5, 5, 0, 0, 10, 10) {
		t.Error("point inside rect")
	}
	if !PointRectCollision(0, 0, 0, 0, 10, 10) {
		t.Error("point on corner counts as inside")
	}
	if PointRectCollision(11, 5, 0, 0, 10, 10) {
		t.Error("point outside rect")
	}
}

func TestResolveHitsExemptions(t *testing.T) {
	proj := NewProjectile(1, 0, 0, 100, 100)
	proj.X, proj.Y = 100, 100
	proj.Landed = true
	proj.Active = false

	tc := NewTeacher(0)
	tc.X, tc.Y = 100, 100

	if hits := ResolveHits([]*Projectile{proj}, []*Teacher{tc}); len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}

	tc.Invulnerable = true
	if hits := ResolveHits([]*Projectile{proj}, []*Teacher{tc}); len(hits) != 0 {
		t.Error("invulnerable teacher must never be hit")
	}

	tc.Invulnerable = false
	tc.Hidden = true
	if hits := ResolveHits([]*Projectile{proj}, []*Teacher{tc}); len(hits) != 0 {
		t.Error("hidden teacher must never be hit")
	}
}

func TestResolveHitsLowestSlotWins(t *testing.T) {
	proj := NewProjectile(1, 0, 0, 100, 100)
	proj.X, proj.Y = 100, 100

	tc0 := NewTeacher(0)
	tc0.X, tc0.Y = 100, 100
	tc1 := NewTeacher(1)
	tc1.X, tc1.Y = 100, 100

	// Slot order in the slice is the documented tie-break
	hits := ResolveHits([]*Projectile{proj}, []*Teacher{tc0, tc1})
	if len(hits) != 1 {
		t.Fatalf("each projectile resolves at most one hit, got %d", len(hits))
	}
	if hits[0].Teacher != tc0 {
		t.Error("lowest slot index should win the tie-break")
	}
}

func TestResolveHitsSkipsDeadProjectiles(t *testing.T) {
	proj := NewProjectile(1, 0, 0, 100, 100)
	proj.X, proj.Y = 100, 100
	proj.Active = false
	proj.Landed = false // already consumed

	tc := NewTeacher(0)
	tc.X, tc.Y = 100, 100

	if hits := ResolveHits([]*Projectile{proj}, []*Teacher{tc}); len(hits) != 0 {
		t.Error("inactive, non-landed projectile should not hit")
	}
}
