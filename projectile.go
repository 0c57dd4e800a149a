package main

import "recess-server/protocol"

const (
	EggSpeed     = 1200.0 // pixels/s along the straight start-target line
	EggArcHeight = 100.0
	EggRadius    = 8.0

	// minFlightDuration keeps progress finite for degenerate throws whose
	// target coincides with the launch point; such eggs land on the first
	// tick either way.
	minFlightDuration = 0.05
)

// Projectile is one thrown egg following a parabolic arc from its launch
// point to its target, parameterized by flight progress.
type Projectile struct {
	ID               uint64
	StartX, StartY   float64
	TargetX, TargetY float64
	X, Y             float64
	Progress         float64
	FlightDuration   float64
	Active           bool
	Landed           bool
}

// NewProjectile creates an egg in flight. Duration scales with the straight
// start-to-target distance so longer throws are not instantaneous.
func NewProjectile(id uint64, startX, startY, targetX, targetY float64) *Projectile {
	duration := Distance(startX, startY, targetX, targetY) / EggSpeed
	if duration < minFlightDuration {
		duration = minFlightDuration
	}
	return &Projectile{
		ID:             id,
		StartX:         startX,
		StartY:         startY,
		TargetX:        targetX,
		TargetY:        targetY,
		X:              startX,
		Y:              startY,
		FlightDuration: duration,
		Active:         true,
	}
}

// Update advances flight progress and recomputes the arc position. On the
// tick progress reaches 1 the egg is marked landed and inactive, but its
// terminal position still participates in collision checks that tick.
func (p *Projectile) Update(dt float64) {
	if !p.Active {
		return
	}

	p.Progress += dt / p.FlightDuration
	if p.Progress >= 1.0 {
		p.Progress = 1.0
		p.Landed = true
		p.Active = false
	}

	t := p.Progress
	p.X = Lerp(p.StartX, p.TargetX, t)
	linearY := Lerp(p.StartY, p.TargetY, t)
	arcOffset := EggArcHeight * 4 * t * (1 - t)
	p.Y = linearY - arcOffset
}

// ToState converts to the wire snapshot representation
func (p *Projectile) ToState() protocol.ProjectileState {
	return protocol.ProjectileState{
		ID:       p.ID,
		X:        round1(p.X),
		Y:        round1(p.Y),
		SX:       p.StartX,
		SY:       p.StartY,
		TX:       p.TargetX,
		TY:       p.TargetY,
		Progress: round2(p.Progress),
		Active:   p.Active,
	}
}
