package main

import "recess-server/protocol"

const (
	PupilStartingEggs = 5
	PupilMaxEggs      = 5
	EggThrowCooldown  = 0.8  // seconds between throws
	RefillDelay       = 0.75 // seconds for a coop refill to complete
	RefillAmount      = 2
	safeZoneOffset    = 40.0 // crosshair keep-out past the teacher spawn
)

// pupilLaunches holds the fixed per-slot egg launch points along the
// bottom-right edge.
var pupilLaunches = [2]struct{ X, Y float64 }{
	{ArenaWidth - 40, ArenaHeight - 40},
	{ArenaWidth - 100, ArenaHeight - 40},
}

// EggPool is the per-room ammunition counter shared by every pupil.
type EggPool struct {
	Count       int
	Max         int
	Refilling   bool
	RefillTimer float64
}

// NewEggPool creates a full pool
func NewEggPool() *EggPool {
	return &EggPool{Count: PupilStartingEggs, Max: PupilMaxEggs}
}

// StartRefill arms the refill timer. Requests while already refilling or
// already full are ignored.
func (p *EggPool) StartRefill() {
	if p.Refilling || p.Count >= p.Max {
		return
	}
	p.Refilling = true
	p.RefillTimer = RefillDelay
}

// Advance progresses a running refill; on expiry the batch is added, capped
// at the pool maximum.
func (p *EggPool) Advance(dt float64) {
	if !p.Refilling {
		return
	}
	p.RefillTimer -= dt
	if p.RefillTimer <= 0 {
		p.Refilling = false
		p.RefillTimer = 0
		p.Count += RefillAmount
		if p.Count > p.Max {
			p.Count = p.Max
		}
	}
}

// TakeEgg consumes one egg, reporting whether one was available
func (p *EggPool) TakeEgg() bool {
	if p.Count <= 0 {
		return false
	}
	p.Count--
	return true
}

// ToState converts to the wire snapshot representation
func (p *EggPool) ToState() protocol.PoolState {
	return protocol.PoolState{
		Eggs:      p.Count,
		MaxEggs:   p.Max,
		Refilling: p.Refilling,
		RefillT:   round2(p.RefillTimer),
	}
}

// ThrowRequest describes an egg the simulation should spawn.
type ThrowRequest struct {
	StartX, StartY   float64
	TargetX, TargetY float64
}

// Pupil is the throwing player entity: a crosshair, a throw cooldown and a
// fixed launch point.
type Pupil struct {
	Slot     int
	CrossX   float64
	CrossY   float64
	Cooldown float64
	CanThrow bool
	Anim     string
}

// NewPupil creates a pupil with its crosshair centered
func NewPupil(slot int) *Pupil {
	return &Pupil{
		Slot:     slot,
		CrossX:   ArenaWidth / 2,
		CrossY:   ArenaHeight / 2,
		CanThrow: true,
		Anim:     "idle",
	}
}

// Update advances the pupil one tick. The click in the input must already be
// edge-detected by the caller. A successful throw returns the spawn request;
// a coop click starts a pool refill instead (never both).
func (p *Pupil) Update(dt float64, in protocol.InputPayload, pool *EggPool, obstacles []protocol.Obstacle) *ThrowRequest {
	if p.Cooldown > 0 {
		p.Cooldown -= dt
		if p.Cooldown <= 0 {
			p.Cooldown = 0
			p.CanThrow = true
		}
	}

	// Crosshair is barred from the teachers' safe zone and clamped to the
	// arena's vertical extent.
	safeZoneX := teacherSpawns[0].X + safeZoneOffset
	if in.MouseX > safeZoneX {
		p.CrossX = in.MouseX
	} else {
		p.CrossX = safeZoneX
	}
	p.CrossY = Clamp(in.MouseY, 0, ArenaHeight)

	if p.Anim == "throw" && p.Cooldown < EggThrowCooldown-0.3 {
		p.Anim = "idle"
	}

	if !in.Click {
		return nil
	}

	if coop := findCoop(obstacles); coop != nil && p.overCoop(coop) {
		pool.StartRefill()
		return nil
	}
	return p.tryThrow(pool)
}

func (p *Pupil) overCoop(coop *protocol.Obstacle) bool {
	return PointRectCollision(p.CrossX, p.CrossY, coop.X, coop.Y, coop.Width, coop.Height)
}

func (p *Pupil) tryThrow(pool *EggPool) *ThrowRequest {
	if !p.CanThrow || !pool.TakeEgg() {
		return nil
	}
	p.CanThrow = false
	p.Cooldown = EggThrowCooldown
	p.Anim = "throw"

	launch := pupilLaunches[p.Slot%len(pupilLaunches)]
	return &ThrowRequest{
		StartX:  launch.X,
		StartY:  launch.Y,
		TargetX: p.CrossX,
		TargetY: p.CrossY,
	}
}

// ToState converts to the wire snapshot representation
func (p *Pupil) ToState() protocol.PupilState {
	return protocol.PupilState{
		Slot:     p.Slot,
		CrossX:   round1(p.CrossX),
		CrossY:   round1(p.CrossY),
		Cooldown: round2(p.Cooldown),
		CanThrow: p.CanThrow,
		Anim:     p.Anim,
	}
}
