package main

import "recess-server/protocol"

const (
	TeacherSpeed           = 140.0 // pixels/s
	TeacherSprintMul       = 1.6   // sprint speed multiplier
	TeacherSprintDuration  = 0.8   // seconds
	TeacherSprintCooldown  = 6.0   // seconds
	TeacherRadius          = 16.0  // hitbox radius
	TeacherGoalX           = 1298.0
	RespawnInvulnerability = 1.5 // seconds
	hideMarginFactor       = 0.7 // fraction of radius that must fit inside a bush
)

// teacherSpawns holds the per-slot spawn points.
var teacherSpawns = [2]struct{ X, Y float64 }{
	{110, 396},
	{110, 516},
}

// Teacher is the evading player entity. Its goal is to cross the arena to
// the right edge without being hit.
type Teacher struct {
	Slot         int
	X, Y         float64
	VX, VY       float64
	Invulnerable bool
	InvulnTimer  float64
	Hidden       bool
	Sprinting    bool
	SprintAvail  bool
	SprintTimer  float64
	SprintCD     float64
	FacingRight  bool
	Anim         string

	reachedGoal bool
}

// NewTeacher creates a teacher at its slot's spawn point
func NewTeacher(slot int) *Teacher {
	spawn := teacherSpawns[slot%len(teacherSpawns)]
	return &Teacher{
		Slot:        slot,
		X:           spawn.X,
		Y:           spawn.Y,
		SprintAvail: true,
		FacingRight: true,
		Anim:        "idle",
	}
}

// Update advances the teacher one tick with its buffered input, resolving
// the candidate position against the obstacle layout.
func (t *Teacher) Update(dt float64, in protocol.InputPayload, obstacles []protocol.Obstacle) {
	t.updateInvulnerability(dt)
	t.updateSprint(dt, in.Sprint)

	dirX, dirY := directionFromInput(in)

	speed := TeacherSpeed
	if t.Sprinting {
		speed *= TeacherSprintMul
	}
	t.VX = dirX * speed
	t.VY = dirY * speed

	nextX := t.X + t.VX*dt
	nextY := t.Y + t.VY*dt

	// All-or-nothing movement: any blocking obstacle stops the whole step.
	canMove := true
	for _, obs := range obstacles {
		if obs.CanHide {
			continue
		}
		if CircleRectCollision(nextX, nextY, TeacherRadius, obs.X, obs.Y, obs.Width, obs.Height) {
			canMove = false
			break
		}
	}
	if canMove {
		t.X = nextX
		t.Y = nextY
	}

	t.X = Clamp(t.X, TeacherRadius, ArenaWidth-TeacherRadius)
	t.Y = Clamp(t.Y, TeacherRadius, ArenaHeight-TeacherRadius)

	t.updateHidingState(obstacles)

	if dirX != 0 || dirY != 0 {
		if t.Sprinting {
			t.Anim = "sprint"
		} else {
			t.Anim = "walk"
		}
	} else {
		t.Anim = "idle"
	}
	if dirX > 0 {
		t.FacingRight = true
	} else if dirX < 0 {
		t.FacingRight = false
	}

	if t.X >= TeacherGoalX {
		t.reachedGoal = true
	}
}

// directionFromInput converts held keys into a unit direction vector, so
// diagonal movement is no faster than axis-aligned.
func directionFromInput(in protocol.InputPayload) (float64, float64) {
	var x, y float64
	if in.Up {
		y--
	}
	if in.Down {
		y++
	}
	if in.Left {
		x--
	}
	if in.Right {
		x++
	}
	if x != 0 && y != 0 {
		return Normalize(x, y)
	}
	return x, y
}

func (t *Teacher) updateInvulnerability(dt float64) {
	if t.Invulnerable {
		t.InvulnTimer -= dt
		if t.InvulnTimer <= 0 {
			t.Invulnerable = false
			t.InvulnTimer = 0
		}
	}
}

// updateSprint runs the AVAILABLE -> SPRINTING -> COOLDOWN -> AVAILABLE
// machine. Releasing the key ends a sprint early; either way the full
// cooldown applies.
func (t *Teacher) updateSprint(dt float64, wantsSprint bool) {
	if t.SprintCD > 0 {
		t.SprintCD -= dt
		if t.SprintCD <= 0 {
			t.SprintCD = 0
			t.SprintAvail = true
		}
	}

	if t.Sprinting {
		t.SprintTimer -= dt
		if !wantsSprint || t.SprintTimer <= 0 {
			t.stopSprinting()
		}
	} else if wantsSprint && t.SprintAvail {
		t.startSprinting()
	}
}

func (t *Teacher) startSprinting() {
	t.Sprinting = true
	t.SprintTimer = TeacherSprintDuration
	t.SprintAvail = false
}

func (t *Teacher) stopSprinting() {
	t.Sprinting = false
	t.SprintTimer = 0
	t.SprintCD = TeacherSprintCooldown
}

// updateHidingState marks the teacher hidden only when its hitbox margin is
// fully contained in a hide-capable obstacle.
func (t *Teacher) updateHidingState(obstacles []protocol.Obstacle) {
	margin := TeacherRadius * hideMarginFactor
	for _, obs := range obstacles {
		if !obs.CanHide {
			continue
		}
		if t.X-margin >= obs.X && t.X+margin <= obs.X+obs.Width &&
			t.Y-margin >= obs.Y && t.Y+margin <= obs.Y+obs.Height {
			t.Hidden = true
			return
		}
	}
	t.Hidden = false
}

// ReachedGoal reports whether the teacher has ever crossed the goal line.
// The check latches: once reached it stays reached.
func (t *Teacher) ReachedGoal() bool {
	return t.reachedGoal
}

// Respawn returns the teacher to its spawn point after a hit. The sprint
// cooldown, if running, is preserved.
func (t *Teacher) Respawn() {
	spawn := teacherSpawns[t.Slot%len(teacherSpawns)]
	t.X = spawn.X
	t.Y = spawn.Y
	t.VX = 0
	t.VY = 0
	t.Invulnerable = true
	t.InvulnTimer = RespawnInvulnerability
	t.Sprinting = false
	t.SprintTimer = 0
}

// ToState converts to the wire snapshot representation
func (t *Teacher) ToState() protocol.TeacherState {
	return protocol.TeacherState{
		Slot:        t.Slot,
		X:           round1(t.X),
		Y:           round1(t.Y),
		VX:          round1(t.VX),
		VY:          round1(t.VY),
		Invuln:      t.Invulnerable,
		InvulnT:     round2(t.InvulnTimer),
		Hidden:      t.Hidden,
		Sprint:      t.Sprinting,
		SprintT:     round2(t.SprintTimer),
		SprintCD:    round2(t.SprintCD),
		SprintAvail: t.SprintAvail,
		Goal:        t.reachedGoal,
		Anim:        t.Anim,
		Facing:      t.FacingRight,
	}
}
