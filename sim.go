package main

import (
	"math"

	"recess-server/protocol"
)

const (
	MatchDuration = 90.0 // seconds
)

// Simulation is the authoritative game state for one room. All mutation
// happens inside Update, driven by the room's tick loop; snapshots drain the
// event buffer so each event reaches clients at most once.
type Simulation struct {
	Phase         string
	Winner        string
	TimeRemaining float64
	Tick          uint64

	Teachers    []*Teacher
	Pupils      []*Pupil
	Pool        *EggPool
	Projectiles []*Projectile
	Obstacles   []protocol.Obstacle

	events []protocol.Event

	// nextEggID is per-simulation so concurrent rooms assign ids
	// independently and runs stay deterministic.
	nextEggID uint64
}

// NewSimulation creates a lobby-phase simulation with the static layout
func NewSimulation() *Simulation {
	return &Simulation{
		Phase:     protocol.PhaseLobby,
		Winner:    protocol.WinnerNone,
		Obstacles: DefaultObstacleLayout(),
		Pool:      NewEggPool(),
	}
}

// Start begins a round with the given occupied slot indices per team.
// Entities carry the players' actual slots, so a team holding only its
// second slot still gets a controllable entity.
func (s *Simulation) Start(teacherSlots, pupilSlots []int) {
	s.Phase = protocol.PhasePlaying
	s.Winner = protocol.WinnerNone
	s.TimeRemaining = MatchDuration
	s.Tick = 0
	s.nextEggID = 0

	s.Teachers = make([]*Teacher, 0, len(teacherSlots))
	for _, slot := range teacherSlots {
		s.Teachers = append(s.Teachers, NewTeacher(slot))
	}
	s.Pupils = make([]*Pupil, 0, len(pupilSlots))
	for _, slot := range pupilSlots {
		s.Pupils = append(s.Pupils, NewPupil(slot))
	}
	s.Pool = NewEggPool()
	s.Projectiles = nil
	s.events = nil
}

// Reset abandons any round in progress and returns to the lobby phase
func (s *Simulation) Reset() {
	s.Phase = protocol.PhaseLobby
	s.Winner = protocol.WinnerNone
	s.TimeRemaining = 0
	s.Teachers = nil
	s.Pupils = nil
	s.Pool = NewEggPool()
	s.Projectiles = nil
	s.events = nil
}

// Update advances the simulation one fixed step. Inputs are keyed by slot
// index; missing slots default to the zero input (no movement, no click).
func (s *Simulation) Update(dt float64, teacherInputs, pupilInputs map[int]protocol.InputPayload) {
	if s.Phase != protocol.PhasePlaying {
		return
	}

	s.Tick++

	s.TimeRemaining -= dt
	if s.TimeRemaining <= 0 {
		s.TimeRemaining = 0
		s.endGame(protocol.WinnerPupil)
		return
	}

	allReached := len(s.Teachers) > 0
	for _, tc := range s.Teachers {
		tc.Update(dt, teacherInputs[tc.Slot], s.Obstacles)
		if !tc.ReachedGoal() {
			allReached = false
		}
	}
	if allReached {
		s.endGame(protocol.WinnerTeacher)
		return
	}

	s.Pool.Advance(dt)

	for _, pu := range s.Pupils {
		if req := pu.Update(dt, pupilInputs[pu.Slot], s.Pool, s.Obstacles); req != nil {
			s.nextEggID++
			proj := NewProjectile(s.nextEggID, req.StartX, req.StartY, req.TargetX, req.TargetY)
			s.Projectiles = append(s.Projectiles, proj)
			s.pushEvent(protocol.Event{Type: protocol.EventThrow, EggID: proj.ID})
		}
	}

	for _, proj := range s.Projectiles {
		proj.Update(dt)
	}

	// Collisions run before landed eggs are swept so a terminal-position
	// overlap still counts.
	for _, hit := range ResolveHits(s.Projectiles, s.Teachers) {
		s.handleHit(hit)
	}

	kept := s.Projectiles[:0]
	for _, proj := range s.Projectiles {
		if proj.Active {
			kept = append(kept, proj)
			continue
		}
		if proj.Landed {
			s.pushEvent(protocol.Event{
				Type: protocol.EventSplat,
				X:    int(math.Round(proj.X)),
				Y:    int(math.Round(proj.Y)),
			})
		}
	}
	s.Projectiles = kept
}

// handleHit respawns the struck teacher and consumes the egg.
func (s *Simulation) handleHit(hit Hit) {
	s.pushEvent(protocol.Event{
		Type:  protocol.EventHit,
		X:     int(math.Round(hit.Projectile.X)),
		Y:     int(math.Round(hit.Projectile.Y)),
		EggID: hit.Projectile.ID,
	})

	hit.Teacher.Respawn()

	for _, pu := range s.Pupils {
		pu.Anim = "celebrate"
	}

	for i, proj := range s.Projectiles {
		if proj == hit.Projectile {
			s.Projectiles = append(s.Projectiles[:i], s.Projectiles[i+1:]...)
			break
		}
	}
}

// endGame transitions to game over exactly once per round.
func (s *Simulation) endGame(winner string) {
	if s.Phase == protocol.PhaseGameOver {
		return
	}
	s.Phase = protocol.PhaseGameOver
	s.Winner = winner
	if winner == protocol.WinnerPupil {
		for _, pu := range s.Pupils {
			pu.Anim = "celebrate"
		}
	}
	s.pushEvent(protocol.Event{Type: protocol.EventGameOver, Winner: winner})
}

func (s *Simulation) pushEvent(ev protocol.Event) {
	s.events = append(s.events, ev)
}

// Snapshot serializes the current state and drains the event buffer, so a
// given event is delivered with exactly one snapshot.
func (s *Simulation) Snapshot() protocol.StateMsg {
	msg := protocol.StateMsg{
		Type:        protocol.MsgState,
		Tick:        s.Tick,
		GameState:   s.Phase,
		Winner:      s.Winner,
		Time:        round1(s.TimeRemaining),
		Teachers:    make([]protocol.TeacherState, 0, len(s.Teachers)),
		Pupils:      make([]protocol.PupilState, 0, len(s.Pupils)),
		Pool:        s.Pool.ToState(),
		Projectiles: make([]protocol.ProjectileState, 0, len(s.Projectiles)),
		Events:      make([]protocol.Event, len(s.events)),
	}
	for _, tc := range s.Teachers {
		msg.Teachers = append(msg.Teachers, tc.ToState())
	}
	for _, pu := range s.Pupils {
		msg.Pupils = append(msg.Pupils, pu.ToState())
	}
	for _, proj := range s.Projectiles {
		msg.Projectiles = append(msg.Projectiles, proj.ToState())
	}
	copy(msg.Events, s.events)
	s.events = s.events[:0]
	return msg
}

// InitMessage returns the once-per-connection obstacle layout message
func (s *Simulation) InitMessage() protocol.InitMsg {
	return protocol.InitMsg{Type: protocol.MsgInit, Obstacles: s.Obstacles}
}
