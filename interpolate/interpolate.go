// Package interpolate reconstructs smooth render-time state from the
// discrete 20 Hz snapshots a client receives. A small buffer of recent
// snapshots is sampled at "now minus a fixed render delay" so a bracketing
// pair usually exists, and positional fields are blended between the pair.
package interpolate

import (
	"time"

	"recess-server/protocol"
)

const (
	// DefaultMaxBuffer bounds the snapshot queue; oldest entries are
	// discarded first.
	DefaultMaxBuffer = 4
	// DefaultRenderDelay is slightly more than one tick period at 20 Hz.
	DefaultRenderDelay = 60 * time.Millisecond
)

type timedState struct {
	state protocol.StateMsg
	at    time.Time
}

// Buffer holds recently received snapshots tagged with local receipt time.
// It is driven by the host's render callback and performs no blocking work.
type Buffer struct {
	states      []timedState
	maxBuffer   int
	renderDelay time.Duration
}

// NewBuffer creates a Buffer with the default size and render delay
func NewBuffer() *Buffer {
	return New(DefaultMaxBuffer, DefaultRenderDelay)
}

// New creates a Buffer with an explicit size and render delay
func New(maxBuffer int, renderDelay time.Duration) *Buffer {
	if maxBuffer < 1 {
		maxBuffer = 1
	}
	return &Buffer{
		maxBuffer:   maxBuffer,
		renderDelay: renderDelay,
	}
}

// Add records a snapshot received now
func (b *Buffer) Add(state protocol.StateMsg) {
	b.AddAt(state, time.Now())
}

// AddAt records a snapshot with an explicit receipt time
func (b *Buffer) AddAt(state protocol.StateMsg, at time.Time) {
	b.states = append(b.states, timedState{state: state, at: at})
	if len(b.states) > b.maxBuffer {
		b.states = b.states[1:]
	}
}

// State returns the interpolated state for the current wall clock
func (b *Buffer) State() (protocol.StateMsg, bool) {
	return b.StateAt(time.Now())
}

// StateAt returns the state for the given clock reading. With no snapshots
// it reports false; with a single snapshot that snapshot is returned
// unmodified; otherwise the pair bracketing "now minus render delay" is
// blended, falling back to the newest snapshot when every entry is older
// than the render time.
func (b *Buffer) StateAt(now time.Time) (protocol.StateMsg, bool) {
	if len(b.states) == 0 {
		return protocol.StateMsg{}, false
	}
	if len(b.states) == 1 {
		return b.states[0].state, true
	}

	renderTime := now.Add(-b.renderDelay)

	a := b.states[0]
	newer := b.states[1]
	found := false
	for i := 1; i < len(b.states); i++ {
		if b.states[i].at.After(renderTime) {
			a = b.states[i-1]
			newer = b.states[i]
			found = true
			break
		}
	}
	if !found {
		return b.states[len(b.states)-1].state, true
	}

	span := newer.at.Sub(a.at)
	if span <= 0 {
		return newer.state, true
	}
	t := float64(renderTime.Sub(a.at)) / float64(span)
	t = clamp01(t)
	return blend(a.state, newer.state, t), true
}

// blend lerps every positional field between two snapshots; all other
// fields are taken verbatim from the newer one. Teachers and pupils match
// by slot, projectiles by id; entities absent from either side are left as
// the newer snapshot reports them.
func blend(older, newer protocol.StateMsg, t float64) protocol.StateMsg {
	out := newer
	out.Teachers = append([]protocol.TeacherState(nil), newer.Teachers...)
	out.Pupils = append([]protocol.PupilState(nil), newer.Pupils...)
	out.Projectiles = append([]protocol.ProjectileState(nil), newer.Projectiles...)

	for i := range out.Teachers {
		if prev, ok := teacherBySlot(older.Teachers, out.Teachers[i].Slot); ok {
			out.Teachers[i].X = lerp(prev.X, out.Teachers[i].X, t)
			out.Teachers[i].Y = lerp(prev.Y, out.Teachers[i].Y, t)
		}
	}
	for i := range out.Pupils {
		if prev, ok := pupilBySlot(older.Pupils, out.Pupils[i].Slot); ok {
			out.Pupils[i].CrossX = lerp(prev.CrossX, out.Pupils[i].CrossX, t)
			out.Pupils[i].CrossY = lerp(prev.CrossY, out.Pupils[i].CrossY, t)
		}
	}
	for i := range out.Projectiles {
		if prev, ok := projectileByID(older.Projectiles, out.Projectiles[i].ID); ok {
			out.Projectiles[i].X = lerp(prev.X, out.Projectiles[i].X, t)
			out.Projectiles[i].Y = lerp(prev.Y, out.Projectiles[i].Y, t)
		}
	}
	return out
}

func teacherBySlot(list []protocol.TeacherState, slot int) (protocol.TeacherState, bool) {
	for _, s := range list {
		if s.Slot == slot {
			return s, true
		}
	}
	return protocol.TeacherState{}, false
}

func pupilBySlot(list []protocol.PupilState, slot int) (protocol.PupilState, bool) {
	for _, s := range list {
		if s.Slot == slot {
			return s, true
		}
	}
	return protocol.PupilState{}, false
}

func projectileByID(list []protocol.ProjectileState, id uint64) (protocol.ProjectileState, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return protocol.ProjectileState{}, false
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
