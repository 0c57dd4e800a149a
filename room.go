package main

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"recess-server/protocol"
)

const (
	TickRate     = 20 // simulation steps per second
	TickDuration = time.Second / TickRate

	countdownFrom     = 3
	maxPlayersPerRoom = 16
)

// countdownInterval is a var so tests can shorten the pre-game countdown.
var countdownInterval = time.Second

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
}

// PlayerInfo is the per-connection room state. The latest-input cell is
// overwritten by every input message and consumed wholesale at tick time;
// prevClick carries the click level across ticks for edge detection.
type PlayerInfo struct {
	Role      protocol.Role
	LastInput *protocol.InputPayload
	PrevClick bool
}

// Room owns one simulation, the player-to-role mapping and the tick
// scheduler for a single arena instance. Handlers and the tick callback
// serialize on the room mutex, so the simulation itself is single-threaded.
type Room struct {
	Code string

	mu      sync.Mutex
	players map[string]*PlayerInfo
	clients map[string]Broadcaster
	sim     *Simulation

	loopStop      chan struct{} // non-nil while the tick loop runs
	countdownStop chan struct{} // non-nil while a countdown runs

	log        *MatchLog
	matchBegan time.Time
}

// NewRoom creates an empty lobby-phase room
func NewRoom(code string, log *MatchLog) *Room {
	return &Room{
		Code:    code,
		players: make(map[string]*PlayerInfo),
		clients: make(map[string]Broadcaster),
		sim:     NewSimulation(),
		log:     log,
	}
}

// AddPlayer registers a connection, sends it its id and the obstacle layout,
// and rebroadcasts the lobby. Returns false when the room is full.
func (r *Room) AddPlayer(playerID string, client Broadcaster) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= maxPlayersPerRoom {
		return false
	}
	r.players[playerID] = &PlayerInfo{Role: protocol.RoleUnassigned}
	r.clients[playerID] = client

	client.SendJSON(protocol.RoleMsg{
		Type:     protocol.MsgRole,
		Role:     protocol.RoleUnassigned,
		PlayerID: playerID,
	})
	client.SendJSON(r.sim.InitMessage())

	r.broadcastLobbyLocked()
	return true
}

// RemovePlayer drops a connection. A departing active role during play
// aborts the round; any countdown is canceled. Returns true when the room
// is now empty.
func (r *Room) RemovePlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	delete(r.players, playerID)
	delete(r.clients, playerID)

	if p != nil && p.Role != protocol.RoleUnassigned {
		if r.sim.Phase == protocol.PhasePlaying {
			r.stopLoopLocked()
			r.sim.Reset()

			label := "A teacher"
			if p.Role.Team() == protocol.TeamPupil {
				label = "A pupil"
			}
			r.broadcastLocked(protocol.DisconnectedMsg{
				Type:    protocol.MsgDisconnected,
				Role:    p.Role,
				Message: label + " disconnected.",
			})
			r.log.RecordAbandon(r.Code, p.Role)
		}
		r.stopCountdownLocked()
	}

	r.broadcastLobbyLocked()
	return len(r.players) == 0
}

// HandleSelectRole claims a role slot. Only honored in the lobby; claims on
// a slot held by another connection are silently rejected.
func (r *Room) HandleSelectRole(playerID string, role protocol.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sim.Phase != protocol.PhaseLobby {
		return
	}
	p := r.players[playerID]
	if p == nil || !role.Valid() {
		return
	}
	for id, other := range r.players {
		if id != playerID && other.Role == role {
			return
		}
	}
	p.Role = role
	r.broadcastLobbyLocked()
}

// HandleStart requests the pre-game countdown. Ignored outside the lobby or
// without at least one occupied slot per team.
func (r *Room) HandleStart(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sim.Phase != protocol.PhaseLobby {
		return
	}
	if _, ok := r.players[playerID]; !ok {
		return
	}
	if !r.hasTeamsLocked() {
		return
	}
	r.startCountdownLocked()
}

// HandleInput overwrites the player's latest-input cell. It is consumed on
// the next tick; nothing is applied immediately.
func (r *Room) HandleInput(playerID string, input protocol.InputPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.players[playerID]; ok {
		p.LastInput = &input
	}
}

// HandleRestart returns the room to the lobby after game over. Every role
// assignment is cleared; nobody keeps their slot.
func (r *Room) HandleRestart(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sim.Phase != protocol.PhaseGameOver {
		return
	}
	if _, ok := r.players[playerID]; !ok {
		return
	}
	r.sim.Reset()
	for _, p := range r.players {
		p.Role = protocol.RoleUnassigned
		p.LastInput = nil
		p.PrevClick = false
	}
	r.broadcastLobbyLocked()
}

// PlayerCount returns the number of connected players
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Stop cancels the tick loop and countdown, if running
func (r *Room) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLoopLocked()
	r.stopCountdownLocked()
}

func (r *Room) hasTeamsLocked() bool {
	hasTeacher, hasPupil := false, false
	for _, p := range r.players {
		switch p.Role.Team() {
		case protocol.TeamTeacher:
			hasTeacher = true
		case protocol.TeamPupil:
			hasPupil = true
		}
	}
	return hasTeacher && hasPupil
}

// teamSlotsLocked returns the occupied slot indices per team, in slot order.
func (r *Room) teamSlotsLocked() (teacherSlots, pupilSlots []int) {
	for _, p := range r.players {
		slot := p.Role.Slot()
		if slot < 0 {
			continue
		}
		switch p.Role.Team() {
		case protocol.TeamTeacher:
			teacherSlots = append(teacherSlots, slot)
		case protocol.TeamPupil:
			pupilSlots = append(pupilSlots, slot)
		}
	}
	sort.Ints(teacherSlots)
	sort.Ints(pupilSlots)
	return
}

func (r *Room) slotInfoLocked(role protocol.Role) protocol.SlotInfo {
	for id, p := range r.players {
		if p.Role == role {
			return protocol.SlotInfo{Taken: true, PlayerID: id}
		}
	}
	return protocol.SlotInfo{}
}

func (r *Room) broadcastLobbyLocked() {
	r.broadcastLocked(protocol.LobbyMsg{
		Type:        protocol.MsgLobby,
		PlayerCount: len(r.players),
		Teacher1:    r.slotInfoLocked(protocol.RoleTeacher1),
		Teacher2:    r.slotInfoLocked(protocol.RoleTeacher2),
		Pupil1:      r.slotInfoLocked(protocol.RolePupil1),
		Pupil2:      r.slotInfoLocked(protocol.RolePupil2),
		CanStart:    r.hasTeamsLocked(),
	})
}

// broadcastLocked marshals once and fans out to every room member.
// Slow clients are dropped rather than blocked on.
func (r *Room) broadcastLocked(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, client := range r.clients {
		if c, ok := client.(*Client); ok {
			c.SendRaw(data)
		} else {
			client.SendJSON(msg)
		}
	}
}

// startCountdownLocked broadcasts the first count immediately, then one per
// second until the match starts.
func (r *Room) startCountdownLocked() {
	if r.countdownStop != nil {
		return
	}
	stop := make(chan struct{})
	r.countdownStop = stop

	r.broadcastLocked(protocol.CountdownMsg{Type: protocol.MsgCountdown, Count: countdownFrom})

	go func() {
		ticker := time.NewTicker(countdownInterval)
		defer ticker.Stop()
		count := countdownFrom - 1
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				if count > 0 {
					r.mu.Lock()
					r.broadcastLocked(protocol.CountdownMsg{Type: protocol.MsgCountdown, Count: count})
					r.mu.Unlock()
					count--
				} else {
					r.startGame(stop)
					return
				}
			}
		}
	}()
}

func (r *Room) stopCountdownLocked() {
	if r.countdownStop != nil {
		close(r.countdownStop)
		r.countdownStop = nil
	}
}

// startGame transitions lobby -> playing and spins up the tick loop. The
// caller passes its own stop channel; a countdown that was canceled between
// its last stop check and taking the lock is no longer the active one and
// must not start anything.
func (r *Room) startGame(stop chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countdownStop != stop {
		return
	}
	r.countdownStop = nil
	if r.sim.Phase != protocol.PhaseLobby {
		return
	}

	teacherSlots, pupilSlots := r.teamSlotsLocked()
	if len(teacherSlots) == 0 || len(pupilSlots) == 0 {
		return
	}

	r.sim.Start(teacherSlots, pupilSlots)
	r.matchBegan = time.Now()
	r.log.RecordStart(r.Code, len(teacherSlots), len(pupilSlots))

	r.broadcastLocked(protocol.StartMsg{
		Type:         protocol.MsgStart,
		TeacherCount: len(teacherSlots),
		PupilCount:   len(pupilSlots),
	})

	r.startLoopLocked()
}

// startLoopLocked runs the fixed-rate tick scheduler. The goroutine exits as
// soon as the simulation leaves the playing phase.
func (r *Room) startLoopLocked() {
	if r.loopStop != nil {
		return
	}
	stop := make(chan struct{})
	r.loopStop = stop

	go func() {
		ticker := time.NewTicker(TickDuration)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !r.step() {
					return
				}
			}
		}
	}()
}

func (r *Room) stopLoopLocked() {
	if r.loopStop != nil {
		close(r.loopStop)
		r.loopStop = nil
	}
}

// step runs one tick: consume the latest-input cells, advance the
// simulation, broadcast the snapshot. Returns false once the loop should
// end.
func (r *Room) step() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sim.Phase != protocol.PhasePlaying {
		r.loopStop = nil
		return false
	}

	teacherInputs := make(map[int]protocol.InputPayload)
	pupilInputs := make(map[int]protocol.InputPayload)

	for _, p := range r.players {
		slot := p.Role.Slot()
		if slot < 0 {
			continue
		}
		var in protocol.InputPayload
		if p.LastInput != nil {
			in = *p.LastInput
		}
		switch p.Role.Team() {
		case protocol.TeamTeacher:
			teacherInputs[slot] = in
		case protocol.TeamPupil:
			// Edge detection: a throw or refill fires only on the tick
			// where the click level transitions from up to down.
			isDown := in.Click
			in.Click = isDown && !p.PrevClick
			p.PrevClick = isDown
			pupilInputs[slot] = in
		}
	}

	r.sim.Update(1.0/float64(TickRate), teacherInputs, pupilInputs)

	snap := r.sim.Snapshot()
	r.broadcastLocked(snap)
	r.log.RecordEvents(r.Code, snap.Tick, snap.Events)

	if r.sim.Phase == protocol.PhaseGameOver {
		r.log.RecordEnd(r.Code, r.sim.Winner, time.Since(r.matchBegan).Seconds())
		r.loopStop = nil
		return false
	}
	return true
}
