// Package protocol defines the JSON wire messages exchanged between the
// game server and its clients. Every message carries a "type" discriminator.
package protocol

import "encoding/json"

// Client -> Server message types
const (
	MsgSelectRole = "selectRole"
	MsgInput      = "input"
	MsgRestart    = "restart"
)

// Server -> Client message types
const (
	MsgRole         = "role"
	MsgLobby        = "lobby"
	MsgInit         = "init"
	MsgCountdown    = "countdown"
	MsgState        = "state"
	MsgDisconnected = "disconnected"
)

// MsgStart is sent in both directions: a client requests the match to begin,
// and the server announces the match start after the countdown.
const MsgStart = "start"

// Game phases as they appear on the wire.
const (
	PhaseLobby    = "lobby"
	PhasePlaying  = "playing"
	PhaseGameOver = "game_over"
)

// Winner values as they appear on the wire.
const (
	WinnerNone    = "none"
	WinnerTeacher = "teacher"
	WinnerPupil   = "pupil"
)

// Event types emitted by the simulation and delivered at most once.
const (
	EventThrow    = "throw"
	EventHit      = "hit"
	EventSplat    = "splat"
	EventGameOver = "gameover"
)

// ClientMessage is the single-pass decode target for all inbound messages.
// Unknown or missing fields are left zero; the server ignores what it
// doesn't need for the given type.
type ClientMessage struct {
	Type  string          `json:"type"`
	Role  Role            `json:"role,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// InputPayload carries the latest input for either team. Teacher roles use
// the directional/sprint booleans, pupil roles the pointer fields.
type InputPayload struct {
	Up     bool    `json:"up,omitempty"`
	Down   bool    `json:"down,omitempty"`
	Left   bool    `json:"left,omitempty"`
	Right  bool    `json:"right,omitempty"`
	Sprint bool    `json:"sprint,omitempty"`
	MouseX float64 `json:"mouseX,omitempty"`
	MouseY float64 `json:"mouseY,omitempty"`
	Click  bool    `json:"click,omitempty"`
}

// RoleMsg assigns a connection its id and current role.
type RoleMsg struct {
	Type     string `json:"type"`
	Role     Role   `json:"role"`
	PlayerID string `json:"playerId"`
}

// SlotInfo describes one role slot in the lobby broadcast.
type SlotInfo struct {
	Taken    bool   `json:"taken"`
	PlayerID string `json:"playerId,omitempty"`
}

// LobbyMsg is the full lobby snapshot broadcast after every membership or
// role change.
type LobbyMsg struct {
	Type        string   `json:"type"`
	PlayerCount int      `json:"playerCount"`
	Teacher1    SlotInfo `json:"teacher1"`
	Teacher2    SlotInfo `json:"teacher2"`
	Pupil1      SlotInfo `json:"pupil1"`
	Pupil2      SlotInfo `json:"pupil2"`
	CanStart    bool     `json:"canStart"`
}

// Obstacle is a static arena feature, sent once per connection in InitMsg.
type Obstacle struct {
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	CanHide bool    `json:"canHide"`
}

// InitMsg carries the static obstacle layout.
type InitMsg struct {
	Type      string     `json:"type"`
	Obstacles []Obstacle `json:"obstacles"`
}

// CountdownMsg is broadcast once per second before the match starts.
type CountdownMsg struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// StartMsg announces per-team role counts at match start.
type StartMsg struct {
	Type         string `json:"type"`
	TeacherCount int    `json:"teacherCount"`
	PupilCount   int    `json:"pupilCount"`
}

// DisconnectedMsg is broadcast when a mid-round disconnect aborts the round.
type DisconnectedMsg struct {
	Type    string `json:"type"`
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// TeacherState is the per-slot mover snapshot.
type TeacherState struct {
	Slot        int     `json:"slot"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Invuln      bool    `json:"invuln"`
	InvulnT     float64 `json:"invulnT"`
	Hidden      bool    `json:"hidden"`
	Sprint      bool    `json:"sprint"`
	SprintT     float64 `json:"sprintT"`
	SprintCD    float64 `json:"sprintCD"`
	SprintAvail bool    `json:"sprintAvail"`
	Goal        bool    `json:"goal"`
	Anim        string  `json:"anim"`
	Facing      bool    `json:"facing"`
}

// PupilState is the per-slot aimer snapshot.
type PupilState struct {
	Slot     int     `json:"slot"`
	CrossX   float64 `json:"crossX"`
	CrossY   float64 `json:"crossY"`
	Cooldown float64 `json:"cooldown"`
	CanThrow bool    `json:"canThrow"`
	Anim     string  `json:"anim"`
}

// PoolState is the shared egg pool snapshot.
type PoolState struct {
	Eggs      int     `json:"eggs"`
	MaxEggs   int     `json:"maxEggs"`
	Refilling bool    `json:"refilling"`
	RefillT   float64 `json:"refillT"`
}

// ProjectileState is the per-egg snapshot.
type ProjectileState struct {
	ID       uint64  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	SX       float64 `json:"sx"`
	SY       float64 `json:"sy"`
	TX       float64 `json:"tx"`
	TY       float64 `json:"ty"`
	Progress float64 `json:"progress"`
	Active   bool    `json:"active"`
}

// Event is a transient occurrence delivered exactly once with the snapshot
// of the tick it happened on.
type Event struct {
	Type   string `json:"type"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	EggID  uint64 `json:"eggId,omitempty"`
	Winner string `json:"winner,omitempty"`
}

// StateMsg is the authoritative per-tick snapshot broadcast to all room
// members. Events are drained into it and never resent.
type StateMsg struct {
	Type        string            `json:"type"`
	Tick        uint64            `json:"tick"`
	GameState   string            `json:"gameState"`
	Winner      string            `json:"winner"`
	Time        float64           `json:"time"`
	Teachers    []TeacherState    `json:"teachers"`
	Pupils      []PupilState      `json:"pupils"`
	Pool        PoolState         `json:"pool"`
	Projectiles []ProjectileState `json:"projectiles"`
	Events      []Event           `json:"events"`
}
