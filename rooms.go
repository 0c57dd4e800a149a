package main

import "sync"

const maxRooms = 100

// RoomManager handles creation and lookup of rooms by their opaque code.
// Rooms are created on first connection to a code and removed when the last
// connection closes.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	log   *MatchLog
}

// NewRoomManager creates a new RoomManager
func NewRoomManager(log *MatchLog) *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*Room),
		log:   log,
	}
}

// GetOrCreate returns the room for the given code, creating it if needed.
// Returns nil for an empty code or when the room limit is reached.
func (rm *RoomManager) GetOrCreate(code string) *Room {
	if code == "" {
		return nil
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if room, ok := rm.rooms[code]; ok {
		return room
	}
	if len(rm.rooms) >= maxRooms {
		return nil
	}
	room := NewRoom(code, rm.log)
	rm.rooms[code] = room
	return room
}

// Get returns an existing room, or nil
func (rm *RoomManager) Get(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// Leave removes a player from their room, destroying the room once empty
func (rm *RoomManager) Leave(code, playerID string) {
	rm.mu.RLock()
	room, ok := rm.rooms[code]
	rm.mu.RUnlock()
	if !ok {
		return
	}
	if room.RemovePlayer(playerID) {
		rm.mu.Lock()
		if r, ok := rm.rooms[code]; ok && r.PlayerCount() == 0 {
			r.Stop()
			delete(rm.rooms, code)
		}
		rm.mu.Unlock()
	}
}

// RoomCount returns the number of active rooms
func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}
