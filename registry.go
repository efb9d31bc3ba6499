package main

import (
	"math/rand"
	"sync"
)

// Hub owns the two process-wide tables: room code -> room, player id ->
// connection. It is constructed once in main and handed to the transport
// layer; rooms never reach into it except through the dispatcher.
//
// Lock order is room.mu before hub.mu, never the reverse.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	conns map[string]*client
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*Room),
		conns: make(map[string]*client),
	}
}

// CreateRoom allocates a fresh code and registers an empty room with the
// given settings. The first socket to join it becomes the host.
func (h *Hub) CreateRoom(settings GameSettings) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	code := generateRoomCode()
	for _, taken := h.rooms[code]; taken; _, taken = h.rooms[code] {
		code = generateRoomCode()
	}

	room := newRoom(code, settings)
	h.rooms[code] = room
	return room
}

func (h *Hub) Room(code string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[code]
}

func (h *Hub) removeRoom(code string) {
	h.mu.Lock()
	delete(h.rooms, code)
	h.mu.Unlock()
}

// bind points a player id at a live connection, replacing any stale handle
// from before a reconnect.
func (h *Hub) bind(playerID string, c *client) {
	h.mu.Lock()
	h.conns[playerID] = c
	h.mu.Unlock()
}

// unbind drops the handle, but only if it still belongs to this client;
// a reconnect may already have rebound the id.
func (h *Hub) unbind(playerID string, c *client) {
	h.mu.Lock()
	if h.conns[playerID] == c {
		delete(h.conns, playerID)
	}
	h.mu.Unlock()
}

func (h *Hub) conn(playerID string) *client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[playerID]
}

func generateRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}
