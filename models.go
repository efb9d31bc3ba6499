package main

import (
	"sync"
	"time"
)

// Tunables. The reference client assumes these values; change with care.
const (
	pointsPerWord    = 2
	countdownSeconds = 3
	disconnectGrace  = 10 * time.Second

	roomCodeLength   = 6
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	maxChatLength = 500
)

// Player colors are positional: the host always wears hostColor, so a
// promoted guest is recolored.
const (
	hostColor  = "#3b82f6"
	guestColor = "#ef4444"
)

type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusReady    RoomStatus = "ready"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

type Position struct {
	R int `json:"r"`
	C int `json:"c"`
}

type Cursor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Player struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Avatar      string   `json:"avatar"`
	IsHost      bool     `json:"isHost"`
	IsReady     bool     `json:"isReady"`
	IsConnected bool     `json:"isConnected"`
	Score       int      `json:"score"`
	WordsFound  []string `json:"wordsFound"`
	Cursor      *Cursor  `json:"cursor,omitempty"`
	Color       string   `json:"color"`
}

type GameSettings struct {
	Theme            string `json:"theme"`
	Difficulty       string `json:"difficulty"`
	GridSize         int    `json:"gridSize"`
	WordCount        int    `json:"wordCount"`
	TimeLimitSeconds int    `json:"timeLimitSeconds"`
}

// PlacedWord is the generator's record of where a word lives in the grid.
type PlacedWord struct {
	Word  string   `json:"word"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type PuzzleData struct {
	Grid  [][]string   `json:"grid"`
	Words []PlacedWord `json:"words"`
}

type FoundWord struct {
	Word    string   `json:"word"`
	FoundBy string   `json:"foundBy"`
	Start   Position `json:"start"`
	End     Position `json:"end"`
}

// Room is the authoritative state for one match. Every mutation — client
// message, countdown tick, grace expiry, time-limit expiry — happens under
// mu, so timers can never race a claim.
type Room struct {
	Code       string             `json:"code"`
	HostID     string             `json:"hostId"`
	GuestID    string             `json:"guestId,omitempty"`
	Players    map[string]*Player `json:"players"`
	Settings   GameSettings       `json:"settings"`
	Status     RoomStatus         `json:"status"`
	Puzzle     *PuzzleData        `json:"puzzle,omitempty"`
	FoundWords []FoundWord        `json:"foundWords"`
	StartedAt  time.Time          `json:"startedAt,omitzero"`
	EndedAt    time.Time          `json:"endedAt,omitzero"`
	WinnerID   string             `json:"winnerId,omitempty"`
	IsDraw     bool               `json:"isDraw"`

	mu               sync.Mutex
	closed           bool
	rematchVotes     map[string]bool
	disconnectTimers map[string]*time.Timer
	gameTimer        *time.Timer
	countdownSeq     int
}

func defaultSettings() GameSettings {
	return GameSettings{
		Theme:            "animals",
		Difficulty:       "easy",
		GridSize:         10,
		WordCount:        8,
		TimeLimitSeconds: 180,
	}
}
