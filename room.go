package main

import (
	"time"
)

// All methods in this file expect r.mu to already be held by the caller.
// The dispatcher and every timer callback take the lock before touching a
// room, which is what serializes claims against disconnects and expiries.

func newRoom(code string, settings GameSettings) *Room {
	return &Room{
		Code:             code,
		Players:          make(map[string]*Player),
		Settings:         settings,
		Status:           StatusWaiting,
		FoundWords:       []FoundWord{},
		rematchVotes:     make(map[string]bool),
		disconnectTimers: make(map[string]*time.Timer),
	}
}

type joinOutcome int

const (
	joinRejected joinOutcome = iota
	joinedNew
	joinedReconnect
)

// join admits a new player or re-admits a returning one. Reconnection
// succeeds in any status; fresh joins only while waiting with a seat free.
func (r *Room) join(playerID, name, avatar string) (*Player, joinOutcome) {
	if r.closed {
		return nil, joinRejected
	}

	if p, ok := r.Players[playerID]; ok {
		p.IsConnected = true
		r.cancelDisconnectTimer(playerID)
		return p, joinedReconnect
	}

	if r.Status != StatusWaiting {
		return nil, joinRejected
	}
	if len(r.Players) >= 2 && playerID != r.GuestID {
		return nil, joinRejected
	}

	p := &Player{
		ID:          playerID,
		DisplayName: name,
		Avatar:      avatar,
		IsConnected: true,
		WordsFound:  []string{},
	}
	if r.HostID == "" {
		p.IsHost = true
		p.Color = hostColor
		r.HostID = playerID
	} else {
		p.Color = guestColor
		r.GuestID = playerID
	}
	r.Players[playerID] = p
	return p, joinedNew
}

// setReady flips a player's ready flag and recomputes the room status.
// Returns false when the toggle has no effect in the current status.
func (r *Room) setReady(playerID string, ready bool) bool {
	if r.Status != StatusWaiting && r.Status != StatusReady {
		return false
	}
	p, ok := r.Players[playerID]
	if !ok {
		return false
	}
	p.IsReady = ready

	if len(r.Players) == 2 && r.allReady() {
		r.Status = StatusReady
	} else {
		r.Status = StatusWaiting
	}
	return true
}

func (r *Room) allReady() bool {
	for _, p := range r.Players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

// beginGame moves a ready room into play with a fresh puzzle.
func (r *Room) beginGame(puzzle *PuzzleData) {
	r.Status = StatusPlaying
	r.Puzzle = puzzle
	r.FoundWords = []FoundWord{}
	r.StartedAt = time.Now()
	r.EndedAt = time.Time{}
	r.WinnerID = ""
	r.IsDraw = false
	for _, p := range r.Players {
		p.Score = 0
		p.WordsFound = []string{}
		p.IsReady = false
	}
}

// applyClaim validates and scores one word claim. The bool reports whether
// this claim completed the puzzle; the caller ends the game in that case.
func (r *Room) applyClaim(playerID, word string, start, end Position) (FoundWord, string, bool) {
	if r.Status != StatusPlaying {
		return FoundWord{}, "Game is not in progress", false
	}
	p, ok := r.Players[playerID]
	if !ok {
		return FoundWord{}, "Not a room member", false
	}

	found, reason := validateClaim(r.Puzzle, r.FoundWords, playerID, word, start, end)
	if reason != "" {
		return FoundWord{}, reason, false
	}

	r.FoundWords = append(r.FoundWords, found)
	p.Score += pointsPerWord
	p.WordsFound = append(p.WordsFound, found.Word)

	return found, "", len(r.FoundWords) == len(r.Puzzle.Words)
}

// endByScore finishes the match on the score comparison: strictly higher
// wins, equal is a draw. Used for completion and time-limit expiry, where
// both players are still in the room.
func (r *Room) endByScore() {
	host, guest := r.hostGuestScores()
	switch {
	case host > guest:
		r.WinnerID = r.HostID
	case guest > host:
		r.WinnerID = r.GuestID
	default:
		r.IsDraw = true
	}
	r.finish()
}

// endByForfeit finishes the match with an unconditional winner, used when
// the opponent left or never came back from a disconnect.
func (r *Room) endByForfeit(winnerID string) {
	r.WinnerID = winnerID
	r.IsDraw = false
	r.finish()
}

func (r *Room) finish() {
	r.Status = StatusFinished
	r.EndedAt = time.Now()
	if r.gameTimer != nil {
		r.gameTimer.Stop()
		r.gameTimer = nil
	}
}

func (r *Room) hostGuestScores() (int, int) {
	host, guest := 0, 0
	if p, ok := r.Players[r.HostID]; ok {
		host = p.Score
	}
	if p, ok := r.Players[r.GuestID]; ok {
		guest = p.Score
	}
	return host, guest
}

// remainingOpponent returns the other room member, if any.
func (r *Room) remainingOpponent(playerID string) *Player {
	for id, p := range r.Players {
		if id != playerID {
			return p
		}
	}
	return nil
}

// removePlayer takes a player out of the room for good. The departing
// host's seat and color pass to the remaining player.
func (r *Room) removePlayer(playerID string) (removed, promoted *Player) {
	p, ok := r.Players[playerID]
	if !ok {
		return nil, nil
	}
	r.cancelDisconnectTimer(playerID)
	delete(r.Players, playerID)
	delete(r.rematchVotes, playerID)

	if playerID == r.GuestID {
		r.GuestID = ""
	}
	if playerID == r.HostID {
		r.HostID = ""
		if other := r.remainingOpponent(playerID); other != nil {
			other.IsHost = true
			other.Color = hostColor
			r.HostID = other.ID
			if other.ID == r.GuestID {
				r.GuestID = ""
			}
			promoted = other
		}
	}
	return p, promoted
}

// voteRematch records one vote and reports whether the vote is unanimous.
func (r *Room) voteRematch(playerID string) (unanimous, counted bool) {
	if r.Status != StatusFinished {
		return false, false
	}
	if _, ok := r.Players[playerID]; !ok {
		return false, false
	}
	if r.rematchVotes[playerID] {
		return false, false
	}
	r.rematchVotes[playerID] = true
	return len(r.rematchVotes) == len(r.Players), true
}

// resetForRematch clears the finished match in place. With both seats
// occupied the room goes straight back to ready so the countdown can start
// without another ready toggle; a lone occupant just waits again.
func (r *Room) resetForRematch() {
	r.Puzzle = nil
	r.FoundWords = []FoundWord{}
	r.StartedAt = time.Time{}
	r.EndedAt = time.Time{}
	r.WinnerID = ""
	r.IsDraw = false
	r.rematchVotes = make(map[string]bool)

	ready := len(r.Players) == 2
	for _, p := range r.Players {
		p.Score = 0
		p.WordsFound = []string{}
		p.Cursor = nil
		p.IsReady = ready
	}
	if ready {
		r.Status = StatusReady
	} else {
		r.Status = StatusWaiting
	}
}

// markDisconnected flags a player as gone without removing them; they keep
// their seat until the grace timer decides otherwise.
func (r *Room) markDisconnected(playerID string) *Player {
	p, ok := r.Players[playerID]
	if !ok || !p.IsConnected {
		return nil
	}
	p.IsConnected = false
	p.Cursor = nil
	return p
}

func (r *Room) cancelDisconnectTimer(playerID string) {
	if t, ok := r.disconnectTimers[playerID]; ok {
		t.Stop()
		delete(r.disconnectTimers, playerID)
	}
}

// teardown cancels everything outstanding so no timer callback can touch
// the room after it leaves the registry.
func (r *Room) teardown() {
	r.closed = true
	r.countdownSeq++
	if r.gameTimer != nil {
		r.gameTimer.Stop()
		r.gameTimer = nil
	}
	for id, t := range r.disconnectTimers {
		t.Stop()
		delete(r.disconnectTimers, id)
	}
}
