package main

import (
	"encoding/json"
	"log"
)

// Client -> server message types.
const (
	msgJoinRoom       = "join_room"
	msgLeaveRoom      = "leave_room"
	msgPlayerReady    = "player_ready"
	msgUpdateAvatar   = "update_avatar"
	msgCursorMove     = "cursor_move"
	msgCursorLeave    = "cursor_leave"
	msgClaimWord      = "claim_word"
	msgRequestRematch = "request_rematch"
	msgChatMessage    = "chat_message"
	msgTyping         = "typing"
	msgPing           = "ping"
)

// clientEnvelope carries only the discriminator; the dispatcher re-decodes
// the full frame into the matching variant below.
type clientEnvelope struct {
	Type string `json:"type"`
}

type joinRoomMsg struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

type playerReadyMsg struct {
	Ready bool `json:"ready"`
}

type updateAvatarMsg struct {
	Avatar string `json:"avatar"`
}

type cursorMoveMsg struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type claimWordMsg struct {
	Word  string   `json:"word"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type chatMessageMsg struct {
	Content string `json:"content"`
}

type typingMsg struct {
	IsTyping bool `json:"isTyping"`
}

// Server -> client messages. Each variant fixes its own type tag so the
// dispatcher cannot send a mislabeled payload.

type roomStateMsg struct {
	Type string `json:"type"`
	Room *Room  `json:"room"`
}

func newRoomState(room *Room) roomStateMsg {
	return roomStateMsg{Type: "room_state", Room: room}
}

type playerJoinedMsg struct {
	Type   string  `json:"type"`
	Player *Player `json:"player"`
}

func newPlayerJoined(p *Player) playerJoinedMsg {
	return playerJoinedMsg{Type: "player_joined", Player: p}
}

type playerLeftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

func newPlayerLeft(id, name string) playerLeftMsg {
	return playerLeftMsg{Type: "player_left", PlayerID: id, Name: name}
}

type playerReadyChangedMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

func newPlayerReadyChanged(id string, ready bool) playerReadyChangedMsg {
	return playerReadyChangedMsg{Type: "player_ready_changed", PlayerID: id, Ready: ready}
}

type playerAvatarChangedMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Avatar   string `json:"avatar"`
}

func newPlayerAvatarChanged(id, avatar string) playerAvatarChangedMsg {
	return playerAvatarChangedMsg{Type: "player_avatar_changed", PlayerID: id, Avatar: avatar}
}

type gameStartingMsg struct {
	Type      string `json:"type"`
	Countdown int    `json:"countdown"`
}

func newGameStarting(countdown int) gameStartingMsg {
	return gameStartingMsg{Type: "game_starting", Countdown: countdown}
}

type gameStartedMsg struct {
	Type      string      `json:"type"`
	Puzzle    *PuzzleData `json:"puzzle"`
	StartTime int64       `json:"startTime"`
}

func newGameStarted(puzzle *PuzzleData, startTime int64) gameStartedMsg {
	return gameStartedMsg{Type: "game_started", Puzzle: puzzle, StartTime: startTime}
}

type cursorUpdateMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

func newCursorUpdate(id string, x, y int) cursorUpdateMsg {
	return cursorUpdateMsg{Type: "cursor_update", PlayerID: id, X: x, Y: y}
}

type cursorLeftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

func newCursorLeft(id string) cursorLeftMsg {
	return cursorLeftMsg{Type: "cursor_left", PlayerID: id}
}

type wordClaimedMsg struct {
	Type       string   `json:"type"`
	Word       string   `json:"word"`
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Start      Position `json:"start"`
	End        Position `json:"end"`
	HostScore  int      `json:"hostScore"`
	GuestScore int      `json:"guestScore"`
}

type wordClaimRejectedMsg struct {
	Type   string `json:"type"`
	Word   string `json:"word"`
	Reason string `json:"reason"`
}

func newWordClaimRejected(word, reason string) wordClaimRejectedMsg {
	return wordClaimRejectedMsg{Type: "word_claim_rejected", Word: word, Reason: reason}
}

type gameEndedMsg struct {
	Type       string `json:"type"`
	WinnerID   string `json:"winnerId"`
	IsDraw     bool   `json:"isDraw"`
	HostScore  int    `json:"hostScore"`
	GuestScore int    `json:"guestScore"`
}

type playerDisconnectedMsg struct {
	Type             string `json:"type"`
	PlayerID         string `json:"playerId"`
	Name             string `json:"name"`
	ReconnectGraceMs int64  `json:"reconnectGraceMs"`
}

func newPlayerDisconnected(id, name string) playerDisconnectedMsg {
	return playerDisconnectedMsg{
		Type:             "player_disconnected",
		PlayerID:         id,
		Name:             name,
		ReconnectGraceMs: disconnectGrace.Milliseconds(),
	}
}

type playerReconnectedMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

func newPlayerReconnected(id string) playerReconnectedMsg {
	return playerReconnectedMsg{Type: "player_reconnected", PlayerID: id}
}

type opponentLeftMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

func newOpponentLeft(reason string) opponentLeftMsg {
	return opponentLeftMsg{Type: "opponent_left", Reason: reason}
}

type rematchRequestedMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

func newRematchRequested(id string) rematchRequestedMsg {
	return rematchRequestedMsg{Type: "rematch_requested", PlayerID: id}
}

type rematchStartingMsg struct {
	Type      string `json:"type"`
	Countdown int    `json:"countdown"`
}

func newRematchStarting(countdown int) rematchStartingMsg {
	return rematchStartingMsg{Type: "rematch_starting", Countdown: countdown}
}

type chatBroadcastMsg struct {
	Type         string `json:"type"`
	ID           string `json:"id"`
	SenderID     string `json:"senderId"`
	SenderName   string `json:"senderName"`
	SenderAvatar string `json:"senderAvatar"`
	Content      string `json:"content"`
	Timestamp    int64  `json:"timestamp"`
}

type playerTypingMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	IsTyping bool   `json:"isTyping"`
}

func newPlayerTyping(id string, isTyping bool) playerTypingMsg {
	return playerTypingMsg{Type: "player_typing", PlayerID: id, IsTyping: isTyping}
}

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newError(message string) errorMsg {
	return errorMsg{Type: "error", Message: message}
}

type pongMsg struct {
	Type string `json:"type"`
}

func newPong() pongMsg {
	return pongMsg{Type: "pong"}
}

// encodeMessage marshals an outbound variant. Marshal only fails on
// unencodable types, so an error here is a programming bug worth logging.
func encodeMessage(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return nil
	}
	return data
}
