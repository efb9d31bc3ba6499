package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for WebSocket
	},
}

const (
	sendBufferSize = 32
	writeTimeout   = 10 * time.Second
)

// client is one live socket. playerID and roomCode are only touched from
// the read loop, so they need no lock; the writer goroutine sees only the
// send channel.
type client struct {
	conn      *websocket.Conn
	sendCh    chan []byte
	done      chan struct{}
	closeOnce sync.Once

	playerID string
	roomCode string
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:   conn,
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// writePump is the single writer for the socket. It exits on the first
// failed write or when the client is shut down.
func (c *client) writePump() {
	defer c.conn.Close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.shutdown()
				return
			}
		}
	}
}

// enqueue hands a frame to the writer without ever blocking the caller.
// Dead or saturated connections just miss the frame.
func (c *client) enqueue(data []byte) {
	if data == nil {
		return
	}
	select {
	case <-c.done:
	case c.sendCh <- data:
	default:
		log.Printf("send buffer full, dropping frame for %s", c.playerID)
	}
}

func (c *client) send(v any) {
	c.enqueue(encodeMessage(v))
}

func (c *client) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

// wsHandler upgrades the connection and runs the per-connection read loop.
// Messages are dispatched one at a time, which preserves per-connection
// ordering.
func (h *Hub) wsHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}

	cl := newClient(conn)
	go cl.writePump()
	log.Println("🔌 Client connected")

	defer func() {
		cl.shutdown()
		h.handleDisconnect(cl)
		log.Printf("❌ Client disconnected: %s", cl.playerID)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.dispatch(cl, raw)
	}
}

// dispatch decodes the envelope and routes to the matching handler. The
// switch is exhaustive over the protocol; anything else is a protocol
// error answered to the sender only.
func (h *Hub) dispatch(c *client, raw []byte) {
	var env clientEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.send(newError("Invalid message"))
		return
	}

	switch env.Type {
	case msgJoinRoom:
		var m joinRoomMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			c.send(newError("Invalid message"))
			return
		}
		h.handleJoin(c, m)
	case msgLeaveRoom:
		h.handleLeave(c)
	case msgPlayerReady:
		var m playerReadyMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			c.send(newError("Invalid message"))
			return
		}
		h.handleReady(c, m)
	case msgUpdateAvatar:
		var m updateAvatarMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			c.send(newError("Invalid message"))
			return
		}
		h.handleAvatar(c, m)
	case msgCursorMove:
		var m cursorMoveMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			c.send(newError("Invalid message"))
			return
		}
		h.handleCursorMove(c, m)
	case msgCursorLeave:
		h.handleCursorLeave(c)
	case msgClaimWord:
		var m claimWordMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			c.send(newError("Invalid message"))
			return
		}
		h.handleClaim(c, m)
	case msgRequestRematch:
		h.handleRematch(c)
	case msgChatMessage:
		var m chatMessageMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			c.send(newError("Invalid message"))
			return
		}
		h.handleChat(c, m)
	case msgTyping:
		var m typingMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			c.send(newError("Invalid message"))
			return
		}
		h.handleTyping(c, m)
	case msgPing:
		c.send(newPong())
	default:
		c.send(newError("Unknown message type"))
	}
}

// room resolves the sender's current room, or nil for clients that have
// not joined one.
func (h *Hub) roomOf(c *client) *Room {
	if c.roomCode == "" {
		return nil
	}
	return h.Room(c.roomCode)
}

// broadcastRoom fans a frame out to every member with a live handle.
// Callers hold r.mu, so the payload is a consistent snapshot.
func (h *Hub) broadcastRoom(r *Room, data []byte) {
	for id := range r.Players {
		if cl := h.conn(id); cl != nil {
			cl.enqueue(data)
		}
	}
}

func (h *Hub) broadcastOthers(r *Room, senderID string, data []byte) {
	for id := range r.Players {
		if id == senderID {
			continue
		}
		if cl := h.conn(id); cl != nil {
			cl.enqueue(data)
		}
	}
}

func (h *Hub) handleJoin(c *client, m joinRoomMsg) {
	if c.roomCode != "" {
		c.send(newError("Already in a room"))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(m.RoomID))
	room := h.Room(code)
	if room == nil {
		c.send(newError("Room not found"))
		return
	}

	playerID := m.PlayerID
	if playerID == "" {
		playerID = uuid.New().String()
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, outcome := room.join(playerID, m.Name, m.Avatar)
	if outcome == joinRejected {
		c.send(newError("Unable to join room"))
		return
	}

	c.playerID = p.ID
	c.roomCode = room.Code
	h.bind(p.ID, c)

	switch outcome {
	case joinedNew:
		log.Printf("🔌 %s [%s] joined room %s", p.DisplayName, p.ID, room.Code)
		h.broadcastOthers(room, p.ID, encodeMessage(newPlayerJoined(p)))
	case joinedReconnect:
		log.Printf("🔁 %s [%s] reconnected to room %s", p.DisplayName, p.ID, room.Code)
		h.broadcastOthers(room, p.ID, encodeMessage(newPlayerReconnected(p.ID)))
	}

	c.enqueue(encodeMessage(newRoomState(room)))
}

func (h *Hub) handleLeave(c *client) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	room.mu.Lock()
	h.departLocked(room, c.playerID, "left")
	room.mu.Unlock()

	h.unbind(c.playerID, c)
	c.roomCode = ""
}

// departLocked removes a player for good: forfeits a running match to the
// opponent, migrates the host seat, and deletes the room when it empties.
// Shared by explicit leaves and grace-period expiry.
func (h *Hub) departLocked(room *Room, playerID, reason string) {
	p, ok := room.Players[playerID]
	if !ok {
		return
	}

	if room.Status == StatusPlaying {
		if opp := room.remainingOpponent(playerID); opp != nil {
			room.endByForfeit(opp.ID)
			host, guest := room.hostGuestScores()
			h.broadcastOthers(room, playerID, encodeMessage(newOpponentLeft(reason)))
			h.broadcastOthers(room, playerID, encodeMessage(gameEndedMsg{
				Type: "game_ended", WinnerID: room.WinnerID, IsDraw: false,
				HostScore: host, GuestScore: guest,
			}))
			log.Printf("🏁 Room %s: %s wins by forfeit", room.Code, opp.ID)
		}
	}

	room.removePlayer(playerID)
	log.Printf("👋 %s [%s] left room %s (%s)", p.DisplayName, playerID, room.Code, reason)

	if len(room.Players) == 0 {
		room.teardown()
		h.removeRoom(room.Code)
		log.Printf("🧹 Room %s deleted", room.Code)
		return
	}

	h.broadcastRoom(room, encodeMessage(newPlayerLeft(playerID, p.DisplayName)))
	h.broadcastRoom(room, encodeMessage(newRoomState(room)))
}

func (h *Hub) handleReady(c *client, m playerReadyMsg) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if !room.setReady(c.playerID, m.Ready) {
		return
	}
	h.broadcastRoom(room, encodeMessage(newPlayerReadyChanged(c.playerID, m.Ready)))

	if room.Status == StatusReady {
		h.startCountdownLocked(room, false)
	}
}

// startCountdownLocked kicks off the 3-2-1 countdown. The sequence number
// lets a superseded countdown goroutine notice and die quietly.
func (h *Hub) startCountdownLocked(room *Room, rematch bool) {
	room.countdownSeq++
	go h.runCountdown(room, room.countdownSeq, rematch)
}

func (h *Hub) runCountdown(room *Room, seq int, rematch bool) {
	for i := countdownSeconds; i >= 1; i-- {
		room.mu.Lock()
		if room.countdownSeq != seq || room.Status != StatusReady {
			room.mu.Unlock()
			return
		}
		if rematch {
			h.broadcastRoom(room, encodeMessage(newRematchStarting(i)))
		} else {
			h.broadcastRoom(room, encodeMessage(newGameStarting(i)))
		}
		room.mu.Unlock()
		time.Sleep(time.Second)
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.countdownSeq != seq || room.Status != StatusReady {
		return
	}

	puzzle := generatePuzzle(room.Settings)
	room.beginGame(puzzle)
	room.gameTimer = time.AfterFunc(
		time.Duration(room.Settings.TimeLimitSeconds)*time.Second,
		func() { h.timeLimitExpired(room) },
	)
	log.Printf("🎮 Room %s: game started with %d words", room.Code, len(puzzle.Words))
	h.broadcastRoom(room, encodeMessage(newGameStarted(puzzle, room.StartedAt.UnixMilli())))
}

func (h *Hub) timeLimitExpired(room *Room) {
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.closed || room.Status != StatusPlaying {
		return
	}
	room.endByScore()
	host, guest := room.hostGuestScores()
	log.Printf("⏰ Room %s: time limit reached", room.Code)
	h.broadcastRoom(room, encodeMessage(gameEndedMsg{
		Type: "game_ended", WinnerID: room.WinnerID, IsDraw: room.IsDraw,
		HostScore: host, GuestScore: guest,
	}))
}

func (h *Hub) handleClaim(c *client, m claimWordMsg) {
	room := h.roomOf(c)
	if room == nil {
		c.send(newWordClaimRejected(m.Word, "Not in a room"))
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	found, reason, complete := room.applyClaim(c.playerID, strings.ToUpper(m.Word), m.Start, m.End)
	if reason != "" {
		c.send(newWordClaimRejected(m.Word, reason))
		return
	}

	host, guest := room.hostGuestScores()
	h.broadcastRoom(room, encodeMessage(wordClaimedMsg{
		Type: "word_claimed", Word: found.Word,
		PlayerID: c.playerID, PlayerName: room.Players[c.playerID].DisplayName,
		Start: found.Start, End: found.End,
		HostScore: host, GuestScore: guest,
	}))

	if complete {
		room.endByScore()
		log.Printf("🏁 Room %s: all words found", room.Code)
		h.broadcastRoom(room, encodeMessage(gameEndedMsg{
			Type: "game_ended", WinnerID: room.WinnerID, IsDraw: room.IsDraw,
			HostScore: host, GuestScore: guest,
		}))
	}
}

func (h *Hub) handleRematch(c *client) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	unanimous, counted := room.voteRematch(c.playerID)
	if !counted {
		return
	}
	h.broadcastRoom(room, encodeMessage(newRematchRequested(c.playerID)))

	if unanimous {
		room.resetForRematch()
		h.broadcastRoom(room, encodeMessage(newRoomState(room)))
		if room.Status == StatusReady {
			h.startCountdownLocked(room, true)
		}
	}
}

func (h *Hub) handleAvatar(c *client, m updateAvatarMsg) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.Players[c.playerID]
	if !ok {
		return
	}
	p.Avatar = m.Avatar
	h.broadcastOthers(room, c.playerID, encodeMessage(newPlayerAvatarChanged(c.playerID, m.Avatar)))
}

func (h *Hub) handleCursorMove(c *client, m cursorMoveMsg) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.Players[c.playerID]
	if !ok {
		return
	}
	p.Cursor = &Cursor{X: m.X, Y: m.Y}
	h.broadcastOthers(room, c.playerID, encodeMessage(newCursorUpdate(c.playerID, m.X, m.Y)))
}

func (h *Hub) handleCursorLeave(c *client) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.Players[c.playerID]
	if !ok {
		return
	}
	p.Cursor = nil
	h.broadcastOthers(room, c.playerID, encodeMessage(newCursorLeft(c.playerID)))
}

func (h *Hub) handleChat(c *client, m chatMessageMsg) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	content := strings.TrimSpace(m.Content)
	if content == "" || utf8.RuneCountInString(content) > maxChatLength {
		c.send(newError("Invalid chat message"))
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p, ok := room.Players[c.playerID]
	if !ok {
		return
	}
	h.broadcastRoom(room, encodeMessage(chatBroadcastMsg{
		Type: "chat_message", ID: uuid.New().String(),
		SenderID: p.ID, SenderName: p.DisplayName, SenderAvatar: p.Avatar,
		Content: content, Timestamp: time.Now().UnixMilli(),
	}))
}

func (h *Hub) handleTyping(c *client, m typingMsg) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if _, ok := room.Players[c.playerID]; !ok {
		return
	}
	h.broadcastOthers(room, c.playerID, encodeMessage(newPlayerTyping(c.playerID, m.IsTyping)))
}

// handleDisconnect runs when a socket dies. The player keeps their seat
// for the grace window; only the timer (or an explicit leave) makes the
// departure permanent.
func (h *Hub) handleDisconnect(c *client) {
	room := h.roomOf(c)
	if room == nil {
		return
	}

	// A reconnect may already have bound a fresh socket for this player;
	// the old socket's teardown then arrives late and must not touch the
	// live seat.
	if h.conn(c.playerID) != c {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	p := room.markDisconnected(c.playerID)
	if p == nil {
		return
	}

	h.broadcastOthers(room, c.playerID, encodeMessage(newPlayerDisconnected(p.ID, p.DisplayName)))
	h.broadcastOthers(room, c.playerID, encodeMessage(newCursorLeft(p.ID)))

	playerID := c.playerID
	room.cancelDisconnectTimer(playerID)
	room.disconnectTimers[playerID] = time.AfterFunc(disconnectGrace, func() {
		h.graceExpired(room, playerID)
	})
	log.Printf("⏳ %s [%s] has %s to reconnect to room %s", p.DisplayName, playerID, disconnectGrace, room.Code)
}

// graceExpired fires once the reconnect window closes. A reconnection in
// the meantime either stopped the timer or flipped IsConnected back, so a
// late callback is a no-op.
func (h *Hub) graceExpired(room *Room, playerID string) {
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return
	}
	p, ok := room.Players[playerID]
	if !ok || p.IsConnected {
		return
	}
	delete(room.disconnectTimers, playerID)

	if cl := h.conn(playerID); cl != nil {
		h.unbind(playerID, cl)
	}
	h.departLocked(room, playerID, "disconnected")
}
