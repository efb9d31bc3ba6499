package main

import (
	"testing"
	"time"
)

func twoPlayerRoom(t *testing.T) *Room {
	t.Helper()
	r := newRoom("TEST01", defaultSettings())
	if _, outcome := r.join("host", "Alice", "cat"); outcome != joinedNew {
		t.Fatal("host join failed")
	}
	if _, outcome := r.join("guest", "Bob", "dog"); outcome != joinedNew {
		t.Fatal("guest join failed")
	}
	return r
}

func TestJoinAssignsSeats(t *testing.T) {
	r := twoPlayerRoom(t)

	host := r.Players["host"]
	guest := r.Players["guest"]
	if !host.IsHost || host.Color != hostColor {
		t.Errorf("host seat wrong: %+v", host)
	}
	if guest.IsHost || guest.Color != guestColor {
		t.Errorf("guest seat wrong: %+v", guest)
	}
	if r.HostID != "host" || r.GuestID != "guest" {
		t.Errorf("seat ids wrong: host=%q guest=%q", r.HostID, r.GuestID)
	}
}

func TestJoinRejectsThirdPlayer(t *testing.T) {
	r := twoPlayerRoom(t)
	if _, outcome := r.join("third", "Carol", "owl"); outcome != joinRejected {
		t.Fatal("third player should be rejected")
	}
}

func TestJoinRejectsNewPlayerOutsideWaiting(t *testing.T) {
	r := newRoom("TEST01", defaultSettings())
	r.join("host", "Alice", "cat")
	r.Status = StatusPlaying
	if _, outcome := r.join("guest", "Bob", "dog"); outcome != joinRejected {
		t.Fatal("fresh join should be rejected mid-game")
	}
}

func TestJoinReconnectionCancelsGraceTimer(t *testing.T) {
	r := twoPlayerRoom(t)
	r.Status = StatusPlaying

	if r.markDisconnected("guest") == nil {
		t.Fatal("markDisconnected returned nil")
	}
	r.disconnectTimers["guest"] = time.AfterFunc(time.Hour, func() {})

	p, outcome := r.join("guest", "Bob", "dog")
	if outcome != joinedReconnect {
		t.Fatalf("got outcome %v, want reconnect", outcome)
	}
	if !p.IsConnected {
		t.Error("reconnected player not marked connected")
	}
	if len(r.disconnectTimers) != 0 {
		t.Error("grace timer survived reconnection")
	}
}

func TestSetReadyTransitions(t *testing.T) {
	r := twoPlayerRoom(t)

	r.setReady("host", true)
	if r.Status != StatusWaiting {
		t.Fatalf("one ready player moved status to %s", r.Status)
	}
	r.setReady("guest", true)
	if r.Status != StatusReady {
		t.Fatalf("both ready but status is %s", r.Status)
	}
	r.setReady("host", false)
	if r.Status != StatusWaiting {
		t.Fatalf("un-ready did not revert status, got %s", r.Status)
	}
}

func TestSetReadyNoOpWhenFinished(t *testing.T) {
	r := twoPlayerRoom(t)
	r.Status = StatusFinished
	if r.setReady("host", true) {
		t.Fatal("ready toggle should be a no-op on a finished room")
	}
}

func startFixtureGame(t *testing.T) *Room {
	t.Helper()
	r := twoPlayerRoom(t)
	r.Status = StatusReady
	r.beginGame(fixturePuzzle())
	return r
}

func TestApplyClaimScoresPerWord(t *testing.T) {
	r := startFixtureGame(t)

	if _, reason, _ := r.applyClaim("host", "WOLF", Position{0, 0}, Position{0, 3}); reason != "" {
		t.Fatalf("claim rejected: %s", reason)
	}

	host := r.Players["host"]
	if host.Score != pointsPerWord*len(host.WordsFound) {
		t.Fatalf("score %d does not match %d found words", host.Score, len(host.WordsFound))
	}
	if len(r.FoundWords) != 1 || r.FoundWords[0].FoundBy != "host" {
		t.Fatalf("foundWords wrong: %+v", r.FoundWords)
	}
}

func TestApplyClaimSecondIdenticalClaimRejected(t *testing.T) {
	r := startFixtureGame(t)

	r.applyClaim("host", "WOLF", Position{0, 0}, Position{0, 3})
	_, reason, _ := r.applyClaim("guest", "WOLF", Position{0, 0}, Position{0, 3})
	if reason != reasonAlreadyClaimed {
		t.Fatalf("got reason %q, want %q", reason, reasonAlreadyClaimed)
	}
	if r.Players["guest"].Score != 0 {
		t.Error("rejected claim changed the score")
	}
}

func TestApplyClaimOutsidePlaying(t *testing.T) {
	r := twoPlayerRoom(t)
	if _, reason, _ := r.applyClaim("host", "WOLF", Position{0, 0}, Position{0, 3}); reason == "" {
		t.Fatal("claim accepted outside playing")
	}
}

func TestLastClaimCompletesAndScoresDecideWinner(t *testing.T) {
	r := startFixtureGame(t)

	if _, _, complete := r.applyClaim("host", "WOLF", Position{0, 0}, Position{0, 3}); complete {
		t.Fatal("match complete after the first of two words")
	}
	_, reason, complete := r.applyClaim("host", "BEAR", Position{4, 0}, Position{1, 0})
	if reason != "" {
		t.Fatalf("claim rejected: %s", reason)
	}
	if !complete {
		t.Fatal("all words found but complete not reported")
	}

	r.endByScore()
	if r.Status != StatusFinished {
		t.Fatalf("status %s after completion", r.Status)
	}
	if r.WinnerID != "host" || r.IsDraw {
		t.Fatalf("winner=%q draw=%v, want host win", r.WinnerID, r.IsDraw)
	}
}

func TestEqualScoresEndInDraw(t *testing.T) {
	r := startFixtureGame(t)

	r.applyClaim("host", "WOLF", Position{0, 0}, Position{0, 3})
	r.applyClaim("guest", "BEAR", Position{1, 0}, Position{4, 0})

	r.endByScore()
	if !r.IsDraw || r.WinnerID != "" {
		t.Fatalf("winner=%q draw=%v, want a draw", r.WinnerID, r.IsDraw)
	}
}

func TestEndByForfeitIgnoresScores(t *testing.T) {
	r := startFixtureGame(t)
	r.applyClaim("host", "WOLF", Position{0, 0}, Position{0, 3})

	// The trailing player still wins when the opponent departs.
	r.endByForfeit("guest")
	if r.WinnerID != "guest" || r.IsDraw {
		t.Fatalf("winner=%q draw=%v, want guest win", r.WinnerID, r.IsDraw)
	}
}

func TestRemovePlayerPromotesRemainingToHost(t *testing.T) {
	r := twoPlayerRoom(t)

	removed, promoted := r.removePlayer("host")
	if removed == nil || removed.ID != "host" {
		t.Fatal("host not removed")
	}
	if promoted == nil || promoted.ID != "guest" {
		t.Fatal("guest not promoted")
	}
	if !promoted.IsHost || promoted.Color != hostColor {
		t.Errorf("promoted player keeps guest trappings: %+v", promoted)
	}
	if r.HostID != "guest" || r.GuestID != "" {
		t.Errorf("seat ids wrong after promotion: host=%q guest=%q", r.HostID, r.GuestID)
	}
}

func TestVoteRematchRequiresUnanimity(t *testing.T) {
	r := startFixtureGame(t)
	r.endByScore()

	unanimous, counted := r.voteRematch("host")
	if !counted || unanimous {
		t.Fatalf("first vote: counted=%v unanimous=%v", counted, unanimous)
	}
	if _, counted := r.voteRematch("host"); counted {
		t.Fatal("duplicate vote counted")
	}
	unanimous, _ = r.voteRematch("guest")
	if !unanimous {
		t.Fatal("two votes from two players not unanimous")
	}
}

func TestVoteRematchOnlyWhenFinished(t *testing.T) {
	r := startFixtureGame(t)
	if _, counted := r.voteRematch("host"); counted {
		t.Fatal("vote counted while playing")
	}
}

func TestResetForRematchClearsMatchState(t *testing.T) {
	r := startFixtureGame(t)
	r.applyClaim("host", "WOLF", Position{0, 0}, Position{0, 3})
	r.endByScore()
	r.voteRematch("host")
	r.voteRematch("guest")

	r.resetForRematch()

	if r.Status != StatusReady {
		t.Fatalf("status %s after two-player rematch reset", r.Status)
	}
	if r.Puzzle != nil || len(r.FoundWords) != 0 || r.WinnerID != "" || r.IsDraw {
		t.Fatal("match state survived reset")
	}
	if len(r.rematchVotes) != 0 {
		t.Fatal("votes survived reset")
	}
	for id, p := range r.Players {
		if p.Score != 0 || len(p.WordsFound) != 0 || !p.IsReady || p.Cursor != nil {
			t.Fatalf("player %s not reset: %+v", id, p)
		}
	}
}

func TestResetForRematchWithLoneOccupantWaits(t *testing.T) {
	r := twoPlayerRoom(t)
	r.Status = StatusFinished
	r.removePlayer("guest")

	r.resetForRematch()
	if r.Status != StatusWaiting {
		t.Fatalf("status %s, a lone occupant cannot be ready", r.Status)
	}
}

func TestTeardownStopsOutstandingTimers(t *testing.T) {
	r := twoPlayerRoom(t)
	fired := make(chan struct{}, 2)
	r.disconnectTimers["guest"] = time.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })
	r.gameTimer = time.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })

	r.teardown()

	if !r.closed || len(r.disconnectTimers) != 0 || r.gameTimer != nil {
		t.Fatal("teardown left timer state behind")
	}
	select {
	case <-fired:
		t.Fatal("timer fired after teardown")
	case <-time.After(150 * time.Millisecond):
	}
}
