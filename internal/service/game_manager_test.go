package service

import (
	"encoding/json"
	"testing"

	"github.com/IndaPlus23/eliassam-chess/internal/model"
	"github.com/IndaPlus23/eliassam-chess/internal/testutil"
)

func TestMatchmakingNotifiesBothPlayers(t *testing.T) {
	gm := NewGameManager(nil)

	ch1 := make(chan string, 1)
	ch2 := make(chan string, 1)
	testutil.AssertNoError(t, gm.RegisterMatchmakingChannel("p1", ch1))
	testutil.AssertNoError(t, gm.RegisterMatchmakingChannel("p2", ch2))
	testutil.AssertNoError(t, gm.JoinMatchmaking("p1"))
	testutil.AssertNoError(t, gm.JoinMatchmaking("p2"))

	gm.matchWaiting()

	var ev1, ev2 model.MatchFoundEvent
	testutil.AssertNoError(t, json.Unmarshal([]byte(<-ch1), &ev1))
	testutil.AssertNoError(t, json.Unmarshal([]byte(<-ch2), &ev2))

	testutil.AssertEqual(t, ev1.GameID, ev2.GameID)
	testutil.AssertEqual(t, ev1.Color, model.PlayerColorWhite)
	testutil.AssertEqual(t, ev2.Color, model.PlayerColorBlack)

	game, err := gm.GetGame(ev1.GameID)
	testutil.AssertNoError(t, err)
	white, black := game.PlayerIDs()
	testutil.AssertEqual(t, white, "p1")
	testutil.AssertEqual(t, black, "p2")
}

func TestMatchmakingWaitsForSecondPlayer(t *testing.T) {
	gm := NewGameManager(nil)

	ch := make(chan string, 1)
	testutil.AssertNoError(t, gm.RegisterMatchmakingChannel("solo", ch))
	testutil.AssertNoError(t, gm.JoinMatchmaking("solo"))

	gm.matchWaiting()

	select {
	case payload := <-ch:
		t.Fatalf("unexpected match for a lone player: %s", payload)
	default:
	}
}

func TestRegisterMatchmakingChannelReplacesStale(t *testing.T) {
	gm := NewGameManager(nil)

	stale := make(chan string, 1)
	testutil.AssertNoError(t, gm.RegisterMatchmakingChannel("p1", stale))
	testutil.AssertNoError(t, gm.RegisterMatchmakingChannel("p1", make(chan string, 1)))

	_, open := <-stale
	testutil.AssertTrue(t, !open, "stale channel closed on replacement")
}
