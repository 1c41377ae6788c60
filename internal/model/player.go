package model

// Player identifies a participant waiting in the matchmaking queue. The
// ID is client supplied; connections are tracked per game, not per player.
type Player struct {
	ID string
}

// ClientPlayer is the wire representation of a seated player. TimeLeft is
// in tenths of a second, matching the clock snapshots.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

// PlayerColor is the seat a player was assigned when joining a game.
type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)
