package model

// WSMove is a move request as sent by a client over the WebSocket.
// Promotion is the piece name ("queen", "rook", "knight", "bishop") and is
// required when a pawn reaches the last rank.
type WSMove struct {
	From      Position `json:"from"`
	To        Position `json:"to"`
	Promotion string   `json:"promotion"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply is one half-move as stored in the move history.
type Ply struct {
	Piece          *Piece          `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      string          `json:"promotion"`
	Notation       string          `json:"notation"`
}

// Move pairs a white ply with the black reply.
type Move struct {
	WhitePly Ply `json:"whitePly"`
	BlackPly Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// promotionLetters maps client piece names to the notation suffix the
// engine expects on the destination square.
var promotionLetters = map[string]string{
	"queen":  "q",
	"rook":   "r",
	"knight": "n",
	"bishop": "b",
}
