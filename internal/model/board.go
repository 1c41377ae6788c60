package model

import (
	"fmt"

	"github.com/IndaPlus23/eliassam-chess/internal/chess"
)

// Position is the client-side square coordinate: X is the file (0 = a),
// Y is the row (0 = black back rank). It mirrors chess.Square with the
// axes named the way the frontend expects.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) square() chess.Square {
	return chess.Square{Row: p.Y, Col: p.X}
}

func (p Position) onBoard() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

func positionOf(sq chess.Square) Position {
	return Position{X: sq.Col, Y: sq.Row}
}

// Piece is the wire representation of a board piece.
type Piece struct {
	Type     string   `json:"type"`
	Color    string   `json:"color"`
	Position Position `json:"position"`
}

// BoardState is the wire representation of the full board.
type BoardState struct {
	Board [][]*Piece `json:"board"`
}

var roleNames = map[chess.Role]string{
	chess.King:   "king",
	chess.Queen:  "queen",
	chess.Rook:   "rook",
	chess.Bishop: "bishop",
	chess.Knight: "knight",
	chess.Pawn:   "pawn",
}

var pieceNotations = map[chess.Role]string{
	chess.King:   "K",
	chess.Queen:  "Q",
	chess.Rook:   "R",
	chess.Bishop: "B",
	chess.Knight: "N",
	chess.Pawn:   "",
}

func colorName(c chess.Color) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// boardState snapshots the engine's board into the wire shape.
func boardState(g *chess.Game) *BoardState {
	bs := &BoardState{}
	for y := 0; y < 8; y++ {
		row := make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			if piece, ok := g.PieceAt(chess.Square{Row: y, Col: x}); ok {
				row[x] = &Piece{
					Type:     roleNames[piece.Role],
					Color:    colorName(piece.Color),
					Position: Position{X: x, Y: y},
				}
			}
		}
		bs.Board = append(bs.Board, row)
	}
	return bs
}
