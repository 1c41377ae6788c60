package chess

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// State is the status of a position. Checkmate and Stalemate are terminal;
// once reached the position rejects further moves.
type State int

const (
	InProgress State = iota
	Check
	Checkmate
	Stalemate
)

// Terminal reports whether the game is over.
func (s State) Terminal() bool {
	return s == Checkmate || s == Stalemate
}

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "unknown"
}

// Game is a full chess position plus the bookkeeping the rules need: side
// to move, en passant target, and the two move clocks. It is mutated in
// place one move at a time and is cheap to clone, which the legality filter
// relies on.
type Game struct {
	state    State
	board    Board
	turn     Color
	epSquare *Square
	halfmove uint
	fullmove uint
}

// NewGame returns the standard starting position.
func NewGame() *Game {
	g := &Game{
		state:    InProgress,
		turn:     White,
		fullmove: 1,
	}
	backRow := []Role{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < 8; col++ {
		g.board[0][col] = &Piece{Role: backRow[col], Color: Black}
		g.board[1][col] = &Piece{Role: Pawn, Color: Black}
		g.board[6][col] = &Piece{Role: Pawn, Color: White}
		g.board[7][col] = &Piece{Role: backRow[col], Color: White}
	}
	return g
}

// Clone returns an independent copy of the position. Mutating the copy
// never affects the original.
func (g *Game) Clone() *Game {
	c := *g
	c.board = g.board.clone()
	if g.epSquare != nil {
		sq := *g.epSquare
		c.epSquare = &sq
	}
	return &c
}

// State returns the current game status.
func (g *Game) State() State { return g.state }

// Turn returns the side to move. After a terminal move it still holds the
// side that delivered mate or stalemate, since no further move exists.
func (g *Game) Turn() Color { return g.turn }

// HalfmoveClock returns the number of moves since the last pawn move or
// capture. Draw rules built on it are the caller's business.
func (g *Game) HalfmoveClock() uint { return g.halfmove }

// FullmoveClock returns the move number, incremented after each Black move.
func (g *Game) FullmoveClock() uint { return g.fullmove }

// PieceAt returns a copy of the piece on sq, if any.
func (g *Game) PieceAt(sq Square) (Piece, bool) {
	if !sq.onBoard() || g.board.at(sq) == nil {
		return Piece{}, false
	}
	return *g.board.at(sq), true
}

// Move validates and applies a move given in algebraic square notation.
// The destination may carry a promotion letter ("e8q") when a pawn reaches
// the last rank. It returns the status of the resulting position, or an
// error that leaves the position untouched.
func (g *Game) Move(from, to string) (State, error) {
	if g.state.Terminal() {
		return g.state, ErrGameOver
	}
	fromSq, err := parseSquare(from)
	if err != nil {
		return g.state, fmt.Errorf("from %q: %w", from, err)
	}
	toSq, promo, hasPromo, err := parseDestination(to)
	if err != nil {
		return g.state, fmt.Errorf("to %q: %w", to, err)
	}
	piece := g.board.at(fromSq)
	if piece == nil {
		return g.state, fmt.Errorf("%s: %w", fromSq, ErrNoPiece)
	}
	if piece.Color != g.turn {
		return g.state, fmt.Errorf("%s to move: %w", g.turn, ErrWrongTurn)
	}
	if !slices.Contains(g.LegalTargets(fromSq), toSq) {
		return g.state, fmt.Errorf("%s%s: %w", fromSq, toSq, ErrIllegalMove)
	}
	promoting := piece.Role == Pawn && (toSq.Row == 0 || toSq.Row == 7)
	if promoting && !hasPromo {
		return g.state, fmt.Errorf("%s%s: %w", fromSq, toSq, ErrPromotionChoice)
	}

	g.apply(fromSq, toSq, promo)

	// Status of the side now facing the move.
	opponent := g.turn.Opponent()
	if g.inCheck(opponent) {
		g.state = Check
	} else {
		g.state = InProgress
	}
	if g.hasAnyLegalMove(opponent) {
		if g.turn == Black {
			g.fullmove++
		}
		g.turn = opponent
		return g.state, nil
	}
	if g.state == Check {
		g.state = Checkmate
	} else {
		g.state = Stalemate
	}
	if g.turn == Black {
		g.fullmove++
	}
	return g.state, nil
}

// LegalMoves returns the notated destinations the piece on the given
// square may play. Either side's pieces may be queried.
func (g *Game) LegalMoves(square string) ([]string, error) {
	if g.state.Terminal() {
		return nil, ErrGameOver
	}
	sq, err := parseSquare(square)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", square, err)
	}
	if g.board.at(sq) == nil {
		return nil, fmt.Errorf("%s: %w", sq, ErrNoPiece)
	}
	targets := g.LegalTargets(sq)
	notated := make([]string, 0, len(targets))
	for _, t := range targets {
		notated = append(notated, t.String())
	}
	return notated, nil
}

// apply carries out the board effects of an already validated move:
// promotion, capture, en passant, castling rook relocation, clock and en
// passant bookkeeping. It never touches state or turn, which is what lets
// the legality filter run it on throwaway copies.
func (g *Game) apply(from, to Square, promo Role) {
	piece := *g.board.at(from)

	if piece.Role == Pawn && (to.Row == 0 || to.Row == 7) {
		g.board.set(to, &Piece{Role: promo, Color: piece.Color, HasMoved: true})
		g.board.set(from, nil)
		g.epSquare = nil
		g.halfmove = 0
		return
	}

	g.halfmove++
	if piece.Role == Pawn || g.board.at(to) != nil {
		g.halfmove = 0
	}
	g.board.set(to, &Piece{Role: piece.Role, Color: piece.Color, HasMoved: true})
	g.board.set(from, nil)

	if piece.Role == Pawn && g.epSquare != nil && to == *g.epSquare {
		// The captured pawn sits behind the skipped square.
		captured := Square{Row: to.Row + 1, Col: to.Col}
		if piece.Color == Black {
			captured.Row = to.Row - 1
		}
		g.board.set(captured, nil)
	}

	if piece.Role == Pawn && (to.Row-from.Row == 2 || from.Row-to.Row == 2) {
		g.epSquare = &Square{Row: (from.Row + to.Row) / 2, Col: from.Col}
	} else {
		g.epSquare = nil
	}

	if piece.Role == King && (to.Col-from.Col == 2 || from.Col-to.Col == 2) {
		rookFrom := Square{Row: to.Row, Col: 0}
		rookTo := Square{Row: to.Row, Col: 3}
		if to.Col > from.Col {
			rookFrom.Col, rookTo.Col = 7, 5
		}
		rook := *g.board.at(rookFrom)
		rook.HasMoved = true
		g.board.set(rookTo, &rook)
		g.board.set(rookFrom, nil)
	}
}

// deriveState recomputes the status of a freshly decoded position the same
// way the move executor does after a move.
func (g *Game) deriveState() {
	if g.inCheck(g.turn) {
		g.state = Check
	} else {
		g.state = InProgress
	}
	if g.hasAnyLegalMove(g.turn) {
		return
	}
	if g.state == Check {
		g.state = Checkmate
	} else {
		g.state = Stalemate
	}
}

// String renders a diagnostic board dump: 8 lines of 8 space-separated
// tokens, lowercase for Black, uppercase for White, * for empty squares.
func (g *Game) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			piece := g.board[row][col]
			switch {
			case piece == nil:
				sb.WriteByte('*')
			case piece.Color == White:
				sb.WriteByte(piece.Role.letter() - 'a' + 'A')
			default:
				sb.WriteByte(piece.Role.letter())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
