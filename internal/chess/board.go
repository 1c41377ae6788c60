// Package chess implements the rules of standard chess: move generation,
// legality filtering, check detection and the game state machine. It knows
// nothing about players, clocks or transport; callers feed it squares in
// algebraic notation and read back the resulting state.
package chess

import "fmt"

// Color identifies a side.
type Color int

const (
	White Color = iota
	Black
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Role identifies a piece kind.
type Role int

const (
	Pawn Role = iota
	Rook
	Knight
	Bishop
	Queen
	King
)

// letter returns the lowercase FEN letter for the role.
func (r Role) letter() byte {
	switch r {
	case Pawn:
		return 'p'
	case Rook:
		return 'r'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Queen:
		return 'q'
	case King:
		return 'k'
	}
	return '?'
}

func roleFromLetter(c byte) (Role, bool) {
	switch c {
	case 'p', 'P':
		return Pawn, true
	case 'r', 'R':
		return Rook, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	}
	return 0, false
}

// Piece is a single man on the board. HasMoved matters only for kings and
// rooks (castling rights) and pawns (double-step rights).
type Piece struct {
	Role     Role
	Color    Color
	HasMoved bool
}

// Square addresses a board cell. Row 0 is the black back rank (FEN rank 8),
// Col 0 is file a.
type Square struct {
	Row, Col int
}

func (s Square) onBoard() bool {
	return s.Row >= 0 && s.Row <= 7 && s.Col >= 0 && s.Col <= 7
}

// String renders the square in algebraic notation, e.g. "e4".
func (s Square) String() string {
	return fmt.Sprintf("%c%c", byte('a'+s.Col), byte('8'-s.Row))
}

// Board is an 8x8 grid of optional pieces, indexed [row][col]. A nil cell
// is empty.
type Board [8][8]*Piece

func (b *Board) at(s Square) *Piece {
	return b[s.Row][s.Col]
}

func (b *Board) set(s Square, p *Piece) {
	b[s.Row][s.Col] = p
}

// clone deep-copies the board so hypothetical moves can be applied without
// touching the original pieces.
func (b *Board) clone() Board {
	var c Board
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b[row][col] != nil {
				p := *b[row][col]
				c[row][col] = &p
			}
		}
	}
	return c
}
