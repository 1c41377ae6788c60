package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN decodes a six-field FEN position description into a Game. The
// description is validated in full: wrong field counts, unknown letters,
// malformed clocks and positions without exactly one king per color are
// all reported as ErrMalformedFEN rather than producing a broken position.
func ParseFEN(s string) (*Game, error) {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: want 6 fields, got %d", ErrMalformedFEN, len(fields))
	}

	g := &Game{state: InProgress}
	if err := g.parsePlacement(fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		g.turn = White
	case "b":
		g.turn = Black
	default:
		return nil, fmt.Errorf("%w: active color %q", ErrMalformedFEN, fields[1])
	}

	if err := g.parseCastling(fields[2]); err != nil {
		return nil, err
	}

	if fields[3] != "-" {
		sq, err := parseSquare(fields[3])
		// The skipped square of a double step is always on rank 3 or 6.
		if err != nil || (sq.Row != 2 && sq.Row != 5) {
			return nil, fmt.Errorf("%w: en passant square %q", ErrMalformedFEN, fields[3])
		}
		g.epSquare = &sq
	}

	halfmove, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: halfmove clock %q", ErrMalformedFEN, fields[4])
	}
	g.halfmove = uint(halfmove)

	fullmove, err := strconv.ParseUint(fields[5], 10, 64)
	if err != nil || fullmove == 0 {
		return nil, fmt.Errorf("%w: fullmove clock %q", ErrMalformedFEN, fields[5])
	}
	g.fullmove = uint(fullmove)

	g.deriveState()
	return g, nil
}

func (g *Game) parsePlacement(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return fmt.Errorf("%w: want 8 ranks, got %d", ErrMalformedFEN, len(rows))
	}
	var kings [2]int
	for rowIdx, row := range rows {
		col := 0
		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			role, ok := roleFromLetter(c)
			if !ok {
				return fmt.Errorf("%w: piece letter %q", ErrMalformedFEN, c)
			}
			if col > 7 {
				return fmt.Errorf("%w: rank %d overflows", ErrMalformedFEN, 8-rowIdx)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			// Only pawns still on their home rank may double-step; king
			// and rook rights come from the castling field below.
			hasMoved := true
			if role == Pawn {
				if (color == White && rowIdx == 6) || (color == Black && rowIdx == 1) {
					hasMoved = false
				}
			}
			if role == King {
				kings[color]++
			}
			g.board[rowIdx][col] = &Piece{Role: role, Color: color, HasMoved: hasMoved}
			col++
		}
		if col != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrMalformedFEN, 8-rowIdx, col)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: want exactly one king per color", ErrMalformedFEN)
	}
	return nil
}

func (g *Game) parseCastling(availability string) error {
	for i := 0; i < len(availability); i++ {
		var kingSq, rookSq Square
		color := White
		switch availability[i] {
		case '-':
			continue
		case 'K':
			kingSq, rookSq = Square{Row: 7, Col: 4}, Square{Row: 7, Col: 7}
		case 'Q':
			kingSq, rookSq = Square{Row: 7, Col: 4}, Square{Row: 7, Col: 0}
		case 'k':
			kingSq, rookSq = Square{Row: 0, Col: 4}, Square{Row: 0, Col: 7}
			color = Black
		case 'q':
			kingSq, rookSq = Square{Row: 0, Col: 4}, Square{Row: 0, Col: 0}
			color = Black
		default:
			return fmt.Errorf("%w: castling flag %q", ErrMalformedFEN, availability[i])
		}
		king, rook := g.board.at(kingSq), g.board.at(rookSq)
		if king == nil || king.Role != King || king.Color != color ||
			rook == nil || rook.Role != Rook || rook.Color != color {
			return fmt.Errorf("%w: castling flag %q without king and rook at home", ErrMalformedFEN, availability[i])
		}
		king.HasMoved = false
		rook.HasMoved = false
	}
	return nil
}

// FEN encodes the position as a six-field FEN string. Castling
// availability is recomputed from the kings' and rooks' positions and
// their move flags, not from stored state.
func (g *Game) FEN() string {
	var placement strings.Builder
	for row := 0; row < 8; row++ {
		if row > 0 {
			placement.WriteByte('/')
		}
		empty := 0
		for col := 0; col < 8; col++ {
			piece := g.board[row][col]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				placement.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := piece.Role.letter()
			if piece.Color == White {
				letter = letter - 'a' + 'A'
			}
			placement.WriteByte(letter)
		}
		if empty > 0 {
			placement.WriteByte(byte('0' + empty))
		}
	}

	turn := "w"
	if g.turn == Black {
		turn = "b"
	}

	castling := g.castlingAvailability()

	ep := "-"
	if g.epSquare != nil {
		ep = g.epSquare.String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", placement.String(), turn, castling, ep, g.halfmove, g.fullmove)
}

func (g *Game) castlingAvailability() string {
	var sb strings.Builder
	unmoved := func(sq Square, role Role, color Color) bool {
		p := g.board.at(sq)
		return p != nil && p.Role == role && p.Color == color && !p.HasMoved
	}
	if unmoved(Square{Row: 7, Col: 4}, King, White) {
		if unmoved(Square{Row: 7, Col: 7}, Rook, White) {
			sb.WriteByte('K')
		}
		if unmoved(Square{Row: 7, Col: 0}, Rook, White) {
			sb.WriteByte('Q')
		}
	}
	if unmoved(Square{Row: 0, Col: 4}, King, Black) {
		if unmoved(Square{Row: 0, Col: 7}, Rook, Black) {
			sb.WriteByte('k')
		}
		if unmoved(Square{Row: 0, Col: 0}, Rook, Black) {
			sb.WriteByte('q')
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
