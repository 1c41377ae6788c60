package chess

import "fmt"

// parseSquare converts algebraic notation ("e4") to board coordinates.
func parseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, ErrInvalidSquare
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, ErrInvalidSquare
	}
	return Square{Row: int('8' - rank), Col: int(file - 'a')}, nil
}

// parseDestination parses a destination square with an optional promotion
// letter appended ("e8q"). The letter must be one of q, r, n, b in either
// case.
func parseDestination(s string) (Square, Role, bool, error) {
	if len(s) < 2 || len(s) > 3 {
		return Square{}, 0, false, ErrInvalidSquare
	}
	sq, err := parseSquare(s[:2])
	if err != nil {
		return Square{}, 0, false, err
	}
	if len(s) == 2 {
		return sq, 0, false, nil
	}
	switch s[2] {
	case 'q', 'Q':
		return sq, Queen, true, nil
	case 'r', 'R':
		return sq, Rook, true, nil
	case 'n', 'N':
		return sq, Knight, true, nil
	case 'b', 'B':
		return sq, Bishop, true, nil
	}
	return Square{}, 0, false, fmt.Errorf("%q: %w", s[2], ErrPromotionChoice)
}
