package chess

// Movement tables. Sliding pieces walk the direction vectors square by
// square; knights and kings test the fixed offsets once.
var (
	rookDirs   = []Square{{Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: -1}}
	bishopDirs = []Square{{Row: -1, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: -1}}

	knightOffsets = []Square{
		{Row: -2, Col: 1}, {Row: -1, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 1},
		{Row: 2, Col: -1}, {Row: 1, Col: -2}, {Row: -1, Col: -2}, {Row: -2, Col: -1},
	}
	kingOffsets = []Square{
		{Row: -1, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: 1}, {Row: 1, Col: 1},
		{Row: 1, Col: 0}, {Row: 1, Col: -1}, {Row: 0, Col: -1}, {Row: -1, Col: -1},
	}
)

// movesFor produces the pseudo-legal destinations for the piece on from,
// ignoring whether the mover's own king ends up in check. attackOnly drops
// the pawn's non-capturing forward moves so the output matches the squares
// the piece threatens. ignoreCheck drops castling, which is what breaks the
// recursion between castling legality and the check detector.
func (g *Game) movesFor(from Square, attackOnly, ignoreCheck bool) []Square {
	piece := g.board.at(from)
	if piece == nil {
		return nil
	}

	var moves []Square
	switch piece.Role {
	case Pawn:
		moves = g.pawnMoves(from, *piece, attackOnly)
	case Knight:
		moves = offsetMoves(from, knightOffsets)
	case King:
		moves = offsetMoves(from, kingOffsets)
		if !ignoreCheck {
			moves = append(moves, g.castleMoves(from, *piece)...)
		}
	case Rook:
		moves = g.rayMoves(from, rookDirs)
	case Bishop:
		moves = g.rayMoves(from, bishopDirs)
	case Queen:
		moves = append(g.rayMoves(from, rookDirs), g.rayMoves(from, bishopDirs)...)
	}

	// Self-capture is never allowed, whatever the role.
	kept := moves[:0]
	for _, to := range moves {
		if target := g.board.at(to); target == nil || target.Color != piece.Color {
			kept = append(kept, to)
		}
	}
	return kept
}

func (g *Game) pawnMoves(from Square, piece Piece, attackOnly bool) []Square {
	forward := -1
	if piece.Color == Black {
		forward = 1
	}

	var moves []Square
	for _, dc := range []int{-1, 1} {
		to := Square{Row: from.Row + forward, Col: from.Col + dc}
		if !to.onBoard() {
			continue
		}
		if g.board.at(to) != nil || (g.epSquare != nil && to == *g.epSquare) {
			moves = append(moves, to)
		}
	}
	if attackOnly {
		return moves
	}

	one := Square{Row: from.Row + forward, Col: from.Col}
	if one.onBoard() && g.board.at(one) == nil {
		moves = append(moves, one)
		two := Square{Row: from.Row + 2*forward, Col: from.Col}
		if !piece.HasMoved && two.onBoard() && g.board.at(two) == nil {
			moves = append(moves, two)
		}
	}
	return moves
}

func offsetMoves(from Square, offsets []Square) []Square {
	var moves []Square
	for _, off := range offsets {
		to := Square{Row: from.Row + off.Row, Col: from.Col + off.Col}
		if to.onBoard() {
			moves = append(moves, to)
		}
	}
	return moves
}

func (g *Game) rayMoves(from Square, dirs []Square) []Square {
	var moves []Square
	for _, dir := range dirs {
		to := Square{Row: from.Row + dir.Row, Col: from.Col + dir.Col}
		for to.onBoard() {
			// Occupied squares are still candidates (captures); the ray
			// stops extending past the first one.
			moves = append(moves, to)
			if g.board.at(to) != nil {
				break
			}
			to = Square{Row: to.Row + dir.Row, Col: to.Col + dir.Col}
		}
	}
	return moves
}

// castleMoves yields the two-square king moves whose preconditions all
// hold: neither king nor rook has moved, the squares between them are
// empty, and the king neither starts in, passes through, nor lands on
// check. Transit squares are tested by simulating the king standing there.
func (g *Game) castleMoves(from Square, king Piece) []Square {
	if king.HasMoved || g.inCheck(king.Color) {
		return nil
	}

	var moves []Square
	type side struct {
		rookCol  int
		between  []int // columns strictly between king and rook
		transit  []int // columns the king crosses, destination included
		kingDest int
	}
	sides := []side{
		{rookCol: 7, between: []int{from.Col + 1, from.Col + 2}, transit: []int{from.Col + 1, from.Col + 2}, kingDest: from.Col + 2},
		{rookCol: 0, between: []int{from.Col - 1, from.Col - 2, from.Col - 3}, transit: []int{from.Col - 1, from.Col - 2}, kingDest: from.Col - 2},
	}

	for _, s := range sides {
		rook := g.board[from.Row][s.rookCol]
		if rook == nil || rook.Role != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		clear := true
		for _, col := range s.between {
			if g.board[from.Row][col] != nil {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}
		safe := true
		for _, col := range s.transit {
			trial := g.Clone()
			trial.board.set(from, nil)
			trial.board.set(Square{Row: from.Row, Col: col}, &Piece{Role: King, Color: king.Color, HasMoved: true})
			if trial.inCheck(king.Color) {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, Square{Row: from.Row, Col: s.kingDest})
		}
	}
	return moves
}
