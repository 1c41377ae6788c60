package chess

// LegalTargets returns every destination the piece on from may actually
// play: its pseudo-legal set minus the moves that would leave its own king
// in check. Each candidate is tried on a throwaway clone of the position,
// so the live board is never disturbed. Returns nil for an empty square.
func (g *Game) LegalTargets(from Square) []Square {
	if !from.onBoard() {
		return nil
	}
	piece := g.board.at(from)
	if piece == nil {
		return nil
	}
	candidates := g.movesFor(from, false, false)
	legal := make([]Square, 0, len(candidates))
	for _, to := range candidates {
		trial := g.Clone()
		// Promotion role is irrelevant to check exposure; queen will do.
		trial.apply(from, to, Queen)
		if !trial.inCheck(piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

// hasAnyLegalMove reports whether color has at least one legal move
// anywhere on the board. The move executor uses it to tell checkmate and
// stalemate from positions that simply continue.
func (g *Game) hasAnyLegalMove(color Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := g.board[row][col]
			if piece == nil || piece.Color != color {
				continue
			}
			if len(g.LegalTargets(Square{Row: row, Col: col})) > 0 {
				return true
			}
		}
	}
	return false
}
