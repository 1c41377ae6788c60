package chess

// inCheck reports whether color's king is attacked in the current
// position. Every opposing piece is asked for its attack-only move set;
// ignoreCheck keeps castling out of that set, which would otherwise
// recurse back into inCheck forever.
func (g *Game) inCheck(color Color) bool {
	kingSq, ok := g.findKing(color)
	if !ok {
		// Decoding validates king presence, so this only happens on a
		// position a caller assembled by hand.
		return false
	}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := g.board[row][col]
			if piece == nil || piece.Color == color {
				continue
			}
			from := Square{Row: row, Col: col}
			for _, to := range g.movesFor(from, true, true) {
				if to == kingSq {
					return true
				}
			}
		}
	}
	return false
}

func (g *Game) findKing(color Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := g.board[row][col]
			if piece != nil && piece.Color == color && piece.Role == King {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}
