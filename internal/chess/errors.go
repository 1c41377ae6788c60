package chess

import "errors"

// Sentinel errors returned by the engine. Check them with errors.Is; moves
// that fail never leave the position mutated.
var (
	// ErrInvalidSquare indicates malformed algebraic square notation.
	ErrInvalidSquare = errors.New("invalid square notation")

	// ErrNoPiece indicates the origin square is empty.
	ErrNoPiece = errors.New("no piece on square")

	// ErrWrongTurn indicates the piece belongs to the side not on move.
	ErrWrongTurn = errors.New("wrong side to move")

	// ErrIllegalMove indicates the destination is not in the legal set.
	ErrIllegalMove = errors.New("illegal destination")

	// ErrPromotionChoice indicates a promotion letter was required but
	// missing, or not one of q, r, n, b.
	ErrPromotionChoice = errors.New("missing or invalid promotion choice")

	// ErrGameOver indicates the position is checkmate or stalemate and
	// accepts no further moves.
	ErrGameOver = errors.New("game already over")

	// ErrMalformedFEN indicates a position description that failed to parse.
	ErrMalformedFEN = errors.New("malformed position description")
)
