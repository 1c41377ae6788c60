package chess

import (
	"sort"
	"testing"

	"github.com/IndaPlus23/eliassam-chess/internal/testutil"
)

func mustMove(t *testing.T, g *Game, from, to string) State {
	t.Helper()
	state, err := g.Move(from, to)
	testutil.AssertNoError(t, err)
	return state
}

func TestNewGameInProgress(t *testing.T) {
	g := NewGame()
	testutil.AssertEqual(t, g.State(), InProgress)
	testutil.AssertEqual(t, g.Turn(), White)
	testutil.AssertEqual(t, g.HalfmoveClock(), uint(0))
	testutil.AssertEqual(t, g.FullmoveClock(), uint(1))
}

func TestStartPositionMatchesDecodedFEN(t *testing.T) {
	built := NewGame()
	decoded, err := ParseFEN(StartFEN)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, decoded.String(), built.String())
	testutil.AssertEqual(t, decoded.FEN(), built.FEN())
	testutil.AssertEqual(t, decoded.Turn(), built.Turn())
	testutil.AssertEqual(t, decoded.State(), InProgress)
}

func TestMovePawnDoubleStep(t *testing.T) {
	g := NewGame()
	state := mustMove(t, g, "e2", "e4")

	testutil.AssertEqual(t, state, InProgress)
	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
}

func TestHalfmoveClockRules(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "b1", "a3")
	testutil.AssertEqual(t, g.HalfmoveClock(), uint(1))

	mustMove(t, g, "g8", "f6")
	testutil.AssertEqual(t, g.HalfmoveClock(), uint(2))

	// Pawn move resets the clock.
	mustMove(t, g, "e2", "e4")
	testutil.AssertEqual(t, g.HalfmoveClock(), uint(0))
}

func TestFullmoveClockIncrementsAfterBlack(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "e2", "e4")
	testutil.AssertEqual(t, g.FullmoveClock(), uint(1))

	mustMove(t, g, "e7", "e5")
	testutil.AssertEqual(t, g.FullmoveClock(), uint(2))
}

func TestTurnAlternates(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "b1", "a3")
	testutil.AssertEqual(t, g.Turn(), Black)
	mustMove(t, g, "b8", "a6")
	testutil.AssertEqual(t, g.Turn(), White)
}

func TestKnightMovesFromStart(t *testing.T) {
	g := NewGame()
	moves, err := g.LegalMoves("b1")
	testutil.AssertNoError(t, err)

	sort.Strings(moves)
	testutil.AssertEqual(t, moves, []string{"a3", "c3"})
}

func TestMoveRejections(t *testing.T) {
	g := NewGame()

	_, err := g.Move("e9", "e4")
	testutil.AssertErrorIs(t, err, ErrInvalidSquare)

	_, err = g.Move("e4", "e5")
	testutil.AssertErrorIs(t, err, ErrNoPiece)

	_, err = g.Move("e7", "e5")
	testutil.AssertErrorIs(t, err, ErrWrongTurn)

	_, err = g.Move("e2", "e6")
	testutil.AssertErrorIs(t, err, ErrIllegalMove)

	// Rejections leave the position untouched.
	testutil.AssertEqual(t, g.FEN(), StartFEN)
}

func TestQueenCheck(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "f7", "f5")
	state := mustMove(t, g, "d1", "h5")

	testutil.AssertEqual(t, state, Check)
	testutil.AssertEqual(t, g.Turn(), Black)
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "f2", "f3")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g2", "g4")
	state := mustMove(t, g, "d8", "h4")

	testutil.AssertEqual(t, state, Checkmate)
	testutil.AssertEqual(t, g.State(), Checkmate)

	_, err := g.Move("e2", "e4")
	testutil.AssertErrorIs(t, err, ErrGameOver)

	_, err = g.LegalMoves("e2")
	testutil.AssertErrorIs(t, err, ErrGameOver)
}

func TestStalemateDetected(t *testing.T) {
	// Black king on h8 is not attacked but has no safe square.
	g, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, g.State(), Stalemate)

	_, err = g.Move("h8", "h7")
	testutil.AssertErrorIs(t, err, ErrGameOver)
}

func TestEnPassantCapture(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "a7", "a6")
	mustMove(t, g, "e4", "e5")
	mustMove(t, g, "d7", "d5")

	moves, err := g.LegalMoves("e5")
	testutil.AssertNoError(t, err)
	sort.Strings(moves)
	testutil.AssertEqual(t, moves, []string{"d6", "e6"})

	mustMove(t, g, "e5", "d6")

	// The captured pawn on d5 is gone.
	_, ok := g.PieceAt(Square{Row: 3, Col: 3})
	testutil.AssertEqual(t, ok, false)
	captor, ok := g.PieceAt(Square{Row: 2, Col: 3})
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, captor.Role, Pawn)
	testutil.AssertEqual(t, captor.Color, White)
}

func TestEnPassantExpiresAfterOneMove(t *testing.T) {
	g := NewGame()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "a7", "a6")
	mustMove(t, g, "e4", "e5")
	mustMove(t, g, "d7", "d5")
	mustMove(t, g, "a2", "a3")
	mustMove(t, g, "a6", "a5")

	moves, err := g.LegalMoves("e5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, moves, []string{"e6"})
}

func TestPromotionRequiresChoice(t *testing.T) {
	g, err := ParseFEN("8/P6k/8/8/8/8/8/7K w - - 0 1")
	testutil.AssertNoError(t, err)

	_, err = g.Move("a7", "a8")
	testutil.AssertErrorIs(t, err, ErrPromotionChoice)

	_, err = g.Move("a7", "a8x")
	testutil.AssertErrorIs(t, err, ErrPromotionChoice)

	mustMove(t, g, "a7", "a8q")
	piece, ok := g.PieceAt(Square{Row: 0, Col: 0})
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, piece.Role, Queen)
	testutil.AssertEqual(t, piece.Color, White)
	testutil.AssertEqual(t, g.HalfmoveClock(), uint(0))
}

func TestUnderpromotion(t *testing.T) {
	g, err := ParseFEN("8/P6k/8/8/8/8/8/7K w - - 0 1")
	testutil.AssertNoError(t, err)

	mustMove(t, g, "a7", "a8n")
	piece, _ := g.PieceAt(Square{Row: 0, Col: 0})
	testutil.AssertEqual(t, piece.Role, Knight)
}

func TestCastlingMovesRook(t *testing.T) {
	g, err := ParseFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	testutil.AssertNoError(t, err)

	mustMove(t, g, "e1", "g1")
	rook, ok := g.PieceAt(Square{Row: 7, Col: 5})
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, rook.Role, Rook)
	_, ok = g.PieceAt(Square{Row: 7, Col: 7})
	testutil.AssertEqual(t, ok, false)

	mustMove(t, g, "e8", "c8")
	rook, ok = g.PieceAt(Square{Row: 0, Col: 3})
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, rook.Role, Rook)
	_, ok = g.PieceAt(Square{Row: 0, Col: 0})
	testutil.AssertEqual(t, ok, false)
}

func TestLegalMovesNeverLeaveMoverInCheck(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"7k/5Q2/6K1/8/8/8/8/8 w - - 0 1",
	}
	for _, fen := range fens {
		g, err := ParseFEN(fen)
		testutil.AssertNoError(t, err)

		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				from := Square{Row: row, Col: col}
				piece, ok := g.PieceAt(from)
				if !ok {
					continue
				}
				for _, to := range g.LegalTargets(from) {
					trial := g.Clone()
					trial.apply(from, to, Queen)
					if trial.inCheck(piece.Color) {
						t.Errorf("%s: %s%s leaves %s in check", fen, from, to, piece.Color)
					}
				}
			}
		}
	}
}

func TestBoardDump(t *testing.T) {
	want := "r n b q k b n r\n" +
		"p p p p p p p p\n" +
		"* * * * * * * *\n" +
		"* * * * * * * *\n" +
		"* * * * * * * *\n" +
		"* * * * * * * *\n" +
		"P P P P P P P P\n" +
		"R N B Q K B N R\n"
	testutil.AssertEqual(t, NewGame().String(), want)
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGame()
	c := g.Clone()
	mustMove(t, c, "e2", "e4")

	testutil.AssertEqual(t, g.FEN(), StartFEN)
	testutil.AssertEqual(t, g.Turn(), White)
}
