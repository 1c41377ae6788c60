package chess

import (
	"sort"
	"testing"

	"github.com/IndaPlus23/eliassam-chess/internal/testutil"
	"golang.org/x/exp/slices"
)

func notate(squares []Square) []string {
	out := make([]string, 0, len(squares))
	for _, sq := range squares {
		out = append(out, sq.String())
	}
	sort.Strings(out)
	return out
}

func TestSlidersBlockedAtStart(t *testing.T) {
	g := NewGame()
	for _, square := range []string{"a1", "c1", "d1", "f1", "h1"} {
		sq, err := parseSquare(square)
		testutil.AssertNoError(t, err)
		if got := g.LegalTargets(sq); len(got) != 0 {
			t.Errorf("%s: expected no moves at start, got %v", square, notate(got))
		}
	}
}

func TestKnightJumpsOverPieces(t *testing.T) {
	g := NewGame()
	sq, _ := parseSquare("g1")
	testutil.AssertEqual(t, notate(g.LegalTargets(sq)), []string{"f3", "h3"})
}

func TestRookRayStopsAtFirstPiece(t *testing.T) {
	g, err := ParseFEN("4k3/8/8/8/1R2p3/8/8/4K3 w - - 0 1")
	testutil.AssertNoError(t, err)

	sq, _ := parseSquare("b4")
	got := notate(g.LegalTargets(sq))
	// The e4 pawn is capturable; squares beyond it are not reachable.
	testutil.AssertTrue(t, slices.Contains(got, "e4"), "capture of blocking pawn")
	testutil.AssertTrue(t, !slices.Contains(got, "f4"), "square beyond blocker excluded")
	testutil.AssertTrue(t, !slices.Contains(got, "b4"), "own square excluded")
}

func TestPawnForwardBlocked(t *testing.T) {
	g, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/4n3/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	testutil.AssertNoError(t, err)

	sq, _ := parseSquare("e2")
	testutil.AssertEqual(t, len(g.LegalTargets(sq)), 0)
}

func TestPawnDoubleStepNeedsBothSquaresEmpty(t *testing.T) {
	g, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4n3/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	testutil.AssertNoError(t, err)

	sq, _ := parseSquare("e2")
	testutil.AssertEqual(t, notate(g.LegalTargets(sq)), []string{"e3"})
}

func TestAttackOnlyDropsPawnPushes(t *testing.T) {
	g := NewGame()
	sq, _ := parseSquare("e2")

	testutil.AssertEqual(t, len(g.movesFor(sq, true, true)), 0)
	testutil.AssertEqual(t, notate(g.movesFor(sq, false, false)), []string{"e3", "e4"})
}

func TestEnPassantTargetGenerated(t *testing.T) {
	g, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	testutil.AssertNoError(t, err)

	sq, _ := parseSquare("e5")
	testutil.AssertEqual(t, notate(g.LegalTargets(sq)), []string{"e6", "f6"})
}

func TestCastlingPreconditions(t *testing.T) {
	cases := []struct {
		name      string
		fen       string
		kingside  bool
		queenside bool
	}{
		{
			name:      "all conditions met",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			kingside:  true,
			queenside: true,
		},
		{
			name:      "kingside blocked by own bishop",
			fen:       "r3k2r/8/8/8/8/8/8/R3KB1R w KQkq - 0 1",
			kingside:  false,
			queenside: true,
		},
		{
			name:      "rights lost",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1",
			kingside:  false,
			queenside: false,
		},
		{
			name:      "kingside rook moved",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1",
			kingside:  false,
			queenside: true,
		},
		{
			name:      "king in check",
			fen:       "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1",
			kingside:  false,
			queenside: false,
		},
		{
			name:      "king passes through attacked square",
			fen:       "r3k2r/8/8/8/5r2/8/8/R3K2R w KQkq - 0 1",
			kingside:  false,
			queenside: true,
		},
		{
			name:      "king would land on attacked square",
			fen:       "r3k2r/8/8/8/6r1/8/8/R3K2R w KQkq - 0 1",
			kingside:  false,
			queenside: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseFEN(tc.fen)
			testutil.AssertNoError(t, err)

			sq, _ := parseSquare("e1")
			got := g.LegalTargets(sq)
			testutil.AssertEqual(t, slices.Contains(got, Square{Row: 7, Col: 6}), tc.kingside)
			testutil.AssertEqual(t, slices.Contains(got, Square{Row: 7, Col: 2}), tc.queenside)
		})
	}
}

func TestQueensideBFileMayBeAttacked(t *testing.T) {
	// The b1 square is crossed only by the rook, so an attack on it does
	// not forbid castling.
	g, err := ParseFEN("r3k2r/8/8/8/1r6/8/8/R3K2R w KQkq - 0 1")
	testutil.AssertNoError(t, err)

	sq, _ := parseSquare("e1")
	testutil.AssertTrue(t, slices.Contains(g.LegalTargets(sq), Square{Row: 7, Col: 2}), "queenside castle allowed")
}

func TestKingCannotMoveIntoAttack(t *testing.T) {
	g, err := ParseFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	testutil.AssertNoError(t, err)

	sq, _ := parseSquare("e1")
	got := notate(g.LegalTargets(sq))
	// d2 and f2 are covered by the rook; capturing it is fine since it
	// is unprotected.
	testutil.AssertEqual(t, got, []string{"d1", "e2", "f1"})
}
