package store

import (
	"testing"

	"github.com/IndaPlus23/eliassam-chess/internal/chess"
	"github.com/IndaPlus23/eliassam-chess/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveAndLoadGame(t *testing.T) {
	st := openTestStore(t)

	rec := Record{
		ID:     "g1",
		FEN:    chess.StartFEN,
		White:  "alice",
		Black:  "bob",
		Status: "inProgress",
	}
	testutil.AssertNoError(t, st.SaveGame(rec))

	got, err := st.LoadGame("g1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.FEN, chess.StartFEN)
	testutil.AssertEqual(t, got.White, "alice")
	testutil.AssertEqual(t, got.Black, "bob")
	testutil.AssertTrue(t, !got.UpdatedAt.IsZero(), "UpdatedAt set on save")
}

func TestLoadMissingGame(t *testing.T) {
	st := openTestStore(t)

	_, err := st.LoadGame("nope")
	testutil.AssertErrorIs(t, err, ErrNotFound)
}

func TestListGames(t *testing.T) {
	st := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		testutil.AssertNoError(t, st.SaveGame(Record{ID: id, FEN: chess.StartFEN}))
	}

	records, err := st.ListGames()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(records), 3)
}

func TestDeleteGame(t *testing.T) {
	st := openTestStore(t)

	testutil.AssertNoError(t, st.SaveGame(Record{ID: "gone", FEN: chess.StartFEN}))
	testutil.AssertNoError(t, st.DeleteGame("gone"))

	_, err := st.LoadGame("gone")
	testutil.AssertErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	testutil.AssertNoError(t, st.DeleteGame("gone"))
}

func TestSaveOverwrites(t *testing.T) {
	st := openTestStore(t)

	testutil.AssertNoError(t, st.SaveGame(Record{ID: "g", FEN: chess.StartFEN, Status: "inProgress"}))
	testutil.AssertNoError(t, st.SaveGame(Record{ID: "g", FEN: chess.StartFEN, Status: "checkmate"}))

	got, err := st.LoadGame("g")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Status, "checkmate")
}
