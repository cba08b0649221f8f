package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/games/t2048"
	"github.com/vovakirdan/grid-arcade/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReplayRoundTrip(t *testing.T) {
	store := openTestStore(t)

	rec := engine.Recording{
		ID:        "replay-1",
		GameID:    "tetris",
		Seed:      -42,
		Level:     2,
		Plies:     3,
		Score:     70,
		Outcome:   "loss",
		Actions:   []byte("- 1\n- 2\n- 3\n"),
		Config:    []byte("arena:\n  width: 10\n  height: 16\n"),
		FinalHash: 0xfeedfacecafebeef,
	}
	require.NoError(t, store.SaveReplay(rec))

	got, err := store.Replay("replay-1")
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
	got.CreatedAt = rec.CreatedAt
	assert.Equal(t, rec, got)

	_, err = store.Replay("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, store.SaveReplay(rec), "duplicate id")
}

func TestOpenAddsReplayConfigColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	// A replays table from before settings were stored
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE replays (
		id TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		level INTEGER NOT NULL DEFAULT 0,
		plies INTEGER NOT NULL,
		score INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		actions BLOB NOT NULL,
		final_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO replays (id, game_id, seed, plies, score, outcome, actions, final_hash)
		VALUES ('old', 'snake', 1, 0, 0, 'win', '[]', '0')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	old, err := store.Replay("old")
	require.NoError(t, err)
	assert.Nil(t, old.Config)

	require.NoError(t, store.SaveReplay(engine.Recording{
		ID:      "new",
		GameID:  "snake",
		Actions: []byte("[]"),
		Config:  []byte("board:\n  width: 20\n"),
	}))
	got, err := store.Replay("new")
	require.NoError(t, err)
	assert.Equal(t, []byte("board:\n  width: 20\n"), got.Config)

	// Reopening must not try to add the column twice
	require.NoError(t, store.Close())
	again, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestReplaysFilterByGame(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"snake", "tetris", "snake"} {
		require.NoError(t, store.SaveReplay(engine.Recording{
			ID:      string(rune('a' + i)),
			GameID:  game,
			Actions: []byte("[]"),
		}))
	}

	all, err := store.Replays("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID, "newest first")

	snakes, err := store.Replays("snake", 10)
	require.NoError(t, err)
	assert.Len(t, snakes, 2)

	one, err := store.Replays("", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestStoredReplayStillVerifies(t *testing.T) {
	store := openTestStore(t)

	g := t2048.New()
	g.Reset(core.RuntimeConfig{Seed: 9, ScreenW: 80, ScreenH: 24})
	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown} {
		in := core.NewInputFrame()
		in.Set(a)
		g.Step(in)
	}
	rec, ok := g.Recording()
	require.True(t, ok)
	require.NoError(t, store.SaveReplay(rec))

	loaded, err := store.Replay(rec.ID)
	require.NoError(t, err)
	assert.NoError(t, t2048.New().Verify(context.Background(), loaded, engine.ReplayOptions{}))
}

func TestMatchRoundTrip(t *testing.T) {
	store := openTestStore(t)

	res := multiplayer.MatchResult{
		MatchID: "m-1",
		GameID:  "chess",
		Reason:  multiplayer.MatchEndReasonCheckmate,
		Winner:  multiplayer.Player2,
		Plies:   4,
		Score2:  1,
	}
	_, err := store.SaveMatch(res)
	require.NoError(t, err)

	got, err := store.MatchByID("m-1")
	require.NoError(t, err)
	assert.Equal(t, res, got.Result)
	assert.Equal(t, "checkmate", got.Reason)

	_, err = store.MatchByID("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.SaveMatch(res)
	assert.Error(t, err, "match ids are unique")
}

func TestWinsAndRecentMatches(t *testing.T) {
	store := openTestStore(t)

	results := []multiplayer.MatchResult{
		{MatchID: "1", GameID: "checkers", Reason: multiplayer.MatchEndReasonNoMoves, Winner: multiplayer.Player1},
		{MatchID: "2", GameID: "checkers", Reason: multiplayer.MatchEndReasonNoMoves, Winner: multiplayer.Player1},
		{MatchID: "3", GameID: "checkers", Reason: multiplayer.MatchEndReasonNoMoves, Winner: multiplayer.Player2},
		{MatchID: "4", GameID: "checkers", Reason: multiplayer.MatchEndReasonAbandoned},
		{MatchID: "5", GameID: "chess", Reason: multiplayer.MatchEndReasonStalemate},
	}
	for _, r := range results {
		_, err := store.SaveMatch(r)
		require.NoError(t, err)
	}

	wins, err := store.Wins("checkers")
	require.NoError(t, err)
	assert.Equal(t, [3]int{0, 2, 1}, wins)

	wins, err = store.Wins("chess")
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 0, 0}, wins)

	recent, err := store.RecentMatches("checkers", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, multiplayer.MatchID("4"), recent[0].Result.MatchID)
	assert.Equal(t, multiplayer.MatchEndReasonAbandoned, recent[0].Result.Reason)
}
