package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/vovakirdan/grid-arcade/internal/games/tetris"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

// fakeSource serves a fixed ranking, or err when set.
type fakeSource struct {
	entries []storage.ScoreEntry
	err     error
	calls   int
}

func (f *fakeSource) Top(_ context.Context, gameID string, limit int) ([]storage.ScoreEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func newScoreStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if _, err := store.SaveScore("tetris", "local", 50); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return store
}

// tetrisBoard opens the scoreboard on the tetris page.
func tetrisBoard(t *testing.T, store *storage.Store, shared ScoreSource) ScoreboardModel {
	t.Helper()
	m := NewScoreboardModel(store, shared, 100, 30)
	for i, g := range m.games {
		if g.ID == "tetris" {
			m.gameCursor = i
			m.reload()
			return m
		}
	}
	t.Fatal("tetris is not registered")
	return m
}

func TestScoreboardPrefersSharedRanking(t *testing.T) {
	src := &fakeSource{entries: []storage.ScoreEntry{
		{ID: 9, GameID: "tetris", Player: "remote", Score: 900},
		{ID: 3, GameID: "tetris", Player: "other", Score: 400},
	}}
	m := tetrisBoard(t, newScoreStore(t), src)

	if src.calls == 0 {
		t.Fatal("shared ranking was never read")
	}
	if !m.sharedShown {
		t.Error("scores should be marked as shared")
	}
	if len(m.rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(m.rows))
	}
	if m.rows[0][2] != "remote" || m.rows[0][1] != "900" {
		t.Errorf("first row = %v", m.rows[0])
	}
	if m.rows[0][3] != "-" {
		t.Errorf("shared entries carry no date, got %q", m.rows[0][3])
	}
	if !strings.Contains(m.View(), "all servers") {
		t.Error("title should say the ranking spans servers")
	}
}

func TestScoreboardFallsBackToLocalScores(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	m := tetrisBoard(t, newScoreStore(t), src)

	if m.sharedShown {
		t.Error("a failed shared read must not be marked as shared")
	}
	if len(m.rows) != 1 || m.rows[0][2] != "local" {
		t.Errorf("rows = %v, want the local score", m.rows)
	}
}

func TestScoreboardWithoutSharedRanking(t *testing.T) {
	m := tetrisBoard(t, newScoreStore(t), nil)

	if m.sharedShown {
		t.Error("no shared source configured")
	}
	if len(m.rows) != 1 || m.rows[0][1] != "50" {
		t.Errorf("rows = %v", m.rows)
	}
}
