package t2048

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func testRules(mode Mode) Rules {
	cfg, err := config.LoadT2048("")
	if err != nil {
		panic(err)
	}
	return NewRules(cfg, mode, 0)
}

// fixedRNG always picks the first candidate and never rolls a 4.
type fixedRNG struct{}

func (fixedRNG) IntN(int) int     { return 0 }
func (fixedRNG) Float64() float64 { return 0.99 }

func TestSlideLineMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4},
		{"double merge", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8},
		{"merged tile does not merge again", []int{2, 2, 4, 0}, []int{4, 4, 0, 0}, 4},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0},
		{"slide with gap", []int{0, 0, 2, 2}, []int{4, 0, 0, 0}, 4},
		{"slide with multiple gaps", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4},
		{"no change needed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0},
		{"empty row", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0},
		{"single tile", []int{0, 4, 0, 0}, []int{4, 0, 0, 0}, 0},
		{"five wide", []int{2, 2, 2, 2, 2}, []int{4, 4, 2, 0, 0}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score, _ := slideLine(tt.input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("slideLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slideLine(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func sampleBoard() Board {
	return BoardFromRows([][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
}

func TestSlideLeft(t *testing.T) {
	board := sampleBoard()
	expected := BoardFromRows([][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	})

	res := Slide(board, grid.DirLeft)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide left: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !res.Changed {
		t.Error("Slide left should indicate board changed")
	}
	if res.Score != 4+8+8 {
		t.Errorf("Slide left score = %d, want 20", res.Score)
	}
	if len(res.Merges) != 4 {
		t.Errorf("Slide left merges = %d, want 4", len(res.Merges))
	}
	if board.Get(0, 1) != 2 {
		t.Error("Slide must not modify the input board")
	}
}

func TestSlideRight(t *testing.T) {
	expected := BoardFromRows([][]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	})

	res := Slide(sampleBoard(), grid.DirRight)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide right: got\n%v\nwant\n%v", res.Board, expected)
	}
	if !slices.Contains(res.Merges, grid.At(0, 3)) {
		t.Errorf("merge at (0,3) missing from %v", res.Merges)
	}
}

func TestSlideUp(t *testing.T) {
	board := BoardFromRows([][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})
	expected := BoardFromRows([][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := Slide(board, grid.DirUp)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide up: got\n%v\nwant\n%v", res.Board, expected)
	}
}

func TestSlideDown(t *testing.T) {
	board := BoardFromRows([][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})
	expected := BoardFromRows([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	})

	res := Slide(board, grid.DirDown)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide down: got\n%v\nwant\n%v", res.Board, expected)
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	r := testRules(ModeEndless)
	s := State{
		Board: BoardFromRows([][]int{
			{4, 2, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}),
		FourChance: 0.1,
	}

	out, events := r.Apply(s, core.ActionLeft, fixedRNG{})

	if len(events) != 0 {
		t.Errorf("unchanged move produced events: %v", events)
	}
	if !out.Board.Equal(s.Board) {
		t.Error("unchanged move must not spawn a tile")
	}
}

func TestMoveSpawnsOneTile(t *testing.T) {
	r := testRules(ModeEndless)
	s := State{
		Board: BoardFromRows([][]int{
			{0, 0, 0, 2},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}),
	}

	out, _ := r.Apply(s, core.ActionLeft, fixedRNG{})

	// Tile slid to (0,0); fixedRNG spawns a 2 on the first empty cell (0,1).
	if out.Board.Get(0, 0) != 2 || out.Board.Get(0, 1) != 2 {
		t.Errorf("unexpected board after move:\n%v", out.Board)
	}
	if got := out.Board.Count(func(v int) bool { return v != 0 }); got != 2 {
		t.Errorf("tile count = %d, want 2", got)
	}
}

func TestMergeEvents(t *testing.T) {
	r := testRules(ModeEndless)
	s := State{
		Board: BoardFromRows([][]int{
			{2, 2, 2, 2},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}),
	}

	out, events := r.Apply(s, core.ActionLeft, fixedRNG{})

	if out.Score != 8 {
		t.Errorf("score = %d, want 8", out.Score)
	}
	if events.Score() != 8 {
		t.Errorf("events score = %d, want 8", events.Score())
	}
	merges := 0
	for _, e := range events {
		if e.Kind == core.EventMerge {
			merges++
			if e.Value != 4 {
				t.Errorf("merge value = %d, want 4", e.Value)
			}
		}
	}
	if merges != 2 {
		t.Errorf("merge events = %d, want 2", merges)
	}
}

func TestGameOver(t *testing.T) {
	// Board with no empty cells and no possible merges
	board := BoardFromRows([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	})
	if !IsGameOver(board) {
		t.Error("Board with no moves should be game over")
	}

	// Board with no empty cells but possible merges
	board.Set(0, 1, 2)
	if IsGameOver(board) {
		t.Error("Board with possible merge should not be game over")
	}

	// Board with empty cells
	board.Set(0, 1, 4)
	board.Set(2, 2, 0)
	if IsGameOver(board) {
		t.Error("Board with empty cell should not be game over")
	}
}

func TestLossIsAnEvent(t *testing.T) {
	r := testRules(ModeEndless)
	// One merge left; after it the spawned 2 seals the board.
	s := State{
		Board: BoardFromRows([][]int{
			{2, 2, 8, 16},
			{32, 64, 128, 256},
			{512, 1024, 2048, 4096},
			{8192, 16384, 32768, 65536},
		}),
	}

	out, events := r.Apply(s, core.ActionLeft, fixedRNG{})

	if !out.Lost {
		t.Fatalf("expected loss, board:\n%v", out.Board)
	}
	if o, ok := events.Outcome(); !ok || o.Kind != core.EventLoss {
		t.Errorf("outcome = %v, %v; want loss", o, ok)
	}

	again, events := r.Apply(out, core.ActionLeft, fixedRNG{})
	if len(events) != 0 || again.Board.Hash() != out.Board.Hash() {
		t.Error("finished game must ignore further moves")
	}
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig())

	g2 := New()
	g2.Reset(testConfig())

	if g1.session.Hash() != g2.session.Hash() {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v",
			g1.session.State().Board, g2.session.State().Board)
	}

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft} {
		in := core.NewInputFrame()
		in.Set(a)
		g1.Step(in)
		g2.Step(in)
	}
	if g1.session.Hash() != g2.session.Hash() {
		t.Error("Same seed and inputs should produce the same board")
	}
}

func TestCampaignProgression(t *testing.T) {
	r := testRules(ModeCampaign)
	s := r.Init(fixedRNG{})
	if s.Target != 128 {
		t.Fatalf("first target = %d, want 128", s.Target)
	}

	s.Board = BoardFromRows([][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	out, events := r.Apply(s, core.ActionLeft, fixedRNG{})

	if !events.Has(core.EventLevelCleared) {
		t.Error("Should report level cleared when target tile is built")
	}
	if out.Level != 1 || out.Target != 256 {
		t.Errorf("level = %d target = %d, want 1 and 256", out.Level, out.Target)
	}
	if got := out.Board.Count(func(v int) bool { return v != 0 }); got != 1 {
		t.Errorf("no tile spawns on the clearing move, got %d tiles", got)
	}
}

func TestCampaignFinalLevelWins(t *testing.T) {
	r := testRules(ModeCampaign)
	s := r.Init(fixedRNG{})
	s.Level = len(r.Levels) - 1
	r.loadLevel(&s)
	s.Board = BoardFromRows([][]int{
		{s.Target / 2, s.Target / 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	out, events := r.Apply(s, core.ActionLeft, fixedRNG{})

	if !out.Won {
		t.Error("Clearing the last level should win the campaign")
	}
	if o, ok := events.Outcome(); !ok || o.Kind != core.EventWin {
		t.Errorf("outcome = %v, want win", o)
	}
}

func TestLevelBannerPausesAdapter(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	s := g.session.State()
	s.Board = BoardFromRows([][]int{
		{64, 64, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	g.session = engine.NewSession[State, core.Action](stateRules{g.rules, s}, 42)

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	res := g.Step(in)

	if !res.Events.Has(core.EventLevelCleared) {
		t.Fatal("expected level cleared event")
	}
	if !g.State().Paused {
		t.Error("level banner should pause the adapter")
	}
	if g.Snapshot().State != StateLevelCleared {
		t.Errorf("snapshot state = %s, want level_cleared", g.Snapshot().State)
	}

	for range levelClearDuration {
		g.Step(core.NewInputFrame())
	}
	if g.State().Paused {
		t.Error("banner should be gone after its duration")
	}
}

// stateRules starts from a fixed position.
type stateRules struct {
	Rules
	start State
}

func (r stateRules) Init(core.RNG) State { return r.start }

func TestEndlessModeNoWin(t *testing.T) {
	r := testRules(ModeEndless)
	s := State{
		Board: BoardFromRows([][]int{
			{8192, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}),
	}

	out, events := r.Apply(s, core.ActionDown, fixedRNG{})

	if events.Has(core.EventLevelCleared) {
		t.Error("Endless mode should not have level cleared")
	}
	if out.Won {
		t.Error("Endless mode should not have win state")
	}
}

func TestBiggerBoard(t *testing.T) {
	cfg, err := config.LoadT2048("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Board.Size = 6
	r := NewRules(cfg, ModeEndless, 0)

	s := r.Init(core.NewRNG(9))
	if s.Board.Rows() != 6 || s.Board.Cols() != 6 {
		t.Fatalf("board dims = %dx%d, want 6x6", s.Board.Rows(), s.Board.Cols())
	}
	if got := s.Board.Count(func(v int) bool { return v != 0 }); got != 2 {
		t.Errorf("start tiles = %d, want 2", got)
	}
}

func TestMaxTile(t *testing.T) {
	board := BoardFromRows([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	})

	if got := MaxTile(board); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
}

func TestEmptyCells(t *testing.T) {
	board := BoardFromRows([][]int{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	if cells := EmptyCells(board); len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
}

func TestOneMergePerTilePerMove(t *testing.T) {
	// [4, 4, 4, 4] sliding left should become [8, 8, 0, 0], not [16, 0, 0, 0]
	row := []int{4, 4, 4, 4}
	result, score, _ := slideLine(row)

	if !slices.Equal(result, []int{8, 8, 0, 0}) {
		t.Errorf("slideLine(%v) = %v, want [8 8 0 0] (one merge per tile per move)", row, result)
	}

	// Score should be 8+8 = 16, not 8+16 = 24
	if score != 16 {
		t.Errorf("slideLine(%v) score = %d, want 16", row, score)
	}
}

func TestSnapshot(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	snap := g.Snapshot()

	if snap.Mode != "campaign" {
		t.Errorf("Snapshot Mode = %s, want campaign", snap.Mode)
	}
	if snap.Level != 1 {
		t.Errorf("Snapshot Level = %d, want 1", snap.Level)
	}
	if snap.Target != 128 {
		t.Errorf("Snapshot Target = %d, want 128", snap.Target)
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}
}

func TestStartLevelFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Level = 3

	g := New()
	g.Reset(cfg)

	if snap := g.Snapshot(); snap.Level != 4 || snap.Target != 1024 {
		t.Errorf("start level snapshot = level %d target %d, want 4 and 1024", snap.Level, snap.Target)
	}
}

func TestReplayRoundTrip(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	for _, a := range []core.Action{core.ActionLeft, core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight} {
		in := core.NewInputFrame()
		in.Set(a)
		g.Step(in)
	}

	rec, ok := g.Recording()
	if !ok {
		t.Fatal("expected a recording after moves")
	}
	if err := New().Verify(context.Background(), rec, engine.ReplayOptions{}); err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}

	rec.FinalHash ^= 1
	if err := New().Verify(context.Background(), rec, engine.ReplayOptions{}); !errors.Is(err, engine.ErrReplayMismatch) {
		t.Errorf("Verify() on tampered recording = %v, want ErrReplayMismatch", err)
	}
}

func TestLevelNames(t *testing.T) {
	levels := DefaultLevels()
	names := LevelNames(levels)
	if len(names) != 10 {
		t.Errorf("LevelNames() length = %d, want 10", len(names))
	}
	if names[0] != "Warm-up" {
		t.Errorf("First level name = %s, want Warm-up", names[0])
	}
	if targets := LevelTargets(levels); targets[4] != 2048 {
		t.Errorf("Level 5 target = %d, want 2048", targets[4])
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if screen.Row(0) == "" || screen.Get((80-25)/2, hudHeight+1) != '┌' {
		t.Errorf("board corner not drawn:\n%s", screen.String())
	}
}
