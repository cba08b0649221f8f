package snake

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/engine"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// fixedRNG picks the first free cell and always rolls regular food.
type fixedRNG struct{}

func (fixedRNG) IntN(int) int     { return 0 }
func (fixedRNG) Float64() float64 { return 0.99 }

// stateRules starts from a fixed position.
type stateRules struct {
	Rules
	start State
}

func (r stateRules) Init(core.RNG) State { return r.start }

func testRules(t *testing.T, mode Mode, startLevel int) Rules {
	t.Helper()
	cfg, err := config.LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	return NewRules(cfg, mode, startLevel)
}

func coords(pairs ...int) []grid.Coord {
	out := make([]grid.Coord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, grid.At(pairs[i], pairs[i+1]))
	}
	return out
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	cfg := core.RuntimeConfig{
		Seed:    12345,
		ScreenW: 80,
		ScreenH: 24,
	}

	g1 := New()
	g1.Reset(cfg)

	g2 := New()
	g2.Reset(cfg)

	// Run both games with same inputs for N ticks
	input := core.NewInputFrame()
	for i := range 200 {
		input.Clear()
		if i == 20 {
			input.Set(core.ActionDown)
		}
		if i == 40 {
			input.Set(core.ActionLeft)
		}

		g1.Step(input)
		g2.Step(input)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()

	if snap1 != snap2 {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", snap1, snap2)
	}
}

func TestStartPosition(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})

	if len(s.Body) != 3 {
		t.Fatalf("start length = %d, want 3", len(s.Body))
	}
	if s.Dir != grid.DirRight {
		t.Errorf("start direction = %v, want right", s.Dir)
	}
	if s.Body[0].Col != s.Body[1].Col+1 || s.Body[0].Row != s.Body[1].Row {
		t.Errorf("head should lead to the right: %v", s.Body)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	head := s.Head()

	out, _ := r.Apply(s, core.ActionLeft, fixedRNG{})

	if out.Dir != grid.DirRight {
		t.Errorf("reversal should be ignored, dir = %v", out.Dir)
	}
	if out.Head() != head.Step(grid.DirRight) {
		t.Errorf("snake should keep going right, head = %v", out.Head())
	}
}

func TestTurn(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	head := s.Head()

	out, _ := r.Apply(s, core.ActionDown, fixedRNG{})

	if out.Head() != head.Step(grid.DirDown) {
		t.Errorf("head = %v, want %v", out.Head(), head.Step(grid.DirDown))
	}
	if len(out.Body) != len(s.Body) {
		t.Errorf("length changed without food: %d -> %d", len(s.Body), len(out.Body))
	}
	if s.Head() != head {
		t.Error("Apply must not modify the input state")
	}
}

func TestNonMoveActionIgnored(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})

	out, events := r.Apply(s, core.ActionRotateCW, fixedRNG{})

	if len(events) != 0 || r.Hash(out) != r.Hash(s) {
		t.Error("non-move action should leave the state unchanged")
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	r := testRules(t, ModeCampaign, 1) // Twin Pillars has inner walls

	for seed := range int64(100) {
		s := r.Init(core.NewRNG(seed))
		if !s.HasFood {
			t.Fatalf("seed %d: no food spawned", seed)
		}

		// Check food is within bounds and not on a wall
		if s.Board.At(s.Food) != CellEmpty {
			t.Errorf("seed %d: food spawned on wall at %v", seed, s.Food)
		}

		// Check food is not on snake
		for _, seg := range s.Body {
			if seg == s.Food {
				t.Errorf("seed %d: food spawned on snake at %v", seed, s.Food)
			}
		}
	}
}

func TestFoodKinds(t *testing.T) {
	r := testRules(t, ModeEndless, 0)
	counts := map[FoodKind]int{}

	rng := core.NewRNG(7)
	for range 2000 {
		s := r.Init(rng)
		counts[s.FoodKind]++
	}

	// super 10%, bonus 27%, regular 63%
	if counts[FoodSuper] < 100 || counts[FoodSuper] > 320 {
		t.Errorf("super food count %d out of range", counts[FoodSuper])
	}
	if counts[FoodBonus] < 400 || counts[FoodBonus] > 700 {
		t.Errorf("bonus food count %d out of range", counts[FoodBonus])
	}
	if counts[FoodRegular] < counts[FoodBonus] {
		t.Errorf("regular food should be most common: %v", counts)
	}
}

func TestWallCollision(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	s.Body = coords(0, 5, 0, 4, 0, 3)
	s.Dir = grid.DirRight

	out, events := r.Apply(s, core.ActionUp, fixedRNG{})

	if !out.Dead {
		t.Error("Game should be over after leaving the board")
	}
	if !events.Has(core.EventCollision) {
		t.Error("expected a collision event")
	}
	if o, ok := events.Outcome(); !ok || o.Kind != core.EventLoss {
		t.Errorf("outcome = %v, want loss", o)
	}
}

func TestInnerWallCollision(t *testing.T) {
	r := testRules(t, ModeCampaign, 1) // pillar at rows 5-14, cols 12-13
	s := r.Init(fixedRNG{})
	s.Body = coords(6, 11, 6, 10, 6, 9)
	s.Dir = grid.DirRight

	out, _ := r.Apply(s, core.ActionNone, fixedRNG{})

	if !out.Dead {
		t.Error("Game should be over after hitting a wall block")
	}
}

func TestSelfCollision(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	s.HasFood = false
	// Head at (5,5) came up from (6,5); turning right runs into (5,6).
	s.Body = coords(5, 5, 6, 5, 6, 6, 5, 6, 4, 6)
	s.Dir = grid.DirUp

	out, events := r.Apply(s, core.ActionRight, fixedRNG{})

	if !out.Dead {
		t.Error("Game should be over after self collision")
	}
	if !events.Has(core.EventLoss) {
		t.Error("expected a loss event")
	}
}

func TestChasingTailIsSafe(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	s.HasFood = false
	// A closed square: the head moves into the cell the tail leaves.
	s.Body = coords(5, 5, 6, 5, 6, 6, 5, 6)
	s.Dir = grid.DirUp

	out, _ := r.Apply(s, core.ActionRight, fixedRNG{})

	if out.Dead {
		t.Error("moving into the vacating tail cell must not kill the snake")
	}
	if out.Head() != grid.At(5, 6) {
		t.Errorf("head = %v, want (5,6)", out.Head())
	}
}

func TestSnakeGrowth(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	initialLen := len(s.Body)

	// Place food directly in front of snake
	s.Food = s.Head().Step(grid.DirRight)
	s.FoodKind = FoodRegular
	s.HasFood = true

	out, events := r.Apply(s, core.ActionNone, fixedRNG{})

	if len(out.Body) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", len(out.Body), initialLen+1)
	}
	if out.Score != 10 {
		t.Errorf("Score should be 10 after eating regular food, got %d", out.Score)
	}
	if !events.Has(core.EventFoodEaten) {
		t.Error("expected a food eaten event")
	}
	if out.Food == s.Food {
		t.Error("new food should be spawned elsewhere")
	}
}

func TestSuperFoodPoints(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	s.Food = s.Head().Step(grid.DirRight)
	s.FoodKind = FoodSuper

	out, events := r.Apply(s, core.ActionNone, fixedRNG{})

	if out.Score != 50 || events.Score() != 50 {
		t.Errorf("super food score = %d (events %d), want 50", out.Score, events.Score())
	}
}

func TestLevelCompletion(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	target := r.Levels[0].TargetFood
	s.FoodEaten = target - 1
	s.Food = s.Head().Step(grid.DirRight)

	out, events := r.Apply(s, core.ActionNone, fixedRNG{})

	if !events.Has(core.EventLevelCleared) {
		t.Fatal("Level should be cleared after eating TargetFood")
	}
	if out.Level != 1 {
		t.Errorf("Expected level 1, got %d", out.Level)
	}
	if out.FoodEaten != 0 || len(out.Body) != r.StartLength {
		t.Errorf("new level should reset food count and snake, got %d food, length %d", out.FoodEaten, len(out.Body))
	}
	if out.Board.Count(func(c Cell) bool { return c == CellWall }) == 0 {
		t.Error("level 2 should have walls")
	}
}

func TestCampaignWin(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	s := r.Init(fixedRNG{})
	s.Level = len(r.Levels) - 1
	s.FoodEaten = r.Levels[s.Level].TargetFood - 1
	s.Food = s.Head().Step(grid.DirRight)

	out, events := r.Apply(s, core.ActionNone, fixedRNG{})

	if !out.Won {
		t.Error("Clearing the last level should win")
	}
	if o, ok := events.Outcome(); !ok || o.Kind != core.EventWin {
		t.Errorf("outcome = %v, want win", o)
	}
}

func TestEndlessProgression(t *testing.T) {
	r := testRules(t, ModeEndless, 0)
	s := r.Init(fixedRNG{})
	s.FoodEaten = endlessFoodPerLevel - 1
	s.Food = s.Head().Step(grid.DirRight)

	out, events := r.Apply(s, core.ActionNone, fixedRNG{})

	if out.Level != 1 || !events.Has(core.EventLevelCleared) {
		t.Errorf("Expected level 1 after %d food in endless, got %d", endlessFoodPerLevel, out.Level)
	}
	if out.Won {
		t.Error("endless mode never wins by levels")
	}

	// After cycling through all maps, speed should increase
	g := NewEndless()
	g.Reset(core.RuntimeConfig{Seed: 456, ScreenW: 80, ScreenH: 24})
	initialSpeed := g.moveEveryTicks()

	cycled := g.session.State()
	cycled.Level = len(g.rules.Levels)
	g.session = engine.NewSession[State, core.Action](stateRules{g.rules, cycled}, 456)

	if got := g.moveEveryTicks(); got >= initialSpeed {
		t.Errorf("Expected speed increase (lower moveEveryTicks), got %d vs initial %d", got, initialSpeed)
	}
}

func TestAdapterMovesOnInterval(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 5, ScreenW: 80, ScreenH: 24})
	head := g.session.State().Head()
	every := g.moveEveryTicks()

	for range every - 1 {
		g.Step(core.NewInputFrame())
	}
	if g.session.State().Head() != head {
		t.Fatal("snake moved before its interval")
	}

	g.Step(core.NewInputFrame())
	if g.session.State().Head() != head.Step(grid.DirRight) {
		t.Errorf("snake should move once per %d ticks", every)
	}
}

func TestAdapterBuffersTurn(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 5, ScreenW: 80, ScreenH: 24})
	head := g.session.State().Head()

	in := core.NewInputFrame()
	in.Set(core.ActionDown)
	g.Step(in)
	for range g.moveEveryTicks() - 1 {
		g.Step(core.NewInputFrame())
	}

	if g.session.State().Head() != head.Step(grid.DirDown) {
		t.Errorf("buffered turn not applied, head = %v", g.session.State().Head())
	}
}

func TestAllLevelsValid(t *testing.T) {
	r := testRules(t, ModeCampaign, 0)
	if len(r.Levels) == 0 {
		t.Fatal("no levels configured")
	}

	for i, level := range r.Levels {
		if level.Name == "" {
			t.Errorf("Level %d has empty name", i)
		}
		if level.TargetFood <= 0 {
			t.Errorf("Level %d has invalid TargetFood: %d", i, level.TargetFood)
		}

		s := r.Init(fixedRNG{})
		s.Level = i
		r.loadLevel(&s, fixedRNG{})
		for _, seg := range s.Body {
			if s.Board.At(seg) != CellEmpty {
				t.Errorf("Level %d places the snake on a wall at %v", i, seg)
			}
		}
		if ahead := s.Head().Step(grid.DirRight); s.Board.At(ahead) != CellEmpty {
			t.Errorf("Level %d starts the snake facing a wall", i)
		}
	}
}

func TestGameIDs(t *testing.T) {
	if id := New().ID(); id != "snake" {
		t.Errorf("Campaign ID should be 'snake', got %s", id)
	}
	if id := NewEndless().ID(); id != "snake_endless" {
		t.Errorf("Endless ID should be 'snake_endless', got %s", id)
	}
}

func TestTitles(t *testing.T) {
	if title := New().Title(); title != "Snake" {
		t.Errorf("Campaign title should be 'Snake', got %s", title)
	}
	if title := NewEndless().Title(); title != "Snake (Endless)" {
		t.Errorf("Endless title should be 'Snake (Endless)', got %s", title)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}
	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}
}

func TestReplayRoundTrip(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 77, ScreenW: 80, ScreenH: 24})

	in := core.NewInputFrame()
	for i := range 120 {
		in.Clear()
		switch i {
		case 10:
			in.Set(core.ActionUp)
		case 40:
			in.Set(core.ActionLeft)
		}
		g.Step(in)
	}

	rec, ok := g.Recording()
	if !ok {
		t.Fatal("expected a recording")
	}
	if err := New().Verify(context.Background(), rec, engine.ReplayOptions{}); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
}

func TestRender(t *testing.T) {
	cfg := core.RuntimeConfig{
		Seed:    444,
		ScreenW: 80,
		ScreenH: 24,
	}

	g := New()
	g.Reset(cfg)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	if !strings.Contains(content, "O") {
		t.Error("snake head should be drawn")
	}
}
