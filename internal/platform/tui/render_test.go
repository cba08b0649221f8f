package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "SCORE 40")
	s.DrawTextColor(2, 1, "@@@", core.ColorGreen)
	s.SetColor(11, 2, '*', core.Color(200))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "SCORE 40") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "@@@") {
		t.Errorf("colored run missing from %q", lines[1])
	}
	if !strings.Contains(lines[2], "*") {
		t.Errorf("unknown color should still render its rune, got %q", lines[2])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(250)).Render("x"); got != "x" {
		t.Errorf("unknown color should render unstyled, got %q", got)
	}
}
