package t2048

import (
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// mergeFlashDuration is how long a merged tile stays highlighted (~133ms at 60fps).
const mergeFlashDuration = 8

// flash highlights a tile that was produced by a merge.
type flash struct {
	at    grid.Coord
	ticks int
}

// startFlashes replaces the running highlights with this move's merges.
func (g *Game) startFlashes(events core.Events) {
	g.flashes = g.flashes[:0]
	for _, e := range events {
		if e.Kind == core.EventMerge {
			g.flashes = append(g.flashes, flash{at: e.At, ticks: mergeFlashDuration})
		}
	}
}

// updateFlashes ages the highlights and drops finished ones.
func (g *Game) updateFlashes() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ticks--
		if f.ticks > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}

// flashing reports whether the tile at p is highlighted.
func (g *Game) flashing(p grid.Coord) bool {
	for _, f := range g.flashes {
		if f.at == p {
			return true
		}
	}
	return false
}
