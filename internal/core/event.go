package core

import (
	"fmt"

	"github.com/vovakirdan/grid-arcade/internal/grid"
)

// EventKind classifies something a rule engine reports about a transition.
type EventKind int

const (
	EventScore        EventKind = iota // Value: points gained
	EventLinesCleared                  // Value: rows removed in one sweep
	EventMerge                         // Value: merged tile value, At: target cell
	EventCapture                       // Value: capturing player, At: captured cell
	EventPromotion                     // Value: promoting player, At: square
	EventCollision                     // At: cell hit
	EventFoodEaten                     // Value: points, At: food cell
	EventDotEaten                      // At: dot cell
	EventPieceLocked                   // Value: piece id
	EventTurnPassed                    // Value: player now to move
	EventLevelCleared                  // Value: level just finished (1-based)
	EventLifeLost                      // Value: lives left
	EventCheck                         // Value: player in check
	EventWin                           // Value: winning player, 0 for solo games
	EventLoss                          // Value: losing player, 0 for solo games
	EventDraw
)

var eventNames = [...]string{
	EventScore:        "score",
	EventLinesCleared: "lines_cleared",
	EventMerge:        "merge",
	EventCapture:      "capture",
	EventPromotion:    "promotion",
	EventCollision:    "collision",
	EventFoodEaten:    "food_eaten",
	EventDotEaten:     "dot_eaten",
	EventPieceLocked:  "piece_locked",
	EventTurnPassed:   "turn_passed",
	EventLevelCleared: "level_cleared",
	EventLifeLost:     "life_lost",
	EventCheck:        "check",
	EventWin:          "win",
	EventLoss:         "loss",
	EventDraw:         "draw",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Terminal reports whether this kind ends a game.
func (k EventKind) Terminal() bool {
	return k == EventWin || k == EventLoss || k == EventDraw
}

// Event is a fact emitted by a single rule application.
// Terminal states are reported as events, never as errors.
type Event struct {
	Kind  EventKind
	Value int
	At    grid.Coord
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d)@%s", e.Kind, e.Value, e.At)
}

// Events is the ordered list of facts produced by one transition.
type Events []Event

// Add appends an event.
func (es *Events) Add(kind EventKind, value int, at grid.Coord) {
	*es = append(*es, Event{Kind: kind, Value: value, At: at})
}

// Has reports whether any event of the given kind is present.
func (es Events) Has(kind EventKind) bool {
	for _, e := range es {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Score sums every EventScore value.
func (es Events) Score() int {
	total := 0
	for _, e := range es {
		if e.Kind == EventScore {
			total += e.Value
		}
	}
	return total
}

// Outcome returns the first terminal event, if any.
func (es Events) Outcome() (Event, bool) {
	for _, e := range es {
		if e.Kind.Terminal() {
			return e, true
		}
	}
	return Event{}, false
}
