package core

import "github.com/vovakirdan/grid-arcade/internal/grid"

// Action represents a semantic game action, abstracted from physical key presses.
// Rule engines consume one Action per tick; ActionNone is a tick with no input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow
	ActionDown             // S, Down arrow
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionRotateCW         // X, E
	ActionRotateCCW        // Z
	ActionSoftDrop         // Down in falling-piece games
	ActionHardDrop         // Space in falling-piece games
	ActionFlap             // Part of the action set; no grid game binds it
	ActionJump             // Part of the action set; no grid game binds it
	ActionSelect           // Space/Enter on a board
	ActionCancel           // Backspace, drops a board selection
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R key - restart game after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionFlap:      "Flap",
	ActionJump:      "Jump",
	ActionSelect:    "Select",
	ActionCancel:    "Cancel",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Dir returns the grid direction for a directional action.
func (a Action) Dir() (grid.Dir, bool) {
	switch a {
	case ActionUp:
		return grid.DirUp, true
	case ActionDown:
		return grid.DirDown, true
	case ActionLeft:
		return grid.DirLeft, true
	case ActionRight:
		return grid.DirRight, true
	default:
		return grid.DirNone, false
	}
}

// PlayerID identifies a side in two-player board games.
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
)

// Other returns the opposing player.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "nobody"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// First returns the first of the candidate actions present in the frame,
// checked in the order given. Returns ActionNone when none are present.
func (f InputFrame) First(candidates ...Action) Action {
	for _, a := range candidates {
		if f.Has(a) {
			return a
		}
	}
	return ActionNone
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
