// Package multiplayer describes two-player matches played hot-seat on one
// terminal, and how their outcomes are reported to the platform.
package multiplayer

import "github.com/vovakirdan/grid-arcade/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 moves first: white in chess, the bottom side in checkers.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	NoPlayer = core.NoPlayer
	Player1  = core.Player1
	Player2  = core.Player2
)

// MatchID uniquely identifies a match. Board games use their session ID.
type MatchID string

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonAbandoned  MatchEndReason = iota // Left before a result
	MatchEndReasonCheckmate                        // King in check with no legal move
	MatchEndReasonNoMoves                          // Side to move has no pieces or moves
	MatchEndReasonStalemate                        // No legal move, not in check
	MatchEndReasonRepetition                       // Same position repeated too often
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonAbandoned:
		return "abandoned"
	case MatchEndReasonCheckmate:
		return "checkmate"
	case MatchEndReasonNoMoves:
		return "no moves"
	case MatchEndReasonStalemate:
		return "stalemate"
	case MatchEndReasonRepetition:
		return "repetition"
	default:
		return "unknown"
	}
}

// MatchResult contains the outcome of a match.
type MatchResult struct {
	MatchID MatchID
	GameID  string
	Reason  MatchEndReason
	Winner  PlayerID // NoPlayer for draws and abandoned matches
	Plies   int
	Score1  int // material taken by Player1
	Score2  int // material taken by Player2
}

// Draw reports whether the match ended without a winner.
func (r MatchResult) Draw() bool {
	return r.Winner == NoPlayer && r.Reason != MatchEndReasonAbandoned
}

// BoardGame is implemented by two-player games. The platform uses it to
// show whose turn it is and to store finished matches.
type BoardGame interface {
	// Turn returns the side to move.
	Turn() PlayerID

	// Result returns the match outcome. ok is false while the game is
	// still in progress.
	Result() (res MatchResult, ok bool)
}
