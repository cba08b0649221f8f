package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/grid-arcade/internal/multiplayer"
)

// MatchRecord is a stored board match.
type MatchRecord struct {
	ID        int64
	Result    multiplayer.MatchResult
	Reason    string
	CreatedAt time.Time
}

// SaveMatch records the result of a finished board match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(result multiplayer.MatchResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO board_matches (match_id, game_id, winner, end_reason, plies, score1, score2)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(result.MatchID),
		result.GameID,
		int(result.Winner),
		result.Reason.String(),
		result.Plies,
		result.Score1,
		result.Score2,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// MatchByID retrieves a board match by its match ID.
func (s *Store) MatchByID(matchID multiplayer.MatchID) (MatchRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, match_id, game_id, winner, end_reason, plies, score1, score2, created_at
		 FROM board_matches
		 WHERE match_id = ?`,
		string(matchID),
	)
	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return MatchRecord{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if err != nil {
		return MatchRecord{}, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return rec, nil
}

// RecentMatches retrieves the most recent matches of one game.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, game_id, winner, end_reason, plies, score1, score2, created_at
		 FROM board_matches
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Wins counts the matches each side has won in one game, indexed by
// PlayerID. Index 0 holds draws.
func (s *Store) Wins(gameID string) ([3]int, error) {
	var wins [3]int
	rows, err := s.db.Query(
		`SELECT winner, COUNT(*) FROM board_matches
		 WHERE game_id = ? AND end_reason != ?
		 GROUP BY winner`,
		gameID, multiplayer.MatchEndReasonAbandoned.String(),
	)
	if err != nil {
		return wins, fmt.Errorf("storage: cannot count wins: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var winner, n int
		if err := rows.Scan(&winner, &n); err != nil {
			return wins, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if winner >= 0 && winner < len(wins) {
			wins[winner] = n
		}
	}
	return wins, rows.Err()
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var matchID string
	var winner int
	var createdAt any
	err := row.Scan(&rec.ID, &matchID, &rec.Result.GameID, &winner, &rec.Reason,
		&rec.Result.Plies, &rec.Result.Score1, &rec.Result.Score2, &createdAt)
	if err != nil {
		return MatchRecord{}, err
	}
	rec.Result.MatchID = multiplayer.MatchID(matchID)
	rec.Result.Winner = multiplayer.PlayerID(winner)
	rec.Result.Reason = parseReason(rec.Reason)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

func parseReason(s string) multiplayer.MatchEndReason {
	for r := multiplayer.MatchEndReasonAbandoned; r <= multiplayer.MatchEndReasonRepetition; r++ {
		if r.String() == s {
			return r
		}
	}
	return multiplayer.MatchEndReasonAbandoned
}
