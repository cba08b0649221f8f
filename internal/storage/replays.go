package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/vovakirdan/grid-arcade/internal/engine"
)

// SaveReplay stores a recorded session under its ID.
func (s *Store) SaveReplay(rec engine.Recording) error {
	_, err := s.db.Exec(
		`INSERT INTO replays (id, game_id, seed, level, plies, score, outcome, actions, config, final_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.Seed, rec.Level, rec.Plies, rec.Score, rec.Outcome,
		rec.Actions, rec.Config, strconv.FormatUint(rec.FinalHash, 16),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return nil
}

// Replay loads one recording. It returns ErrNotFound for an unknown ID.
func (s *Store) Replay(id string) (engine.Recording, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, seed, level, plies, score, outcome, actions, config, final_hash, created_at
		 FROM replays WHERE id = ?`,
		id,
	)
	rec, err := scanReplay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Recording{}, fmt.Errorf("%w: replay %s", ErrNotFound, id)
	}
	if err != nil {
		return engine.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return rec, nil
}

// Replays lists the most recent recordings, newest first. An empty gameID
// lists every game.
func (s *Store) Replays(gameID string, limit int) ([]engine.Recording, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, level, plies, score, outcome, actions, config, final_hash, created_at
		 FROM replays
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []engine.Recording
	for rows.Next() {
		rec, err := scanReplay(rows)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (engine.Recording, error) {
	var rec engine.Recording
	var hash string
	var createdAt any
	err := row.Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.Level, &rec.Plies, &rec.Score,
		&rec.Outcome, &rec.Actions, &rec.Config, &hash, &createdAt)
	if err != nil {
		return engine.Recording{}, err
	}
	rec.FinalHash, err = strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return engine.Recording{}, fmt.Errorf("bad final hash %q: %w", hash, err)
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}
