package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

type rankedScores struct {
	entries []storage.ScoreEntry
	err     error
	game    string
	limit   int
}

func (r *rankedScores) Top(_ context.Context, gameID string, limit int) ([]storage.ScoreEntry, error) {
	r.game, r.limit = gameID, limit
	return r.entries, r.err
}

func TestPrintShared(t *testing.T) {
	src := &rankedScores{entries: []storage.ScoreEntry{
		{GameID: "snake", Player: "alice", Score: 120},
		{GameID: "snake", Score: 80},
	}}

	var out bytes.Buffer
	require.NoError(t, printShared(context.Background(), &out, src, "snake"))

	assert.Equal(t, "snake", src.game)
	assert.Equal(t, 10, src.limit)
	assert.Contains(t, out.String(), "Shared Leaderboard")
	assert.Regexp(t, `1\s+120\s+alice`, out.String())
	assert.Regexp(t, `2\s+80\s+-`, out.String())
}

func TestPrintSharedEmptyAndFailing(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printShared(context.Background(), &out, &rankedScores{}, "tetris"))
	assert.Contains(t, out.String(), "No shared scores yet.")

	err := printShared(context.Background(), &out, &rankedScores{err: errors.New("timeout")}, "tetris")
	assert.ErrorContains(t, err, "timeout")
}

func TestUseRedisKeepsCredentials(t *testing.T) {
	cfg := config.RedisConfig{Host: "localhost", Port: "6379", Password: "pw", DB: 2}

	require.NoError(t, useRedis(&cfg, "cache.lan:6380"))
	assert.Equal(t, config.RedisConfig{Enabled: true, Host: "cache.lan", Port: "6380", Password: "pw", DB: 2}, cfg)

	assert.Error(t, useRedis(&cfg, "no-port"))
}
