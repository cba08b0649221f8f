package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/grid-arcade/internal/config"
)

// Leaderboard is a shared Redis sorted set per game, so several arcade
// servers can show one ranking.
type Leaderboard struct {
	client *redis.Client
}

// LeaderboardOptions maps server settings onto a Redis client configuration.
func LeaderboardOptions(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewLeaderboard connects to the Redis server described by cfg and checks
// it answers.
func NewLeaderboard(ctx context.Context, cfg config.RedisConfig) (*Leaderboard, error) {
	opts := LeaderboardOptions(cfg)
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: cannot reach redis at %s: %w", opts.Addr, err)
	}
	return &Leaderboard{client: client}, nil
}

// NewLeaderboardFromClient wraps an existing client.
func NewLeaderboardFromClient(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

func leaderboardKey(gameID string) string {
	return "leaderboard:" + gameID
}

// Add records a score. member must be unique per score, e.g. "<id>:<player>".
func (l *Leaderboard) Add(ctx context.Context, gameID, member string, score int) error {
	err := l.client.ZAdd(ctx, leaderboardKey(gameID), redis.Z{
		Score:  float64(score),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("storage: cannot add to leaderboard: %w", err)
	}
	return nil
}

// Top returns the best scores of one game, highest first.
func (l *Leaderboard) Top(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	zs, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read leaderboard: %w", err)
	}

	entries := make([]ScoreEntry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		e := ScoreEntry{GameID: gameID, Score: int(z.Score)}
		id, player, _ := strings.Cut(member, ":")
		e.ID, _ = strconv.ParseInt(id, 10, 64)
		e.Player = player
		entries = append(entries, e)
	}
	return entries, nil
}

// Close releases the Redis connection.
func (l *Leaderboard) Close() error {
	return l.client.Close()
}
