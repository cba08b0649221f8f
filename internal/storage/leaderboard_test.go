package storage

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/grid-arcade/internal/config"
)

const (
	redisPort     = "6379/tcp"
	redisExpire   = 120
	redisMaxWait  = 60 * time.Second
	redisImage    = "redis"
	redisImageTag = "alpine"
)

// startRedis runs a throwaway Redis container, skipping the test when
// Docker is not available.
func startRedis(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()
	ctx, client, _ := startRedisAuth(t, "")
	return ctx, client
}

// startRedisAuth is startRedis with requirepass set when password is not
// empty. It also returns the host:port the container listens on.
func startRedisAuth(t *testing.T, password string) (context.Context, *redis.Client, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("redis integration test skipped in -short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisMaxWait)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	opts := &dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisImageTag,
	}
	if password != "" {
		opts.Cmd = []string{"redis-server", "--requirepass", password}
	}
	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("could not start redis: %v", err)
	}
	_ = resource.Expire(redisExpire)
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge redis: %v", err)
		}
	})

	pool.MaxWait = redisMaxWait
	addr := resource.GetHostPort(redisPort)
	var client *redis.Client
	err = pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: addr, Password: password})
		return client.Ping(ctx).Err()
	})
	require.NoError(t, err, "redis never became ready")
	t.Cleanup(func() { client.Close() })

	return ctx, client, addr
}

func TestLeaderboardOptions(t *testing.T) {
	opts := LeaderboardOptions(config.RedisConfig{
		Enabled:  true,
		Host:     "redis.internal",
		Port:     "6380",
		Password: "hunter2",
		DB:       4,
	})

	assert.Equal(t, "redis.internal:6380", opts.Addr)
	assert.Equal(t, "hunter2", opts.Password)
	assert.Equal(t, 4, opts.DB)
}

func TestNewLeaderboardUsesPasswordAndDB(t *testing.T) {
	ctx, client, addr := startRedisAuth(t, "s3cret")
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	cfg := config.RedisConfig{Enabled: true, Host: host, Port: port, Password: "s3cret", DB: 3}

	lb, err := NewLeaderboard(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { lb.Close() })
	require.NoError(t, lb.Add(ctx, "snake", "1:alice", 42))

	// client talks to DB 0, the leaderboard to DB 3
	n, err := client.Exists(ctx, leaderboardKey("snake")).Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	db3 := redis.NewClient(LeaderboardOptions(cfg))
	t.Cleanup(func() { db3.Close() })
	n, err = db3.Exists(ctx, leaderboardKey("snake")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	cfg.Password = ""
	_, err = NewLeaderboard(ctx, cfg)
	assert.Error(t, err)
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx, client := startRedis(t)
	lb := NewLeaderboardFromClient(client)

	require.NoError(t, lb.Add(ctx, "snake", "1:alice", 30))
	require.NoError(t, lb.Add(ctx, "snake", "2:bob", 90))
	require.NoError(t, lb.Add(ctx, "snake", "3:carol", 60))
	require.NoError(t, lb.Add(ctx, "tetris", "4:dave", 1000))

	top, err := lb.Top(ctx, "snake", 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, ScoreEntry{ID: 2, GameID: "snake", Player: "bob", Score: 90}, top[0])
	assert.Equal(t, "carol", top[1].Player)

	empty, err := lb.Top(ctx, "chess", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStoreMirrorsScores(t *testing.T) {
	ctx, client := startRedis(t)
	store := openTestStore(t)
	store.MirrorTo(NewLeaderboardFromClient(client))

	id, err := store.SaveScore("2048", "erin", 2048)
	require.NoError(t, err)

	top, err := NewLeaderboardFromClient(client).Top(ctx, "2048", 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, id, top[0].ID)
	assert.Equal(t, 2048, top[0].Score)
}
