package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beka-birhanu/gravity-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultNamespace = "gravity-maze"
	lockTries        = 3
	lockExpiry       = 5 * time.Second
)

// ErrUnavailable is returned when redis cannot be reached.
var ErrUnavailable = errors.New("leaderboard unavailable")

// RedisLeaderboard keeps the best level per player in a sorted set and the
// death count of that run in a hash.
type RedisLeaderboard struct {
	client    *redis.Client
	locker    *redsync.Redsync
	namespace string
}

var _ i.Leaderboard = &RedisLeaderboard{}

// NewRedisLeaderboard pings redis and returns a leaderboard under namespace.
func NewRedisLeaderboard(ctx context.Context, client *redis.Client, namespace string) (*RedisLeaderboard, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client:    client,
		locker:    redsync.New(pool),
		namespace: namespace,
	}, nil
}

func (l *RedisLeaderboard) scoresKey() string {
	return l.namespace + ":leaderboard"
}

func (l *RedisLeaderboard) runKey(player string) string {
	return l.namespace + ":run:" + player
}

// RecordClear implements i.Leaderboard.
func (l *RedisLeaderboard) RecordClear(ctx context.Context, player string, level, deaths int) error {
	mutex := l.locker.NewMutex(l.runKey(player)+":lock", redsync.WithTries(lockTries), redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("%w: locking %s: %v", ErrUnavailable, player, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	changed, err := l.client.ZAddArgs(ctx, l.scoresKey(), redis.ZAddArgs{
		GT:      true,
		Ch:      true,
		Members: []redis.Z{{Score: float64(level), Member: player}},
	}).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if changed == 0 {
		return nil
	}

	err = l.client.HSet(ctx, l.runKey(player),
		"level", level,
		"deaths", deaths,
		"run", uuid.NewString(),
		"updatedAt", time.Now().UTC().Format(time.RFC3339),
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Top implements i.Leaderboard.
func (l *RedisLeaderboard) Top(ctx context.Context, n int) ([]i.ScoreEntry, error) {
	if n <= 0 {
		return []i.ScoreEntry{}, nil
	}

	scores, err := l.client.ZRevRangeWithScores(ctx, l.scoresKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	pipe := l.client.Pipeline()
	deaths := make([]*redis.StringCmd, len(scores))
	for idx, z := range scores {
		deaths[idx] = pipe.HGet(ctx, l.runKey(fmt.Sprint(z.Member)), "deaths")
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	entries := make([]i.ScoreEntry, 0, len(scores))
	for idx, z := range scores {
		d, _ := strconv.Atoi(deaths[idx].Val())
		entries = append(entries, i.ScoreEntry{
			Player: fmt.Sprint(z.Member),
			Level:  int(z.Score),
			Deaths: d,
		})
	}
	return entries, nil
}
