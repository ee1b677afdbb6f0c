package levelstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beka-birhanu/penguin-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "penguinmaze"
	levelKeyFmt   = "%s:player:%s:level"

	levelField = "level"
	bestField  = "best"
)

var _ i.LevelStore = &RedisLevelStore{}

// RedisLevelStore keeps each player's current and best level in a redis hash with TTL support.
type RedisLevelStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedisLevelStore initializes a RedisLevelStore with the provided Redis client and TTL.
// A non-positive ttl keeps levels forever.
func NewRedisLevelStore(client *redis.Client, ttlSeconds int) (*RedisLevelStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}

	store := &RedisLevelStore{
		client: client,
		prefix: defaultPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Level returns the player's current level.
func (s *RedisLevelStore) Level(ctx context.Context, playerID uuid.UUID) (int, bool, error) {
	raw, err := s.client.HGet(ctx, s.key(playerID), levelField).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt level %q for player %s: %w", raw, playerID, err)
	}
	return level, true, nil
}

// BestLevel returns the highest level the player has ever been saved at.
func (s *RedisLevelStore) BestLevel(ctx context.Context, playerID uuid.UUID) (int, error) {
	best, err := s.client.HGet(ctx, s.key(playerID), bestField).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return best, err
}

// SaveLevel stores the player's level and raises their best level if needed.
// The read-modify-write runs under a distributed lock on the player's key.
func (s *RedisLevelStore) SaveLevel(ctx context.Context, playerID uuid.UUID, level int) error {
	key := s.key(playerID)
	mutex := s.locker.NewMutex(key + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("obtaining level lock: %w", err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	best, err := s.client.HGet(ctx, key, bestField).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, levelField, level, bestField, max(best, level))
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

func (s *RedisLevelStore) key(playerID uuid.UUID) string {
	return fmt.Sprintf(levelKeyFmt, s.prefix, playerID)
}
