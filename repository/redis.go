// redis.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-tycoon/dto"
)

const gamesKey = "games"

func gameKey(id string) string {
	return fmt.Sprintf("game:%s", id)
}

// InitRedis connects to addr and checks the server answers.
func InitRedis(ctx context.Context, addr string, db int, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	log.Info("✅ Redis connected", zap.String("addr", addr), zap.Int("db", db))
	return rdb, nil
}

// RedisStore keeps game records as a cache: each record lives in the hash
// game:<id> and expires after ttl, while the set "games" indexes the ids.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, log: log}
}

func (s *RedisStore) Save(ctx context.Context, record *dto.GameRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", record.ID, err)
	}
	summaryJSON, err := json.Marshal(record.Summary())
	if err != nil {
		return fmt.Errorf("marshal game %s summary: %w", record.ID, err)
	}

	key := gameKey(record.ID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, "summary", summaryJSON, "record", recordJSON)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	pipe.SAdd(ctx, gamesKey, record.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save game %s: %w", record.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*dto.GameRecord, error) {
	data, err := s.rdb.HGet(ctx, gameKey(id), "record").Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	var record dto.GameRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &record, nil
}

// List returns the summaries of the games still cached, newest first. Ids
// whose hash has expired are dropped from the index on the way.
func (s *RedisStore) List(ctx context.Context) ([]dto.GameSummary, error) {
	ids, err := s.rdb.SMembers(ctx, gamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, gameKey(id), "summary")
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("list games: %w", err)
	}

	var stale []interface{}
	summaries := make([]dto.GameSummary, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			stale = append(stale, ids[i])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		var summary dto.GameSummary
		if err := json.Unmarshal([]byte(data), &summary); err != nil {
			s.log.Warn("❌ skipping undecodable game summary", zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		summaries = append(summaries, summary)
	}
	if len(stale) > 0 {
		if err := s.rdb.SRem(ctx, gamesKey, stale...).Err(); err != nil {
			s.log.Warn("❌ failed to prune expired games", zap.Error(err))
		}
	}

	sortSummaries(summaries)
	return summaries, nil
}

func sortSummaries(summaries []dto.GameSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
}
