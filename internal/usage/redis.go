package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	recordTTL = 30 * 24 * time.Hour
	dailyTTL  = 90 * 24 * time.Hour
)

// RedisStore persists usage records and daily aggregates in Redis.
// Individual records expire after 30 days, daily aggregates after 90.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using a redis:// URL and verifies the
// connection.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("connected to redis")

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, u TokenUsage) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal usage record: %w", err)
	}

	date := u.Timestamp.Format(dateKeyLayout)

	recordKey := fmt.Sprintf("token_usage:%s:%d", date, u.Timestamp.Unix())
	if err := s.client.SetEx(ctx, recordKey, payload, recordTTL).Err(); err != nil {
		return fmt.Errorf("failed to store usage record: %w", err)
	}

	dailyKey := fmt.Sprintf("daily_usage:%s", date)
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, dailyKey, "total_requests", 1)
	pipe.HIncrBy(ctx, dailyKey, "total_tokens", int64(u.TotalTokens))
	pipe.HIncrByFloat(ctx, dailyKey, "total_cost", u.EstimatedCost)
	pipe.Expire(ctx, dailyKey, dailyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update daily aggregates: %w", err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// HealthCheck verifies Redis connectivity.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
