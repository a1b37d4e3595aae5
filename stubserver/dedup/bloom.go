package dedup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// BloomConfig configures the RedisBloom connection and key.
type BloomConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
	// Capacity sets the initial BF.RESERVE capacity (number of items)
	Capacity int
	// ErrorRate sets the desired false positive probability
	ErrorRate float64
}

// RedisBloom is a Filter backed by RedisBloom commands. It survives
// stub server restarts, unlike MemoryFilter.
type RedisBloom struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisBloomFromEnv builds a RedisBloom filter from REDIS_ADDR,
// REDIS_PASS, BLOOM_KEY and BLOOM_TTL_SECONDS.
func NewRedisBloomFromEnv() (*RedisBloom, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	key := os.Getenv("BLOOM_KEY")
	if key == "" {
		key = "newsdeck:articles:bloom"
	}
	ttl := 24 * time.Hour
	if t := os.Getenv("BLOOM_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	cfg := BloomConfig{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASS"),
		Key:       key,
		TTL:       ttl,
		Capacity:  100000,
		ErrorRate: 0.001,
	}
	return NewRedisBloom(cfg)
}

// NewRedisBloom connects to Redis and reserves the filter key if it
// does not exist yet.
func NewRedisBloom(cfg BloomConfig) (*RedisBloom, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	// BF.RESERVE may fail when the RedisBloom module is missing; BF.ADD
	// auto-creates the filter in that case, so the error is ignored.
	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		client.Do(ctx, "BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity)
	}

	return &RedisBloom{client: client, key: cfg.Key, ttl: cfg.TTL}, nil
}

func (r *RedisBloom) Close() error {
	return r.client.Close()
}

func (r *RedisBloom) Seen(fingerprint string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.client.Do(ctx, "BF.EXISTS", r.key, fingerprint).Result()
	if err != nil {
		return false, err
	}
	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Add inserts the fingerprint and refreshes the key TTL so the filter
// stays alive for ttl after the most recent insertion.
func (r *RedisBloom) Add(fingerprint string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Do(ctx, "BF.ADD", r.key, fingerprint).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, r.key, r.ttl).Err()
}
