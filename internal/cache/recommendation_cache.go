package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "recs:gen"

// RecommendationCache кэширует рекомендации по арендатору. Ключ включает
// глобальное поколение. Его увеличивают свайп арендатора, изменение или
// выключение листинга, удаление пользователя и воркер истечения листингов.
type RecommendationCache interface {
	// Lookup возвращает hit и поколение, под которым надо сохранить свежий результат.
	Lookup(ctx context.Context, renterID string, dest interface{}) (hit bool, generation int64, err error)
	Store(ctx context.Context, renterID string, generation int64, value interface{}) error
	// Invalidate начинает новое поколение
	Invalidate(ctx context.Context) error
}

type RedisRecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisRecommendationCache(client *redis.Client, ttl time.Duration) *RedisRecommendationCache {
	return &RedisRecommendationCache{client: client, ttl: ttl}
}

func (c *RedisRecommendationCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func key(renterID string, generation int64) string {
	return fmt.Sprintf("recs:%d:%s", generation, renterID)
}

func (c *RedisRecommendationCache) Lookup(ctx context.Context, renterID string, dest interface{}) (bool, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return false, 0, err
	}

	data, err := c.client.Get(ctx, key(renterID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, gen, nil
	}
	if err != nil {
		return false, gen, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, gen, err
	}
	return true, gen, nil
}

func (c *RedisRecommendationCache) Store(ctx context.Context, renterID string, generation int64, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(renterID, generation), data, c.ttl).Err()
}

func (c *RedisRecommendationCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

// NoopRecommendationCache используется, когда Redis выключен
type NoopRecommendationCache struct{}

func (NoopRecommendationCache) Lookup(context.Context, string, interface{}) (bool, int64, error) {
	return false, 0, nil
}

func (NoopRecommendationCache) Store(context.Context, string, int64, interface{}) error { return nil }

func (NoopRecommendationCache) Invalidate(context.Context) error { return nil }
