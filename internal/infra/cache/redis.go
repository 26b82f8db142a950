package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"storefront/internal/domain/model"
)

const keyPrefix = "storefront"

func statisticsKey() string {
	return keyPrefix + ":statistics"
}

func productKey(id int64) string {
	return fmt.Sprintf("%s:product:%d", keyPrefix, id)
}

// Redisに統計と商品詳細を置く
// ミスは(nil, nil)で返す
type RedisCache struct {
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

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// 起動時の疎通確認。失敗してもキャッシュなしで動く
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis ping failed")
		return err
	}
	return nil
}

func (c *RedisCache) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	var s model.Statistics
	ok, err := c.getJSON(ctx, statisticsKey(), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (c *RedisCache) SetStatistics(ctx context.Context, s model.Statistics) error {
	return c.setJSON(ctx, statisticsKey(), s)
}

func (c *RedisCache) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	ok, err := c.getJSON(ctx, productKey(id), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (c *RedisCache) SetProduct(ctx context.Context, p model.Product) error {
	return c.setJSON(ctx, productKey(p.ID), p)
}

func (c *RedisCache) DeleteProduct(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		return errors.Wrapf(err, "redis del product %d", id)
	}
	return nil
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrapf(err, "redis get %s", key)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, errors.Wrapf(err, "decode %s", key)
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}
	return nil
}
