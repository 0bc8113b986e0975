package redis

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}

// Set stores value JSON encoded; string values are stored as is.
func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	payload, err := encode(value)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, payload, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

// Get returns an empty string and no error for a missing key.
func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrRedisGet(err)
	}
	return data, nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	payload, err := encode(value)
	if err != nil {
		return false, err
	}

	ok, err := r.client.SetNX(ctx, key, payload, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return ok, nil
}

func encode(value interface{}) (interface{}, error) {
	if str, ok := value.(string); ok {
		return str, nil
	}
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return jsonValue, nil
}
