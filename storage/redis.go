package storage

import (
	"context"

	"career-guide/errors"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter keeps each collection under <prefix><collection> as a string.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

func NewRedisAdapter(client *redis.Client, prefix string) *RedisAdapter {
	return &RedisAdapter{client: client, prefix: prefix}
}

func (r *RedisAdapter) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := checkName(collection); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, r.prefix+collection).Bytes()
	if err == redis.Nil {
		return nil, errors.E(errors.NotFound, collection+" not found", err)
	}
	if err != nil {
		return nil, errors.E(errors.Internal, "read "+collection, err)
	}
	return data, nil
}

func (r *RedisAdapter) Save(ctx context.Context, collection string, data []byte) error {
	if err := checkName(collection); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+collection, data, 0).Err(); err != nil {
		return errors.E(errors.Internal, "write "+collection, err)
	}
	return nil
}
