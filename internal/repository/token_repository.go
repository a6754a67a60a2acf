package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "session:"

// TokenRepository tracks issued auth tokens by their jti claim. A token is
// valid only while its key lives in redis; logout deletes the key.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

func (r *TokenRepository) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return r.client.Set(ctx, tokenKeyPrefix+jti, userID, ttl).Err()
}

func (r *TokenRepository) Exists(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, tokenKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, jti string) error {
	return r.client.Del(ctx, tokenKeyPrefix+jti).Err()
}
