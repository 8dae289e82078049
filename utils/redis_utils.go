package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

var ctx = context.Background()

const (
	resetTokenPrefix = "pwreset__"

	// ResetTokenTTL is how long a password reset token stays valid after
	// issuance. Tokens are single use regardless of age.
	ResetTokenTTL = 24 * time.Hour
)

// ResetTokenStore keeps single-use password reset tokens in Redis. The TTL
// on the key is the expiry, consuming a token deletes the key atomically so
// two concurrent confirmations can never both succeed.
type ResetTokenStore struct {
	inner *redis.Client
}

func GetResetTokenStore() (*ResetTokenStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &ResetTokenStore{inner: redisClient}, nil
}

// NewResetTokenStoreWithClient is for tests that bring their own client.
func NewResetTokenStoreWithClient(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{inner: client}
}

func resetTokenKey(token string) string {
	return resetTokenPrefix + token
}

// Save associates the token with the given user id for ResetTokenTTL.
func (s *ResetTokenStore) Save(token string, userId string) error {
	return s.inner.Set(ctx, resetTokenKey(token), userId, ResetTokenTTL).Err()
}

// Consume resolves the token to the user id it was issued for and burns it.
// Unknown or expired tokens return model.ErrNotFound.
func (s *ResetTokenStore) Consume(token string) (string, error) {
	userId, err := s.inner.GetDel(ctx, resetTokenKey(token)).Result()
	if err == redis.Nil {
		return "", errors.Wrap(model.ErrNotFound, "invalid or expired reset token")
	}
	if err != nil {
		return "", err
	}
	return userId, nil
}
