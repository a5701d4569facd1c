package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"
)

// TokenKey is the fixed key the login flow persists the bearer token under.
const TokenKey = "session:token"

// Store keeps the dashboard session token in redis. It implements
// transport.CredentialProvider.
type Store struct {
	rdb *redis.Client
}

func Connect(ctx context.Context, addr, password string, db int) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Token returns the stored bearer token, or an empty string when none is
// stored or the stored JWT already expired.
func (s *Store) Token(ctx context.Context) (string, error) {
	val, err := s.rdb.Get(ctx, TokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("get session token: %w", err)
	}

	if expired(val, time.Now()) {
		return "", nil
	}

	return val, nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.rdb.Set(ctx, TokenKey, token, 0).Err()
}

func (s *Store) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, TokenKey).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// expired reports whether the token carries an exp claim in the past. The
// signature is not verified here; the backend still rejects forged tokens.
// Opaque non-JWT tokens pass through untouched.
func expired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Before(now)
}
