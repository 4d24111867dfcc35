package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/rhcore/rhcore-backend/internal/logger"
)

var ErrTokenNotFound = errors.New("refresh token not found")

const refreshKeyPrefix = "refresh:"

// TokenStore holds refresh tokens with a TTL so sessions expire server-side
// even if the client never logs out.
type TokenStore interface {
	SaveRefresh(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	GetRefresh(ctx context.Context, token string) (uuid.UUID, error)
	DeleteRefresh(ctx context.Context, token string) error
	Close() error
}

type tokenStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewTokenStore(log *logger.Logger, addr string) (TokenStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &tokenStore{log: log.With("client", "RedisTokenStore"), rdb: rdb}, nil
}

func (s *tokenStore) SaveRefresh(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+token, userID.String(), ttl).Err()
}

func (s *tokenStore) GetRefresh(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt refresh entry: %w", err)
	}
	return id, nil
}

func (s *tokenStore) DeleteRefresh(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}

func (s *tokenStore) Close() error {
	return s.rdb.Close()
}
