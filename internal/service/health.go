package service

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

var (
	ErrDatabaseUnhealthy = errors.New("database is unhealthy")
	ErrRedisUnhealthy    = errors.New("redis is unhealthy")
	ErrNATSUnhealthy     = errors.New("nats is unhealthy")
)

type Health struct {
	DB    *bun.DB
	Redis *redis.Client
	NATS  *nats.Conn
}

func NewHealth(db *bun.DB, client *redis.Client, nc *nats.Conn) *Health {
	return &Health{
		DB:    db,
		Redis: client,
		NATS:  nc,
	}
}

func (s *Health) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		return errors.Wrap(ErrDatabaseUnhealthy, err.Error())
	}

	if err := s.Redis.Ping(ctx).Err(); err != nil {
		return errors.Wrap(ErrRedisUnhealthy, err.Error())
	}

	if status := s.NATS.Status(); status != nats.CONNECTED {
		return errors.Wrapf(ErrNATSUnhealthy, "nats connection status is %s", status)
	}

	return nil
}
