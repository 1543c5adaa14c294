package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// Connection is a redis client that answered a ping when it was opened.
type Connection struct {
	*goredis.Client
}

func NewConnection(addr, password string, db int) (*Connection, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Connection{Client: client}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.Client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.Client.Ping(ctx).Err()
}

func (c *Connection) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
