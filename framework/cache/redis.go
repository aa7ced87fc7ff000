// Package cache provides the Redis client as a lifecycle object: a proxy
// over *redis.Client that connects during Setup and closes on Teardown.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/km-arc/go-sugar/framework/config"
	"github.com/km-arc/go-sugar/framework/lifecycle"
)

// ID is the identity under which Redis is registered.
// Its injection name defaults to "redis".
const ID lifecycle.ID = "Redis"

// Settings keys:
//   - REDIS_ADDR     (default 127.0.0.1:6379)
//   - REDIS_DB       (default 0)
//   - REDIS_PASSWORD (default empty)
type Redis struct {
	*lifecycle.Proxy[*redis.Client]
	settings *config.Settings
}

// New creates a Redis object configured from settings.
func New(settings *config.Settings) *Redis {
	r := &Redis{settings: settings}
	r.Proxy = lifecycle.NewProxy(r.connect).
		TeardownWith(func(c *redis.Client) error { return c.Close() })
	return r
}

// Register adds Redis to a manager under ID, depending on Settings.
func Register(m *lifecycle.Manager) error {
	return m.Register(lifecycle.Registration{
		ID:           ID,
		Dependencies: []lifecycle.ID{config.ID},
		Construct: func(deps lifecycle.Deps) (lifecycle.Object, error) {
			settings, ok := deps["settings"].(*config.Settings)
			if !ok {
				return nil, fmt.Errorf("cache: settings dependency missing")
			}
			return New(settings), nil
		},
	})
}

// Client returns the connected client; zero value before Setup.
func (r *Redis) Client() *redis.Client { return r.Payload() }

func (r *Redis) connect() (*redis.Client, error) {
	addr := r.settings.Get("REDIS_ADDR", "127.0.0.1:6379")
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       r.settings.GetInt("REDIS_DB", 0),
		Password: r.settings.Get("REDIS_PASSWORD", ""),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping %s: %w", addr, err)
	}
	return client, nil
}
