package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// Redis is the externalized Store backend, for running more than one server
// instance against shared session state.
type Redis struct {
	c   *rdb.Client
	ttl time.Duration
}

func NewRedis(addr string, db int, ttl time.Duration) *Redis {
	return &Redis{
		c:   rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		ttl: ttl,
	}
}

func (r *Redis) Put(ctx context.Context, s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.c.Set(ctx, redisKeyPrefix+s.UserID, b, r.ttl).Err()
}

func (r *Redis) Get(ctx context.Context, userID string) (Session, bool, error) {
	b, err := r.c.Get(ctx, redisKeyPrefix+userID).Bytes()
	if err == rdb.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to read session: %v", err)
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, false, fmt.Errorf("failed to decode session: %v", err)
	}
	return s, true, nil
}

func (r *Redis) Delete(ctx context.Context, userID string) error {
	return r.c.Del(ctx, redisKeyPrefix+userID).Err()
}
