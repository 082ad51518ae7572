package sessions

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is the in-process Store backend.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, time.Minute)}
}

func (m *Memory) Put(ctx context.Context, s Session) error {
	m.c.SetDefault(s.UserID, s)
	return nil
}

func (m *Memory) Get(ctx context.Context, userID string) (Session, bool, error) {
	v, ok := m.c.Get(userID)
	if !ok {
		return Session{}, false, nil
	}
	return v.(Session), true, nil
}

func (m *Memory) Delete(ctx context.Context, userID string) error {
	m.c.Delete(userID)
	return nil
}
