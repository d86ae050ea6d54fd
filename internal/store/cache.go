package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"equipment-ingest/internal/model"
)

// cachedStore memoizes client lookups in memory. Only hits are cached: a miss
// must reach the database again so a client inserted meanwhile is seen.
type cachedStore struct {
	Store
	clients *cache.Cache
}

// WithClientCache wraps s so that found client ids are kept for ttl.
// A ttl <= 0 returns s unchanged.
func WithClientCache(s Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return s
	}
	return &cachedStore{
		Store:   s,
		clients: cache.New(ttl, 2*ttl),
	}
}

func (c *cachedStore) FindClientByName(ctx context.Context, name string) (*uuid.UUID, error) {
	if cached, found := c.clients.Get(name); found {
		id := cached.(uuid.UUID)
		return &id, nil
	}

	id, err := c.Store.FindClientByName(ctx, name)
	if err != nil || id == nil {
		return id, err
	}
	c.clients.SetDefault(name, *id)
	return id, nil
}

func (c *cachedStore) InsertClient(ctx context.Context, client model.Client) (int64, error) {
	n, err := c.Store.InsertClient(ctx, client)
	if err == nil && n > 0 {
		c.clients.SetDefault(client.Name, client.ID)
	}
	return n, err
}
