// Package directory caches user profiles for the lifetime of a session.
package directory

import (
	"context"
	"sync"

	"chatline/internal/profile/model"
	"chatline/pkg/errors"
	"chatline/pkg/logger"

	"github.com/google/uuid"
)

// ProfileFetcher loads a profile from the backend; a missing record is
// reported as an error with code NOT_FOUND.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Cache maps user ids to profile snapshots. Entries are filled on first
// lookup and never refreshed, so a profile edited after it was cached is
// shown stale until the session ends.
type Cache struct {
	fetcher ProfileFetcher
	logger  logger.Logger

	mu      sync.RWMutex
	entries map[uuid.UUID]*model.Profile
}

func NewCache(fetcher ProfileFetcher, logger logger.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		logger:  logger,
		entries: make(map[uuid.UUID]*model.Profile),
	}
}

// Resolve returns the cached profile for id, fetching it on a miss. A profile
// that does not exist resolves to (and is cached as) a placeholder. Backend
// failures are returned and nothing is cached.
func (c *Cache) Resolve(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	c.mu.RLock()
	p, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := c.fetcher.GetProfile(ctx, id)
	if err != nil {
		if !errors.IsNotFound(err) {
			c.logger.Error("failed to resolve user", "id", id, "err", err)
			return nil, err
		}
		p = model.Placeholder(id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// another lookup may have won the race; keep the first snapshot
	if existing, ok := c.entries[id]; ok {
		return existing, nil
	}
	c.entries[id] = p
	return p, nil
}

// Put seeds the cache, e.g. with the signed-in user's own profile.
func (c *Cache) Put(p *model.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p.ID] = p
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
