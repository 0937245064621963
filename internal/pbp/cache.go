package pbp

import (
	"context"
	"sync"

	"gridcut/internal/games"
)

// Cache holds parsed play maps for the life of the process, keyed by game
// and dialect. Each entry is populated at most once and read many times, so
// a single mutex around the map is all the discipline required. The cache
// is passed explicitly into the call chain rather than living in package
// state.
type Cache struct {
	source Source

	mu    sync.Mutex
	plays map[cacheKey]*PlayMap
}

type cacheKey struct {
	eid     string
	dialect Dialect
}

// NewCache builds a cache that parses feeds obtained from source.
func NewCache(source Source) *Cache {
	return &Cache{source: source, plays: make(map[cacheKey]*PlayMap)}
}

// Plays returns the ordered play map for the game, parsing the feed on
// first use. Entries for final games are retained; in-progress games are
// re-parsed on every call since their feeds still grow.
func (c *Cache) Plays(ctx context.Context, game games.Game, dialect Dialect) (*PlayMap, error) {
	key := cacheKey{eid: game.EID, dialect: dialect}

	if game.Final {
		c.mu.Lock()
		cached, ok := c.plays[key]
		c.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	raw, err := c.source.Feed(ctx, game)
	if err != nil {
		return nil, err
	}
	plays, err := Parse(raw, dialect)
	if err != nil {
		return nil, err
	}

	if game.Final {
		c.mu.Lock()
		c.plays[key] = plays
		c.mu.Unlock()
	}
	return plays, nil
}
