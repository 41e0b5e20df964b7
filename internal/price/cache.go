package price

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

// QuoteCache stores price quotes for one freshness window. Writes only
// supersede an entry when the incoming quote was fetched later, so a slow
// response arriving after a fresher one never rolls the price back.
type QuoteCache struct {
	mu    sync.Mutex
	store *gocache.Cache
}

// NewQuoteCache creates a cache whose entries expire after ttl.
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached quote for a symbol, if still fresh.
func (c *QuoteCache) Get(symbol string) (entity.PriceQuote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, found := c.store.Get(symbol)
	if !found {
		return entity.PriceQuote{}, false
	}
	return v.(entity.PriceQuote), true
}

// Put stores a quote unless a newer one for the same symbol is already
// cached.
func (c *QuoteCache) Put(quote entity.PriceQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, found := c.store.Get(quote.Symbol); found {
		if existing.(entity.PriceQuote).FetchedAt.After(quote.FetchedAt) {
			return
		}
	}
	c.store.Set(quote.Symbol, quote, gocache.DefaultExpiration)
}

// Flush removes every cached quote. Used by tests and by the query CLI
// when a forced refresh is requested.
func (c *QuoteCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Flush()
}
