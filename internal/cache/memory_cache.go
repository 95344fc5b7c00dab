package cache

import (
	"sync"
	"time"

	"github.com/bscolinos/finance-demov2/internal/marketdata"
)

// MemoryCache provides an in-memory TTL cache for quotes so that dashboard
// refreshes do not hammer the market-data provider
type MemoryCache struct {
	quotes   map[string]quoteEntry
	quoteMu  sync.RWMutex
	quoteTTL time.Duration
}

type quoteEntry struct {
	quote     *marketdata.Quote
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(quoteTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		quotes:   make(map[string]quoteEntry),
		quoteTTL: quoteTTL,
	}
}

// GetQuote retrieves a cached quote if fresh
func (c *MemoryCache) GetQuote(symbol string) (*marketdata.Quote, bool) {
	c.quoteMu.RLock()
	defer c.quoteMu.RUnlock()

	entry, exists := c.quotes[symbol]
	if !exists {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > c.quoteTTL {
		return nil, false
	}
	return entry.quote, true
}

// SetQuote caches a quote
func (c *MemoryCache) SetQuote(symbol string, quote *marketdata.Quote) {
	c.quoteMu.Lock()
	defer c.quoteMu.Unlock()

	c.quotes[symbol] = quoteEntry{
		quote:     quote,
		fetchedAt: time.Now(),
	}
}

// InvalidateQuote removes a quote from the cache
func (c *MemoryCache) InvalidateQuote(symbol string) {
	c.quoteMu.Lock()
	defer c.quoteMu.Unlock()

	delete(c.quotes, symbol)
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.quoteMu.Lock()
	c.quotes = make(map[string]quoteEntry)
	c.quoteMu.Unlock()
}
