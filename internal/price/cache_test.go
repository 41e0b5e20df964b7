package price

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

func quoteAt(symbol, price string, fetchedAt time.Time) entity.PriceQuote {
	return entity.PriceQuote{
		Symbol:    symbol,
		PriceUSD:  decimal.RequireFromString(price),
		FetchedAt: fetchedAt,
		Source:    "test",
	}
}

func TestQuoteCache_PutGet(t *testing.T) {
	cache := NewQuoteCache(time.Minute)
	cache.Put(quoteAt("SOL", "150", time.Now()))

	got, ok := cache.Get("SOL")
	require.True(t, ok)
	assert.True(t, got.PriceUSD.Equal(decimal.RequireFromString("150")))

	_, ok = cache.Get("ETH")
	assert.False(t, ok)
}

func TestQuoteCache_Expires(t *testing.T) {
	cache := NewQuoteCache(10 * time.Millisecond)
	cache.Put(quoteAt("SOL", "150", time.Now()))

	time.Sleep(25 * time.Millisecond)

	_, ok := cache.Get("SOL")
	assert.False(t, ok)
}

func TestQuoteCache_NewerQuoteSupersedes(t *testing.T) {
	cache := NewQuoteCache(time.Minute)
	now := time.Now()

	cache.Put(quoteAt("SOL", "150", now))
	cache.Put(quoteAt("SOL", "151", now.Add(time.Second)))

	got, ok := cache.Get("SOL")
	require.True(t, ok)
	assert.True(t, got.PriceUSD.Equal(decimal.RequireFromString("151")))
}

func TestQuoteCache_StaleQuoteNeverRollsBack(t *testing.T) {
	cache := NewQuoteCache(time.Minute)
	now := time.Now()

	cache.Put(quoteAt("SOL", "151", now))
	// A slow response fetched earlier arrives after the fresher one.
	cache.Put(quoteAt("SOL", "150", now.Add(-time.Second)))

	got, ok := cache.Get("SOL")
	require.True(t, ok)
	assert.True(t, got.PriceUSD.Equal(decimal.RequireFromString("151")))
}
