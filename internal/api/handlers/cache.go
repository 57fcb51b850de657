package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/DivaIsReal/catatduit/internal/ledger"
)

// snapshotCache keeps one ledger snapshot for a short TTL so concurrent
// dashboard widgets share a single Sheets read.
type snapshotCache struct {
	ledger ledger.Ledger
	ttl    time.Duration
	log    zerolog.Logger

	mu        sync.Mutex
	records   []ledger.Record
	fetchedAt time.Time
}

func newSnapshotCache(l ledger.Ledger, ttl time.Duration, log zerolog.Logger) *snapshotCache {
	return &snapshotCache{ledger: l, ttl: ttl, log: log}
}

// Records returns the cached snapshot, refreshing it when stale. A
// failed refresh is not cached.
func (c *snapshotCache) Records(ctx context.Context) ([]ledger.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.records != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.records, nil
	}

	c.log.Debug().Msg("Refreshing ledger snapshot")
	records, err := c.ledger.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	c.records = records
	c.fetchedAt = time.Now()
	return records, nil
}
