// Package cache implements the time-bounded worksheet cache that sits between
// the HTTP layer and the Sheets adapter.
//
// Entries are keyed by (spreadsheet ID, worksheet name) and stay valid for the
// freshness window the caller passes to Get. There is no size bound and no
// background eviction: staleness is purely time-based, and entries live until
// the process exits or Invalidate removes them.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"spendview/internal/core"
	"spendview/internal/log"
	"spendview/internal/sheets"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	rows      core.RowSet
	fetchedAt time.Time
}

// SheetCache caches worksheet fetches. A failed refresh never touches an
// existing entry: the old data and timestamp survive, the error is returned,
// and the next Get past the window will try again.
type SheetCache struct {
	mu      sync.Mutex
	entries map[string]entry
	reader  sheets.WorksheetReader
	group   singleflight.Group

	// now is swapped in tests to step through freshness windows.
	now func() time.Time
}

func New(reader sheets.WorksheetReader) *SheetCache {
	return &SheetCache{
		entries: make(map[string]entry),
		reader:  reader,
		now:     time.Now,
	}
}

// Get returns the cached row set for ref when its entry is younger than
// window, and fetches otherwise. The second return value reports a cache hit.
// Concurrent misses for the same key collapse into a single fetch.
func (c *SheetCache) Get(ctx context.Context, ref core.SheetRef, window time.Duration) (core.RowSet, bool, error) {
	if err := (core.FetchConfig{Ref: ref, Window: window}).Validate(); err != nil {
		return core.RowSet{}, false, err
	}

	key := ref.Key()
	if rows, ok := c.fresh(key, window); ok {
		return rows, true, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		// A waiter that queued behind a fetch may find a fresh entry now.
		if rows, ok := c.fresh(key, window); ok {
			return rows, nil
		}

		start := c.now()
		rows, err := c.reader.ReadWorksheet(ctx, ref)
		if err != nil {
			// Prior entry (data and timestamp) stays untouched.
			slog.WarnContext(ctx, "Worksheet fetch failed",
				log.FieldSpreadsheet, ref.SpreadsheetID, log.FieldWorksheet, ref.Worksheet, log.FieldError, err)
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{rows: rows, fetchedAt: c.now()}
		c.mu.Unlock()

		slog.InfoContext(ctx, "Worksheet fetched",
			log.FieldSpreadsheet, ref.SpreadsheetID, log.FieldWorksheet, ref.Worksheet,
			log.FieldRowCount, len(rows.Records), log.FieldDuration, c.now().Sub(start).Milliseconds())
		return rows, nil
	})
	if err != nil {
		return core.RowSet{}, false, err
	}
	return v.(core.RowSet), shared, nil
}

// fresh returns the entry for key if it is still inside the window.
func (c *SheetCache) fresh(key string, window time.Duration) (core.RowSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return core.RowSet{}, false
	}
	if c.now().Sub(e.fetchedAt) >= window {
		return core.RowSet{}, false
	}
	return e.rows, true
}

// Invalidate removes any entry for ref, forcing the next Get to fetch
// regardless of age. This backs the dashboard's Refresh action.
func (c *SheetCache) Invalidate(ref core.SheetRef) {
	key := ref.Key()

	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()

	// Drop any in-flight fetch association so a Get right after Invalidate
	// starts its own fetch instead of adopting an older one.
	c.group.Forget(key)

	if existed {
		slog.Debug("Cache entry invalidated", "key", key)
	}
}

// Age returns how old the entry for ref is, if one exists.
func (c *SheetCache) Age(ref core.SheetRef) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ref.Key()]
	if !ok {
		return 0, false
	}
	return c.now().Sub(e.fetchedAt), true
}

// Len returns the number of cached worksheets.
func (c *SheetCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
