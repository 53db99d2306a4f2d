package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"spendview/internal/core"
)

// fakeReader counts fetches and serves a programmable result.
type fakeReader struct {
	mu      sync.Mutex
	fetches int
	rows    core.RowSet
	err     error
}

func (f *fakeReader) ReadWorksheet(_ context.Context, _ core.SheetRef) (core.RowSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return core.RowSet{}, f.err
	}
	return f.rows, nil
}

func (f *fakeReader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeReader) set(rows core.RowSet, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows, f.err = rows, err
}

func rows(amounts ...string) core.RowSet {
	rs := core.RowSet{Header: []string{"date", "amount", "category"}}
	for i, a := range amounts {
		rs.Records = append(rs.Records, core.Record{
			"date":     fmt.Sprintf("2024-01-%02d", i+1),
			"amount":   a,
			"category": "Food",
		})
	}
	return rs
}

// testClock lets tests step through the freshness window.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var testRef = core.SheetRef{SpreadsheetID: "abc123", Worksheet: "Expenses"}

const window = 300 * time.Second

func TestGetServesFreshEntryWithoutFetch(t *testing.T) {
	reader := &fakeReader{rows: rows("12.5")}
	clock := newTestClock()
	c := New(reader)
	c.now = clock.now

	first, hit, err := c.Get(context.Background(), testRef, window)
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if hit {
		t.Error("first Get should not be a cache hit")
	}

	clock.advance(100 * time.Second)
	second, hit, err := c.Get(context.Background(), testRef, window)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if !hit {
		t.Error("second Get inside the window should be a cache hit")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cache hit must return identical data")
	}
	if got := reader.count(); got != 1 {
		t.Errorf("fetches = %d, want 1", got)
	}
}

func TestGetRefetchesAfterWindow(t *testing.T) {
	reader := &fakeReader{rows: rows("12.5")}
	clock := newTestClock()
	c := New(reader)
	c.now = clock.now

	if _, _, err := c.Get(context.Background(), testRef, window); err != nil {
		t.Fatal(err)
	}

	reader.set(rows("12.5", "7.00"), nil)
	clock.advance(400 * time.Second)

	updated, hit, err := c.Get(context.Background(), testRef, window)
	if err != nil {
		t.Fatalf("Get after window: %v", err)
	}
	if hit {
		t.Error("Get past the window must not be a hit")
	}
	if len(updated.Records) != 2 {
		t.Errorf("records = %d, want updated row set with 2", len(updated.Records))
	}
	if got := reader.count(); got != 2 {
		t.Errorf("fetches = %d, want exactly 2", got)
	}
}

func TestInvalidateForcesFetch(t *testing.T) {
	reader := &fakeReader{rows: rows("12.5")}
	c := New(reader)

	if _, _, err := c.Get(context.Background(), testRef, window); err != nil {
		t.Fatal(err)
	}
	c.Invalidate(testRef)

	_, hit, err := c.Get(context.Background(), testRef, window)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Get after Invalidate must fetch")
	}
	if got := reader.count(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestFailedRefreshPreservesEntry(t *testing.T) {
	reader := &fakeReader{rows: rows("12.5")}
	clock := newTestClock()
	c := New(reader)
	c.now = clock.now

	original, _, err := c.Get(context.Background(), testRef, window)
	if err != nil {
		t.Fatal(err)
	}
	age0, ok := c.Age(testRef)
	if !ok {
		t.Fatal("entry missing after successful Get")
	}

	reader.set(core.RowSet{}, fmt.Errorf("%w: backend error", core.ErrTransient))
	clock.advance(400 * time.Second)

	_, _, err = c.Get(context.Background(), testRef, window)
	if !errors.Is(err, core.ErrTransient) {
		t.Fatalf("error = %v, want ErrTransient", err)
	}

	// The stale entry survives with its original data and timestamp.
	age1, ok := c.Age(testRef)
	if !ok {
		t.Fatal("failed refresh must not remove the entry")
	}
	if age1-age0 != 400*time.Second {
		t.Errorf("entry timestamp changed: age went %v -> %v", age0, age1)
	}

	// Recovery: a later successful fetch replaces the entry.
	reader.set(rows("99.0"), nil)
	recovered, _, err := c.Get(context.Background(), testRef, window)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(original, recovered) {
		t.Error("recovered fetch should carry the new row set")
	}
}

func TestFailingFetchOnEmptyCacheCreatesNothing(t *testing.T) {
	reader := &fakeReader{err: fmt.Errorf("%w: not shared", core.ErrPermissionDenied)}
	c := New(reader)

	for i := 0; i < 2; i++ {
		_, _, err := c.Get(context.Background(), testRef, window)
		if !errors.Is(err, core.ErrPermissionDenied) {
			t.Fatalf("Get %d error = %v, want ErrPermissionDenied", i, err)
		}
		if c.Len() != 0 {
			t.Fatalf("Get %d created an entry on failure", i)
		}
	}

	reader.set(rows("1.00"), nil)
	if _, _, err := c.Get(context.Background(), testRef, window); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Error("successful fetch should create the entry")
	}
}

func TestGetValidatesArguments(t *testing.T) {
	c := New(&fakeReader{rows: rows("1.00")})

	if _, _, err := c.Get(context.Background(), core.SheetRef{Worksheet: "W"}, window); !errors.Is(err, core.ErrEmptySpreadsheetID) {
		t.Errorf("error = %v, want ErrEmptySpreadsheetID", err)
	}
	if _, _, err := c.Get(context.Background(), testRef, 0); !errors.Is(err, core.ErrInvalidWindow) {
		t.Errorf("error = %v, want ErrInvalidWindow", err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	reader := &fakeReader{rows: rows("1.00")}
	c := New(reader)

	other := core.SheetRef{SpreadsheetID: "abc123", Worksheet: "Income"}
	if _, _, err := c.Get(context.Background(), testRef, window); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Get(context.Background(), other, window); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	c.Invalidate(testRef)
	if c.Len() != 1 {
		t.Error("Invalidate removed more than its own key")
	}
	if _, ok := c.Age(other); !ok {
		t.Error("unrelated entry lost on Invalidate")
	}
}

func TestConcurrentMissesCollapse(t *testing.T) {
	reader := &fakeReader{rows: rows("1.00")}
	c := New(reader)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := c.Get(context.Background(), testRef, window); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	// Singleflight plus the fresh re-check keeps this well below 16.
	if got := reader.count(); got > 2 {
		t.Errorf("fetches = %d, want at most 2", got)
	}
}
