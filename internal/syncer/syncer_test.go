package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"portaldocs/api/internal/store"
)

type fakeFetcher struct {
	fetchFn func(context.Context) ([]string, [][]string, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]string, [][]string, error) {
	if f.fetchFn != nil {
		return f.fetchFn(ctx)
	}
	return nil, nil, nil
}

type fakeIndexer struct {
	indexed atomic.Int32
}

func (f *fakeIndexer) IndexSnapshot(*store.Snapshot) {
	f.indexed.Add(1)
}

func TestSyncReplacesCache(t *testing.T) {
	fetcher := &fakeFetcher{fetchFn: func(context.Context) ([]string, [][]string, error) {
		return []string{"ID", "Status"}, [][]string{{"1", "Ativo"}}, nil
	}}
	cache := store.NewCache()
	indexer := &fakeIndexer{}
	s := New(fetcher, cache, indexer, time.Minute)

	snapshot, err := s.Sync(context.Background())
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(snapshot.Documents) != 1 {
		t.Fatalf("snapshot has %d documents, want 1", len(snapshot.Documents))
	}
	if cache.Current() != snapshot {
		t.Error("cache does not hold the synced snapshot")
	}
	if indexer.indexed.Load() != 1 {
		t.Errorf("indexer called %d times, want 1", indexer.indexed.Load())
	}
}

func TestSyncFetchErrorKeepsCache(t *testing.T) {
	calls := 0
	fetcher := &fakeFetcher{fetchFn: func(context.Context) ([]string, [][]string, error) {
		calls++
		if calls == 1 {
			return []string{"ID"}, [][]string{{"1"}}, nil
		}
		return nil, nil, errors.New("quota exceeded")
	}}
	cache := store.NewCache()
	s := New(fetcher, cache, nil, time.Minute)

	good, err := s.Sync(context.Background())
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	snapshot, err := s.Sync(context.Background())
	if err == nil {
		t.Fatal("expected fetch error to surface to on-demand caller")
	}
	if snapshot != good {
		t.Error("failed sync did not return last-known-good snapshot")
	}
	if cache.Current() != good {
		t.Error("failed sync mutated the cache")
	}
}

func TestSyncEmptyFetchKeepsCacheWithoutError(t *testing.T) {
	calls := 0
	fetcher := &fakeFetcher{fetchFn: func(context.Context) ([]string, [][]string, error) {
		calls++
		if calls == 1 {
			return []string{"ID"}, [][]string{{"1"}}, nil
		}
		return nil, nil, nil
	}}
	cache := store.NewCache()
	indexer := &fakeIndexer{}
	s := New(fetcher, cache, indexer, time.Minute)

	good, _ := s.Sync(context.Background())
	lastSync := good.LastSync

	snapshot, err := s.Sync(context.Background())
	if err != nil {
		t.Fatalf("empty fetch should not error: %v", err)
	}
	if snapshot != good || !snapshot.LastSync.Equal(lastSync) {
		t.Error("empty fetch replaced the cache generation")
	}
	if indexer.indexed.Load() != 1 {
		t.Errorf("indexer called %d times, want 1 (no reindex on empty fetch)", indexer.indexed.Load())
	}
}

func TestConcurrentSyncsShareOneFetch(t *testing.T) {
	var fetches atomic.Int32
	release := make(chan struct{})
	fetcher := &fakeFetcher{fetchFn: func(context.Context) ([]string, [][]string, error) {
		fetches.Add(1)
		<-release
		return []string{"ID"}, [][]string{{"1"}}, nil
	}}
	s := New(fetcher, store.NewCache(), nil, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Sync(context.Background()); err != nil {
				t.Errorf("sync failed: %v", err)
			}
		}()
	}

	// let the goroutines pile onto the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := fetches.Load(); n != 1 {
		t.Errorf("%d fetches ran, want 1 coalesced fetch", n)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	fetcher := &fakeFetcher{fetchFn: func(context.Context) ([]string, [][]string, error) {
		return []string{"ID"}, [][]string{{"1"}}, nil
	}}
	s := New(fetcher, store.NewCache(), nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
