// Package querycache deduplicates backend fetches and serves their results
// as loading, error or success states.
package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/terraincognita07/titanlift/internal/metrics"
	"golang.org/x/sync/singleflight"
)

type Options struct {
	StaleAfter time.Duration
	Retention  time.Duration
	Metrics    *metrics.Manager
	Now        func() time.Time
}

type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

type Cache struct {
	store      Store
	group      singleflight.Group
	staleAfter time.Duration
	retention  time.Duration
	metrics    *metrics.Manager
	now        func() time.Time

	mu          sync.Mutex
	fetchers    map[string]FetchFunc
	failures    map[string]error
	inflight    map[string]uint64
	generations map[string]uint64

	// writes orders a fetch's generation check and store write against the
	// generation bump and delete in Invalidate.
	writes sync.Mutex

	background context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

var _ QueryCache = (*Cache)(nil)

func New(store Store, opts Options) *Cache {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	background, cancel := context.WithCancel(context.Background())
	return &Cache{
		store:       store,
		staleAfter:  opts.StaleAfter,
		retention:   opts.Retention,
		metrics:     opts.Metrics,
		now:         opts.Now,
		fetchers:    make(map[string]FetchFunc),
		failures:    make(map[string]error),
		inflight:    make(map[string]uint64),
		generations: make(map[string]uint64),
		background:  background,
		cancel:      cancel,
	}
}

// Get serves a cached entry or waits for a fetch until ctx is done. Fetches run
// detached from ctx, so a Loading result still fills the cache later.
func (cache *Cache) Get(ctx context.Context, key Key, fetch FetchFunc) Result {
	id := key.String()
	cache.remember(id, fetch)

	if entry, ok := cache.lookup(ctx, id); ok {
		cache.takeFailure(id)
		if cache.staleAfter > 0 && cache.now().Sub(entry.FetchedAt) > cache.staleAfter {
			cache.count(key, "stale")
			cache.start(key, fetch)
		} else {
			cache.count(key, "hit")
		}
		return Result{Status: StatusSuccess, Data: entry.Data, UpdatedAt: entry.FetchedAt}
	}

	if err := cache.takeFailure(id); err != nil {
		cache.count(key, "error")
		return Result{Status: StatusError, Err: err}
	}

	cache.count(key, "miss")
	pending := cache.start(key, fetch)
	select {
	case outcome := <-pending:
		if outcome.Err != nil {
			cache.takeFailure(id)
			return Result{Status: StatusError, Err: outcome.Err}
		}
		entry := outcome.Val.(envelope)
		return Result{Status: StatusSuccess, Data: entry.Data, UpdatedAt: entry.FetchedAt}
	case <-ctx.Done():
		return Result{Status: StatusLoading}
	}
}

// Invalidate drops the entry and refetches it in the background with the
// fetcher last used for the key. Fetches started before the call can no
// longer write the entry.
func (cache *Cache) Invalidate(ctx context.Context, key Key) error {
	id := key.String()

	cache.writes.Lock()
	cache.mu.Lock()
	cache.generations[id]++
	delete(cache.failures, id)
	fetch := cache.fetchers[id]
	cache.mu.Unlock()
	err := cache.store.Delete(ctx, id)
	cache.writes.Unlock()

	if err != nil {
		return err
	}
	if fetch != nil {
		cache.start(key, fetch)
	}
	return nil
}

// Mutate runs fn and invalidates keys only when it succeeds.
func (cache *Cache) Mutate(ctx context.Context, fn func(context.Context) error, keys ...Key) error {
	if err := fn(ctx); err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		if err := cache.Invalidate(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close cancels in-flight fetches and waits for them to return.
func (cache *Cache) Close() {
	cache.cancel()
	cache.wg.Wait()
}

func (cache *Cache) start(key Key, fetch FetchFunc) <-chan singleflight.Result {
	id := key.String()

	cache.mu.Lock()
	generation := cache.generations[id]
	if running, ok := cache.inflight[id]; ok && running == generation {
		if cache.metrics != nil {
			cache.metrics.CounterCacheDedup.Inc()
		}
	} else {
		cache.inflight[id] = generation
	}
	cache.wg.Add(1)
	cache.mu.Unlock()

	flight := id + "@" + strconv.FormatUint(generation, 10)
	pending := make(chan singleflight.Result, 1)
	go func() {
		defer cache.wg.Done()
		value, err, shared := cache.group.Do(flight, func() (any, error) {
			defer cache.clearInflight(id, generation)
			return cache.load(key, fetch, generation)
		})
		pending <- singleflight.Result{Val: value, Err: err, Shared: shared}
	}()
	return pending
}

// load runs fetch and records its outcome unless the key was invalidated
// after generation was captured. Callers waiting on a superseded fetch still
// get its result.
func (cache *Cache) load(key Key, fetch FetchFunc, generation uint64) (any, error) {
	id := key.String()
	data, err := fetch(cache.background)
	if err == nil && !json.Valid(data) {
		err = errors.New("fetch returned invalid JSON")
	}
	if err != nil {
		log.Warnf("query %s failed: %v", id, err)
		if cache.metrics != nil {
			cache.metrics.CounterFetchErrors.WithLabelValues(key.Name()).Inc()
		}
		cache.mu.Lock()
		if cache.generations[id] == generation {
			cache.failures[id] = err
		}
		cache.mu.Unlock()
		return nil, err
	}

	entry := envelope{FetchedAt: cache.now(), Data: data}
	encoded, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("encode query %s: %v", id, err)
		return entry, nil
	}

	cache.writes.Lock()
	defer cache.writes.Unlock()
	if !cache.current(id, generation) {
		log.Debugf("query %s superseded by invalidation", id)
		return entry, nil
	}
	if err := cache.store.Set(cache.background, id, encoded, cache.retention); err != nil {
		log.Errorf("store query %s: %v", id, err)
		if errors.Is(err, ErrEntryTooLarge) && cache.metrics != nil {
			cache.metrics.CounterCacheOversized.WithLabelValues(key.Name()).Inc()
		}
	}
	return entry, nil
}

func (cache *Cache) current(id string, generation uint64) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.generations[id] == generation
}

func (cache *Cache) lookup(ctx context.Context, id string) (envelope, bool) {
	raw, err := cache.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Errorf("read query %s from store: %v", id, err)
		}
		return envelope{}, false
	}
	entry := envelope{}
	if err := json.Unmarshal(raw, &entry); err != nil {
		log.Errorf("decode query %s from store: %v", id, err)
		return envelope{}, false
	}
	return entry, true
}

func (cache *Cache) remember(id string, fetch FetchFunc) {
	cache.mu.Lock()
	cache.fetchers[id] = fetch
	cache.mu.Unlock()
}

func (cache *Cache) takeFailure(id string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	err := cache.failures[id]
	delete(cache.failures, id)
	return err
}

func (cache *Cache) clearInflight(id string, generation uint64) {
	cache.mu.Lock()
	if running, ok := cache.inflight[id]; ok && running == generation {
		delete(cache.inflight, id)
	}
	cache.mu.Unlock()
}

func (cache *Cache) count(key Key, outcome string) {
	if cache.metrics == nil {
		return
	}
	cache.metrics.CounterCacheLookups.WithLabelValues(key.Name(), outcome).Inc()
}
