package querycache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/titanlift/internal/metrics"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(step time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(step)
	clock.mu.Unlock()
}

func newTestCache(t *testing.T, opts Options) *Cache {
	t.Helper()
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewTestManager()
	}
	cache := New(NewMemoryStore(1), opts)
	t.Cleanup(cache.Close)
	return cache
}

func budget(t *testing.T, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

func staticFetch(calls *atomic.Int32, payload string) FetchFunc {
	return func(context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte(payload), nil
	}
}

func TestGetReturnsSuccessAndCachesEntry(t *testing.T) {
	cache := newTestCache(t, Options{StaleAfter: time.Minute})
	var calls atomic.Int32
	key := NewKey("leaderboard")

	first := cache.Get(context.Background(), key, staticFetch(&calls, `[1,2,3]`))
	require.Equal(t, StatusSuccess, first.Status)
	assert.JSONEq(t, `[1,2,3]`, string(first.Data))

	second := cache.Get(context.Background(), key, staticFetch(&calls, `[9]`))
	require.Equal(t, StatusSuccess, second.Status)
	assert.JSONEq(t, `[1,2,3]`, string(second.Data))
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetDeduplicatesConcurrentFetches(t *testing.T) {
	manager := metrics.NewTestManager()
	cache := newTestCache(t, Options{Metrics: manager})
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte(`{"username":"titan"}`), nil
	}
	key := NewKey("profile", "u1")

	assert.Equal(t, StatusLoading, cache.Get(budget(t, 20*time.Millisecond), key, fetch).Status)
	assert.Equal(t, StatusLoading, cache.Get(budget(t, 20*time.Millisecond), key, fetch).Status)

	close(release)
	require.Eventually(t, func() bool {
		return cache.Get(budget(t, 20*time.Millisecond), key, fetch).Status == StatusSuccess
	}, time.Second, 5*time.Millisecond)

	assert.EqualValues(t, 1, calls.Load())
	assert.GreaterOrEqual(t, testutil.ToFloat64(manager.CounterCacheDedup), 1.0)
}

func TestLoadingFetchFillsCacheInBackground(t *testing.T) {
	cache := newTestCache(t, Options{})
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		<-release
		return []byte(`{"calories_in":1200}`), nil
	}
	key := NewKey("nutrition", "u1")

	result := cache.Get(budget(t, 10*time.Millisecond), key, fetch)
	require.Equal(t, StatusLoading, result.Status)

	close(release)
	require.Eventually(t, func() bool {
		_, err := cache.store.Get(context.Background(), key.String())
		return err == nil
	}, time.Second, 5*time.Millisecond)

	cached := cache.Get(budget(t, 10*time.Millisecond), key, fetch)
	require.Equal(t, StatusSuccess, cached.Status)
	assert.JSONEq(t, `{"calories_in":1200}`, string(cached.Data))
}

func TestFailedFetchReportsErrorOnceThenRefetches(t *testing.T) {
	cache := newTestCache(t, Options{})
	boom := errors.New("boom")
	var calls atomic.Int32
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		return nil, boom
	}
	key := NewKey("stats", "u1")

	first := cache.Get(context.Background(), key, fetch)
	require.Equal(t, StatusError, first.Status)
	assert.ErrorIs(t, first.Err, boom)

	second := cache.Get(context.Background(), key, fetch)
	require.Equal(t, StatusError, second.Status)
	assert.EqualValues(t, 2, calls.Load())
}

func TestBackgroundFailureIsSurfacedToNextLookup(t *testing.T) {
	cache := newTestCache(t, Options{})
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(context.Context) ([]byte, error) {
		if calls.Add(1) == 1 {
			<-release
		}
		return nil, errors.New("backend down")
	}
	key := NewKey("weight", "u1")

	require.Equal(t, StatusLoading, cache.Get(budget(t, 10*time.Millisecond), key, fetch).Status)
	close(release)

	require.Eventually(t, func() bool {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		return cache.failures[key.String()] != nil
	}, time.Second, 5*time.Millisecond)

	result := cache.Get(budget(t, 10*time.Millisecond), key, fetch)
	assert.Equal(t, StatusError, result.Status)
	assert.EqualValues(t, 1, calls.Load())
}

func TestStaleEntryIsServedWhileRevalidating(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)}
	cache := newTestCache(t, Options{StaleAfter: time.Minute, Now: clock.Now})
	var version atomic.Int32
	fetch := func(context.Context) ([]byte, error) {
		if version.Add(1) == 1 {
			return []byte(`"v1"`), nil
		}
		return []byte(`"v2"`), nil
	}
	key := NewKey("history", "u1")

	require.Equal(t, `"v1"`, string(cache.Get(context.Background(), key, fetch).Data))

	clock.Advance(2 * time.Minute)
	stale := cache.Get(context.Background(), key, fetch)
	require.Equal(t, StatusSuccess, stale.Status)
	assert.Equal(t, `"v1"`, string(stale.Data))

	require.Eventually(t, func() bool {
		return string(cache.Get(context.Background(), key, fetch).Data) == `"v2"`
	}, time.Second, 5*time.Millisecond)
}

func TestInvalidateRefetchesWithRememberedFetcher(t *testing.T) {
	cache := newTestCache(t, Options{})
	var calls atomic.Int32
	fetch := func(context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte(`{"tdee":2400}`), nil
	}
	key := NewKey("stats", "u1")

	require.Equal(t, StatusSuccess, cache.Get(context.Background(), key, fetch).Status)
	require.NoError(t, cache.Invalidate(context.Background(), key))

	require.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestInvalidateDiscardsFetchStartedBeforeIt(t *testing.T) {
	cache := newTestCache(t, Options{StaleAfter: time.Minute})
	var tdee atomic.Int32
	tdee.Store(2000)
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		call := calls.Add(1)
		body := fmt.Sprintf(`{"tdee":%d}`, tdee.Load())
		if call == 1 {
			<-release
		}
		return []byte(body), nil
	}
	key := NewKey("stats", "u1")

	require.Equal(t, StatusLoading, cache.Get(budget(t, 20*time.Millisecond), key, fetch).Status)

	update := func(context.Context) error {
		tdee.Store(2600)
		return nil
	}
	require.NoError(t, cache.Mutate(context.Background(), update, key))
	require.Eventually(t, func() bool {
		result := cache.Get(budget(t, 20*time.Millisecond), key, fetch)
		return result.Status == StatusSuccess && string(result.Data) == `{"tdee":2600}`
	}, time.Second, 5*time.Millisecond)

	close(release)
	cache.Close()

	result := cache.Get(context.Background(), key, fetch)
	require.Equal(t, StatusSuccess, result.Status)
	assert.JSONEq(t, `{"tdee":2600}`, string(result.Data))
}

func TestInvalidateDiscardsFailureStartedBeforeIt(t *testing.T) {
	cache := newTestCache(t, Options{StaleAfter: time.Minute})
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]byte, error) {
		if calls.Add(1) == 1 {
			<-release
			return nil, errors.New("backend down")
		}
		return []byte(`{"calories_in":500}`), nil
	}
	key := NewKey("nutrition", "u1")

	require.Equal(t, StatusLoading, cache.Get(budget(t, 20*time.Millisecond), key, fetch).Status)
	require.NoError(t, cache.Invalidate(context.Background(), key))
	require.Eventually(t, func() bool {
		return cache.Get(budget(t, 20*time.Millisecond), key, fetch).Status == StatusSuccess
	}, time.Second, 5*time.Millisecond)

	close(release)
	cache.Close()

	result := cache.Get(context.Background(), key, fetch)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.JSONEq(t, `{"calories_in":500}`, string(result.Data))
}

func TestOversizedEntryIsServedAndCounted(t *testing.T) {
	manager := metrics.NewTestManager()
	cache := newTestCache(t, Options{Metrics: manager})
	var calls atomic.Int32
	payload := `"` + strings.Repeat("x", 4096) + `"`
	key := NewKey("history", "u1")

	first := cache.Get(context.Background(), key, staticFetch(&calls, payload))
	require.Equal(t, StatusSuccess, first.Status)
	assert.Equal(t, payload, string(first.Data))

	second := cache.Get(context.Background(), key, staticFetch(&calls, payload))
	require.Equal(t, StatusSuccess, second.Status)

	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 2.0, testutil.ToFloat64(manager.CounterCacheOversized.WithLabelValues("history")))
}

func TestMutateInvalidatesOnlyOnSuccess(t *testing.T) {
	cache := newTestCache(t, Options{})
	var calls atomic.Int32
	key := NewKey("nutrition", "u1")
	require.Equal(t, StatusSuccess, cache.Get(context.Background(), key, staticFetch(&calls, `{"calories_in":0}`)).Status)

	failure := errors.New("rejected")
	err := cache.Mutate(context.Background(), func(context.Context) error { return failure }, key)
	require.ErrorIs(t, err, failure)
	_, storeErr := cache.store.Get(context.Background(), key.String())
	assert.NoError(t, storeErr, "failed mutation must keep the cached entry")

	require.NoError(t, cache.Mutate(context.Background(), func(context.Context) error { return nil }, key))
	require.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestQueryDecodesTypedResult(t *testing.T) {
	cache := newTestCache(t, Options{})
	type payload struct {
		CaloriesIn float64 `json:"calories_in"`
	}

	result := Query(context.Background(), cache, NewKey("nutrition", "u2"), func(context.Context) (payload, error) {
		return payload{CaloriesIn: 1850}, nil
	})
	require.True(t, result.Ready())
	assert.Equal(t, 1850.0, result.Data.CaloriesIn)

	loading := Query(budget(t, time.Millisecond), cache, NewKey("nutrition", "u3"), func(ctx context.Context) (payload, error) {
		<-ctx.Done()
		return payload{}, ctx.Err()
	})
	assert.True(t, loading.Loading())
}

func TestCloseStopsBackgroundFetches(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cache := New(NewMemoryStore(1), Options{})
	result := cache.Get(budget(t, 5*time.Millisecond), NewKey("leaderboard"), func(ctx context.Context) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	require.Equal(t, StatusLoading, result.Status)

	cache.Close()
}

func TestKeyFormatting(t *testing.T) {
	key := NewKey("profile", "763b9c95")
	assert.Equal(t, "profile:763b9c95", key.String())
	assert.Equal(t, "profile", key.Name())
	assert.Equal(t, "", Key(nil).Name())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "success", StatusSuccess.String())
}
