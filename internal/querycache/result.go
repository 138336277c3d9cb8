package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusSuccess
)

func (status Status) String() string {
	switch status {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "loading"
	}
}

// Key identifies a query. The first part names the query for metrics and logs.
type Key []string

func NewKey(parts ...string) Key {
	return Key(parts)
}

func (key Key) String() string {
	return strings.Join(key, ":")
}

func (key Key) Name() string {
	if len(key) == 0 {
		return ""
	}
	return key[0]
}

type Result struct {
	Status    Status
	Data      []byte
	Err       error
	UpdatedAt time.Time
}

type FetchFunc func(ctx context.Context) ([]byte, error)

// QueryCache is the capability pages depend on.
type QueryCache interface {
	Get(ctx context.Context, key Key, fetch FetchFunc) Result
	Invalidate(ctx context.Context, key Key) error
}

type TypedResult[T any] struct {
	Status    Status
	Data      T
	Err       error
	UpdatedAt time.Time
}

func (result TypedResult[T]) Loading() bool {
	return result.Status == StatusLoading
}

func (result TypedResult[T]) Ready() bool {
	return result.Status == StatusSuccess
}

// Query runs a typed fetch through the cache, round-tripping the value as JSON.
func Query[T any](ctx context.Context, cache QueryCache, key Key, fetch func(context.Context) (T, error)) TypedResult[T] {
	raw := cache.Get(ctx, key, func(fetchCtx context.Context) ([]byte, error) {
		value, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})

	typed := TypedResult[T]{Status: raw.Status, Err: raw.Err, UpdatedAt: raw.UpdatedAt}
	if raw.Status != StatusSuccess {
		return typed
	}
	if err := json.Unmarshal(raw.Data, &typed.Data); err != nil {
		typed.Status = StatusError
		typed.Err = fmt.Errorf("decode cached %s: %w", key.Name(), err)
	}
	return typed
}
