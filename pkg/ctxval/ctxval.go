// Package ctxval carries request scoped values that inner layers write and
// outer layers (request logging) read after the handler returns.
package ctxval

import (
	"context"
	"sync"
)

type ctxKey struct{}

var bagKey = ctxKey{}

type bag struct {
	mu     sync.Mutex
	values map[any]any
}

// Wrap attaches a mutable bag to ctx. Wrapping twice is a no-op.
func Wrap(ctx context.Context) context.Context {
	if _, ok := getBag(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, bagKey, &bag{values: map[any]any{}})
}

// Set stores v under k. It does nothing when ctx was not wrapped.
func Set[K comparable, V any](ctx context.Context, k K, v V) {
	b, ok := getBag(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	b.values[k] = v
	b.mu.Unlock()
}

func Get[K comparable, V any](ctx context.Context, k K) (V, bool) {
	b, ok := getBag(ctx)
	if !ok {
		return *new(V), false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[k].(V)
	return v, ok
}

// Append adds vs to the slice stored under k.
func Append[K comparable, V any](ctx context.Context, k K, vs ...V) {
	b, ok := getBag(ctx)
	if !ok || len(vs) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, _ := b.values[k].([]V)
	b.values[k] = append(cur, vs...)
}

func getBag(ctx context.Context) (*bag, bool) {
	b, ok := ctx.Value(bagKey).(*bag)
	return b, ok
}
