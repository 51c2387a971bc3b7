package loam

import (
	"context"
	"fmt"
	"sync"
)

// TypedIndex is a generic, schema-first view of a collection. The
// mapping between T and documents is inferred from T's struct tags at
// construction time and cached.
type TypedIndex[T any] struct {
	name   string
	client *Client
	meta   *schemaMeta

	mu     sync.Mutex
	handle *Collection
}

// NewIndex creates a typed index handle for the given collection name.
// T must be a struct with loam tags. The collection itself is created
// lazily on first use.
func NewIndex[T any](client *Client, name string) (*TypedIndex[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, fmt.Errorf("new index %q: %w", name, err)
	}
	return &TypedIndex[T]{name: name, client: client, meta: meta}, nil
}

// collection returns the underlying handle, ensuring the collection
// exists on first call.
func (idx *TypedIndex[T]) collection(ctx context.Context) (*Collection, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.handle != nil {
		return idx.handle, nil
	}
	col, err := idx.client.Collections().Ensure(ctx, idx.name)
	if err != nil {
		return nil, err
	}
	idx.handle = col
	return col, nil
}

// Ensure creates the collection if it does not exist (idempotent).
func (idx *TypedIndex[T]) Ensure(ctx context.Context) error {
	if _, err := idx.collection(ctx); err != nil {
		return fmt.Errorf("ensure %q: %w", idx.name, err)
	}
	return nil
}

// Upsert creates or updates a single item.
func (idx *TypedIndex[T]) Upsert(ctx context.Context, item T) error {
	return idx.UpsertBatch(ctx, []T{item})
}

// UpsertBatch creates or updates items in batch.
func (idx *TypedIndex[T]) UpsertBatch(ctx context.Context, items []T) error {
	col, err := idx.collection(ctx)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	docs := make([]Document, len(items))
	for i, item := range items {
		docs[i] = idx.meta.toDocument(item)
	}
	return col.Upsert(ctx, docs...)
}

// Get retrieves a typed item by id.
func (idx *TypedIndex[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	col, err := idx.collection(ctx)
	if err != nil {
		return zero, fmt.Errorf("get: %w", err)
	}
	docs, err := col.Get(ctx, WithIDs(id))
	if err != nil {
		return zero, fmt.Errorf("get: %w", err)
	}
	if len(docs) == 0 {
		return zero, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	item, ok := idx.meta.fromDocument(docs[0]).(T)
	if !ok {
		return zero, fmt.Errorf("get: type assertion failed")
	}
	return item, nil
}

// Delete removes an item by id.
func (idx *TypedIndex[T]) Delete(ctx context.Context, id string) error {
	col, err := idx.collection(ctx)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return col.Delete(ctx, WithIDs(id))
}

// Count returns the number of items in the collection.
func (idx *TypedIndex[T]) Count(ctx context.Context) (int, error) {
	col, err := idx.collection(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return col.Count(ctx)
}

// Search returns a fluent search builder for this index.
func (idx *TypedIndex[T]) Search() *SearchBuilder[T] {
	return &SearchBuilder[T]{idx: idx}
}
