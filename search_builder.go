package loam

import (
	"context"
	"fmt"
)

// Hit is a typed search result.
type Hit[T any] struct {
	Item     T
	Distance float64
}

// SearchBuilder is a fluent builder for typed similarity queries.
type SearchBuilder[T any] struct {
	idx *TypedIndex[T]

	query    Query
	wheres   []Where
	whereDoc WhereDocument
	limit    int
}

// Query sets the text to search for. The configured embedder turns it
// into a vector.
func (b *SearchBuilder[T]) Query(text string) *SearchBuilder[T] {
	b.query = Text(text)
	return b
}

// Vector searches by a precomputed embedding instead of text.
func (b *SearchBuilder[T]) Vector(vector []float32) *SearchBuilder[T] {
	b.query = Vector(vector)
	return b
}

// Where adds a metadata filter condition. Multiple conditions are
// combined with $and.
func (b *SearchBuilder[T]) Where(w Where) *SearchBuilder[T] {
	b.wheres = append(b.wheres, w)
	return b
}

// WhereDocument filters by document contents.
func (b *SearchBuilder[T]) WhereDocument(w WhereDocument) *SearchBuilder[T] {
	b.whereDoc = w
	return b
}

// Limit sets the maximum number of results.
func (b *SearchBuilder[T]) Limit(n int) *SearchBuilder[T] {
	b.limit = n
	return b
}

// Do executes the search and returns typed results in ranked order.
func (b *SearchBuilder[T]) Do(ctx context.Context) ([]Hit[T], error) {
	col, err := b.idx.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	opts := []QueryOption{
		WithInclude(IncludeDocuments, IncludeMetadatas, IncludeDistances),
	}
	if b.limit > 0 {
		opts = append(opts, WithNResults(b.limit))
	}
	switch len(b.wheres) {
	case 0:
	case 1:
		opts = append(opts, WithWhere(b.wheres[0]))
	default:
		opts = append(opts, WithWhere(And(b.wheres...)))
	}
	if b.whereDoc != nil {
		opts = append(opts, WithWhereDocument(b.whereDoc))
	}

	res, err := col.Query(ctx, b.query, opts...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit[T], 0, len(res.Results))
	for _, r := range res.Results {
		item, ok := b.idx.meta.fromDocument(r.Document).(T)
		if !ok {
			continue
		}
		hits = append(hits, Hit[T]{Item: item, Distance: r.Distance})
	}
	return hits, nil
}
