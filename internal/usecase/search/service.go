// Package search normalizes single or batched similarity queries, fans
// them out as one wire request and fans the nested response back into
// per-query ranked result lists in original order.
package search

import (
	"context"
	"fmt"

	"github.com/loamdb/loam-go/internal/domain"
	"github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/query"
	"github.com/loamdb/loam-go/internal/domain/record"
	"github.com/loamdb/loam-go/internal/domain/search/request"
	"github.com/loamdb/loam-go/internal/domain/search/result"
	"github.com/loamdb/loam-go/internal/usecase/embedding"
)

// Params are the caller-supplied query options, passed through to the
// wire request verbatim.
type Params struct {
	NResults      int
	Where         map[string]any
	WhereDocument map[string]any
	Include       []string
}

// Service executes batched similarity queries.
type Service struct {
	api API
}

// New creates a search service.
func New(api API) *Service {
	return &Service{api: api}
}

// Query normalizes every input query, resolves missing embeddings with
// at most one capability invocation, issues exactly one similarity
// request, and reassembles the nested response into bundles aligned to
// input order. Bundle i always corresponds to queries[i].
func (s *Service) Query(
	ctx context.Context,
	collectionID string,
	emb domain.Embedder,
	queries []query.Query,
	p Params,
) ([]result.Bundle, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("at least one query is required")
	}

	docs := make([]document.Document, len(queries))
	for i, q := range queries {
		docs[i] = q.Normalize()
	}

	docs, err := embedding.Resolve(ctx, docs, emb)
	if err != nil {
		return nil, fmt.Errorf("resolve query embeddings: %w", err)
	}

	vectors := make([][]float32, len(docs))
	for i, d := range docs {
		vectors[i] = d.Embedding()
	}

	req, err := request.New(vectors, p.NResults, p.Where, p.WhereDocument, p.Include)
	if err != nil {
		return nil, fmt.Errorf("build similarity request: %w", err)
	}

	nested, err := s.api.Query(ctx, collectionID, &req)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	if len(nested.IDs) != len(queries) {
		return nil, fmt.Errorf("response has %d result rows for %d queries: %w",
			len(nested.IDs), len(queries), domain.ErrServer)
	}

	bundles := make([]result.Bundle, len(queries))
	for i := range queries {
		ranked, err := reassemble(nested, i)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		bundles[i] = result.NewBundle(docs[i], ranked)
	}
	return bundles, nil
}

// reassemble decodes the neighbor arrays at one query index and zips
// each document with its distance. A distances row shorter than the
// neighbor list falls back to zero, not an error.
func reassemble(n result.Nested, i int) ([]result.Ranked, error) {
	a := record.Arrays{IDs: n.IDs[i]}
	if i < len(n.Embeddings) {
		a.Embeddings = n.Embeddings[i]
	}
	if i < len(n.Contents) {
		a.Contents = n.Contents[i]
	}
	if i < len(n.Metadatas) {
		a.Metadatas = n.Metadatas[i]
	}

	docs, err := record.FromArrays(a)
	if err != nil {
		return nil, err
	}

	var distances []float64
	if i < len(n.Distances) {
		distances = n.Distances[i]
	}

	ranked := make([]result.Ranked, len(docs))
	for j, d := range docs {
		var dist float64
		if j < len(distances) {
			dist = distances[j]
		}
		ranked[j] = result.NewRanked(d, dist)
	}
	return ranked, nil
}
