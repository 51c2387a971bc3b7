// Package document implements the write and read paths for documents:
// embedding resolution, record-to-array encoding and array-to-record
// decoding around the wire API.
package document

import (
	"context"
	"fmt"

	"github.com/loamdb/loam-go/internal/domain"
	dom "github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/record"
	"github.com/loamdb/loam-go/internal/usecase/embedding"
)

// Service executes document operations against one wire API.
type Service struct {
	api API
}

// New creates a document service.
func New(api API) *Service {
	return &Service{api: api}
}

// Add resolves missing embeddings, encodes the batch into parallel
// arrays and submits it. The batch is all-or-nothing: a duplicate id or
// an unresolvable document rejects the whole call before any write.
func (s *Service) Add(ctx context.Context, collectionID string, emb domain.Embedder, docs []dom.Document) error {
	a, err := s.encode(ctx, emb, docs)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if err := s.api.Add(ctx, collectionID, a); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// Upsert behaves like Add but overwrites existing ids server-side.
func (s *Service) Upsert(ctx context.Context, collectionID string, emb domain.Embedder, docs []dom.Document) error {
	a, err := s.encode(ctx, emb, docs)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	if err := s.api.Upsert(ctx, collectionID, a); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Update submits a partial update. Embeddings are recomputed only for
// documents whose contents changed without a caller-provided vector; a
// metadata-only document passes through untouched.
func (s *Service) Update(ctx context.Context, collectionID string, emb domain.Embedder, docs []dom.Document) error {
	resolved, err := embedding.ResolveKnown(ctx, docs, emb)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	a, err := record.ToArrays(resolved)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := s.api.Update(ctx, collectionID, a); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// Get reads documents matching the query and decodes the returned
// parallel arrays back into records.
func (s *Service) Get(ctx context.Context, collectionID string, q GetQuery) ([]dom.Document, error) {
	a, err := s.api.Get(ctx, collectionID, q)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	docs, err := record.FromArrays(a)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return docs, nil
}

// Delete removes documents matching the query.
func (s *Service) Delete(ctx context.Context, collectionID string, q DeleteQuery) error {
	if err := s.api.Delete(ctx, collectionID, q); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *Service) Count(ctx context.Context, collectionID string) (int, error) {
	n, err := s.api.Count(ctx, collectionID)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (s *Service) encode(ctx context.Context, emb domain.Embedder, docs []dom.Document) (record.Arrays, error) {
	resolved, err := embedding.Resolve(ctx, docs, emb)
	if err != nil {
		return record.Arrays{}, err
	}
	return record.ToArrays(resolved)
}
