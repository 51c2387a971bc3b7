// Package collection implements collection lifecycle bookkeeping.
package collection

import (
	"context"
	"fmt"

	domcol "github.com/loamdb/loam-go/internal/domain/collection"
	"github.com/loamdb/loam-go/internal/domain/document"
)

// Service executes collection operations against one wire API.
type Service struct {
	api API
}

// New creates a collection service.
func New(api API) *Service {
	return &Service{api: api}
}

// Create creates a collection. With getOrCreate the existing collection
// is returned instead of failing on a name conflict.
func (s *Service) Create(ctx context.Context, name string, metadata document.Metadata, getOrCreate bool) (domcol.Collection, error) {
	if _, err := domcol.New("", name, metadata); err != nil {
		return domcol.Collection{}, fmt.Errorf("create collection: %w", err)
	}
	col, err := s.api.CreateCollection(ctx, name, metadata, getOrCreate)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("create collection: %w", err)
	}
	return col, nil
}

// Get retrieves a collection by name.
func (s *Service) Get(ctx context.Context, name string) (domcol.Collection, error) {
	col, err := s.api.GetCollection(ctx, name)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

// List returns all collections.
func (s *Service) List(ctx context.Context) ([]domcol.Collection, error) {
	cols, err := s.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return cols, nil
}

// Delete removes a collection by name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.api.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

// Update renames a collection and/or replaces its metadata, returning
// the updated value. The input collection is never mutated.
func (s *Service) Update(ctx context.Context, col domcol.Collection, newName string, newMetadata document.Metadata) (domcol.Collection, error) {
	if newName == "" && newMetadata == nil {
		return col, nil
	}
	if err := newMetadata.Validate(); err != nil {
		return domcol.Collection{}, fmt.Errorf("update collection: %w", err)
	}
	if err := s.api.UpdateCollection(ctx, col.ID(), newName, newMetadata); err != nil {
		return domcol.Collection{}, fmt.Errorf("update collection: %w", err)
	}
	updated := col
	if newName != "" {
		updated = updated.WithName(newName)
	}
	if newMetadata != nil {
		updated = updated.WithMetadata(newMetadata)
	}
	return updated, nil
}
