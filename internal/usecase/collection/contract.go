package collection

import (
	"context"

	"github.com/loamdb/loam-go/internal/domain/collection"
	"github.com/loamdb/loam-go/internal/domain/document"
)

// API is the consumer interface for the collection endpoints (ISP).
type API interface {
	CreateCollection(ctx context.Context, name string, metadata document.Metadata, getOrCreate bool) (collection.Collection, error)
	GetCollection(ctx context.Context, name string) (collection.Collection, error)
	ListCollections(ctx context.Context) ([]collection.Collection, error)
	DeleteCollection(ctx context.Context, name string) error
	UpdateCollection(ctx context.Context, id, newName string, newMetadata document.Metadata) error
}
