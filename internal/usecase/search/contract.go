package search

import (
	"context"

	"github.com/loamdb/loam-go/internal/domain/search/request"
	"github.com/loamdb/loam-go/internal/domain/search/result"
)

// API is the consumer interface for the similarity endpoint (ISP).
type API interface {
	Query(ctx context.Context, collectionID string, req *request.Request) (result.Nested, error)
}
