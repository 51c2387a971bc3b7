package document

import (
	"context"

	"github.com/loamdb/loam-go/internal/domain/record"
)

// GetQuery selects documents to read. All filter clauses are passed
// through to the wire verbatim.
type GetQuery struct {
	IDs           []string
	Where         map[string]any
	WhereDocument map[string]any
	Limit         int
	Offset        int
	Include       []string
}

// DeleteQuery selects documents to delete.
type DeleteQuery struct {
	IDs           []string
	Where         map[string]any
	WhereDocument map[string]any
}

// API is the consumer interface for the document endpoints (ISP).
type API interface {
	Add(ctx context.Context, collectionID string, a record.Arrays) error
	Upsert(ctx context.Context, collectionID string, a record.Arrays) error
	Update(ctx context.Context, collectionID string, a record.Arrays) error
	Get(ctx context.Context, collectionID string, q GetQuery) (record.Arrays, error)
	Delete(ctx context.Context, collectionID string, q DeleteQuery) error
	Count(ctx context.Context, collectionID string) (int, error)
}
