package collection

import (
	"fmt"

	"github.com/loamdb/loam-go/internal/domain/document"
)

// Collection is an immutable collection value: caller-chosen name,
// server-assigned id, and optional metadata.
type Collection struct {
	id       string
	name     string
	metadata document.Metadata
}

// New validates and creates a Collection.
func New(id, name string, metadata document.Metadata) (Collection, error) {
	if name == "" {
		return Collection{}, fmt.Errorf("collection name is required")
	}
	if err := metadata.Validate(); err != nil {
		return Collection{}, err
	}
	return Collection{id: id, name: name, metadata: metadata.Clone()}, nil
}

// Reconstruct creates a Collection without validation (wire hydration).
func Reconstruct(id, name string, metadata document.Metadata) Collection {
	return Collection{id: id, name: name, metadata: metadata}
}

// ID returns the server-assigned collection id.
func (c Collection) ID() string { return c.id }

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// Metadata returns the collection metadata (nil when absent).
func (c Collection) Metadata() document.Metadata { return c.metadata }

// WithName returns a copy renamed to the given name.
func (c Collection) WithName(name string) Collection {
	return Collection{id: c.id, name: name, metadata: c.metadata}
}

// WithMetadata returns a copy carrying the given metadata.
func (c Collection) WithMetadata(md document.Metadata) Collection {
	return Collection{id: c.id, name: c.name, metadata: md.Clone()}
}
