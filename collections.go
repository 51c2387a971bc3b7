package loam

import (
	"context"
	"fmt"
	"time"

	domdoc "github.com/loamdb/loam-go/internal/domain/document"
)

// CollectionService manages collections in the remote store.
// Obtain it from Client.Collections().
type CollectionService struct {
	client *Client
}

// CreateOption customizes collection creation.
type CreateOption interface {
	applyCreate(*createConfig)
}

type createConfig struct {
	metadata Metadata
	embedder Embedder
}

type createOptionFunc func(*createConfig)

func (f createOptionFunc) applyCreate(c *createConfig) { f(c) }

// WithCollectionMetadata attaches metadata to the created collection.
func WithCollectionMetadata(m Metadata) CreateOption {
	return createOptionFunc(func(c *createConfig) {
		c.metadata = m
	})
}

// WithCollectionEmbedder overrides the client-level embedder for
// documents written through the returned handle.
func WithCollectionEmbedder(e Embedder) CreateOption {
	return createOptionFunc(func(c *createConfig) {
		c.embedder = e
	})
}

// Create creates a new collection. It fails if a collection with the
// same name already exists.
func (s *CollectionService) Create(ctx context.Context, name string, opts ...CreateOption) (*Collection, error) {
	return s.create(ctx, "collection_create", name, false, opts)
}

// Ensure returns the named collection, creating it if it does not
// exist yet.
func (s *CollectionService) Ensure(ctx context.Context, name string, opts ...CreateOption) (*Collection, error) {
	return s.create(ctx, "collection_ensure", name, true, opts)
}

func (s *CollectionService) create(
	ctx context.Context,
	op, name string,
	getOrCreate bool,
	opts []CreateOption,
) (col *Collection, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe(op, start, err) }()

	if err = s.client.await(ctx); err != nil {
		return nil, err
	}

	cfg := &createConfig{}
	for _, o := range opts {
		o.applyCreate(cfg)
	}

	meta, err := toInternalMetadata(cfg.metadata)
	if err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	inner, err := s.client.collSvc.Create(ctx, name, meta, getOrCreate)
	if err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	emb := s.client.embedder
	if cfg.embedder != nil {
		emb = embedderAdapter{inner: cfg.embedder}
	}
	return newCollection(s.client, inner, emb), nil
}

// Get returns a handle to an existing collection.
func (s *CollectionService) Get(ctx context.Context, name string) (col *Collection, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("collection_get", start, err) }()

	if err = s.client.await(ctx); err != nil {
		return nil, err
	}

	inner, err := s.client.collSvc.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", name, err)
	}
	return newCollection(s.client, inner, s.client.embedder), nil
}

// List returns info about every collection in the database.
func (s *CollectionService) List(ctx context.Context) (infos []CollectionInfo, err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("collection_list", start, err) }()

	if err = s.client.await(ctx); err != nil {
		return nil, err
	}

	cols, err := s.client.collSvc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	infos = make([]CollectionInfo, 0, len(cols))
	for _, c := range cols {
		infos = append(infos, fromInternalCollection(c))
	}
	return infos, nil
}

// Delete removes the named collection and all its documents.
func (s *CollectionService) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.client.obs.observe("collection_delete", start, err) }()

	if err = s.client.await(ctx); err != nil {
		return err
	}

	if err = s.client.collSvc.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection %q: %w", name, err)
	}
	return nil
}

func toInternalMetadata(m Metadata) (domdoc.Metadata, error) {
	if m == nil {
		return nil, nil
	}
	meta := domdoc.Metadata(m)
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return meta.Clone(), nil
}
