package loam

import (
	"context"
	"fmt"
	"time"

	"github.com/loamdb/loam-go/internal/domain"
	domcol "github.com/loamdb/loam-go/internal/domain/collection"
	"github.com/loamdb/loam-go/internal/domain/query"
	documentuc "github.com/loamdb/loam-go/internal/usecase/document"
	searchuc "github.com/loamdb/loam-go/internal/usecase/search"
)

// Collection is a handle to one collection in the store. Handles are
// immutable: Modify returns a new handle and leaves the receiver
// unchanged, so a handle can be shared across goroutines freely.
type Collection struct {
	client   *Client
	inner    domcol.Collection
	embedder domain.Embedder
}

func newCollection(client *Client, inner domcol.Collection, emb domain.Embedder) *Collection {
	return &Collection{client: client, inner: inner, embedder: emb}
}

// ID returns the collection id.
func (c *Collection) ID() string { return c.inner.ID() }

// Name returns the collection name.
func (c *Collection) Name() string { return c.inner.Name() }

// Metadata returns the collection metadata as known to this handle.
func (c *Collection) Metadata() Metadata { return Metadata(c.inner.Metadata()) }

// Add inserts documents. Missing embeddings are filled from contents
// via the embedder; the whole batch is rejected when any id repeats.
func (c *Collection) Add(ctx context.Context, docs ...Document) (err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("document_add", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return err
	}

	internal, err := toInternalDocuments(docs)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if err = c.client.docSvc.Add(ctx, c.inner.ID(), c.embedder, internal); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// Upsert inserts documents, replacing any whose id already exists.
func (c *Collection) Upsert(ctx context.Context, docs ...Document) (err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("document_upsert", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return err
	}

	internal, err := toInternalDocuments(docs)
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	if err = c.client.docSvc.Upsert(ctx, c.inner.ID(), c.embedder, internal); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Update patches existing documents. Absent fields keep their stored
// values; documents carrying contents but no embedding are re-embedded.
func (c *Collection) Update(ctx context.Context, docs ...Document) (err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("document_update", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return err
	}

	internal, err := toInternalDocuments(docs)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err = c.client.docSvc.Update(ctx, c.inner.ID(), c.embedder, internal); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// Get reads documents matching the given options.
func (c *Collection) Get(ctx context.Context, opts ...GetOption) (docs []Document, err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("document_get", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return nil, err
	}

	cfg := &getConfig{}
	for _, o := range opts {
		o.applyGet(cfg)
	}

	internal, err := c.client.docSvc.Get(ctx, c.inner.ID(), documentuc.GetQuery{
		IDs:           cfg.ids,
		Where:         cfg.where,
		WhereDocument: cfg.whereDocument,
		Limit:         cfg.limit,
		Offset:        cfg.offset,
		Include:       includeStrings(cfg.include),
	})
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return fromInternalDocuments(internal), nil
}

// Delete removes documents matching the given options.
func (c *Collection) Delete(ctx context.Context, opts ...DeleteOption) (err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("document_delete", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return err
	}

	cfg := &deleteConfig{}
	for _, o := range opts {
		o.applyDelete(cfg)
	}

	if err = c.client.docSvc.Delete(ctx, c.inner.ID(), documentuc.DeleteQuery{
		IDs:           cfg.ids,
		Where:         cfg.where,
		WhereDocument: cfg.whereDocument,
	}); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (c *Collection) Count(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("document_count", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return 0, err
	}

	n, err = c.client.docSvc.Count(ctx, c.inner.ID())
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Query runs one similarity query and returns its ranked results.
func (c *Collection) Query(ctx context.Context, q Query, opts ...QueryOption) (QueryResult, error) {
	results, err := c.QueryBatch(ctx, []Query{q}, opts...)
	if err != nil {
		return QueryResult{}, err
	}
	return results[0], nil
}

// QueryBatch runs several similarity queries in a single round trip.
// Results come back in the order the queries were given.
func (c *Collection) QueryBatch(ctx context.Context, queries []Query, opts ...QueryOption) (results []QueryResult, err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("document_query", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return nil, err
	}

	cfg := &queryConfig{}
	for _, o := range opts {
		o.applyQuery(cfg)
	}

	internal := make([]query.Query, len(queries))
	for i, q := range queries {
		internal[i] = q.toInternal()
	}

	bundles, err := c.client.searchSvc.Query(ctx, c.inner.ID(), c.embedder, internal, searchuc.Params{
		NResults:      cfg.nResults,
		Where:         cfg.where,
		WhereDocument: cfg.whereDocument,
		Include:       includeStrings(cfg.include),
	})
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	results = make([]QueryResult, len(bundles))
	for i, b := range bundles {
		results[i] = fromBundle(b)
	}
	return results, nil
}

// Modify renames the collection or replaces its metadata on the server
// and returns a new handle reflecting the change. The receiver keeps
// its old view.
func (c *Collection) Modify(ctx context.Context, opts ...ModifyOption) (col *Collection, err error) {
	start := time.Now()
	defer func() { c.client.obs.observe("collection_modify", start, err) }()

	if err = c.client.await(ctx); err != nil {
		return nil, err
	}

	cfg := &modifyConfig{}
	for _, o := range opts {
		o.applyModify(cfg)
	}

	meta, err := toInternalMetadata(cfg.newMetadata)
	if err != nil {
		return nil, fmt.Errorf("modify collection %q: %w", c.inner.Name(), err)
	}

	inner, err := c.client.collSvc.Update(ctx, c.inner, cfg.newName, meta)
	if err != nil {
		return nil, fmt.Errorf("modify collection %q: %w", c.inner.Name(), err)
	}
	return newCollection(c.client, inner, c.embedder), nil
}
