package loam

import (
	"context"

	"github.com/loamdb/loam-go/internal/domain"
	domcol "github.com/loamdb/loam-go/internal/domain/collection"
	domdoc "github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/query"
	"github.com/loamdb/loam-go/internal/domain/search/result"
	documentuc "github.com/loamdb/loam-go/internal/usecase/document"
	searchuc "github.com/loamdb/loam-go/internal/usecase/search"
)

// --- collectionUseCase mock ---

type mockCollectionUC struct {
	createFn func(ctx context.Context, name string, metadata domdoc.Metadata, getOrCreate bool) (domcol.Collection, error)
	getFn    func(ctx context.Context, name string) (domcol.Collection, error)
	listFn   func(ctx context.Context) ([]domcol.Collection, error)
	deleteFn func(ctx context.Context, name string) error
	updateFn func(ctx context.Context, col domcol.Collection, newName string, newMetadata domdoc.Metadata) (domcol.Collection, error)
}

func (m *mockCollectionUC) Create(ctx context.Context, name string, metadata domdoc.Metadata, getOrCreate bool) (domcol.Collection, error) {
	return m.createFn(ctx, name, metadata, getOrCreate)
}

func (m *mockCollectionUC) Get(ctx context.Context, name string) (domcol.Collection, error) {
	return m.getFn(ctx, name)
}

func (m *mockCollectionUC) List(ctx context.Context) ([]domcol.Collection, error) {
	return m.listFn(ctx)
}

func (m *mockCollectionUC) Delete(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

func (m *mockCollectionUC) Update(ctx context.Context, col domcol.Collection, newName string, newMetadata domdoc.Metadata) (domcol.Collection, error) {
	return m.updateFn(ctx, col, newName, newMetadata)
}

// --- documentUseCase mock ---

type mockDocumentUC struct {
	addFn    func(ctx context.Context, collectionID string, emb domain.Embedder, docs []domdoc.Document) error
	upsertFn func(ctx context.Context, collectionID string, emb domain.Embedder, docs []domdoc.Document) error
	updateFn func(ctx context.Context, collectionID string, emb domain.Embedder, docs []domdoc.Document) error
	getFn    func(ctx context.Context, collectionID string, q documentuc.GetQuery) ([]domdoc.Document, error)
	deleteFn func(ctx context.Context, collectionID string, q documentuc.DeleteQuery) error
	countFn  func(ctx context.Context, collectionID string) (int, error)
}

func (m *mockDocumentUC) Add(ctx context.Context, col string, emb domain.Embedder, docs []domdoc.Document) error {
	return m.addFn(ctx, col, emb, docs)
}

func (m *mockDocumentUC) Upsert(ctx context.Context, col string, emb domain.Embedder, docs []domdoc.Document) error {
	return m.upsertFn(ctx, col, emb, docs)
}

func (m *mockDocumentUC) Update(ctx context.Context, col string, emb domain.Embedder, docs []domdoc.Document) error {
	return m.updateFn(ctx, col, emb, docs)
}

func (m *mockDocumentUC) Get(ctx context.Context, col string, q documentuc.GetQuery) ([]domdoc.Document, error) {
	return m.getFn(ctx, col, q)
}

func (m *mockDocumentUC) Delete(ctx context.Context, col string, q documentuc.DeleteQuery) error {
	return m.deleteFn(ctx, col, q)
}

func (m *mockDocumentUC) Count(ctx context.Context, col string) (int, error) {
	return m.countFn(ctx, col)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	queryFn func(ctx context.Context, collectionID string, emb domain.Embedder, queries []query.Query, p searchuc.Params) ([]result.Bundle, error)
}

func (m *mockSearchUC) Query(ctx context.Context, col string, emb domain.Embedder, queries []query.Query, p searchuc.Params) ([]result.Bundle, error) {
	return m.queryFn(ctx, col, emb, queries, p)
}

func colValue(id, name string) domcol.Collection {
	return domcol.Reconstruct(id, name, nil)
}

// newReadyClient builds a client whose readiness check already passed,
// wired to the given mocks.
func newReadyClient(collSvc collectionUseCase, docSvc documentUseCase, searchSvc searchUseCase) *Client {
	c := &Client{
		collSvc:   collSvc,
		docSvc:    docSvc,
		searchSvc: searchSvc,
		embedder:  noopEmbedder{},
		obs:       &observer{},
	}
	c.ready = &readiness{state: stateReady}
	return c
}
