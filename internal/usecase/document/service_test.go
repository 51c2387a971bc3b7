package document

import (
	"context"
	"errors"
	"testing"

	"github.com/loamdb/loam-go/internal/domain"
	dom "github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/record"
)

type mockAPI struct {
	addFn    func(ctx context.Context, collectionID string, a record.Arrays) error
	upsertFn func(ctx context.Context, collectionID string, a record.Arrays) error
	updateFn func(ctx context.Context, collectionID string, a record.Arrays) error
	getFn    func(ctx context.Context, collectionID string, q GetQuery) (record.Arrays, error)
	deleteFn func(ctx context.Context, collectionID string, q DeleteQuery) error
	countFn  func(ctx context.Context, collectionID string) (int, error)
}

func (m *mockAPI) Add(ctx context.Context, col string, a record.Arrays) error {
	return m.addFn(ctx, col, a)
}

func (m *mockAPI) Upsert(ctx context.Context, col string, a record.Arrays) error {
	return m.upsertFn(ctx, col, a)
}

func (m *mockAPI) Update(ctx context.Context, col string, a record.Arrays) error {
	return m.updateFn(ctx, col, a)
}

func (m *mockAPI) Get(ctx context.Context, col string, q GetQuery) (record.Arrays, error) {
	return m.getFn(ctx, col, q)
}

func (m *mockAPI) Delete(ctx context.Context, col string, q DeleteQuery) error {
	return m.deleteFn(ctx, col, q)
}

func (m *mockAPI) Count(ctx context.Context, col string) (int, error) {
	return m.countFn(ctx, col)
}

type staticEmbedder struct {
	vec []float32
}

func (e staticEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = e.vec
	}
	return out, nil
}

func TestAdd_EncodesBatch(t *testing.T) {
	var got record.Arrays
	api := &mockAPI{addFn: func(_ context.Context, col string, a record.Arrays) error {
		if col != "c1" {
			t.Errorf("collection = %q, want c1", col)
		}
		got = a
		return nil
	}}

	docs := []dom.Document{
		dom.Reconstruct("a", "alpha", nil, dom.Metadata{"k": "v"}),
		dom.Reconstruct("b", "", []float32{7}, nil),
	}

	err := New(api).Add(context.Background(), "c1", staticEmbedder{vec: []float32{1}}, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Len() != 2 {
		t.Fatalf("batch len = %d, want 2", got.Len())
	}
	if got.Embeddings[0] == nil {
		t.Error("missing embedding was not resolved before the write")
	}
	if got.Embeddings[1][0] != 7 {
		t.Error("caller-provided embedding was replaced")
	}
	if got.Contents[1] != nil {
		t.Error("absent contents must encode as nil")
	}
}

func TestAdd_RejectsDuplicates(t *testing.T) {
	api := &mockAPI{addFn: func(context.Context, string, record.Arrays) error {
		t.Fatal("write must not be issued for a rejected batch")
		return nil
	}}

	docs := []dom.Document{
		dom.Reconstruct("a", "one", []float32{1}, nil),
		dom.Reconstruct("a", "two", []float32{2}, nil),
	}

	err := New(api).Add(context.Background(), "c1", nil, docs)
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("errors.Is(err, ErrDuplicateID) = false, err = %v", err)
	}
}

func TestUpsert(t *testing.T) {
	called := false
	api := &mockAPI{upsertFn: func(_ context.Context, _ string, a record.Arrays) error {
		called = true
		if a.Len() != 1 {
			t.Errorf("batch len = %d, want 1", a.Len())
		}
		return nil
	}}

	docs := []dom.Document{dom.Reconstruct("a", "", []float32{1}, nil)}
	if err := New(api).Upsert(context.Background(), "c1", nil, docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("upsert endpoint not called")
	}
}

func TestUpdate_MetadataOnly(t *testing.T) {
	api := &mockAPI{updateFn: func(_ context.Context, _ string, a record.Arrays) error {
		if a.Embeddings[0] != nil {
			t.Error("metadata-only patch must not carry an embedding")
		}
		return nil
	}}

	docs := []dom.Document{dom.Reconstruct("a", "", nil, dom.Metadata{"k": "v2"})}
	// No embedder needed: nothing requires embedding.
	if err := New(api).Update(context.Background(), "c1", nil, docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_ReembedsChangedContents(t *testing.T) {
	api := &mockAPI{updateFn: func(_ context.Context, _ string, a record.Arrays) error {
		if a.Embeddings[0] == nil {
			t.Error("changed contents must be re-embedded")
		}
		return nil
	}}

	docs := []dom.Document{dom.Reconstruct("a", "new text", nil, nil)}
	err := New(api).Update(context.Background(), "c1", staticEmbedder{vec: []float32{1}}, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_DecodesArrays(t *testing.T) {
	contents := "hello"
	api := &mockAPI{getFn: func(_ context.Context, _ string, q GetQuery) (record.Arrays, error) {
		if len(q.IDs) != 1 || q.IDs[0] != "a" {
			t.Errorf("query ids = %v, want [a]", q.IDs)
		}
		return record.Arrays{
			IDs:       []string{"a"},
			Contents:  []*string{&contents},
			Metadatas: []dom.Metadata{{"k": "v"}},
		}, nil
	}}

	docs, err := New(api).Get(context.Background(), "c1", GetQuery{IDs: []string{"a"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Contents() != "hello" || docs[0].Metadata()["k"] != "v" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestGet_LengthMismatchFromServer(t *testing.T) {
	api := &mockAPI{getFn: func(context.Context, string, GetQuery) (record.Arrays, error) {
		return record.Arrays{
			IDs:        []string{"a", "b"},
			Embeddings: [][]float32{{1}},
		}, nil
	}}

	_, err := New(api).Get(context.Background(), "c1", GetQuery{})
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Fatalf("errors.Is(err, ErrLengthMismatch) = false, err = %v", err)
	}
}

func TestDelete(t *testing.T) {
	api := &mockAPI{deleteFn: func(_ context.Context, _ string, q DeleteQuery) error {
		if q.Where == nil {
			t.Error("where clause dropped")
		}
		return nil
	}}

	err := New(api).Delete(context.Background(), "c1", DeleteQuery{
		Where: map[string]any{"topic": map[string]any{"$eq": "old"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCount(t *testing.T) {
	api := &mockAPI{countFn: func(context.Context, string) (int, error) { return 42, nil }}

	n, err := New(api).Count(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("count = %d, want 42", n)
	}
}
