package collection

import (
	"context"
	"errors"
	"testing"

	domcol "github.com/loamdb/loam-go/internal/domain/collection"
	"github.com/loamdb/loam-go/internal/domain/document"
)

type mockAPI struct {
	createFn func(ctx context.Context, name string, metadata document.Metadata, getOrCreate bool) (domcol.Collection, error)
	getFn    func(ctx context.Context, name string) (domcol.Collection, error)
	listFn   func(ctx context.Context) ([]domcol.Collection, error)
	deleteFn func(ctx context.Context, name string) error
	updateFn func(ctx context.Context, id, newName string, newMetadata document.Metadata) error
}

func (m *mockAPI) CreateCollection(ctx context.Context, name string, metadata document.Metadata, getOrCreate bool) (domcol.Collection, error) {
	return m.createFn(ctx, name, metadata, getOrCreate)
}

func (m *mockAPI) GetCollection(ctx context.Context, name string) (domcol.Collection, error) {
	return m.getFn(ctx, name)
}

func (m *mockAPI) ListCollections(ctx context.Context) ([]domcol.Collection, error) {
	return m.listFn(ctx)
}

func (m *mockAPI) DeleteCollection(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

func (m *mockAPI) UpdateCollection(ctx context.Context, id, newName string, newMetadata document.Metadata) error {
	return m.updateFn(ctx, id, newName, newMetadata)
}

func TestCreate(t *testing.T) {
	api := &mockAPI{createFn: func(_ context.Context, name string, _ document.Metadata, getOrCreate bool) (domcol.Collection, error) {
		if getOrCreate {
			t.Error("getOrCreate = true, want false")
		}
		return domcol.Reconstruct("id-1", name, nil), nil
	}}

	col, err := New(api).Create(context.Background(), "articles", nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.ID() != "id-1" || col.Name() != "articles" {
		t.Errorf("collection = %s/%s", col.ID(), col.Name())
	}
}

func TestCreate_EmptyName(t *testing.T) {
	api := &mockAPI{createFn: func(context.Context, string, document.Metadata, bool) (domcol.Collection, error) {
		t.Fatal("wire call must not happen for an invalid name")
		return domcol.Collection{}, nil
	}}

	if _, err := New(api).Create(context.Background(), "", nil, false); err == nil {
		t.Fatal("expected error")
	}
}

func TestUpdate_Rename(t *testing.T) {
	api := &mockAPI{updateFn: func(_ context.Context, id, newName string, _ document.Metadata) error {
		if id != "id-1" || newName != "posts" {
			t.Errorf("update args = %q/%q", id, newName)
		}
		return nil
	}}

	orig := domcol.Reconstruct("id-1", "articles", document.Metadata{"k": "v"})
	updated, err := New(api).Update(context.Background(), orig, "posts", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name() != "posts" {
		t.Errorf("updated name = %q, want posts", updated.Name())
	}
	if updated.Metadata()["k"] != "v" {
		t.Error("rename must keep the old metadata")
	}
	if orig.Name() != "articles" {
		t.Error("input collection was mutated")
	}
}

func TestUpdate_NoOp(t *testing.T) {
	api := &mockAPI{updateFn: func(context.Context, string, string, document.Metadata) error {
		t.Fatal("no-op update must not hit the wire")
		return nil
	}}

	orig := domcol.Reconstruct("id-1", "articles", nil)
	updated, err := New(api).Update(context.Background(), orig, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name() != "articles" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdate_InvalidMetadata(t *testing.T) {
	api := &mockAPI{updateFn: func(context.Context, string, string, document.Metadata) error {
		t.Fatal("invalid metadata must not hit the wire")
		return nil
	}}

	orig := domcol.Reconstruct("id-1", "articles", nil)
	_, err := New(api).Update(context.Background(), orig, "", document.Metadata{"bad": []int{1}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDelete_Error(t *testing.T) {
	wantErr := errors.New("boom")
	api := &mockAPI{deleteFn: func(context.Context, string) error { return wantErr }}

	if err := New(api).Delete(context.Background(), "articles"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestList(t *testing.T) {
	api := &mockAPI{listFn: func(context.Context) ([]domcol.Collection, error) {
		return []domcol.Collection{
			domcol.Reconstruct("1", "a", nil),
			domcol.Reconstruct("2", "b", nil),
		}, nil
	}}

	cols, err := New(api).List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != 2 || cols[1].Name() != "b" {
		t.Errorf("cols = %+v", cols)
	}
}
