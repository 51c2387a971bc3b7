package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/loamdb/loam-go/internal/domain"
	"github.com/loamdb/loam-go/internal/domain/record"
	"github.com/loamdb/loam-go/internal/domain/search/request"
	uc "github.com/loamdb/loam-go/internal/usecase/document"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:  srv.URL,
		Tenant:   "default_tenant",
		Database: "default_database",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func decodeBody(t *testing.T, r *http.Request, into any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestHeartbeat(t *testing.T) {
	r := chi.NewRouter()
	called := false
	r.Get("/api/v1/heartbeat", func(w http.ResponseWriter, _ *http.Request) {
		called = true
		writeJSON(t, w, map[string]int64{"nanosecond heartbeat": 1})
	})

	c := newTestClient(t, r)
	if err := c.Heartbeat(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("heartbeat endpoint not hit")
	}
}

func TestHeartbeat_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // client now dials a dead address

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = c.Heartbeat(context.Background())
	if !errors.Is(err, domain.ErrConnection) {
		t.Fatalf("errors.Is(err, ErrConnection) = false, err = %v", err)
	}
}

func TestValidateTenant(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/tenants/{tenant}", func(w http.ResponseWriter, req *http.Request) {
		if got := chi.URLParam(req, "tenant"); got != "default_tenant" {
			t.Errorf("tenant = %q", got)
		}
		writeJSON(t, w, map[string]string{"name": "default_tenant"})
	})
	r.Get("/api/v1/databases/{database}", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("tenant"); got != "default_tenant" {
			t.Errorf("tenant query param = %q", got)
		}
		writeJSON(t, w, map[string]string{"name": "default_database"})
	})

	c := newTestClient(t, r)
	if err := c.ValidateTenant(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTenant_UnknownTenant(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/tenants/{tenant}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(t, w, map[string]string{"error": "tenant ghost not found"})
	})

	c := newTestClient(t, r)
	err := c.ValidateTenant(context.Background())
	if !errors.Is(err, domain.ErrServer) {
		t.Fatalf("errors.Is(err, ErrServer) = false, err = %v", err)
	}
	var se *domain.ServerError
	if !errors.As(err, &se) {
		t.Fatalf("errors.As ServerError = false")
	}
	if se.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", se.Status)
	}
}

func TestCreateCollection_Wire(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/collections", func(w http.ResponseWriter, req *http.Request) {
		if got := req.URL.Query().Get("database"); got != "default_database" {
			t.Errorf("database query param = %q", got)
		}
		var body map[string]any
		decodeBody(t, req, &body)
		if body["name"] != "articles" {
			t.Errorf("name = %v", body["name"])
		}
		if body["get_or_create"] != true {
			t.Errorf("get_or_create = %v, want true", body["get_or_create"])
		}
		writeJSON(t, w, map[string]any{
			"id":       "uuid-1",
			"name":     "articles",
			"metadata": map[string]any{"k": "v"},
		})
	})

	c := newTestClient(t, r)
	col, err := c.CreateCollection(context.Background(), "articles", nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.ID() != "uuid-1" || col.Metadata()["k"] != "v" {
		t.Errorf("collection = %+v", col)
	}
}

func TestUpdateCollection_Wire(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/api/v1/collections/{id}", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		decodeBody(t, req, &body)
		if body["new_name"] != "posts" {
			t.Errorf("new_name = %v", body["new_name"])
		}
		if _, ok := body["new_metadata"]; ok {
			t.Error("absent new_metadata must be omitted from the wire")
		}
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, r)
	if err := c.UpdateCollection(context.Background(), "uuid-1", "posts", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdd_Wire(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/collections/{id}/add", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		decodeBody(t, req, &body)
		ids, ok := body["ids"].([]any)
		if !ok || len(ids) != 2 {
			t.Fatalf("ids = %v", body["ids"])
		}
		docs, ok := body["documents"].([]any)
		if !ok || docs[0] != "alpha" || docs[1] != nil {
			t.Errorf("documents = %v, want [alpha nil]", body["documents"])
		}
		if _, ok := body["embeddings"]; !ok {
			t.Error("embeddings column missing")
		}
		w.WriteHeader(http.StatusCreated)
	})

	c := newTestClient(t, r)
	alpha := "alpha"
	err := c.Add(context.Background(), "uuid-1", record.Arrays{
		IDs:        []string{"a", "b"},
		Embeddings: [][]float32{{1}, {2}},
		Contents:   []*string{&alpha, nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_Wire(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/collections/{id}/get", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		decodeBody(t, req, &body)
		where, ok := body["where"].(map[string]any)
		if !ok {
			t.Fatalf("where = %v", body["where"])
		}
		clause, ok := where["topic"].(map[string]any)
		if !ok || clause["$eq"] != "go" {
			t.Errorf("where clause not passed through verbatim: %v", where)
		}
		if body["limit"] != float64(5) {
			t.Errorf("limit = %v, want 5", body["limit"])
		}
		writeJSON(t, w, map[string]any{
			"ids":       []string{"a"},
			"documents": []any{"alpha"},
			"metadatas": []any{map[string]any{"topic": "go"}},
			"included":  []string{"documents", "metadatas"},
		})
	})

	c := newTestClient(t, r)
	a, err := c.Get(context.Background(), "uuid-1", uc.GetQuery{
		Where: map[string]any{"topic": map[string]any{"$eq": "go"}},
		Limit: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Len() != 1 || *a.Contents[0] != "alpha" {
		t.Errorf("arrays = %+v", a)
	}
}

func TestGet_EmbeddedError(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/collections/{id}/get", func(w http.ResponseWriter, _ *http.Request) {
		msg := "InvalidCollection: collection uuid-1 does not exist"
		writeJSON(t, w, map[string]any{"ids": []string{}, "error": msg})
	})

	c := newTestClient(t, r)
	_, err := c.Get(context.Background(), "uuid-1", uc.GetQuery{})
	if !errors.Is(err, domain.ErrInvalidCollection) {
		t.Fatalf("errors.Is(err, ErrInvalidCollection) = false, err = %v", err)
	}
}

func TestQuery_Wire(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/collections/{id}/query", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		decodeBody(t, req, &body)
		if _, ok := body["query_embeddings"]; !ok {
			t.Fatal("query_embeddings missing")
		}
		if body["n_results"] != float64(2) {
			t.Errorf("n_results = %v, want 2", body["n_results"])
		}
		writeJSON(t, w, map[string]any{
			"ids":       [][]string{{"a", "b"}},
			"documents": []any{[]any{"alpha", nil}},
			"distances": [][]float64{{0.1, 0.2}},
		})
	})

	c := newTestClient(t, r)
	req, err := request.New([][]float32{{1, 2}}, 2, nil, nil, nil)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	nested, err := c.Query(context.Background(), "uuid-1", &req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nested.IDs) != 1 || len(nested.IDs[0]) != 2 {
		t.Fatalf("nested ids = %v", nested.IDs)
	}
	if nested.Contents[0][1] != nil {
		t.Error("null document entry must decode to nil")
	}
	if nested.Distances[0][1] != 0.2 {
		t.Errorf("distance = %v", nested.Distances[0][1])
	}
}

func TestCount_Wire(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/collections/{id}/count", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, 7)
	})

	c := newTestClient(t, r)
	n, err := c.Count(context.Background(), "uuid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("count = %d, want 7", n)
	}
}

func TestDelete_Wire(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/collections/{id}/delete", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		decodeBody(t, req, &body)
		if _, ok := body["where_document"]; !ok {
			t.Error("where_document missing")
		}
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, r)
	err := c.Delete(context.Background(), "uuid-1", uc.DeleteQuery{
		WhereDocument: map[string]any{"$contains": "stale"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/heartbeat", func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		writeJSON(t, w, map[string]int64{"nanosecond heartbeat": 1})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.Heartbeat(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClassify(t *testing.T) {
	c := &Client{}

	err := c.classify(400, "InvalidCollection: gone")
	if !errors.Is(err, domain.ErrInvalidCollection) {
		t.Errorf("InvalidCollection message not classified: %v", err)
	}

	err = c.classify(400, "Collection abc does not exist.")
	if !errors.Is(err, domain.ErrInvalidCollection) {
		t.Errorf("does-not-exist message not classified: %v", err)
	}

	err = c.classify(500, "internal error")
	if !errors.Is(err, domain.ErrServer) {
		t.Errorf("generic message must stay a server error: %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCollection) {
		t.Error("generic message wrongly classified as invalid collection")
	}
}

func TestExtractMessage(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"error":"ValueError","message":"bad input"}`, "ValueError: bad input"},
		{`{"error":"ValueError"}`, "ValueError"},
		{`{"message":"bad input"}`, "bad input"},
		{`plain text`, "plain text"},
	}
	for _, tc := range cases {
		if got := extractMessage([]byte(tc.in)); got != tc.want {
			t.Errorf("extractMessage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
