// Package rest is the HTTP transport to the remote store. It shapes
// wire requests, classifies server errors and never retries.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/loamdb/loam-go/internal/domain"
	domcol "github.com/loamdb/loam-go/internal/domain/collection"
	"github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/record"
	"github.com/loamdb/loam-go/internal/domain/search/request"
	"github.com/loamdb/loam-go/internal/domain/search/result"
	uc "github.com/loamdb/loam-go/internal/usecase/document"
)

const defaultTimeout = 60 * time.Second

// Config holds connection parameters for the store.
type Config struct {
	BaseURL    string
	Tenant     string
	Database   string
	APIKey     string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the store's HTTP API.
type Client struct {
	baseURL  string
	tenant   string
	database string
	apiKey   string
	http     *http.Client
	logger   *zap.Logger
}

// New creates a REST client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/") + "/api/v1",
		tenant:   cfg.Tenant,
		database: cfg.Database,
		apiKey:   cfg.APIKey,
		http:     httpClient,
		logger:   logger,
	}, nil
}

// Heartbeat checks store connectivity.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/heartbeat", nil, nil, nil)
}

// ValidateTenant verifies that the configured tenant and database exist.
func (c *Client) ValidateTenant(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/tenants/"+url.PathEscape(c.tenant), nil, nil, nil); err != nil {
		return fmt.Errorf("tenant %q: %w", c.tenant, err)
	}
	q := url.Values{"tenant": {c.tenant}}
	if err := c.do(ctx, http.MethodGet, "/databases/"+url.PathEscape(c.database), q, nil, nil); err != nil {
		return fmt.Errorf("database %q: %w", c.database, err)
	}
	return nil
}

// --- collections ---

// CreateCollection creates a collection, optionally reusing an existing
// one of the same name (get_or_create).
func (c *Client) CreateCollection(ctx context.Context, name string, metadata document.Metadata, getOrCreate bool) (domcol.Collection, error) {
	body := createCollectionRequest{Name: name, Metadata: metadata, GetOrCreate: getOrCreate}
	var out collectionModel
	if err := c.do(ctx, http.MethodPost, "/collections", c.scope(), body, &out); err != nil {
		return domcol.Collection{}, err
	}
	return domcol.Reconstruct(out.ID, out.Name, out.Metadata), nil
}

// GetCollection retrieves a collection by name.
func (c *Client) GetCollection(ctx context.Context, name string) (domcol.Collection, error) {
	var out collectionModel
	if err := c.do(ctx, http.MethodGet, "/collections/"+url.PathEscape(name), c.scope(), nil, &out); err != nil {
		return domcol.Collection{}, err
	}
	return domcol.Reconstruct(out.ID, out.Name, out.Metadata), nil
}

// ListCollections returns all collections in the tenant database.
func (c *Client) ListCollections(ctx context.Context) ([]domcol.Collection, error) {
	var out []collectionModel
	if err := c.do(ctx, http.MethodGet, "/collections", c.scope(), nil, &out); err != nil {
		return nil, err
	}
	cols := make([]domcol.Collection, len(out))
	for i, m := range out {
		cols[i] = domcol.Reconstruct(m.ID, m.Name, m.Metadata)
	}
	return cols, nil
}

// DeleteCollection removes a collection by name.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+url.PathEscape(name), c.scope(), nil, nil)
}

// UpdateCollection renames a collection and/or replaces its metadata.
func (c *Client) UpdateCollection(ctx context.Context, id, newName string, newMetadata document.Metadata) error {
	body := updateCollectionRequest{NewName: newName, NewMetadata: newMetadata}
	return c.do(ctx, http.MethodPut, "/collections/"+url.PathEscape(id), nil, body, nil)
}

// --- documents ---

// Add submits a document batch.
func (c *Client) Add(ctx context.Context, collectionID string, a record.Arrays) error {
	return c.write(ctx, collectionID, "add", a)
}

// Upsert submits a document batch, overwriting existing ids.
func (c *Client) Upsert(ctx context.Context, collectionID string, a record.Arrays) error {
	return c.write(ctx, collectionID, "upsert", a)
}

// Update submits a partial document batch.
func (c *Client) Update(ctx context.Context, collectionID string, a record.Arrays) error {
	return c.write(ctx, collectionID, "update", a)
}

func (c *Client) write(ctx context.Context, collectionID, op string, a record.Arrays) error {
	body := writeRequest{
		IDs:        a.IDs,
		Embeddings: a.Embeddings,
		Metadatas:  a.Metadatas,
		Documents:  a.Contents,
	}
	return c.do(ctx, http.MethodPost, c.colPath(collectionID, op), nil, body, nil)
}

// Get reads documents matching the query.
func (c *Client) Get(ctx context.Context, collectionID string, q uc.GetQuery) (record.Arrays, error) {
	body := getRequest{
		IDs:           q.IDs,
		Where:         q.Where,
		Limit:         q.Limit,
		Offset:        q.Offset,
		Include:       q.Include,
		WhereDocument: q.WhereDocument,
	}
	var out getResponse
	if err := c.do(ctx, http.MethodPost, c.colPath(collectionID, "get"), nil, body, &out); err != nil {
		return record.Arrays{}, err
	}
	if out.Error != nil {
		return record.Arrays{}, c.classify(0, *out.Error)
	}
	return record.Arrays{
		IDs:        out.IDs,
		Embeddings: out.Embeddings,
		Contents:   out.Documents,
		Metadatas:  out.Metadatas,
	}, nil
}

// Delete removes documents matching the query.
func (c *Client) Delete(ctx context.Context, collectionID string, q uc.DeleteQuery) error {
	body := deleteRequest{IDs: q.IDs, Where: q.Where, WhereDocument: q.WhereDocument}
	return c.do(ctx, http.MethodPost, c.colPath(collectionID, "delete"), nil, body, nil)
}

// Count returns the number of documents in a collection.
func (c *Client) Count(ctx context.Context, collectionID string) (int, error) {
	var n int
	if err := c.do(ctx, http.MethodGet, c.colPath(collectionID, "count"), nil, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Query issues one batched similarity request and returns the per-query
// nested response untouched.
func (c *Client) Query(ctx context.Context, collectionID string, req *request.Request) (result.Nested, error) {
	body := queryRequest{
		QueryEmbeddings: req.Embeddings(),
		Where:           req.Where(),
		NResults:        req.NResults(),
		WhereDocument:   req.WhereDocument(),
		Include:         req.Include(),
	}
	var out queryResponse
	if err := c.do(ctx, http.MethodPost, c.colPath(collectionID, "query"), nil, body, &out); err != nil {
		return result.Nested{}, err
	}
	return result.Nested{
		IDs:        out.IDs,
		Embeddings: out.Embeddings,
		Contents:   out.Documents,
		Metadatas:  out.Metadatas,
		Distances:  out.Distances,
	}, nil
}

// --- plumbing ---

func (c *Client) colPath(collectionID, op string) string {
	return "/collections/" + url.PathEscape(collectionID) + "/" + op
}

// scope carries the tenant/database query parameters on collection routes.
func (c *Client) scope() url.Values {
	q := url.Values{}
	if c.tenant != "" {
		q.Set("tenant", c.tenant)
	}
	if c.database != "" {
		q.Set("database", c.database)
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrConnection, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return c.classify(resp.StatusCode, extractMessage(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// classify maps a server error onto the client taxonomy. A collection
// that no longer exists is reported by the server, never guessed here.
func (c *Client) classify(status int, message string) error {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "invalidcollection") ||
		(strings.Contains(lower, "collection") && strings.Contains(lower, "does not exist")) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCollection, message)
	}
	return &domain.ServerError{Status: status, Message: message}
}

// extractMessage pulls a human-readable message from a JSON error body,
// falling back to the raw body.
func extractMessage(data []byte) string {
	var parsed errorResponse
	if json.Unmarshal(data, &parsed) == nil {
		if parsed.Message != "" && parsed.Error != "" {
			return parsed.Error + ": " + parsed.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(data))
}
