package loam

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/loamdb/loam-go/internal/db"
	dbRedis "github.com/loamdb/loam-go/internal/db/redis"
	"github.com/loamdb/loam-go/internal/domain"
	domcol "github.com/loamdb/loam-go/internal/domain/collection"
	domdoc "github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/query"
	"github.com/loamdb/loam-go/internal/domain/search/result"
	"github.com/loamdb/loam-go/internal/metrics"
	"github.com/loamdb/loam-go/internal/repository/embcache"
	"github.com/loamdb/loam-go/internal/transport/rest"
	collectionuc "github.com/loamdb/loam-go/internal/usecase/collection"
	documentuc "github.com/loamdb/loam-go/internal/usecase/document"
	searchuc "github.com/loamdb/loam-go/internal/usecase/search"
)

// Defaults applied when options leave fields unset.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultTenant   = "default_tenant"
	DefaultDatabase = "default_database"
)

// Internal interfaces for test substitution.
type collectionUseCase interface {
	Create(ctx context.Context, name string, metadata domdoc.Metadata, getOrCreate bool) (domcol.Collection, error)
	Get(ctx context.Context, name string) (domcol.Collection, error)
	List(ctx context.Context) ([]domcol.Collection, error)
	Delete(ctx context.Context, name string) error
	Update(ctx context.Context, col domcol.Collection, newName string, newMetadata domdoc.Metadata) (domcol.Collection, error)
}

type documentUseCase interface {
	Add(ctx context.Context, collectionID string, emb domain.Embedder, docs []domdoc.Document) error
	Upsert(ctx context.Context, collectionID string, emb domain.Embedder, docs []domdoc.Document) error
	Update(ctx context.Context, collectionID string, emb domain.Embedder, docs []domdoc.Document) error
	Get(ctx context.Context, collectionID string, q documentuc.GetQuery) ([]domdoc.Document, error)
	Delete(ctx context.Context, collectionID string, q documentuc.DeleteQuery) error
	Count(ctx context.Context, collectionID string) (int, error)
}

type searchUseCase interface {
	Query(ctx context.Context, collectionID string, emb domain.Embedder, queries []query.Query, p searchuc.Params) ([]result.Bundle, error)
}

// Client is the loam SDK entry point. It is safe for concurrent use;
// no operation mutates shared state after construction.
type Client struct {
	transport *rest.Client
	collSvc   collectionUseCase
	docSvc    documentUseCase
	searchSvc searchUseCase
	embedder  domain.Embedder
	cache     db.KV
	obs       *observer
	ready     *readiness
}

// New creates a loam Client. No network traffic happens here: the
// one-time tenant and database check runs before the first operation.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL:  DefaultBaseURL,
		tenant:   DefaultTenant,
		database: DefaultDatabase,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	transport, err := rest.New(rest.Config{
		BaseURL:    cfg.baseURL,
		Tenant:     cfg.tenant,
		Database:   cfg.database,
		APIKey:     cfg.apiKey,
		HTTPClient: cfg.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("loam: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var emb domain.Embedder = noopEmbedder{}
	if cfg.embedder != nil {
		emb = embedderAdapter{inner: cfg.embedder}
	}

	var cache db.KV
	if len(cfg.cacheAddrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("loam: create embedding cache: %w", err)
		}
		cacheCounter := metrics.EmbeddingCacheTotal
		if cfg.metricsReg != nil {
			if err := registerOrReuse(cfg.metricsReg, &cacheCounter); err != nil {
				return nil, err
			}
		}
		emb = embcache.New(emb, cache, cacheCounter, nil)
	}

	c := &Client{
		transport: transport,
		collSvc:   collectionuc.New(transport),
		docSvc:    documentuc.New(transport),
		searchSvc: searchuc.New(transport),
		embedder:  emb,
		cache:     cache,
		obs:       obs,
	}
	c.ready = &readiness{check: c.checkReady}
	return c, nil
}

func (c *Client) checkReady(ctx context.Context) error {
	if err := c.transport.Heartbeat(ctx); err != nil {
		return err
	}
	return c.transport.ValidateTenant(ctx)
}

// Close releases all resources.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Ping checks store connectivity. It does not require (or trigger) the
// readiness check.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.transport.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Collections returns the collection management service.
func (c *Client) Collections() *CollectionService {
	return &CollectionService{client: c}
}

// await gates an operation on the one-time readiness check.
func (c *Client) await(ctx context.Context) error {
	return c.ready.await(ctx)
}

// --- readiness state machine ---

type readyState int

const (
	stateUninitialized readyState = iota
	stateReady
	stateFailed
)

// readiness is the one-time initialization barrier. The first operation
// runs the check; a failure is terminal and surfaced to every
// subsequent call.
type readiness struct {
	mu    sync.Mutex
	state readyState
	err   error
	check func(ctx context.Context) error
}

func (r *readiness) await(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case stateReady:
		return nil
	case stateFailed:
		return fmt.Errorf("%w: %w", domain.ErrClientNotReady, r.err)
	}

	if err := r.check(ctx); err != nil {
		r.state = stateFailed
		r.err = err
		return fmt.Errorf("%w: %w", domain.ErrClientNotReady, err)
	}
	r.state = stateReady
	return nil
}
