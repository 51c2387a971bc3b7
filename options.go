package loam

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL  string
	tenant   string
	database string
	apiKey   string

	httpClient *http.Client
	embedder   Embedder

	cacheAddrs    []string
	cachePassword string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL sets the store endpoint. Defaults to http://localhost:8000.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithTenant sets the tenant name. Defaults to "default_tenant".
// Tenant existence is verified once, before the first operation.
func WithTenant(tenant string) Option {
	return optionFunc(func(c *clientConfig) {
		c.tenant = tenant
	})
}

// WithDatabase sets the database name. Defaults to "default_database".
func WithDatabase(database string) Option {
	return optionFunc(func(c *clientConfig) {
		c.database = database
	})
}

// WithAPIKey sets a bearer token attached to every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the default HTTP client (60s timeout).
func WithHTTPClient(h *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = h
	})
}

// WithEmbedder sets the default embedding capability used by every
// collection that has no capability of its own. Without one, operations
// that need embedding computation fail with ErrNoEmbedder.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithEmbeddingCache caches computed embeddings in Redis, wrapping the
// default embedding capability. Repeated texts never hit the provider
// twice.
func WithEmbeddingCache(addrs []string, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
