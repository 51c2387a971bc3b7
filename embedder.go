package loam

import (
	"context"

	"github.com/loamdb/loam-go/internal/domain"
	"github.com/loamdb/loam-go/internal/transport/openai"
	"go.uber.org/zap"
)

// Embedder converts texts to embedding vectors. Implementations must
// return exactly one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIConfig holds settings for the OpenAI-compatible embedding
// provider.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string // empty for api.openai.com
	Model      string
	Dimensions int
	User       string
}

// NewOpenAIEmbedder creates an embedding capability backed by an
// OpenAI-compatible embeddings endpoint.
func NewOpenAIEmbedder(cfg OpenAIConfig) Embedder {
	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}
	return openai.NewEmbedder(&openai.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      model,
		Dimensions: cfg.Dimensions,
		User:       cfg.User,
		Provider:   "openai",
		Logger:     zap.NewNop(),
	})
}

// embedderAdapter wraps the public Embedder to satisfy domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a embedderAdapter) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return a.inner.Embed(ctx, texts)
}

// noopEmbedder returns an error on Embed call (used when no embedder configured).
type noopEmbedder struct{}

func (noopEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, domain.ErrNoEmbedder
}
