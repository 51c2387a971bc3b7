// Package embedding fills in missing embedding vectors on document
// batches via a pluggable embedding capability.
package embedding

import (
	"context"
	"fmt"

	"github.com/loamdb/loam-go/internal/domain"
	"github.com/loamdb/loam-go/internal/domain/document"
)

// Resolve ensures every document carries an embedding vector.
//
// Documents lacking both contents and an embedding fail the whole call
// with a MissingContentError naming every offender. When no document is
// missing an embedding the input is returned unchanged and the
// capability is never invoked, which makes resolution idempotent.
// Otherwise the capability is invoked exactly once with the contents of
// the missing documents in their relative order, and a new slice is
// returned merging resolved and untouched documents by original
// position.
func Resolve(ctx context.Context, docs []document.Document, emb domain.Embedder) ([]document.Document, error) {
	var missing []string
	for i, d := range docs {
		if !d.HasContents() && !d.HasEmbedding() {
			missing = append(missing, ref(d, i))
		}
	}
	if len(missing) > 0 {
		return nil, &domain.MissingContentError{Refs: missing}
	}
	return resolve(ctx, docs, emb, func(d document.Document) bool {
		return !d.HasEmbedding()
	})
}

// ResolveKnown embeds only documents that carry contents but no
// embedding, leaving all others untouched. Used on partial updates,
// where a metadata-only document is legitimate.
func ResolveKnown(ctx context.Context, docs []document.Document, emb domain.Embedder) ([]document.Document, error) {
	return resolve(ctx, docs, emb, func(d document.Document) bool {
		return d.HasContents() && !d.HasEmbedding()
	})
}

func resolve(
	ctx context.Context,
	docs []document.Document,
	emb domain.Embedder,
	needs func(document.Document) bool,
) ([]document.Document, error) {
	var (
		idxs  []int
		texts []string
	)
	for i, d := range docs {
		if needs(d) {
			idxs = append(idxs, i)
			texts = append(texts, d.Contents())
		}
	}
	if len(idxs) == 0 {
		return docs, nil
	}
	if emb == nil {
		return nil, domain.ErrNoEmbedder
	}

	vectors, err := emb.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed %d documents: %w", len(texts), err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("capability returned %d vectors for %d texts: %w",
			len(vectors), len(texts), domain.ErrEmbeddingProvider)
	}

	out := make([]document.Document, len(docs))
	copy(out, docs)
	for j, i := range idxs {
		out[i] = docs[i].WithEmbedding(vectors[j])
	}
	return out, nil
}

func ref(d document.Document, pos int) string {
	if d.ID() != "" {
		return d.ID()
	}
	return fmt.Sprintf("#%d", pos)
}
