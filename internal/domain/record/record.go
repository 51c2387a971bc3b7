// Package record converts between the record-oriented document
// representation and the column-oriented parallel-array form used on
// the wire.
package record

import (
	"github.com/loamdb/loam-go/internal/domain"
	"github.com/loamdb/loam-go/internal/domain/document"
)

// Arrays is the four-column wire representation of a document batch.
// IDs defines the batch length N. Each optional column is either nil
// (field not provided / not requested) or exactly N elements long, with
// nil elements marking per-document absence.
type Arrays struct {
	IDs        []string
	Embeddings [][]float32
	Contents   []*string
	Metadatas  []document.Metadata
}

// Len returns the batch length.
func (a Arrays) Len() int { return len(a.IDs) }

// ToArrays builds the parallel-array form from documents in input order.
// Ids must be pairwise distinct within the batch; on violation the whole
// batch is rejected with a DuplicateIDError naming every repeated id.
func ToArrays(docs []document.Document) (Arrays, error) {
	seen := make(map[string]bool, len(docs))
	dupSeen := make(map[string]bool)
	var dups []string

	a := Arrays{
		IDs:        make([]string, 0, len(docs)),
		Embeddings: make([][]float32, 0, len(docs)),
		Contents:   make([]*string, 0, len(docs)),
		Metadatas:  make([]document.Metadata, 0, len(docs)),
	}

	for _, d := range docs {
		id := d.ID()
		if seen[id] {
			if !dupSeen[id] {
				dupSeen[id] = true
				dups = append(dups, id)
			}
			continue
		}
		seen[id] = true

		a.IDs = append(a.IDs, id)
		a.Embeddings = append(a.Embeddings, d.Embedding())
		a.Contents = append(a.Contents, contentsPtr(d))
		a.Metadatas = append(a.Metadatas, d.Metadata())
	}

	if len(dups) > 0 {
		return Arrays{}, &domain.DuplicateIDError{IDs: dups}
	}
	return a, nil
}

// FromArrays zips the parallel arrays back into documents by index.
// Every present optional column must match the ids length.
func FromArrays(a Arrays) ([]document.Document, error) {
	n := len(a.IDs)
	if a.Embeddings != nil && len(a.Embeddings) != n {
		return nil, &domain.LengthMismatchError{Field: "embeddings", Want: n, Got: len(a.Embeddings)}
	}
	if a.Contents != nil && len(a.Contents) != n {
		return nil, &domain.LengthMismatchError{Field: "documents", Want: n, Got: len(a.Contents)}
	}
	if a.Metadatas != nil && len(a.Metadatas) != n {
		return nil, &domain.LengthMismatchError{Field: "metadatas", Want: n, Got: len(a.Metadatas)}
	}

	docs := make([]document.Document, n)
	for i, id := range a.IDs {
		var embedding []float32
		if a.Embeddings != nil {
			embedding = a.Embeddings[i]
		}
		var contents string
		if a.Contents != nil && a.Contents[i] != nil {
			contents = *a.Contents[i]
		}
		var md document.Metadata
		if a.Metadatas != nil {
			md = a.Metadatas[i]
		}
		docs[i] = document.Reconstruct(id, contents, embedding, md)
	}
	return docs, nil
}

func contentsPtr(d document.Document) *string {
	if !d.HasContents() {
		return nil
	}
	s := d.Contents()
	return &s
}
