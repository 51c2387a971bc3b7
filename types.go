package loam

import (
	"fmt"

	domcol "github.com/loamdb/loam-go/internal/domain/collection"
	"github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/search/result"
)

// Metadata maps field names to scalar values (string, bool or number).
type Metadata map[string]any

// Document is a single document record. ID is required for write
// operations; Contents and Embedding may each be absent as long as one
// of them is present after embedding resolution.
type Document struct {
	ID        string
	Contents  string
	Embedding []float32
	Metadata  Metadata
}

// RankedResult pairs a retrieved document with its distance from the
// query embedding.
type RankedResult struct {
	Document Document
	Distance float64
}

// QueryResult is the ranked result list for one query, in the order the
// server returned it, together with the normalized query document.
type QueryResult struct {
	Query   Document
	Results []RankedResult
}

// Include selects which fields the store returns on reads and queries.
type Include string

// Include constants.
const (
	IncludeDocuments  Include = "documents"
	IncludeEmbeddings Include = "embeddings"
	IncludeMetadatas  Include = "metadatas"
	IncludeDistances  Include = "distances"
)

// CollectionInfo represents collection metadata.
type CollectionInfo struct {
	ID       string
	Name     string
	Metadata Metadata
}

// --- converters ---

func toInternalDocument(d Document) (document.Document, error) {
	doc, err := document.New(d.ID, d.Contents, d.Embedding, document.Metadata(d.Metadata))
	if err != nil {
		return document.Document{}, fmt.Errorf("validate document: %w", err)
	}
	return doc, nil
}

func toInternalDocuments(docs []Document) ([]document.Document, error) {
	out := make([]document.Document, len(docs))
	for i, d := range docs {
		var err error
		out[i], err = toInternalDocument(d)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	return out, nil
}

func fromInternalDocument(d document.Document) Document {
	return Document{
		ID:        d.ID(),
		Contents:  d.Contents(),
		Embedding: d.Embedding(),
		Metadata:  Metadata(d.Metadata()),
	}
}

func fromInternalDocuments(docs []document.Document) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = fromInternalDocument(d)
	}
	return out
}

func fromBundle(b result.Bundle) QueryResult {
	ranked := make([]RankedResult, len(b.Results()))
	for i, r := range b.Results() {
		ranked[i] = RankedResult{
			Document: fromInternalDocument(r.Document()),
			Distance: r.Distance(),
		}
	}
	return QueryResult{Query: fromInternalDocument(b.Query()), Results: ranked}
}

func fromInternalCollection(col domcol.Collection) CollectionInfo {
	return CollectionInfo{ID: col.ID(), Name: col.Name(), Metadata: Metadata(col.Metadata())}
}
