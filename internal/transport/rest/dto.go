package rest

import "github.com/loamdb/loam-go/internal/domain/document"

// Wire DTOs. Field names are the store's JSON contract; filter clauses
// are passed through verbatim and never interpreted client-side.

type writeRequest struct {
	IDs        []string            `json:"ids"`
	Embeddings [][]float32         `json:"embeddings,omitempty"`
	Metadatas  []document.Metadata `json:"metadatas,omitempty"`
	Documents  []*string           `json:"documents,omitempty"`
}

type getRequest struct {
	IDs           []string       `json:"ids,omitempty"`
	Where         map[string]any `json:"where,omitempty"`
	Limit         int            `json:"limit,omitempty"`
	Offset        int            `json:"offset,omitempty"`
	Include       []string       `json:"include,omitempty"`
	WhereDocument map[string]any `json:"where_document,omitempty"`
}

type getResponse struct {
	IDs        []string            `json:"ids"`
	Embeddings [][]float32         `json:"embeddings"`
	Documents  []*string           `json:"documents"`
	Metadatas  []document.Metadata `json:"metadatas"`
	Error      *string             `json:"error"`
	Included   []string            `json:"included"`
}

type deleteRequest struct {
	IDs           []string       `json:"ids,omitempty"`
	Where         map[string]any `json:"where,omitempty"`
	WhereDocument map[string]any `json:"where_document,omitempty"`
}

type queryRequest struct {
	QueryEmbeddings [][]float32    `json:"query_embeddings"`
	Where           map[string]any `json:"where,omitempty"`
	NResults        int            `json:"n_results"`
	WhereDocument   map[string]any `json:"where_document,omitempty"`
	Include         []string       `json:"include,omitempty"`
}

type queryResponse struct {
	IDs        [][]string            `json:"ids"`
	Embeddings [][][]float32         `json:"embeddings"`
	Documents  [][]*string           `json:"documents"`
	Metadatas  [][]document.Metadata `json:"metadatas"`
	Distances  [][]float64           `json:"distances"`
	Included   []string              `json:"included"`
}

type createCollectionRequest struct {
	Name        string            `json:"name"`
	Metadata    document.Metadata `json:"metadata,omitempty"`
	GetOrCreate bool              `json:"get_or_create"`
}

type updateCollectionRequest struct {
	NewName     string            `json:"new_name,omitempty"`
	NewMetadata document.Metadata `json:"new_metadata,omitempty"`
}

type collectionModel struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Metadata document.Metadata `json:"metadata"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
