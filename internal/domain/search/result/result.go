package result

import "github.com/loamdb/loam-go/internal/domain/document"

// Ranked pairs a retrieved document with its distance from the query.
type Ranked struct {
	doc      document.Document
	distance float64
}

// NewRanked creates a ranked result.
func NewRanked(doc document.Document, distance float64) Ranked {
	return Ranked{doc: doc, distance: distance}
}

// Document returns the retrieved document.
func (r Ranked) Document() document.Document { return r.doc }

// Distance returns the distance from the query embedding.
func (r Ranked) Distance() float64 { return r.distance }

// Bundle is the ranked result list for one query, paired with the
// normalized query document that produced it. Result order is the
// server-returned order; the client never re-sorts.
type Bundle struct {
	query   document.Document
	results []Ranked
}

// NewBundle creates a result bundle.
func NewBundle(query document.Document, results []Ranked) Bundle {
	return Bundle{query: query, results: results}
}

// Query returns the normalized query document.
func (b Bundle) Query() document.Document { return b.query }

// Results returns the ranked results in server order.
func (b Bundle) Results() []Ranked { return b.results }

// Nested is the per-query nested server response: for each query index,
// parallel neighbor arrays plus a parallel distances sequence.
type Nested struct {
	IDs        [][]string
	Embeddings [][][]float32
	Contents   [][]*string
	Metadatas  [][]document.Metadata
	Distances  [][]float64
}
