package request

import "fmt"

// Search parameter limits.
const (
	DefaultNResults = 10
	MaxNResults     = 500
)

// Request is a validated batched similarity request: one ordered list of
// query embeddings plus pass-through filter options, issued as a single
// round trip regardless of batch size.
type Request struct {
	embeddings    [][]float32
	nResults      int
	where         map[string]any
	whereDocument map[string]any
	include       []string
}

// New validates and normalizes similarity request parameters.
// Defaults: nResults=10, clamped to MaxNResults. The where and
// where_document grammars are passed through verbatim.
func New(
	embeddings [][]float32,
	nResults int,
	where, whereDocument map[string]any,
	include []string,
) (Request, error) {
	if len(embeddings) == 0 {
		return Request{}, fmt.Errorf("at least one query embedding is required")
	}
	for i, e := range embeddings {
		if len(e) == 0 {
			return Request{}, fmt.Errorf("query embedding %d is empty", i)
		}
	}
	if nResults <= 0 {
		nResults = DefaultNResults
	}
	if nResults > MaxNResults {
		nResults = MaxNResults
	}
	return Request{
		embeddings:    embeddings,
		nResults:      nResults,
		where:         where,
		whereDocument: whereDocument,
		include:       include,
	}, nil
}

// Embeddings returns the ordered query embeddings.
func (r *Request) Embeddings() [][]float32 { return r.embeddings }

// NResults returns the per-query neighbor count.
func (r *Request) NResults() int { return r.nResults }

// Where returns the metadata filter clause (nil when absent).
func (r *Request) Where() map[string]any { return r.where }

// WhereDocument returns the document filter clause (nil when absent).
func (r *Request) WhereDocument() map[string]any { return r.whereDocument }

// Include returns the requested response fields.
func (r *Request) Include() []string { return r.include }
