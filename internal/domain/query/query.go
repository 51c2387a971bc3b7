// Package query models the caller-facing similarity query input: free
// text, a raw embedding vector, or an explicit query document.
package query

import "github.com/loamdb/loam-go/internal/domain/document"

// Kind tags the query input variant.
type Kind int

// Query input variants.
const (
	KindText Kind = iota
	KindVector
	KindDoc
)

// Query is a three-variant tagged union over the query input shapes.
type Query struct {
	kind   Kind
	text   string
	vector []float32
	doc    document.Document
}

// FromText creates a free-text query.
func FromText(text string) Query {
	return Query{kind: KindText, text: text}
}

// FromVector creates a raw-embedding query.
func FromVector(vector []float32) Query {
	return Query{kind: KindVector, vector: vector}
}

// FromDoc creates a query from an explicit query document.
func FromDoc(doc document.Document) Query {
	return Query{kind: KindDoc, doc: doc}
}

// Kind returns the variant tag.
func (q Query) Kind() Kind { return q.kind }

// Normalize maps every query variant to exactly one query document:
// text becomes a contents-only document, a vector an embedding-only
// document, and an explicit document passes through unchanged.
func (q Query) Normalize() document.Document {
	switch q.kind {
	case KindText:
		return document.NewQuery(q.text, nil)
	case KindVector:
		return document.NewQuery("", q.vector)
	default:
		return q.doc
	}
}
