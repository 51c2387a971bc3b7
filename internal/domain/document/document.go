package document

import "fmt"

// MaxIDLength is the maximum document identifier length.
const MaxIDLength = 256

// Metadata maps field names to scalar values (string, bool or number).
type Metadata map[string]any

// Validate rejects non-scalar metadata values.
func (m Metadata) Validate() error {
	for k, v := range m {
		switch v.(type) {
		case string, bool, int, int32, int64, float32, float64:
		default:
			return fmt.Errorf("metadata field %q: unsupported value type %T", k, v)
		}
	}
	return nil
}

// Clone returns a shallow copy of the metadata (values are scalars).
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	c := make(Metadata, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Document is an immutable document value.
// A zero contents string and a nil embedding both mean "absent".
type Document struct {
	id        string
	contents  string
	embedding []float32
	metadata  Metadata
}

// New validates and creates a Document for write operations.
// The id is required; contents and embedding may each be absent here,
// the content-or-embedding invariant is enforced during resolution.
func New(id, contents string, embedding []float32, metadata Metadata) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document id is required")
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("document id too long (max %d)", MaxIDLength)
	}
	if err := metadata.Validate(); err != nil {
		return Document{}, err
	}
	return Document{
		id:        id,
		contents:  contents,
		embedding: embedding,
		metadata:  metadata.Clone(),
	}, nil
}

// NewQuery creates an id-less query document.
func NewQuery(contents string, embedding []float32) Document {
	return Document{contents: contents, embedding: embedding}
}

// Reconstruct creates a Document without validation (wire hydration).
func Reconstruct(id, contents string, embedding []float32, metadata Metadata) Document {
	return Document{id: id, contents: contents, embedding: embedding, metadata: metadata}
}

// ID returns the document identifier ("" for query documents).
func (d Document) ID() string { return d.id }

// Contents returns the document text ("" when absent).
func (d Document) Contents() string { return d.contents }

// Embedding returns the embedding vector (nil when absent).
func (d Document) Embedding() []float32 { return d.embedding }

// Metadata returns the metadata mapping (nil when absent).
func (d Document) Metadata() Metadata { return d.metadata }

// HasEmbedding reports whether an embedding vector is present.
func (d Document) HasEmbedding() bool { return len(d.embedding) > 0 }

// HasContents reports whether text contents are present.
func (d Document) HasContents() bool { return d.contents != "" }

// WithEmbedding returns a copy carrying the given vector.
func (d Document) WithEmbedding(v []float32) Document {
	return Document{id: d.id, contents: d.contents, embedding: v, metadata: d.metadata}
}
