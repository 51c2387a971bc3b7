package loam

import (
	"github.com/loamdb/loam-go/internal/domain/document"
	"github.com/loamdb/loam-go/internal/domain/query"
)

// Query is one similarity query: free text, a precomputed vector, or a
// full document carrying contents and/or embedding. Construct it with
// Text, Vector or Doc.
type Query struct {
	kind      query.Kind
	text      string
	vector    []float32
	contents  string
	embedding []float32
}

// Text queries by free text. The configured embedder turns it into a
// vector before the wire request.
func Text(text string) Query {
	return Query{kind: query.KindText, text: text}
}

// Vector queries by a precomputed embedding.
func Vector(vector []float32) Query {
	return Query{kind: query.KindVector, vector: vector}
}

// Doc queries by a document carrying contents, an embedding, or both.
// When the embedding is absent the contents are embedded first.
func Doc(contents string, embedding []float32) Query {
	return Query{kind: query.KindDoc, contents: contents, embedding: embedding}
}

func (q Query) toInternal() query.Query {
	switch q.kind {
	case query.KindVector:
		return query.FromVector(q.vector)
	case query.KindDoc:
		return query.FromDoc(document.NewQuery(q.contents, q.embedding))
	default:
		return query.FromText(q.text)
	}
}

// --- operation options ---

// QueryOption customizes a similarity query.
type QueryOption interface {
	applyQuery(*queryConfig)
}

// GetOption customizes a document read.
type GetOption interface {
	applyGet(*getConfig)
}

// DeleteOption customizes a document delete.
type DeleteOption interface {
	applyDelete(*deleteConfig)
}

// ModifyOption customizes a collection modification.
type ModifyOption interface {
	applyModify(*modifyConfig)
}

type queryConfig struct {
	nResults      int
	where         Where
	whereDocument WhereDocument
	include       []Include
}

type getConfig struct {
	ids           []string
	where         Where
	whereDocument WhereDocument
	limit         int
	offset        int
	include       []Include
}

type deleteConfig struct {
	ids           []string
	where         Where
	whereDocument WhereDocument
}

type modifyConfig struct {
	newName     string
	newMetadata Metadata
}

// FilterOption narrows an operation by metadata or document contents.
// It is accepted by Query, Get and Delete.
type FilterOption struct {
	where         Where
	whereDocument WhereDocument
}

func (o FilterOption) applyQuery(c *queryConfig) {
	if o.where != nil {
		c.where = o.where
	}
	if o.whereDocument != nil {
		c.whereDocument = o.whereDocument
	}
}

func (o FilterOption) applyGet(c *getConfig) {
	if o.where != nil {
		c.where = o.where
	}
	if o.whereDocument != nil {
		c.whereDocument = o.whereDocument
	}
}

func (o FilterOption) applyDelete(c *deleteConfig) {
	if o.where != nil {
		c.where = o.where
	}
	if o.whereDocument != nil {
		c.whereDocument = o.whereDocument
	}
}

// WithWhere filters by metadata. Build the filter with Eq, Gt, In, And
// and friends, or pass a raw Where map.
func WithWhere(w Where) FilterOption {
	return FilterOption{where: w}
}

// WithWhereDocument filters by document contents.
func WithWhereDocument(w WhereDocument) FilterOption {
	return FilterOption{whereDocument: w}
}

// IDsOption narrows an operation to the given document ids. It is
// accepted by Get and Delete.
type IDsOption struct {
	ids []string
}

func (o IDsOption) applyGet(c *getConfig) { c.ids = o.ids }

func (o IDsOption) applyDelete(c *deleteConfig) { c.ids = o.ids }

// WithIDs restricts the operation to the given document ids.
func WithIDs(ids ...string) IDsOption {
	return IDsOption{ids: ids}
}

// IncludeOption selects which fields the store returns. It is accepted
// by Query and Get.
type IncludeOption struct {
	include []Include
}

func (o IncludeOption) applyQuery(c *queryConfig) { c.include = o.include }

func (o IncludeOption) applyGet(c *getConfig) { c.include = o.include }

// WithInclude selects which fields the store returns.
func WithInclude(include ...Include) IncludeOption {
	return IncludeOption{include: include}
}

type nResultsOption int

func (o nResultsOption) applyQuery(c *queryConfig) { c.nResults = int(o) }

// WithNResults sets how many results each query returns.
func WithNResults(n int) QueryOption {
	return nResultsOption(n)
}

type limitOption int

func (o limitOption) applyGet(c *getConfig) { c.limit = int(o) }

// WithLimit caps how many documents a read returns.
func WithLimit(n int) GetOption {
	return limitOption(n)
}

type offsetOption int

func (o offsetOption) applyGet(c *getConfig) { c.offset = int(o) }

// WithOffset skips the first n matching documents, for paging together
// with WithLimit.
func WithOffset(n int) GetOption {
	return offsetOption(n)
}

type newNameOption string

func (o newNameOption) applyModify(c *modifyConfig) { c.newName = string(o) }

// WithNewName renames the collection.
func WithNewName(name string) ModifyOption {
	return newNameOption(name)
}

type newMetadataOption Metadata

func (o newMetadataOption) applyModify(c *modifyConfig) { c.newMetadata = Metadata(o) }

// WithNewMetadata replaces the collection metadata.
func WithNewMetadata(m Metadata) ModifyOption {
	return newMetadataOption(m)
}

func includeStrings(include []Include) []string {
	if include == nil {
		return nil
	}
	out := make([]string, len(include))
	for i, inc := range include {
		out[i] = string(inc)
	}
	return out
}
