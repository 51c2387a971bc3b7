package loam

// Where is a metadata filter expression. It is passed to the store
// verbatim; the server owns the filter grammar.
type Where map[string]any

// WhereDocument is a document-content filter expression, passed to the
// store verbatim.
type WhereDocument map[string]any

// Eq matches documents whose metadata field equals value.
func Eq(field string, value any) Where {
	return Where{field: map[string]any{"$eq": value}}
}

// Ne matches documents whose metadata field does not equal value.
func Ne(field string, value any) Where {
	return Where{field: map[string]any{"$ne": value}}
}

// Gt matches documents whose metadata field is greater than value.
func Gt(field string, value any) Where {
	return Where{field: map[string]any{"$gt": value}}
}

// Gte matches documents whose metadata field is greater than or equal to value.
func Gte(field string, value any) Where {
	return Where{field: map[string]any{"$gte": value}}
}

// Lt matches documents whose metadata field is less than value.
func Lt(field string, value any) Where {
	return Where{field: map[string]any{"$lt": value}}
}

// Lte matches documents whose metadata field is less than or equal to value.
func Lte(field string, value any) Where {
	return Where{field: map[string]any{"$lte": value}}
}

// In matches documents whose metadata field equals any of the values.
func In(field string, values ...any) Where {
	return Where{field: map[string]any{"$in": values}}
}

// Nin matches documents whose metadata field equals none of the values.
func Nin(field string, values ...any) Where {
	return Where{field: map[string]any{"$nin": values}}
}

// And combines metadata filters; all must match.
func And(filters ...Where) Where {
	return Where{"$and": whereList(filters)}
}

// Or combines metadata filters; at least one must match.
func Or(filters ...Where) Where {
	return Where{"$or": whereList(filters)}
}

func whereList(filters []Where) []any {
	out := make([]any, len(filters))
	for i, f := range filters {
		out[i] = map[string]any(f)
	}
	return out
}

// Contains matches documents whose contents contain the substring.
func Contains(text string) WhereDocument {
	return WhereDocument{"$contains": text}
}

// NotContains matches documents whose contents do not contain the substring.
func NotContains(text string) WhereDocument {
	return WhereDocument{"$not_contains": text}
}

// AndDoc combines document filters; all must match.
func AndDoc(filters ...WhereDocument) WhereDocument {
	return WhereDocument{"$and": whereDocList(filters)}
}

// OrDoc combines document filters; at least one must match.
func OrDoc(filters ...WhereDocument) WhereDocument {
	return WhereDocument{"$or": whereDocList(filters)}
}

func whereDocList(filters []WhereDocument) []any {
	out := make([]any, len(filters))
	for i, f := range filters {
		out[i] = map[string]any(f)
	}
	return out
}
