package loam

import (
	"fmt"
	"reflect"
	"strings"
)

const tagKey = "loam"

// schemaMeta holds parsed struct tag metadata, cached per TypedIndex.
type schemaMeta struct {
	typ reflect.Type // struct type for reconstruction

	// Field index in the struct for each role.
	idIdx       int
	contentsIdx int // -1 if not present

	// Mapping from struct field index → metadata field name.
	metaFields []fieldMapping
}

type fieldMapping struct {
	structIdx int
	name      string
}

// parseSchema reflects on T and extracts loam struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("loam: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, idIdx: -1, contentsIdx: -1}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, i, f.Name, tag); err != nil {
			return nil, err
		}
	}

	if meta.idIdx == -1 {
		return nil, fmt.Errorf("loam: no field with `loam:\"...,id\"` tag in %s", t)
	}
	return meta, nil
}

// applyTag processes a single struct field's loam tag.
func applyTag(meta *schemaMeta, idx int, fieldName, tag string) error {
	parts := strings.SplitN(tag, ",", 2)
	name := parts[0]
	modifier := ""
	if len(parts) == 2 {
		modifier = parts[1]
	}

	switch modifier {
	case "id":
		if meta.idIdx != -1 {
			return fmt.Errorf("loam: duplicate id tag on field %s", fieldName)
		}
		meta.idIdx = idx
	case "contents":
		if meta.contentsIdx != -1 {
			return fmt.Errorf("loam: duplicate contents tag on field %s", fieldName)
		}
		meta.contentsIdx = idx
	case "meta", "":
		meta.metaFields = append(meta.metaFields, fieldMapping{structIdx: idx, name: name})
	default:
		return fmt.Errorf("loam: unknown modifier %q on field %s", modifier, fieldName)
	}
	return nil
}

// toDocument converts a typed struct to Document using schema metadata.
func (m *schemaMeta) toDocument(item any) Document {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	id := fmt.Sprint(v.Field(m.idIdx).Interface())

	var contents string
	if m.contentsIdx != -1 {
		contents = fmt.Sprint(v.Field(m.contentsIdx).Interface())
	}

	meta := make(Metadata, len(m.metaFields))
	for _, mf := range m.metaFields {
		meta[mf.name] = v.Field(mf.structIdx).Interface()
	}
	if len(meta) == 0 {
		meta = nil
	}

	return Document{ID: id, Contents: contents, Metadata: meta}
}

// fromDocument converts a Document back to a typed struct using schema metadata.
func (m *schemaMeta) fromDocument(doc Document) any {
	v := reflect.New(m.typ).Elem()

	v.Field(m.idIdx).SetString(doc.ID)
	if m.contentsIdx != -1 {
		v.Field(m.contentsIdx).SetString(doc.Contents)
	}
	for _, mf := range m.metaFields {
		val, ok := doc.Metadata[mf.name]
		if !ok {
			continue
		}
		setScalar(v.Field(mf.structIdx), val)
	}
	return v.Interface()
}

// setScalar assigns a metadata scalar to a struct field, converting
// across numeric kinds since JSON decoding widens numbers to float64.
func setScalar(v reflect.Value, val any) {
	switch v.Kind() {
	case reflect.String:
		if s, ok := val.(string); ok {
			v.SetString(s)
		}
	case reflect.Bool:
		if b, ok := val.(bool); ok {
			v.SetBool(b)
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := toFloat64(val); ok {
			v.SetFloat(f)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f, ok := toFloat64(val); ok {
			v.SetInt(int64(f))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f, ok := toFloat64(val); ok {
			v.SetUint(uint64(f))
		}
	}
}

func toFloat64(val any) (float64, bool) {
	switch n := val.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
