package loam

import (
	"reflect"
	"testing"
)

func TestComparisonBuilders(t *testing.T) {
	cases := []struct {
		name string
		got  Where
		want Where
	}{
		{"Eq", Eq("topic", "go"), Where{"topic": map[string]any{"$eq": "go"}}},
		{"Ne", Ne("topic", "go"), Where{"topic": map[string]any{"$ne": "go"}}},
		{"Gt", Gt("year", 2020), Where{"year": map[string]any{"$gt": 2020}}},
		{"Gte", Gte("year", 2020), Where{"year": map[string]any{"$gte": 2020}}},
		{"Lt", Lt("year", 2020), Where{"year": map[string]any{"$lt": 2020}}},
		{"Lte", Lte("year", 2020), Where{"year": map[string]any{"$lte": 2020}}},
		{"In", In("lang", "go", "rust"), Where{"lang": map[string]any{"$in": []any{"go", "rust"}}}},
		{"Nin", Nin("lang", "go"), Where{"lang": map[string]any{"$nin": []any{"go"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !reflect.DeepEqual(tc.got, tc.want) {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
}

func TestLogicalBuilders(t *testing.T) {
	got := And(Eq("a", 1), Or(Eq("b", 2), Eq("c", 3)))

	want := Where{"$and": []any{
		map[string]any{"a": map[string]any{"$eq": 1}},
		map[string]any{"$or": []any{
			map[string]any{"b": map[string]any{"$eq": 2}},
			map[string]any{"c": map[string]any{"$eq": 3}},
		}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDocumentBuilders(t *testing.T) {
	if got := Contains("needle"); !reflect.DeepEqual(got, WhereDocument{"$contains": "needle"}) {
		t.Errorf("Contains = %v", got)
	}
	if got := NotContains("hay"); !reflect.DeepEqual(got, WhereDocument{"$not_contains": "hay"}) {
		t.Errorf("NotContains = %v", got)
	}

	got := AndDoc(Contains("a"), OrDoc(Contains("b"), Contains("c")))
	want := WhereDocument{"$and": []any{
		map[string]any{"$contains": "a"},
		map[string]any{"$or": []any{
			map[string]any{"$contains": "b"},
			map[string]any{"$contains": "c"},
		}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
