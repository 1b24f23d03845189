package utils

import (
	"reflect"
	"testing"
)

func TestRemovePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		wantRemoved bool
		want        map[string]any
	}{
		{
			name:        "top level",
			path:        "title",
			wantRemoved: true,
			want:        map[string]any{"id": "1", "vendor": map[string]any{"id": "v"}, "lines": []any{map[string]any{"amount": 1.0, "note": "x"}}},
		},
		{
			name:        "nested object",
			path:        "vendor.id",
			wantRemoved: true,
			want:        map[string]any{"id": "1", "title": "t", "vendor": map[string]any{}, "lines": []any{map[string]any{"amount": 1.0, "note": "x"}}},
		},
		{
			name:        "through array",
			path:        "lines.note",
			wantRemoved: true,
			want:        map[string]any{"id": "1", "title": "t", "vendor": map[string]any{"id": "v"}, "lines": []any{map[string]any{"amount": 1.0}}},
		},
		{
			name: "missing",
			path: "vendor.name",
			want: map[string]any{"id": "1", "title": "t", "vendor": map[string]any{"id": "v"}, "lines": []any{map[string]any{"amount": 1.0, "note": "x"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			obj := map[string]any{
				"id":     "1",
				"title":  "t",
				"vendor": map[string]any{"id": "v"},
				"lines":  []any{map[string]any{"amount": 1.0, "note": "x"}},
			}
			if got := RemovePath(obj, tt.path); got != tt.wantRemoved {
				t.Fatalf("RemovePath = %v, want %v", got, tt.wantRemoved)
			}
			if !reflect.DeepEqual(obj, tt.want) {
				t.Fatalf("obj = %v, want %v", obj, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	obj := map[string]any{"id": "1", "vendor": map[string]any{"id": "v"}}
	Merge(obj, map[string]any{"vendor": map[string]any{"code": "ACME"}, "extra": true})

	want := map[string]any{"id": "1", "vendor": map[string]any{"id": "v", "code": "ACME"}, "extra": true}
	if !reflect.DeepEqual(obj, want) {
		t.Fatalf("obj = %v", obj)
	}
}

func TestToObject(t *testing.T) {
	t.Parallel()

	obj, err := ToObject(struct {
		ID string `json:"id"`
	}{ID: "abc"})
	if err != nil || obj["id"] != "abc" {
		t.Fatalf("got %v, %v", obj, err)
	}

	if _, err := ToObject([]int{1}); err == nil {
		t.Fatal("arrays are not objects")
	}
}
