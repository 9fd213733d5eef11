package export_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagefill/pkg/export"
)

func TestValuesUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want export.Values
	}{
		{
			name: "object",
			in:   `{"name":"Ann","age":42,"vip":true,"note":null}`,
			want: export.Single(map[string]string{"name": "Ann", "age": "42", "vip": "true", "note": ""}),
		},
		{
			name: "array",
			in:   `[{"name":"Ann"},{"name":"Bo"}]`,
			want: export.BatchOf(map[string]string{"name": "Ann"}, map[string]string{"name": "Bo"}),
		},
		{
			name: "array with null entry",
			in:   `[null]`,
			want: export.BatchOf(map[string]string{}),
		},
		{
			name: "null",
			in:   `null`,
			want: export.Single(nil),
		},
		{
			name: "nested kept as json",
			in:   `{"items":[1, 2],"meta":{"a": "b"}}`,
			want: export.Single(map[string]string{"items": "[1,2]", "meta": `{"a":"b"}`}),
		},
		{
			name: "large number keeps its text",
			in:   `{"id":12345678901234567890}`,
			want: export.Single(map[string]string{"id": "12345678901234567890"}),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got export.Values
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValuesUnmarshalRejectsScalars(t *testing.T) {
	for _, in := range []string{`"name"`, `42`, `[1,2]`} {
		var v export.Values
		if err := json.Unmarshal([]byte(in), &v); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestValuesRequestField(t *testing.T) {
	var payload struct {
		Values export.Values `json:"values"`
	}
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Values.Len() != 0 || payload.Values.Batch {
		t.Fatalf("absent values should stay zero, got %+v", payload.Values)
	}

	out, err := json.Marshal(payload.Values)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{}` {
		t.Fatalf("zero values marshal = %s", out)
	}

	out, err = json.Marshal(export.BatchOf(map[string]string{"a": "1"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `[{"a":"1"}]` {
		t.Fatalf("batch marshal = %s", out)
	}
}
