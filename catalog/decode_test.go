package catalog

import (
	"reflect"
	"testing"
)

// Category keys are deliberately out of lexical order: decoding must keep
// document order, not sort.
const patternsJSON = `{
  "error_logs": {
    "zeta": ["z1 {a}", "z2"],
    "alpha": ["a1"]
  },
  "warning_logs": {
    "mid": ["w1 {v}"]
  }
}`

const patternsYAML = `error_logs:
  zeta:
    - "z1 {a}"
    - "z2"
  alpha:
    - "a1"
warning_logs:
  mid:
    - "w1 {v}"
`

func TestDecodePatternsJSON_DocumentOrder(t *testing.T) {
	p, err := DecodePatternsJSON([]byte(patternsJSON))
	if err != nil {
		t.Fatalf("DecodePatternsJSON() error = %v", err)
	}

	wantErrors := Catalog{Categories: []Category{
		{Name: "zeta", Messages: []string{"z1 {a}", "z2"}},
		{Name: "alpha", Messages: []string{"a1"}},
	}}
	if !reflect.DeepEqual(p.Errors, wantErrors) {
		t.Errorf("Errors = %+v, want %+v", p.Errors, wantErrors)
	}

	wantWarnings := Catalog{Categories: []Category{
		{Name: "mid", Messages: []string{"w1 {v}"}},
	}}
	if !reflect.DeepEqual(p.Warnings, wantWarnings) {
		t.Errorf("Warnings = %+v, want %+v", p.Warnings, wantWarnings)
	}
}

func TestDecodePatternsYAML_MatchesJSON(t *testing.T) {
	fromJSON, err := DecodePatternsJSON([]byte(patternsJSON))
	if err != nil {
		t.Fatalf("DecodePatternsJSON() error = %v", err)
	}
	fromYAML, err := DecodePatternsYAML([]byte(patternsYAML))
	if err != nil {
		t.Fatalf("DecodePatternsYAML() error = %v", err)
	}

	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Errorf("YAML decode = %+v, want JSON-equivalent %+v", fromYAML, fromJSON)
	}
}

func TestDecodePatternsJSON_SkipsUnknownKeys(t *testing.T) {
	data := `{"comment": {"nested": [1, 2]}, "error_logs": {"a": ["m"]}, "warning_logs": {}}`

	p, err := DecodePatternsJSON([]byte(data))
	if err != nil {
		t.Fatalf("DecodePatternsJSON() error = %v", err)
	}
	if len(p.Errors.Categories) != 1 || p.Errors.Categories[0].Name != "a" {
		t.Errorf("Errors = %+v, want single category a", p.Errors)
	}
}

func TestDecodePatternsJSON_Invalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not an object", `[1, 2]`},
		{"messages not a list", `{"error_logs": {"a": "not-a-list"}}`},
		{"truncated", `{"error_logs": {"a": ["m"]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodePatternsJSON([]byte(tc.data)); err == nil {
				t.Error("expected error for invalid patterns document")
			}
		})
	}
}

func TestDecodePatternsYAML_RootNotMapping(t *testing.T) {
	if _, err := DecodePatternsYAML([]byte("- a\n- b\n")); err == nil {
		t.Error("expected error for sequence root")
	}
}
