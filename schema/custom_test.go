/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package schema_test

import (
	"testing"

	"zerv.dev/zerv/schema"
	"zerv.dev/zerv/version/zerv"
)

func TestParseCustomBody_ValidLayoutRenders(t *testing.T) {
	body := `{
		"core": [{"var": "major"}, {"var": "minor"}, {"literal": "x"}],
		"extra_core": [{"var": "custom.channel"}],
		"build": [{"timestamp": "compact_date"}]
	}`
	s, err := schema.ParseCustomBody("my-custom", body)
	if err != nil {
		t.Fatalf("ParseCustomBody: %v", err)
	}
	if s.Name != "my-custom" {
		t.Errorf("Name = %q, want %q", s.Name, "my-custom")
	}

	v := zerv.Vars{Major: 1, Minor: 2, Timestamp: 1700000000, Custom: map[string]string{"channel": "beta"}}
	got, err := s.Render(v)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "1.2.x-beta+20231114"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestParseCustomBody_MalformedJSONRejected(t *testing.T) {
	if _, err := schema.ParseCustomBody("x", "not json"); err == nil {
		t.Fatal("expected error for malformed body, got nil")
	}
}

func TestParseCustomBody_UnknownFieldRejected(t *testing.T) {
	body := `{"core": [{"var": "not_a_real_field"}]}`
	if _, err := schema.ParseCustomBody("x", body); err == nil {
		t.Fatal("expected error for unknown field name, got nil")
	}
}

func TestParseCustomBody_UnknownTimestampPatternRejected(t *testing.T) {
	body := `{"core": [{"var": "major"}], "build": [{"timestamp": "not-a-pattern"}]}`
	if _, err := schema.ParseCustomBody("x", body); err == nil {
		t.Fatal("expected error for unrecognized timestamp pattern, got nil")
	}
}

func TestParseCustomBody_AmbiguousComponentRejected(t *testing.T) {
	body := `{"core": [{"var": "major", "literal": "x"}]}`
	if _, err := schema.ParseCustomBody("x", body); err == nil {
		t.Fatal("expected error for a component setting more than one shape, got nil")
	}
}

func TestParseCustomBody_EmptySchemaRejected(t *testing.T) {
	if _, err := schema.ParseCustomBody("x", `{}`); err == nil {
		t.Fatal("expected error for an empty schema, got nil")
	}
}

func TestParseCustomBody_PrecedenceOrderHonored(t *testing.T) {
	body := `{
		"core": [{"var": "major"}, {"var": "minor"}],
		"precedence_order": ["minor", "major"]
	}`
	s, err := schema.ParseCustomBody("x", body)
	if err != nil {
		t.Fatalf("ParseCustomBody: %v", err)
	}
	a := zerv.Vars{Major: 1, Minor: 2}
	b := zerv.Vars{Major: 2, Minor: 1}
	if got := zerv.Compare(a, b, s.PrecedenceOrder); got <= 0 {
		t.Errorf("Compare with minor-first precedence = %d, want > 0 (a's minor outranks b's)", got)
	}
}
