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

package template_test

import (
	"testing"

	"zerv.dev/zerv/template"
)

func TestRender_LiteralText(t *testing.T) {
	got, err := template.Render("hello world", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestRender_ExprSubstitution(t *testing.T) {
	got, err := template.Render("v{{ major }}.{{ minor }}", template.Context{"major": int64(1), "minor": int64(2)})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "v1.2" {
		t.Errorf("got %q, want %q", got, "v1.2")
	}
}

func TestRender_IfConditional(t *testing.T) {
	tmpl := "{% if dirty %}dirty{% endif %}clean"
	got, err := template.Render(tmpl, template.Context{"dirty": true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "dirtyclean" {
		t.Errorf("got %q", got)
	}

	got, err = template.Render(tmpl, template.Context{"dirty": false})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "clean" {
		t.Errorf("got %q", got)
	}
}

func TestRender_IfElseConditional(t *testing.T) {
	tmpl := "{% if dirty %}{{ ts }}{% else %}None{% endif %}"
	got, err := template.Render(tmpl, template.Context{"dirty": true, "ts": int64(1672531200)})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "1672531200" {
		t.Errorf("got %q, want %q", got, "1672531200")
	}

	got, err = template.Render(tmpl, template.Context{"dirty": false, "ts": int64(1672531200)})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "None" {
		t.Errorf("got %q, want %q", got, "None")
	}
}

func TestRender_HelperCalls(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ctx  template.Context
		want string
	}{
		{"sanitize_default", `{{ sanitize(branch) }}`, template.Context{"branch": "feature/x y"}, "feature.x.y"},
		{"sanitize_semver_preset", `{{ sanitize(branch, preset="semver_str") }}`, template.Context{"branch": "Feature/007"}, "Feature.7"},
		{"sanitize_uint_preset", `{{ sanitize(branch, preset="uint") }}`, template.Context{"branch": "v1.2.3"}, "123"},
		{"sanitize_custom_separator", `{{ sanitize(branch, separator="_") }}`, template.Context{"branch": "feature/x y"}, "feature_x_y"},
		{"prefix", `{{ prefix(hash, 7) }}`, template.Context{"hash": "abcdef1234567890"}, "abcdef1"},
		{"add", `{{ add(major, 1) }}`, template.Context{"major": int64(1)}, "2"},
		{"subtract", `{{ subtract(major, 1) }}`, template.Context{"major": int64(5)}, "4"},
		{"multiply", `{{ multiply(major, 2) }}`, template.Context{"major": int64(3)}, "6"},
		{"nested", `{{ prefix(sanitize(branch), 4) }}`, template.Context{"branch": "a/b c"}, "a.b."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := template.Render(tt.expr, tt.ctx)
			if err != nil {
				t.Fatalf("Render(%q): %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestRender_FormatTimestamp(t *testing.T) {
	got, err := template.Render(`{{ format_timestamp(ts, "%Y-%m-%d") }}`, template.Context{"ts": int64(1700000000)})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "2023-11-14" {
		t.Errorf("got %q", got)
	}
}

func TestRender_FormatTimestampKeywordFormat(t *testing.T) {
	got, err := template.Render(`{{ format_timestamp(ts, format="compact_date") }}`, template.Context{"ts": int64(1700000000)})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "20231114" {
		t.Errorf("got %q", got)
	}
}

func TestRender_HashIntIsBoundedAndStable(t *testing.T) {
	expr := `{{ hash_int(branch, 4) }}`
	ctx := template.Context{"branch": "main"}
	first, err := template.Render(expr, ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := template.Render(expr, ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if first != second {
		t.Errorf("hash_int not stable: %q vs %q", first, second)
	}
	if len(first) > 4 {
		t.Errorf("hash_int exceeded requested digit bound: %q", first)
	}
}

func TestRender_UndefinedVariableErrors(t *testing.T) {
	if _, err := template.Render("{{ missing }}", template.Context{}); err == nil {
		t.Fatal("expected error for undefined variable")
	}
}

func TestRender_UnterminatedTagErrors(t *testing.T) {
	if _, err := template.Render("{% if dirty %}oops", template.Context{"dirty": true}); err == nil {
		t.Fatal("expected error for missing endif")
	}
}

func TestRender_UnknownHelperErrors(t *testing.T) {
	if _, err := template.Render("{{ nope(1) }}", template.Context{}); err == nil {
		t.Fatal("expected error for unknown helper")
	}
}
