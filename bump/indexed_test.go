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

package bump_test

import (
	"testing"

	"zerv.dev/zerv/bump"
	"zerv.dev/zerv/version/zerv"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		sectionLen int
		wantIndex  int
		wantValue  string
		wantErr    bool
	}{
		{"bare_index", "build:2", 5, 2, "", false},
		{"index_with_value", "build:2=9", 5, 2, "9", false},
		{"negative_index_last", "build:~1", 5, 4, "", false},
		{"negative_index_with_value", "core:~2=7", 3, 1, "7", false},
		{"unknown_section", "bogus:1", 3, 0, "", true},
		{"negative_index_out_of_range", "build:~9", 3, 0, "", true},
		{"missing_section_prefix", "2", 3, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := bump.ParseSpec(tt.raw, tt.sectionLen)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSpec(%q) expected error, got nil", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSpec(%q) unexpected error: %v", tt.raw, err)
			}
			if op.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", op.Index, tt.wantIndex)
			}
			gotValue := ""
			if op.Override != nil {
				gotValue = *op.Override
			}
			if gotValue != tt.wantValue {
				t.Errorf("Override = %q, want %q", gotValue, tt.wantValue)
			}
		})
	}
}

func TestValidateAndSort_DuplicateIndexRejected(t *testing.T) {
	ops := []bump.IndexOp{
		{Section: bump.SectionBuild, Index: 1},
		{Section: bump.SectionBuild, Index: 1},
	}
	if _, err := bump.ValidateAndSort(ops); err == nil {
		t.Fatal("expected duplicate index error, got nil")
	}
}

func TestApplyIndexed_OverridesIntegerLiteral(t *testing.T) {
	section := []zerv.Component{zerv.StringLiteral("main"), zerv.IntegerLiteral(3)}
	ops := []bump.IndexOp{{Index: 1, Override: strPtr("9")}}

	got, err := bump.ApplyIndexed(section, ops)
	if err != nil {
		t.Fatalf("ApplyIndexed: %v", err)
	}
	text, err := got[1].Render(zerv.Vars{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if text != "9" {
		t.Errorf("overridden literal = %q, want %q", text, "9")
	}
}

func TestApplyIndexed_VarFieldRejected(t *testing.T) {
	section := []zerv.Component{zerv.VarField(zerv.VarMajor)}
	ops := []bump.IndexOp{{Index: 0, Override: strPtr("9")}}
	if _, err := bump.ApplyIndexed(section, ops); err == nil {
		t.Fatal("expected error overriding a var-field component, got nil")
	}
}

func strPtr(s string) *string { return &s }
