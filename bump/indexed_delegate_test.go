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

func testSchema() zerv.Schema {
	return zerv.Schema{
		Name: "test",
		Core: []zerv.Component{
			zerv.VarField(zerv.VarMajor),
			zerv.VarField(zerv.VarMinor),
			zerv.VarField(zerv.VarPatch),
		},
		Build: []zerv.Component{
			zerv.VarField(zerv.VarBranch),
			zerv.StringLiteral("fixed"),
		},
	}
}

func TestApplyIndexedToSchema_DelegatesVarFieldBump(t *testing.T) {
	s := testSchema()
	v := zerv.Vars{Major: 1, Minor: 2, Patch: 3, Custom: map[string]string{}}

	ops := []bump.IndexOp{{Section: bump.SectionCore, Index: 1, Override: nil}}
	if _, err := bump.ApplyIndexedToSchema(s, &v, ops, nil); err != nil {
		t.Fatalf("ApplyIndexedToSchema: %v", err)
	}
	if v.Minor != 3 {
		t.Errorf("Minor = %d, want 3", v.Minor)
	}
	if v.Patch != 0 {
		t.Errorf("Patch = %d, want 0 (cascade zero after minor bump)", v.Patch)
	}
}

func TestApplyIndexedToSchema_DelegatesVarFieldOverrideThenBump(t *testing.T) {
	s := testSchema()
	v := zerv.Vars{Major: 1, Custom: map[string]string{}}

	five := "5"
	ops := []bump.IndexOp{
		{Section: bump.SectionCore, Index: 0, Override: &five},
		{Section: bump.SectionCore, Index: 0},
	}
	if _, err := bump.ApplyIndexedToSchema(s, &v, ops, nil); err != nil {
		t.Fatalf("ApplyIndexedToSchema: %v", err)
	}
	if v.Major != 6 {
		t.Fatalf("Major = %d, want 6", v.Major)
	}
}

func TestApplyIndexedToSchema_RejectsVCSManagedVar(t *testing.T) {
	s := testSchema()
	v := zerv.Vars{Custom: map[string]string{}}

	ops := []bump.IndexOp{{Section: bump.SectionBuild, Index: 0}}
	if _, err := bump.ApplyIndexedToSchema(s, &v, ops, nil); err == nil {
		t.Fatal("expected error bumping a VCS-managed var-field component, got nil")
	}
}

func TestApplyIndexedToSchema_LiteralComponentStillWorks(t *testing.T) {
	s := testSchema()
	v := zerv.Vars{Custom: map[string]string{}}

	replacement := "moved"
	ops := []bump.IndexOp{{Section: bump.SectionBuild, Index: 1, Override: &replacement}}
	updated, err := bump.ApplyIndexedToSchema(s, &v, ops, nil)
	if err != nil {
		t.Fatalf("ApplyIndexedToSchema: %v", err)
	}
	text, err := updated.Build[1].Render(v)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if text != "moved" {
		t.Errorf("overridden literal = %q, want %q", text, "moved")
	}
}

func TestApplyIndexedToSchema_DuplicateKindRejected(t *testing.T) {
	s := testSchema()
	v := zerv.Vars{Custom: map[string]string{}}

	ops := []bump.IndexOp{
		{Section: bump.SectionCore, Index: 1},
		{Section: bump.SectionCore, Index: 1},
	}
	if _, err := bump.ApplyIndexedToSchema(s, &v, ops, nil); err == nil {
		t.Fatal("expected duplicate-op error, got nil")
	}
}
