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

package zerv

import (
	"testing"

	"zerv.dev/zerv/vcs"
)

func TestZerv_Equal_StructuralNotPrecedence(t *testing.T) {
	s := Schema{Name: "a", Core: []Component{VarField(VarMajor)}}
	a := Zerv{Schema: s, Vars: Vars{Major: 1, Branch: "main"}}
	b := Zerv{Schema: s, Vars: Vars{Major: 1, Branch: "release"}}

	if a.Compare(b) != 0 {
		t.Fatalf("Compare = %d, want 0 (branch sits outside the default precedence order)", a.Compare(b))
	}
	if a.Equal(b) {
		t.Error("Equal = true, want false: Branch differs between a and b")
	}
	if !a.Equal(a) {
		t.Error("Equal(a, a) = false, want true")
	}
}

func TestZerv_Equal_DifferentSchemaName(t *testing.T) {
	v := Vars{Major: 1}
	a := Zerv{Schema: Schema{Name: "a", Core: []Component{VarField(VarMajor)}}, Vars: v}
	b := Zerv{Schema: Schema{Name: "b", Core: []Component{VarField(VarMajor)}}, Vars: v}

	if a.Equal(b) {
		t.Error("Equal = true, want false: schema names differ")
	}
}

func TestVarKind_LastFields_RoundTrip(t *testing.T) {
	for _, k := range []VarKind{VarLastBranch, VarLastCommitHash, VarLastCommitHashShort, VarLastTimestamp} {
		got, err := ParseVarKind(k.String())
		if err != nil {
			t.Fatalf("ParseVarKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseVarKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestComponent_RenderVar_LastFields(t *testing.T) {
	v := Vars{
		LastBranch:          "release/1.x",
		LastCommitHash:      vcs.Hash("abcdef0123456789abcdef0123456789abcdef01"),
		LastCommitHashShort: vcs.ShortHash("abcdef0"),
		LastTimestamp:       1700000000,
	}

	cases := []struct {
		kind VarKind
		want string
	}{
		{VarLastBranch, "release/1.x"},
		{VarLastCommitHash, "abcdef0123456789abcdef0123456789abcdef01"},
		{VarLastCommitHashShort, "abcdef0"},
		{VarLastTimestamp, "1700000000"},
	}
	for _, c := range cases {
		got, err := VarField(c.kind).Render(v)
		if err != nil {
			t.Fatalf("Render(%v): %v", c.kind, err)
		}
		if got != c.want {
			t.Errorf("Render(%v) = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestFromVcsData_PopulatesLastFields(t *testing.T) {
	branch, err := vcs.ParseBranchName("main")
	if err != nil {
		t.Fatalf("ParseBranchName: %v", err)
	}
	tagHash, err := vcs.ParseHash("abcdef0123456789abcdef0123456789abcdef01")
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	tagTimestamp := int64(1690000000)

	d := vcs.Data{
		CurrentBranch: &branch,
		TagCommitHash: &tagHash,
		TagTimestamp:  &tagTimestamp,
	}
	v := FromVcsData(d)

	if v.LastBranch != "main" {
		t.Errorf("LastBranch = %q, want %q", v.LastBranch, "main")
	}
	if v.LastCommitHash != tagHash {
		t.Errorf("LastCommitHash = %v, want %v", v.LastCommitHash, tagHash)
	}
	if v.LastCommitHashShort.String() != tagHash.Short() {
		t.Errorf("LastCommitHashShort = %q, want %q", v.LastCommitHashShort.String(), tagHash.Short())
	}
	if v.LastTimestamp != tagTimestamp {
		t.Errorf("LastTimestamp = %d, want %d", v.LastTimestamp, tagTimestamp)
	}
}
