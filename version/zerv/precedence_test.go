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

import "testing"

func TestCascadeZero_MajorBumpPreservesPreReleasePostDev(t *testing.T) {
	n := uint32(1)
	v := &Vars{
		Major:      1,
		Minor:      2,
		Patch:      3,
		PreRelease: PreRelease{Label: "alpha", Number: &n},
		Post:       &n,
		Dev:        &n,
	}

	CascadeZero(v, VarMajor, nil)

	if v.Minor != 0 || v.Patch != 0 {
		t.Errorf("Minor/Patch = %d/%d, want 0/0", v.Minor, v.Patch)
	}
	if v.PreRelease.IsZero() {
		t.Error("PreRelease was cleared by a major bump, want preserved")
	}
	if v.Post == nil || v.Dev == nil {
		t.Error("Post/Dev were cleared by a major bump, want preserved")
	}
}

func TestCascadeZero_PreReleaseBumpClearsPostAndDev(t *testing.T) {
	n := uint32(1)
	v := &Vars{
		Major:      1,
		PreRelease: PreRelease{Label: "alpha", Number: &n},
		Post:       &n,
		Dev:        &n,
	}

	CascadeZero(v, VarPreReleaseNumber, nil)

	if v.Major != 1 {
		t.Errorf("Major = %d, want 1 (unaffected)", v.Major)
	}
	if v.Post != nil || v.Dev != nil {
		t.Error("Post/Dev survived a pre-release bump, want cleared")
	}
}

func TestCascadeZero_PostBumpClearsDevOnly(t *testing.T) {
	n := uint32(1)
	v := &Vars{
		PreRelease: PreRelease{Label: "alpha", Number: &n},
		Post:       &n,
		Dev:        &n,
	}

	CascadeZero(v, VarPost, nil)

	if v.PreRelease.IsZero() {
		t.Error("PreRelease was cleared by a post bump, want preserved")
	}
	if v.Dev != nil {
		t.Error("Dev survived a post bump, want cleared")
	}
}

func TestCascadeZero_EpochBumpClearsAllReleaseCore(t *testing.T) {
	n := uint32(1)
	v := &Vars{
		Epoch:      1,
		Major:      2,
		Minor:      3,
		Patch:      4,
		PreRelease: PreRelease{Label: "alpha", Number: &n},
	}

	CascadeZero(v, VarEpoch, nil)

	if v.Major != 0 || v.Minor != 0 || v.Patch != 0 {
		t.Errorf("Major/Minor/Patch = %d/%d/%d, want all 0", v.Major, v.Minor, v.Patch)
	}
	if v.PreRelease.IsZero() {
		t.Error("PreRelease was cleared by an epoch bump, want preserved")
	}
}

func TestCascadeZero_MinorBumpClearsPatchOnly(t *testing.T) {
	v := &Vars{Major: 1, Minor: 2, Patch: 3}

	CascadeZero(v, VarMinor, nil)

	if v.Major != 1 {
		t.Errorf("Major = %d, want 1 (unaffected)", v.Major)
	}
	if v.Patch != 0 {
		t.Errorf("Patch = %d, want 0", v.Patch)
	}
}

func TestCascadeZero_CustomVarsClearedUnlessPreserved(t *testing.T) {
	v := &Vars{
		Major:  1,
		Custom: map[string]string{"keep": "x", "drop": "y"},
	}

	CascadeZero(v, VarMajor, map[string]bool{"keep": true})

	if _, ok := v.Custom["keep"]; !ok {
		t.Error("preserved custom var was cleared")
	}
	if _, ok := v.Custom["drop"]; ok {
		t.Error("non-preserved custom var survived")
	}
}
