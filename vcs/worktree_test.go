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

package vcs_test

import (
	"testing"

	"zerv.dev/zerv/vcs"
)

func TestWorktreeStatus_Clean(t *testing.T) {
	if !(vcs.WorktreeStatus{}).Clean() {
		t.Error("zero value should be clean")
	}
	if (vcs.WorktreeStatus{HasUntracked: true}).Clean() {
		t.Error("HasUntracked should make the tree dirty")
	}
}

func TestWorktreeStatus_String(t *testing.T) {
	if got := (vcs.WorktreeStatus{}).String(); got != "clean" {
		t.Errorf("String() = %q, want %q", got, "clean")
	}
	got := vcs.NewWorktreeStatus(true, false, true).String()
	if want := "unstaged, untracked"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestData_Dirty_PrefersWorktreeStatus(t *testing.T) {
	status := vcs.NewWorktreeStatus(false, false, false)
	d := vcs.Data{IsDirty: true, WorktreeStatus: &status}
	if d.Dirty() {
		t.Error("Dirty() should prefer the clean WorktreeStatus over a stale IsDirty=true")
	}
}

func TestData_Dirty_FallsBackToIsDirty(t *testing.T) {
	d := vcs.Data{IsDirty: true}
	if !d.Dirty() {
		t.Error("Dirty() should fall back to IsDirty when WorktreeStatus is nil")
	}
}
