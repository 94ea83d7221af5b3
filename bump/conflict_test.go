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
)

func TestCheckConflicts_NoneWhenFlagsCompatible(t *testing.T) {
	pairs := bump.CheckConflicts(bump.Flags{Dirty: true})
	if len(pairs) != 0 {
		t.Errorf("expected no conflicts, got %v", pairs)
	}
}

func TestCheckConflicts_ReportsEveryPairAtOnce(t *testing.T) {
	f := bump.Flags{Clean: true, Dirty: true, NoDirty: true, BumpContext: true, NoBumpContext: true}
	pairs := bump.CheckConflicts(f)
	if len(pairs) != 4 {
		t.Fatalf("expected 4 conflicting pairs, got %d: %v", len(pairs), pairs)
	}
}

func TestErrors_AggregatesAllConflicts(t *testing.T) {
	f := bump.Flags{Clean: true, Dirty: true, BumpContext: true, NoBumpContext: true}
	err := bump.Errors(f)
	if err == nil {
		t.Fatal("expected non-nil aggregated error")
	}
}
