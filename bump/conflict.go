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

package bump

import (
	"fmt"

	"go.uber.org/multierr"
)

// Flags is the subset of pipeline CLI/API options whose combinations can
// conflict (spec §4.6 "conflict rules enforced before any mutation").
type Flags struct {
	Clean        bool
	Dirty        bool
	NoDirty      bool
	BumpContext  bool
	NoBumpContext bool
}

// ConflictPair names one mutually exclusive option combination.
type ConflictPair struct {
	A, B string
}

// CheckConflicts reports every conflicting pair present in f, checking all
// three rules up front rather than stopping at the first match, so a
// caller that passed several bad combinations at once sees all of them
// (spec §8 property 10).
func CheckConflicts(f Flags) []ConflictPair {
	var pairs []ConflictPair

	check := func(cond bool, a, b string) {
		if cond {
			pairs = append(pairs, ConflictPair{A: a, B: b})
		}
	}

	check(f.Clean && f.Dirty, "--clean", "--dirty")
	check(f.Clean && f.NoDirty, "--clean", "--no-dirty")
	check(f.Dirty && f.NoDirty, "--dirty", "--no-dirty")
	check(f.BumpContext && f.NoBumpContext, "--bump-context", "--no-bump-context")

	return pairs
}

// Errors aggregates f's conflicting pairs into a single multierr error (nil
// if there are none), for callers that want one error value to wrap or log
// rather than the structured []ConflictPair from CheckConflicts.
func Errors(f Flags) error {
	var errs error
	for _, pair := range CheckConflicts(f) {
		errs = multierr.Append(errs, fmt.Errorf("%s conflicts with %s", pair.A, pair.B))
	}
	return errs
}
