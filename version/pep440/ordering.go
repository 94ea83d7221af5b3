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

package pep440

import "strings"

// Compare orders v against other per PEP 440 §Version ordering:
// epoch, then release segment (shorter segment zero-padded for comparison),
// then the pre/post/dev "sub-release" state (a release with no markers
// outranks dev < pre < release < post, in that order), then local version.
func (v Version) Compare(other Version) int {
	if c := compareU64(v.Epoch, other.Epoch); c != 0 {
		return c
	}
	if c := compareRelease(v.Release, other.Release); c != 0 {
		return c
	}
	if c := compareSubRelease(v, other); c != 0 {
		return c
	}
	return compareLocal(v.Local, other.Local)
}

func (v Version) Less(other Version) bool    { return v.Compare(other) < 0 }
func (v Version) Equal(other Version) bool   { return v.Compare(other) == 0 }
func (v Version) Greater(other Version) bool { return v.Compare(other) > 0 }

func compareRelease(a, b []uint64) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if c := compareU64(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// compareSubRelease orders the marker states so dev < pre < (no marker)
// < post holds regardless of which specific markers are present:
// dev-only is lowest, a bare release with neither pre/post/dev is mid,
// post-only is highest. A version can carry both pre and post
// simultaneously (rare but legal), so rank combines both components.
func compareSubRelease(a, b Version) int {
	aDevOnly := a.Pre == nil && a.Post == nil && a.Dev != nil
	bDevOnly := b.Pre == nil && b.Post == nil && b.Dev != nil
	if aDevOnly != bDevOnly {
		if aDevOnly {
			return -1
		}
		return 1
	}
	if c := comparePreRank(a.Pre, b.Pre); c != 0 {
		return c
	}
	if c := compareOptU64(a.Post, b.Post); c != 0 {
		return c
	}
	return compareDevRank(a.Dev, b.Dev)
}

// comparePreRank: no pre-release outranks any pre-release; among
// pre-releases, Kind then Number decide.
func comparePreRank(a, b *PreRelease) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	return compareU64(a.Number, b.Number)
}

// compareDevRank: presence of dev always lowers precedence relative to the
// same base version without dev; among dev markers, Number decides.
func compareDevRank(a, b *uint64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return compareOptU64(a, b)
	}
}

func compareOptU64(a, b *uint64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compareU64(*a, *b)
	}
}

func compareU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareLocal implements PEP 440's local-version ordering: compared
// segment-by-segment; a numeric segment outranks an alphanumeric one at
// the same position; a version with more segments outranks a prefix of
// itself; absence of a local segment sorts lowest of all.
func compareLocal(a, b []LocalSegment) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return -1
	case len(b) == 0:
		return 1
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareLocalSegment(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a), len(b))
}

func compareLocalSegment(a, b LocalSegment) int {
	if a.IsNumeric && b.IsNumeric {
		return compareU64(a.Num, b.Num)
	}
	if a.IsNumeric {
		return 1
	}
	if b.IsNumeric {
		return -1
	}
	return strings.Compare(a.Str, b.Str)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
