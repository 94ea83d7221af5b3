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

import "fmt"

// PrecedenceClass names one rank in the bump-cascade total order. Bumping
// a var at a given class zeroes every var at a lower (later) class — the
// same rule PEP 440 and SemVer both apply to their own release/pre-release
// hierarchy, generalized here across the whole Vars store.
type PrecedenceClass int

const (
	PrecedenceEpoch PrecedenceClass = iota
	PrecedenceMajor
	PrecedenceMinor
	PrecedencePatch
	PrecedencePreRelease
	PrecedencePost
	PrecedenceDev
	PrecedenceDistance
	PrecedenceDirty
	PrecedenceCustom
	PrecedenceBuild
)

// DefaultPrecedenceOrder is the 11-class total order used by every built-in
// schema preset. Distance and Dirty are included (never bumped directly,
// per invariant V3, but still need a rank so the cascade has a complete
// order to zero against when a higher-precedence var changes).
var DefaultPrecedenceOrder = []PrecedenceClass{
	PrecedenceEpoch,
	PrecedenceMajor,
	PrecedenceMinor,
	PrecedencePatch,
	PrecedencePreRelease,
	PrecedencePost,
	PrecedenceDev,
	PrecedenceDistance,
	PrecedenceDirty,
	PrecedenceCustom,
	PrecedenceBuild,
}

func (c PrecedenceClass) String() string {
	switch c {
	case PrecedenceEpoch:
		return "epoch"
	case PrecedenceMajor:
		return "major"
	case PrecedenceMinor:
		return "minor"
	case PrecedencePatch:
		return "patch"
	case PrecedencePreRelease:
		return "pre_release"
	case PrecedencePost:
		return "post"
	case PrecedenceDev:
		return "dev"
	case PrecedenceDistance:
		return "distance"
	case PrecedenceDirty:
		return "dirty"
	case PrecedenceCustom:
		return "custom"
	case PrecedenceBuild:
		return "build"
	default:
		return "unknown"
	}
}

// ParsePrecedenceClass is String's inverse, used by the custom schema body
// parser to accept a textual precedence_order list.
func ParsePrecedenceClass(s string) (PrecedenceClass, error) {
	for _, c := range []PrecedenceClass{
		PrecedenceEpoch, PrecedenceMajor, PrecedenceMinor, PrecedencePatch,
		PrecedencePreRelease, PrecedencePost, PrecedenceDev, PrecedenceDistance,
		PrecedenceDirty, PrecedenceCustom, PrecedenceBuild,
	} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("zerv: unknown precedence class %q", s)
}

func classOf(v VarKind) PrecedenceClass {
	switch v {
	case VarEpoch:
		return PrecedenceEpoch
	case VarMajor:
		return PrecedenceMajor
	case VarMinor:
		return PrecedenceMinor
	case VarPatch:
		return PrecedencePatch
	case VarPreReleaseLabel, VarPreReleaseNumber:
		return PrecedencePreRelease
	case VarPost:
		return PrecedencePost
	case VarDev:
		return PrecedenceDev
	case VarDistance:
		return PrecedenceDistance
	case VarDirty:
		return PrecedenceDirty
	case VarCustom:
		return PrecedenceCustom
	default:
		return PrecedenceBuild
	}
}

// CascadeZero clears vars per spec invariant V1, but only within two
// independent chains: the release-core counters (major, minor, patch)
// cascade among themselves, and the pre-release/post/dev trio cascades
// among themselves — a release-core bump never touches pre-release, post,
// or dev. This keeps an existing pre-release label intact across a
// release-core bump (`bump_major` on "1.2.3-alpha.1" yields
// "2.0.0-alpha.1", not a bare "2.0.0"); bumping pre-release itself still
// resets post/dev, and bumping post still resets dev. Custom vars named
// explicitly in preserve are left untouched even if their class would
// otherwise be cleared, matching the schema engine's "named custom
// survivors" rule.
func CascadeZero(v *Vars, bumped VarKind, preserveCustom map[string]bool) {
	bumpedClass := classOf(bumped)

	switch bumpedClass {
	case PrecedenceEpoch:
		v.Major, v.Minor, v.Patch = 0, 0, 0
	case PrecedenceMajor:
		v.Minor, v.Patch = 0, 0
	case PrecedenceMinor:
		v.Patch = 0
	case PrecedencePreRelease:
		v.Post, v.Dev = nil, nil
	case PrecedencePost:
		v.Dev = nil
	}

	if bumpedClass < PrecedenceCustom && len(v.Custom) > 0 {
		for k := range v.Custom {
			if preserveCustom != nil && preserveCustom[k] {
				continue
			}
			delete(v.Custom, k)
		}
	}
}

// Compare orders a against b using order (or DefaultPrecedenceOrder if nil)
// as the tie-break sequence: classes earlier in order dominate. Returns -1,
// 0, or 1.
func Compare(a, b Vars, order []PrecedenceClass) int {
	if order == nil {
		order = DefaultPrecedenceOrder
	}
	for _, class := range order {
		if c := compareClass(a, b, class); c != 0 {
			return c
		}
	}
	return 0
}

func compareClass(a, b Vars, class PrecedenceClass) int {
	switch class {
	case PrecedenceEpoch:
		return compareU64(a.Epoch, b.Epoch)
	case PrecedenceMajor:
		return compareU64(a.Major, b.Major)
	case PrecedenceMinor:
		return compareU64(a.Minor, b.Minor)
	case PrecedencePatch:
		return compareU64(a.Patch, b.Patch)
	case PrecedencePreRelease:
		return comparePreRelease(a.PreRelease, b.PreRelease)
	case PrecedencePost:
		return compareOptU32(a.Post, b.Post)
	case PrecedenceDev:
		return compareOptU32(a.Dev, b.Dev)
	case PrecedenceDistance:
		return compareU32(a.Distance, b.Distance)
	case PrecedenceDirty:
		return compareBool(a.Dirty, b.Dirty)
	default:
		return 0
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

func compareU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

// compareOptU32 treats an absent marker as having the highest precedence
// (a released version outranks any post/dev marker of the same base),
// mirroring PEP 440 and SemVer's "no pre-release beats any pre-release" rule.
func compareOptU32(a, b *uint32) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return compareU32(*a, *b)
	}
}

func comparePreRelease(a, b PreRelease) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	if a.Label != b.Label {
		if a.Label < b.Label {
			return -1
		}
		return 1
	}
	switch {
	case a.Number == nil && b.Number == nil:
		return 0
	case a.Number == nil:
		return -1
	case b.Number == nil:
		return 1
	default:
		return compareU32(*a.Number, *b.Number)
	}
}
