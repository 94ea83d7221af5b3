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

// Package bridge converts between the neutral Zerv model and the two
// concrete codecs (SemVer, PEP 440), per spec C4/C5. Each direction is a
// pure mapping over Vars; neither bridge renders or parses text itself —
// that stays the job of version/semver and version/pep440.
package bridge

import (
	"strconv"

	"zerv.dev/zerv/version/semver"
	"zerv.dev/zerv/version/zerv"
)

// FromSemVer maps a parsed SemVer Version onto a fresh Vars store using the
// standard schema's var layout. The first pre-release identifier, if
// non-numeric, becomes the pre-release label; a following numeric
// identifier becomes the pre-release number. Any further identifiers, and
// all build metadata, are preserved verbatim via Custom entries so a
// round-trip through ToSemVer reproduces the original string.
func FromSemVer(v semver.Version) zerv.Vars {
	vars := zerv.Vars{
		Major:  v.Major,
		Minor:  v.Minor,
		Patch:  v.Patch,
		Custom: map[string]string{},
	}

	if len(v.Pre) > 0 {
		i := 0
		if !v.Pre[0].IsNumeric {
			vars.PreRelease.Label = v.Pre[0].Str
			i = 1
		}
		if i < len(v.Pre) && v.Pre[i].IsNumeric {
			n := uint32(v.Pre[i].Num)
			vars.PreRelease.Number = &n
			i++
		}
		if i < len(v.Pre) {
			vars.Custom["semver_pre_extra"] = joinIdentifiers(v.Pre[i:])
		}
	}
	if len(v.Build) > 0 {
		vars.Custom["semver_build"] = joinStrings(v.Build)
	}
	return vars
}

// ToSemVer maps a Vars store back onto a SemVer Version. Custom entries
// stashed by FromSemVer ("semver_pre_extra", "semver_build") are restored
// verbatim when present. SemVer has no native post/dev release concept, so
// a set Post or Dev marker is carried as a trailing "post.N" / "dev.N"
// identifier pair, the convention scenario B of the testable properties
// exercises. When no build metadata was stashed by a prior parse, a
// non-zero Distance synthesizes one from (branch, distance, short hash),
// matching the VCS-derived build tail the schema engine's smart build-tail
// rule renders for the native zerv form.
func ToSemVer(v zerv.Vars) semver.Version {
	out := semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}

	if v.PreRelease.Label != "" {
		out.Pre = append(out.Pre, semver.Identifier{Str: v.PreRelease.Label})
	}
	if v.PreRelease.Number != nil {
		out.Pre = append(out.Pre, semver.Identifier{IsNumeric: true, Num: uint64(*v.PreRelease.Number)})
	}
	if extra, ok := v.Custom["semver_pre_extra"]; ok && extra != "" {
		out.Pre = append(out.Pre, splitIdentifiers(extra)...)
	}
	if v.Post != nil {
		out.Pre = append(out.Pre, semver.Identifier{Str: "post"}, semver.Identifier{IsNumeric: true, Num: uint64(*v.Post)})
	}
	if v.Dev != nil {
		out.Pre = append(out.Pre, semver.Identifier{Str: "dev"}, semver.Identifier{IsNumeric: true, Num: uint64(*v.Dev)})
	}

	if build, ok := v.Custom["semver_build"]; ok && build != "" {
		out.Build = splitStrings(build)
	} else if v.Distance > 0 || v.Dirty {
		out.Build = vcsBuildTail(v)
	}
	return out
}

// vcsBuildTail renders the conventional (branch, distance, short-hash)
// build-metadata tail, skipping any field the VCS probe left empty.
func vcsBuildTail(v zerv.Vars) []string {
	var parts []string
	if v.Branch != "" {
		parts = append(parts, v.Branch)
	}
	if v.Distance > 0 {
		parts = append(parts, strconv.FormatUint(uint64(v.Distance), 10))
	}
	if sh := v.CommitHashShort.String(); sh != "" {
		parts = append(parts, sh)
	}
	return parts
}

func joinIdentifiers(ids []semver.Identifier) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return joinDot(parts)
}

func splitIdentifiers(s string) []semver.Identifier {
	parts := splitDot(s)
	ids := make([]semver.Identifier, len(parts))
	for i, p := range parts {
		if n, ok := parseUintStrict(p); ok {
			ids[i] = semver.Identifier{IsNumeric: true, Num: n}
		} else {
			ids[i] = semver.Identifier{Str: p}
		}
	}
	return ids
}

func joinStrings(ss []string) string { return joinDot(ss) }
func splitStrings(s string) []string { return splitDot(s) }
