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

// Package gomod renders a Zerv as a version string the Go module system
// will accept directly: either its own tag, when one applies cleanly, or a
// synthesized pseudo-version (the v0.0.0-yyyymmddhhmmss-abcdefabcdef
// shape) when it doesn't. This is additive tooling around the existing
// SemVer codec, not a new core transformation.
package gomod

import (
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	"zerv.dev/zerv/version/zerv"
	"zerv.dev/zerv/version/zerv/bridge"
)

// pseudoHashLen is the commit-hash prefix length cmd/go uses in a
// pseudo-version (distinct from vcs.HashShortLen, the VCS probe's own
// abbreviation length).
const pseudoHashLen = 12

// PseudoVersion renders z as a version string go get will accept: the
// canonical tag form "vMAJOR.MINOR.PATCH[-PRERELEASE]" when z's Distance is 0
// and z is not dirty, otherwise the "v0.0.0-yyyymmddhhmmss-abcdefabcdef"
// pseudo-version shape built from z's timestamp and commit hash.
func PseudoVersion(z zerv.Zerv) (string, error) {
	if z.Vars.Distance == 0 && !z.Vars.Dirty {
		tag := "v" + bridge.ToSemVer(z.Vars).String()
		if !semver.IsValid(tag) {
			return "", fmt.Errorf("gomod: rendered tag %q is not a valid Go module version", tag)
		}
		return semver.Canonical(tag), nil
	}

	hash := z.Vars.CommitHash.String()
	if len(hash) < pseudoHashLen {
		return "", fmt.Errorf("gomod: commit hash %q is too short for a pseudo-version (need %d hex chars)", hash, pseudoHashLen)
	}

	stamp := time.Unix(z.Vars.Timestamp, 0).UTC().Format("20060102150405")
	pseudo := fmt.Sprintf("v0.0.0-%s-%s", stamp, hash[:pseudoHashLen])
	if !semver.IsValid(pseudo) {
		return "", fmt.Errorf("gomod: synthesized pseudo-version %q is not valid", pseudo)
	}
	return semver.Canonical(pseudo), nil
}
