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

// Package zerv implements the neutral internal version model (spec C1):
// a variable store (Vars) plus a schema describing how those variables are
// arranged into core/extra_core/build sections and ordered for precedence.
package zerv

import (
	"fmt"

	"zerv.dev/zerv/vcs"
)

// VarKind names one slot in the Vars store. Schemas reference vars by kind,
// never by struct field, so the same store can be rendered through several
// different schemas.
type VarKind int

const (
	VarNone VarKind = iota
	VarMajor
	VarMinor
	VarPatch
	VarEpoch
	VarPreReleaseLabel
	VarPreReleaseNumber
	VarPost
	VarDev
	VarBranch
	VarDistance
	VarDirty
	VarCommitHash
	VarCommitHashShort
	VarTimestamp
	VarLastBranch
	VarLastCommitHash
	VarLastCommitHashShort
	VarLastTimestamp
	VarCustom
)

func (k VarKind) String() string {
	switch k {
	case VarMajor:
		return "major"
	case VarMinor:
		return "minor"
	case VarPatch:
		return "patch"
	case VarEpoch:
		return "epoch"
	case VarPreReleaseLabel:
		return "pre_release_label"
	case VarPreReleaseNumber:
		return "pre_release_number"
	case VarPost:
		return "post"
	case VarDev:
		return "dev"
	case VarBranch:
		return "branch"
	case VarDistance:
		return "distance"
	case VarDirty:
		return "dirty"
	case VarCommitHash:
		return "commit_hash"
	case VarCommitHashShort:
		return "commit_hash_short"
	case VarTimestamp:
		return "timestamp"
	case VarLastBranch:
		return "last_branch"
	case VarLastCommitHash:
		return "last_commit_hash"
	case VarLastCommitHashShort:
		return "last_commit_hash_short"
	case VarLastTimestamp:
		return "last_timestamp"
	case VarCustom:
		return "custom"
	default:
		return "none"
	}
}

// ParseVarKind is String's inverse, used by the custom schema body parser to
// accept a textual field name ("major", "pre_release_label", ...). It never
// matches "custom" — a custom field is named by its key, not this kind name,
// so callers recognize it separately.
func ParseVarKind(s string) (VarKind, error) {
	for k := VarMajor; k <= VarLastTimestamp; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return VarNone, fmt.Errorf("zerv: unknown field %q", s)
}

// PreRelease is the (label, number) pair forming a pre-release marker, e.g.
// label="rc" number=1 renders as "rc1" (PEP 440) or "rc.1" (SemVer).
type PreRelease struct {
	Label  string
	Number *uint32
}

func (p PreRelease) IsZero() bool { return p.Label == "" && p.Number == nil }

// Vars is the variable store every schema component reads from. It is the
// union of everything a version string can be built from: numeric release
// core, epoch, pre-release/post/dev markers, and VCS-derived context.
// Vars carries no rendering logic itself — Component.Render interprets it
// according to the active schema.
type Vars struct {
	Major uint64
	Minor uint64
	Patch uint64

	Epoch uint64

	PreRelease PreRelease
	Post       *uint32
	Dev        *uint32

	Branch          string
	Distance        uint32
	Dirty           bool
	CommitHash      vcs.Hash
	CommitHashShort vcs.ShortHash
	Timestamp       int64

	// LastBranch, LastCommitHash, LastCommitHashShort and LastTimestamp
	// describe the VCS state at the last reachable tag, as opposed to the
	// Branch/CommitHash/CommitHashShort/Timestamp fields above which
	// describe HEAD. A repository with no reachable tag leaves these zero.
	LastBranch          string
	LastCommitHash      vcs.Hash
	LastCommitHashShort vcs.ShortHash
	LastTimestamp       int64

	Custom map[string]string
}

// FromVcsData seeds a Vars release core from an existing tag (if any is
// parseable elsewhere; Vars itself stores only the VCS-derived fields) and
// copies the VCS context fields verbatim. The Last* fields describe the last
// reachable tag rather than HEAD; a repository has only one checked-out
// branch, so LastBranch falls back to the current branch when the probe
// carries no separate tag-branch record.
func FromVcsData(d vcs.Data) Vars {
	v := Vars{
		Distance:        d.Distance,
		Dirty:           d.Dirty(),
		CommitHash:      d.CommitHash,
		CommitHashShort: d.CommitHashShort,
		Timestamp:       d.CommitTimestamp,
		Custom:          map[string]string{},
	}
	if d.CurrentBranch != nil {
		v.Branch = d.CurrentBranch.String()
		v.LastBranch = d.CurrentBranch.String()
	}
	if d.TagCommitHash != nil {
		v.LastCommitHash = *d.TagCommitHash
		short, err := vcs.ParseShortHash(d.TagCommitHash.Short())
		if err == nil {
			v.LastCommitHashShort = short
		}
	}
	if d.TagTimestamp != nil {
		v.LastTimestamp = *d.TagTimestamp
	}
	return v
}

func (v Vars) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Epoch == 0 &&
		v.PreRelease.IsZero() && v.Post == nil && v.Dev == nil &&
		v.Branch == "" && v.Distance == 0 && !v.Dirty &&
		v.CommitHash.IsZero() && len(v.Custom) == 0
}

// Clone returns a deep copy safe to mutate independently of v.
func (v Vars) Clone() Vars {
	clone := v
	if v.Post != nil {
		p := *v.Post
		clone.Post = &p
	}
	if v.Dev != nil {
		d := *v.Dev
		clone.Dev = &d
	}
	if v.PreRelease.Number != nil {
		n := *v.PreRelease.Number
		clone.PreRelease.Number = &n
	}
	if v.Custom != nil {
		clone.Custom = make(map[string]string, len(v.Custom))
		for k, val := range v.Custom {
			clone.Custom[k] = val
		}
	}
	return clone
}
