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

package vcs

import (
	"fmt"

	"zerv.dev/zerv/dxcore/model"
)

// Data is the flat record a VCS probe hands to the pipeline (spec §3.3,
// §6.1). The engine never talks to a repository itself; it only consumes
// this struct. Pointer fields are optional and nil when the probe could not
// determine them (e.g. TagVersion is nil on an untagged repository).
type Data struct {
	// TagVersion is the version string of the most recent reachable tag,
	// unparsed. Nil when no tag is reachable from HEAD.
	TagVersion *string `json:"tag_version,omitempty" yaml:"tag_version,omitempty"`

	// Distance is the number of commits between TagVersion's commit and
	// HEAD. Zero when HEAD is the tagged commit itself or no tag exists.
	Distance uint32 `json:"distance" yaml:"distance"`

	// CommitHash is HEAD's full commit id.
	CommitHash Hash `json:"commit_hash" yaml:"commit_hash"`
	// CommitHashPrefix is a short, caller-chosen-length abbreviation of
	// CommitHash (distinct from CommitHashShort, which uses the probe's
	// own default abbreviation length).
	CommitHashPrefix ShortHash `json:"commit_hash_prefix" yaml:"commit_hash_prefix"`
	// CommitHashShort is CommitHash abbreviated to the probe's default length.
	CommitHashShort ShortHash `json:"commit_hash_short" yaml:"commit_hash_short"`

	// CurrentBranch is the symbolic name of the checked-out branch, nil in
	// detached-HEAD states.
	CurrentBranch *BranchName `json:"current_branch,omitempty" yaml:"current_branch,omitempty"`

	// CommitTimestamp is HEAD's commit time, Unix seconds UTC.
	CommitTimestamp int64 `json:"commit_timestamp" yaml:"commit_timestamp"`
	// TagTimestamp is the tagged commit's time, nil when TagVersion is nil.
	TagTimestamp *int64 `json:"tag_timestamp,omitempty" yaml:"tag_timestamp,omitempty"`
	// TagCommitHash is the full commit id TagVersion points at, nil when
	// TagVersion is nil.
	TagCommitHash *Hash `json:"tag_commit_hash,omitempty" yaml:"tag_commit_hash,omitempty"`

	// IsDirty reports uncommitted working-tree changes. When WorktreeStatus
	// is present, Dirty() prefers its three-flag breakdown over this plain
	// summary bool; probes that can only report a yes/no answer still work
	// by setting IsDirty alone.
	IsDirty bool `json:"is_dirty" yaml:"is_dirty"`

	// WorktreeStatus is the optional richer breakdown of IsDirty (unstaged
	// vs. staged vs. untracked changes). Nil when the probe only reports the
	// plain bool.
	WorktreeStatus *WorktreeStatus `json:"worktree_status,omitempty" yaml:"worktree_status,omitempty"`
}

// Dirty reports whether the working tree has any uncommitted changes,
// preferring WorktreeStatus's three-flag breakdown over the plain IsDirty
// bool when both are present.
func (d Data) Dirty() bool {
	if d.WorktreeStatus != nil {
		return !d.WorktreeStatus.Clean()
	}
	return d.IsDirty
}

func (d Data) String() string {
	tag := "none"
	if d.TagVersion != nil {
		tag = *d.TagVersion
	}
	return fmt.Sprintf("vcs.Data{tag=%s distance=%d hash=%s dirty=%v}", tag, d.Distance, d.CommitHashShort, d.Dirty())
}

func (d Data) Redacted() string { return d.String() }
func (d Data) TypeName() string { return "Data" }

// IsZero reports the probe-absent state: no hash, no tag, no branch.
func (d Data) IsZero() bool {
	return d.CommitHash.IsZero() && d.TagVersion == nil && d.CurrentBranch == nil && d.Distance == 0 && !d.Dirty()
}

// Validate checks field-level invariants: Hash/ShortHash/BranchName values
// must each be well-formed, and a tag implies its timestamp and commit hash
// are present.
func (d Data) Validate() error {
	if err := d.CommitHash.Validate(); err != nil {
		return fmt.Errorf("commit_hash: %w", err)
	}
	if err := d.CommitHashPrefix.Validate(); err != nil {
		return fmt.Errorf("commit_hash_prefix: %w", err)
	}
	if err := d.CommitHashShort.Validate(); err != nil {
		return fmt.Errorf("commit_hash_short: %w", err)
	}
	if d.CurrentBranch != nil {
		if err := d.CurrentBranch.Validate(); err != nil {
			return fmt.Errorf("current_branch: %w", err)
		}
	}
	if d.TagVersion != nil {
		if d.TagTimestamp == nil {
			return fmt.Errorf("tag_version is set but tag_timestamp is nil")
		}
		if d.TagCommitHash == nil {
			return fmt.Errorf("tag_version is set but tag_commit_hash is nil")
		}
		if err := d.TagCommitHash.Validate(); err != nil {
			return fmt.Errorf("tag_commit_hash: %w", err)
		}
	}
	return nil
}

var _ model.Model = (*Data)(nil)
