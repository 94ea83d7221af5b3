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
	"encoding/json"
	"fmt"
	"strings"

	"zerv.dev/zerv/dxcore/errors"
	"zerv.dev/zerv/dxcore/model"
	"gopkg.in/yaml.v3"
)

// WorktreeStatus is the richer three-flag breakdown a probe may report
// behind Data's plain IsDirty bool: unstaged changes to tracked files,
// staged-but-uncommitted changes, and untracked files. Any combination is
// valid; the zero value is a clean tree.
type WorktreeStatus struct {
	HasUnstaged  bool `json:"has_unstaged" yaml:"has_unstaged"`
	HasStaged    bool `json:"has_staged" yaml:"has_staged"`
	HasUntracked bool `json:"has_untracked" yaml:"has_untracked"`
}

func NewWorktreeStatus(hasUnstaged, hasStaged, hasUntracked bool) WorktreeStatus {
	return WorktreeStatus{HasUnstaged: hasUnstaged, HasStaged: hasStaged, HasUntracked: hasUntracked}
}

var _ model.Model = (*WorktreeStatus)(nil)

// Clean reports whether none of the three flags are set.
func (ws WorktreeStatus) Clean() bool {
	return !ws.HasUnstaged && !ws.HasStaged && !ws.HasUntracked
}

// String renders "clean" or a comma-joined list of the set flags
// ("unstaged, staged").
func (ws WorktreeStatus) String() string {
	if ws.Clean() {
		return "clean"
	}
	var parts []string
	if ws.HasUnstaged {
		parts = append(parts, "unstaged")
	}
	if ws.HasStaged {
		parts = append(parts, "staged")
	}
	if ws.HasUntracked {
		parts = append(parts, "untracked")
	}
	return strings.Join(parts, ", ")
}

func (ws WorktreeStatus) Redacted() string { return ws.String() }
func (ws WorktreeStatus) TypeName() string { return "WorktreeStatus" }
func (ws WorktreeStatus) IsZero() bool     { return ws.Clean() }

func (ws WorktreeStatus) Equal(other WorktreeStatus) bool {
	return ws == other
}

// Validate always succeeds: every combination of the three flags is a valid
// working-tree state.
func (ws WorktreeStatus) Validate() error { return nil }

func (ws WorktreeStatus) MarshalJSON() ([]byte, error) {
	type wire WorktreeStatus
	return json.Marshal(wire(ws))
}

func (ws *WorktreeStatus) UnmarshalJSON(data []byte) error {
	type wire WorktreeStatus
	var tmp wire
	if err := json.Unmarshal(data, &tmp); err != nil {
		return &errors.UnmarshalError{Type: ws.TypeName(), Data: data, Reason: err.Error()}
	}
	*ws = WorktreeStatus(tmp)
	return nil
}

func (ws WorktreeStatus) MarshalYAML() (interface{}, error) {
	type wire WorktreeStatus
	return wire(ws), nil
}

func (ws *WorktreeStatus) UnmarshalYAML(node *yaml.Node) error {
	type wire WorktreeStatus
	var tmp wire
	if err := node.Decode(&tmp); err != nil {
		return &errors.UnmarshalError{Type: ws.TypeName(), Data: []byte(fmt.Sprintf("%v", node)), Reason: err.Error()}
	}
	*ws = WorktreeStatus(tmp)
	return nil
}
