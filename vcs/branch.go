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
	"regexp"
	"strings"
	"unicode"

	"zerv.dev/zerv/dxcore/model"
	"gopkg.in/yaml.v3"
)

const (
	// BranchNameMinLen is the minimum number of runes in a non-zero BranchName.
	BranchNameMinLen = 1
	// BranchNameMaxLen bounds reference names to a practical serialization size.
	BranchNameMaxLen = 256
)

// branchNamePattern is intentionally permissive: it accepts the branch and
// tag name shapes Git itself allows, not just a conservative subset.
const branchNamePattern = `^[a-zA-Z0-9._/@{}\-^~:]+$`

var branchNameRegexp = regexp.MustCompile(branchNamePattern)

// BranchName is the symbolic branch (or tag) name a VCS probe resolves the
// current checkout to. It feeds the Zerv `branch` var and the schema's
// smart build-tail rule. The zero value means "no branch known" — the
// engine still renders, it just omits branch-derived vars.
type BranchName string

// ParseBranchName trims whitespace and validates s. An empty result after
// trimming is the valid zero value.
func ParseBranchName(s string) (BranchName, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return BranchName(""), nil
	}
	bn := BranchName(normalized)
	if err := bn.Validate(); err != nil {
		return "", fmt.Errorf("invalid BranchName: %w", err)
	}
	return bn, nil
}

var _ model.Model = (*BranchName)(nil)

func (bn BranchName) String() string   { return string(bn) }
func (bn BranchName) Redacted() string { return string(bn) }
func (bn BranchName) TypeName() string { return "BranchName" }
func (bn BranchName) IsZero() bool     { return bn == "" }
func (bn BranchName) Equal(other BranchName) bool { return bn == other }

// Validate enforces length bounds, the permissive character set, and
// rejects control characters and non-ASCII runes. It does not enforce
// git-check-ref-format's stricter rules (no "..", no trailing "/"), since
// BranchName also carries revision expressions like HEAD~1.
func (bn BranchName) Validate() error {
	if bn.IsZero() {
		return nil
	}
	str := string(bn)
	if strings.TrimSpace(str) != str {
		return fmt.Errorf("BranchName %q contains leading or trailing whitespace", str)
	}
	runeCount := len([]rune(str))
	if runeCount < BranchNameMinLen {
		return fmt.Errorf("BranchName %q is too short: %d runes (minimum %d)", str, runeCount, BranchNameMinLen)
	}
	if runeCount > BranchNameMaxLen {
		return fmt.Errorf("BranchName %q is too long: %d runes (maximum %d)", str, runeCount, BranchNameMaxLen)
	}
	if !branchNameRegexp.MatchString(str) {
		return fmt.Errorf("BranchName %q contains invalid characters (must match pattern %s)", str, branchNamePattern)
	}
	for _, r := range str {
		if unicode.IsControl(r) {
			return fmt.Errorf("BranchName %q contains control character (U+%04X)", str, r)
		}
		if r > unicode.MaxASCII {
			return fmt.Errorf("BranchName %q contains non-ASCII character %q (U+%04X)", str, r, r)
		}
	}
	return nil
}

func (bn BranchName) MarshalJSON() ([]byte, error) {
	if err := bn.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", bn.TypeName(), err)
	}
	return json.Marshal(string(bn))
}

func (bn *BranchName) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON into %s: %w", bn.TypeName(), err)
	}
	parsed, err := ParseBranchName(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", bn.TypeName(), err)
	}
	*bn = parsed
	return nil
}

func (bn BranchName) MarshalYAML() (interface{}, error) {
	if err := bn.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", bn.TypeName(), err)
	}
	type branchName BranchName
	return branchName(bn), nil
}

func (bn *BranchName) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML into %s: %w", bn.TypeName(), err)
	}
	parsed, err := ParseBranchName(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", bn.TypeName(), err)
	}
	*bn = parsed
	return nil
}
