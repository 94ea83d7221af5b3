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

// Package vcs holds the value types that make up VcsData, the record the
// version engine consumes from an external VCS probe. Nothing in this
// package talks to a repository; it only validates and stores scalars.
package vcs

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"zerv.dev/zerv/dxcore/model"
	"gopkg.in/yaml.v3"
)

const (
	// HashHexSizeSHA1 is the canonical hex length of a SHA-1 commit id.
	HashHexSizeSHA1 = 40
	// HashHexSizeSHA256 is the canonical hex length of a SHA-256 commit id.
	HashHexSizeSHA256 = 64
	// HashShortLen is the default abbreviated-hash display length.
	HashShortLen = 7
)

var hashHexRegexp = regexp.MustCompile(`^(?:[0-9a-f]{40}|[0-9a-f]{64})$`)

// Hash is a full, canonical Git commit object id: lowercase hex, exactly 40
// (SHA-1) or 64 (SHA-256) characters. The zero value (empty string) is valid
// and means "no commit id attached" — the natural state for a Zerv built
// without VCS data.
type Hash string

// ParseHash normalizes (trim, lowercase) and validates a commit id string.
func ParseHash(s string) (Hash, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	h := Hash(normalized)
	if err := h.Validate(); err != nil {
		return "", fmt.Errorf("invalid hash: %w", err)
	}
	return h, nil
}

func (h Hash) String() string   { return string(h) }
func (h Hash) Redacted() string { return h.Short() }
func (h Hash) TypeName() string { return "Hash" }
func (h Hash) IsZero() bool     { return h == "" }
func (h Hash) Equal(other Hash) bool { return h == other }

// Short returns the first HashShortLen characters, or the full value if it
// is already shorter (which only happens for an invalid or zero Hash).
func (h Hash) Short() string {
	str := string(h)
	if len(str) < HashShortLen {
		return str
	}
	return str[:HashShortLen]
}

// IsSHA1 reports a 40-character id (length check only, not content).
func (h Hash) IsSHA1() bool { return len(h) == HashHexSizeSHA1 }

// IsSHA256 reports a 64-character id (length check only, not content).
func (h Hash) IsSHA256() bool { return len(h) == HashHexSizeSHA256 }

// Validate accepts the zero value or a canonical 40/64-char lowercase hex id.
func (h Hash) Validate() error {
	if h.IsZero() {
		return nil
	}
	str := string(h)
	if len(str) != HashHexSizeSHA1 && len(str) != HashHexSizeSHA256 {
		return fmt.Errorf("Hash %q has invalid length: %d (expected %d or %d)", str, len(str), HashHexSizeSHA1, HashHexSizeSHA256)
	}
	if !hashHexRegexp.MatchString(str) {
		return fmt.Errorf("Hash %q contains invalid characters (must be lowercase hex)", str)
	}
	return nil
}

func (h Hash) MarshalJSON() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", h.TypeName(), err)
	}
	return json.Marshal(string(h))
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	parsed, err := ParseHash(str)
	if err != nil {
		return fmt.Errorf("unmarshaled Hash is invalid: %w", err)
	}
	*h = parsed
	return nil
}

func (h Hash) MarshalYAML() (interface{}, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", h.TypeName(), err)
	}
	return string(h), nil
}

func (h *Hash) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	parsed, err := ParseHash(str)
	if err != nil {
		return fmt.Errorf("unmarshaled Hash is invalid: %w", err)
	}
	*h = parsed
	return nil
}

var _ model.Model = (*Hash)(nil)

// ShortHash is an abbreviated commit id: 1-64 lowercase hex characters.
// VcsData carries these alongside the full Hash (commit_hash_prefix,
// commit_hash_short) as supplied by the external probe.
type ShortHash string

var shortHashRegexp = regexp.MustCompile(`^[0-9a-f]{1,64}$`)

func ParseShortHash(s string) (ShortHash, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	sh := ShortHash(normalized)
	if err := sh.Validate(); err != nil {
		return "", fmt.Errorf("invalid short hash: %w", err)
	}
	return sh, nil
}

func (sh ShortHash) String() string        { return string(sh) }
func (sh ShortHash) Redacted() string      { return string(sh) }
func (sh ShortHash) TypeName() string      { return "ShortHash" }
func (sh ShortHash) IsZero() bool          { return sh == "" }
func (sh ShortHash) Equal(other ShortHash) bool { return sh == other }

func (sh ShortHash) Validate() error {
	if sh.IsZero() {
		return nil
	}
	if !shortHashRegexp.MatchString(string(sh)) {
		return fmt.Errorf("ShortHash %q must be 1-64 lowercase hex characters", string(sh))
	}
	return nil
}

func (sh ShortHash) MarshalJSON() ([]byte, error) {
	if err := sh.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", sh.TypeName(), err)
	}
	return json.Marshal(string(sh))
}

func (sh *ShortHash) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	parsed, err := ParseShortHash(str)
	if err != nil {
		return fmt.Errorf("unmarshaled ShortHash is invalid: %w", err)
	}
	*sh = parsed
	return nil
}

func (sh ShortHash) MarshalYAML() (interface{}, error) {
	if err := sh.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", sh.TypeName(), err)
	}
	return string(sh), nil
}

func (sh *ShortHash) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	parsed, err := ParseShortHash(str)
	if err != nil {
		return fmt.Errorf("unmarshaled ShortHash is invalid: %w", err)
	}
	*sh = parsed
	return nil
}

var _ model.Model = (*ShortHash)(nil)
