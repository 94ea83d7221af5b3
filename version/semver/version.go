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

// Package semver implements the SemVer 2.0.0 codec (https://semver.org):
// parsing, canonical rendering, and precedence comparison. Pre-release
// identifiers are kept structured (numeric vs. alphanumeric), not as an
// opaque string, so the bump/override engine and the zerv bridge can
// inspect and rewrite individual identifiers.
package semver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	bsemver "github.com/blang/semver/v4"

	dxerrors "zerv.dev/zerv/dxcore/errors"
	"gopkg.in/yaml.v3"
)

// Identifier is a single dot-separated pre-release component. Per SemVer
// 2.0.0, an identifier is either a non-negative integer with no leading
// zero, or an ASCII alphanumeric-and-hyphen string; the two kinds compare
// differently (numeric identifiers always sort before alphanumeric ones).
type Identifier struct {
	IsNumeric bool
	Num       uint64
	Str       string
}

func (id Identifier) String() string {
	if id.IsNumeric {
		return strconv.FormatUint(id.Num, 10)
	}
	return id.Str
}

// Compare orders id against other per SemVer 2.0.0 identifier precedence:
// numeric identifiers compare numerically, string identifiers compare
// lexically (ASCII byte order), and numeric identifiers always have lower
// precedence than non-numeric ones.
func (id Identifier) Compare(other Identifier) int {
	if id.IsNumeric && other.IsNumeric {
		switch {
		case id.Num < other.Num:
			return -1
		case id.Num > other.Num:
			return 1
		default:
			return 0
		}
	}
	if id.IsNumeric && !other.IsNumeric {
		return -1
	}
	if !id.IsNumeric && other.IsNumeric {
		return 1
	}
	return strings.Compare(id.Str, other.Str)
}

func parseIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, fmt.Errorf("identifier must not be empty")
	}
	if isDigitsOnly(s) {
		if len(s) > 1 && s[0] == '0' {
			return Identifier{}, fmt.Errorf("numeric identifier %q must not have leading zero", s)
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Identifier{}, fmt.Errorf("numeric identifier %q out of range: %w", s, err)
		}
		return Identifier{IsNumeric: true, Num: n}, nil
	}
	for _, r := range s {
		if !isAlnumHyphen(r) {
			return Identifier{}, fmt.Errorf("identifier %q contains invalid character %q", s, r)
		}
	}
	return Identifier{Str: s}, nil
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlnumHyphen(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-'
}

// Version is a parsed SemVer 2.0.0 version: a numeric release triple, a
// structured pre-release identifier chain, and opaque build metadata
// (ignored for precedence, per spec). The zero value is 0.0.0.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   []Identifier
	Build []string
}

// ParseVersion parses s as a SemVer 2.0.0 version. A single leading "v" or
// "V" is tolerated and stripped before parsing, matching common tag
// conventions.
func ParseVersion(s string) (Version, error) {
	trimmed := s
	if len(trimmed) > 0 && (trimmed[0] == 'v' || trimmed[0] == 'V') {
		trimmed = trimmed[1:]
	}
	bv, err := bsemver.Parse(trimmed)
	if err != nil {
		return Version{}, fmt.Errorf("invalid SemVer version %q: %w", s, err)
	}

	pre := make([]Identifier, len(bv.Pre))
	for i, p := range bv.Pre {
		if p.IsNum {
			pre[i] = Identifier{IsNumeric: true, Num: p.VersionNum}
		} else {
			pre[i] = Identifier{Str: p.VersionStr}
		}
	}

	build := append([]string(nil), bv.Build...)

	return Version{
		Major: bv.Major,
		Minor: bv.Minor,
		Patch: bv.Patch,
		Pre:   pre,
		Build: build,
	}, nil
}

// String renders the canonical "Major.Minor.Patch[-pre.release][+build]" form.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if len(v.Pre) > 0 {
		parts := make([]string, len(v.Pre))
		for i, p := range v.Pre {
			parts[i] = p.String()
		}
		s += "-" + strings.Join(parts, ".")
	}
	if len(v.Build) > 0 {
		s += "+" + strings.Join(v.Build, ".")
	}
	return s
}

// Validate checks that every pre-release and build identifier is well-formed.
func (v Version) Validate() error {
	for i, p := range v.Pre {
		if p.IsNumeric {
			continue
		}
		if p.Str == "" {
			return fmt.Errorf("pre-release identifier %d must not be empty", i)
		}
		for _, r := range p.Str {
			if !isAlnumHyphen(r) {
				return fmt.Errorf("pre-release identifier %d (%q) contains invalid character %q", i, p.Str, r)
			}
		}
	}
	for i, b := range v.Build {
		if b == "" {
			return fmt.Errorf("build identifier %d must not be empty", i)
		}
		for _, r := range b {
			if !isAlnumHyphen(r) {
				return fmt.Errorf("build identifier %d (%q) contains invalid character %q", i, b, r)
			}
		}
	}
	return nil
}

// IsZero reports whether v is exactly 0.0.0 with no pre-release or build metadata.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && len(v.Pre) == 0 && len(v.Build) == 0
}

// Compare orders v against other per SemVer 2.0.0 precedence: release
// triple first, then pre-release identifier chain (a version with a
// pre-release has lower precedence than one without); build metadata is
// ignored entirely.
func (v Version) Compare(other Version) int {
	if c := compareUint(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareUint(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case len(v.Pre) == 0 && len(other.Pre) == 0:
		return 0
	case len(v.Pre) == 0:
		return 1
	case len(other.Pre) == 0:
		return -1
	}

	for i := 0; i < len(v.Pre) && i < len(other.Pre); i++ {
		if c := v.Pre[i].Compare(other.Pre[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(v.Pre), len(other.Pre))
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
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

func (v Version) Less(other Version) bool    { return v.Compare(other) < 0 }
func (v Version) Equal(other Version) bool   { return v.Compare(other) == 0 }
func (v Version) Greater(other Version) bool { return v.Compare(other) > 0 }

func (v Version) TypeName() string { return "Version" }
func (v Version) Redacted() string { return v.String() }

func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Version) MarshalYAML() (interface{}, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: nil, Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
