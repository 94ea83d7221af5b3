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

// Package bump implements the name-addressed and index-addressed
// override/bump engine (spec §4.6): named semantic targets first, then
// numeric section-index operations, both feeding into the precedence
// cascade that zeroes lower-precedence vars on a bump.
package bump

import (
	"encoding/json"

	dxerrors "zerv.dev/zerv/dxcore/errors"
	"zerv.dev/zerv/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Target names a semantic var a caller can bump by name, independent of
// its position in any particular schema.
type Target int

const (
	TargetNone Target = iota
	TargetMajor
	TargetMinor
	TargetPatch
	TargetEpoch
	TargetPreReleaseNum
	TargetPost
	TargetDev
)

const (
	TargetNoneStr          = "none"
	TargetMajorStr         = "major"
	TargetMinorStr         = "minor"
	TargetPatchStr         = "patch"
	TargetEpochStr         = "epoch"
	TargetPreReleaseNumStr = "pre-release"
	TargetPostStr          = "post"
	TargetDevStr           = "dev"
)

var _ model.Model = (*Target)(nil)

// String returns the canonical kebab-case name used in CLI flags and
// serialized bump specs.
func (t Target) String() string {
	switch t {
	case TargetNone:
		return TargetNoneStr
	case TargetMajor:
		return TargetMajorStr
	case TargetMinor:
		return TargetMinorStr
	case TargetPatch:
		return TargetPatchStr
	case TargetEpoch:
		return TargetEpochStr
	case TargetPreReleaseNum:
		return TargetPreReleaseNumStr
	case TargetPost:
		return TargetPostStr
	case TargetDev:
		return TargetDevStr
	default:
		return "unknown"
	}
}

// ParseTarget resolves a case/separator-tolerant string into a Target.
func ParseTarget(str string) (Target, error) {
	switch str {
	case TargetNoneStr, "None", "NONE":
		return TargetNone, nil
	case TargetMajorStr, "Major", "MAJOR":
		return TargetMajor, nil
	case TargetMinorStr, "Minor", "MINOR":
		return TargetMinor, nil
	case TargetPatchStr, "Patch", "PATCH":
		return TargetPatch, nil
	case TargetEpochStr, "Epoch", "EPOCH":
		return TargetEpoch, nil
	case TargetPreReleaseNumStr, "pre_release", "prerelease", "PreRelease":
		return TargetPreReleaseNum, nil
	case TargetPostStr, "Post", "POST":
		return TargetPost, nil
	case TargetDevStr, "Dev", "DEV":
		return TargetDev, nil
	default:
		return TargetNone, &dxerrors.ParseError{Type: "Target", Value: str}
	}
}

func (t Target) Valid() bool {
	return t >= TargetNone && t <= TargetDev
}

func (t Target) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Target", Value: int(t)}
	}
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Target) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &dxerrors.UnmarshalError{Type: "Target", Data: data, Reason: "empty data"}
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &dxerrors.UnmarshalError{Type: "Target", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseTarget(str)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &dxerrors.UnmarshalError{Type: "Target", Data: data, Reason: err.Error()}
	}
	*t = Target(i)
	if !t.Valid() {
		return &dxerrors.UnmarshalError{Type: "Target", Data: data, Reason: "invalid numeric value"}
	}
	return nil
}

func (t Target) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Target", Value: int(t)}
	}
	return []byte(t.String()), nil
}

func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Target) TypeName() string { return "Target" }
func (t Target) Redacted() string { return t.String() }
func (t Target) IsZero() bool     { return t == TargetNone }

func (t Target) Equal(other any) bool {
	switch v := other.(type) {
	case Target:
		return t == v
	case *Target:
		return v != nil && t == *v
	default:
		return false
	}
}

func (t Target) Validate() error {
	if !t.Valid() {
		return &dxerrors.MarshalError{Type: "Target", Value: int(t)}
	}
	return nil
}

func (t Target) MarshalYAML() (any, error) {
	if !t.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Target", Value: int(t)}
	}
	return t.String(), nil
}

func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: "Target", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseTarget(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
