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

// Package format defines Format, the enum selecting which codec a version
// string is read with and rendered through (spec §6.4 argument record).
package format

import (
	"encoding/json"

	dxerrors "zerv.dev/zerv/dxcore/errors"
	"zerv.dev/zerv/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Format selects the input/output version grammar.
type Format int

const (
	// Auto detects the format from the input string's shape (tried in
	// order: SemVer, then PEP 440).
	Auto Format = iota
	// SemVer selects the SemVer 2.0.0 codec.
	SemVer
	// PEP440 selects the PEP 440 codec.
	PEP440
	// Zerv selects the native zerv serialized form.
	Zerv
)

const (
	AutoStr   = "auto"
	SemVerStr = "semver"
	PEP440Str = "pep440"
	ZervStr   = "zerv"
)

var _ model.Model = (*Format)(nil)

func (f Format) String() string {
	switch f {
	case Auto:
		return AutoStr
	case SemVer:
		return SemVerStr
	case PEP440:
		return PEP440Str
	case Zerv:
		return ZervStr
	default:
		return "unknown"
	}
}

// ParseFormat resolves a case/separator-tolerant string into a Format value.
func ParseFormat(str string) (Format, error) {
	switch str {
	case AutoStr, "Auto", "AUTO":
		return Auto, nil
	case SemVerStr, "SemVer", "SEMVER", "semantic":
		return SemVer, nil
	case PEP440Str, "PEP440", "pep-440", "PEP-440":
		return PEP440, nil
	case ZervStr, "Zerv", "ZERV":
		return Zerv, nil
	default:
		return Auto, &dxerrors.ParseError{Type: "Format", Value: str}
	}
}

func (f Format) Valid() bool {
	return f == Auto || f == SemVer || f == PEP440 || f == Zerv
}

func (f Format) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Format", Value: int(f)}
	}
	return []byte(`"` + f.String() + `"`), nil
}

func (f *Format) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &dxerrors.UnmarshalError{Type: "Format", Data: data, Reason: "empty data"}
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &dxerrors.UnmarshalError{Type: "Format", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseFormat(str)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &dxerrors.UnmarshalError{Type: "Format", Data: data, Reason: err.Error()}
	}
	*f = Format(i)
	if !f.Valid() {
		return &dxerrors.UnmarshalError{Type: "Format", Data: data, Reason: "invalid numeric value"}
	}
	return nil
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Format", Value: int(f)}
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Format) TypeName() string { return "Format" }
func (f Format) Redacted() string { return f.String() }
func (f Format) IsZero() bool     { return f == Auto }

func (f Format) Equal(other any) bool {
	switch v := other.(type) {
	case Format:
		return f == v
	case *Format:
		return v != nil && f == *v
	default:
		return false
	}
}

func (f Format) Validate() error {
	if !f.Valid() {
		return &dxerrors.MarshalError{Type: "Format", Value: int(f)}
	}
	return nil
}

func (f Format) MarshalYAML() (any, error) {
	if !f.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Format", Value: int(f)}
	}
	return f.String(), nil
}

func (f *Format) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: "Format", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseFormat(str)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
