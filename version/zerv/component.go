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

package zerv

import (
	"fmt"
	"strconv"
)

// ComponentKind tags the four shapes a schema section slot can take
// (grounded on original_source's bump/schema.rs dispatch over
// VarField/String/Integer/VarTimestamp component types).
type ComponentKind int

const (
	ComponentVarField ComponentKind = iota
	ComponentString
	ComponentInteger
	ComponentTimestamp
)

// Component is one slot in a schema's core, extra_core, or build section.
// A schema is just an ordered list of Components per section; rendering
// walks the list and asks each Component to produce its text given a Vars
// store.
type Component struct {
	Kind ComponentKind

	// Var is read when Kind == ComponentVarField.
	Var VarKind
	// CustomKey names the Vars.Custom entry when Var == VarCustom.
	CustomKey string

	// Literal is used verbatim when Kind == ComponentString.
	Literal string
	// IntLiteral is used verbatim when Kind == ComponentInteger.
	IntLiteral int64

	// TimestampFormat is a calendar preset name (see ValidTimestampPatterns)
	// or a chrono-style "%"-format string applied to Vars.Timestamp when
	// Kind == ComponentTimestamp, per invariant S3.
	TimestampFormat string
}

func VarField(v VarKind) Component             { return Component{Kind: ComponentVarField, Var: v} }
func CustomField(key string) Component         { return Component{Kind: ComponentVarField, Var: VarCustom, CustomKey: key} }
func StringLiteral(s string) Component         { return Component{Kind: ComponentString, Literal: s} }
func IntegerLiteral(n int64) Component          { return Component{Kind: ComponentInteger, IntLiteral: n} }
func TimestampField(layout string) Component   { return Component{Kind: ComponentTimestamp, TimestampFormat: layout} }

// Render produces this component's text form against the given Vars. A
// VarField component that reads an unset optional var (Post, Dev,
// PreRelease) or a zero Epoch renders as the empty string, letting the caller's join logic
// decide whether to omit the slot entirely.
func (c Component) Render(v Vars) (string, error) {
	switch c.Kind {
	case ComponentString:
		return c.Literal, nil
	case ComponentInteger:
		return strconv.FormatInt(c.IntLiteral, 10), nil
	case ComponentTimestamp:
		return FormatTimestamp(v.Timestamp, c.TimestampFormat)
	case ComponentVarField:
		return c.renderVar(v)
	default:
		return "", fmt.Errorf("zerv: unknown component kind %d", c.Kind)
	}
}

func (c Component) renderVar(v Vars) (string, error) {
	switch c.Var {
	case VarMajor:
		return strconv.FormatUint(v.Major, 10), nil
	case VarMinor:
		return strconv.FormatUint(v.Minor, 10), nil
	case VarPatch:
		return strconv.FormatUint(v.Patch, 10), nil
	case VarEpoch:
		if v.Epoch == 0 {
			return "", nil
		}
		return strconv.FormatUint(v.Epoch, 10), nil
	case VarPreReleaseLabel:
		return v.PreRelease.Label, nil
	case VarPreReleaseNumber:
		if v.PreRelease.Number == nil {
			return "", nil
		}
		return strconv.FormatUint(uint64(*v.PreRelease.Number), 10), nil
	case VarPost:
		if v.Post == nil {
			return "", nil
		}
		return strconv.FormatUint(uint64(*v.Post), 10), nil
	case VarDev:
		if v.Dev == nil {
			return "", nil
		}
		return strconv.FormatUint(uint64(*v.Dev), 10), nil
	case VarBranch:
		return v.Branch, nil
	case VarDistance:
		return strconv.FormatUint(uint64(v.Distance), 10), nil
	case VarDirty:
		if v.Dirty {
			return "dirty", nil
		}
		return "", nil
	case VarCommitHash:
		return v.CommitHash.String(), nil
	case VarCommitHashShort:
		return v.CommitHashShort.String(), nil
	case VarTimestamp:
		return strconv.FormatInt(v.Timestamp, 10), nil
	case VarLastBranch:
		return v.LastBranch, nil
	case VarLastCommitHash:
		return v.LastCommitHash.String(), nil
	case VarLastCommitHashShort:
		return v.LastCommitHashShort.String(), nil
	case VarLastTimestamp:
		return strconv.FormatInt(v.LastTimestamp, 10), nil
	case VarCustom:
		return v.Custom[c.CustomKey], nil
	default:
		return "", fmt.Errorf("zerv: unknown var kind %d", c.Var)
	}
}

// IsEmpty reports whether rendering this component against v would produce
// no text at all — used by section joins to skip absent optional slots
// instead of leaving a stray separator.
func (c Component) IsEmpty(v Vars) bool {
	text, err := c.Render(v)
	return err == nil && text == ""
}
