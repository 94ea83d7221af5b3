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
	"errors"
	"fmt"
	"strings"
)

// Schema describes how a Vars store is laid out into three sections — Core
// (the release numbers), ExtraCore (epoch/pre-release/post/dev, joined with
// "." and prefixed with "-" after Core), and Build (metadata, joined with
// "." and prefixed with "+") — plus the PrecedenceOrder used for bump
// cascades and version comparison.
type Schema struct {
	Name           string
	Core           []Component
	ExtraCore      []Component
	Build          []Component
	PrecedenceOrder []PrecedenceClass
}

func (s Schema) order() []PrecedenceClass {
	if s.PrecedenceOrder != nil {
		return s.PrecedenceOrder
	}
	return DefaultPrecedenceOrder
}

// Render walks Core, then ExtraCore, then Build, joining each section's
// non-empty components with "." and separating sections per the
// conventions above.
func (s Schema) Render(v Vars) (string, error) {
	core, err := renderJoined(s.Core, v, ".")
	if err != nil {
		return "", err
	}

	extra, err := renderJoined(s.ExtraCore, v, ".")
	if err != nil {
		return "", err
	}

	build, err := renderJoined(s.Build, v, ".")
	if err != nil {
		return "", err
	}

	out := core
	if extra != "" {
		out += "-" + extra
	}
	if build != "" {
		out += "+" + build
	}
	return out, nil
}

func renderJoined(components []Component, v Vars, sep string) (string, error) {
	var parts []string
	for _, c := range components {
		if c.IsEmpty(v) {
			continue
		}
		text, err := c.Render(v)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, sep), nil
}

// Validate checks invariants S1–S3: the schema carries at least one
// component overall (S1), every Var(v) field names a recognized VarKind
// with a CustomKey when required (S2), and every Timestamp(p) pattern is a
// recognized preset or a chrono-style "%" format string (S3).
func (s Schema) Validate() error {
	sections := [][]Component{s.Core, s.ExtraCore, s.Build}

	total := 0
	for _, section := range sections {
		total += len(section)
	}
	if total == 0 {
		return errors.New("zerv: schema must contain at least one component")
	}

	for _, section := range sections {
		for _, c := range section {
			switch c.Kind {
			case ComponentVarField:
				if c.Var <= VarNone || c.Var > VarCustom {
					return fmt.Errorf("zerv: unknown field %q", c.Var)
				}
				if c.Var == VarCustom && c.CustomKey == "" {
					return errors.New("zerv: custom var field missing CustomKey")
				}
			case ComponentTimestamp:
				if !ValidTimestampPattern(c.TimestampFormat) {
					return fmt.Errorf("zerv: unknown timestamp pattern %q", c.TimestampFormat)
				}
			}
		}
	}
	return nil
}
