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

package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"zerv.dev/zerv/version/zerv"
	zervapierrors "zerv.dev/zerv/zervapi/errors"
)

// customBody is the on-the-wire shape of a custom schema body (spec §6.4):
// a one-off component layout supplied directly by the caller instead of a
// preset name, addressed by allow-listed field names rather than Go
// identifiers so the body stays a plain, hand-writable document.
type customBody struct {
	Core            []componentSpec `json:"core"`
	ExtraCore       []componentSpec `json:"extra_core"`
	Build           []componentSpec `json:"build"`
	PrecedenceOrder []string        `json:"precedence_order,omitempty"`
}

// componentSpec names exactly one of a schema slot's four shapes. Exactly
// one field may be set; Var additionally accepts a "custom." prefix
// ("custom.release_channel") to address a Vars.Custom entry by key.
type componentSpec struct {
	Var       string  `json:"var,omitempty"`
	Literal   *string `json:"literal,omitempty"`
	Int       *int64  `json:"int,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// ParseCustomBody parses body as a custom schema body and validates it per
// invariants S1-S3, returning an InvalidFormat error enumerating the
// recognized field and precedence-class names on any failure. name is
// stored as the resulting Schema's Name (the caller's label for it, not
// something the body itself carries).
func ParseCustomBody(name, body string) (zerv.Schema, error) {
	var doc customBody
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return zerv.Schema{}, invalidBody(body, fmt.Sprintf("malformed custom schema body: %v", err))
	}

	core, err := resolveComponents(doc.Core)
	if err != nil {
		return zerv.Schema{}, invalidBody(body, err.Error())
	}
	extraCore, err := resolveComponents(doc.ExtraCore)
	if err != nil {
		return zerv.Schema{}, invalidBody(body, err.Error())
	}
	build, err := resolveComponents(doc.Build)
	if err != nil {
		return zerv.Schema{}, invalidBody(body, err.Error())
	}

	order, err := resolvePrecedenceOrder(doc.PrecedenceOrder)
	if err != nil {
		return zerv.Schema{}, invalidBody(body, err.Error())
	}

	s := zerv.Schema{
		Name:            name,
		Core:            core,
		ExtraCore:       extraCore,
		Build:           build,
		PrecedenceOrder: order,
	}
	if err := s.Validate(); err != nil {
		return zerv.Schema{}, invalidBody(body, err.Error())
	}
	return s, nil
}

func invalidBody(body, reason string) error {
	return &zervapierrors.InvalidFormat{
		Value: reason,
		Valid: append(append([]string{}, validFieldNames()...), validPrecedenceClassNames()...),
	}
}

func resolveComponents(specs []componentSpec) ([]zerv.Component, error) {
	out := make([]zerv.Component, 0, len(specs))
	for i, spec := range specs {
		c, err := resolveComponent(spec)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func resolveComponent(spec componentSpec) (zerv.Component, error) {
	set := 0
	if spec.Var != "" {
		set++
	}
	if spec.Literal != nil {
		set++
	}
	if spec.Int != nil {
		set++
	}
	if spec.Timestamp != "" {
		set++
	}
	if set != 1 {
		return zerv.Component{}, fmt.Errorf("must set exactly one of var, literal, int, or timestamp")
	}

	switch {
	case spec.Var != "":
		if key, ok := strings.CutPrefix(spec.Var, "custom."); ok {
			if key == "" {
				return zerv.Component{}, fmt.Errorf("custom field requires a key after \"custom.\"")
			}
			return zerv.CustomField(key), nil
		}
		kind, err := zerv.ParseVarKind(spec.Var)
		if err != nil {
			return zerv.Component{}, err
		}
		return zerv.VarField(kind), nil
	case spec.Literal != nil:
		return zerv.StringLiteral(*spec.Literal), nil
	case spec.Int != nil:
		return zerv.IntegerLiteral(*spec.Int), nil
	default:
		return zerv.TimestampField(spec.Timestamp), nil
	}
}

func resolvePrecedenceOrder(names []string) ([]zerv.PrecedenceClass, error) {
	if len(names) == 0 {
		return nil, nil
	}
	order := make([]zerv.PrecedenceClass, 0, len(names))
	for _, name := range names {
		c, err := zerv.ParsePrecedenceClass(name)
		if err != nil {
			return nil, err
		}
		order = append(order, c)
	}
	return order, nil
}

// validFieldNames enumerates the Var(v) names a custom schema body's "var"
// key accepts, for InvalidFormat's Valid list.
func validFieldNames() []string {
	return []string{
		"major", "minor", "patch", "epoch",
		"pre_release_label", "pre_release_number", "post", "dev",
		"branch", "distance", "dirty", "commit_hash", "commit_hash_short",
		"timestamp", "last_branch", "last_commit_hash", "last_commit_hash_short",
		"last_timestamp", "custom.<key>",
	}
}

func validPrecedenceClassNames() []string {
	return []string{
		"epoch", "major", "minor", "patch", "pre_release", "post", "dev",
		"distance", "dirty", "custom", "build",
	}
}
