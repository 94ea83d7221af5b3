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

package bump

import (
	"fmt"
	"strconv"
	"strings"

	"zerv.dev/zerv/version/zerv"
)

// Section names one of a schema's three component sequences, the target
// of index-addressed operations (spec §4.6 "index-addressed operations"),
// grounded on
// _examples/original_source/src/version/zerv/bump/schema.rs.
type Section int

const (
	SectionCore Section = iota
	SectionExtraCore
	SectionBuild
)

// IndexOp is one index-addressed instruction, parsed from a spec string of
// the form "INDEX", "INDEX=VALUE", "~N", or "~N=VALUE". A bare index bumps
// (increments, Integer components only); "=VALUE" overrides the
// component's literal, and — per the override-then-bump rule — a spec may
// carry both an override and stand as the base for a subsequent named
// bump in the same pipeline pass.
type IndexOp struct {
	Section  Section
	Index    int // already resolved to a non-negative offset
	Override *string
}

// ParseSpec parses one "SECTION:SPEC" instruction, where SPEC is
// "INDEX[=VALUE]" or "~N[=VALUE]". sectionLen is the length of the
// addressed section, needed to resolve negative (~N) indices: ~1 is the
// last element, ~2 the second-to-last, and so on.
func ParseSpec(raw string, sectionLen int) (IndexOp, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return IndexOp{}, fmt.Errorf("spec %q missing SECTION: prefix", raw)
	}
	section, err := parseSection(parts[0])
	if err != nil {
		return IndexOp{}, err
	}

	indexPart := parts[1]
	var override *string
	if eq := strings.Index(indexPart, "="); eq >= 0 {
		value := indexPart[eq+1:]
		override = &value
		indexPart = indexPart[:eq]
	}

	index, err := parseIndex(indexPart, sectionLen)
	if err != nil {
		return IndexOp{}, fmt.Errorf("spec %q: %w", raw, err)
	}

	return IndexOp{Section: section, Index: index, Override: override}, nil
}

func parseSection(s string) (Section, error) {
	switch s {
	case "core":
		return SectionCore, nil
	case "extra_core":
		return SectionExtraCore, nil
	case "build":
		return SectionBuild, nil
	default:
		return 0, fmt.Errorf("unknown section %q", s)
	}
}

func parseIndex(s string, sectionLen int) (int, error) {
	if strings.HasPrefix(s, "~") {
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			return 0, fmt.Errorf("invalid negative index %q: %w", s, err)
		}
		if n <= 0 {
			return 0, fmt.Errorf("negative index %q must be ~1 or greater", s)
		}
		resolved := sectionLen - n
		if resolved < 0 {
			return 0, fmt.Errorf("negative index %q out of range for section of length %d", s, sectionLen)
		}
		return resolved, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("index %q must not be negative; use ~N for negative addressing", s)
	}
	return n, nil
}

// isBump reports whether op is a bare bump spec ("INDEX" / "~N", no
// "=VALUE"), as opposed to an override spec. The two are distinct
// "operation kinds" for duplicate detection (spec §4.6: "a duplicate index
// within the same operation kind is an error") — an override and a bump
// may legitimately share an index, the override supplying the base value
// the bump then increments.
func (op IndexOp) isBump() bool { return op.Override == nil }

// ValidateAndSort checks that ops contains no duplicate Index within the
// same (Section, kind) — kind being "override" or "bump" — and returns
// them sorted by (Section, Index, override-before-bump) so ApplyIndexed
// processes overrides before bumps at a shared index, deterministically
// regardless of input order.
func ValidateAndSort(ops []IndexOp) ([]IndexOp, error) {
	type key struct {
		s      Section
		index  int
		isBump bool
	}
	seen := map[key]bool{}
	for _, op := range ops {
		k := key{op.Section, op.Index, op.isBump()}
		if seen[k] {
			return nil, fmt.Errorf("duplicate index %d in section %d", op.Index, op.Section)
		}
		seen[k] = true
	}
	sorted := append([]IndexOp(nil), ops...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && less(sorted[j], sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted, nil
}

func less(a, b IndexOp) bool {
	if a.Section != b.Section {
		return a.Section < b.Section
	}
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	return !a.isBump() && b.isBump() // overrides sort before bumps at the same index
}

// ApplyIndexed applies ops (all addressing the same section) to a copy of
// section, returning the updated component sequence. Overrides are applied
// first (setting an Integer or String component's literal value), then
// bumps (incrementing an Integer component's literal by one), so an
// override and a bump sharing an index compose as "override sets a base
// value, then the bump adds to that base" (spec §4.6). VarField and
// Timestamp components cannot be index-addressed at all — they are either
// VCS-managed or addressed through ApplyNamed instead.
func ApplyIndexed(section []zerv.Component, ops []IndexOp) ([]zerv.Component, error) {
	result := append([]zerv.Component(nil), section...)

	for _, op := range ops {
		if op.isBump() {
			continue
		}
		if op.Index < 0 || op.Index >= len(result) {
			return nil, fmt.Errorf("index %d out of range for section of length %d", op.Index, len(result))
		}
		updated, err := overrideComponent(result[op.Index], *op.Override)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", op.Index, err)
		}
		result[op.Index] = updated
	}

	for _, op := range ops {
		if !op.isBump() {
			continue
		}
		if op.Index < 0 || op.Index >= len(result) {
			return nil, fmt.Errorf("index %d out of range for section of length %d", op.Index, len(result))
		}
		updated, err := bumpComponent(result[op.Index])
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", op.Index, err)
		}
		result[op.Index] = updated
	}

	return result, nil
}

// bumpComponent increments an Integer literal component by one. Only
// Integer components support a bare (valueless) bump; String and VarField
// components have no implicit "next value" and must be addressed with an
// explicit override instead.
func bumpComponent(c zerv.Component) (zerv.Component, error) {
	if c.Kind != zerv.ComponentInteger {
		return zerv.Component{}, fmt.Errorf("component kind %d cannot be bumped without an explicit value; use INDEX=VALUE", c.Kind)
	}
	return zerv.IntegerLiteral(c.IntLiteral + 1), nil
}

func overrideComponent(c zerv.Component, value string) (zerv.Component, error) {
	switch c.Kind {
	case zerv.ComponentString:
		return zerv.StringLiteral(value), nil
	case zerv.ComponentInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return zerv.Component{}, fmt.Errorf("override value %q is not a valid integer: %w", value, err)
		}
		return zerv.IntegerLiteral(n), nil
	default:
		return zerv.Component{}, fmt.Errorf("component kind %d cannot be index-overridden; use a named operation", c.Kind)
	}
}

// varTargets maps the VarKinds that have a semantic Target onto it, so an
// index op landing on a Var(v) component can be delegated to the
// name-addressed engine (spec §4.6 "the operation is delegated to the
// corresponding name-addressed operation on v").
var varTargets = map[zerv.VarKind]Target{
	zerv.VarMajor:           TargetMajor,
	zerv.VarMinor:           TargetMinor,
	zerv.VarPatch:           TargetPatch,
	zerv.VarEpoch:           TargetEpoch,
	zerv.VarPreReleaseNumber: TargetPreReleaseNum,
	zerv.VarPost:            TargetPost,
	zerv.VarDev:             TargetDev,
}

// vcsManagedVars are the VarKinds a VCS probe populates; spec §4.6 requires
// these to reject every bump and override with a hint that they are
// VCS-managed, regardless of the section/index addressing them.
var vcsManagedVars = map[zerv.VarKind]bool{
	zerv.VarBranch:          true,
	zerv.VarDistance:        true,
	zerv.VarDirty:           true,
	zerv.VarCommitHash:      true,
	zerv.VarCommitHashShort: true,
	zerv.VarLastBranch:          true,
	zerv.VarLastCommitHash:      true,
	zerv.VarLastCommitHashShort: true,
	zerv.VarLastTimestamp:       true,
}

// ApplyIndexedToSchema applies ops against schema's addressed sections,
// mutating vars in place for any Var(v) component (delegating to the
// name-addressed engine, including its precedence cascade) and returning an
// updated schema for any literal String/Integer component a spec touched
// directly. It is the entry point the pipeline driver uses; ApplyIndexed
// above is the literal-only primitive it delegates to.
func ApplyIndexedToSchema(schema zerv.Schema, vars *zerv.Vars, ops []IndexOp, preserveCustom map[string]bool) (zerv.Schema, error) {
	bySection := map[Section][]IndexOp{}
	for _, op := range ops {
		bySection[op.Section] = append(bySection[op.Section], op)
	}

	out := schema
	for section, secOps := range bySection {
		sorted, err := ValidateAndSort(secOps)
		if err != nil {
			return zerv.Schema{}, err
		}

		components, err := sectionComponents(out, section)
		if err != nil {
			return zerv.Schema{}, err
		}

		var literalOps []IndexOp
		for _, op := range sorted {
			if op.Index < 0 || op.Index >= len(components) {
				return zerv.Schema{}, fmt.Errorf("index %d out of range for section of length %d", op.Index, len(components))
			}
			c := components[op.Index]
			if c.Kind != zerv.ComponentVarField {
				literalOps = append(literalOps, op)
				continue
			}
			if err := delegateVarField(vars, c, op, preserveCustom); err != nil {
				return zerv.Schema{}, fmt.Errorf("index %d: %w", op.Index, err)
			}
		}

		if len(literalOps) > 0 {
			updated, err := ApplyIndexed(components, literalOps)
			if err != nil {
				return zerv.Schema{}, err
			}
			setSectionComponents(&out, section, updated)
		}
	}
	return out, nil
}

func sectionComponents(s zerv.Schema, section Section) ([]zerv.Component, error) {
	switch section {
	case SectionCore:
		return s.Core, nil
	case SectionExtraCore:
		return s.ExtraCore, nil
	case SectionBuild:
		return s.Build, nil
	default:
		return nil, fmt.Errorf("unknown section %d", section)
	}
}

func setSectionComponents(s *zerv.Schema, section Section, components []zerv.Component) {
	switch section {
	case SectionCore:
		s.Core = components
	case SectionExtraCore:
		s.ExtraCore = components
	case SectionBuild:
		s.Build = components
	}
}

// delegateVarField applies one index op addressed at a Var(v) component,
// per spec §4.6's delegation rule.
func delegateVarField(vars *zerv.Vars, c zerv.Component, op IndexOp, preserveCustom map[string]bool) error {
	if vcsManagedVars[c.Var] {
		return fmt.Errorf("%s is VCS-managed and cannot be bumped or overridden directly", c.Var)
	}
	if c.Var == zerv.VarTimestamp {
		return fmt.Errorf("timestamp fields are generated dynamically and reject mutation")
	}
	if c.Var == zerv.VarPreReleaseLabel {
		if op.isBump() {
			return fmt.Errorf("pre_release label has no default increment; supply an explicit value")
		}
		vars.PreRelease.Label = *op.Override
		zerv.CascadeZero(vars, zerv.VarPreReleaseLabel, preserveCustom)
		return nil
	}
	if c.Var == zerv.VarCustom {
		if op.isBump() {
			return fmt.Errorf("custom field %q has no default increment; supply an explicit value", c.CustomKey)
		}
		if vars.Custom == nil {
			vars.Custom = map[string]string{}
		}
		vars.Custom[c.CustomKey] = *op.Override
		return nil
	}

	target, ok := varTargets[c.Var]
	if !ok {
		return fmt.Errorf("var kind %d cannot be index-addressed", c.Var)
	}
	return ApplyNamed(vars, []NamedOp{{Target: target, Override: op.Override, Bump: op.isBump()}}, preserveCustom)
}
