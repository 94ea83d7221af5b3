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

// Package schema implements the preset catalogue and smart-tier resolution
// from spec §4.5, grounded on
// _examples/original_source/src/schema/presets.rs.
package schema

import (
	"fmt"
	"strings"

	"zerv.dev/zerv/version/zerv"
)

// Resolve looks up name in the built-in catalogue. Two families are
// supported: "standard" (release.prerelease.postN.devN numeric core) and
// "calver" (a date-stamped core: year.month.day.patch). Each family exposes
// four tiers — base, -prerelease, -post, -dev, each strictly additive over
// the last — plus a "-context"/"-no-context" suffix controlling the build
// tail (see standardBuild).
func Resolve(name string) (zerv.Schema, error) {
	base, tier, context, err := splitName(name)
	if err != nil {
		return zerv.Schema{}, err
	}

	var build func(ctx buildContext) []zerv.Component
	switch base {
	case "standard":
		build = standardBuild
	case "calver":
		build = standardBuild // calver shares the build-tail rule; core differs below
	default:
		return zerv.Schema{}, fmt.Errorf("zerv: unknown schema %q", name)
	}

	var core []zerv.Component
	switch base {
	case "standard":
		core = []zerv.Component{zerv.VarField(zerv.VarMajor), zerv.VarField(zerv.VarMinor), zerv.VarField(zerv.VarPatch)}
	case "calver":
		core = calverCore()
	}

	extraCore := epochExtraCore()
	switch tier {
	case tierBase:
		// no additional extra_core components
	case tierPreRelease:
		extraCore = append(extraCore, tierPreReleaseComponents()...)
	case tierPost:
		extraCore = append(extraCore, tierPostComponents()...)
	case tierDev:
		extraCore = append(extraCore, tierDevComponents()...)
	case tierSmart:
		extraCore = append(extraCore, smartTierGateComponent())
	}

	buildComponents := build(context)

	return zerv.Schema{
		Name:            name,
		Core:            core,
		ExtraCore:       extraCore,
		Build:           buildComponents,
		PrecedenceOrder: zerv.DefaultPrecedenceOrder,
	}, nil
}

// calverCore substitutes a date-stamped core for the numeric [Major, Minor,
// Patch] triple: [YYYY, MM, DD, Patch], matching
// original_source/src/schema/presets.rs's calver_core. Patch still bumps
// independently, letting the same day carry more than one release.
func calverCore() []zerv.Component {
	return []zerv.Component{
		zerv.TimestampField("YYYY"),
		zerv.TimestampField("0M"),
		zerv.TimestampField("0D"),
		zerv.VarField(zerv.VarPatch),
	}
}

// epochExtraCore always rides ahead of prerelease/post/dev, even at the
// base tier — see original_source/src/schema/presets.rs.
func epochExtraCore() []zerv.Component {
	return []zerv.Component{zerv.VarField(zerv.VarEpoch)}
}

type tier int

const (
	// tierSmart marks a bare preset name ("standard", "calver", and their
	// -context/-no-context variants) whose tier is chosen dynamically from
	// vars at render time (spec §4.5 "smart-preset algorithm"), rather than
	// fixed by a -prerelease/-post/-dev suffix.
	tierSmart tier = iota
	tierBase
	tierPreRelease
	tierPost
	tierDev
)

func tierPreReleaseComponents() []zerv.Component {
	return []zerv.Component{zerv.VarField(zerv.VarPreReleaseLabel), zerv.VarField(zerv.VarPreReleaseNumber)}
}

func tierPostComponents() []zerv.Component {
	return append(tierPreReleaseComponents(), zerv.VarField(zerv.VarPost))
}

func tierDevComponents() []zerv.Component {
	return append(tierPostComponents(), zerv.VarField(zerv.VarDev))
}

type buildContext int

const (
	contextSmart buildContext = iota
	contextForceOn
	contextForceOff
)

func splitName(name string) (base string, t tier, ctx buildContext, err error) {
	ctx = contextSmart
	rest := name
	if strings.HasSuffix(rest, "-no-context") {
		ctx = contextForceOff
		rest = strings.TrimSuffix(rest, "-no-context")
	} else if strings.HasSuffix(rest, "-context") {
		ctx = contextForceOn
		rest = strings.TrimSuffix(rest, "-context")
	}

	t = tierSmart
	switch {
	case strings.HasSuffix(rest, "-base-prerelease-post-dev"):
		t = tierDev
		rest = strings.TrimSuffix(rest, "-base-prerelease-post-dev")
	case strings.HasSuffix(rest, "-base-prerelease-post"):
		t = tierPost
		rest = strings.TrimSuffix(rest, "-base-prerelease-post")
	case strings.HasSuffix(rest, "-base-prerelease"):
		t = tierPreRelease
		rest = strings.TrimSuffix(rest, "-base-prerelease")
	case strings.HasSuffix(rest, "-base"):
		t = tierBase
		rest = strings.TrimSuffix(rest, "-base")
	case strings.HasSuffix(rest, "-dev"):
		t = tierDev
		rest = strings.TrimSuffix(rest, "-dev")
	case strings.HasSuffix(rest, "-post"):
		t = tierPost
		rest = strings.TrimSuffix(rest, "-post")
	case strings.HasSuffix(rest, "-prerelease"):
		t = tierPreRelease
		rest = strings.TrimSuffix(rest, "-prerelease")
	}

	if rest != "standard" && rest != "calver" {
		return "", 0, 0, fmt.Errorf("zerv: unknown schema base %q (from %q)", rest, name)
	}
	return rest, t, ctx, nil
}

// standardBuild implements the smart build-tail rule (spec §4.5 item 5):
// for contextSmart, [branch, distance, short_hash] is appended iff the
// working tree is dirty or HEAD is more than zero commits past the tag;
// contextForceOn always appends it, contextForceOff never does.
func standardBuild(ctx buildContext) []zerv.Component {
	tail := []zerv.Component{
		zerv.VarField(zerv.VarBranch),
		zerv.VarField(zerv.VarDistance),
		zerv.VarField(zerv.VarCommitHashShort),
	}
	switch ctx {
	case contextForceOff:
		return nil
	case contextForceOn:
		return tail
	default:
		return []zerv.Component{smartBuildGate{tail: tail}.asComponent()}
	}
}

const smartTierGateCustomKey = "__smart_tier_gate__"

func smartTierGateComponent() zerv.Component {
	return zerv.CustomField(smartTierGateCustomKey)
}

// expandSmartTier implements the smart-preset tier algorithm (spec §4.5
// items 1-4): dirty selects the deepest tier, distance alone (or a
// pre-release already paired with a post marker) selects post, a bare
// pre-release selects that tier, and a clean tagged commit selects base.
func expandSmartTier(extraCore []zerv.Component, v zerv.Vars) []zerv.Component {
	out := make([]zerv.Component, 0, len(extraCore)+4)
	for _, c := range extraCore {
		if c.Kind == zerv.ComponentVarField && c.Var == zerv.VarCustom && c.CustomKey == smartTierGateCustomKey {
			hasPreRelease := !v.PreRelease.IsZero()
			switch {
			case v.Dirty:
				out = append(out, tierDevComponents()...)
			case v.Distance > 0 || (hasPreRelease && v.Post != nil):
				out = append(out, tierPostComponents()...)
			case hasPreRelease:
				out = append(out, tierPreReleaseComponents()...)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// smartBuildGate is not a real zerv.Component kind; smart gating happens
// at render time via RenderSmart, since zerv.Component.Render has no
// access to the "dirty || distance>0" predicate on its own. See
// RenderSmart below — presets built with contextSmart carry a sentinel
// marker component that RenderSmart recognizes and expands.
type smartBuildGate struct {
	tail []zerv.Component
}

const smartGateCustomKey = "__smart_build_gate__"

func (g smartBuildGate) asComponent() zerv.Component {
	return zerv.CustomField(smartGateCustomKey)
}

// RenderSmart renders s against v, expanding the smart build-tail sentinel
// (if present) according to the "dirty || distance>0" predicate before
// delegating to Schema.Render.
func RenderSmart(s zerv.Schema, v zerv.Vars) (string, error) {
	resolved := s
	resolved.ExtraCore = expandSmartTier(s.ExtraCore, v)
	resolved.Build = expandSmartGate(s.Build, v)
	return resolved.Render(v)
}

func expandSmartGate(build []zerv.Component, v zerv.Vars) []zerv.Component {
	out := make([]zerv.Component, 0, len(build))
	for _, c := range build {
		if c.Kind == zerv.ComponentVarField && c.Var == zerv.VarCustom && c.CustomKey == smartGateCustomKey {
			if v.Dirty || v.Distance > 0 {
				out = append(out,
					zerv.VarField(zerv.VarBranch),
					zerv.VarField(zerv.VarDistance),
					zerv.VarField(zerv.VarCommitHashShort),
				)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}
