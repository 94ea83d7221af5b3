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

// Package pipeline implements the driver (spec §4.9, C9): the seven-step
// sequence that turns an argument record and an acquired Zerv into a
// rendered version string. Every stage is a pure function or a
// straight-line mutation of an owned Zerv — no stage retries, and any
// failure returns a typed error from zervapi/errors.
package pipeline

import (
	"fmt"
	"strings"

	"zerv.dev/zerv/bump"
	"zerv.dev/zerv/schema"
	"zerv.dev/zerv/template"
	"zerv.dev/zerv/vcs"
	"zerv.dev/zerv/version/format"
	"zerv.dev/zerv/version/pep440"
	"zerv.dev/zerv/version/semver"
	"zerv.dev/zerv/version/zerv"
	"zerv.dev/zerv/version/zerv/bridge"
	"zerv.dev/zerv/zervapi"
	zervapierrors "zerv.dev/zerv/zervapi/errors"
)

// Args is the pipeline's argument record, the Go shape of the abstract CLI
// surface described in spec §6.4. A caller populates exactly one
// acquisition source (InputVersion, InputZervDoc, or VcsData); the rest are
// optional mutations layered on top.
type Args struct {
	// Acquisition source — exactly one should be set.
	VcsData      *vcs.Data
	InputVersion *string
	InputZervDoc *string

	InputFormat  format.Format
	OutputFormat format.Format
	SchemaName   string
	// SchemaBody is a custom schema body (spec §6.4): a one-off component
	// layout supplied directly instead of a preset name. It takes priority
	// over SchemaName when both are set.
	SchemaBody string

	// VCS overrides (step 3).
	TagVersion    *string
	Distance      *uint32
	Dirty         bool
	NoDirty       bool
	Clean         bool
	CurrentBranch *string
	CommitHash    *string

	// Context control (step 4).
	BumpContext   bool
	NoBumpContext bool

	// Mutation engines (step 5).
	NamedOps   []bump.NamedOp
	IndexedOps []bump.IndexOp
	// IndexedSpecs are raw "SECTION:INDEX[=VALUE]" strings, resolved
	// against the acquired schema's actual section lengths once it is
	// known — the form a CLI caller supplies, since it cannot resolve a
	// "~N" negative index itself without first acquiring a schema.
	IndexedSpecs   []string
	PreserveCustom map[string]bool

	// Rendering (step 7).
	OutputTemplate *string
	OutputPrefix   string
}

// Run executes the full pipeline and returns the rendered version string.
func Run(args Args) (string, error) {
	z, err := acquire(args)
	if err != nil {
		return "", err
	}

	if err := validate(args); err != nil {
		return "", err
	}

	if err := applyVcsOverrides(&z.Vars, args); err != nil {
		return "", err
	}

	applyContextControl(&z.Vars, args)

	if err := applyMutations(&z, args); err != nil {
		return "", err
	}

	switch {
	case args.SchemaBody != "":
		resolved, err := schema.ParseCustomBody(defaultSchemaName(args.SchemaName), args.SchemaBody)
		if err != nil {
			return "", err
		}
		z.Schema = resolved
	case args.SchemaName != "":
		resolved, err := schema.Resolve(args.SchemaName)
		if err != nil {
			return "", &zervapierrors.UnknownSchema{Name: args.SchemaName}
		}
		z.Schema = resolved
	}

	return render(z, args)
}

// acquire performs step 1: build a Zerv from exactly one of the three
// sources a caller may supply.
func acquire(args Args) (zerv.Zerv, error) {
	switch {
	case args.InputZervDoc != nil:
		return zervapi.Unmarshal(*args.InputZervDoc)
	case args.InputVersion != nil:
		return acquireFromVersionString(*args.InputVersion, args.InputFormat, args.SchemaName)
	case args.VcsData != nil:
		return acquireFromVcsData(*args.VcsData, args.SchemaName)
	default:
		return zerv.Zerv{}, &zervapierrors.VcsNotFound{}
	}
}

func acquireFromVersionString(input string, f format.Format, schemaName string) (zerv.Zerv, error) {
	vars, err := parseVars(input, f)
	if err != nil {
		return zerv.Zerv{}, err
	}
	resolved, err := schema.Resolve(defaultSchemaName(schemaName))
	if err != nil {
		return zerv.Zerv{}, err
	}
	return zerv.Zerv{Schema: resolved, Vars: vars}, nil
}

func defaultSchemaName(name string) string {
	if name == "" {
		return "standard"
	}
	return name
}

// parseVars parses input under f, trying SemVer then PEP 440 when f is
// format.Auto, and maps the result onto a fresh Vars store via the
// matching bridge.
func parseVars(input string, f format.Format) (zerv.Vars, error) {
	switch f {
	case format.SemVer:
		v, err := semver.ParseVersion(input)
		if err != nil {
			return zerv.Vars{}, &zervapierrors.InvalidVersion{Input: input, Format: format.SemVerStr, Reason: err.Error()}
		}
		return bridge.FromSemVer(v), nil
	case format.PEP440:
		v, err := pep440.ParseVersion(input)
		if err != nil {
			return zerv.Vars{}, &zervapierrors.InvalidVersion{Input: input, Format: format.PEP440Str, Reason: err.Error()}
		}
		return bridge.FromPEP440(v), nil
	case format.Zerv:
		return zerv.Vars{}, &zervapierrors.InvalidFormat{Value: format.ZervStr}
	default:
		if sv, err := semver.ParseVersion(input); err == nil {
			return bridge.FromSemVer(sv), nil
		}
		if pv, err := pep440.ParseVersion(input); err == nil {
			return bridge.FromPEP440(pv), nil
		}
		return zerv.Vars{}, &zervapierrors.UnknownFormat{Input: input}
	}
}

// acquireFromVcsData builds a fresh Vars store from a VCS probe record: the
// release core comes from parsing TagVersion (if any), VCS context fields
// copy verbatim, and a positive Distance with a known tag also seeds Post —
// the engine's convention for "N commits past the last tagged release",
// matching testable-property scenario B ("distance=5" rendering
// "-post.5"). See DESIGN.md for this Open Question's resolution.
func acquireFromVcsData(d vcs.Data, schemaName string) (zerv.Zerv, error) {
	vars := zerv.FromVcsData(d)

	if d.TagVersion != nil {
		tagVars, err := parseVars(*d.TagVersion, format.Auto)
		if err != nil {
			return zerv.Zerv{}, &zervapierrors.InvalidVersion{Input: *d.TagVersion, Format: format.AutoStr, Reason: err.Error()}
		}
		vars.Major, vars.Minor, vars.Patch, vars.Epoch = tagVars.Major, tagVars.Minor, tagVars.Patch, tagVars.Epoch
		vars.PreRelease = tagVars.PreRelease

		if d.Distance > 0 {
			distance := d.Distance
			vars.Post = &distance
		}
	}

	resolved, err := schema.Resolve(defaultSchemaName(schemaName))
	if err != nil {
		return zerv.Zerv{}, err
	}
	return zerv.Zerv{Schema: resolved, Vars: vars}, nil
}

// validate performs step 2: the conflict rules of spec §4.6, checked up
// front so a caller who passed several bad combinations sees every one.
func validate(args Args) error {
	pairs := bump.CheckConflicts(bump.Flags{
		Clean:         args.Clean,
		Dirty:         args.Dirty,
		NoDirty:       args.NoDirty,
		BumpContext:   args.BumpContext,
		NoBumpContext: args.NoBumpContext,
	})
	if len(pairs) == 0 {
		return nil
	}
	wire := make([][2]string, len(pairs))
	for i, p := range pairs {
		wire[i] = [2]string{p.A, p.B}
	}
	return &zervapierrors.ConflictingOptions{Pairs: wire}
}

// applyVcsOverrides performs step 3.
func applyVcsOverrides(vars *zerv.Vars, args Args) error {
	if args.TagVersion != nil {
		tagVars, err := parseVars(*args.TagVersion, format.Auto)
		if err != nil {
			return &zervapierrors.InvalidVersion{Input: *args.TagVersion, Format: format.AutoStr, Reason: err.Error()}
		}
		vars.Major, vars.Minor, vars.Patch, vars.Epoch = tagVars.Major, tagVars.Minor, tagVars.Patch, tagVars.Epoch
		vars.PreRelease = tagVars.PreRelease
	}
	if args.Distance != nil {
		vars.Distance = *args.Distance
	}
	if args.Dirty {
		vars.Dirty = true
	}
	if args.NoDirty {
		vars.Dirty = false
	}
	if args.Clean {
		vars.Dirty = false
		vars.Distance = 0
	}
	if args.CurrentBranch != nil {
		branch, err := vcs.ParseBranchName(*args.CurrentBranch)
		if err != nil {
			return &zervapierrors.InvalidArgument{Name: "current_branch", Value: *args.CurrentBranch, Reason: err.Error()}
		}
		vars.Branch = branch.String()
	}
	if args.CommitHash != nil {
		hash, err := vcs.ParseHash(*args.CommitHash)
		if err != nil {
			return &zervapierrors.InvalidArgument{Name: "commit_hash", Value: *args.CommitHash, Reason: err.Error()}
		}
		vars.CommitHash = hash
		short, err := vcs.ParseShortHash(hash.Short())
		if err != nil {
			return &zervapierrors.InvalidArgument{Name: "commit_hash", Value: *args.CommitHash, Reason: err.Error()}
		}
		vars.CommitHashShort = short
	}
	return nil
}

// applyContextControl performs step 4: no_bump_context zeroes distance,
// clears dirty and branch, and sets the commit hashes to the literal
// "unknown" per spec §4.6 (a sentinel string, not a valid Hash — it is never
// re-validated, only rendered). Timestamp and the Last* fields are left as
// they are.
func applyContextControl(vars *zerv.Vars, args Args) {
	if !args.NoBumpContext {
		return
	}
	vars.Distance = 0
	vars.Dirty = false
	vars.Branch = ""
	vars.CommitHash = vcs.Hash("unknown")
	vars.CommitHashShort = vcs.ShortHash("unknown")
}

// applyMutations performs step 5: named overrides-then-bumps, then
// index-addressed overrides-then-bumps.
func applyMutations(z *zerv.Zerv, args Args) error {
	if len(args.NamedOps) > 0 {
		if err := bump.ApplyNamed(&z.Vars, args.NamedOps, args.PreserveCustom); err != nil {
			return toBumpTargetError(err, "named")
		}
	}

	indexedOps := args.IndexedOps
	if len(args.IndexedSpecs) > 0 {
		resolved, err := resolveIndexedSpecs(z.Schema, args.IndexedSpecs)
		if err != nil {
			return toBumpTargetError(err, "indexed")
		}
		indexedOps = append(indexedOps, resolved...)
	}

	if len(indexedOps) > 0 {
		updated, err := bump.ApplyIndexedToSchema(z.Schema, &z.Vars, indexedOps, args.PreserveCustom)
		if err != nil {
			return toBumpTargetError(err, "indexed")
		}
		z.Schema = updated
	}
	return nil
}

// resolveIndexedSpecs parses each "SECTION:INDEX[=VALUE]" string against
// the section it names in s, so a "~N" negative index resolves against
// that section's real length rather than a guessed bound.
func resolveIndexedSpecs(s zerv.Schema, specs []string) ([]bump.IndexOp, error) {
	ops := make([]bump.IndexOp, 0, len(specs))
	for _, raw := range specs {
		sectionName, _, found := strings.Cut(raw, ":")
		if !found {
			return nil, fmt.Errorf("spec %q missing SECTION: prefix", raw)
		}
		var sectionLen int
		switch sectionName {
		case "core":
			sectionLen = len(s.Core)
		case "extra_core":
			sectionLen = len(s.ExtraCore)
		case "build":
			sectionLen = len(s.Build)
		default:
			return nil, fmt.Errorf("unknown section %q", sectionName)
		}
		op, err := bump.ParseSpec(raw, sectionLen)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func toBumpTargetError(err error, section string) error {
	return &zervapierrors.InvalidBumpTarget{Message: err.Error(), Section: section}
}

// render performs step 7: choosing the output codec (or template renderer)
// and prepending the caller's prefix.
func render(z zerv.Zerv, args Args) (string, error) {
	var body string
	var err error

	switch {
	case args.OutputTemplate != nil:
		body, err = template.Render(*args.OutputTemplate, templateContext(z.Vars))
		if err != nil {
			return "", &zervapierrors.InvalidFormat{Value: *args.OutputTemplate}
		}
	case args.OutputFormat == format.SemVer:
		body = bridge.ToSemVer(z.Vars).String()
	case args.OutputFormat == format.PEP440:
		var pv pep440.Version
		pv, err = bridge.ToPEP440(z.Vars)
		if err != nil {
			return "", &zervapierrors.InvalidVersion{Input: z.Vars.PreRelease.Label, Format: format.PEP440Str, Reason: err.Error()}
		}
		body = pv.String()
	case args.OutputFormat == format.Zerv:
		body, err = zervapi.Marshal(z)
		if err != nil {
			return "", err
		}
	default:
		body, err = schema.RenderSmart(z.Schema, z.Vars)
		if err != nil {
			return "", err
		}
	}

	return args.OutputPrefix + body, nil
}

// templateContext exposes vars's fields plus the derived aliases spec §4.7
// names ("bumped_timestamp", "bumped_branch"), the last_* VCS-tag fields,
// and every custom entry merged in under its own key.
func templateContext(v zerv.Vars) template.Context {
	ctx := template.Context{
		"major":    int64(v.Major),
		"minor":    int64(v.Minor),
		"patch":    int64(v.Patch),
		"epoch":    int64(v.Epoch),
		"branch":   v.Branch,
		"distance": int64(v.Distance),
		"dirty":    v.Dirty,

		"commit_hash":       v.CommitHash.String(),
		"commit_hash_short": v.CommitHashShort.String(),
		"timestamp":         v.Timestamp,
		"bumped_timestamp":  v.Timestamp,
		"bumped_branch":     v.Branch,

		"last_branch":            v.LastBranch,
		"last_commit_hash":       v.LastCommitHash.String(),
		"last_commit_hash_short": v.LastCommitHashShort.String(),
		"last_timestamp":         v.LastTimestamp,
	}
	if v.PreRelease.Label != "" {
		ctx["pre_release_label"] = v.PreRelease.Label
	}
	if v.PreRelease.Number != nil {
		ctx["pre_release_number"] = int64(*v.PreRelease.Number)
	}
	if v.Post != nil {
		ctx["post"] = int64(*v.Post)
	}
	if v.Dev != nil {
		ctx["dev"] = int64(*v.Dev)
	}
	for k, val := range v.Custom {
		ctx[k] = val
	}
	return ctx
}
