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

// Command zerv is a thin flag-based front end over the pipeline package
// (spec §6.4): it builds the abstract argument record and does nothing
// else. It carries no VCS probing of its own — --tag-version, --distance,
// --dirty, --branch and --commit-hash stand in for a real probe's output.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"zerv.dev/zerv/bump"
	"zerv.dev/zerv/pipeline"
	"zerv.dev/zerv/vcs"
	"zerv.dev/zerv/version/format"
)

// stringList collects a repeatable string flag (e.g. several --index specs).
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(argv []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("zerv", flag.ContinueOnError)

	inVersion := fs.String("in", "", "input version string (reads stdin when omitted and --stdin is set)")
	fromStdin := fs.Bool("stdin", false, "read the input (version string or zerv document) from stdin")
	inFormat := fs.String("in-format", "auto", "input format: auto, semver, pep440, zerv")
	outFormat := fs.String("out-format", "auto", "output format: auto, semver, pep440, zerv")
	schemaName := fs.String("schema", "", "schema preset name")
	schemaBody := fs.String("schema-body", "", "custom schema body (JSON), takes priority over --schema")
	schemaFile := fs.String("schema-file", "", "path to a file containing a custom schema body")

	tagVersion := fs.String("tag-version", "", "VCS tag version string")
	distance := fs.Uint("distance", 0, "commits past the tag")
	dirty := fs.Bool("dirty", false, "mark the working tree dirty")
	noDirty := fs.Bool("no-dirty", false, "mark the working tree clean")
	clean := fs.Bool("clean", false, "reset distance to 0 and clear dirty")
	branch := fs.String("branch", "", "current branch name")
	commitHash := fs.String("commit-hash", "", "current commit hash")

	bumpContext := fs.Bool("bump-context", false, "(reserved; context is applied by default)")
	noBumpContext := fs.Bool("no-bump-context", false, "strip distance/dirty/branch/hash from the render")

	bumpMajor := fs.Bool("bump-major", false, "bump major")
	bumpMinor := fs.Bool("bump-minor", false, "bump minor")
	bumpPatch := fs.Bool("bump-patch", false, "bump patch")
	bumpEpoch := fs.Bool("bump-epoch", false, "bump epoch")
	bumpPre := fs.Bool("bump-pre", false, "bump pre-release number")
	bumpPost := fs.Bool("bump-post", false, "bump post number")
	bumpDev := fs.Bool("bump-dev", false, "bump dev number")

	overrideMajor := fs.String("major", "", "override major")
	overrideMinor := fs.String("minor", "", "override minor")
	overridePatch := fs.String("patch", "", "override patch")
	overrideEpoch := fs.String("epoch", "", "override epoch")
	overridePre := fs.String("pre", "", "override pre-release number")
	overridePost := fs.String("post", "", "override post number")
	overrideDev := fs.String("dev", "", "override dev number")

	var indexSpecs stringList
	fs.Var(&indexSpecs, "index", "index-addressed override/bump spec (SECTION:INDEX[=VALUE]), repeatable")

	template := fs.String("template", "", "output template")
	prefix := fs.String("prefix", "", "output prefix")

	if err := fs.Parse(argv); err != nil {
		return err
	}

	body := *schemaBody
	if *schemaFile != "" {
		data, err := os.ReadFile(*schemaFile)
		if err != nil {
			return fmt.Errorf("zerv: failed to read schema file: %w", err)
		}
		body = string(data)
	}

	args := pipeline.Args{
		SchemaName:     *schemaName,
		SchemaBody:     body,
		Dirty:          *dirty,
		NoDirty:        *noDirty,
		Clean:          *clean,
		BumpContext:    *bumpContext,
		NoBumpContext:  *noBumpContext,
		PreserveCustom: map[string]bool{},
	}

	inFmt, err := format.ParseFormat(*inFormat)
	if err != nil {
		return err
	}
	args.InputFormat = inFmt

	outFmt, err := format.ParseFormat(*outFormat)
	if err != nil {
		return err
	}
	args.OutputFormat = outFmt

	switch {
	case *inVersion != "":
		v := *inVersion
		args.InputVersion = &v
	case *fromStdin:
		text, err := readAll(stdin)
		if err != nil {
			return err
		}
		if inFmt == format.Zerv {
			args.InputZervDoc = &text
		} else {
			args.InputVersion = &text
		}
	default:
		data, err := vcsDataFromFlags(*tagVersion, uint32(*distance), *branch, *commitHash)
		if err != nil {
			return err
		}
		args.VcsData = &data
	}

	// When acquisition already built a fresh VcsData from these same flags,
	// step 3's overrides would be redundant; they only apply on top of a
	// parsed version string or a deserialized zerv document.
	if args.VcsData == nil {
		if *tagVersion != "" {
			v := *tagVersion
			args.TagVersion = &v
		}
		if *distance != 0 {
			d := uint32(*distance)
			args.Distance = &d
		}
		if *branch != "" {
			b := *branch
			args.CurrentBranch = &b
		}
		if *commitHash != "" {
			h := *commitHash
			args.CommitHash = &h
		}
	}

	named := namedOps(bumpFlags{
		major: *bumpMajor, minor: *bumpMinor, patch: *bumpPatch, epoch: *bumpEpoch,
		pre: *bumpPre, post: *bumpPost, dev: *bumpDev,
	}, overrideFlags{
		major: *overrideMajor, minor: *overrideMinor, patch: *overridePatch, epoch: *overrideEpoch,
		pre: *overridePre, post: *overridePost, dev: *overrideDev,
	})
	args.NamedOps = named

	args.IndexedSpecs = indexSpecs

	if *template != "" {
		t := *template
		args.OutputTemplate = &t
	}
	args.OutputPrefix = *prefix

	out, err := pipeline.Run(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, out)
	return nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", fmt.Errorf("zerv: failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func vcsDataFromFlags(tagVersion string, distance uint32, branch, commitHash string) (vcs.Data, error) {
	d := vcs.Data{Distance: distance}
	if tagVersion != "" {
		d.TagVersion = &tagVersion
	}
	if branch != "" {
		bn, err := vcs.ParseBranchName(branch)
		if err != nil {
			return vcs.Data{}, err
		}
		d.CurrentBranch = &bn
	}
	if commitHash != "" {
		h, err := vcs.ParseHash(commitHash)
		if err != nil {
			return vcs.Data{}, err
		}
		d.CommitHash = h
		sh, err := vcs.ParseShortHash(h.Short())
		if err != nil {
			return vcs.Data{}, err
		}
		d.CommitHashShort = sh
	}
	return d, nil
}

type bumpFlags struct {
	major, minor, patch, epoch, pre, post, dev bool
}

type overrideFlags struct {
	major, minor, patch, epoch, pre, post, dev string
}

func namedOps(b bumpFlags, o overrideFlags) []bump.NamedOp {
	var ops []bump.NamedOp
	add := func(target bump.Target, bumpIt bool, override string) {
		if !bumpIt && override == "" {
			return
		}
		op := bump.NamedOp{Target: target, Bump: bumpIt}
		if override != "" {
			v := override
			op.Override = &v
		}
		ops = append(ops, op)
	}
	add(bump.TargetMajor, b.major, o.major)
	add(bump.TargetMinor, b.minor, o.minor)
	add(bump.TargetPatch, b.patch, o.patch)
	add(bump.TargetEpoch, b.epoch, o.epoch)
	add(bump.TargetPreReleaseNum, b.pre, o.pre)
	add(bump.TargetPost, b.post, o.post)
	add(bump.TargetDev, b.dev, o.dev)
	return ops
}

