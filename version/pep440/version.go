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

// Package pep440 implements the PEP 440 version codec (C3): parsing,
// normalized rendering, and precedence comparison, grounded on
// _examples/original_source/src/version/pep440/{core,parser,ordering}.rs.
package pep440

import (
	"fmt"
	"strconv"
	"strings"
)

// PreReleaseKind is the normalized pre-release label. PEP 440 accepts
// several spellings for each kind ("alpha"/"a", "beta"/"b",
// "c"/"pre"/"preview"/"rc") which all normalize to one of these three.
type PreReleaseKind int

const (
	PreReleaseNone PreReleaseKind = iota
	PreReleaseAlpha
	PreReleaseBeta
	PreReleaseRC
)

func (k PreReleaseKind) String() string {
	switch k {
	case PreReleaseAlpha:
		return "a"
	case PreReleaseBeta:
		return "b"
	case PreReleaseRC:
		return "rc"
	default:
		return ""
	}
}

func normalizePreReleaseLabel(s string) (PreReleaseKind, error) {
	switch strings.ToLower(s) {
	case "a", "alpha":
		return PreReleaseAlpha, nil
	case "b", "beta":
		return PreReleaseBeta, nil
	case "c", "rc", "pre", "preview":
		return PreReleaseRC, nil
	default:
		return PreReleaseNone, fmt.Errorf("unrecognized pre-release label %q", s)
	}
}

// PreRelease is a normalized (kind, number) pair. Per PEP 440, the number
// defaults to 0 when the input omits it (e.g. "1.0a" == "1.0a0") — the
// engine keeps that distinction (Explicit) for round-tripping original
// text, but render always produces the canonical label+number form.
type PreRelease struct {
	Kind     PreReleaseKind
	Number   uint64
	Explicit bool
}

// LocalSegment is one dot-separated token of the local version label. Per
// PEP 440 §Local version identifiers, a segment is either a run of ASCII
// digits (compared numerically) or a run of ASCII letters/digits (compared
// case-insensitively as a string); numeric segments always sort after
// alphanumeric ones of equal position.
type LocalSegment struct {
	IsNumeric bool
	Num       uint64
	Str       string
}

// Version is a parsed, normalized PEP 440 version.
//
//	[N!]N(.N)*[{a|b|rc}N][.postN][.devN][+local]
type Version struct {
	Epoch   uint64
	Release []uint64
	Pre     *PreRelease
	// Post and Dev distinguish an absent segment (nil) from an explicit
	// ".post0"/".dev0" (non-nil, Value 0) — both normalize identically on
	// render, but the distinction matters for round-tripping and for the
	// bump engine's override-vs-default semantics (see
	// _examples/original_source/src/schema/presets.rs "epoch_extra_core"
	// discussion and spec.md §9 open question).
	Post *uint64
	Dev  *uint64
	Local []LocalSegment
}

// ParseVersion parses and normalizes s per PEP 440 §Version scheme.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(strings.ToLower(s))
	raw = strings.TrimPrefix(raw, "v")

	var v Version

	if idx := strings.Index(raw, "!"); idx >= 0 {
		epoch, err := strconv.ParseUint(raw[:idx], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid epoch in %q: %w", s, err)
		}
		v.Epoch = epoch
		raw = raw[idx+1:]
	}

	if idx := strings.Index(raw, "+"); idx >= 0 {
		local, err := parseLocal(raw[idx+1:])
		if err != nil {
			return Version{}, fmt.Errorf("invalid local segment in %q: %w", s, err)
		}
		v.Local = local
		raw = raw[:idx]
	}

	release, rest, err := parseRelease(raw)
	if err != nil {
		return Version{}, fmt.Errorf("invalid release segment in %q: %w", s, err)
	}
	v.Release = release

	rest, pre, err := parsePre(rest)
	if err != nil {
		return Version{}, fmt.Errorf("invalid pre-release in %q: %w", s, err)
	}
	v.Pre = pre

	rest, post, err := parseDotted(rest, "post", "rev", "r")
	if err != nil {
		return Version{}, fmt.Errorf("invalid post segment in %q: %w", s, err)
	}
	if post == nil {
		if r2, n, ok := parseBarePost(rest); ok {
			rest, post = r2, n
		}
	}
	v.Post = post

	rest, dev, err := parseDotted(rest, "dev")
	if err != nil {
		return Version{}, fmt.Errorf("invalid dev segment in %q: %w", s, err)
	}
	v.Dev = dev

	if rest != "" {
		return Version{}, fmt.Errorf("unexpected trailing text %q in %q", rest, s)
	}

	return v, nil
}

func parseRelease(s string) ([]uint64, string, error) {
	i := 0
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	segStr := s[:i]
	rest := s[i:]
	if segStr == "" {
		return nil, "", fmt.Errorf("missing release segment")
	}
	parts := strings.Split(strings.Trim(segStr, "."), ".")
	release := make([]uint64, len(parts))
	for idx, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("non-numeric release segment %q: %w", p, err)
		}
		release[idx] = n
	}
	return release, rest, nil
}

// parsePre only commits to a pre-release match when the leading label is a
// recognized pre-release spelling (a/alpha/b/beta/c/rc/pre/preview). Any
// other leading label — "rev"/"r" post aliases, "dev", or no label at all
// ahead of a bare "-N" — is left untouched so parseDotted gets a chance at
// it; PEP 440 segments are only distinguishable by label, not position.
func parsePre(s string) (string, *PreRelease, error) {
	trimmed := strings.TrimLeft(s, ".-_")
	i := 0
	for i < len(trimmed) && !isDigit(trimmed[i]) && trimmed[i] != '.' && trimmed[i] != '+' {
		i++
	}
	label := trimmed[:i]
	if label == "" {
		return s, nil, nil
	}
	kind, err := normalizePreReleaseLabel(label)
	if err != nil {
		return s, nil, nil
	}
	rest := trimmed[i:]
	numStr, rest2 := takeDigits(rest)
	explicit := numStr != ""
	var num uint64
	if explicit {
		n, err := strconv.ParseUint(numStr, 10, 64)
		if err != nil {
			return s, nil, fmt.Errorf("invalid pre-release number %q: %w", numStr, err)
		}
		num = n
	}
	return rest2, &PreRelease{Kind: kind, Number: num, Explicit: explicit}, nil
}

// parseBarePost handles PEP 440's implicit post release: a bare "-N" with
// no label at all ("1.0-1" == "1.0.post1").
func parseBarePost(s string) (string, *uint64, bool) {
	if !strings.HasPrefix(s, "-") {
		return s, nil, false
	}
	digits, rest := takeDigits(s[1:])
	if digits == "" {
		return s, nil, false
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return s, nil, false
	}
	return rest, &n, true
}

// parseDotted parses an optional ".<label><N>" or "-N"-style segment whose
// label is one of names (case already lowercased by caller).
func parseDotted(s string, names ...string) (string, *uint64, error) {
	trimmed := strings.TrimPrefix(s, ".")
	trimmed = strings.TrimPrefix(trimmed, "-")
	for _, name := range names {
		if strings.HasPrefix(trimmed, name) {
			rest := trimmed[len(name):]
			numStr, rest2 := takeDigits(rest)
			var n uint64
			if numStr != "" {
				parsed, err := strconv.ParseUint(numStr, 10, 64)
				if err != nil {
					return s, nil, fmt.Errorf("invalid %s number %q: %w", name, numStr, err)
				}
				n = parsed
			}
			return rest2, &n, nil
		}
	}
	return s, nil, nil
}

func parseLocal(s string) ([]LocalSegment, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '-' || r == '_' })
	segs := make([]LocalSegment, len(parts))
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("empty local segment")
		}
		if isAllDigits(p) {
			n, err := strconv.ParseUint(p, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid numeric local segment %q: %w", p, err)
			}
			segs[i] = LocalSegment{IsNumeric: true, Num: n}
		} else {
			segs[i] = LocalSegment{Str: p}
		}
	}
	return segs, nil
}

func takeDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// String renders the canonical normalized form per PEP 440 §Normalization:
// epoch omitted when zero, release segment dot-joined, pre-release as
// "{a|b|rc}N" with no separator, post as ".postN", dev as ".devN", local
// as "+seg.seg...".
func (v Version) String() string {
	var b strings.Builder
	if v.Epoch != 0 {
		fmt.Fprintf(&b, "%d!", v.Epoch)
	}
	parts := make([]string, len(v.Release))
	for i, n := range v.Release {
		parts[i] = strconv.FormatUint(n, 10)
	}
	b.WriteString(strings.Join(parts, "."))

	if v.Pre != nil {
		fmt.Fprintf(&b, "%s%d", v.Pre.Kind.String(), v.Pre.Number)
	}
	if v.Post != nil {
		fmt.Fprintf(&b, ".post%d", *v.Post)
	}
	if v.Dev != nil {
		fmt.Fprintf(&b, ".dev%d", *v.Dev)
	}
	if len(v.Local) > 0 {
		segs := make([]string, len(v.Local))
		for i, seg := range v.Local {
			if seg.IsNumeric {
				segs[i] = strconv.FormatUint(seg.Num, 10)
			} else {
				segs[i] = seg.Str
			}
		}
		b.WriteString("+" + strings.Join(segs, "."))
	}
	return b.String()
}

// Validate reports whether v has at least one release segment.
func (v Version) Validate() error {
	if len(v.Release) == 0 {
		return fmt.Errorf("release segment must not be empty")
	}
	return nil
}

func (v Version) IsZero() bool {
	if v.Epoch != 0 || v.Pre != nil || v.Post != nil || v.Dev != nil || len(v.Local) > 0 {
		return false
	}
	for _, n := range v.Release {
		if n != 0 {
			return false
		}
	}
	return true
}
