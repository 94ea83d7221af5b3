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

package bridge

import (
	"fmt"
	"strconv"

	"zerv.dev/zerv/version/pep440"
	"zerv.dev/zerv/version/zerv"
)

// FromPEP440 maps a parsed PEP 440 Version onto a fresh Vars store. The
// release segment is padded/truncated to (Major, Minor, Patch); any
// segments beyond the third are preserved in Custom("pep440_release_tail")
// so ToPEP440 can restore them.
func FromPEP440(v pep440.Version) zerv.Vars {
	vars := zerv.Vars{Epoch: v.Epoch, Custom: map[string]string{}}

	if len(v.Release) > 0 {
		vars.Major = v.Release[0]
	}
	if len(v.Release) > 1 {
		vars.Minor = v.Release[1]
	}
	if len(v.Release) > 2 {
		vars.Patch = v.Release[2]
	}
	if len(v.Release) > 3 {
		tail := make([]string, len(v.Release)-3)
		for i, n := range v.Release[3:] {
			tail[i] = strconv.FormatUint(n, 10)
		}
		vars.Custom["pep440_release_tail"] = joinDot(tail)
	}

	if v.Pre != nil {
		vars.PreRelease.Label = v.Pre.Kind.String()
		n := uint32(v.Pre.Number)
		vars.PreRelease.Number = &n
	}
	if v.Post != nil {
		p := uint32(*v.Post)
		vars.Post = &p
	}
	if v.Dev != nil {
		d := uint32(*v.Dev)
		vars.Dev = &d
	}
	if len(v.Local) > 0 {
		parts := make([]string, len(v.Local))
		for i, seg := range v.Local {
			if seg.IsNumeric {
				parts[i] = strconv.FormatUint(seg.Num, 10)
			} else {
				parts[i] = seg.Str
			}
		}
		vars.Custom["pep440_local"] = joinDot(parts)
	}
	return vars
}

// ToPEP440 maps a Vars store back onto a PEP 440 Version.
func ToPEP440(v zerv.Vars) (pep440.Version, error) {
	out := pep440.Version{Epoch: v.Epoch, Release: []uint64{v.Major, v.Minor, v.Patch}}

	if tail, ok := v.Custom["pep440_release_tail"]; ok && tail != "" {
		for _, s := range splitDot(tail) {
			n, ok := parseUintStrict(s)
			if !ok {
				continue
			}
			out.Release = append(out.Release, n)
		}
	}

	if v.PreRelease.Label != "" {
		kind, err := normalizePEP440Label(v.PreRelease.Label)
		if err != nil {
			return pep440.Version{}, err
		}
		var num uint64
		if v.PreRelease.Number != nil {
			num = uint64(*v.PreRelease.Number)
		}
		out.Pre = &pep440.PreRelease{Kind: kind, Number: num, Explicit: v.PreRelease.Number != nil}
	}
	if v.Post != nil {
		p := uint64(*v.Post)
		out.Post = &p
	}
	if v.Dev != nil {
		d := uint64(*v.Dev)
		out.Dev = &d
	}
	if local, ok := v.Custom["pep440_local"]; ok && local != "" {
		for _, s := range splitDot(local) {
			if n, ok := parseUintStrict(s); ok {
				out.Local = append(out.Local, pep440.LocalSegment{IsNumeric: true, Num: n})
			} else {
				out.Local = append(out.Local, pep440.LocalSegment{Str: s})
			}
		}
	} else if v.Distance > 0 || v.Dirty {
		for _, s := range vcsBuildTail(v) {
			if n, ok := parseUintStrict(s); ok {
				out.Local = append(out.Local, pep440.LocalSegment{IsNumeric: true, Num: n})
			} else {
				out.Local = append(out.Local, pep440.LocalSegment{Str: s})
			}
		}
	}
	return out, nil
}

func normalizePEP440Label(label string) (pep440.PreReleaseKind, error) {
	switch label {
	case "a", "alpha":
		return pep440.PreReleaseAlpha, nil
	case "b", "beta":
		return pep440.PreReleaseBeta, nil
	case "rc", "c", "pre", "preview":
		return pep440.PreReleaseRC, nil
	default:
		return pep440.PreReleaseNone, fmt.Errorf("unrecognized pre-release label %q", label)
	}
}
