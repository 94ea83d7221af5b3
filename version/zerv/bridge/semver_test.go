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

package bridge_test

import (
	"testing"

	"zerv.dev/zerv/vcs"
	"zerv.dev/zerv/version/semver"
	"zerv.dev/zerv/version/zerv"
	"zerv.dev/zerv/version/zerv/bridge"
)

func TestToSemVer_PostDevRideAsTrailingIdentifiers(t *testing.T) {
	post := uint32(5)
	v := zerv.Vars{Major: 1, Minor: 2, Patch: 3, Post: &post}
	got := bridge.ToSemVer(v).String()
	want := "1.2.3-post.5"
	if got != want {
		t.Errorf("ToSemVer(...).String() = %q, want %q", got, want)
	}
}

func TestToSemVer_SynthesizesBuildTailFromVcsFields(t *testing.T) {
	post := uint32(5)
	hash, err := vcs.ParseHash("abc1234abc1234abc1234abc1234abc1234abc1")
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	short, err := vcs.ParseShortHash(hash.Short())
	if err != nil {
		t.Fatalf("ParseShortHash: %v", err)
	}
	v := zerv.Vars{
		Major: 1, Minor: 2, Patch: 3,
		Post:            &post,
		Branch:          "main",
		Distance:        5,
		CommitHashShort: short,
	}
	got := bridge.ToSemVer(v).String()
	want := "1.2.3-post.5+main.5." + hash.Short()
	if got != want {
		t.Errorf("ToSemVer(...).String() = %q, want %q", got, want)
	}
}

func TestToSemVer_StashedBuildTakesPrecedenceOverSynthesis(t *testing.T) {
	v := zerv.Vars{
		Major: 1, Minor: 0, Patch: 0,
		Distance: 3,
		Custom:   map[string]string{"semver_build": "exp.sha.5114f85"},
	}
	got := bridge.ToSemVer(v).String()
	want := "1.0.0+exp.sha.5114f85"
	if got != want {
		t.Errorf("ToSemVer(...).String() = %q, want %q", got, want)
	}
}

func TestFromSemVer_ToSemVer_RoundTrip(t *testing.T) {
	const input = "1.2.3-alpha.1+build.5"
	sv, err := semver.ParseVersion(input)
	if err != nil {
		t.Fatalf("ParseVersion(%q): %v", input, err)
	}
	v := bridge.FromSemVer(sv)
	got := bridge.ToSemVer(v).String()
	if got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}
