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
	"zerv.dev/zerv/version/pep440"
	"zerv.dev/zerv/version/zerv"
	"zerv.dev/zerv/version/zerv/bridge"
)

func TestToPEP440_PostRidesNatively(t *testing.T) {
	post := uint32(5)
	v := zerv.Vars{Major: 1, Minor: 2, Patch: 3, Post: &post}
	out, err := bridge.ToPEP440(v)
	if err != nil {
		t.Fatalf("ToPEP440: %v", err)
	}
	got := out.String()
	want := "1.2.3.post5"
	if got != want {
		t.Errorf("ToPEP440(...).String() = %q, want %q", got, want)
	}
}

func TestToPEP440_SynthesizesLocalFromVcsFields(t *testing.T) {
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
	out, err := bridge.ToPEP440(v)
	if err != nil {
		t.Fatalf("ToPEP440: %v", err)
	}
	got := out.String()
	want := "1.2.3.post5+main.5." + hash.Short()
	if got != want {
		t.Errorf("ToPEP440(...).String() = %q, want %q", got, want)
	}
}

func TestFromPEP440_ToPEP440_RoundTrip(t *testing.T) {
	const input = "2!1.2.3rc4.post5.dev6+ubuntu.20.4"
	pv, err := pep440.ParseVersion(input)
	if err != nil {
		t.Fatalf("ParseVersion(%q): %v", input, err)
	}
	v := bridge.FromPEP440(pv)
	out, err := bridge.ToPEP440(v)
	if err != nil {
		t.Fatalf("ToPEP440: %v", err)
	}
	got := out.String()
	if got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}
