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

package semver_test

import (
	"testing"

	"zerv.dev/zerv/version/semver"
)

func TestVersion_String(t *testing.T) {
	tests := []struct {
		name    string
		version semver.Version
		want    string
	}{
		{
			name:    "simple_version",
			version: semver.Version{Major: 1, Minor: 2, Patch: 3},
			want:    "1.2.3",
		},
		{
			name:    "with_prerelease",
			version: semver.Version{Major: 1, Pre: []semver.Identifier{{Str: "alpha"}, {IsNumeric: true, Num: 1}}},
			want:    "1.0.0-alpha.1",
		},
		{
			name:    "with_build",
			version: semver.Version{Major: 2, Build: []string{"build", "123"}},
			want:    "2.0.0+build.123",
		},
		{
			name:    "zero_version",
			version: semver.Version{},
			want:    "0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.version.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    semver.Version
		wantErr bool
	}{
		{name: "simple", input: "1.2.3", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "leading_v", input: "v2.0.0", want: semver.Version{Major: 2}},
		{
			name:  "prerelease_numeric_and_string",
			input: "1.0.0-alpha.1",
			want:  semver.Version{Major: 1, Pre: []semver.Identifier{{Str: "alpha"}, {IsNumeric: true, Num: 1}}},
		},
		{name: "invalid", input: "not-a-version", wantErr: true},
		{name: "leading_zero_prerelease", input: "1.0.0-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := semver.ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal", a: "1.0.0", b: "1.0.0", want: 0},
		{name: "major_less", a: "1.0.0", b: "2.0.0", want: -1},
		{name: "prerelease_less_than_release", a: "1.0.0-alpha", b: "1.0.0", want: -1},
		{name: "numeric_before_alpha", a: "1.0.0-1", b: "1.0.0-alpha", want: -1},
		{name: "longer_prerelease_chain_wins", a: "1.0.0-alpha", b: "1.0.0-alpha.1", want: -1},
		{name: "build_ignored", a: "1.0.0+build1", b: "1.0.0+build2", want: 0},
		{name: "numeric_identifiers_compare_as_integers", a: "1.0.0-2", b: "1.0.0-10", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := semver.ParseVersion(tt.a)
			if err != nil {
				t.Fatalf("parse a: %v", err)
			}
			b, err := semver.ParseVersion(tt.b)
			if err != nil {
				t.Fatalf("parse b: %v", err)
			}
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVersion_IsZero(t *testing.T) {
	if !(semver.Version{}).IsZero() {
		t.Error("zero Version.IsZero() = false, want true")
	}
	if (semver.Version{Major: 1}).IsZero() {
		t.Error("Version{Major:1}.IsZero() = true, want false")
	}
}
