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

package bump_test

import (
	"testing"

	"zerv.dev/zerv/bump"
)

func TestTarget_String(t *testing.T) {
	tests := []struct {
		name   string
		target bump.Target
		want   string
	}{
		{"Major", bump.TargetMajor, "major"},
		{"Minor", bump.TargetMinor, "minor"},
		{"Patch", bump.TargetPatch, "patch"},
		{"Epoch", bump.TargetEpoch, "epoch"},
		{"PreReleaseNum", bump.TargetPreReleaseNum, "pre-release"},
		{"Post", bump.TargetPost, "post"},
		{"Dev", bump.TargetDev, "dev"},
		{"Unknown", bump.Target(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.String(); got != tt.want {
				t.Errorf("Target.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bump.Target
		wantErr bool
	}{
		{"major", "major", bump.TargetMajor, false},
		{"Major_mixed_case", "Major", bump.TargetMajor, false},
		{"pre-release", "pre-release", bump.TargetPreReleaseNum, false},
		{"prerelease_alias", "prerelease", bump.TargetPreReleaseNum, false},
		{"unknown", "bogus", bump.TargetNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bump.ParseTarget(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTarget(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTarget(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTarget(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
