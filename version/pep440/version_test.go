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

package pep440_test

import (
	"testing"

	"zerv.dev/zerv/version/pep440"
)

func TestParseVersion_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "1.2.3", "1.2.3"},
		{"leading_v", "v1.2.3", "1.2.3"},
		{"epoch", "1!2.0", "1!2.0"},
		{"alpha_alias", "1.0alpha1", "1.0a1"},
		{"beta_alias", "1.0beta", "1.0b0"},
		{"rc_alias_c", "1.0c1", "1.0rc1"},
		{"rc_alias_pre", "1.0pre1", "1.0rc1"},
		{"post_alias_rev", "1.0rev2", "1.0.post2"},
		{"dev", "1.0.dev5", "1.0.dev5"},
		{"local", "1.0+ubuntu.1", "1.0+ubuntu.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pep440.ParseVersion(tt.input)
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if s := got.String(); s != tt.want {
				t.Errorf("ParseVersion(%q).String() = %q, want %q", tt.input, s, tt.want)
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
		{"equal", "1.0", "1.0", 0},
		{"release_order", "1.0", "2.0", -1},
		{"dev_before_release", "1.0.dev1", "1.0", -1},
		{"pre_before_release", "1.0a1", "1.0", -1},
		{"release_before_post", "1.0", "1.0.post1", -1},
		{"dev_before_pre", "1.0.dev1", "1.0a1", -1},
		{"alpha_before_beta", "1.0a1", "1.0b1", -1},
		{"beta_before_rc", "1.0b1", "1.0rc1", -1},
		{"shorter_release_zero_padded", "1.0", "1.0.0", 0},
		{"epoch_dominates", "1!1.0", "2.0", 1},
		{"local_outranks_no_local", "1.0", "1.0+local", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := pep440.ParseVersion(tt.a)
			if err != nil {
				t.Fatalf("parse a: %v", err)
			}
			b, err := pep440.ParseVersion(tt.b)
			if err != nil {
				t.Fatalf("parse b: %v", err)
			}
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
