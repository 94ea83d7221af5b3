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

package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_ParsesVersionAndRendersSemVer(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-in", "1.2.3-alpha.1", "-out-format", "semver", "-bump-major"}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), "2.0.0-alpha.1"; got != want {
		t.Errorf("run() output = %q, want %q", got, want)
	}
}

func TestRun_VcsFlagsBuildFreshZerv(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{
		"-tag-version", "v1.2.3",
		"-distance", "5",
		"-branch", "main",
		"-commit-hash", "abc1234abc1234abc1234abc1234abc1234abc1",
		"-out-format", "semver",
	}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), "1.2.3-post.5+main.5.abc1234"; got != want {
		t.Errorf("run() output = %q, want %q", got, want)
	}
}

func TestRun_ReadsVersionFromStdin(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-stdin", "-out-format", "pep440"}, strings.NewReader("1.2.3\n"), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), "1.2.3"; got != want {
		t.Errorf("run() output = %q, want %q", got, want)
	}
}

func TestRun_ConflictingFlagsRejected(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-tag-version", "v1.2.3", "-clean", "-dirty"}, strings.NewReader(""), &out)
	if err == nil {
		t.Fatal("expected error for --clean combined with --dirty, got nil")
	}
}

func TestRun_UnknownFormatRejected(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-tag-version", "v1.2.3", "-out-format", "bogus"}, strings.NewReader(""), &out)
	if err == nil {
		t.Fatal("expected error for an unknown --out-format value, got nil")
	}
}
