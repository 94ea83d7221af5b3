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

// Package errors defines the pipeline-level error vocabulary from spec §7:
// the typed variants a CLI or library caller needs to pattern-match on to
// choose an exit code, distinct from dxcore/errors' enum-parsing vocabulary.
package errors

import (
	"fmt"
	"strings"
)

// InvalidVersion is returned when an input version string does not parse
// under the selected (or auto-detected) format.
type InvalidVersion struct {
	Input  string
	Format string
	Reason string
}

func (e *InvalidVersion) Error() string {
	return fmt.Sprintf("zerv: invalid version %q for format %s: %s", e.Input, e.Format, e.Reason)
}

// InvalidFormat is returned when a --format flag names a grammar the engine
// does not recognize at all (distinct from UnknownFormat, which reports a
// failed auto-detection),
// or when a custom schema body fails validation (S1-S3). Valid, when
// non-empty, enumerates the alternatives the caller could have used instead.
type InvalidFormat struct {
	Value string
	Valid []string
}

func (e *InvalidFormat) Error() string {
	msg := fmt.Sprintf("zerv: invalid format: %q", e.Value)
	if len(e.Valid) > 0 {
		msg += fmt.Sprintf(" (valid: %s)", strings.Join(e.Valid, ", "))
	}
	return msg
}

// UnknownFormat is returned when auto-detection could not classify an input
// string as any known format.
type UnknownFormat struct {
	Input string
}

func (e *UnknownFormat) Error() string {
	return fmt.Sprintf("zerv: could not detect format for input: %q", e.Input)
}

// UnknownSchema is returned when a --schema name does not match any preset
// or registered custom schema.
type UnknownSchema struct {
	Name string
}

func (e *UnknownSchema) Error() string {
	return fmt.Sprintf("zerv: unknown schema: %q", e.Name)
}

// ConflictingOptions is returned when two or more CLI/API options cannot be
// honored together. Pairs holds every conflicting combination observed in
// one validation pass (see pipeline's validate, which builds it from
// bump.CheckConflicts).
type ConflictingOptions struct {
	Pairs [][2]string
}

func (e *ConflictingOptions) Error() string {
	msg := "zerv: conflicting options:"
	for _, pair := range e.Pairs {
		msg += fmt.Sprintf(" (%s, %s)", pair[0], pair[1])
	}
	return msg
}

// InvalidBumpTarget is returned when a named or indexed bump/override spec
// cannot be applied to the resolved schema.
type InvalidBumpTarget struct {
	Message    string
	Section    string
	Suggestion string
}

func (e *InvalidBumpTarget) Error() string {
	msg := fmt.Sprintf("zerv: invalid bump target in %s section: %s", e.Section, e.Message)
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}
	return msg
}

// InvalidArgument is returned for malformed CLI/API argument values that do
// not fit a more specific variant above.
type InvalidArgument struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("zerv: invalid argument %s=%q: %s", e.Name, e.Value, e.Reason)
}

// StdinError is returned when reading VCS data or a version string from
// stdin fails.
type StdinError struct {
	Reason string
}

func (e *StdinError) Error() string {
	return "zerv: failed to read stdin: " + e.Reason
}

// VcsNotFound is returned when the pipeline needs VCS data (no explicit
// input version was given) but none was supplied.
type VcsNotFound struct{}

func (e *VcsNotFound) Error() string {
	return "zerv: no VCS data available and no explicit version given"
}

// CommandFailed is returned when an external command invoked on the
// caller's behalf (outside the core engine's scope, e.g. a VCS probe
// wrapper) exits non-zero.
type CommandFailed struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandFailed) Error() string {
	return fmt.Sprintf("zerv: command %q failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
}
