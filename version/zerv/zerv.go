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

package zerv

import "zerv.dev/zerv/dxcore/model"

// Zerv pairs a variable store with the schema that knows how to arrange it
// into text. It is the engine's native, format-agnostic representation:
// every codec (SemVer, PEP 440) and the template renderer work by producing
// or consuming a Zerv, never by touching the destination string directly.
type Zerv struct {
	Schema Schema
	Vars   Vars
}

var _ model.Model = (*Zerv)(nil)

// String renders z through its schema. Rendering errors collapse to the
// empty string here, matching the Loggable contract's "always safe to
// call" expectation; callers that need the error SHOULD call Render
// directly.
func (z Zerv) String() string {
	s, err := z.Schema.Render(z.Vars)
	if err != nil {
		return ""
	}
	return s
}

// Render is String's error-returning counterpart, for callers (the
// pipeline driver, template helpers) that must distinguish a rendering
// failure from a legitimately empty result.
func (z Zerv) Render() (string, error) {
	return z.Schema.Render(z.Vars)
}

func (z Zerv) Redacted() string { return z.String() }
func (z Zerv) TypeName() string { return "Zerv" }
func (z Zerv) IsZero() bool     { return z.Schema.Name == "" && z.Vars.IsZero() }

func (z Zerv) Validate() error {
	return z.Schema.Validate()
}

// Equal reports genuine structural equality — same Schema and same Vars,
// field for field — not precedence rank. Two Zervs that render identically
// or compare equal under Compare can still differ here (different schema
// name, different Custom map entries outside the active precedence order).
// Grounded on the teacher's model.Equal helper (JSON round-trip compare),
// which exists precisely because Vars and Schema both hold maps and slices
// that == cannot compare directly.
func (z Zerv) Equal(other Zerv) bool {
	return model.Equal(z, other)
}

// Compare orders z against other by rendered precedence, using z's own
// PrecedenceOrder. Two Zervs can Compare equal (0) while Equal reports
// false, e.g. when they differ only in a build-metadata field that sits
// outside the active precedence order.
func (z Zerv) Compare(other Zerv) int {
	return Compare(z.Vars, other.Vars, z.Schema.order())
}

// Clone returns a Zerv with an independently mutable Vars store. Schema is
// shared (schemas are treated as immutable presets).
func (z Zerv) Clone() Zerv {
	return Zerv{Schema: z.Schema, Vars: z.Vars.Clone()}
}
