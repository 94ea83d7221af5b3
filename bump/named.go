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

package bump

import (
	"fmt"
	"strconv"

	"zerv.dev/zerv/version/zerv"
)

// NamedOp is one override/bump instruction against a semantic Target,
// independent of schema layout (spec §4.6 "name-addressed operations").
// When Override is non-nil it is applied first (setting the var to the
// given value), then Bump (if true) increments the resulting value by one
// — "override-then-bump" ordering, matching the indexed engine's rule.
type NamedOp struct {
	Target   Target
	Override *string
	Bump     bool
}

// ApplyNamed applies ops in order against v, cascading a precedence-zero
// after every bump per zerv.CascadeZero. preserveCustom names Custom keys
// that survive a cascade (see spec §4.6 "named custom survivors").
func ApplyNamed(v *zerv.Vars, ops []NamedOp, preserveCustom map[string]bool) error {
	for _, op := range ops {
		if err := applyOne(v, op, preserveCustom); err != nil {
			return fmt.Errorf("zerv: named op on %s failed: %w", op.Target, err)
		}
	}
	return nil
}

func applyOne(v *zerv.Vars, op NamedOp, preserveCustom map[string]bool) error {
	switch op.Target {
	case TargetMajor:
		return applyUint64(&v.Major, op, func() { zerv.CascadeZero(v, zerv.VarMajor, preserveCustom) })
	case TargetMinor:
		return applyUint64(&v.Minor, op, func() { zerv.CascadeZero(v, zerv.VarMinor, preserveCustom) })
	case TargetPatch:
		return applyUint64(&v.Patch, op, func() { zerv.CascadeZero(v, zerv.VarPatch, preserveCustom) })
	case TargetEpoch:
		return applyUint64(&v.Epoch, op, func() { zerv.CascadeZero(v, zerv.VarEpoch, preserveCustom) })
	case TargetPreReleaseNum:
		return applyOptU32(&v.PreRelease.Number, op, func() { zerv.CascadeZero(v, zerv.VarPreReleaseNumber, preserveCustom) })
	case TargetPost:
		return applyOptU32(&v.Post, op, func() { zerv.CascadeZero(v, zerv.VarPost, preserveCustom) })
	case TargetDev:
		return applyOptU32(&v.Dev, op, func() { zerv.CascadeZero(v, zerv.VarDev, preserveCustom) })
	default:
		return fmt.Errorf("target %s cannot be bumped or overridden directly", op.Target)
	}
}

func applyUint64(field *uint64, op NamedOp, cascade func()) error {
	if op.Override != nil {
		n, err := strconv.ParseUint(*op.Override, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid override value %q: %w", *op.Override, err)
		}
		*field = n
	}
	if op.Bump {
		*field++
		cascade()
	} else if op.Override != nil {
		cascade()
	}
	return nil
}

func applyOptU32(field **uint32, op NamedOp, cascade func()) error {
	if op.Override != nil {
		n, err := strconv.ParseUint(*op.Override, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid override value %q: %w", *op.Override, err)
		}
		v := uint32(n)
		*field = &v
	}
	if op.Bump {
		if *field == nil {
			var zero uint32
			*field = &zero
		}
		**field++
		cascade()
	} else if op.Override != nil {
		cascade()
	}
	return nil
}
