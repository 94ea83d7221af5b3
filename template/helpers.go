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

package template

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"zerv.dev/zerv/version/zerv"
)

// callArgs carries a helper invocation's positional and keyword arguments,
// mirroring Handlebars' param()/hash_get() split that the original helper
// catalogue this package is grounded on (original_source's
// cli/utils/template/helpers.rs) relies on throughout.
type callArgs struct {
	Pos []any
	Kw  map[string]any
}

// callHelper dispatches a helper invocation by name. Every helper reads its
// positional arguments by position; a missing required positional argument
// is a template error, and positional arguments beyond those a helper reads
// are ignored. Unknown keyword names are
// silently ignored, matching Handlebars' hash_get semantics.
func callHelper(name string, args callArgs) (any, error) {
	switch name {
	case "sanitize":
		return helperSanitize(args)
	case "hash":
		return helperHash(args)
	case "hash_int":
		return helperHashInt(args)
	case "prefix":
		return helperPrefix(args)
	case "format_timestamp":
		return helperFormatTimestamp(args)
	case "add":
		return helperArith(args, func(a, b int64) int64 { return a + b })
	case "subtract":
		return helperArith(args, func(a, b int64) int64 { return a - b })
	case "multiply":
		return helperArith(args, func(a, b int64) int64 { return a * b })
	default:
		return nil, fmt.Errorf("zerv: unknown template helper %q", name)
	}
}

func argString(args []any, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("zerv: missing argument %d", i)
	}
	return toDisplayString(args[i]), nil
}

func argInt(args []any, i int) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("zerv: missing argument %d", i)
	}
	switch v := args[i].(type) {
	case int64:
		return v, nil
	case uint64:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("zerv: argument %d (%q) is not an integer", i, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("zerv: argument %d has non-numeric type", i)
	}
}

// kwString reads a string-valued keyword argument. The second return value
// reports whether the key was present at all.
func kwString(kw map[string]any, key string) (string, bool, error) {
	v, ok := kw[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, fmt.Errorf("zerv: %s must be a string", key)
	}
	return s, true, nil
}

func kwBool(kw map[string]any, key string) (bool, bool, error) {
	v, ok := kw[key]
	if !ok {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, true, fmt.Errorf("zerv: %s must be a boolean", key)
	}
	return b, true, nil
}

func kwInt(kw map[string]any, key string) (int64, bool, error) {
	v, ok := kw[key]
	if !ok {
		return 0, false, nil
	}
	switch t := v.(type) {
	case int64:
		return t, true, nil
	case uint64:
		return int64(t), true, nil
	case float64:
		return int64(t), true, nil
	default:
		return 0, true, fmt.Errorf("zerv: %s must be numeric", key)
	}
}

// helperSanitize(value, preset=?, separator=?, lowercase=?, keep_zeros=?,
// max_length=?) cleans an arbitrary string for embedding in a version
// segment. A named preset and custom parameters are mutually exclusive;
// with neither given, it defaults to the "pep440_local_str" preset.
func helperSanitize(args callArgs) (any, error) {
	s, err := argString(args.Pos, 0)
	if err != nil {
		return nil, err
	}

	preset, hasPreset, err := kwString(args.Kw, "preset")
	if err != nil {
		return nil, err
	}
	separator, hasSeparator, err := kwString(args.Kw, "separator")
	if err != nil {
		return nil, err
	}
	lowercase, hasLowercase, err := kwBool(args.Kw, "lowercase")
	if err != nil {
		return nil, err
	}
	keepZeros, hasKeepZeros, err := kwBool(args.Kw, "keep_zeros")
	if err != nil {
		return nil, err
	}
	maxLength, hasMaxLength, err := kwInt(args.Kw, "max_length")
	if err != nil {
		return nil, err
	}

	hasCustom := hasSeparator || hasLowercase || hasKeepZeros || hasMaxLength
	if hasPreset && hasCustom {
		return nil, fmt.Errorf("zerv: sanitize cannot mix preset with custom parameters")
	}

	if hasCustom {
		sep := "-"
		if hasSeparator {
			sep = separator
		}
		ml := -1
		if hasMaxLength {
			ml = int(maxLength)
		}
		return sanitizeCustom(s, sep, lowercase, keepZeros, ml), nil
	}

	if hasPreset {
		return sanitizeWithPreset(preset, s)
	}
	return sanitizeWithPreset("pep440_local_str", s)
}

// sanitizeWithPreset applies one of the three named sanitize presets (spec
// §4.7): semver_str keeps case, pep440_local_str lowercases, both
// dot-separate on any non-alphanumeric run and strip leading zeros from
// all-numeric segments; uint strips everything but digits.
func sanitizeWithPreset(preset, s string) (string, error) {
	switch preset {
	case "semver_str", "semver", "dotted":
		return sanitizeDotted(s, false), nil
	case "pep440_local_str", "pep440", "lower_dotted":
		return sanitizeDotted(s, true), nil
	case "uint":
		var b strings.Builder
		for _, r := range s {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("zerv: unknown sanitize preset %q", preset)
	}
}

func sanitizeDotted(s string, lowercase bool) string {
	segments := strings.FieldsFunc(s, func(r rune) bool {
		return !isAlnum(r)
	})
	for i, seg := range segments {
		segments[i] = stripLeadingZeros(seg)
	}
	out := strings.Join(segments, ".")
	if lowercase {
		out = strings.ToLower(out)
	}
	return out
}

// sanitizeCustom replaces every character outside [A-Za-z0-9._-] with sep,
// per the "separator" custom parameter, then optionally strips leading
// zeros from each dot-separated numeric segment, lowercases, and truncates
// to maxLength (ignored when negative).
func sanitizeCustom(s, sep string, lowercase, keepZeros bool, maxLength int) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case isAlnum(r), r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteString(sep)
		}
	}
	out := b.String()
	if !keepZeros {
		parts := strings.Split(out, ".")
		for i, p := range parts {
			parts[i] = stripLeadingZeros(p)
		}
		out = strings.Join(parts, ".")
	}
	if lowercase {
		out = strings.ToLower(out)
	}
	if maxLength >= 0 && len(out) > maxLength {
		out = out[:maxLength]
	}
	return out
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// stripLeadingZeros strips leading zeros from an all-numeric segment,
// never reducing it to empty ("007" -> "7", "000" -> "0"). Non-numeric
// segments pass through unchanged.
func stripLeadingZeros(s string) string {
	if !isAllDigits(s) {
		return s
	}
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// helperHash(value, length=7) returns the first length hex characters of
// value's SHA-256 digest.
func helperHash(args callArgs) (any, error) {
	s, err := argString(args.Pos, 0)
	if err != nil {
		return nil, err
	}
	length := int64(7)
	if len(args.Pos) > 1 {
		length, err = argInt(args.Pos, 1)
		if err != nil {
			return nil, err
		}
	}
	if length < 0 {
		return nil, fmt.Errorf("zerv: hash length must not be negative, got %d", length)
	}
	sum := sha256.Sum256([]byte(s))
	full := hex.EncodeToString(sum[:])
	if int64(len(full)) < length {
		return full, nil
	}
	return full[:length], nil
}

// helperHashInt(value, digits, allow_leading_zero=false) returns a decimal
// numeric hash of value with exactly digits decimal digits. With
// allow_leading_zero=false (the default) the result is clamped into
// [10^(digits-1), 10^digits-1] so its first digit is never zero (spec
// testable property 11); with allow_leading_zero=true it is reduced modulo
// 10^digits and may carry leading zeros when rendered with fewer digits.
func helperHashInt(args callArgs) (any, error) {
	s, err := argString(args.Pos, 0)
	if err != nil {
		return nil, err
	}
	digits, err := argInt(args.Pos, 1)
	if err != nil {
		return nil, err
	}
	if digits < 0 || digits > 20 {
		return nil, fmt.Errorf("zerv: hash_int digits must be between 0 and 20, got %d", digits)
	}
	allowLeadingZero, _, err := kwBool(args.Kw, "allow_leading_zero")
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256([]byte(s))
	n := binary.BigEndian.Uint64(sum[:8])

	if allowLeadingZero {
		return hashWithLeadingZero(n, digits), nil
	}
	return hashWithoutLeadingZero(n, digits), nil
}

func hashWithLeadingZero(n uint64, digits int64) string {
	if digits >= 20 {
		return fmt.Sprintf("%0*d", digits, n)
	}
	return fmt.Sprintf("%0*d", digits, n%pow10(digits))
}

func hashWithoutLeadingZero(n uint64, digits int64) string {
	if digits == 0 {
		return "0"
	}
	if digits == 20 {
		s := strconv.FormatUint(n, 10)
		if len(s) >= 20 {
			return s[:20]
		}
		padded := fmt.Sprintf("%020d", n)
		if strings.HasPrefix(padded, "0") {
			return "1" + strings.TrimPrefix(padded, "0")
		}
		return padded
	}
	minVal := pow10(digits - 1)
	maxVal := pow10(digits) - 1
	rangeSize := maxVal - minVal + 1
	return strconv.FormatUint(n%rangeSize+minVal, 10)
}

func pow10(n int64) uint64 {
	r := uint64(1)
	for i := int64(0); i < n; i++ {
		r *= 10
	}
	return r
}

// helperPrefix(s, n) returns the first n runes of s, or all of s if
// shorter.
func helperPrefix(args callArgs) (any, error) {
	s, err := argString(args.Pos, 0)
	if err != nil {
		return nil, err
	}
	n, err := argInt(args.Pos, 1)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if n < 0 {
		return nil, fmt.Errorf("zerv: prefix length must not be negative, got %d", n)
	}
	if int64(len(runes)) < n {
		return s, nil
	}
	return string(runes[:n]), nil
}

// helperFormatTimestamp(ts, format=?) formats a Unix timestamp against a
// calendar preset or chrono-style format string (see zerv.FormatTimestamp),
// defaulting to "%Y-%m-%d". format may be given positionally or as a
// keyword, matching the two calling conventions present in the examples.
func helperFormatTimestamp(args callArgs) (any, error) {
	ts, err := argInt(args.Pos, 0)
	if err != nil {
		return nil, err
	}
	format, hasFormat, err := kwString(args.Kw, "format")
	if err != nil {
		return nil, err
	}
	if !hasFormat {
		if len(args.Pos) > 1 {
			format, err = argString(args.Pos, 1)
			if err != nil {
				return nil, err
			}
		} else {
			format = "%Y-%m-%d"
		}
	}
	return zerv.FormatTimestamp(ts, format)
}

func helperArith(args callArgs, op func(a, b int64) int64) (any, error) {
	a, err := argInt(args.Pos, 0)
	if err != nil {
		return nil, err
	}
	b, err := argInt(args.Pos, 1)
	if err != nil {
		return nil, err
	}
	return op(a, b), nil
}
