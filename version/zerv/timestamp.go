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

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidTimestampPatterns are the fixed calendar presets a Timestamp(p)
// component may name (spec §3.1.2, invariant S3), grounded on
// original_source/src/version/zerv/schema.rs's
// test_validate_component_valid_timestamp cases. Bare names are unpadded;
// the "0"-prefixed sibling is the zero-padded form.
var ValidTimestampPatterns = []string{
	"YYYY", "YY",
	"MM", "0M",
	"DD", "0D",
	"HH", "0H",
	"mm", "0m",
	"SS", "0S",
	"WW", "0W",
	"compact_date", "compact_datetime",
}

// ValidTimestampPattern reports whether p is a recognized preset name or a
// chrono-style format string (invariant S3: "must either match the preset
// list or start with %").
func ValidTimestampPattern(p string) bool {
	if strings.HasPrefix(p, "%") {
		return true
	}
	for _, v := range ValidTimestampPatterns {
		if p == v {
			return true
		}
	}
	return false
}

// FormatTimestamp renders unix seconds ts against pattern p: a fixed
// calendar preset, or a chrono-style format string translated to Go's
// reference-time layout.
func FormatTimestamp(ts int64, p string) (string, error) {
	t := time.Unix(ts, 0).UTC()
	if s, ok := timestampPreset(p, t); ok {
		return s, nil
	}
	if strings.HasPrefix(p, "%") {
		return t.Format(chronoToGoLayout(p)), nil
	}
	return "", fmt.Errorf("zerv: unknown timestamp pattern %q", p)
}

func timestampPreset(name string, t time.Time) (string, bool) {
	_, isoWeek := t.ISOWeek()
	switch name {
	case "YYYY":
		return t.Format("2006"), true
	case "YY":
		return t.Format("06"), true
	case "MM":
		return strconv.Itoa(int(t.Month())), true
	case "0M":
		return t.Format("01"), true
	case "DD":
		return strconv.Itoa(t.Day()), true
	case "0D":
		return t.Format("02"), true
	case "HH":
		return strconv.Itoa(t.Hour()), true
	case "0H":
		return t.Format("15"), true
	case "mm":
		return strconv.Itoa(t.Minute()), true
	case "0m":
		return t.Format("04"), true
	case "SS":
		return strconv.Itoa(t.Second()), true
	case "0S":
		return t.Format("05"), true
	case "WW":
		return strconv.Itoa(isoWeek), true
	case "0W":
		return fmt.Sprintf("%02d", isoWeek), true
	case "compact_date":
		return t.Format("20060102"), true
	case "compact_datetime":
		return t.Format("20060102150405"), true
	default:
		return "", false
	}
}

// chronoToGoLayout translates the common strftime/chrono directives this
// repo's presets and template helpers accept into a Go reference-time
// layout. Unrecognized directives pass through literally (one of the "%?"
// pair) rather than erroring, matching chrono's own lenient behavior for a
// handful of rarely-used specifiers.
func chronoToGoLayout(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '%' || i == len(runes)-1 {
			b.WriteRune(r)
			continue
		}
		i++
		switch runes[i] {
		case 'Y':
			b.WriteString("2006")
		case 'y':
			b.WriteString("06")
		case 'm':
			b.WriteString("01")
		case 'd':
			b.WriteString("02")
		case 'H':
			b.WriteString("15")
		case 'I':
			b.WriteString("03")
		case 'M':
			b.WriteString("04")
		case 'S':
			b.WriteString("05")
		case 'p':
			b.WriteString("PM")
		case 'Z':
			b.WriteString("MST")
		case 'z':
			b.WriteString("-0700")
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}
