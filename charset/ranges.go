// seehuhn.de/go/fontmerge - composite fonts from per-script subsets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package charset

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// InvalidRangeError indicates a malformed Unicode range specification.
type InvalidRangeError struct {
	Spec   string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Spec, e.Reason)
}

// ParseRanges converts range specifications of the form "U+XXXX" or
// "U+XXXX-YYYY" (hexadecimal, bounds inclusive) into a Set.
func ParseRanges(specs []string) (Set, error) {
	res := make(Set)
	for _, spec := range specs {
		lo, hi, err := parseRange(spec)
		if err != nil {
			return nil, err
		}
		for r := lo; r <= hi; r++ {
			res[r] = struct{}{}
		}
	}
	return res, nil
}

func parseRange(spec string) (lo, hi rune, err error) {
	s := strings.TrimSpace(spec)
	if !strings.HasPrefix(s, "U+") && !strings.HasPrefix(s, "u+") {
		return 0, 0, &InvalidRangeError{spec, "missing U+ prefix"}
	}
	s = s[2:]

	var first, second string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		first, second = s[:idx], s[idx+1:]
	} else {
		first, second = s, s
	}

	lo, err = parseHex(spec, first)
	if err != nil {
		return 0, 0, err
	}
	hi, err = parseHex(spec, second)
	if err != nil {
		return 0, 0, err
	}
	if hi < lo {
		return 0, 0, &InvalidRangeError{spec, "bounds reversed"}
	}
	return lo, hi, nil
}

func parseHex(spec, digits string) (rune, error) {
	if digits == "" {
		return 0, &InvalidRangeError{spec, "empty bound"}
	}
	x, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, &InvalidRangeError{spec, "not a hexadecimal number"}
	}
	if x > unicode.MaxRune {
		return 0, &InvalidRangeError{spec, "beyond U+10FFFF"}
	}
	return rune(x), nil
}
