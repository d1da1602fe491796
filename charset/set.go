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

// Package charset resolves script range/charset specifications into
// concrete codepoint sets.
package charset

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Set is a set of Unicode scalar values.
type Set map[rune]struct{}

// New returns a Set containing the given runes.
func New(rr ...rune) Set {
	s := make(Set, len(rr))
	for _, r := range rr {
		s[r] = struct{}{}
	}
	return s
}

// Add inserts r into the set.
func (s Set) Add(r rune) {
	s[r] = struct{}{}
}

// Has reports whether r is in the set.
func (s Set) Has(r rune) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of codepoints in the set.
func (s Set) Len() int {
	return len(s)
}

// Union merges other into s and returns s.
func (s Set) Union(other Set) Set {
	for r := range other {
		s[r] = struct{}{}
	}
	return s
}

// Subtract removes all codepoints of other from s and returns s.
func (s Set) Subtract(other Set) Set {
	for r := range other {
		delete(s, r)
	}
	return s
}

// Runes returns the codepoints of the set in increasing order.
func (s Set) Runes() []rune {
	rr := maps.Keys(s)
	slices.Sort(rr)
	return rr
}
