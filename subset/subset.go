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

// Package subset reduces a font to the glyphs needed for a codepoint
// set.
package subset

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontmerge/charset"
	"seehuhn.de/go/fontmerge/internal/cmapenc"
)

// ErrNoMatchingGlyphs indicates that a font covers none of the
// requested codepoints.
var ErrNoMatchingGlyphs = errors.New("no glyphs for any requested codepoint")

// Coverage reports how much of a codepoint request a font satisfied.
type Coverage struct {
	Requested int
	Found     int
	Missing   []rune
}

// Ratio returns the fraction of requested codepoints the font covers.
func (c *Coverage) Ratio() float64 {
	if c.Requested == 0 {
		return 1
	}
	return float64(c.Found) / float64(c.Requested)
}

// Subset returns a new font containing the missing-glyph placeholder
// and the glyphs for the codepoints of set which the font actually
// covers.  Layout tables are dropped before the glyph lists are cut,
// so substitution rules cannot pull unreachable glyphs into the
// subset; the caller merges glyphs only.
//
// Glyph order is deterministic: gid 0 first, then glyphs in order of
// first use over the sorted codepoints.  The character map of the
// result maps each covered codepoint to its new glyph id.
func Subset(font *sfnt.Font, set charset.Set) (*sfnt.Font, *Coverage, error) {
	cmapOld, err := font.CMapTable.GetBest()
	if err != nil {
		return nil, nil, fmt.Errorf("subset: no usable character map: %w", err)
	}

	cov := &Coverage{Requested: set.Len()}

	glyphs := []glyph.ID{0}
	newGid := map[glyph.ID]glyph.ID{0: 0}
	mapping := make(map[rune]glyph.ID)
	for _, r := range set.Runes() {
		gid := cmapOld.Lookup(r)
		if gid == 0 {
			cov.Missing = append(cov.Missing, r)
			continue
		}
		cov.Found++
		ng, ok := newGid[gid]
		if !ok {
			ng = glyph.ID(len(glyphs))
			newGid[gid] = ng
			glyphs = append(glyphs, gid)
		}
		mapping[r] = ng
	}
	if cov.Found == 0 {
		return nil, nil, ErrNoMatchingGlyphs
	}

	src := font.Clone()
	src.CMapTable = nil
	src.Gdef = nil
	src.Gsub = nil
	src.Gpos = nil

	res := src.Subset(glyphs)
	res.CMapTable = cmapenc.Table(mapping)

	return res, cov, nil
}
