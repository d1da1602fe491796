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

// Package merge combines reconciled font subsets into one font.
package merge

import (
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontmerge/internal/cmapenc"
)

// MaxGlyphs is the platform glyph-count ceiling.
const MaxGlyphs = 65535

var (
	// ErrMergedTooLarge indicates that the combined glyph count
	// exceeds MaxGlyphs.  No artifact is produced.
	ErrMergedTooLarge = errors.New("merged font exceeds glyph ceiling")

	// ErrNoLayout indicates an input without the mandatory
	// substitution-table placeholder.
	ErrNoLayout = errors.New("input font has no layout placeholder")
)

// Plan describes a merge: reconciled subset fonts in priority order.
// The first font is the metrics and naming baseline.
type Plan struct {
	Fonts []*sfnt.Font

	// DropTables lists table names removed from every input before
	// merging.
	DropTables []string
}

// Merge combines the fonts of the plan into a single font.  Inputs
// must share units-per-em and outline format; the character map of
// the result is rebuilt as a format 12 subtable covering the full
// Unicode range.
func Merge(plan *Plan) (*sfnt.Font, error) {
	fonts := plan.Fonts
	if len(fonts) == 0 {
		return nil, errors.New("merge: empty plan")
	}

	upm := fonts[0].UnitsPerEm
	isCFF := fonts[0].IsCFF()
	for i, f := range fonts {
		if f.Gsub == nil {
			return nil, fmt.Errorf("merge: font %d: %w", i, ErrNoLayout)
		}
		if f.UnitsPerEm != upm {
			return nil, fmt.Errorf("merge: font %d has units-per-em %d, want %d",
				i, f.UnitsPerEm, upm)
		}
		if f.IsCFF() != isCFF {
			return nil, fmt.Errorf("merge: font %d has a different outline format", i)
		}
		dropTables(f, plan.DropTables)
	}

	res := fonts[0].Clone()

	total := 0
	for _, f := range fonts {
		total += f.NumGlyphs()
	}
	if total > MaxGlyphs {
		return nil, fmt.Errorf("merge: %d glyphs: %w", total, ErrMergedTooLarge)
	}

	var offsets []glyph.ID
	if isCFF {
		offsets = combineCFF(res, fonts)
	} else {
		offsets = combineGlyf(res, fonts)
	}

	mapping := make(map[rune]glyph.ID)
	for i, f := range fonts {
		sub, err := f.CMapTable.GetBest()
		if err != nil {
			return nil, fmt.Errorf("merge: font %d: %w", i, err)
		}
		for r, gid := range allMappings(sub) {
			if _, ok := mapping[r]; !ok {
				mapping[r] = gid + offsets[i]
			}
		}
	}
	res.CMapTable = cmapenc.Table12(mapping)

	return res, nil
}

// combineCFF concatenates the glyph lists, renaming collisions, and
// returns the glyph id offset of each input.
func combineCFF(res *sfnt.Font, fonts []*sfnt.Font) []glyph.ID {
	base := res.Outlines.(*cff.Outlines)
	combined := &cff.Outlines{
		Private:  base.Private,
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: make([]glyph.ID, 256),
	}

	taken := make(map[string]bool)
	offsets := make([]glyph.ID, len(fonts))
	for i, f := range fonts {
		outlines := f.Outlines.(*cff.Outlines)
		offsets[i] = glyph.ID(len(combined.Glyphs))
		for _, g := range outlines.Glyphs {
			name := uniqueName(g.Name, taken)
			if name != g.Name {
				g2 := *g
				g2.Name = name
				g = &g2
			}
			taken[name] = true
			combined.Glyphs = append(combined.Glyphs, g)
		}
	}

	res.Outlines = combined
	return offsets
}

// combineGlyf concatenates the glyph lists, renumbering composite
// references, and returns the glyph id offset of each input.
func combineGlyf(res *sfnt.Font, fonts []*sfnt.Font) []glyph.ID {
	base := res.Outlines.(*glyf.Outlines)
	combined := &glyf.Outlines{
		Tables: base.Tables,
		Maxp:   base.Maxp,
	}

	taken := make(map[string]bool)
	offsets := make([]glyph.ID, len(fonts))
	for i, f := range fonts {
		outlines := f.Outlines.(*glyf.Outlines)
		shift := glyph.ID(len(combined.Glyphs))
		offsets[i] = shift

		shifted := make(map[glyph.ID]glyph.ID)
		for gid := range outlines.Glyphs {
			shifted[glyph.ID(gid)] = glyph.ID(gid) + shift
		}

		for gid, g := range outlines.Glyphs {
			combined.Glyphs = append(combined.Glyphs, g.FixComponents(shifted))
			combined.Widths = append(combined.Widths, outlines.Widths[gid])

			name := ""
			if outlines.Names != nil && gid < len(outlines.Names) {
				name = outlines.Names[gid]
			}
			if name != "" {
				name = uniqueName(name, taken)
				taken[name] = true
			}
			combined.Names = append(combined.Names, name)
		}
	}

	res.Outlines = combined
	return offsets
}

func uniqueName(name string, taken map[string]bool) string {
	if name == "" || !taken[name] {
		return name
	}
	for n := 1; ; n++ {
		alt := fmt.Sprintf("%s.alt%d", name, n)
		if !taken[alt] {
			return alt
		}
	}
}

// allMappings extracts the codepoint to glyph mapping of a cmap
// subtable.
func allMappings(sub interface{ Lookup(rune) glyph.ID }) map[rune]glyph.ID {
	res := make(map[rune]glyph.ID)
	for r := rune(0); r <= 0x10FFFF; r++ {
		if r == 0xD800 {
			r = 0xE000 // skip surrogates
		}
		if gid := sub.Lookup(r); gid != 0 {
			res[r] = gid
		}
	}
	return res
}

// dropTables removes the named tables from a font before merging.
// The substitution-table placeholder is never dropped.
func dropTables(font *sfnt.Font, names []string) {
	for _, name := range names {
		switch name {
		case "GDEF":
			font.Gdef = nil
		case "GPOS":
			font.Gpos = nil
		default:
			if outlines, ok := font.Outlines.(*glyf.Outlines); ok {
				delete(outlines.Tables, name)
			}
		}
	}
}
