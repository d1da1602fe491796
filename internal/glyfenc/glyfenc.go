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

// Package glyfenc assembles TrueType glyph records from point
// contours.
package glyfenc

import (
	"math"

	"seehuhn.de/go/sfnt/glyf"
)

// Glyph builds a simple glyph record from the given contours.
// Empty contours are dropped; a glyph with no points returns nil
// (an empty glyph record).
func Glyph(contours []glyf.Contour) *glyf.Glyph {
	var cc []glyf.Contour
	for _, c := range contours {
		if len(c) > 0 {
			cc = append(cc, c)
		}
	}
	if len(cc) == 0 {
		return nil
	}

	sd := &glyf.SimpleUnpacked{Contours: cc}
	g := sd.AsGlyph()
	return &g
}

// ScaleComposite returns a copy of a composite glyph with the XY
// offsets of every component multiplied by s.  Point-matching
// components are returned unchanged.
func ScaleComposite(d glyf.CompositeGlyph, s float64) glyf.CompositeGlyph {
	res := glyf.CompositeGlyph{
		Components:   make([]glyf.GlyphComponent, len(d.Components)),
		Instructions: d.Instructions,
	}
	for i, comp := range d.Components {
		res.Components[i] = scaleComponent(comp, s)
	}
	return res
}

func scaleComponent(comp glyf.GlyphComponent, s float64) glyf.GlyphComponent {
	cu, err := comp.Unpack()
	if err != nil || cu.AlignPoints {
		return comp
	}

	cu.Trfm[4] = math.Round(cu.Trfm[4] * s)
	cu.Trfm[5] = math.Round(cu.Trfm[5] * s)

	res := cu.Pack()
	// repacking must not lose the instruction marker
	res.Flags |= comp.Flags & glyf.FlagWeHaveInstructions
	return res
}
