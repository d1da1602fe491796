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

package reconcile

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyph"
)

// ToCubic converts the font to name-keyed CFF outlines.
//
// Quadratic segments are exactly representable as cubics, so glyf
// inputs convert without loss.  CID-keyed CFF inputs are rebuilt
// glyph by glyph through a recording pen so that every glyph gets a
// unique name; geometry and widths are preserved exactly.
// Name-keyed CFF inputs pass through unchanged.
func ToCubic(font *sfnt.Font) (*sfnt.Font, error) {
	if outlines, ok := font.Outlines.(*cff.Outlines); ok && outlines.ROS == nil {
		return font, nil
	}

	font = font.Clone()
	font.EnsureGlyphNames()

	private := &type1.PrivateDict{
		BlueValues: []funit.Int16{0, 0, font.CapHeight, font.CapHeight},
		BlueScale:  0.039625,
		BlueShift:  7,
		BlueFuzz:   1,
	}
	if orig, ok := font.Outlines.(*cff.Outlines); ok &&
		len(orig.Private) > 0 && orig.Private[0] != nil {
		private = orig.Private[0]
	}

	newOutlines := &cff.Outlines{
		Private:  []*type1.PrivateDict{private},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: make([]glyph.ID, 256),
	}

	numGlyphs := font.NumGlyphs()
	for i := 0; i < numGlyphs; i++ {
		gid := glyph.ID(i)
		g := cff.NewGlyph(font.GlyphName(gid), font.GlyphWidth(gid))
		cubicPath := font.Outlines.Path(gid).ToCubic()

		// Line segments are held back by one command, so that the
		// straight segment returning to the contour start can be
		// dropped when the contour closes.
		var start, pending vec.Vec2
		pendingLine := false
		flush := func() {
			if pendingLine {
				g.LineTo(pending.X, pending.Y)
				pendingLine = false
			}
		}
		for cmd, pts := range cubicPath {
			switch cmd {
			case path.CmdMoveTo:
				flush()
				start = pts[0]
				g.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				flush()
				pending = pts[0]
				pendingLine = true
			case path.CmdCubeTo:
				flush()
				g.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				// charstrings close implicitly
				if pendingLine && pending != start {
					g.LineTo(pending.X, pending.Y)
				}
				pendingLine = false
			}
		}
		flush()
		newOutlines.Glyphs = append(newOutlines.Glyphs, g)
	}

	font.Outlines = newOutlines
	return font, nil
}
