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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/maxp"

	"seehuhn.de/go/fontmerge/internal/glyfenc"
)

// ToQuadratic converts the font to TrueType outlines.  Cubic segments
// are fit by quadratic arcs with a maximum deviation of maxErr font
// units; contour winding is reversed to match the TrueType
// convention.  Quadratic inputs pass through unchanged.
func ToQuadratic(font *sfnt.Font, maxErr float64) (*sfnt.Font, error) {
	if font.IsGlyf() {
		return font, nil
	}
	if maxErr <= 0 {
		maxErr = DefaultMaxErr
	}

	font = font.Clone()
	font.EnsureGlyphNames()

	newOutlines := &glyf.Outlines{
		Maxp: &maxp.TTFInfo{MaxZones: 2},
	}
	numGlyphs := font.NumGlyphs()
	for i := 0; i < numGlyphs; i++ {
		gid := glyph.ID(i)
		contours := quadContours(font.Outlines.Path(gid), maxErr)
		newOutlines.Glyphs = append(newOutlines.Glyphs, glyfenc.Glyph(contours))
		newOutlines.Widths = append(newOutlines.Widths,
			funit.Int16(math.Round(font.GlyphWidth(gid))))
		newOutlines.Names = append(newOutlines.Names, font.GlyphName(gid))

		numPoints := 0
		for _, c := range contours {
			numPoints += len(c)
		}
		if n := uint16(len(contours)); n > newOutlines.Maxp.MaxContours {
			newOutlines.Maxp.MaxContours = n
		}
		if n := uint16(numPoints); n > newOutlines.Maxp.MaxPoints {
			newOutlines.Maxp.MaxPoints = n
		}
	}

	font.Outlines = newOutlines
	return font, nil
}

// quadContours flattens a path into TrueType point contours.
func quadContours(p path.Path, maxErr float64) []glyf.Contour {
	var res []glyf.Contour
	var cur []qpoint
	var pos qpoint

	flush := func() {
		if len(cur) > 0 {
			res = append(res, finishContour(cur))
			cur = nil
		}
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			pos = qpoint{pts[0].X, pts[0].Y, true}
			cur = append(cur, pos)
		case path.CmdLineTo:
			pos = qpoint{pts[0].X, pts[0].Y, true}
			cur = append(cur, pos)
		case path.CmdQuadTo:
			cur = append(cur, qpoint{pts[0].X, pts[0].Y, false})
			pos = qpoint{pts[1].X, pts[1].Y, true}
			cur = append(cur, pos)
		case path.CmdCubeTo:
			p1 := qpoint{pts[0].X, pts[0].Y, false}
			p2 := qpoint{pts[1].X, pts[1].Y, false}
			p3 := qpoint{pts[2].X, pts[2].Y, true}
			cur = fitQuads(cur, pos, p1, p2, p3, maxErr, 0)
			pos = p3
		case path.CmdClose:
			flush()
		}
	}
	flush()
	return res
}

// finishContour drops a redundant closing point, reverses the
// winding, and rounds coordinates to integer font units.
func finishContour(pts []qpoint) glyf.Contour {
	n := len(pts)
	if n > 1 && pts[0].X == pts[n-1].X && pts[0].Y == pts[n-1].Y && pts[n-1].On {
		pts = pts[:n-1]
		n--
	}

	contour := make(glyf.Contour, n)
	for i, pt := range pts {
		// index 0 stays first, the rest are visited backwards
		j := 0
		if i > 0 {
			j = n - i
		}
		contour[j] = glyf.Point{
			X:       funit.Int16(math.Round(pt.X)),
			Y:       funit.Int16(math.Round(pt.Y)),
			OnCurve: pt.On,
		}
	}
	return contour
}
