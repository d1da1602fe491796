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

// Package transform applies uniform affine transforms to glyph
// outlines of either representation.
package transform

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontmerge/internal/glyfenc"
)

// Uniform scales every outline and advance width of the font by s,
// in place.  The transform matrix is (s, 0, 0, s, 0, 0); coordinates
// and widths are rounded to the nearest font unit.
func Uniform(font *sfnt.Font, s float64) error {
	switch outlines := font.Outlines.(type) {
	case *cff.Outlines:
		scaleCFF(font, outlines, s)
	case *glyf.Outlines:
		return scaleGlyf(outlines, s)
	default:
		return fmt.Errorf("transform: unknown outline format %T", font.Outlines)
	}
	return nil
}

// scaleCFF re-records every charstring through a scaling pen.
func scaleCFF(font *sfnt.Font, outlines *cff.Outlines, s float64) {
	for gid, orig := range outlines.Glyphs {
		if orig == nil {
			continue
		}
		g := cff.NewGlyph(orig.Name, math.Round(orig.Width*s))
		cubic := font.Outlines.Path(glyph.ID(gid)).ToCubic()
		for cmd, pts := range cubic {
			switch cmd {
			case path.CmdMoveTo:
				g.MoveTo(pts[0].X*s, pts[0].Y*s)
			case path.CmdLineTo:
				g.LineTo(pts[0].X*s, pts[0].Y*s)
			case path.CmdCubeTo:
				g.CurveTo(pts[0].X*s, pts[0].Y*s,
					pts[1].X*s, pts[1].Y*s,
					pts[2].X*s, pts[2].Y*s)
			case path.CmdClose:
				// charstrings close implicitly
			}
		}
		outlines.Glyphs[gid] = g
	}

	for _, private := range outlines.Private {
		if private == nil {
			continue
		}
		for i, b := range private.BlueValues {
			private.BlueValues[i] = scaleF16(b, s)
		}
		for i, b := range private.OtherBlues {
			private.OtherBlues[i] = scaleF16(b, s)
		}
		private.StdHW *= s
		private.StdVW *= s
	}
}

func scaleGlyf(outlines *glyf.Outlines, s float64) error {
	for gid, orig := range outlines.Glyphs {
		if orig == nil {
			continue
		}
		switch data := orig.Data.(type) {
		case glyf.SimpleGlyph:
			info, err := data.Unpack()
			if err != nil {
				return fmt.Errorf("transform: glyph %d: %w", gid, err)
			}
			contours := make([]glyf.Contour, len(info.Contours))
			for i, c := range info.Contours {
				cc := make(glyf.Contour, len(c))
				for j, pt := range c {
					cc[j] = glyf.Point{
						X:       scaleF16(pt.X, s),
						Y:       scaleF16(pt.Y, s),
						OnCurve: pt.OnCurve,
					}
				}
				contours[i] = cc
			}
			outlines.Glyphs[gid] = glyfenc.Glyph(contours)
		case glyf.CompositeGlyph:
			outlines.Glyphs[gid] = &glyf.Glyph{
				Rect16: funit.Rect16{
					LLx: scaleF16(orig.Rect16.LLx, s),
					LLy: scaleF16(orig.Rect16.LLy, s),
					URx: scaleF16(orig.Rect16.URx, s),
					URy: scaleF16(orig.Rect16.URy, s),
				},
				Data: glyfenc.ScaleComposite(data, s),
			}
		}
	}
	for i, w := range outlines.Widths {
		outlines.Widths[i] = scaleF16(w, s)
	}
	return nil
}

func scaleF16(x funit.Int16, s float64) funit.Int16 {
	return funit.Int16(math.Round(float64(x) * s))
}
