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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontmerge/internal/transform"
)

// NormalizeUPM rescales the font to the given units-per-em, in place.
// Outlines, widths, and vertical metrics are scaled uniformly; a font
// already at the target is left untouched.
func NormalizeUPM(font *sfnt.Font, upm uint16) error {
	if font.UnitsPerEm == upm {
		return nil
	}

	s := float64(upm) / float64(font.UnitsPerEm)
	if err := transform.Uniform(font, s); err != nil {
		return err
	}

	font.Ascent = scaleMetric(font.Ascent, s)
	font.Descent = scaleMetric(font.Descent, s)
	font.LineGap = scaleMetric(font.LineGap, s)
	font.CapHeight = scaleMetric(font.CapHeight, s)
	font.XHeight = scaleMetric(font.XHeight, s)
	font.UnderlinePosition *= funit.Float64(s)
	font.UnderlineThickness *= funit.Float64(s)

	font.UnitsPerEm = upm
	q := 1 / float64(upm)
	font.FontMatrix = matrix.Matrix{q, 0, 0, q, 0, 0}
	return nil
}

func scaleMetric(x funit.Int16, s float64) funit.Int16 {
	return funit.Int16(math.Round(float64(x) * s))
}
