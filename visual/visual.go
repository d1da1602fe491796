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

// Package visual rescales fonts so that their cap-height proportion
// matches a shared target.
package visual

import (
	"math"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontmerge/internal/transform"
)

// Threshold is the no-op band for scale factors.  Scaling by less
// than this distorts hinted coordinates for no visible gain.
const Threshold = 0.001

// Result describes a scaling decision.
type Result struct {
	SourceRatio float64
	Scale       float64
	Applied     bool
	Skipped     string // reason, when not applied
}

// Ratio returns the font's cap height as a fraction of its
// units-per-em.
func Ratio(font *sfnt.Font) float64 {
	return float64(font.CapHeight) / float64(font.UnitsPerEm)
}

// Scale rescales the font, in place, so that its cap-height ratio
// becomes targetRatio.  The transform is the uniform affine
// (s, 0, 0, s, 0, 0) applied to every outline; advance widths are
// rounded to the nearest font unit; cap-height and x-height metadata
// are rescaled proportionally.  Units-per-em is left unchanged.
//
// Fonts whose scale factor deviates from 1 by less than Threshold
// are left untouched, as are fonts without cap-height information.
// A target ratio of zero or less disables scaling entirely.
func Scale(font *sfnt.Font, targetRatio float64) (*Result, error) {
	if font.CapHeight == 0 {
		return &Result{Skipped: "no cap height"}, nil
	}
	if targetRatio <= 0 {
		return &Result{SourceRatio: Ratio(font), Skipped: "no target ratio"}, nil
	}

	res := &Result{SourceRatio: Ratio(font)}
	res.Scale = targetRatio / res.SourceRatio

	if math.Abs(res.Scale-1) < Threshold {
		res.Skipped = "within threshold"
		return res, nil
	}

	if err := transform.Uniform(font, res.Scale); err != nil {
		return nil, err
	}
	font.CapHeight = scale16(font.CapHeight, res.Scale)
	font.XHeight = scale16(font.XHeight, res.Scale)
	font.Ascent = scale16(font.Ascent, res.Scale)
	font.Descent = scale16(font.Descent, res.Scale)

	res.Applied = true
	return res, nil
}

func scale16[T ~int16](x T, s float64) T {
	return T(math.Round(float64(x) * s))
}
