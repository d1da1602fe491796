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

// Package reconcile normalizes curve type, glyph keying scheme, and
// units-per-em across heterogeneous fonts, so that they can be
// merged.
package reconcile

import (
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/opentype/gtab"
)

// Format identifies an outline representation.
type Format int

const (
	// Quadratic is the TrueType representation (glyf table).
	Quadratic Format = iota

	// Cubic is the compact CFF representation.
	Cubic
)

func (f Format) String() string {
	switch f {
	case Quadratic:
		return "quadratic"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DefaultMaxErr is the error tolerance for cubic to quadratic fits,
// in font units.
const DefaultMaxErr = 1.0

// Choose picks the common outline format for a batch of fonts.
// A strict majority of naturally-cubic inputs selects Cubic, so the
// minority pays the conversion cost; otherwise, including on a tie,
// the batch converts to Quadratic.
func Choose(fonts []*sfnt.Font) Format {
	cubic := 0
	for _, f := range fonts {
		if f.IsCFF() {
			cubic++
		}
	}
	if cubic > len(fonts)/2 {
		return Cubic
	}
	return Quadratic
}

// Convert brings the font into the given outline format.
// The result is always name-keyed.
func Convert(font *sfnt.Font, format Format) (*sfnt.Font, error) {
	switch format {
	case Cubic:
		return ToCubic(font)
	case Quadratic:
		return ToQuadratic(font, DefaultMaxErr)
	default:
		return nil, fmt.Errorf("reconcile: unknown format %d", int(format))
	}
}

// Reconcile converts all fonts to their common outline format, scales
// them to the units-per-em of the first font, and attaches layout
// placeholders.  The returned fonts are ready for merging.
func Reconcile(fonts []*sfnt.Font) ([]*sfnt.Font, error) {
	if len(fonts) == 0 {
		return nil, nil
	}

	format := Choose(fonts)
	res := make([]*sfnt.Font, len(fonts))
	for i, f := range fonts {
		g, err := Convert(f, format)
		if err != nil {
			return nil, fmt.Errorf("reconcile: font %d: %w", i, err)
		}
		res[i] = g
	}

	upm := res[0].UnitsPerEm
	for i, f := range res[1:] {
		if err := NormalizeUPM(f, upm); err != nil {
			return nil, fmt.Errorf("reconcile: font %d: %w", i+1, err)
		}
	}

	for _, f := range res {
		EnsureLayout(f)
	}
	return res, nil
}

// EnsureLayout attaches an empty substitution-table placeholder if
// the font has none.  The merge engine refuses fonts without one.
func EnsureLayout(font *sfnt.Font) {
	if font.Gsub == nil {
		font.Gsub = &gtab.Info{}
	}
}
