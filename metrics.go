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

package fontmerge

import (
	"strings"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
)

// FixMetrics sets the vertical metrics window of the merged font.
// The descender is stored with negative sign, whichever sign the
// caller uses.  Zero values leave the corresponding metric unchanged.
func FixMetrics(font *sfnt.Font, ascender, descender int) {
	if ascender != 0 {
		font.Ascent = funit.Int16(ascender)
	}
	if descender != 0 {
		if descender > 0 {
			descender = -descender
		}
		font.Descent = funit.Int16(descender)
	}
	font.LineGap = 0
}

// Rename sets the family name and the style flags of the font.  The
// subfamily is interpreted the usual way: "Bold", "Italic", "Bold
// Italic" etc. set the corresponding flags, anything else is treated
// as a regular style.
func Rename(font *sfnt.Font, family, subfamily string) {
	font.FamilyName = family

	words := strings.Fields(strings.ToLower(subfamily))
	font.IsBold = slices.Contains(words, "bold")
	font.IsOblique = slices.Contains(words, "oblique")
	font.IsItalic = slices.Contains(words, "italic") || font.IsOblique
	font.IsRegular = !font.IsBold && !font.IsItalic
}
