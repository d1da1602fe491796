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

// Package testfont builds small fonts with known geometry for tests.
//
// Each synthetic font has the missing-glyph placeholder as gid 0 and
// one square glyph per requested codepoint, reaching from the
// baseline up to the font's cap height.
package testfont

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/fontmerge/internal/cmapenc"
	"seehuhn.de/go/fontmerge/internal/glyfenc"
)

// CFF builds a name-keyed CFF font with UnitsPerEm upm, the given cap
// height, and one square glyph per codepoint.
func CFF(upm uint16, capHeight funit.Int16, rr ...rune) *sfnt.Font {
	outlines := &cff.Outlines{
		Private: []*type1.PrivateDict{
			{
				BlueValues: []funit.Int16{0, 0, capHeight, capHeight},
				BlueScale:  0.039625,
				BlueShift:  7,
				BlueFuzz:   1,
			},
		},
		FDSelect: func(glyph.ID) int { return 0 },
		Encoding: make([]glyph.ID, 256),
	}
	outlines.Glyphs = append(outlines.Glyphs,
		cff.NewGlyph(".notdef", notdefWidth(upm)))

	mapping := make(map[rune]glyph.ID)
	for i, r := range rr {
		gid := glyph.ID(i + 1)
		g := cff.NewGlyph(glyphName(r), squareWidth(upm))
		drawCFFSquare(g, upm, capHeight)
		outlines.Glyphs = append(outlines.Glyphs, g)
		mapping[r] = gid
	}

	return newFont(upm, capHeight, outlines, mapping)
}

// CIDKeyed builds a CFF font using CID-keyed (class-keyed) glyph
// addressing.
func CIDKeyed(upm uint16, capHeight funit.Int16, rr ...rune) *sfnt.Font {
	font := CFF(upm, capHeight, rr...)

	outlines := font.Outlines.(*cff.Outlines)
	for _, g := range outlines.Glyphs {
		g.Name = ""
	}
	outlines.Encoding = nil
	outlines.ROS = &cid.SystemInfo{
		Registry:   "Seehuhn",
		Ordering:   "Test",
		Supplement: 0,
	}
	outlines.GIDToCID = make([]cid.CID, len(outlines.Glyphs))
	for i := range outlines.GIDToCID {
		outlines.GIDToCID[i] = cid.CID(i)
	}
	outlines.FontMatrices = []matrix.Matrix{matrix.Identity}

	return font
}

// Glyf builds a TrueType font with one square glyph per codepoint.
func Glyf(upm uint16, capHeight funit.Int16, rr ...rune) *sfnt.Font {
	outlines := &glyf.Outlines{
		Glyphs: glyf.Glyphs{nil}, // .notdef
		Widths: []funit.Int16{funit.Int16(notdefWidth(upm))},
		Names:  []string{".notdef"},
		Maxp: &maxp.TTFInfo{
			MaxPoints:   4,
			MaxContours: 1,
			MaxZones:    2,
		},
	}

	mapping := make(map[rune]glyph.ID)
	for i, r := range rr {
		gid := glyph.ID(i + 1)
		outlines.Glyphs = append(outlines.Glyphs, squareGlyph(upm, capHeight))
		outlines.Widths = append(outlines.Widths, funit.Int16(squareWidth(upm)))
		outlines.Names = append(outlines.Names, glyphName(r))
		mapping[r] = gid
	}

	return newFont(upm, capHeight, outlines, mapping)
}

// TrueType parses the Go Regular font.
func TrueType(t *testing.T) *sfnt.Font {
	t.Helper()
	font, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	return font
}

func newFont(upm uint16, capHeight funit.Int16, outlines sfnt.Outlines, mapping map[rune]glyph.ID) *sfnt.Font {
	q := 1 / float64(upm)
	scale := float64(upm) / 1000
	return &sfnt.Font{
		FamilyName: "Test",
		Ascent:     capHeight + funit.Int16(math.Round(100*scale)),
		Descent:    funit.Int16(math.Round(-200 * scale)),
		CapHeight:  capHeight,
		XHeight:    funit.Int16(math.Round(float64(capHeight) * 2 / 3)),
		UnitsPerEm: upm,
		FontMatrix: matrix.Matrix{q, 0, 0, q, 0, 0},
		Weight:     os2.WeightNormal,
		Width:      os2.WidthNormal,
		IsRegular:  true,
		PermUse:    os2.PermInstall,
		Outlines:   outlines,
		CMapTable:  cmapenc.Table(mapping),
	}
}

func glyphName(r rune) string {
	return fmt.Sprintf("uni%04X", r)
}

func notdefWidth(upm uint16) float64 {
	return math.Round(float64(upm) / 2)
}

func squareWidth(upm uint16) float64 {
	return math.Round(float64(upm) * 6 / 10)
}

// drawCFFSquare draws the outline counter-clockwise, as PostScript
// conventions require for outer contours.
func drawCFFSquare(g *cff.Glyph, upm uint16, capHeight funit.Int16) {
	left := math.Round(float64(upm) / 10)
	right := squareWidth(upm) - left
	top := float64(capHeight)

	g.MoveTo(left, 0)
	g.LineTo(right, 0)
	g.LineTo(right, top)
	g.LineTo(left, top)
}

// squareGlyph draws the outline clockwise, following the TrueType
// convention.
func squareGlyph(upm uint16, capHeight funit.Int16) *glyf.Glyph {
	left := funit.Int16(math.Round(float64(upm) / 10))
	right := funit.Int16(squareWidth(upm)) - left
	top := capHeight

	return glyfenc.Glyph([]glyf.Contour{
		{
			{X: left, Y: 0, OnCurve: true},
			{X: left, Y: top, OnCurve: true},
			{X: right, Y: top, OnCurve: true},
			{X: right, Y: 0, OnCurve: true},
		},
	})
}
