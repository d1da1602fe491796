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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontmerge/internal/testfont"
)

func TestChoose(t *testing.T) {
	cubic := func() *sfnt.Font { return testfont.CFF(1000, 700, 'A') }
	quad := func() *sfnt.Font { return testfont.Glyf(1000, 700, 'A') }

	cases := []struct {
		fonts []*sfnt.Font
		want  Format
	}{
		{[]*sfnt.Font{cubic()}, Cubic},
		{[]*sfnt.Font{quad()}, Quadratic},
		{[]*sfnt.Font{cubic(), cubic(), quad()}, Cubic},
		{[]*sfnt.Font{cubic(), quad(), quad()}, Quadratic},
		{[]*sfnt.Font{cubic(), quad()}, Quadratic},                  // tie
		{[]*sfnt.Font{cubic(), cubic(), quad(), quad()}, Quadratic}, // tie
	}
	for i, tc := range cases {
		if got := Choose(tc.fonts); got != tc.want {
			t.Errorf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

// collectPath renders the command list of a glyph for comparison.
func collectPath(t *testing.T, font *sfnt.Font, gid glyph.ID) []string {
	t.Helper()
	var res []string
	for cmd, pts := range font.Outlines.Path(gid) {
		switch cmd {
		case path.CmdMoveTo:
			res = append(res, fmt.Sprintf("M %g %g", pts[0].X, pts[0].Y))
		case path.CmdLineTo:
			res = append(res, fmt.Sprintf("L %g %g", pts[0].X, pts[0].Y))
		case path.CmdQuadTo:
			res = append(res, fmt.Sprintf("Q %g %g %g %g",
				pts[0].X, pts[0].Y, pts[1].X, pts[1].Y))
		case path.CmdCubeTo:
			res = append(res, fmt.Sprintf("C %g %g %g %g %g %g",
				pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y))
		case path.CmdClose:
			res = append(res, "Z")
		}
	}
	return res
}

func TestToCubicFromGlyf(t *testing.T) {
	orig := testfont.Glyf(1000, 700, 'A')
	conv, err := ToCubic(orig)
	if err != nil {
		t.Fatal(err)
	}
	if !conv.IsCFF() {
		t.Fatal("result is not CFF")
	}
	if conv.NumGlyphs() != orig.NumGlyphs() {
		t.Errorf("glyph count changed: %d -> %d",
			orig.NumGlyphs(), conv.NumGlyphs())
	}
	if got, want := conv.GlyphWidth(1), orig.GlyphWidth(1); got != want {
		t.Errorf("width changed: %g -> %g", want, got)
	}

	// straight contours survive exactly
	want := []string{"M 100 0", "L 100 700", "L 500 700", "L 500 0", "Z"}
	if d := cmp.Diff(want, collectPath(t, conv, 1)); d != "" {
		t.Errorf("glyph outline (-want +got):\n%s", d)
	}
}

func TestToCubicNameKeyedIdentity(t *testing.T) {
	orig := testfont.CFF(1000, 700, 'A')
	conv, err := ToCubic(orig)
	if err != nil {
		t.Fatal(err)
	}
	if conv != orig {
		t.Error("name-keyed CFF should pass through unchanged")
	}
}

func TestToCubicFromCIDKeyed(t *testing.T) {
	orig := testfont.CIDKeyed(1000, 700, 'A', 'B')
	conv, err := ToCubic(orig)
	if err != nil {
		t.Fatal(err)
	}
	outlines := conv.Outlines.(*cff.Outlines)
	if outlines.ROS != nil || outlines.GIDToCID != nil {
		t.Error("result is still class-keyed")
	}

	seen := make(map[string]bool)
	for gid, g := range outlines.Glyphs {
		if g.Name == "" {
			t.Errorf("glyph %d has no name", gid)
		}
		if seen[g.Name] {
			t.Errorf("glyph name %q not unique", g.Name)
		}
		seen[g.Name] = true
	}

	// geometry preserved exactly
	want := collectPath(t, orig, 1)
	if d := cmp.Diff(want, collectPath(t, conv, 1)); d != "" {
		t.Errorf("glyph outline changed (-want +got):\n%s", d)
	}
}

func TestToQuadraticReversesWinding(t *testing.T) {
	conv, err := ToQuadratic(testfont.CFF(1000, 700, 'A'), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if !conv.IsGlyf() {
		t.Fatal("result is not glyf")
	}

	outlines := conv.Outlines.(*glyf.Outlines)
	data, ok := outlines.Glyphs[1].Data.(glyf.SimpleGlyph)
	if !ok {
		t.Fatal("glyph 1 is not simple")
	}
	info, err := data.Unpack()
	if err != nil {
		t.Fatal(err)
	}

	// the counter-clockwise CFF square comes out clockwise
	want := []glyf.Contour{
		{
			{X: 100, Y: 0, OnCurve: true},
			{X: 100, Y: 700, OnCurve: true},
			{X: 500, Y: 700, OnCurve: true},
			{X: 500, Y: 0, OnCurve: true},
		},
	}
	if d := cmp.Diff(want, info.Contours); d != "" {
		t.Errorf("contours (-want +got):\n%s", d)
	}

	if outlines.Widths[1] != 600 {
		t.Errorf("width: got %d, want 600", outlines.Widths[1])
	}
}

func TestToQuadraticIdentity(t *testing.T) {
	orig := testfont.Glyf(1000, 700, 'A')
	conv, err := ToQuadratic(orig, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if conv != orig {
		t.Error("glyf input should pass through unchanged")
	}
}

func TestNormalizeUPM(t *testing.T) {
	for _, mk := range []func(uint16) *sfnt.Font{
		func(upm uint16) *sfnt.Font { return testfont.CFF(upm, 1400, 'A') },
		func(upm uint16) *sfnt.Font { return testfont.Glyf(upm, 1400, 'A') },
	} {
		font := mk(2000)
		if err := NormalizeUPM(font, 1000); err != nil {
			t.Fatal(err)
		}
		if font.UnitsPerEm != 1000 {
			t.Errorf("units per em: got %d", font.UnitsPerEm)
		}
		if font.CapHeight != 700 {
			t.Errorf("cap height: got %d, want 700", font.CapHeight)
		}
		if got := font.GlyphWidth(1); got != 600 {
			t.Errorf("width: got %g, want 600", got)
		}
	}
}

func TestNormalizeUPMNoop(t *testing.T) {
	font := testfont.CFF(1000, 700, 'A')
	before := collectPath(t, font, 1)
	if err := NormalizeUPM(font, 1000); err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(before, collectPath(t, font, 1)); d != "" {
		t.Errorf("no-op changed outlines (-want +got):\n%s", d)
	}
}

func TestReconcileBatch(t *testing.T) {
	fonts := []*sfnt.Font{
		testfont.Glyf(2048, 1434, 'A'),
		testfont.CFF(1000, 700, 0x4E00),
	}
	res, err := Reconcile(fonts)
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range res {
		if !f.IsGlyf() {
			t.Errorf("font %d: tie should convert to quadratic", i)
		}
		if f.UnitsPerEm != 2048 {
			t.Errorf("font %d: units per em %d, want 2048", i, f.UnitsPerEm)
		}
		if f.Gsub == nil {
			t.Errorf("font %d: missing layout placeholder", i)
		}
	}
}

func TestEnsureLayout(t *testing.T) {
	font := testfont.CFF(1000, 700, 'A')
	if font.Gsub != nil {
		t.Fatal("fresh test font should have no layout tables")
	}
	EnsureLayout(font)
	if font.Gsub == nil {
		t.Error("placeholder not attached")
	}
}
