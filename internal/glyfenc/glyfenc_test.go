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

package glyfenc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/sfnt/glyf"
)

func TestGlyphRoundTrip(t *testing.T) {
	cases := [][]glyf.Contour{
		{ // a square
			{
				{X: 100, Y: 0, OnCurve: true},
				{X: 500, Y: 0, OnCurve: true},
				{X: 500, Y: 700, OnCurve: true},
				{X: 100, Y: 700, OnCurve: true},
			},
		},
		{ // off-curve points and large deltas
			{
				{X: 0, Y: 0, OnCurve: true},
				{X: 300, Y: 600, OnCurve: false},
				{X: 600, Y: 0, OnCurve: true},
			},
			{
				{X: -1000, Y: -2, OnCurve: true},
				{X: 1000, Y: 2, OnCurve: true},
				{X: 0, Y: 300, OnCurve: false},
			},
		},
		{ // repeated flags, vertical-only moves
			{
				{X: 0, Y: 0, OnCurve: true},
				{X: 0, Y: 10, OnCurve: true},
				{X: 0, Y: 20, OnCurve: true},
				{X: 0, Y: 30, OnCurve: true},
				{X: 0, Y: 40, OnCurve: true},
			},
		},
	}

	for i, contours := range cases {
		g := Glyph(contours)
		if g == nil {
			t.Fatalf("case %d: nil glyph", i)
		}
		data, ok := g.Data.(glyf.SimpleGlyph)
		if !ok {
			t.Fatalf("case %d: not a simple glyph", i)
		}
		info, err := data.Unpack()
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if d := cmp.Diff(contours, info.Contours); d != "" {
			t.Errorf("case %d: contours changed (-want +got):\n%s", i, d)
		}
	}
}

func TestGlyphBBox(t *testing.T) {
	g := Glyph([]glyf.Contour{
		{
			{X: -10, Y: 5, OnCurve: true},
			{X: 90, Y: 705, OnCurve: true},
			{X: 40, Y: -15, OnCurve: true},
		},
	})
	bbox := g.Rect16
	if bbox.LLx != -10 || bbox.LLy != -15 || bbox.URx != 90 || bbox.URy != 705 {
		t.Errorf("wrong bbox: %+v", bbox)
	}
}

func TestGlyphEmpty(t *testing.T) {
	if g := Glyph(nil); g != nil {
		t.Error("empty input should give a nil glyph")
	}
	if g := Glyph([]glyf.Contour{{}}); g != nil {
		t.Error("empty contour should give a nil glyph")
	}
}

func TestScaleComposite(t *testing.T) {
	orig := glyf.GlyphComponent{
		Flags:      glyf.FlagArgsAreXYValues,
		GlyphIndex: 3,
		Data:       []byte{100, 50},
	}
	scaled := scaleComponent(orig, 2.0)
	if scaled.Flags&glyf.FlagArg1And2AreWords == 0 {
		t.Error("scaled args should use words")
	}
	cu, err := scaled.Unpack()
	if err != nil {
		t.Fatal(err)
	}
	if cu.Trfm[4] != 200 || cu.Trfm[5] != 100 {
		t.Errorf("got offset (%g,%g), want (200,100)", cu.Trfm[4], cu.Trfm[5])
	}

	// point-matching components are left alone
	pm := glyf.GlyphComponent{GlyphIndex: 4, Data: []byte{1, 2}}
	if got := scaleComponent(pm, 2.0); !cmp.Equal(got, pm) {
		t.Error("point-matching component was modified")
	}
}
