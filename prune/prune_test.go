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

package prune

import (
	"testing"

	"golang.org/x/text/language"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/fontmerge/internal/cmapenc"
	"seehuhn.de/go/fontmerge/internal/testfont"
)

// layoutFont returns a test font with a GSUB table containing three
// features ("liga", "smcp", "test") over three lookups.
func layoutFont() *sfnt.Font {
	font := testfont.CFF(1000, 700, 'A', 'B')
	font.Gsub = &gtab.Info{
		ScriptList: gtab.ScriptListInfo{
			language.MustParse("und-Latn"): {
				Required: 0xFFFF,
				Optional: []gtab.FeatureIndex{0, 1, 2},
			},
		},
		FeatureList: []*gtab.Feature{
			{Tag: "liga", Lookups: []gtab.LookupIndex{0, 1}},
			{Tag: "smcp", Lookups: []gtab.LookupIndex{2}},
			{Tag: "test", Lookups: []gtab.LookupIndex{1}},
		},
		LookupList: make(gtab.LookupList, 3),
	}
	return font
}

func TestPruneKeepsListedFeatures(t *testing.T) {
	f := layoutFont()

	f, res, err := Prune(f, []string{"liga"})
	if err != nil {
		t.Fatal(err)
	}
	if res.GsubBefore != 3 || res.GsubAfter != 1 {
		t.Errorf("got %d -> %d features, want 3 -> 1",
			res.GsubBefore, res.GsubAfter)
	}

	gsub := f.Gsub
	if len(gsub.FeatureList) != 1 || gsub.FeatureList[0].Tag != "liga" {
		t.Fatalf("wrong features survived: %v", gsub.FeatureList)
	}
	if len(gsub.LookupList) != 2 {
		t.Errorf("got %d lookups, want 2", len(gsub.LookupList))
	}

	ff := gsub.ScriptList[language.MustParse("und-Latn")]
	if len(ff.Optional) != 1 || ff.Optional[0] != 0 {
		t.Errorf("script table not renumbered: %v", ff.Optional)
	}
}

func TestPruneNilKeepIsNoop(t *testing.T) {
	f := layoutFont()
	before := f.Gsub

	g, res, err := Prune(f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g != f || f.Gsub != before {
		t.Error("nil keep list must not touch the font")
	}
	if res.GsubBefore != 3 || res.GsubAfter != 3 {
		t.Errorf("got %d -> %d features, want 3 -> 3",
			res.GsubBefore, res.GsubAfter)
	}
}

func TestPruneAllFeatures(t *testing.T) {
	f := layoutFont()

	f, res, err := Prune(f, []string{})
	if err != nil {
		t.Fatal(err)
	}
	if res.GsubAfter != 0 {
		t.Errorf("got %d features, want 0", res.GsubAfter)
	}
	// the re-subset keeps the placeholder and both mapped glyphs
	if res.GlyphsAfter != 3 || f.NumGlyphs() != 3 {
		t.Errorf("got %d glyphs, want 3", f.NumGlyphs())
	}
	if f.Gsub == nil {
		t.Error("empty placeholder table must remain")
	}
	if f.Gpos != nil {
		t.Error("absent table must stay absent")
	}
}

func TestPruneRenumbersLookups(t *testing.T) {
	f := layoutFont()

	f, _, err := Prune(f, []string{"test"})
	if err != nil {
		t.Fatal(err)
	}
	gsub := f.Gsub
	if len(gsub.LookupList) != 1 {
		t.Fatalf("got %d lookups, want 1", len(gsub.LookupList))
	}
	feat := gsub.FeatureList[0]
	if len(feat.Lookups) != 1 || feat.Lookups[0] != 0 {
		t.Errorf("lookup indices not rewritten: %v", feat.Lookups)
	}
}

func TestPruneDropsUnreachableGlyphs(t *testing.T) {
	f := testfont.CFF(1000, 700, 'A', 'B')
	f.Gsub = &gtab.Info{}
	// glyph for B becomes unreachable
	f.CMapTable = cmapenc.Table(map[rune]glyph.ID{'A': 1})

	f, res, err := Prune(f, []string{"liga"})
	if err != nil {
		t.Fatal(err)
	}
	if res.GlyphsBefore != 3 || res.GlyphsAfter != 2 {
		t.Errorf("got %d -> %d glyphs, want 3 -> 2",
			res.GlyphsBefore, res.GlyphsAfter)
	}
	if f.NumGlyphs() != 2 {
		t.Errorf("font has %d glyphs, want 2", f.NumGlyphs())
	}

	cmap, err := f.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	if cmap.Lookup('A') == 0 {
		t.Error("A lost its glyph")
	}
	if cmap.Lookup('B') != 0 {
		t.Error("B should be unmapped")
	}
}
