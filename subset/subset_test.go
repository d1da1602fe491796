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

package subset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/fontmerge/charset"
	"seehuhn.de/go/fontmerge/internal/testfont"
)

func TestSubsetTrueType(t *testing.T) {
	font := testfont.TrueType(t)

	set := charset.New('A', 'B', 'C')
	sub, cov, err := Subset(font, set)
	if err != nil {
		t.Fatal(err)
	}

	if cov.Found != 3 || cov.Requested != 3 {
		t.Errorf("coverage: got %d/%d, want 3/3", cov.Found, cov.Requested)
	}
	if n := sub.NumGlyphs(); n != 4 {
		t.Errorf("got %d glyphs, want 4", n)
	}

	cmap, err := sub.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[rune]bool)
	for _, r := range []rune{'A', 'B', 'C'} {
		gid := cmap.Lookup(r)
		if gid == 0 || int(gid) >= sub.NumGlyphs() {
			t.Errorf("%c: bad gid %d", r, gid)
		}
		if seen[r] {
			t.Errorf("%c mapped twice", r)
		}
		seen[r] = true
	}

	if sub.Gsub != nil || sub.Gpos != nil || sub.Gdef != nil {
		t.Error("layout tables not dropped")
	}
}

func TestSubsetPartialCoverage(t *testing.T) {
	font := testfont.CFF(1000, 700, 'A', 'B')

	set := charset.New('A', 0x4E00)
	sub, cov, err := Subset(font, set)
	if err != nil {
		t.Fatal(err)
	}
	if cov.Found != 1 {
		t.Errorf("found %d, want 1", cov.Found)
	}
	if d := cmp.Diff([]rune{0x4E00}, cov.Missing); d != "" {
		t.Errorf("missing (-want +got):\n%s", d)
	}
	if n := sub.NumGlyphs(); n != 2 {
		t.Errorf("got %d glyphs, want 2", n)
	}
}

func TestSubsetNoOverlap(t *testing.T) {
	font := testfont.CFF(1000, 700, 'A')

	_, _, err := Subset(font, charset.New(0x4E00, 0x4E01))
	if !errors.Is(err, ErrNoMatchingGlyphs) {
		t.Errorf("got %v, want ErrNoMatchingGlyphs", err)
	}
}

func TestSubsetIdempotent(t *testing.T) {
	font := testfont.TrueType(t)

	set, err := charset.ParseRanges([]string{"U+0041-005A", "U+0061-007A"})
	if err != nil {
		t.Fatal(err)
	}
	first, _, err := Subset(font, set)
	if err != nil {
		t.Fatal(err)
	}

	// substitution rules must not pull extra glyphs into the subset
	srcCmap, err := font.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	distinct := make(map[glyph.ID]bool)
	for _, r := range set.Runes() {
		if gid := srcCmap.Lookup(r); gid != 0 {
			distinct[gid] = true
		}
	}
	if want := len(distinct) + 1; first.NumGlyphs() != want {
		t.Errorf("got %d glyphs, want %d", first.NumGlyphs(), want)
	}

	// re-subsetting to the declared coverage must not change the
	// glyph count
	cmap, err := first.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	own := make(charset.Set)
	for _, r := range set.Runes() {
		if cmap.Lookup(r) != 0 {
			own.Add(r)
		}
	}
	second, _, err := Subset(first, own)
	if err != nil {
		t.Fatal(err)
	}
	if first.NumGlyphs() != second.NumGlyphs() {
		t.Errorf("glyph count changed: %d -> %d",
			first.NumGlyphs(), second.NumGlyphs())
	}
}

func TestSubsetDeterministic(t *testing.T) {
	set := charset.New('x', 'g', 'A', 0x4E00)

	a, _, err := Subset(testfont.TrueType(t), set)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Subset(testfont.TrueType(t), set)
	if err != nil {
		t.Fatal(err)
	}
	if a.NumGlyphs() != b.NumGlyphs() {
		t.Fatal("glyph counts differ between runs")
	}
	cmapA, _ := a.CMapTable.GetBest()
	cmapB, _ := b.CMapTable.GetBest()
	for _, r := range set.Runes() {
		if cmapA.Lookup(r) != cmapB.Lookup(r) {
			t.Errorf("U+%04X: gid differs between runs", r)
		}
	}
}

func TestCoverageRatio(t *testing.T) {
	c := &Coverage{Requested: 4, Found: 3}
	if got := c.Ratio(); got != 0.75 {
		t.Errorf("got %g, want 0.75", got)
	}
	empty := &Coverage{}
	if got := empty.Ratio(); got != 1 {
		t.Errorf("empty request: got %g, want 1", got)
	}
}
