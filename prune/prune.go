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

// Package prune removes OpenType layout features which are not on a
// caller-supplied keep list, together with the lookups and glyphs
// which become unreachable as a result.
package prune

import (
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/fontmerge/charset"
	"seehuhn.de/go/fontmerge/subset"
)

// Result describes the effect of a call to [Prune].
type Result struct {
	// GlyphsBefore and GlyphsAfter count the glyphs in the font.
	GlyphsBefore, GlyphsAfter int

	// GsubBefore and GsubAfter count the features in the "GSUB" table.
	GsubBefore, GsubAfter int

	// GposBefore and GposAfter count the features in the "GPOS" table.
	GposBefore, GposAfter int
}

// Prune removes all features from the font's "GSUB" and "GPOS" tables
// whose tags are not listed in keep, together with the lookups no
// longer referenced by any surviving feature.  If no lookups survive,
// the font is then re-subset to its own character map, discarding
// alternate glyphs which were only reachable through the removed
// lookups.  The character map itself is never extended.
//
// A nil keep list disables pruning.  The font may be modified in
// place; callers must not use the argument afterwards.
func Prune(font *sfnt.Font, keep []string) (*sfnt.Font, *Result, error) {
	res := &Result{
		GlyphsBefore: font.NumGlyphs(),
		GlyphsAfter:  font.NumGlyphs(),
		GsubBefore:   numFeatures(font.Gsub),
		GposBefore:   numFeatures(font.Gpos),
	}
	if keep == nil {
		res.GsubAfter = res.GsubBefore
		res.GposAfter = res.GposBefore
		return font, res, nil
	}

	tags := make(map[string]bool, len(keep))
	for _, tag := range keep {
		tags[tag] = true
	}

	gsub := pruneTable(font.Gsub, tags)
	gpos := pruneTable(font.Gpos, tags)
	res.GsubAfter = numFeatures(gsub)
	res.GposAfter = numFeatures(gpos)

	if numLookups(gsub)+numLookups(gpos) == 0 {
		resubset, err := toOwnCoverage(font)
		if err != nil {
			return nil, nil, err
		}
		font = resubset
		res.GlyphsAfter = font.NumGlyphs()
		gsub, gpos = nil, nil
	}

	font.Gsub = gsub
	font.Gpos = gpos
	if font.Gsub == nil {
		// keep an empty table so that downstream consumers can
		// distinguish "no substitutions" from "layout not yet built"
		font.Gsub = &gtab.Info{}
	}
	return font, res, nil
}

// toOwnCoverage subsets the font to the codepoints of its own
// character map.
func toOwnCoverage(font *sfnt.Font) (*sfnt.Font, error) {
	cmap, err := font.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	set := charset.New()
	for r := rune(0); r <= 0x10FFFF; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		if cmap.Lookup(r) != 0 {
			set.Add(r)
		}
	}
	res, _, err := subset.Subset(font, set)
	return res, err
}

func numLookups(info *gtab.Info) int {
	if info == nil {
		return 0
	}
	return len(info.LookupList)
}

func numFeatures(info *gtab.Info) int {
	if info == nil {
		return 0
	}
	return len(info.FeatureList)
}

// pruneTable returns a copy of info with all features not in tags
// removed.  It returns nil if no features survive.
func pruneTable(info *gtab.Info, tags map[string]bool) *gtab.Info {
	if info == nil || len(info.FeatureList) == 0 {
		return info
	}

	// select the surviving features
	featMap := make(map[gtab.FeatureIndex]gtab.FeatureIndex)
	var features []*gtab.Feature
	for i, f := range info.FeatureList {
		if !tags[f.Tag] {
			continue
		}
		featMap[gtab.FeatureIndex(i)] = gtab.FeatureIndex(len(features))
		features = append(features, f)
	}
	if len(features) == 0 {
		return nil
	}

	// find the lookups they use, and renumber them
	lookupMap := make(map[gtab.LookupIndex]gtab.LookupIndex)
	var lookups gtab.LookupList
	for _, f := range features {
		for _, l := range f.Lookups {
			if int(l) >= len(info.LookupList) {
				continue
			}
			if _, ok := lookupMap[l]; ok {
				continue
			}
			lookupMap[l] = gtab.LookupIndex(len(lookups))
			lookups = append(lookups, info.LookupList[l])
		}
	}
	for i, f := range features {
		g := &gtab.Feature{Tag: f.Tag}
		for _, l := range f.Lookups {
			if newIdx, ok := lookupMap[l]; ok {
				g.Lookups = append(g.Lookups, newIdx)
			}
		}
		features[i] = g
	}

	// rewrite the script table to use the new feature indices
	scripts := make(gtab.ScriptListInfo)
	for tag, ff := range info.ScriptList {
		gg := &gtab.Features{Required: 0xFFFF}
		if newIdx, ok := featMap[ff.Required]; ok {
			gg.Required = newIdx
		}
		for _, f := range ff.Optional {
			if newIdx, ok := featMap[f]; ok {
				gg.Optional = append(gg.Optional, newIdx)
			}
		}
		scripts[tag] = gg
	}

	return &gtab.Info{
		ScriptList:  scripts,
		FeatureList: features,
		LookupList:  lookups,
	}
}
