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

// Package cmapenc builds character map subtables covering the full
// 21-bit Unicode range.
package cmapenc

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// Table builds a cmap table for the given codepoint to glyph mapping.
// Codepoints within the Basic Multilingual Plane are additionally
// exposed through a format 4 subtable for old consumers; the
// authoritative mapping is a format 12 subtable which cannot overflow
// at the 16-bit boundary.
func Table(mapping map[rune]glyph.ID) cmap.Table {
	res := cmap.Table{
		{PlatformID: 0, EncodingID: 4}:  Format12(mapping),
		{PlatformID: 3, EncodingID: 10}: Format12(mapping),
	}

	bmp := cmap.Format4{}
	for r, gid := range mapping {
		if r <= 0xFFFF && (r < 0xD800 || r > 0xDFFF) {
			bmp[uint16(r)] = gid
		}
	}
	if len(bmp) > 0 {
		res[cmap.Key{PlatformID: 3, EncodingID: 1}] = bmp.Encode(0)
	}
	return res
}

// Table12 is like [Table], but omits the format 4 subtable.  Merged
// fonts use this form, so that no consumer can be misled by a 16-bit
// subtable which silently drops codepoints beyond the Basic
// Multilingual Plane.
func Table12(mapping map[rune]glyph.ID) cmap.Table {
	sub := Format12(mapping)
	return cmap.Table{
		{PlatformID: 0, EncodingID: 4}:  sub,
		{PlatformID: 3, EncodingID: 10}: sub,
	}
}

// Format12 encodes a codepoint to glyph mapping as a format 12
// (segmented coverage) cmap subtable.
func Format12(mapping map[rune]glyph.ID) []byte {
	type segment struct {
		start, end rune
		firstGID   glyph.ID
	}

	rr := maps.Keys(mapping)
	slices.Sort(rr)

	var segs []segment
	for _, r := range rr {
		gid := mapping[r]
		n := len(segs)
		if n > 0 && segs[n-1].end == r-1 &&
			segs[n-1].firstGID+glyph.ID(r-segs[n-1].start) == gid {
			segs[n-1].end = r
			continue
		}
		segs = append(segs, segment{start: r, end: r, firstGID: gid})
	}

	l := uint32(16 + len(segs)*12)
	out := make([]byte, 16, l)
	copy(out, []byte{
		0, 12, 0, 0,
		byte(l >> 24), byte(l >> 16), byte(l >> 8), byte(l),
		0, 0, 0, 0, // language
	})
	n := len(segs)
	out[12] = byte(n >> 24)
	out[13] = byte(n >> 16)
	out[14] = byte(n >> 8)
	out[15] = byte(n)
	for _, seg := range segs {
		out = append(out,
			byte(seg.start>>24), byte(seg.start>>16), byte(seg.start>>8), byte(seg.start),
			byte(seg.end>>24), byte(seg.end>>16), byte(seg.end>>8), byte(seg.end),
			0, 0, byte(seg.firstGID>>8), byte(seg.firstGID))
	}
	return out
}
