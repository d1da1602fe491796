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

// Package fontmerge builds a single composite font from several
// per-script source fonts.
//
// A build is described by a [Config]: an ordered list of scripts, each
// naming a source font and the Unicode ranges or charset file it
// should contribute.  For every enabled script the pipeline resolves
// the requested codepoints, removes codepoints already covered by
// earlier scripts, subsets the source font, and rescales the glyphs so
// that all scripts share one visual cap height.  The subsets are then
// converted to a common outline format and units-per-em, merged into
// one font, pruned, and written to the configured output path.
package fontmerge

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("fontmerge.pipeline")
}
