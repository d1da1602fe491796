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

import "math"

// qpoint is an outline point in float coordinates.
type qpoint struct {
	X, Y float64
	On   bool
}

// maxFitDepth bounds the recursive subdivision of a cubic segment.
// 2^10 quadratic arcs per cubic is far beyond any realistic outline.
const maxFitDepth = 10

// errFactor is sqrt(3)/36, the coefficient of the standard error
// bound for approximating a cubic segment by a single quadratic with
// the control point at the average of the two interpolated cubic
// handles.
var errFactor = math.Sqrt(3) / 36

// fitQuads appends a quadratic approximation of the cubic segment
// p0..p3 to out, keeping the deviation below tol.  The segment is
// subdivided at the midpoint until the bound holds.
func fitQuads(out []qpoint, p0, p1, p2, p3 qpoint, tol float64, depth int) []qpoint {
	dx := p3.X - 3*p2.X + 3*p1.X - p0.X
	dy := p3.Y - 3*p2.Y + 3*p1.Y - p0.Y
	if errFactor*math.Hypot(dx, dy) <= tol || depth >= maxFitDepth {
		ctrl := qpoint{
			X: (3*(p1.X+p2.X) - p0.X - p3.X) / 4,
			Y: (3*(p1.Y+p2.Y) - p0.Y - p3.Y) / 4,
		}
		out = append(out, ctrl)
		out = append(out, qpoint{p3.X, p3.Y, true})
		return out
	}

	// de Casteljau split at t = 1/2
	q1 := mid(p0, p1)
	h := mid(p1, p2)
	r2 := mid(p2, p3)
	q2 := mid(q1, h)
	r1 := mid(h, r2)
	m := mid(q2, r1)
	m.On = true

	out = fitQuads(out, p0, q1, q2, m, tol, depth+1)
	return fitQuads(out, m, r1, r2, p3, tol, depth+1)
}

func mid(a, b qpoint) qpoint {
	return qpoint{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
