// Package simplify reduces a track polyline for display and storage using
// Ramer–Douglas–Peucker on latitude/longitude degrees.
package simplify

import (
	"math"

	"gps_route_stats/internal/track"
)

// DefaultTolerance is the default maximum perpendicular deviation, in degrees.
const DefaultTolerance = 0.0001

type span struct {
	lo, hi int
}

// Indices returns the ascending indices of the points kept at tolerance
// epsilon. The first and last index are always kept; inputs with fewer than
// three points come back whole.
//
// The reduction runs on an explicit stack of index ranges, so nearly
// collinear inputs of any length cannot exhaust the goroutine stack.
func Indices(points []track.TrackPoint, epsilon float64) []int {
	n := len(points)
	if n < 3 {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if epsilon < 0 || math.IsNaN(epsilon) {
		epsilon = 0
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	stack := make([]span, 0, 64)
	stack = append(stack, span{0, n - 1})
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}

		a, b := points[s.lo], points[s.hi]
		maxDist, maxIdx := -1.0, -1
		for i := s.lo + 1; i < s.hi; i++ {
			// Strict comparison keeps the first maximum, which makes the
			// result idempotent and monotone in epsilon.
			if d := perpendicularDistance(points[i], a, b); d > maxDist {
				maxDist, maxIdx = d, i
			}
		}

		if maxDist > epsilon {
			keep[maxIdx] = true
			stack = append(stack, span{s.lo, maxIdx}, span{maxIdx, s.hi})
		}
	}

	out := make([]int, 0, 16)
	for i, k := range keep {
		if k {
			out = append(out, i)
		}
	}
	return out
}

// Points returns the kept points themselves, in input order.
func Points(points []track.TrackPoint, epsilon float64) []track.TrackPoint {
	idx := Indices(points, epsilon)
	out := make([]track.TrackPoint, len(idx))
	for i, j := range idx {
		out[i] = points[j]
	}
	return out
}

// perpendicularDistance is the planar distance, in degrees, from p to the
// chord a-b. A degenerate chord falls back to the distance from a.
func perpendicularDistance(p, a, b track.TrackPoint) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return math.Hypot(p.Lon-a.Lon, p.Lat-a.Lat)
	}
	return math.Abs(dy*p.Lon-dx*p.Lat+b.Lon*a.Lat-b.Lat*a.Lon) / norm
}
