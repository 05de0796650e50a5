package stats

import (
	"math"

	"gps_route_stats/internal/track"
)

// BandShare is the distance covered within one gradient band.
type BandShare struct {
	Name       string  `json:"name"`
	MinPct     float64 `json:"min_pct"`
	MaxPct     float64 `json:"max_pct"`
	Midpoint   float64 `json:"-"`
	DistanceKm float64 `json:"distance_km"`
	Percentage float64 `json:"percentage"`
}

// GradientDistribution is the share of classified distance per band.
type GradientDistribution struct {
	Bands   []BandShare `json:"bands"`
	TotalKm float64     `json:"total_km"`
	// AvgGradient is the distance-weighted mean of band midpoints, an
	// approximation of the mean absolute gradient.
	AvgGradient float64 `json:"avg_gradient"`
	MaxGradient float64 `json:"max_gradient"`
}

// ClassifyGradients buckets each segment with a defined gradient by its
// absolute value, weighting by horizontal segment length. It returns nil when
// no segment could be classified.
func ClassifyGradients(points []track.TrackPoint, th Thresholds) *GradientDistribution {
	bands := th.GradientBands
	if len(bands) == 0 {
		bands = DefaultBands()
	}

	dist := &GradientDistribution{
		Bands:       make([]BandShare, len(bands)),
		MaxGradient: math.Inf(-1),
	}
	for i, b := range bands {
		dist.Bands[i] = BandShare{Name: b.Name, MinPct: b.MinPct, MaxPct: b.MaxPct, Midpoint: b.Midpoint}
	}

	classified := false
	for i := 1; i < len(points); i++ {
		g := points[i].Gradient
		if g == nil {
			continue
		}
		km := track.SegmentKm(points, i)
		if km <= 0 {
			continue
		}
		idx := bandIndex(bands, math.Abs(*g))
		if idx < 0 {
			continue
		}
		dist.Bands[idx].DistanceKm += km
		dist.TotalKm += km
		if *g > dist.MaxGradient {
			dist.MaxGradient = *g
		}
		classified = true
	}
	if !classified {
		return nil
	}

	var weighted float64
	for i := range dist.Bands {
		b := &dist.Bands[i]
		b.Percentage = b.DistanceKm / dist.TotalKm * 100
		weighted += b.DistanceKm * b.Midpoint
	}
	dist.AvgGradient = weighted / dist.TotalKm
	return dist
}

// bandIndex returns the band holding g, or the last band for values past
// every upper bound.
func bandIndex(bands []Band, g float64) int {
	for i, b := range bands {
		if g >= b.MinPct && g < b.MaxPct {
			return i
		}
	}
	if n := len(bands); n > 0 && g >= bands[n-1].MinPct {
		return n - 1
	}
	return -1
}
