package stats

import (
	"math"

	"gps_route_stats/internal/track"
)

// stepDeg is the latitude step that makes consecutive points exactly 0.1 km
// apart along a meridian.
var stepDeg = 0.1 / (6371.0 * math.Pi / 180)

// profile builds an accumulated track along a meridian, one point per 0.1 km,
// with the given elevations.
func profile(elevations ...float64) []track.TrackPoint {
	points := make([]track.TrackPoint, len(elevations))
	for i, ele := range elevations {
		ele := ele
		points[i] = track.TrackPoint{Lat: 46.0 + float64(i)*stepDeg, Lon: 7.0, Elevation: &ele}
	}
	trk := track.NewTrack("", track.FormatGPX, points, track.SampleSize)
	track.Accumulate(trk)
	return trk.Points
}

func ptr(v float64) *float64 {
	return &v
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
