package track

import "math"

const earthRadiusKm = 6371.0

// Totals summarises one accumulation pass.
type Totals struct {
	DistanceKm     float64
	ElevationGainM float64
	ElevationLossM float64
	MaxElevationM  *float64
	MinElevationM  *float64
}

// HaversineKm is the great-circle surface distance between two points. It
// ignores elevation.
func HaversineKm(p1, p2 TrackPoint) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lon1 := p1.Lon * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lon2 := p2.Lon * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// SegmentKm is the horizontal length of the segment ending at point i.
func SegmentKm(points []TrackPoint, i int) float64 {
	if i <= 0 || i >= len(points) {
		return 0
	}
	return points[i].DistanceKm - points[i-1].DistanceKm
}

// Accumulate annotates points in place with cumulative distance and
// per-point gradient, and returns the elevation totals.
func Accumulate(t *Track) Totals {
	var totals Totals
	points := t.Points
	if len(points) == 0 {
		return totals
	}

	points[0].DistanceKm = 0
	points[0].Gradient = nil
	observeElevation(&totals, points[0])

	for i := 1; i < len(points); i++ {
		prev, cur := &points[i-1], &points[i]
		horizontal := HaversineKm(*prev, *cur)
		cur.DistanceKm = prev.DistanceKm + horizontal
		cur.Gradient = nil
		observeElevation(&totals, *cur)

		if prev.Elevation == nil || cur.Elevation == nil {
			continue
		}
		delta := *cur.Elevation - *prev.Elevation
		if delta > 0 {
			totals.ElevationGainM += delta
		} else {
			totals.ElevationLossM -= delta
		}
		if horizontal > 0 {
			cur.Gradient = float64Ptr(delta / (horizontal * 1000) * 100)
		}
	}

	totals.DistanceKm = points[len(points)-1].DistanceKm
	return totals
}

func observeElevation(totals *Totals, p TrackPoint) {
	if p.Elevation == nil {
		return
	}
	ele := *p.Elevation
	if totals.MaxElevationM == nil || ele > *totals.MaxElevationM {
		totals.MaxElevationM = float64Ptr(ele)
	}
	if totals.MinElevationM == nil || ele < *totals.MinElevationM {
		totals.MinElevationM = float64Ptr(ele)
	}
}
