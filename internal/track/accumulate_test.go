package track

import (
	"errors"
	"math"
	"testing"
)

func elevated(lat, lon, ele float64) TrackPoint {
	return TrackPoint{Lat: lat, Lon: lon, Elevation: float64Ptr(ele)}
}

func TestHaversineKm(t *testing.T) {
	// Jakarta to Bandung is roughly 115-120 km.
	d := HaversineKm(TrackPoint{Lat: -6.2, Lon: 106.816}, TrackPoint{Lat: -6.9175, Lon: 107.6191})
	if d < 100 || d > 140 {
		t.Errorf("Unexpected distance: %v", d)
	}

	// 0.001 degrees of latitude is ~111 m.
	d = HaversineKm(TrackPoint{Lat: 46.0, Lon: 7.0}, TrackPoint{Lat: 46.001, Lon: 7.0})
	if math.Abs(d-0.1112) > 0.001 {
		t.Errorf("Expected ~0.111 km, got %.4f", d)
	}
}

func TestAccumulate(t *testing.T) {
	trk := NewTrack("", FormatGPX, []TrackPoint{
		elevated(46.0, 7.0, 1000),
		elevated(46.001, 7.0, 1010),
		elevated(46.002, 7.0, 1004),
		elevated(46.003, 7.0, 1004),
	}, SampleSize)

	totals := Accumulate(trk)

	if math.Abs(totals.DistanceKm-0.3336) > 0.002 {
		t.Errorf("Expected ~0.334 km, got %.4f", totals.DistanceKm)
	}
	if totals.ElevationGainM != 10 {
		t.Errorf("Expected gain 10, got %v", totals.ElevationGainM)
	}
	if totals.ElevationLossM != 6 {
		t.Errorf("Expected loss 6, got %v", totals.ElevationLossM)
	}
	if *totals.MaxElevationM != 1010 || *totals.MinElevationM != 1000 {
		t.Errorf("Unexpected elevation range %v..%v", *totals.MinElevationM, *totals.MaxElevationM)
	}

	if trk.Points[0].Gradient != nil {
		t.Errorf("First point must not carry a gradient")
	}
	g := trk.Points[1].Gradient
	if g == nil {
		t.Fatalf("Expected gradient on point 1")
	}
	// 10 m over ~111 m horizontal.
	if math.Abs(*g-8.99) > 0.05 {
		t.Errorf("Expected gradient ~9%%, got %.3f", *g)
	}
	if *trk.Points[3].Gradient != 0 {
		t.Errorf("Expected flat gradient, got %v", *trk.Points[3].Gradient)
	}
}

func TestAccumulateUsesHorizontalDistance(t *testing.T) {
	flat := NewTrack("", FormatGPX, []TrackPoint{elevated(46.0, 7.0, 0), elevated(46.001, 7.0, 0)}, SampleSize)
	steep := NewTrack("", FormatGPX, []TrackPoint{elevated(46.0, 7.0, 0), elevated(46.001, 7.0, 100)}, SampleSize)

	if Accumulate(flat).DistanceKm != Accumulate(steep).DistanceKm {
		t.Errorf("Elevation change must not affect horizontal distance")
	}
}

func TestAccumulateDuplicatePoints(t *testing.T) {
	trk := NewTrack("", FormatGPX, []TrackPoint{
		elevated(46.0, 7.0, 1000),
		elevated(46.0, 7.0, 1003),
		elevated(46.001, 7.0, 1006),
	}, SampleSize)

	totals := Accumulate(trk)

	if trk.Points[1].DistanceKm != 0 {
		t.Errorf("Duplicate point must add no distance, got %v", trk.Points[1].DistanceKm)
	}
	if trk.Points[1].Gradient != nil {
		t.Errorf("Zero-distance segment must have no gradient, got %v", *trk.Points[1].Gradient)
	}
	if trk.Points[2].Gradient == nil {
		t.Errorf("Expected a gradient after the duplicate")
	}
	if totals.ElevationGainM != 6 {
		t.Errorf("Duplicate point elevation must still count, got gain %v", totals.ElevationGainM)
	}
}

func TestAccumulateMissingElevation(t *testing.T) {
	trk := NewTrack("", FormatGPX, []TrackPoint{
		elevated(46.0, 7.0, 1000),
		{Lat: 46.001, Lon: 7.0},
		elevated(46.002, 7.0, 1020),
	}, SampleSize)

	totals := Accumulate(trk)

	for i, p := range trk.Points {
		if p.Gradient != nil {
			t.Errorf("Point %d: expected no gradient next to a missing elevation", i)
		}
	}
	if totals.ElevationGainM != 0 {
		t.Errorf("Expected no gain across missing elevation, got %v", totals.ElevationGainM)
	}
	if totals.DistanceKm <= 0.2 {
		t.Errorf("Distance must still accumulate, got %v", totals.DistanceKm)
	}
}

func TestAccumulateWithoutElevation(t *testing.T) {
	trk := NewTrack("", FormatGPX, []TrackPoint{{Lat: 1, Lon: 1}, {Lat: 1.01, Lon: 1}}, SampleSize)
	totals := Accumulate(trk)
	if totals.MaxElevationM != nil || totals.MinElevationM != nil {
		t.Errorf("Expected nil elevation range")
	}
}

func TestCumulativeDistanceIsMonotonic(t *testing.T) {
	points := make([]TrackPoint, 500)
	for i := range points {
		// Zig-zag with repeated points every seventh sample.
		lat := 46.0 + float64(i%7)*0.0003
		lon := 7.0 + float64(i/7)*0.0002
		if i%7 == 3 && i > 0 {
			lat, lon = points[i-1].Lat, points[i-1].Lon
		}
		points[i] = elevated(lat, lon, float64(i%13))
	}
	trk := NewTrack("", FormatGPX, points, SampleSize)
	Accumulate(trk)

	for i := 1; i < len(trk.Points); i++ {
		if trk.Points[i].DistanceKm < trk.Points[i-1].DistanceKm {
			t.Fatalf("Distance decreased at %d: %v < %v", i, trk.Points[i].DistanceKm, trk.Points[i-1].DistanceKm)
		}
	}
}

func TestRequirePoints(t *testing.T) {
	err := RequirePoints("speed", []TrackPoint{{Lat: 1, Lon: 1}})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Expected ErrInsufficientData, got %v", err)
	}
	var ierr *InsufficientDataError
	if !errors.As(err, &ierr) || ierr.Points != 1 || ierr.Op != "speed" {
		t.Errorf("Unexpected error details: %+v", ierr)
	}
	if err := RequirePoints("speed", make([]TrackPoint, 2)); err != nil {
		t.Errorf("Expected nil for two points, got %v", err)
	}
}
