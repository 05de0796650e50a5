package stats

import (
	"errors"
	"testing"
	"time"

	"gps_route_stats/internal/track"
)

var t0 = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// timed builds points from per-segment speeds (km/h) and durations.
func timed(speeds []float64, step time.Duration) []track.TrackPoint {
	points := make([]track.TrackPoint, len(speeds)+1)
	points[0] = track.TrackPoint{Lat: 46, Lon: 7, Time: t0}
	for i, v := range speeds {
		prev := points[i]
		points[i+1] = track.TrackPoint{
			Lat:        46,
			Lon:        7,
			Time:       prev.Time.Add(step),
			DistanceKm: prev.DistanceKm + v*step.Hours(),
		}
	}
	return points
}

func TestAnalyzeSpeedAlternating(t *testing.T) {
	speeds := make([]float64, 99)
	for i := range speeds {
		if i%2 == 0 {
			speeds[i] = 20
		} else {
			speeds[i] = 1
		}
	}

	st, err := AnalyzeSpeed(timed(speeds, time.Second), true, DefaultThresholds())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if st == nil {
		t.Fatalf("Expected speed statistics")
	}

	if st.MovingTime != 50*time.Second {
		t.Errorf("Expected 50s moving, got %v", st.MovingTime)
	}
	if st.StoppedTime != 49*time.Second {
		t.Errorf("Expected 49s stopped, got %v", st.StoppedTime)
	}
	if st.TotalTime != 99*time.Second {
		t.Errorf("Expected 99s total, got %v", st.TotalTime)
	}
	if !approx(st.AvgSpeedKmh, 20, 1e-6) {
		t.Errorf("Expected average 20 km/h, got %v", st.AvgSpeedKmh)
	}
	if !approx(st.MaxSpeedKmh, 20, 1e-6) {
		t.Errorf("Expected max 20 km/h, got %v", st.MaxSpeedKmh)
	}
	if st.Segments != 99 {
		t.Errorf("Expected 99 segments, got %d", st.Segments)
	}
}

func TestAnalyzeSpeedDropsNoise(t *testing.T) {
	st, err := AnalyzeSpeed(timed([]float64{20, 250, 20}, 10*time.Second), true, DefaultThresholds())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if st.NoiseSegments != 1 {
		t.Errorf("Expected 1 noise segment, got %d", st.NoiseSegments)
	}
	if st.TotalTime != 20*time.Second {
		t.Errorf("Noise segment time must not count, got %v", st.TotalTime)
	}
	if st.MaxSpeedKmh > DefaultThresholds().MaxSpeedKmh {
		t.Errorf("Max speed includes noise: %v", st.MaxSpeedKmh)
	}
	if !approx(st.MovingDistanceKm, 40*(10*time.Second).Hours(), 1e-9) {
		t.Errorf("Unexpected moving distance %v", st.MovingDistanceKm)
	}
}

func TestAnalyzeSpeedWithoutTimestamps(t *testing.T) {
	points := []track.TrackPoint{{Lat: 1, Lon: 1}, {Lat: 1.01, Lon: 1, DistanceKm: 1.1}}
	st, err := AnalyzeSpeed(points, false, DefaultThresholds())
	if st != nil || err != nil {
		t.Errorf("Expected nil, nil without timestamps, got %+v, %v", st, err)
	}
}

func TestAnalyzeSpeedInsufficientPoints(t *testing.T) {
	_, err := AnalyzeSpeed([]track.TrackPoint{{Lat: 1, Lon: 1, Time: t0}}, true, DefaultThresholds())
	if !errors.Is(err, track.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestAnalyzeSpeedZeroDuration(t *testing.T) {
	// Identical points recorded at the same instant leave no usable segment.
	points := []track.TrackPoint{{Lat: 1, Lon: 1, Time: t0}, {Lat: 1, Lon: 1, Time: t0}}
	st, err := AnalyzeSpeed(points, true, DefaultThresholds())
	if st != nil || err != nil {
		t.Errorf("Expected nil, nil, got %+v, %v", st, err)
	}
}

func TestAnalyzeSpeedSingleUsableSegment(t *testing.T) {
	st, err := AnalyzeSpeed(timed([]float64{20}, time.Minute), true, DefaultThresholds())
	if st != nil || err != nil {
		t.Errorf("Expected nil, nil for one segment, got %+v, %v", st, err)
	}
}
