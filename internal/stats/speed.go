package stats

import (
	"time"

	"gps_route_stats/internal/track"
)

// SpeedTime is the outcome of the speed/time analysis.
type SpeedTime struct {
	TotalTime        time.Duration
	MovingTime       time.Duration
	StoppedTime      time.Duration
	TotalDistanceKm  float64
	MovingDistanceKm float64
	AvgSpeedKmh      float64 // over moving segments only
	MaxSpeedKmh      float64
	Segments         int // usable segments
	NoiseSegments    int // segments dropped by the speed ceiling
}

// AnalyzeSpeed derives moving/stopped time and speed figures from
// distance-annotated points.
//
// It returns an *track.InsufficientDataError for fewer than two points, and
// nil without error when the track has no timestamps or fewer than two
// usable segments remain after filtering.
func AnalyzeSpeed(points []track.TrackPoint, hasTimestamps bool, th Thresholds) (*SpeedTime, error) {
	if err := track.RequirePoints("speed analysis", points); err != nil {
		return nil, err
	}
	if !hasTimestamps {
		return nil, nil
	}

	var (
		st         SpeedTime
		movingSecs float64
	)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if !prev.HasTime() || !cur.HasTime() {
			continue
		}
		elapsed := cur.Time.Sub(prev.Time)
		if elapsed <= 0 {
			continue
		}

		distKm := track.SegmentKm(points, i)
		hours := elapsed.Hours()
		speed := distKm / hours
		if speed > th.MaxSpeedKmh {
			st.NoiseSegments++
			continue
		}

		st.Segments++
		st.TotalTime += elapsed
		st.TotalDistanceKm += distKm
		if speed < th.StopSpeedKmh {
			continue
		}
		st.MovingTime += elapsed
		movingSecs += elapsed.Seconds()
		st.MovingDistanceKm += distKm
		if speed > st.MaxSpeedKmh {
			st.MaxSpeedKmh = speed
		}
	}

	if st.Segments < 2 {
		return nil, nil
	}

	st.StoppedTime = st.TotalTime - st.MovingTime
	if movingSecs > 0 {
		st.AvgSpeedKmh = st.MovingDistanceKm / (movingSecs / 3600)
	}
	return &st, nil
}
