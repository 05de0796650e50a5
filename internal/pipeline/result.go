package pipeline

import (
	"time"

	"gps_route_stats/internal/stats"
	"gps_route_stats/internal/track"
)

// Warning is a result state, not an error. A result with warnings is still
// complete for everything the input supports.
type Warning string

const (
	WarnNoTemporalData   Warning = "no_temporal_data"
	WarnNoElevationData  Warning = "no_elevation_data"
	WarnInsufficientData Warning = "insufficient_data"
)

// Telemetry is the record handed to persistence for every processed track.
type Telemetry struct {
	DistanceKm           float64    `json:"distance_km"`
	ElevationGainM       float64    `json:"elevation_gain_m"`
	ElevationLossM       float64    `json:"elevation_loss_m"`
	MaxElevationM        *float64   `json:"max_elevation_m,omitempty"`
	MinElevationM        *float64   `json:"min_elevation_m,omitempty"`
	HasElevation         bool       `json:"has_elevation"`
	HasTimestamps        bool       `json:"has_timestamps"`
	PointCount           int        `json:"point_count"`
	SimplifiedPointCount int        `json:"simplified_point_count"`
	Difficulty           stats.Tier `json:"difficulty"`
}

// RouteStatistics aggregates speed, time and gradient figures. Speed and
// time fields are nil without timestamps; gradient fields are nil without
// elevation.
type RouteStatistics struct {
	AvgSpeedKmh    *float64             `json:"avg_speed_kmh,omitempty"`
	MaxSpeedKmh    *float64             `json:"max_speed_kmh,omitempty"`
	TotalTimeMin   *float64             `json:"total_time_min,omitempty"`
	MovingTimeMin  *float64             `json:"moving_time_min,omitempty"`
	StoppedTimeMin *float64             `json:"stopped_time_min,omitempty"`
	AvgGradient    *float64             `json:"avg_gradient,omitempty"`
	MaxGradient    *float64             `json:"max_gradient,omitempty"`
	Climbs         []stats.ClimbSegment `json:"climbs,omitempty"`
}

// DisplayPoint is one vertex of the simplified polyline. Index is its
// position in the full-resolution track.
type DisplayPoint struct {
	Index      int      `json:"index"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Elevation  *float64 `json:"elevation,omitempty"`
	DistanceKm float64  `json:"distance_km"`
}

// Result is everything derived from one track file.
type Result struct {
	Name       string
	Format     track.Format
	Telemetry  Telemetry
	Statistics *RouteStatistics
	Gradients  *stats.GradientDistribution
	Speed      *stats.SpeedTime
	Simplified []DisplayPoint
	Indices    []int
	Warnings   []Warning
	Elapsed    time.Duration

	// Track is the full-resolution, annotated input.
	Track *track.Track
}

// HasWarning reports whether w was raised.
func (r *Result) HasWarning(w Warning) bool {
	for _, got := range r.Warnings {
		if got == w {
			return true
		}
	}
	return false
}

func (r *Result) warn(w Warning) {
	if !r.HasWarning(w) {
		r.Warnings = append(r.Warnings, w)
	}
}

func displayPoints(points []track.TrackPoint, indices []int) []DisplayPoint {
	out := make([]DisplayPoint, len(indices))
	for i, idx := range indices {
		p := points[idx]
		out[i] = DisplayPoint{Index: idx, Lat: p.Lat, Lon: p.Lon, Elevation: p.Elevation, DistanceKm: p.DistanceKm}
	}
	return out
}

func minutes(d time.Duration) *float64 {
	m := d.Minutes()
	return &m
}

func float64Ptr(v float64) *float64 {
	return &v
}
