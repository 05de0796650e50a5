package track

import "time"

// SampleSize is how many leading points are inspected to decide whether a
// track carries elevation and timestamp data.
const SampleSize = 100

type Format string

const (
	FormatGPX Format = "gpx"
	FormatFIT Format = "fit"
)

// TrackPoint is a single geo-tagged sample. Elevation and Gradient are nil
// when unknown; Time is the zero value when the sample has no timestamp.
type TrackPoint struct {
	Lat        float64
	Lon        float64
	Elevation  *float64
	Time       time.Time
	DistanceKm float64
	Gradient   *float64
}

func (p TrackPoint) HasElevation() bool { return p.Elevation != nil }

func (p TrackPoint) HasTime() bool { return !p.Time.IsZero() }

// Track is the ordered, full-resolution point sequence of one input file.
type Track struct {
	Name          string
	Format        Format
	Points        []TrackPoint
	HasElevation  bool
	HasTimestamps bool
}

// NewTrack builds a Track and derives HasElevation/HasTimestamps from the
// first sample points.
func NewTrack(name string, format Format, points []TrackPoint, sample int) *Track {
	t := &Track{Name: name, Format: format, Points: points}
	t.HasElevation, t.HasTimestamps = detectData(points, sample)
	return t
}

func detectData(points []TrackPoint, sample int) (hasElevation, hasTimestamps bool) {
	if sample <= 0 {
		sample = SampleSize
	}
	for i := 0; i < len(points) && i < sample; i++ {
		if points[i].HasElevation() {
			hasElevation = true
		}
		if points[i].HasTime() {
			hasTimestamps = true
		}
		if hasElevation && hasTimestamps {
			break
		}
	}
	return hasElevation, hasTimestamps
}

func float64Ptr(v float64) *float64 {
	return &v
}
