package track

import (
	"math"

	"github.com/tkrajina/gpxgo/gpx"
)

// ParseGPX decodes a GPX document. Track points of every track and segment
// are flattened in document order; a document without track points falls
// back to its route points.
func ParseGPX(data []byte, sample int) (*Track, error) {
	data, err := checkEncoding(data)
	if err != nil {
		return nil, err
	}

	gpxFile, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, classifyDecodeError(err)
	}

	var points []TrackPoint
	name := gpxFile.Name
	for ti, trk := range gpxFile.Tracks {
		if ti == 0 && trk.Name != "" {
			name = trk.Name
		}
		for _, segment := range trk.Segments {
			for _, p := range segment.Points {
				points = append(points, fromGPXPoint(p))
			}
		}
	}
	if len(points) == 0 {
		for ri, rte := range gpxFile.Routes {
			if ri == 0 && rte.Name != "" && name == "" {
				name = rte.Name
			}
			for _, p := range rte.Points {
				points = append(points, fromGPXPoint(p))
			}
		}
	}
	if len(points) == 0 {
		return nil, &ParseError{Kind: ErrNoPoints}
	}
	if err := validateCoordinates(points); err != nil {
		return nil, err
	}

	return NewTrack(name, FormatGPX, points, sample), nil
}

func fromGPXPoint(p gpx.GPXPoint) TrackPoint {
	tp := TrackPoint{Lat: p.Latitude, Lon: p.Longitude}
	if p.Elevation.NotNull() && !math.IsNaN(p.Elevation.Value()) {
		tp.Elevation = float64Ptr(p.Elevation.Value())
	}
	if !p.Timestamp.IsZero() {
		tp.Time = p.Timestamp.UTC()
	}
	return tp
}
