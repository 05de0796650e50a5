package track

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/tormoder/fit"
)

// ParseFIT decodes the record messages of a FIT activity or course file.
// Records without a valid position are skipped.
func ParseFIT(data []byte, sample int) (*Track, error) {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Kind: ErrMalformed, Err: fmt.Errorf("decode FIT file: %w", err)}
	}

	var (
		records []*fit.RecordMsg
		name    string
	)
	switch decoded.Type() {
	case fit.FileTypeActivity:
		activity, err := decoded.Activity()
		if err != nil {
			return nil, &ParseError{Kind: ErrMalformed, Err: err}
		}
		records = activity.Records
	case fit.FileTypeCourse:
		course, err := decoded.Course()
		if err != nil {
			return nil, &ParseError{Kind: ErrMalformed, Err: err}
		}
		records = course.Records
		if course.Course != nil {
			name = course.Course.Name
		}
	default:
		return nil, &ParseError{Kind: ErrNoPoints, Err: fmt.Errorf("FIT file type %v carries no track", decoded.Type())}
	}

	points := make([]TrackPoint, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.PositionLat.Invalid() || rec.PositionLong.Invalid() {
			continue
		}
		tp := TrackPoint{
			Lat:  rec.PositionLat.Degrees(),
			Lon:  rec.PositionLong.Degrees(),
			Time: validTimeOrZero(rec.Timestamp),
		}
		if ele, ok := recordElevation(rec); ok {
			tp.Elevation = float64Ptr(ele)
		}
		points = append(points, tp)
	}
	if len(points) == 0 {
		return nil, &ParseError{Kind: ErrNoPoints}
	}
	if err := validateCoordinates(points); err != nil {
		return nil, err
	}

	return NewTrack(name, FormatFIT, points, sample), nil
}

func recordElevation(rec *fit.RecordMsg) (float64, bool) {
	if ele := rec.GetEnhancedAltitudeScaled(); !math.IsNaN(ele) && !math.IsInf(ele, 0) {
		return ele, true
	}
	if ele := rec.GetAltitudeScaled(); !math.IsNaN(ele) && !math.IsInf(ele, 0) {
		return ele, true
	}
	return 0, false
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t.UTC()
}
