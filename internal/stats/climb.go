package stats

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gps_route_stats/internal/track"
)

// ClimbSegment is a sustained ascent.
type ClimbSegment struct {
	StartKm     float64 `json:"start_km"`
	EndKm       float64 `json:"end_km"`
	GainM       float64 `json:"gain_m"`
	AvgGradient float64 `json:"avg_gradient"`
	Score       float64 `json:"-"`
	Description string  `json:"description"`
}

// LengthKm is the horizontal span of the climb.
func (c ClimbSegment) LengthKm() float64 {
	return c.EndKm - c.StartKm
}

// Describe formats the climb with the printer's number conventions.
func (c ClimbSegment) Describe(p *message.Printer) string {
	return p.Sprintf("%.1f km at %.1f%% (+%.0f m), km %.1f–%.1f",
		c.LengthKm(), c.AvgGradient, c.GainM, c.StartKm, c.EndKm)
}

type climbState int

const (
	flatOrDescent climbState = iota
	inClimb
)

type climbMark struct {
	km  float64
	ele float64
}

// DetectClimbs scans elevated points with a two-state machine and returns the
// highest scoring valid climbs, best first. Descriptions use English number
// formatting; call Describe to localise.
//
// A climb opens on any rise and closes on the first point whose elevation is
// more than ClimbDipToleranceM below the point before it. It then spans from
// its start to that previous point and is kept only with enough gain and
// length. A climb still open at the end of the track is dropped.
func DetectClimbs(points []track.TrackPoint, th Thresholds) []ClimbSegment {
	var (
		climbs     []ClimbSegment
		state      = flatOrDescent
		prev       *track.TrackPoint
		start, end climbMark
	)

	for i := range points {
		p := &points[i]
		if p.Elevation == nil {
			continue
		}
		ele := *p.Elevation

		switch state {
		case flatOrDescent:
			if prev != nil && ele > *prev.Elevation {
				state = inClimb
				start = climbMark{km: prev.DistanceKm, ele: *prev.Elevation}
				end = climbMark{km: p.DistanceKm, ele: ele}
			}
		case inClimb:
			if ele-*prev.Elevation < -th.ClimbDipToleranceM {
				state = flatOrDescent
				if c, ok := closeClimb(start, end, th); ok {
					climbs = append(climbs, c)
				}
			} else {
				end = climbMark{km: p.DistanceKm, ele: ele}
			}
		}
		prev = p
	}

	return rankClimbs(climbs, th.TopClimbs)
}

func closeClimb(start, end climbMark, th Thresholds) (ClimbSegment, bool) {
	gain := end.ele - start.ele
	length := end.km - start.km
	if gain < th.ClimbMinGainM || length < th.ClimbMinDistanceKm || length <= 0 {
		return ClimbSegment{}, false
	}
	avg := gain / (length * 1000) * 100
	return ClimbSegment{
		StartKm:     start.km,
		EndKm:       end.km,
		GainM:       gain,
		AvgGradient: avg,
		Score:       gain * avg,
	}, true
}

func rankClimbs(climbs []ClimbSegment, top int) []ClimbSegment {
	if len(climbs) == 0 {
		return nil
	}
	sort.SliceStable(climbs, func(i, j int) bool {
		return climbs[i].Score > climbs[j].Score
	})
	if top > 0 && len(climbs) > top {
		climbs = climbs[:top]
	}

	p := message.NewPrinter(language.English)
	for i := range climbs {
		climbs[i].Description = climbs[i].Describe(p)
	}
	return climbs
}
