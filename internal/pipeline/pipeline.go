// Package pipeline runs parse, accumulation, simplification and statistics
// over one in-memory track file.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gps_route_stats/internal/simplify"
	"gps_route_stats/internal/stats"
	"gps_route_stats/internal/track"
)

type Options struct {
	Tolerance  float64
	Thresholds stats.Thresholds
	// SampleSize is how many leading points decide HasElevation and
	// HasTimestamps.
	SampleSize int
	// Language localises climb descriptions.
	Language language.Tag
}

func DefaultOptions() Options {
	return Options{
		Tolerance:  simplify.DefaultTolerance,
		Thresholds: stats.DefaultThresholds(),
		SampleSize: track.SampleSize,
		Language:   language.English,
	}
}

// Process parses data and derives telemetry, statistics and the simplified
// polyline. A ParseError is returned as is; every other shortfall in the input
// is reported through Result.Warnings.
func Process(data []byte, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Thresholds.MaxSpeedKmh == 0 {
		opts.Thresholds = stats.DefaultThresholds()
	}

	trk, err := track.ParseSampled(data, opts.SampleSize)
	if err != nil {
		return nil, err
	}
	totals := track.Accumulate(trk)

	res := &Result{
		Name:   trk.Name,
		Format: trk.Format,
		Track:  trk,
		Telemetry: Telemetry{
			DistanceKm:     totals.DistanceKm,
			ElevationGainM: totals.ElevationGainM,
			ElevationLossM: totals.ElevationLossM,
			MaxElevationM:  totals.MaxElevationM,
			MinElevationM:  totals.MinElevationM,
			HasElevation:   trk.HasElevation,
			HasTimestamps:  trk.HasTimestamps,
			PointCount:     len(trk.Points),
		},
	}
	if !trk.HasTimestamps {
		res.warn(WarnNoTemporalData)
	}
	if !trk.HasElevation {
		res.warn(WarnNoElevationData)
	}

	if err := track.RequirePoints("route statistics", trk.Points); err != nil {
		res.warn(WarnInsufficientData)
		res.Indices = simplify.Indices(trk.Points, opts.Tolerance)
		res.finish(trk, totals, opts, start)
		return res, nil
	}

	var (
		g         errgroup.Group
		points    = trk.Points
		speed     *stats.SpeedTime
		gradients *stats.GradientDistribution
		climbs    []stats.ClimbSegment
	)
	g.Go(func() error {
		res.Indices = simplify.Indices(points, opts.Tolerance)
		return nil
	})
	g.Go(func() error {
		var err error
		speed, err = stats.AnalyzeSpeed(points, trk.HasTimestamps, opts.Thresholds)
		if err != nil {
			return fmt.Errorf("speed analysis: %w", err)
		}
		return nil
	})
	if trk.HasElevation {
		g.Go(func() error {
			gradients = stats.ClassifyGradients(points, opts.Thresholds)
			return nil
		})
		g.Go(func() error {
			climbs = stats.DetectClimbs(points, opts.Thresholds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if !errors.Is(err, track.ErrInsufficientData) {
			return nil, err
		}
		res.warn(WarnInsufficientData)
	}
	if trk.HasTimestamps && speed == nil {
		res.warn(WarnInsufficientData)
	}

	if base, _ := opts.Language.Base(); base.String() != "en" {
		p := message.NewPrinter(opts.Language)
		for i := range climbs {
			climbs[i].Description = climbs[i].Describe(p)
		}
	}

	res.Speed = speed
	res.Gradients = gradients
	res.Statistics = buildStatistics(speed, gradients, climbs)
	res.finish(trk, totals, opts, start)
	return res, nil
}

func (r *Result) finish(trk *track.Track, totals track.Totals, opts Options, start time.Time) {
	r.Simplified = displayPoints(trk.Points, r.Indices)
	r.Telemetry.SimplifiedPointCount = len(r.Indices)

	var gain *float64
	if trk.HasElevation {
		gain = &totals.ElevationGainM
	}
	r.Telemetry.Difficulty = stats.Difficulty(totals.DistanceKm, gain, opts.Thresholds)
	r.Elapsed = time.Since(start)
}

// buildStatistics returns nil when nothing could be computed.
func buildStatistics(speed *stats.SpeedTime, gradients *stats.GradientDistribution, climbs []stats.ClimbSegment) *RouteStatistics {
	if speed == nil && gradients == nil && len(climbs) == 0 {
		return nil
	}

	rs := &RouteStatistics{Climbs: climbs}
	if speed != nil {
		rs.AvgSpeedKmh = float64Ptr(speed.AvgSpeedKmh)
		rs.MaxSpeedKmh = float64Ptr(speed.MaxSpeedKmh)
		rs.TotalTimeMin = minutes(speed.TotalTime)
		rs.MovingTimeMin = minutes(speed.MovingTime)
		rs.StoppedTimeMin = minutes(speed.StoppedTime)
	}
	if gradients != nil {
		rs.AvgGradient = float64Ptr(gradients.AvgGradient)
		rs.MaxGradient = float64Ptr(gradients.MaxGradient)
	}
	return rs
}
