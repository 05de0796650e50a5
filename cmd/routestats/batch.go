package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"

	"gps_route_stats/internal/config"
	"gps_route_stats/internal/export"
	"gps_route_stats/internal/pipeline"
	"gps_route_stats/internal/render"
	"gps_route_stats/internal/stats"
)

// --- Structs ---

type Job struct {
	cfg        config.Config
	opts       pipeline.Options
	renderOpts render.Options
}

type Outcome struct {
	Path   string
	Result *pipeline.Result
	Err    error
}

// --- Batch Pipeline ---

// runBatch processes files on cfg.Workers goroutines and returns one outcome
// per file, in input order.
func runBatch(files []string, job Job) []Outcome {
	outcomes := make([]Outcome, len(files))
	tasks := make(chan int, job.cfg.Workers*2)

	go func() {
		for i := range files {
			tasks <- i
		}
		close(tasks)
	}()

	bar := progressbar.Default(int64(len(files)), "Processing")
	var wg sync.WaitGroup
	for i := 0; i < job.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				res, err := job.processFile(files[idx])
				if err != nil {
					log.Printf("%s: %v", files[idx], err)
				}
				outcomes[idx] = Outcome{Path: files[idx], Result: res, Err: err}
				bar.Add(1)
			}
		}()
	}
	wg.Wait()
	bar.Finish()
	return outcomes
}

func (j Job) processFile(path string) (*pipeline.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	res, err := pipeline.Process(data, j.opts)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(j.cfg.OutDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	rec := export.NewRecord(path, res)
	switch j.cfg.Format {
	case "parquet":
		if err := export.WritePointsParquetFile(base+".points.parquet", res.Simplified); err != nil {
			return nil, fmt.Errorf("write parquet: %w", err)
		}
	default:
		rec.Points = res.Simplified
	}
	if err := export.WriteJSONFile(base+".json", rec); err != nil {
		return nil, fmt.Errorf("write json: %w", err)
	}

	if j.cfg.Render {
		if err := j.renderFiles(base, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (j Job) renderFiles(base string, res *pipeline.Result) error {
	opts := j.renderOpts
	opts.Title = res.Name
	if st := res.Statistics; st != nil {
		opts.AvgSpeedKmh = st.AvgSpeedKmh
		opts.MaxGradient = st.MaxGradient
	}

	if res.Track.HasElevation {
		var climbs []stats.ClimbSegment
		if res.Statistics != nil {
			climbs = res.Statistics.Climbs
		}
		img, err := render.Profile(res.Track.Points, climbs, opts)
		switch {
		case errors.Is(err, render.ErrNoElevation):
		case err != nil:
			return fmt.Errorf("render profile: %w", err)
		default:
			if err := render.SavePNG(base+".profile.png", img); err != nil {
				return err
			}
		}
	}

	if len(res.Simplified) >= 2 {
		routeOpts := opts
		routeOpts.Width, routeOpts.Height = 800, 800
		img, err := render.Route(res.Simplified, routeOpts)
		if err != nil {
			return fmt.Errorf("render route: %w", err)
		}
		if err := render.SavePNG(base+".route.png", img); err != nil {
			return err
		}
	}
	return nil
}
