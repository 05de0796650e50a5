package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/text/message"

	"gps_route_stats/internal/config"
	"gps_route_stats/internal/render"
)

// --- Main Logic ---

func main() {
	args, err := parseArguments(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing arguments: %v", err)
	}

	failed, err := run(args)
	if err != nil {
		log.Fatal(err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// run processes every input file and returns how many failed.
func run(args *Arguments) (int, error) {
	cfg, err := config.Load(args.ConfigFile)
	if err != nil {
		return 0, err
	}
	cfg, err = args.apply(cfg)
	if err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	job := Job{
		cfg:        cfg,
		opts:       cfg.PipelineOptions(),
		renderOpts: render.DefaultOptions(),
	}
	job.renderOpts.PathColor = args.PathColor

	log.Printf("Processing %d file(s) with %d worker(s)...", len(args.Files), cfg.Workers)
	outcomes := runBatch(args.Files, job)

	p := message.NewPrinter(job.opts.Language)
	var (
		failed  int
		totalKm float64
	)
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		tel := o.Result.Telemetry
		totalKm += tel.DistanceKm
		p.Printf("%s: %.2f km, +%.0f m, %s, %d -> %d points", o.Path, tel.DistanceKm, tel.ElevationGainM, tel.Difficulty, tel.PointCount, tel.SimplifiedPointCount)
		for _, w := range o.Result.Warnings {
			p.Printf(" [%s]", w)
		}
		fmt.Println()
	}
	p.Printf("\n%d of %d file(s) processed, %.1f km total, output in %s\n", len(outcomes)-failed, len(outcomes), totalKm, cfg.OutDir)
	return failed, nil
}
