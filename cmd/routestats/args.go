package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"gps_route_stats/internal/config"
	"gps_route_stats/internal/render"
)

// --- Structs ---

type Arguments struct {
	ConfigFile string
	Files      []string
	PathColor  color.Color

	// set holds the names of flags given on the command line; only those
	// override the loaded configuration.
	set map[string]bool

	outDir    string
	format    string
	workers   int
	tolerance float64
	render    bool
	language  string
}

// --- Argument Parsing ---

func parseArguments(fs *flag.FlagSet, argv []string) (*Arguments, error) {
	args := &Arguments{set: make(map[string]bool)}
	var pathColorStr string

	fs.StringVar(&args.ConfigFile, "config", "", "Optional config file (yaml, json, toml).")
	fs.StringVar(&args.outDir, "o", ".", "Output directory.")
	fs.StringVar(&args.format, "format", "json", "Output format: json or parquet.")
	fs.IntVar(&args.workers, "workers", 1, "Number of files processed in parallel.")
	fs.Float64Var(&args.tolerance, "tolerance", 0.0001, "Simplification tolerance in degrees.")
	fs.BoolVar(&args.render, "render", false, "Also write profile and route PNGs.")
	fs.StringVar(&args.language, "lang", "en", "Language for climb descriptions (BCP 47).")
	fs.StringVar(&pathColorStr, "path-color", "#FF0000", "Color of the drawn path (hex).")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] track.gpx|track.fit ...\n", os.Args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { args.set[f.Name] = true })

	args.Files = fs.Args()
	if len(args.Files) == 0 {
		return nil, fmt.Errorf("no input files")
	}

	var err error
	args.PathColor, err = render.ParseHexColor(pathColorStr)
	if err != nil {
		return nil, err
	}
	return args, nil
}

// apply overrides cfg with the flags that were given explicitly.
func (a *Arguments) apply(cfg config.Config) (config.Config, error) {
	if a.set["o"] {
		cfg.OutDir = a.outDir
	}
	if a.set["format"] {
		cfg.Format = a.format
	}
	if a.set["workers"] {
		cfg.Workers = a.workers
	}
	if a.set["tolerance"] {
		cfg.Tolerance = a.tolerance
	}
	if a.set["render"] {
		cfg.Render = a.render
	}
	if a.set["lang"] {
		cfg.Language = a.language
	}
	return cfg, cfg.Validate()
}
