package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"gps_route_stats/internal/pipeline"
	"gps_route_stats/internal/simplify"
	"gps_route_stats/internal/stats"
	"gps_route_stats/internal/track"
)

// EnvPrefix is prepended to every key when read from the environment, e.g.
// ROUTESTATS_TOLERANCE.
const EnvPrefix = "ROUTESTATS"

type Config struct {
	Tolerance          float64 `mapstructure:"TOLERANCE"`
	MaxSpeedKmh        float64 `mapstructure:"MAX_SPEED_KMH"`
	StopSpeedKmh       float64 `mapstructure:"STOP_SPEED_KMH"`
	ClimbMinGainM      float64 `mapstructure:"CLIMB_MIN_GAIN_M"`
	ClimbMinDistanceKm float64 `mapstructure:"CLIMB_MIN_DISTANCE_KM"`
	ClimbDipToleranceM float64 `mapstructure:"CLIMB_DIP_TOLERANCE_M"`
	TopClimbs          int     `mapstructure:"TOP_CLIMBS"`
	SamplePoints       int     `mapstructure:"SAMPLE_POINTS"`
	Workers            int     `mapstructure:"WORKERS"`
	Format             string  `mapstructure:"FORMAT"`
	OutDir             string  `mapstructure:"OUT_DIR"`
	Render             bool    `mapstructure:"RENDER"`
	Language           string  `mapstructure:"LANGUAGE"`
}

// Load reads defaults, then the optional config file at path, then
// ROUTESTATS_* environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	th := stats.DefaultThresholds()
	v.SetDefault("TOLERANCE", simplify.DefaultTolerance)
	v.SetDefault("MAX_SPEED_KMH", th.MaxSpeedKmh)
	v.SetDefault("STOP_SPEED_KMH", th.StopSpeedKmh)
	v.SetDefault("CLIMB_MIN_GAIN_M", th.ClimbMinGainM)
	v.SetDefault("CLIMB_MIN_DISTANCE_KM", th.ClimbMinDistanceKm)
	v.SetDefault("CLIMB_DIP_TOLERANCE_M", th.ClimbDipToleranceM)
	v.SetDefault("TOP_CLIMBS", th.TopClimbs)
	v.SetDefault("SAMPLE_POINTS", track.SampleSize)
	v.SetDefault("WORKERS", runtime.NumCPU())
	v.SetDefault("FORMAT", "json")
	v.SetDefault("OUT_DIR", ".")
	v.SetDefault("RENDER", false)
	v.SetDefault("LANGUAGE", "en")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Tolerance < 0:
		return fmt.Errorf("tolerance must not be negative, got %v", c.Tolerance)
	case c.MaxSpeedKmh <= 0:
		return fmt.Errorf("max speed must be positive, got %v", c.MaxSpeedKmh)
	case c.StopSpeedKmh < 0 || c.StopSpeedKmh >= c.MaxSpeedKmh:
		return fmt.Errorf("stop speed %v must be within [0, %v)", c.StopSpeedKmh, c.MaxSpeedKmh)
	case c.ClimbMinGainM < 0:
		return fmt.Errorf("climb min gain must not be negative, got %v", c.ClimbMinGainM)
	case c.ClimbMinDistanceKm < 0:
		return fmt.Errorf("climb min distance must not be negative, got %v", c.ClimbMinDistanceKm)
	case c.ClimbDipToleranceM < 0:
		return fmt.Errorf("climb dip tolerance must not be negative, got %v", c.ClimbDipToleranceM)
	case c.SamplePoints < 0:
		return fmt.Errorf("sample points must not be negative, got %d", c.SamplePoints)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Format != "json" && c.Format != "parquet":
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("language %q: %w", c.Language, err)
	}
	return nil
}

func (c Config) Thresholds() stats.Thresholds {
	th := stats.DefaultThresholds()
	th.MaxSpeedKmh = c.MaxSpeedKmh
	th.StopSpeedKmh = c.StopSpeedKmh
	th.ClimbMinGainM = c.ClimbMinGainM
	th.ClimbMinDistanceKm = c.ClimbMinDistanceKm
	th.ClimbDipToleranceM = c.ClimbDipToleranceM
	th.TopClimbs = c.TopClimbs
	return th
}

func (c Config) PipelineOptions() pipeline.Options {
	tag, err := language.Parse(c.Language)
	if err != nil {
		tag = language.English
	}
	return pipeline.Options{
		Tolerance:  c.Tolerance,
		Thresholds: c.Thresholds(),
		SampleSize: c.SamplePoints,
		Language:   tag,
	}
}
