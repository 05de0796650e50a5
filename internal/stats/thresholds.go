package stats

// Band is one gradient class. A gradient g (absolute, percent) belongs to the
// band when MinPct <= g < MaxPct.
type Band struct {
	Name     string
	MinPct   float64
	MaxPct   float64
	Midpoint float64 // representative value for the average-gradient approximation
}

// Thresholds holds every tuning constant of the statistics components. It is
// passed explicitly; no component reads package state.
type Thresholds struct {
	// Speed
	MaxSpeedKmh  float64 // km/h - faster segments are GPS noise
	StopSpeedKmh float64 // km/h - slower segments count as stopped

	// Climbs
	ClimbMinGainM      float64 // m - minimum gain of a reported climb
	ClimbMinDistanceKm float64 // km - minimum span of a reported climb
	ClimbDipToleranceM float64 // m - point-to-point drop that ends a climb
	TopClimbs          int     // number of climbs returned

	// Gradient distribution
	GradientBands []Band

	// Difficulty tiers, ascending; reaching DistanceKm[i] or GainM[i] lifts
	// the tier to i+1.
	DifficultyDistanceKm [4]float64
	DifficultyGainM      [4]float64
}

// DefaultThresholds returns the production values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxSpeedKmh:          100.0,
		StopSpeedKmh:         3.0,
		ClimbMinGainM:        30.0,
		ClimbMinDistanceKm:   0.5,
		ClimbDipToleranceM:   5.0,
		TopClimbs:            3,
		GradientBands:        DefaultBands(),
		DifficultyDistanceKm: [4]float64{30, 60, 100, 150},
		DifficultyGainM:      [4]float64{500, 1000, 1500, 2500},
	}
}

// DefaultBands are flat, moderate, steep and very steep.
func DefaultBands() []Band {
	return []Band{
		{Name: "flat", MinPct: 0, MaxPct: 3, Midpoint: 1.5},
		{Name: "moderate", MinPct: 3, MaxPct: 6, Midpoint: 4.5},
		{Name: "steep", MinPct: 6, MaxPct: 10, Midpoint: 8},
		{Name: "very_steep", MinPct: 10, MaxPct: 1e9, Midpoint: 12},
	}
}
