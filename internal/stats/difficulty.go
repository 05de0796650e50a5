package stats

import "fmt"

// Tier is a route difficulty rating.
type Tier int

const (
	Easy Tier = iota
	Moderate
	Difficult
	VeryDifficult
	Extreme
)

var tierNames = [...]string{"easy", "moderate", "difficult", "very_difficult", "extreme"}

func (t Tier) String() string {
	if t < Easy || t > Extreme {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

func (t Tier) MarshalText() ([]byte, error) {
	if t < Easy || t > Extreme {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(tierNames[t]), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier maps a tier name back to its value.
func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if name == s {
			return Tier(i), nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty tier %q", s)
}

// Difficulty rates a route on distance and, when known, elevation gain. The
// harder of the two axes wins.
func Difficulty(distanceKm float64, gainM *float64, th Thresholds) Tier {
	tier := tierFor(max(distanceKm, 0), th.DifficultyDistanceKm)
	if gainM != nil {
		tier = max(tier, tierFor(max(*gainM, 0), th.DifficultyGainM))
	}
	return tier
}

func tierFor(v float64, thresholds [4]float64) Tier {
	tier := Easy
	for i, limit := range thresholds {
		if v >= limit {
			tier = Tier(i + 1)
		}
	}
	return tier
}
