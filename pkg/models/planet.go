package models

// Planet is a single planet record from the upstream planets endpoint.
// OrbitalPeriod and RotationPeriod may hold non-numeric sentinels such
// as "unknown", so callers cannot assume they parse as numbers.
type Planet struct {
	Name           string `json:"name"`
	Population     string `json:"population"`
	OrbitalPeriod  string `json:"orbital_period"`  // days
	RotationPeriod string `json:"rotation_period"` // hours
	CachedAt       string `json:"cached_at,omitempty"`
}

// EarthComparison relates a planet's year and day lengths to Earth's.
// Computed on demand, never stored.
type EarthComparison struct {
	YearRatio float64 `json:"year"`
	DayRatio  float64 `json:"day"`
}
