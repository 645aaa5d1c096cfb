package swapi

import (
	"math"

	"github.com/holocron-cli/holocron/pkg/models"
)

// Earth's orbital constants: year length in days, day length in hours.
const (
	earthYearDays = 365.25
	earthDayHours = 24
)

// CompareWithEarth relates a planet's year and day lengths to Earth's.
// Both ratios are rounded to two decimal places. Inputs are assumed
// numeric; callers validate before calling.
func CompareWithEarth(yearDays, dayHours float64) models.EarthComparison {
	return models.EarthComparison{
		YearRatio: round2(yearDays / earthYearDays),
		DayRatio:  round2(dayHours / earthDayHours),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
