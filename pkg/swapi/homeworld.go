package swapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// unknownName is the sentinel the upstream uses for planets it has no
// data for.
const unknownName = "unknown"

// DescribeHomeworld fetches the planet behind ref and renders its
// description block: name, population, and the Earth comparison. A
// planet the upstream reports as "unknown" yields "", nil rather than
// an error. Non-numeric orbital data degrades to a fallback line and
// never escapes this boundary; fetch errors do escape.
func (c *Client) DescribeHomeworld(ctx context.Context, ref string) (string, error) {
	planet, err := c.Planet(ctx, ref)
	if err != nil {
		return "", err
	}
	if planet.Name == unknownName {
		return "", nil
	}

	lines := []string{
		"Homeworld: " + planet.Name,
		"Population: " + planet.Population,
	}

	yearDays, yearErr := strconv.ParseFloat(planet.OrbitalPeriod, 64)
	dayHours, dayErr := strconv.ParseFloat(planet.RotationPeriod, 64)
	if yearErr != nil || dayErr != nil {
		lines = append(lines, fmt.Sprintf("Could not compare %s's year and day with Earth's", planet.Name))
	} else {
		cmp := CompareWithEarth(yearDays, dayHours)
		lines = append(lines,
			fmt.Sprintf("1 year on %s is %.2f Earth years", planet.Name, cmp.YearRatio),
			fmt.Sprintf("1 day on %s is %.2f Earth days", planet.Name, cmp.DayRatio),
		)
	}

	return strings.Join(lines, "\n"), nil
}
