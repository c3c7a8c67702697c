package ports

import (
	"context"

	"kundli/internal/domain"
)

// EphemerisProvider supplies tropical positions for a Julian Day (UT).
// Implementations must return an error rather than a substitute value when a position
// cannot be computed.
type EphemerisProvider interface {
	// Name identifies the backing implementation (e.g. "meeus", "swetest")
	Name() string

	// Bodies returns tropical ecliptic longitude and daily speed for the seven classical
	// bodies and the ascending lunar node (Rahu)
	Bodies(ctx context.Context, jd float64) (map[domain.Planet]domain.BodyState, error)

	// Ascendant returns the tropical ascendant for a location (degrees, east longitude positive)
	Ascendant(ctx context.Context, jd, lat, lng float64, hsys domain.HouseSystem) (float64, error)

	// Ayanamsa returns the precession offset for the given sidereal definition
	Ayanamsa(ctx context.Context, jd float64, system domain.AyanamsaSystem) (float64, error)
}
