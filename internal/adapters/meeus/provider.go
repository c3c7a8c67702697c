// Package meeus is a self-contained, low-precision ephemeris built from mean orbital
// elements (equinox of date) with the principal lunar and Jupiter/Saturn perturbations.
// Positions are good to a few arcminutes for the planets and the Moon, which is well
// inside a nakshatra pada for almost every chart; use the swetest adapter when precision
// at boundaries matters.
package meeus

import (
	"context"
	"errors"
	"fmt"
	"math"

	"kundli/internal/domain"
	"kundli/internal/ports"
)

const (
	// MinJulianDay and MaxJulianDay bound the supported range (years 1000-3000)
	MinJulianDay = 2086302.5
	MaxJulianDay = 2816787.5

	j2000 = 2451545.0
)

var (
	ErrOutOfRange             = errors.New("julian day outside supported range")
	ErrUnsupportedHouseSystem = errors.New("unsupported house system")
	ErrPolarLatitude          = errors.New("ascendant undefined at the poles")
	ErrUnknownAyanamsa        = errors.New("unknown ayanamsa system")
)

// ayanamsaAtJ2000 holds each definition's offset at J2000.0 in degrees
var ayanamsaAtJ2000 = map[domain.AyanamsaSystem]float64{
	domain.AyanamsaLahiri:       23.853056,
	domain.AyanamsaRaman:        22.370278,
	domain.AyanamsaKrishnamurti: 23.757222,
	domain.AyanamsaFaganBradley: 24.740278,
}

// Provider implements ports.EphemerisProvider with analytic series
type Provider struct{}

// Ensure Provider implements EphemerisProvider
var _ ports.EphemerisProvider = (*Provider)(nil)

// NewProvider creates a new analytic ephemeris
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "meeus"
}

func checkRange(jd float64) error {
	if math.IsNaN(jd) || jd < MinJulianDay || jd > MaxJulianDay {
		return fmt.Errorf("%w: %.4f", ErrOutOfRange, jd)
	}
	return nil
}

// Bodies returns tropical longitudes and speeds for the seven bodies and the mean node
func (p *Provider) Bodies(ctx context.Context, jd float64) (map[domain.Planet]domain.BodyState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkRange(jd); err != nil {
		return nil, err
	}

	bodies := make(map[domain.Planet]domain.BodyState, 8)
	for _, planet := range domain.PhysicalBodies {
		bodies[planet] = domain.BodyState{
			Longitude: longitude(planet, jd),
			Speed:     speed(planet, jd),
		}
	}
	bodies[domain.Rahu] = domain.BodyState{
		Longitude: meanNode(dayNumber(jd)),
		Speed:     -nodeDailyMotion,
	}
	return bodies, nil
}

// speed is the central difference over one day, unwrapped across 0°
func speed(planet domain.Planet, jd float64) float64 {
	before := longitude(planet, jd-0.5)
	after := longitude(planet, jd+0.5)
	return domain.Normalize(after-before+180) - 180
}

func longitude(planet domain.Planet, jd float64) float64 {
	d := dayNumber(jd)
	switch planet {
	case domain.Sun:
		lon, _ := sunPosition(d)
		return lon
	case domain.Moon:
		return moonLongitude(d)
	default:
		return planetLongitude(planet, d)
	}
}

// Ascendant returns the tropical ascendant from local sidereal time and obliquity.
// All supported house systems share the same ascendant.
func (p *Provider) Ascendant(ctx context.Context, jd, lat, lng float64, hsys domain.HouseSystem) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := checkRange(jd); err != nil {
		return 0, err
	}
	switch hsys {
	case domain.HouseSystemWholeSign, domain.HouseSystemPlacidus, domain.HouseSystemEqual:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedHouseSystem, hsys)
	}
	if math.Abs(lat) >= 90 {
		return 0, fmt.Errorf("%w: latitude %v", ErrPolarLatitude, lat)
	}

	t := (jd - j2000) / 36525
	lst := domain.Normalize(greenwichSiderealTime(jd) + lng)
	return ascendantFromLST(lst, lat, obliquity(t)), nil
}

// Ayanamsa returns the precession offset as a polynomial in centuries from J2000
func (p *Provider) Ayanamsa(ctx context.Context, jd float64, system domain.AyanamsaSystem) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := checkRange(jd); err != nil {
		return 0, err
	}
	base, ok := ayanamsaAtJ2000[system]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAyanamsa, system)
	}
	t := (jd - j2000) / 36525
	return base + (5028.796195*t+1.1054348*t*t)/3600, nil
}

func greenwichSiderealTime(jd float64) float64 {
	t := (jd - j2000) / 36525
	return domain.Normalize(280.46061837 + 360.98564736629*(jd-j2000) + 0.000387933*t*t - t*t*t/38710000)
}

func obliquity(t float64) float64 {
	return 23.439291 - 0.0130042*t
}

func ascendantFromLST(lst, lat, eps float64) float64 {
	return domain.Normalize(atan2d(cosd(lst), -(sind(lst)*cosd(eps) + tand(lat)*sind(eps))))
}
