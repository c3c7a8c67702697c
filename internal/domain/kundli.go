package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrMissingBody = errors.New("ephemeris result missing body")

// BodyState is a tropical ecliptic longitude and its daily motion
type BodyState struct {
	Longitude float64 `json:"longitude" yaml:"longitude" toml:"longitude"`
	Speed     float64 `json:"speed" yaml:"speed" toml:"speed"`
}

// Observation is everything fetched from an ephemeris for one birth moment. Bodies holds
// the seven classical bodies plus Rahu; Ketu is always derived.
type Observation struct {
	Birth           BirthDetails
	Moment          time.Time
	JulianDay       float64
	Bodies          map[Planet]BodyState
	Ascendant       float64
	Ayanamsa        float64
	AyanamsaSystem  AyanamsaSystem
	TimeApproximate bool
}

// BirthRecord echoes the normalized input a chart was computed from
type BirthRecord struct {
	Date      string    `json:"date" yaml:"date"`
	Time      string    `json:"time" yaml:"time"`
	Zone      string    `json:"zone" yaml:"zone"`
	Moment    time.Time `json:"moment" yaml:"moment"`
	Latitude  float64   `json:"latitude" yaml:"latitude"`
	Longitude float64   `json:"longitude" yaml:"longitude"`
}

// Kundli is a computed birth chart. It is a value: every field is derived from the
// observation and nothing in it is shared with other charts.
type Kundli struct {
	Birth           BirthRecord                 `json:"birth" yaml:"birth"`
	JulianDay       float64                     `json:"julianDay" yaml:"julianDay"`
	TimeApproximate bool                        `json:"timeApproximate" yaml:"timeApproximate"`
	AyanamsaSystem  AyanamsaSystem              `json:"ayanamsaSystem" yaml:"ayanamsaSystem"`
	Ayanamsa        float64                     `json:"ayanamsa" yaml:"ayanamsa"`
	AscendantSign   ZodiacSign                  `json:"ascendantSign" yaml:"ascendantSign"`
	AscendantDegree float64                     `json:"ascendantDegree" yaml:"ascendantDegree"`
	Planets         [PlanetCount]PlanetPosition `json:"planets" yaml:"planets"`
	Houses          [12]HouseCusp               `json:"houses" yaml:"houses"`
	Doshas          []DoshaResult               `json:"doshas" yaml:"doshas"`
	CurrentDasha    DashaPeriod                 `json:"currentDasha" yaml:"currentDasha"`
}

// Position returns the placement of a planet
func (k Kundli) Position(p Planet) PlanetPosition {
	return k.Planets[p]
}

// HousePlacements returns each planet's house, the input shape of the dosha rules
func (k Kundli) HousePlacements() map[Planet]int {
	houses := make(map[Planet]int, PlanetCount)
	for _, pos := range k.Planets {
		houses[pos.Planet] = pos.House
	}
	return houses
}

// Degrees returns each planet's sidereal longitude
func (k Kundli) Degrees() map[Planet]float64 {
	degrees := make(map[Planet]float64, PlanetCount)
	for _, pos := range k.Planets {
		degrees[pos.Planet] = pos.Degree
	}
	return degrees
}

// WithDashaAsOf returns a copy of the chart with the current mahadasha re-sequenced for asOf
func (k Kundli) WithDashaAsOf(asOf time.Time) Kundli {
	k.CurrentDasha = CurrentMahadasha(k.Planets[Moon].Degree, k.Birth.Moment, asOf)
	k.Doshas = cloneDoshas(k.Doshas)
	return k
}

// Assemble converts an observation into a chart: sidereal conversion, classification,
// dosha rules and the mahadasha running at asOf.
func Assemble(obs Observation, asOf time.Time) (Kundli, error) {
	for _, p := range append(PhysicalBodies[:], Rahu) {
		if _, ok := obs.Bodies[p]; !ok {
			return Kundli{}, fmt.Errorf("%w: %s", ErrMissingBody, p)
		}
	}

	ascendant := RoundDegree(ToSidereal(obs.Ascendant, obs.Ayanamsa))

	var planets [PlanetCount]PlanetPosition
	for _, p := range PhysicalBodies {
		body := obs.Bodies[p]
		planets[p] = Classify(p, ToSidereal(body.Longitude, obs.Ayanamsa), body.Speed, body.Speed < 0, ascendant)
	}

	rahu := obs.Bodies[Rahu]
	rahuDegree := ToSidereal(rahu.Longitude, obs.Ayanamsa)
	planets[Rahu] = Classify(Rahu, rahuDegree, rahu.Speed, rahu.Speed < 0, ascendant)
	planets[Ketu] = Classify(Ketu, DeriveKetu(planets[Rahu].Degree), rahu.Speed, true, ascendant)

	k := Kundli{
		Birth:           newBirthRecord(obs),
		JulianDay:       obs.JulianDay,
		TimeApproximate: obs.TimeApproximate,
		AyanamsaSystem:  obs.AyanamsaSystem,
		Ayanamsa:        RoundDegree(obs.Ayanamsa),
		AscendantSign:   SignOf(ascendant),
		AscendantDegree: ascendant,
		Planets:         planets,
		Houses:          WholeSignCusps(SignOf(ascendant)),
	}
	k.Doshas = EvaluateDoshas(k.HousePlacements(), k.Degrees())
	k.CurrentDasha = CurrentMahadasha(planets[Moon].Degree, obs.Moment, asOf)
	return k, nil
}

func newBirthRecord(obs Observation) BirthRecord {
	b := obs.Birth
	hour, minute := b.Hour, b.Minute
	if obs.TimeApproximate {
		hour, minute = DefaultHour, 0
	}
	zone := "UTC"
	if b.Zone != nil {
		zone = b.Zone.String()
	}
	return BirthRecord{
		Date:      fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day),
		Time:      fmt.Sprintf("%02d:%02d", hour, minute),
		Zone:      zone,
		Moment:    obs.Moment,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
	}
}

func cloneDoshas(in []DoshaResult) []DoshaResult {
	if in == nil {
		return nil
	}
	out := make([]DoshaResult, len(in))
	for i, d := range in {
		d.AffectedHouses = append([]int(nil), d.AffectedHouses...)
		d.AffectedLifeAreas = append([]string(nil), d.AffectedLifeAreas...)
		out[i] = d
	}
	return out
}
