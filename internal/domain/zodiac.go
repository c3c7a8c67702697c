package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// SignSpan is the width of a zodiac sign in degrees
	SignSpan = 30.0
	// NakshatraSpan is the width of a nakshatra (13°20')
	NakshatraSpan = 360.0 / NakshatraCount
	// PadaSpan is the width of a nakshatra quarter (3°20')
	PadaSpan = NakshatraSpan / 4
	// DegreePlaces is the decimal precision kept for sidereal longitudes
	DegreePlaces = 4
)

// Normalize maps any angle into [0, 360)
func Normalize(x float64) float64 {
	n := math.Mod(math.Mod(x, 360)+360, 360)
	// math.Mod of a tiny negative value plus 360 can round to exactly 360
	if n >= 360 {
		return 0
	}
	return n
}

// CheckFinite reports a non-finite longitude or speed, which has no place on the circle
func CheckFinite(name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: %s = %v", ErrNonFinite, name, x)
	}
	return nil
}

// RoundDegree rounds a longitude to DegreePlaces decimals and renormalizes it,
// so 359.99996 becomes 0.
func RoundDegree(x float64) float64 {
	r, _ := decimal.NewFromFloat(Normalize(x)).Round(DegreePlaces).Float64()
	return Normalize(r)
}

// ToSidereal converts a tropical longitude to the sidereal frame
func ToSidereal(tropical, ayanamsa float64) float64 {
	return Normalize(tropical - ayanamsa)
}

// DeriveKetu returns the descending node longitude for a given Rahu longitude
func DeriveKetu(rahu float64) float64 {
	return Normalize(rahu + 180)
}

// SignOf returns the zodiac sign containing a longitude
func SignOf(degree float64) ZodiacSign {
	idx := int(math.Floor(Normalize(degree)/SignSpan)) % 12
	return ZodiacSign(mustRange("sign index", idx, 0, 11))
}

// WholeSignHouse returns the whole-sign house of a planet given the ascendant longitude
func WholeSignHouse(degree, ascendant float64) int {
	return HouseFromSigns(SignOf(degree), SignOf(ascendant))
}

// HouseFromSigns returns the whole-sign house of a sign relative to the rising sign
func HouseFromSigns(sign, rising ZodiacSign) int {
	house := ((int(sign)-int(rising)+12)%12 + 1)
	return mustRange("house", house, 1, 12)
}

// NakshatraOf returns the lunar mansion containing a longitude
func NakshatraOf(degree float64) Nakshatra {
	idx := int(math.Floor(Normalize(degree)/NakshatraSpan)) % NakshatraCount
	return Nakshatra(mustRange("nakshatra index", idx, 0, NakshatraCount-1))
}

// PadaOf returns the quarter (1-4) of the nakshatra containing a longitude
func PadaOf(degree float64) int {
	within := math.Mod(Normalize(degree), NakshatraSpan)
	pada := int(math.Floor(within/PadaSpan)) + 1
	pada = min(max(pada, 1), 4)
	return mustRange("pada", pada, 1, 4)
}

// NakshatraFraction returns how far (0 to 1) a longitude has travelled through its nakshatra
func NakshatraFraction(degree float64) float64 {
	f := math.Mod(Normalize(degree), NakshatraSpan) / NakshatraSpan
	return min(max(f, 0), 1)
}

// HouseCusp is the start of a whole-sign house
type HouseCusp struct {
	House       int        `json:"house" yaml:"house"`
	Sign        ZodiacSign `json:"sign" yaml:"sign"`
	StartDegree float64    `json:"startDegree" yaml:"startDegree"`
}

// WholeSignCusps enumerates the twelve houses starting from the rising sign
func WholeSignCusps(rising ZodiacSign) [12]HouseCusp {
	var cusps [12]HouseCusp
	for i := range cusps {
		sign := ZodiacSign((int(rising) + i) % 12)
		cusps[i] = HouseCusp{
			House:       i + 1,
			Sign:        sign,
			StartDegree: float64(sign) * SignSpan,
		}
	}
	return cusps
}

// PlanetPosition is the classified sidereal placement of one planet
type PlanetPosition struct {
	Planet        Planet     `json:"planet" yaml:"planet"`
	Sign          ZodiacSign `json:"sign" yaml:"sign"`
	House         int        `json:"house" yaml:"house"`
	Degree        float64    `json:"degree" yaml:"degree"`
	SignDegree    float64    `json:"signDegree" yaml:"signDegree"`
	Speed         float64    `json:"speed" yaml:"speed"`
	IsRetrograde  bool       `json:"isRetrograde" yaml:"isRetrograde"`
	Nakshatra     Nakshatra  `json:"nakshatra" yaml:"nakshatra"`
	NakshatraPada int        `json:"nakshatraPada" yaml:"nakshatraPada"`
}

// Classify places a sidereal longitude relative to a sidereal ascendant.
// The degree is rounded first so every derived field agrees with the stored value.
func Classify(planet Planet, sidereal, speed float64, retrograde bool, ascendant float64) PlanetPosition {
	d := RoundDegree(sidereal)
	sign := SignOf(d)
	return PlanetPosition{
		Planet:        planet,
		Sign:          sign,
		House:         WholeSignHouse(d, ascendant),
		Degree:        d,
		SignDegree:    RoundDegree(d - float64(sign)*SignSpan),
		Speed:         speed,
		IsRetrograde:  retrograde,
		Nakshatra:     NakshatraOf(d),
		NakshatraPada: PadaOf(d),
	}
}
