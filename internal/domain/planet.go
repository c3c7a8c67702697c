package domain

import (
	"fmt"
	"strings"
)

// Planet represents one of the nine grahas used in a chart
type Planet int

const (
	Sun Planet = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// PlanetCount is the number of planets in every computed chart
const PlanetCount = 9

// Planets lists every planet in chart order
var Planets = [PlanetCount]Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// PhysicalBodies are the seven classical bodies (everything except the lunar nodes)
var PhysicalBodies = [7]Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

var planetNames = [PlanetCount]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"}

func (p Planet) String() string {
	if p < 0 || int(p) >= PlanetCount {
		return "Unknown"
	}
	return planetNames[p]
}

// ParsePlanet parses a planet name, case-insensitively
func ParsePlanet(s string) (Planet, error) {
	s = strings.TrimSpace(s)
	for i, name := range planetNames {
		if strings.EqualFold(name, s) {
			return Planet(i), nil
		}
	}
	return 0, fmt.Errorf("unknown planet: %q", s)
}

func (p Planet) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= PlanetCount {
		return nil, fmt.Errorf("invalid planet: %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Planet) UnmarshalText(text []byte) error {
	parsed, err := ParsePlanet(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ZodiacSign is one of the twelve signs in cyclic order starting at Aries
type ZodiacSign int

const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s ZodiacSign) String() string {
	if s < 0 || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// ParseSign parses a sign name, case-insensitively
func ParseSign(s string) (ZodiacSign, error) {
	s = strings.TrimSpace(s)
	for i, name := range signNames {
		if strings.EqualFold(name, s) {
			return ZodiacSign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown zodiac sign: %q", s)
}

func (s ZodiacSign) MarshalText() ([]byte, error) {
	if s < 0 || s > Pisces {
		return nil, fmt.Errorf("invalid zodiac sign: %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *ZodiacSign) UnmarshalText(text []byte) error {
	parsed, err := ParseSign(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Nakshatra is one of the 27 lunar mansions, indexed from Ashwini (0)
type Nakshatra int

const (
	Ashwini Nakshatra = iota
	Bharani
	Krittika
	Rohini
	Mrigashira
	Ardra
	Punarvasu
	Pushya
	Ashlesha
	Magha
	PurvaPhalguni
	UttaraPhalguni
	Hasta
	Chitra
	Swati
	Vishakha
	Anuradha
	Jyeshtha
	Mula
	PurvaAshadha
	UttaraAshadha
	Shravana
	Dhanishta
	Shatabhisha
	PurvaBhadrapada
	UttaraBhadrapada
	Revati
)

// NakshatraCount is the number of lunar mansions
const NakshatraCount = 27

var nakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu",
	"Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta",
	"Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
	"Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

func (n Nakshatra) String() string {
	if n < 0 || int(n) >= NakshatraCount {
		return "Unknown"
	}
	return nakshatraNames[n]
}

// ParseNakshatra parses a nakshatra name, case-insensitively
func ParseNakshatra(s string) (Nakshatra, error) {
	s = strings.TrimSpace(s)
	for i, name := range nakshatraNames {
		if strings.EqualFold(name, s) {
			return Nakshatra(i), nil
		}
	}
	return 0, fmt.Errorf("unknown nakshatra: %q", s)
}

func (n Nakshatra) MarshalText() ([]byte, error) {
	if n < 0 || int(n) >= NakshatraCount {
		return nil, fmt.Errorf("invalid nakshatra: %d", int(n))
	}
	return []byte(n.String()), nil
}

func (n *Nakshatra) UnmarshalText(text []byte) error {
	parsed, err := ParseNakshatra(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// AyanamsaSystem selects the precession offset definition used for sidereal conversion
type AyanamsaSystem string

const (
	AyanamsaLahiri       AyanamsaSystem = "lahiri"
	AyanamsaRaman        AyanamsaSystem = "raman"
	AyanamsaKrishnamurti AyanamsaSystem = "krishnamurti"
	AyanamsaFaganBradley AyanamsaSystem = "fagan_bradley"
)

// AyanamsaSystems lists the supported definitions, default first
var AyanamsaSystems = []AyanamsaSystem{AyanamsaLahiri, AyanamsaRaman, AyanamsaKrishnamurti, AyanamsaFaganBradley}

// ParseAyanamsa parses an ayanamsa system name. An empty string selects Lahiri.
func ParseAyanamsa(s string) (AyanamsaSystem, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AyanamsaLahiri, nil
	}
	for _, a := range AyanamsaSystems {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown ayanamsa system: %q", s)
}

// HouseSystem is the house-system code passed to the ephemeris when computing the ascendant.
// Whole sign ("W") is the only system used for house placement.
type HouseSystem string

const (
	HouseSystemWholeSign HouseSystem = "W"
	HouseSystemPlacidus  HouseSystem = "P"
	HouseSystemEqual     HouseSystem = "E"
)
