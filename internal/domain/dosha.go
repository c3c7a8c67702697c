package domain

import "slices"

// DoshaType identifies one of the classical affliction rules
type DoshaType string

const (
	DoshaMangal   DoshaType = "mangal"
	DoshaShani    DoshaType = "shani"
	DoshaKaalSarp DoshaType = "kaal_sarp"
	DoshaPitra    DoshaType = "pitra"
	DoshaRahuKetu DoshaType = "rahu_ketu"
)

// Severity tiers. The scale is relative; only ordering is meaningful.
const (
	SeverityMangalHigh = 8
	SeverityMangalLow  = 5
	SeverityShaniHigh  = 7
	SeverityShaniLow   = 5
	SeverityKaalSarp   = 9
	SeverityPitra      = 6
	SeverityRahuKetu   = 6
)

// Life-area tags attached to dosha results
const (
	AreaMarriage      = "Marriage & Relationships"
	AreaEmotional     = "Emotional Well-being"
	AreaCareer        = "Career"
	AreaDomesticPeace = "Domestic Peace"
	AreaGeneral       = "General Life Challenges"
	AreaLifeProgress  = "Overall Life Progress"
	AreaMentalPeace   = "Mental Peace"
	AreaFamily        = "Family Relations"
	AreaAncestral     = "Ancestral Blessings"
	AreaRelationships = "Relationships"
	AreaMentalClarity = "Mental Clarity"
)

var (
	mangalHouses  = []int{1, 2, 4, 7, 8, 12}
	shaniHouses   = []int{1, 4, 7, 8, 10, 12}
	angularHouses = []int{1, 4, 7, 10}
)

// DoshaResult is one fired affliction rule
type DoshaResult struct {
	Type              DoshaType `json:"type" yaml:"type"`
	IsPresent         bool      `json:"isPresent" yaml:"isPresent"`
	Severity          int       `json:"severity" yaml:"severity"`
	AffectedHouses    []int     `json:"affectedHouses" yaml:"affectedHouses"`
	AffectedLifeAreas []string  `json:"affectedLifeAreas" yaml:"affectedLifeAreas"`
	Description       string    `json:"description" yaml:"description"`
}

// EvaluateDoshas runs the five independent dosha rules over a set of house placements and
// sidereal longitudes. Only doshas that are present are returned, in rule order.
func EvaluateDoshas(houses map[Planet]int, degrees map[Planet]float64) []DoshaResult {
	var results []DoshaResult
	for _, rule := range []func(map[Planet]int, map[Planet]float64) (DoshaResult, bool){
		mangalDosha,
		shaniDosha,
		kaalSarpDosha,
		pitraDosha,
		rahuKetuDosha,
	} {
		if r, ok := rule(houses, degrees); ok {
			results = append(results, r)
		}
	}
	return results
}

func mangalDosha(houses map[Planet]int, _ map[Planet]float64) (DoshaResult, bool) {
	house, ok := houses[Mars]
	if !ok || !slices.Contains(mangalHouses, house) {
		return DoshaResult{}, false
	}
	severity := SeverityMangalLow
	if house == 7 || house == 8 {
		severity = SeverityMangalHigh
	}
	return DoshaResult{
		Type:              DoshaMangal,
		IsPresent:         true,
		Severity:          severity,
		AffectedHouses:    []int{house},
		AffectedLifeAreas: []string{AreaMarriage, AreaEmotional},
		Description:       "Mars occupies a house that afflicts partnership and temperament.",
	}, true
}

func shaniDosha(houses map[Planet]int, _ map[Planet]float64) (DoshaResult, bool) {
	house, ok := houses[Saturn]
	if !ok || !slices.Contains(shaniHouses, house) {
		return DoshaResult{}, false
	}
	severity := SeverityShaniLow
	if house == 7 {
		severity = SeverityShaniHigh
	}
	return DoshaResult{
		Type:              DoshaShani,
		IsPresent:         true,
		Severity:          severity,
		AffectedHouses:    []int{house},
		AffectedLifeAreas: shaniAreas(house),
		Description:       "Saturn's placement brings delays and pressure to the houses it occupies.",
	}, true
}

func shaniAreas(house int) []string {
	var areas []string
	if house == 7 || house == 1 {
		areas = append(areas, AreaMarriage)
	}
	if house == 10 || house == 6 {
		areas = append(areas, AreaCareer)
	}
	if house == 4 {
		areas = append(areas, AreaDomesticPeace)
	}
	if len(areas) == 0 {
		areas = append(areas, AreaGeneral)
	}
	return areas
}

func kaalSarpDosha(houses map[Planet]int, degrees map[Planet]float64) (DoshaResult, bool) {
	rahu, okR := degrees[Rahu]
	ketu, okK := degrees[Ketu]
	if !okR || !okK {
		return DoshaResult{}, false
	}
	for _, p := range PhysicalBodies {
		d, ok := degrees[p]
		if !ok || !BetweenNodes(d, rahu, ketu) {
			return DoshaResult{}, false
		}
	}
	var affected []int
	for _, p := range []Planet{Rahu, Ketu} {
		if h, ok := houses[p]; ok {
			affected = append(affected, h)
		}
	}
	return DoshaResult{
		Type:              DoshaKaalSarp,
		IsPresent:         true,
		Severity:          SeverityKaalSarp,
		AffectedHouses:    affected,
		AffectedLifeAreas: []string{AreaLifeProgress, AreaMentalPeace},
		Description:       "All seven planets are hemmed between Rahu and Ketu.",
	}, true
}

// BetweenNodes reports whether a longitude lies on the arc running from rahu forward to
// ketu, boundaries included. The arc wraps through 0° when rahu >= ketu.
func BetweenNodes(degree, rahu, ketu float64) bool {
	p, r, k := Normalize(degree), Normalize(rahu), Normalize(ketu)
	if r < k {
		return r <= p && p <= k
	}
	return p >= r || p <= k
}

func pitraDosha(houses map[Planet]int, _ map[Planet]float64) (DoshaResult, bool) {
	sun, okS := houses[Sun]
	rahu, okR := houses[Rahu]
	if !okS || !okR || sun != rahu {
		return DoshaResult{}, false
	}
	return DoshaResult{
		Type:              DoshaPitra,
		IsPresent:         true,
		Severity:          SeverityPitra,
		AffectedHouses:    []int{sun},
		AffectedLifeAreas: []string{AreaFamily, AreaAncestral},
		Description:       "The Sun shares a house with Rahu.",
	}, true
}

func rahuKetuDosha(houses map[Planet]int, _ map[Planet]float64) (DoshaResult, bool) {
	var affected []int
	for _, p := range []Planet{Rahu, Ketu} {
		if h, ok := houses[p]; ok && slices.Contains(angularHouses, h) {
			affected = append(affected, h)
		}
	}
	if len(affected) == 0 {
		return DoshaResult{}, false
	}
	return DoshaResult{
		Type:              DoshaRahuKetu,
		IsPresent:         true,
		Severity:          SeverityRahuKetu,
		AffectedHouses:    affected,
		AffectedLifeAreas: []string{AreaCareer, AreaRelationships, AreaMentalClarity},
		Description:       "A lunar node occupies an angular house.",
	}, true
}
