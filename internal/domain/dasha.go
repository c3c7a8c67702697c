package domain

import (
	"math"
	"time"
)

// DashaLevel is the depth of a period in the Vimshottari hierarchy
type DashaLevel string

const (
	LevelMahadasha  DashaLevel = "mahadasha"
	LevelAntardasha DashaLevel = "antardasha"
)

const (
	// VimshottariYears is the length of the full nine-lord cycle
	VimshottariYears = 120
	// DashaYearDays is the year length used to convert allotments to dates
	DashaYearDays = 365.25
)

// dashaSequence is the lord order, indexed by nakshatra mod 9 (Ashwini -> Ketu)
var dashaSequence = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

var dashaYears = map[Planet]float64{
	Ketu:    7,
	Venus:   20,
	Sun:     6,
	Moon:    10,
	Mars:    7,
	Rahu:    18,
	Jupiter: 16,
	Saturn:  19,
	Mercury: 17,
}

// DashaPeriod is a planetary period window, start inclusive and end exclusive
type DashaPeriod struct {
	Planet Planet     `json:"planet" yaml:"planet"`
	Level  DashaLevel `json:"level" yaml:"level"`
	Start  time.Time  `json:"startDate" yaml:"startDate"`
	End    time.Time  `json:"endDate" yaml:"endDate"`
}

// Contains reports whether t falls within the period
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// DashaLord returns the Vimshottari lord ruling a nakshatra
func DashaLord(n Nakshatra) Planet {
	return dashaSequence[int(n)%len(dashaSequence)]
}

// DashaYears returns a lord's allotment in years
func DashaYears(p Planet) float64 {
	return dashaYears[p]
}

func sequenceIndex(p Planet) int {
	for i, lord := range dashaSequence {
		if lord == p {
			return i
		}
	}
	panic(&InvariantError{Name: "dasha lord", Value: int(p), Min: 0, Max: PlanetCount - 1})
}

// BirthBalance returns the lord running at birth and the years of its period still to run
func BirthBalance(moonDegree float64) (Planet, float64) {
	lord := DashaLord(NakshatraOf(moonDegree))
	return lord, DashaYears(lord) * (1 - NakshatraFraction(moonDegree))
}

// mahadashaWalker steps through consecutive mahadashas starting with the birth period.
// Boundaries are kept as Julian Day offsets from birth; time.Duration cannot span
// more than about 292 years.
type mahadashaWalker struct {
	birthJD float64
	index   int
	offset  float64 // days from birth to the start of the next period
}

func newMahadashaWalker(moonDegree float64, birth time.Time) *mahadashaWalker {
	lord := DashaLord(NakshatraOf(moonDegree))
	elapsed := DashaYears(lord) * NakshatraFraction(moonDegree)
	return &mahadashaWalker{
		birthJD: JulianDay(birth),
		index:   sequenceIndex(lord),
		offset:  -elapsed * DashaYearDays,
	}
}

// skipCycles advances by whole 120-year cycles so the next period starts at most
// one cycle before asOf. A full cycle returns to the same lord.
func (w *mahadashaWalker) skipCycles(asOf time.Time) {
	const cycle = VimshottariYears * DashaYearDays
	ahead := JulianDay(asOf) - (w.birthJD + w.offset)
	if ahead > cycle {
		w.offset += math.Floor(ahead/cycle) * cycle
	}
}

func (w *mahadashaWalker) next() DashaPeriod {
	lord := dashaSequence[w.index]
	length := DashaYears(lord) * DashaYearDays
	p := DashaPeriod{
		Planet: lord,
		Level:  LevelMahadasha,
		Start:  TimeFromJulianDay(w.birthJD + w.offset),
		End:    TimeFromJulianDay(w.birthJD + w.offset + length),
	}
	w.offset += length
	w.index = (w.index + 1) % len(dashaSequence)
	return p
}

// maxWalkSteps bounds the walk after skipCycles; one cycle plus slack for rounding
const maxWalkSteps = 2 * len(dashaSequence)

// CurrentMahadasha walks the Vimshottari sequence from the balance at birth and returns the
// mahadasha running at asOf. An asOf before birth yields the birth period.
func CurrentMahadasha(moonDegree float64, birth, asOf time.Time) DashaPeriod {
	w := newMahadashaWalker(moonDegree, birth)
	w.skipCycles(asOf)
	for range maxWalkSteps {
		p := w.next()
		if asOf.Before(p.End) {
			return p
		}
	}
	panic(&InvariantError{Name: "dasha walk steps", Value: maxWalkSteps + 1, Min: 1, Max: maxWalkSteps})
}

// MahadashaTimeline returns the nine consecutive mahadashas starting with the one running at birth
func MahadashaTimeline(moonDegree float64, birth time.Time) []DashaPeriod {
	w := newMahadashaWalker(moonDegree, birth)
	periods := make([]DashaPeriod, 0, len(dashaSequence))
	for range dashaSequence {
		periods = append(periods, w.next())
	}
	return periods
}

// Antardashas splits a mahadasha into its nine sub-periods, starting with the mahadasha lord.
// Each sub-period lasts maha years * sub years / 120.
func Antardashas(maha DashaPeriod) []DashaPeriod {
	total := maha.End.Sub(maha.Start)
	start := sequenceIndex(maha.Planet)
	periods := make([]DashaPeriod, 0, len(dashaSequence))

	cursor := maha.Start
	for i := range dashaSequence {
		lord := dashaSequence[(start+i)%len(dashaSequence)]
		end := cursor.Add(time.Duration(float64(total) * DashaYears(lord) / VimshottariYears))
		if i == len(dashaSequence)-1 {
			end = maha.End
		}
		periods = append(periods, DashaPeriod{
			Planet: lord,
			Level:  LevelAntardasha,
			Start:  cursor,
			End:    end,
		})
		cursor = end
	}
	return periods
}

// CurrentAntardasha returns the sub-period of maha running at asOf, if any
func CurrentAntardasha(maha DashaPeriod, asOf time.Time) (DashaPeriod, bool) {
	for _, p := range Antardashas(maha) {
		if p.Contains(asOf) {
			return p, true
		}
	}
	return DashaPeriod{}, false
}
