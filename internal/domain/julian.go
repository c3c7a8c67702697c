package domain

import (
	"fmt"
	"math"
	"time"
)

// DefaultHour is the local hour assumed when the time of birth is unknown
const DefaultHour = 12

// BirthDetails is the normalized birth input. Zone must be set; the hour and minute are
// ignored when TimeKnown is false and local noon is used instead.
type BirthDetails struct {
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	TimeKnown bool
	Zone      *time.Location
	Latitude  float64
	Longitude float64
}

// IsLeapYear reports whether year is a Gregorian leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a Gregorian month
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// ValidateDate checks the calendar fields without clamping
func ValidateDate(year, month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d outside 1-12", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return fmt.Errorf("%w: day %d outside 1-%d for %04d-%02d", ErrInvalidDate, day, DaysInMonth(year, month), year, month)
	}
	return nil
}

// ValidateClock checks an hour/minute pair
func ValidateClock(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour %d outside 0-23", ErrInvalidTime, hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("%w: minute %d outside 0-59", ErrInvalidTime, minute)
	}
	return nil
}

// Moment resolves the local birth time to a UTC instant. Unknown times resolve to local noon.
func (b BirthDetails) Moment() (time.Time, error) {
	if err := ValidateDate(b.Year, b.Month, b.Day); err != nil {
		return time.Time{}, err
	}
	hour, minute := b.Hour, b.Minute
	if !b.TimeKnown {
		hour, minute = DefaultHour, 0
	}
	if err := ValidateClock(hour, minute); err != nil {
		return time.Time{}, err
	}
	zone := b.Zone
	if zone == nil {
		return time.Time{}, fmt.Errorf("%w: no timezone", ErrInvalidTime)
	}
	return time.Date(b.Year, time.Month(b.Month), b.Day, hour, minute, 0, 0, zone).UTC(), nil
}

// JulianDay converts an instant to a Julian Day using the Gregorian-calendar formula
// from Meeus, Astronomical Algorithms ch. 7.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y := t.Year()
	m := int(t.Month())
	dayFraction := float64(t.Hour())/24 +
		float64(t.Minute())/1440 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/86400
	d := float64(t.Day()) + dayFraction

	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + d + b - 1524.5
}

// TimeFromJulianDay converts a Julian Day back to a UTC instant, rounded to the second
func TimeFromJulianDay(jd float64) time.Time {
	const unixEpochJD = 2440587.5
	secs := math.Round((jd - unixEpochJD) * 86400)
	return time.Unix(int64(secs), 0).UTC()
}
