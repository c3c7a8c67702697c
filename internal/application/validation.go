package application

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kundli/internal/domain"
)

// BirthInput is the raw birth data as received from a transport (CLI flags, MCP arguments,
// TUI form). TimeOfBirth may be empty when the time is unknown.
type BirthInput struct {
	DateOfBirth string  // YYYY-MM-DD
	TimeOfBirth string  // HH:MM, local
	Zone        string  // "+05:30", "UTC" or an IANA name such as "Asia/Kolkata"
	Latitude    float64 // degrees, north positive
	Longitude   float64 // degrees, east positive
}

var (
	dateRegex   = regexp.MustCompile(`^(-?\d{1,4})-(\d{1,2})-(\d{1,2})$`)
	timeRegex   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	offsetRegex = regexp.MustCompile(`^([+-])(\d{1,2})(?::?(\d{2}))?$`)
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "dateOfBirth" -> "date of birth")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"dateOfBirth":     "date of birth",
		"timeOfBirth":     "time of birth",
		"zone":            "timezone",
		"placeOfBirthLat": "latitude",
		"placeOfBirthLng": "longitude",
		"ayanamsa":        "ayanamsa",
		"chartID":         "chart ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateLatitude checks lat is within [-90, 90]
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return &ValidationError{
			Field:   "placeOfBirthLat",
			Message: fmt.Sprintf("latitude %v outside [-90, 90]", lat),
		}
	}
	return nil
}

// ValidateLongitude checks lng is within [-180, 180]
func ValidateLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return &ValidationError{
			Field:   "placeOfBirthLng",
			Message: fmt.Sprintf("longitude %v outside [-180, 180]", lng),
		}
	}
	return nil
}

// ParseDate parses an ISO calendar date without normalizing out-of-range fields
func ParseDate(s string) (year, month, day int, err error) {
	if err := ValidateRequired("dateOfBirth", s); err != nil {
		return 0, 0, 0, err
	}
	m := dateRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, &ValidationError{Field: "dateOfBirth", Message: fmt.Sprintf("expected YYYY-MM-DD, got: %s", s)}
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])
	if err := domain.ValidateDate(year, month, day); err != nil {
		return 0, 0, 0, &ValidationError{Field: "dateOfBirth", Message: err.Error()}
	}
	return year, month, day, nil
}

// ParseClock parses a local HH:MM time. An empty string reports known=false.
func ParseClock(s string) (hour, minute int, known bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false, nil
	}
	m := timeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false, &ValidationError{Field: "timeOfBirth", Message: fmt.Sprintf("expected HH:MM, got: %s", s)}
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if err := domain.ValidateClock(hour, minute); err != nil {
		return 0, 0, false, &ValidationError{Field: "timeOfBirth", Message: err.Error()}
	}
	return hour, minute, true, nil
}

// ParseZone resolves a fixed UTC offset ("+05:30", "-0800", "+5"), "UTC"/"Z", or an IANA
// timezone name. IANA zones resolve historical offsets for the birth date.
func ParseZone(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if err := ValidateRequired("zone", s); err != nil {
		return nil, err
	}
	switch strings.ToUpper(s) {
	case "UTC", "Z", "GMT":
		return time.UTC, nil
	}

	if m := offsetRegex.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes := 0
		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || minutes > 59 {
			return nil, &ValidationError{Field: "zone", Message: fmt.Sprintf("offset out of range: %s", s)}
		}
		secs := hours*3600 + minutes*60
		if m[1] == "-" {
			secs = -secs
		}
		return time.FixedZone(FormatOffset(secs), secs), nil
	}

	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, &ValidationError{Field: "zone", Message: fmt.Sprintf("unknown timezone: %s", s)}
	}
	return loc, nil
}

// FormatOffset renders an offset in seconds as "+HH:MM"
func FormatOffset(secs int) string {
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d:%02d", sign, secs/3600, (secs%3600)/60)
}

// ParseBirth validates raw input and converts it to domain birth details.
// All checks run before any ephemeris call.
func ParseBirth(in BirthInput) (domain.BirthDetails, error) {
	year, month, day, err := ParseDate(in.DateOfBirth)
	if err != nil {
		return domain.BirthDetails{}, err
	}
	hour, minute, known, err := ParseClock(in.TimeOfBirth)
	if err != nil {
		return domain.BirthDetails{}, err
	}
	zone, err := ParseZone(in.Zone)
	if err != nil {
		return domain.BirthDetails{}, err
	}
	if err := ValidateLatitude(in.Latitude); err != nil {
		return domain.BirthDetails{}, err
	}
	if err := ValidateLongitude(in.Longitude); err != nil {
		return domain.BirthDetails{}, err
	}

	return domain.BirthDetails{
		Year:      year,
		Month:     month,
		Day:       day,
		Hour:      hour,
		Minute:    minute,
		TimeKnown: known,
		Zone:      zone,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}, nil
}

// ValidateBirth re-checks already parsed details, mapping domain errors to ValidationError
func ValidateBirth(b domain.BirthDetails) error {
	if b.Zone == nil {
		return &ValidationError{Field: "zone", Message: "timezone is required"}
	}
	if _, err := b.Moment(); err != nil {
		field := "dateOfBirth"
		if errors.Is(err, domain.ErrInvalidTime) {
			field = "timeOfBirth"
		}
		return &ValidationError{Field: field, Message: err.Error()}
	}
	if err := ValidateLatitude(b.Latitude); err != nil {
		return err
	}
	return ValidateLongitude(b.Longitude)
}

// ParseAyanamsa parses an ayanamsa system name into a ValidationError on failure
func ParseAyanamsa(s string) (domain.AyanamsaSystem, error) {
	a, err := domain.ParseAyanamsa(s)
	if err != nil {
		return "", &ValidationError{Field: "ayanamsa", Message: err.Error()}
	}
	return a, nil
}
