package application

import (
	"errors"
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"kundli/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "dateOfBirth",
			value:     "1990-05-15",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "dateOfBirth",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "zone",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestFormatFieldName(t *testing.T) {
	if got := formatFieldName("placeOfBirthLat"); got != "latitude" {
		t.Errorf("formatFieldName(placeOfBirthLat) = %q", got)
	}
	if got := formatFieldName("other"); got != "other" {
		t.Errorf("formatFieldName(other) = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		y, m, d int
		wantErr bool
	}{
		{"1990-05-15", 1990, 5, 15, false},
		{"2024-02-29", 2024, 2, 29, false},
		{" 2000-1-2 ", 2000, 1, 2, false},
		{"2023-02-29", 0, 0, 0, true},
		{"2024-04-31", 0, 0, 0, true},
		{"2024-13-01", 0, 0, 0, true},
		{"15/05/1990", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			y, m, d, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != "dateOfBirth" {
					t.Errorf("error = %v, want dateOfBirth ValidationError", err)
				}
				return
			}
			if y != tt.y || m != tt.m || d != tt.d {
				t.Errorf("ParseDate(%q) = %d-%d-%d", tt.in, y, m, d)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in        string
		h, m      int
		wantKnown bool
		wantErr   bool
	}{
		{"10:30", 10, 30, true, false},
		{"0:05", 0, 5, true, false},
		{"23:59", 23, 59, true, false},
		{"", 0, 0, false, false},
		{"24:00", 0, 0, false, true},
		{"12:60", 0, 0, false, true},
		{"noon", 0, 0, false, true},
	}

	for _, tt := range tests {
		h, m, known, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if h != tt.h || m != tt.m || known != tt.wantKnown {
			t.Errorf("ParseClock(%q) = %d:%d known=%v", tt.in, h, m, known)
		}
	}
}

func TestParseZone(t *testing.T) {
	tests := []struct {
		in         string
		wantOffset int
		wantErr    bool
	}{
		{"+05:30", 19800, false},
		{"+0530", 19800, false},
		{"-08:00", -28800, false},
		{"+5", 18000, false},
		{"UTC", 0, false},
		{"z", 0, false},
		{"Asia/Kolkata", 19800, false},
		{"+15:00", 0, true},
		{"+05:75", 0, true},
		{"Mars/Olympus", 0, true},
		{"", 0, true},
	}

	ref := time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc, err := ParseZone(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseZone(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if _, off := ref.In(loc).Zone(); off != tt.wantOffset {
				t.Errorf("offset = %d, want %d", off, tt.wantOffset)
			}
		})
	}
}

func TestParseZone_HistoricalOffset(t *testing.T) {
	loc, err := ParseZone("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	winter := time.Date(1990, 1, 15, 12, 0, 0, 0, loc)
	summer := time.Date(1990, 7, 15, 12, 0, 0, 0, loc)
	_, w := winter.Zone()
	_, s := summer.Zone()
	if w != -5*3600 || s != -4*3600 {
		t.Errorf("offsets = %d / %d, want EST / EDT", w, s)
	}
}

func TestFormatOffset(t *testing.T) {
	tests := map[int]string{
		19800:  "+05:30",
		-28800: "-08:00",
		0:      "+00:00",
		20700:  "+05:45",
	}
	for in, want := range tests {
		if got := FormatOffset(in); got != want {
			t.Errorf("FormatOffset(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBirth(t *testing.T) {
	valid := BirthInput{
		DateOfBirth: "1990-05-15",
		TimeOfBirth: "10:30",
		Zone:        "+05:30",
		Latitude:    28.6139,
		Longitude:   77.209,
	}

	b, err := ParseBirth(valid)
	if err != nil {
		t.Fatalf("ParseBirth() error = %v", err)
	}
	if b.Year != 1990 || b.Month != 5 || b.Day != 15 || b.Hour != 10 || b.Minute != 30 || !b.TimeKnown {
		t.Errorf("ParseBirth() = %+v", b)
	}

	tests := []struct {
		name      string
		mutate    func(*BirthInput)
		wantField string
	}{
		{"bad date", func(in *BirthInput) { in.DateOfBirth = "1990-02-30" }, "dateOfBirth"},
		{"bad time", func(in *BirthInput) { in.TimeOfBirth = "25:00" }, "timeOfBirth"},
		{"bad zone", func(in *BirthInput) { in.Zone = "Nowhere/Special" }, "zone"},
		{"latitude", func(in *BirthInput) { in.Latitude = 91 }, "placeOfBirthLat"},
		{"longitude", func(in *BirthInput) { in.Longitude = -180.5 }, "placeOfBirthLng"},
		{"NaN latitude", func(in *BirthInput) { in.Latitude = math.NaN() }, "placeOfBirthLat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := ParseBirth(in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateBirth(t *testing.T) {
	good := domain.BirthDetails{Year: 1990, Month: 5, Day: 15, Zone: time.UTC}
	if err := ValidateBirth(good); err != nil {
		t.Errorf("ValidateBirth(good) = %v", err)
	}

	tests := []struct {
		name      string
		b         domain.BirthDetails
		wantField string
	}{
		{"no zone", domain.BirthDetails{Year: 1990, Month: 5, Day: 15}, "zone"},
		{"bad day", domain.BirthDetails{Year: 1990, Month: 2, Day: 30, Zone: time.UTC}, "dateOfBirth"},
		{"bad hour", domain.BirthDetails{Year: 1990, Month: 2, Day: 3, Hour: 24, TimeKnown: true, Zone: time.UTC}, "timeOfBirth"},
		{"bad latitude", domain.BirthDetails{Year: 1990, Month: 2, Day: 3, Latitude: -95, Zone: time.UTC}, "placeOfBirthLat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *ValidationError
			if err := ValidateBirth(tt.b); !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Errorf("ValidateBirth() = %v, want field %s", err, tt.wantField)
			}
		})
	}
}

func TestParseAyanamsa(t *testing.T) {
	if a, err := ParseAyanamsa(""); err != nil || a != domain.AyanamsaLahiri {
		t.Errorf("ParseAyanamsa(\"\") = %v, %v", a, err)
	}
	if a, err := ParseAyanamsa("KRISHNAMURTI"); err != nil || a != domain.AyanamsaKrishnamurti {
		t.Errorf("ParseAyanamsa(KRISHNAMURTI) = %v, %v", a, err)
	}
	var verr *ValidationError
	if _, err := ParseAyanamsa("tropical"); !errors.As(err, &verr) || verr.Field != "ayanamsa" {
		t.Errorf("ParseAyanamsa(tropical) = %v", err)
	}
}
