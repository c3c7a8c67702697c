package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"Meeus 7.a", time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"January shift", time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), 2451179.5},
		{"offset zone", time.Date(2000, 1, 1, 17, 30, 0, 0, time.FixedZone("IST", 19800)), 2451545.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianDay(tt.t); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("JulianDay() = %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func TestTimeFromJulianDay_RoundTrip(t *testing.T) {
	in := time.Date(1990, 5, 15, 4, 30, 17, 0, time.UTC)
	if got := TimeFromJulianDay(JulianDay(in)); !got.Equal(in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		y, m, d int
		wantErr bool
	}{
		{2024, 2, 29, false},
		{2023, 2, 29, true},
		{1900, 2, 29, true},
		{2000, 2, 29, false},
		{2024, 4, 31, true},
		{2024, 13, 1, true},
		{2024, 0, 1, true},
		{2024, 1, 0, true},
		{2024, 12, 31, false},
	}

	for _, tt := range tests {
		err := ValidateDate(tt.y, tt.m, tt.d)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDate(%d, %d, %d) error = %v, wantErr %v", tt.y, tt.m, tt.d, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidDate) {
			t.Errorf("error %v does not wrap ErrInvalidDate", err)
		}
	}
}

func TestValidateClock(t *testing.T) {
	if err := ValidateClock(23, 59); err != nil {
		t.Errorf("23:59 rejected: %v", err)
	}
	for _, c := range [][2]int{{24, 0}, {-1, 0}, {12, 60}} {
		if err := ValidateClock(c[0], c[1]); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ValidateClock(%d, %d) = %v, want ErrInvalidTime", c[0], c[1], err)
		}
	}
}

func TestBirthDetails_Moment(t *testing.T) {
	ist := time.FixedZone("+05:30", 19800)

	tests := []struct {
		name    string
		b       BirthDetails
		want    time.Time
		wantErr error
	}{
		{
			name: "known time",
			b:    BirthDetails{Year: 1990, Month: 5, Day: 15, Hour: 10, Minute: 0, TimeKnown: true, Zone: ist},
			want: time.Date(1990, 5, 15, 4, 30, 0, 0, time.UTC),
		},
		{
			name: "unknown time uses noon",
			b:    BirthDetails{Year: 1990, Month: 5, Day: 15, Hour: 3, Zone: ist},
			want: time.Date(1990, 5, 15, 6, 30, 0, 0, time.UTC),
		},
		{
			name:    "bad date",
			b:       BirthDetails{Year: 1990, Month: 2, Day: 30, Zone: ist},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "bad clock",
			b:       BirthDetails{Year: 1990, Month: 2, Day: 3, Hour: 25, TimeKnown: true, Zone: ist},
			wantErr: ErrInvalidTime,
		},
		{
			name:    "no zone",
			b:       BirthDetails{Year: 1990, Month: 2, Day: 3},
			wantErr: ErrInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.b.Moment()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Moment() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Moment() = %v, want %v", got, tt.want)
			}
		})
	}
}
