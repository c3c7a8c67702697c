package meeus

import (
	"context"
	"errors"
	"math"
	"testing"

	"kundli/internal/domain"
)

func angularDistance(a, b float64) float64 {
	d := math.Abs(domain.Normalize(a) - domain.Normalize(b))
	return math.Min(d, 360-d)
}

func TestBodies_J2000(t *testing.T) {
	p := NewProvider()

	bodies, err := p.Bodies(context.Background(), j2000)
	if err != nil {
		t.Fatalf("Bodies failed: %v", err)
	}

	if len(bodies) != 8 {
		t.Fatalf("expected 8 bodies, got %d", len(bodies))
	}
	if _, ok := bodies[domain.Ketu]; ok {
		t.Error("provider must not return Ketu")
	}

	// Reference values for 2000-01-01 12:00 UT
	tests := []struct {
		planet    domain.Planet
		want      float64
		tolerance float64
	}{
		{domain.Sun, 280.38, 0.2},
		{domain.Rahu, 125.04, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.planet.String(), func(t *testing.T) {
			got := bodies[tt.planet].Longitude
			if angularDistance(got, tt.want) > tt.tolerance {
				t.Errorf("%s longitude = %.4f, want %.2f ± %.2f", tt.planet, got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestBodies_Speeds(t *testing.T) {
	p := NewProvider()

	bodies, err := p.Bodies(context.Background(), 2460000.5)
	if err != nil {
		t.Fatalf("Bodies failed: %v", err)
	}

	if s := bodies[domain.Sun].Speed; s < 0.95 || s > 1.03 {
		t.Errorf("Sun speed = %.4f, want ~1°/day", s)
	}
	if s := bodies[domain.Moon].Speed; s < 11 || s > 16 {
		t.Errorf("Moon speed = %.4f, want 11-16°/day", s)
	}
	if s := bodies[domain.Rahu].Speed; s >= 0 {
		t.Errorf("mean node speed = %.4f, want negative", s)
	}
	for _, planet := range domain.PhysicalBodies {
		lon := bodies[planet].Longitude
		if lon < 0 || lon >= 360 {
			t.Errorf("%s longitude %.4f outside [0,360)", planet, lon)
		}
	}
}

func TestBodies_OutOfRange(t *testing.T) {
	p := NewProvider()

	_, err := p.Bodies(context.Background(), MinJulianDay-1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestBodies_CancelledContext(t *testing.T) {
	p := NewProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Bodies(ctx, j2000); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAscendantFromLST(t *testing.T) {
	eps := obliquity(0)

	tests := []struct {
		name string
		lst  float64
		lat  float64
		want float64
	}{
		{"aries culminating at equator", 0, 0, 90},
		{"cancer culminating at equator", 90, 0, 180},
		{"libra culminating at equator", 180, 0, 270},
		{"capricorn culminating at equator", 270, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ascendantFromLST(tt.lst, tt.lat, eps)
			if angularDistance(got, tt.want) > 1e-6 {
				t.Errorf("ascendantFromLST(%v, %v) = %.6f, want %.6f", tt.lst, tt.lat, got, tt.want)
			}
		})
	}
}

func TestAscendant_Errors(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	if _, err := p.Ascendant(ctx, j2000, 90, 0, domain.HouseSystemWholeSign); !errors.Is(err, ErrPolarLatitude) {
		t.Errorf("expected ErrPolarLatitude, got %v", err)
	}
	if _, err := p.Ascendant(ctx, j2000, 28.6, 77.2, domain.HouseSystem("X")); !errors.Is(err, ErrUnsupportedHouseSystem) {
		t.Errorf("expected ErrUnsupportedHouseSystem, got %v", err)
	}

	asc, err := p.Ascendant(ctx, j2000, 28.6, 77.2, domain.HouseSystemWholeSign)
	if err != nil {
		t.Fatalf("Ascendant failed: %v", err)
	}
	if asc < 0 || asc >= 360 {
		t.Errorf("ascendant %.4f outside [0,360)", asc)
	}
}

func TestAyanamsa(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	lahiri, err := p.Ayanamsa(ctx, j2000, domain.AyanamsaLahiri)
	if err != nil {
		t.Fatalf("Ayanamsa failed: %v", err)
	}
	if math.Abs(lahiri-23.853) > 0.01 {
		t.Errorf("Lahiri at J2000 = %.4f, want ~23.853", lahiri)
	}

	// Precession adds roughly 50" per year
	later, _ := p.Ayanamsa(ctx, j2000+36525, domain.AyanamsaLahiri)
	if diff := later - lahiri; math.Abs(diff-1.397) > 0.01 {
		t.Errorf("century drift = %.4f, want ~1.397", diff)
	}

	if _, err := p.Ayanamsa(ctx, j2000, domain.AyanamsaSystem("tropical")); !errors.Is(err, ErrUnknownAyanamsa) {
		t.Errorf("expected ErrUnknownAyanamsa, got %v", err)
	}
}

func TestEccentricAnomaly_Circular(t *testing.T) {
	for _, m := range []float64{0, 45, 180, 359} {
		if got := eccentricAnomaly(m, 0); math.Abs(got-m) > 1e-9 {
			t.Errorf("eccentricAnomaly(%v, 0) = %v, want %v", m, got, m)
		}
	}
}
