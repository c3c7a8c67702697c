package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"kundli/internal/domain"
)

type fakeProvider struct {
	bodies    map[domain.Planet]domain.BodyState
	ascendant float64
	ayanamsa  float64
	failOn    string
	err       error

	calls     int
	gotSystem domain.AyanamsaSystem
	gotHouses domain.HouseSystem
	gotLat    float64
	gotJulian float64
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		ascendant: 24,
		ayanamsa:  24,
		bodies: map[domain.Planet]domain.BodyState{
			domain.Sun:     {Longitude: 54, Speed: 0.96},
			domain.Moon:    {Longitude: 334, Speed: 13},
			domain.Mercury: {Longitude: 74, Speed: 1.2},
			domain.Venus:   {Longitude: 44, Speed: 1.1},
			domain.Mars:    {Longitude: 234, Speed: 0.6},
			domain.Jupiter: {Longitude: 104, Speed: 0.2},
			domain.Saturn:  {Longitude: 304, Speed: -0.05},
			domain.Rahu:    {Longitude: 64, Speed: -0.05},
		},
		err: errors.New("provider down"),
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Bodies(_ context.Context, jd float64) (map[domain.Planet]domain.BodyState, error) {
	f.calls++
	f.gotJulian = jd
	if f.failOn == "bodies" {
		return nil, f.err
	}
	return f.bodies, nil
}

func (f *fakeProvider) Ascendant(_ context.Context, _, lat, _ float64, hsys domain.HouseSystem) (float64, error) {
	f.calls++
	f.gotLat = lat
	f.gotHouses = hsys
	if f.failOn == "ascendant" {
		return 0, f.err
	}
	return f.ascendant, nil
}

func (f *fakeProvider) Ayanamsa(_ context.Context, _ float64, system domain.AyanamsaSystem) (float64, error) {
	f.calls++
	f.gotSystem = system
	if f.failOn == "ayanamsa" {
		return 0, f.err
	}
	return f.ayanamsa, nil
}

func testBirth(t *testing.T) domain.BirthDetails {
	t.Helper()
	b, err := ParseBirth(BirthInput{
		DateOfBirth: "1990-05-15",
		TimeOfBirth: "10:00",
		Zone:        "+05:30",
		Latitude:    28.6139,
		Longitude:   77.209,
	})
	if err != nil {
		t.Fatalf("ParseBirth() error = %v", err)
	}
	return b
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_Compute(t *testing.T) {
	fp := newFakeProvider()
	e := NewEngine(fp, WithLogger(quietLogger()))

	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	k, err := e.Compute(context.Background(), testBirth(t), asOf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if k.AscendantSign != domain.Aries {
		t.Errorf("ascendant = %v, want Aries", k.AscendantSign)
	}
	mars := k.Position(domain.Mars)
	if mars.Sign != domain.Scorpio || mars.House != 8 {
		t.Errorf("Mars = %v house %d, want Scorpio house 8", mars.Sign, mars.House)
	}
	if !k.Position(domain.Saturn).IsRetrograde {
		t.Error("Saturn has negative speed and should be retrograde")
	}
	if len(k.Doshas) == 0 || k.Doshas[0].Type != domain.DoshaMangal {
		t.Errorf("doshas = %+v, want mangal first", k.Doshas)
	}
	if !k.CurrentDasha.Contains(asOf) {
		t.Errorf("current dasha %v does not contain %v", k.CurrentDasha, asOf)
	}

	wantJD := domain.JulianDay(time.Date(1990, 5, 15, 4, 30, 0, 0, time.UTC))
	if fp.gotJulian != wantJD {
		t.Errorf("provider got jd %v, want %v", fp.gotJulian, wantJD)
	}
	if fp.gotSystem != domain.AyanamsaLahiri || fp.gotHouses != domain.HouseSystemWholeSign {
		t.Errorf("defaults = %v / %v", fp.gotSystem, fp.gotHouses)
	}
	if fp.gotLat != 28.6139 {
		t.Errorf("latitude = %v", fp.gotLat)
	}
}

func TestEngine_Options(t *testing.T) {
	fp := newFakeProvider()
	e := NewEngine(fp,
		WithAyanamsa(domain.AyanamsaRaman),
		WithHouseSystem(domain.HouseSystemPlacidus),
		WithLogger(quietLogger()),
	)

	if e.Ayanamsa() != domain.AyanamsaRaman || e.ProviderName() != "fake" {
		t.Errorf("Ayanamsa() = %v, ProviderName() = %v", e.Ayanamsa(), e.ProviderName())
	}

	obs, err := e.Observe(context.Background(), testBirth(t))
	if err != nil {
		t.Fatal(err)
	}
	if fp.gotSystem != domain.AyanamsaRaman || fp.gotHouses != domain.HouseSystemPlacidus {
		t.Errorf("provider got %v / %v", fp.gotSystem, fp.gotHouses)
	}
	if obs.AyanamsaSystem != domain.AyanamsaRaman || obs.TimeApproximate {
		t.Errorf("observation = %+v", obs)
	}
}

func TestEngine_ProviderFailure(t *testing.T) {
	for _, op := range []string{"ayanamsa", "bodies", "ascendant"} {
		t.Run(op, func(t *testing.T) {
			fp := newFakeProvider()
			fp.failOn = op
			e := NewEngine(fp, WithLogger(quietLogger()))

			_, err := e.Compute(context.Background(), testBirth(t), time.Now())
			if !errors.Is(err, ErrEphemeris) {
				t.Fatalf("error = %v, want ErrEphemeris", err)
			}
			if !errors.Is(err, fp.err) {
				t.Errorf("error %v does not wrap the provider error", err)
			}
			var eerr *EphemerisError
			if !errors.As(err, &eerr) || eerr.Op != op || eerr.Provider != "fake" {
				t.Errorf("EphemerisError = %+v", eerr)
			}
		})
	}
}

func TestEngine_MissingBody(t *testing.T) {
	fp := newFakeProvider()
	delete(fp.bodies, domain.Rahu)
	e := NewEngine(fp, WithLogger(quietLogger()))

	_, err := e.Compute(context.Background(), testBirth(t), time.Now())
	if !errors.Is(err, ErrEphemeris) || !errors.Is(err, domain.ErrMissingBody) {
		t.Errorf("error = %v, want ephemeris error wrapping ErrMissingBody", err)
	}
}

func TestEngine_ValidatesBeforeProvider(t *testing.T) {
	fp := newFakeProvider()
	e := NewEngine(fp, WithLogger(quietLogger()))

	bad := testBirth(t)
	bad.Latitude = 120

	_, err := e.Compute(context.Background(), bad, time.Now())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "placeOfBirthLat" {
		t.Fatalf("error = %v, want latitude ValidationError", err)
	}
	if fp.calls != 0 {
		t.Errorf("provider called %d times for invalid input", fp.calls)
	}
}

func TestEngine_UnknownTime(t *testing.T) {
	fp := newFakeProvider()
	e := NewEngine(fp, WithLogger(quietLogger()))

	b := testBirth(t)
	b.TimeKnown = false

	k, err := e.Compute(context.Background(), b, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if !k.TimeApproximate {
		t.Error("chart from unknown time must be flagged approximate")
	}
	wantJD := domain.JulianDay(time.Date(1990, 5, 15, 6, 30, 0, 0, time.UTC))
	if fp.gotJulian != wantJD {
		t.Errorf("jd = %v, want local noon %v", fp.gotJulian, wantJD)
	}
}

func TestEngine_NonFiniteProviderValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fakeProvider)
		wantOp string
	}{
		{"NaN ayanamsa", func(f *fakeProvider) { f.ayanamsa = math.NaN() }, "ayanamsa"},
		{"infinite ascendant", func(f *fakeProvider) { f.ascendant = math.Inf(1) }, "ascendant"},
		{"NaN longitude", func(f *fakeProvider) {
			f.bodies[domain.Moon] = domain.BodyState{Longitude: math.NaN(), Speed: 13}
		}, "bodies"},
		{"infinite speed", func(f *fakeProvider) {
			f.bodies[domain.Saturn] = domain.BodyState{Longitude: 304, Speed: math.Inf(-1)}
		}, "bodies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := newFakeProvider()
			tt.mutate(fp)
			e := NewEngine(fp, WithLogger(quietLogger()))

			_, err := e.Compute(context.Background(), testBirth(t), time.Now())
			if !errors.Is(err, ErrEphemeris) || !errors.Is(err, domain.ErrNonFinite) {
				t.Fatalf("error = %v, want ephemeris error wrapping ErrNonFinite", err)
			}
			var eerr *EphemerisError
			if !errors.As(err, &eerr) || eerr.Op != tt.wantOp {
				t.Errorf("EphemerisError = %+v, want op %s", eerr, tt.wantOp)
			}
		})
	}
}
