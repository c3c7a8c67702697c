package application

import (
	"context"
	"log/slog"
	"time"

	"kundli/internal/domain"
	"kundli/internal/ports"
)

// Engine computes charts from birth details using an injected ephemeris provider.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	provider    ports.EphemerisProvider
	ayanamsa    domain.AyanamsaSystem
	houseSystem domain.HouseSystem
	logger      *slog.Logger
}

// EngineOption configures the Engine
type EngineOption func(*Engine)

// WithAyanamsa sets the sidereal definition
func WithAyanamsa(a domain.AyanamsaSystem) EngineOption {
	return func(e *Engine) {
		e.ayanamsa = a
	}
}

// WithHouseSystem sets the house system passed to the ascendant calculation
func WithHouseSystem(h domain.HouseSystem) EngineOption {
	return func(e *Engine) {
		e.houseSystem = h
	}
}

// WithLogger sets the logger used for debug tracing
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an Engine with Lahiri ayanamsa and whole-sign houses by default
func NewEngine(provider ports.EphemerisProvider, opts ...EngineOption) *Engine {
	e := &Engine{
		provider:    provider,
		ayanamsa:    domain.AyanamsaLahiri,
		houseSystem: domain.HouseSystemWholeSign,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ayanamsa returns the configured sidereal definition
func (e *Engine) Ayanamsa() domain.AyanamsaSystem {
	return e.ayanamsa
}

// Logger returns the logger the engine and its callers report through
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// ProviderName returns the name of the backing ephemeris
func (e *Engine) ProviderName() string {
	return e.provider.Name()
}

// Observe validates the birth details and fetches everything the chart needs from the provider
func (e *Engine) Observe(ctx context.Context, birth domain.BirthDetails) (domain.Observation, error) {
	if err := ValidateBirth(birth); err != nil {
		return domain.Observation{}, err
	}
	moment, _ := birth.Moment()
	jd := domain.JulianDay(moment)

	name := e.provider.Name()
	e.logger.Debug("observing", "provider", name, "jd", jd, "ayanamsa", e.ayanamsa)

	ayanamsa, err := e.provider.Ayanamsa(ctx, jd, e.ayanamsa)
	if err == nil {
		err = domain.CheckFinite("ayanamsa", ayanamsa)
	}
	if err != nil {
		return domain.Observation{}, &EphemerisError{Provider: name, Op: "ayanamsa", Err: err}
	}
	bodies, err := e.provider.Bodies(ctx, jd)
	if err == nil {
		err = checkBodies(bodies)
	}
	if err != nil {
		return domain.Observation{}, &EphemerisError{Provider: name, Op: "bodies", Err: err}
	}
	asc, err := e.provider.Ascendant(ctx, jd, birth.Latitude, birth.Longitude, e.houseSystem)
	if err == nil {
		err = domain.CheckFinite("ascendant", asc)
	}
	if err != nil {
		return domain.Observation{}, &EphemerisError{Provider: name, Op: "ascendant", Err: err}
	}

	return domain.Observation{
		Birth:           birth,
		Moment:          moment,
		JulianDay:       jd,
		Bodies:          bodies,
		Ascendant:       asc,
		Ayanamsa:        ayanamsa,
		AyanamsaSystem:  e.ayanamsa,
		TimeApproximate: !birth.TimeKnown,
	}, nil
}

// Compute produces the chart for a birth, with the mahadasha running at asOf
func (e *Engine) Compute(ctx context.Context, birth domain.BirthDetails, asOf time.Time) (domain.Kundli, error) {
	obs, err := e.Observe(ctx, birth)
	if err != nil {
		return domain.Kundli{}, err
	}
	k, err := domain.Assemble(obs, asOf)
	if err != nil {
		return domain.Kundli{}, &EphemerisError{Provider: e.provider.Name(), Op: "bodies", Err: err}
	}
	e.logger.Debug("chart computed",
		"ascendant", k.AscendantSign,
		"doshas", len(k.Doshas),
		"dasha", k.CurrentDasha.Planet,
	)
	return k, nil
}

// checkBodies rejects NaN or infinite provider values before they reach the classifier
func checkBodies(bodies map[domain.Planet]domain.BodyState) error {
	for p, b := range bodies {
		if err := domain.CheckFinite(p.String()+" longitude", b.Longitude); err != nil {
			return err
		}
		if err := domain.CheckFinite(p.String()+" speed", b.Speed); err != nil {
			return err
		}
	}
	return nil
}
