// Package static serves fixed tropical positions from a TOML fixture. It ignores the
// requested moment, which makes charts reproducible regardless of the ephemeris installed.
//
// Fixture format:
//
//	ayanamsa = 23.853   # lahiri
//	ascendant = 100.5
//
//	[ayanamsas]
//	raman = 22.37
//
// Only the systems listed are served; any other request fails.
//
//	[bodies.sun]
//	longitude = 280.37
//	speed = 1.019
package static

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"kundli/internal/domain"
	"kundli/internal/ports"
)

var (
	ErrNoFixture  = errors.New("fixture file not found")
	ErrNoAyanamsa = errors.New("fixture has no ayanamsa for system")
)

// Fixture is the on-disk shape of a static ephemeris
type Fixture struct {
	Ayanamsa  *float64                    `toml:"ayanamsa,omitempty"` // Lahiri
	Ascendant float64                     `toml:"ascendant"`
	Ayanamsas map[string]float64          `toml:"ayanamsas,omitempty"`
	Bodies    map[string]domain.BodyState `toml:"bodies"`
}

// Provider implements ports.EphemerisProvider from a Fixture
type Provider struct {
	fixture   Fixture
	bodies    map[domain.Planet]domain.BodyState
	ayanamsas map[domain.AyanamsaSystem]float64
}

// Ensure Provider implements EphemerisProvider
var _ ports.EphemerisProvider = (*Provider)(nil)

// New validates a fixture and wraps it in a Provider
func New(f Fixture) (*Provider, error) {
	bodies := make(map[domain.Planet]domain.BodyState, len(f.Bodies))
	for name, state := range f.Bodies {
		planet, err := domain.ParsePlanet(name)
		if err != nil {
			return nil, fmt.Errorf("fixture body %q: %w", name, err)
		}
		if planet == domain.Ketu {
			return nil, fmt.Errorf("fixture body %q: ketu is derived from rahu", name)
		}
		bodies[planet] = state
	}
	ayanamsas := make(map[domain.AyanamsaSystem]float64, len(f.Ayanamsas)+1)
	for name, v := range f.Ayanamsas {
		system, err := domain.ParseAyanamsa(name)
		if err != nil {
			return nil, fmt.Errorf("fixture ayanamsa %q: %w", name, err)
		}
		ayanamsas[system] = v
	}
	if f.Ayanamsa != nil {
		if v, ok := ayanamsas[domain.AyanamsaLahiri]; ok && v != *f.Ayanamsa {
			return nil, fmt.Errorf("fixture ayanamsa: lahiri given twice (%v and %v)", *f.Ayanamsa, v)
		}
		ayanamsas[domain.AyanamsaLahiri] = *f.Ayanamsa
	}
	return &Provider{fixture: f, bodies: bodies, ayanamsas: ayanamsas}, nil
}

// Parse decodes TOML fixture data
func Parse(data []byte) (*Provider, error) {
	var f Fixture
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return New(f)
}

// Load reads a fixture file
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoFixture, path)
		}
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Snapshot captures an observation as a fixture, so a chart from any provider can be
// replayed later
func Snapshot(obs domain.Observation) Fixture {
	f := Fixture{
		Ascendant: obs.Ascendant,
		Bodies:    make(map[string]domain.BodyState, len(obs.Bodies)),
	}
	if obs.AyanamsaSystem == "" || obs.AyanamsaSystem == domain.AyanamsaLahiri {
		v := obs.Ayanamsa
		f.Ayanamsa = &v
	} else {
		f.Ayanamsas = map[string]float64{string(obs.AyanamsaSystem): obs.Ayanamsa}
	}
	for planet, state := range obs.Bodies {
		f.Bodies[strings.ToLower(planet.String())] = state
	}
	return f
}

// Save writes a fixture atomically
func Save(path string, f Fixture) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling fixture: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating fixture directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp fixture: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming fixture: %w", err)
	}
	return nil
}

func (p *Provider) Name() string {
	return "static"
}

// Bodies returns a copy of the fixture's bodies
func (p *Provider) Bodies(ctx context.Context, _ float64) (map[domain.Planet]domain.BodyState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[domain.Planet]domain.BodyState, len(p.bodies))
	for planet, state := range p.bodies {
		out[planet] = state
	}
	return out, nil
}

func (p *Provider) Ascendant(ctx context.Context, _, _, _ float64, _ domain.HouseSystem) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.fixture.Ascendant, nil
}

// Ayanamsa returns the fixture's value for system. Systems the fixture does not list are
// an error, never another system's value.
func (p *Provider) Ayanamsa(ctx context.Context, _ float64, system domain.AyanamsaSystem) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	v, ok := p.ayanamsas[system]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoAyanamsa, system)
	}
	return v, nil
}
