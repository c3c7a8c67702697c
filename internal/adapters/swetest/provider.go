package swetest

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"kundli/internal/domain"
	"kundli/internal/ports"
)

var (
	ErrUnknownAyanamsa = errors.New("unknown ayanamsa system")
	ErrNoAscendant     = errors.New("no ascendant in swetest output")
)

// siderealModes maps ayanamsa systems to swetest -sid numbers
var siderealModes = map[domain.AyanamsaSystem]int{
	domain.AyanamsaFaganBradley: 0,
	domain.AyanamsaLahiri:       1,
	domain.AyanamsaRaman:        3,
	domain.AyanamsaKrishnamurti: 5,
}

var bodyNames = map[string]domain.Planet{
	"sun":       domain.Sun,
	"moon":      domain.Moon,
	"mercury":   domain.Mercury,
	"venus":     domain.Venus,
	"mars":      domain.Mars,
	"jupiter":   domain.Jupiter,
	"saturn":    domain.Saturn,
	"mean node": domain.Rahu,
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Provider implements ports.EphemerisProvider by shelling out to the Swiss Ephemeris
// command line tool
type Provider struct {
	binary   string
	ephePath string
	timeout  time.Duration
	run      runFunc
}

// Ensure Provider implements EphemerisProvider
var _ ports.EphemerisProvider = (*Provider)(nil)

// Option configures the Provider
type Option func(*Provider)

// WithBinary sets the swetest executable path
func WithBinary(path string) Option {
	return func(p *Provider) {
		if path != "" {
			p.binary = path
		}
	}
}

// WithEphePath sets the directory holding the .se1 data files
func WithEphePath(dir string) Option {
	return func(p *Provider) {
		p.ephePath = dir
	}
}

// WithTimeout bounds each swetest invocation
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.timeout = d
	}
}

// NewProvider creates a new swetest-backed ephemeris
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		binary:  "swetest",
		timeout: 10 * time.Second,
		run:     execRun,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string {
	return "swetest"
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("swetest error: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("swetest error: %w", err)
	}
	return output, nil
}

func (p *Provider) invoke(ctx context.Context, args ...string) ([]byte, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if p.ephePath != "" {
		args = append(args, "-edir"+p.ephePath)
	}
	return p.run(ctx, p.binary, args...)
}

func jdArg(jd float64) string {
	return "-bj" + strconv.FormatFloat(jd, 'f', 6, 64)
}

// Bodies returns tropical longitudes and speeds for the seven bodies and the mean node
func (p *Provider) Bodies(ctx context.Context, jd float64) (map[domain.Planet]domain.BodyState, error) {
	out, err := p.invoke(ctx, jdArg(jd), "-p0123456m", "-fPls", "-g,", "-head", "-eswe")
	if err != nil {
		return nil, err
	}
	bodies, err := parseBodies(string(out))
	if err != nil {
		return nil, err
	}
	for _, planet := range append(domain.PhysicalBodies[:], domain.Rahu) {
		if _, ok := bodies[planet]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingBody, planet)
		}
	}
	return bodies, nil
}

// Ascendant runs swetest in house mode and reads the Ascendant line
func (p *Provider) Ascendant(ctx context.Context, jd, lat, lng float64, hsys domain.HouseSystem) (float64, error) {
	houses := fmt.Sprintf("-house%s,%s,%s",
		strconv.FormatFloat(lng, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64),
		string(hsys),
	)
	out, err := p.invoke(ctx, jdArg(jd), houses, "-p", "-fPl", "-g,", "-head", "-eswe")
	if err != nil {
		return 0, err
	}
	return parseAscendant(string(out))
}

// Ayanamsa is derived as the difference between the tropical and sidereal Sun
func (p *Provider) Ayanamsa(ctx context.Context, jd float64, system domain.AyanamsaSystem) (float64, error) {
	mode, ok := siderealModes[system]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAyanamsa, system)
	}

	tropical, err := p.invoke(ctx, jdArg(jd), "-p0", "-fPl", "-g,", "-head", "-eswe")
	if err != nil {
		return 0, err
	}
	sidereal, err := p.invoke(ctx, jdArg(jd), "-p0", "-fPl", "-g,", "-head", "-eswe", fmt.Sprintf("-sid%d", mode))
	if err != nil {
		return 0, err
	}

	trop, err := sunLongitude(string(tropical))
	if err != nil {
		return 0, err
	}
	sid, err := sunLongitude(string(sidereal))
	if err != nil {
		return 0, err
	}
	return domain.Normalize(trop - sid), nil
}

func sunLongitude(output string) (float64, error) {
	bodies, err := parseBodies(output)
	if err != nil {
		return 0, err
	}
	sun, ok := bodies[domain.Sun]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrMissingBody, domain.Sun)
	}
	return sun.Longitude, nil
}

// splitRow separates a row into its name and numeric columns. Rows are comma separated
// with -g, but older builds fall back to whitespace.
func splitRow(line string) (string, []string) {
	var fields []string
	if strings.Contains(line, ",") {
		for _, f := range strings.Split(line, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	} else {
		fields = strings.Fields(line)
	}

	nameEnd := len(fields)
	for nameEnd > 0 {
		if _, err := strconv.ParseFloat(fields[nameEnd-1], 64); err != nil {
			break
		}
		nameEnd--
	}
	return strings.ToLower(strings.Join(fields[:nameEnd], " ")), fields[nameEnd:]
}

func parseBodies(output string) (map[domain.Planet]domain.BodyState, error) {
	bodies := make(map[domain.Planet]domain.BodyState, 8)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "error") {
			return nil, fmt.Errorf("swetest: %s", line)
		}

		name, values := splitRow(line)
		planet, ok := bodyNames[name]
		if !ok || len(values) == 0 {
			continue
		}

		lon, _ := strconv.ParseFloat(values[0], 64)
		state := domain.BodyState{Longitude: domain.Normalize(lon)}
		if len(values) > 1 {
			state.Speed, _ = strconv.ParseFloat(values[1], 64)
		}
		bodies[planet] = state
	}
	if len(bodies) == 0 {
		return nil, errors.New("swetest: no bodies in output")
	}
	return bodies, nil
}

func parseAscendant(output string) (float64, error) {
	for _, line := range strings.Split(output, "\n") {
		name, values := splitRow(strings.TrimSpace(line))
		if name == "ascendant" && len(values) > 0 {
			asc, err := strconv.ParseFloat(values[0], 64)
			if err != nil {
				return 0, fmt.Errorf("swetest: bad ascendant %q: %w", values[0], err)
			}
			return domain.Normalize(asc), nil
		}
	}
	return 0, ErrNoAscendant
}
