package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kundli/internal/application"
	"kundli/internal/domain"
	"kundli/internal/ports"
)

// ComputeKundliResult contains the result of computing a chart
type ComputeKundliResult struct {
	ID      string // Empty when no store is configured
	Chart   domain.Kundli
	Cached  bool
	Message string
}

// ComputeKundliCommand computes a chart, consulting the chart store first when one is set
type ComputeKundliCommand struct {
	engine *application.Engine
	store  ports.ChartStore // optional
	Input  application.BirthInput
	Label  string
	AsOf   time.Time // zero means now

	birth domain.BirthDetails
}

// NewComputeKundliCommand creates a new ComputeKundliCommand. store may be nil.
func NewComputeKundliCommand(engine *application.Engine, store ports.ChartStore, input application.BirthInput) *ComputeKundliCommand {
	return &ComputeKundliCommand{
		engine: engine,
		store:  store,
		Input:  input,
	}
}

// Validate checks the birth input before any ephemeris call
func (c *ComputeKundliCommand) Validate() error {
	birth, err := application.ParseBirth(c.Input)
	if err != nil {
		return err
	}
	c.birth = birth
	return nil
}

// Execute runs the compute command
func (c *ComputeKundliCommand) Execute(ctx context.Context) (*ComputeKundliResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	asOf := c.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	key := CacheKey(c.birth, c.engine.Ayanamsa(), c.engine.ProviderName())
	if c.store != nil {
		rec, err := c.store.GetByKey(ctx, key)
		if err != nil {
			c.engine.Logger().Warn("chart cache lookup failed", "key", key, "err", err)
		} else if rec != nil {
			return &ComputeKundliResult{
				ID:      rec.ID,
				Chart:   rec.Chart.WithDashaAsOf(asOf),
				Cached:  true,
				Message: fmt.Sprintf("Loaded chart %s from cache", rec.ID),
			}, nil
		}
	}

	chart, err := c.engine.Compute(ctx, c.birth, asOf)
	if err != nil {
		return nil, err
	}

	result := &ComputeKundliResult{
		Chart:   chart,
		Message: fmt.Sprintf("Computed chart: %s ascendant, %d dosha(s)", chart.AscendantSign, len(chart.Doshas)),
	}
	if c.store == nil {
		return result, nil
	}

	rec := &ports.ChartRecord{
		ID:        uuid.NewString(),
		Key:       key,
		Label:     c.Label,
		Provider:  c.engine.ProviderName(),
		CreatedAt: time.Now().UTC(),
		Chart:     chart,
	}
	if err := c.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store chart: %w", err)
	}
	result.ID = rec.ID
	result.Message = fmt.Sprintf("%s (saved as %s)", result.Message, rec.ID)
	return result, nil
}

// CacheKey hashes the canonical input tuple a chart depends on
func CacheKey(b domain.BirthDetails, ayanamsa domain.AyanamsaSystem, provider string) string {
	clock := "--:--"
	if b.TimeKnown {
		clock = fmt.Sprintf("%02d:%02d", b.Hour, b.Minute)
	}
	zone := ""
	if b.Zone != nil {
		zone = b.Zone.String()
	}
	canonical := fmt.Sprintf("%04d-%02d-%02d|%s|%s|%.6f|%.6f|%s|%s",
		b.Year, b.Month, b.Day, clock, zone, b.Latitude, b.Longitude, ayanamsa, provider)
	h := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(h[:16])
}
