package commands

import (
	"context"
	"time"

	"kundli/internal/application"
	"kundli/internal/domain"
	"kundli/internal/ports"
)

// DashaTimelineResult contains the Vimshottari periods for a chart
type DashaTimelineResult struct {
	Chart             domain.Kundli        `json:"-" yaml:"-"`
	BirthLord         domain.Planet        `json:"birthLord" yaml:"birthLord"`
	BalanceYears      float64              `json:"balanceYears" yaml:"balanceYears"` // Years of the birth period remaining at birth
	Mahadashas        []domain.DashaPeriod `json:"mahadashas" yaml:"mahadashas"`
	Current           domain.DashaPeriod   `json:"current" yaml:"current"`
	Antardashas       []domain.DashaPeriod `json:"antardashas" yaml:"antardashas"` // Sub-periods of Current
	CurrentAntardasha *domain.DashaPeriod  `json:"currentAntardasha,omitempty" yaml:"currentAntardasha,omitempty"`
}

// DashaTimelineCommand computes the mahadasha timeline and the current sub-periods
type DashaTimelineCommand struct {
	compute *ComputeKundliCommand
}

// NewDashaTimelineCommand creates a new DashaTimelineCommand. store may be nil.
func NewDashaTimelineCommand(engine *application.Engine, store ports.ChartStore, input application.BirthInput, asOf time.Time) *DashaTimelineCommand {
	compute := NewComputeKundliCommand(engine, store, input)
	compute.AsOf = asOf
	return &DashaTimelineCommand{compute: compute}
}

// Validate checks the birth input
func (c *DashaTimelineCommand) Validate() error {
	return c.compute.Validate()
}

// Execute runs the dasha timeline command
func (c *DashaTimelineCommand) Execute(ctx context.Context) (*DashaTimelineResult, error) {
	res, err := c.compute.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashaTimeline(res.Chart, c.compute.AsOf), nil
}

// BuildDashaTimeline derives the full timeline from an already computed chart
func BuildDashaTimeline(chart domain.Kundli, asOf time.Time) *DashaTimelineResult {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	moon := chart.Position(domain.Moon).Degree
	lord, balance := domain.BirthBalance(moon)
	current := domain.CurrentMahadasha(moon, chart.Birth.Moment, asOf)

	result := &DashaTimelineResult{
		Chart:        chart,
		BirthLord:    lord,
		BalanceYears: balance,
		Mahadashas:   domain.MahadashaTimeline(moon, chart.Birth.Moment),
		Current:      current,
		Antardashas:  domain.Antardashas(current),
	}
	if sub, ok := domain.CurrentAntardasha(current, asOf); ok {
		result.CurrentAntardasha = &sub
	}
	return result
}
