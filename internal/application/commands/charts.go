package commands

import (
	"context"
	"errors"
	"fmt"

	"kundli/internal/application"
	"kundli/internal/ports"
)

// ListChartsCommand lists all stored charts
type ListChartsCommand struct {
	store ports.ChartStore
}

// NewListChartsCommand creates a new ListChartsCommand
func NewListChartsCommand(store ports.ChartStore) *ListChartsCommand {
	return &ListChartsCommand{store: store}
}

// Execute runs the list charts command
func (c *ListChartsCommand) Execute(ctx context.Context) ([]ports.ChartRecord, error) {
	return c.store.List(ctx)
}

// ShowChartCommand loads one stored chart by ID
type ShowChartCommand struct {
	store ports.ChartStore
	ID    string
}

// NewShowChartCommand creates a new ShowChartCommand
func NewShowChartCommand(store ports.ChartStore, id string) *ShowChartCommand {
	return &ShowChartCommand{store: store, ID: id}
}

// Validate checks the chart ID is present
func (c *ShowChartCommand) Validate() error {
	return application.ValidateRequired("chartID", c.ID)
}

// Execute runs the show chart command
func (c *ShowChartCommand) Execute(ctx context.Context) (*ports.ChartRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rec, err := c.store.GetByID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", c.ID, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: chart %s", application.ErrNotFound, c.ID)
	}
	return rec, nil
}

// DeleteChartResult contains the result of deleting a chart
type DeleteChartResult struct {
	ID      string
	Message string
}

// DeleteChartCommand removes a stored chart
type DeleteChartCommand struct {
	store ports.ChartStore
	ID    string
}

// NewDeleteChartCommand creates a new DeleteChartCommand
func NewDeleteChartCommand(store ports.ChartStore, id string) *DeleteChartCommand {
	return &DeleteChartCommand{store: store, ID: id}
}

// Validate checks the chart ID is present
func (c *DeleteChartCommand) Validate() error {
	return application.ValidateRequired("chartID", c.ID)
}

// Execute runs the delete chart command
func (c *DeleteChartCommand) Execute(ctx context.Context) (*DeleteChartResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.store.Delete(ctx, c.ID); err != nil {
		if errors.Is(err, ports.ErrChartNotFound) {
			return nil, fmt.Errorf("%w: chart %s", application.ErrNotFound, c.ID)
		}
		return nil, fmt.Errorf("failed to delete chart %s: %w", c.ID, err)
	}
	return &DeleteChartResult{
		ID:      c.ID,
		Message: fmt.Sprintf("Deleted chart: %s", c.ID),
	}, nil
}
