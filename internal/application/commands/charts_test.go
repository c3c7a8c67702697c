package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"kundli/internal/application"
	"kundli/internal/ports"
)

func seededStore(t *testing.T) (*memoryStore, string) {
	t.Helper()
	store := &memoryStore{}
	cmd := NewComputeKundliCommand(testEngine(&stubProvider{}), store, testInput())
	cmd.AsOf = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return store, res.ID
}

func TestListChartsCommand(t *testing.T) {
	store, id := seededStore(t)
	records, err := NewListChartsCommand(store).Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != id {
		t.Errorf("records = %+v", records)
	}
}

func TestShowChartCommand(t *testing.T) {
	store, id := seededStore(t)

	tests := []struct {
		name    string
		id      string
		wantErr error
		wantVal bool
	}{
		{name: "existing", id: id},
		{name: "missing", id: "nope", wantErr: application.ErrNotFound},
		{name: "empty", id: "", wantVal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewShowChartCommand(store, tt.id).Execute(context.Background())
			switch {
			case tt.wantVal:
				var verr *application.ValidationError
				if !errors.As(err, &verr) || verr.Field != "chartID" {
					t.Errorf("error = %v, want chartID ValidationError", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Fatal(err)
				}
				if rec.ID != id || rec.Chart.AscendantSign.String() != "Aries" {
					t.Errorf("record = %+v", rec)
				}
			}
		})
	}
}

func TestDeleteChartCommand(t *testing.T) {
	store, id := seededStore(t)

	res, err := NewDeleteChartCommand(store, id).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.ID != id || len(store.records) != 0 {
		t.Errorf("result = %+v, remaining = %d", res, len(store.records))
	}

	_, err = NewDeleteChartCommand(store, id).Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ports.ErrChartNotFound) {
		t.Error("store error should be translated, not wrapped")
	}

	if err := NewDeleteChartCommand(store, "").Validate(); err == nil {
		t.Error("expected validation error for empty ID")
	}
}
