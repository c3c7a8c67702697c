package mcp

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kundli/internal/adapters/format"
	"kundli/internal/application"
	"kundli/internal/application/commands"
	"kundli/internal/ports"
)

// RegisterWriteTools adds the tools that compute charts (and populate the cache) or
// remove cached charts. store may be nil when caching is disabled. defaultZone is used
// when a request carries no zone.
func RegisterWriteTools(s *server.MCPServer, engine *application.Engine, store ports.ChartStore, defaultZone string) {
	s.AddTool(computeKundliTool(), computeKundliHandler(engine, store, defaultZone))
	s.AddTool(dashaTimelineTool(), dashaTimelineHandler(engine, store, defaultZone))
	s.AddTool(deleteChartTool(), deleteChartHandler(store))
}

func birthParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("date_of_birth",
			mcp.Description("Local calendar date of birth, YYYY-MM-DD"),
			mcp.Required(),
		),
		mcp.WithString("time_of_birth",
			mcp.Description("Local clock time, HH:MM (24h). Omit when unknown; noon is assumed and the chart is flagged approximate."),
		),
		mcp.WithString("zone",
			mcp.Description("UTC offset such as +05:30, or an IANA zone such as Asia/Kolkata. Defaults to the configured timezone."),
		),
		mcp.WithNumber("latitude",
			mcp.Description("Birth place latitude in degrees, north positive"),
			mcp.Required(),
		),
		mcp.WithNumber("longitude",
			mcp.Description("Birth place longitude in degrees, east positive"),
			mcp.Required(),
		),
		mcp.WithString("as_of",
			mcp.Description("Date (YYYY-MM-DD) at which to report the running dasha. Defaults to today."),
		),
	}
}

func birthInput(req mcp.CallToolRequest, defaultZone string) (application.BirthInput, error) {
	args := req.GetArguments()
	lat, okLat := args["latitude"].(float64)
	lng, okLng := args["longitude"].(float64)
	if !okLat {
		return application.BirthInput{}, &application.ValidationError{Field: "placeOfBirthLat", Message: "latitude is required"}
	}
	if !okLng {
		return application.BirthInput{}, &application.ValidationError{Field: "placeOfBirthLng", Message: "longitude is required"}
	}
	return application.BirthInput{
		DateOfBirth: req.GetString("date_of_birth", ""),
		TimeOfBirth: req.GetString("time_of_birth", ""),
		Zone:        req.GetString("zone", defaultZone),
		Latitude:    lat,
		Longitude:   lng,
	}, nil
}

func asOfParam(req mcp.CallToolRequest) (time.Time, error) {
	s := req.GetString("as_of", "")
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, &application.ValidationError{Field: "asOf", Message: fmt.Sprintf("expected YYYY-MM-DD, got: %s", s)}
	}
	return t, nil
}

// --- compute_kundli ---

func computeKundliTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Compute a sidereal birth chart: planet positions with sign, house, nakshatra and pada, whole-sign houses, doshas and the running Vimshottari mahadasha."),
	}
	opts = append(opts, birthParams()...)
	opts = append(opts,
		mcp.WithString("label",
			mcp.Description("Optional label stored with the chart in the cache"),
		),
		outputParam(),
	)
	return mcp.NewTool("compute_kundli", opts...)
}

func computeKundliHandler(engine *application.Engine, store ports.ChartStore, defaultZone string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := birthInput(req, defaultZone)
		if err != nil {
			return toolError(err)
		}
		asOf, err := asOfParam(req)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewComputeKundliCommand(engine, store, input)
		cmd.Label = req.GetString("label", "")
		cmd.AsOf = asOf
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return render(req, func(buf *bytes.Buffer, f format.Format) error {
			if f == format.Text {
				fmt.Fprintf(buf, "%s\n\n", result.Message)
			}
			return format.Chart(buf, f, result.Chart)
		})
	}
}

// --- dasha_timeline ---

func dashaTimelineTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List the Vimshottari mahadashas from birth, and the antardashas of the one running at as_of."),
	}
	opts = append(opts, birthParams()...)
	opts = append(opts, outputParam())
	return mcp.NewTool("dasha_timeline", opts...)
}

func dashaTimelineHandler(engine *application.Engine, store ports.ChartStore, defaultZone string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := birthInput(req, defaultZone)
		if err != nil {
			return toolError(err)
		}
		asOf, err := asOfParam(req)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewDashaTimelineCommand(engine, store, input, asOf).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return render(req, func(buf *bytes.Buffer, f format.Format) error {
			return format.Timeline(buf, f, result)
		})
	}
}

// --- delete_chart ---

func deleteChartTool() mcp.Tool {
	return mcp.NewTool("delete_chart",
		mcp.WithDescription("Delete a saved chart from the cache by its ID."),
		mcp.WithString("id",
			mcp.Description("Chart ID"),
			mcp.Required(),
		),
	)
}

func deleteChartHandler(store ports.ChartStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if store == nil {
			return toolError(errNoStore)
		}
		result, err := commands.NewDeleteChartCommand(store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
