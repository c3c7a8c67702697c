package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"kundli/internal/adapters/format"
	"kundli/internal/application/commands"
	"kundli/internal/ports"
)

var errNoStore = errors.New("chart cache is disabled")

// RegisterReadTools adds the tools that never call the ephemeris or write to the cache.
// store may be nil when caching is disabled.
func RegisterReadTools(s *server.MCPServer, store ports.ChartStore) {
	s.AddTool(classifyDegreeTool(), classifyDegreeHandler())
	s.AddTool(listChartsTool(), listChartsHandler(store))
	s.AddTool(showChartTool(), showChartHandler(store))
}

// --- classify_degree ---

func classifyDegreeTool() mcp.Tool {
	return mcp.NewTool("classify_degree",
		mcp.WithDescription("Classify a sidereal longitude: sign, degree within sign, nakshatra, pada and nakshatra lord. With an ascendant also returns the whole-sign house."),
		mcp.WithNumber("degree",
			mcp.Description("Sidereal ecliptic longitude in degrees (any real value, normalized to [0, 360))"),
			mcp.Required(),
		),
		mcp.WithNumber("ascendant",
			mcp.Description("Sidereal ascendant longitude in degrees. Omit to skip the house."),
		),
		outputParam(),
	)
}

func classifyDegreeHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		degree, ok := args["degree"].(float64)
		if !ok {
			return toolError(fmt.Errorf("degree is required"))
		}
		var ascendant *float64
		if asc, ok := args["ascendant"].(float64); ok {
			ascendant = &asc
		}

		info, err := commands.NewClassifyDegreeCommand(degree, ascendant).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return render(req, func(buf *bytes.Buffer, f format.Format) error {
			return format.Degree(buf, f, info)
		})
	}
}

// --- list_charts ---

func listChartsTool() mcp.Tool {
	return mcp.NewTool("list_charts",
		mcp.WithDescription("List charts saved in the local cache, newest first."),
		outputParam(),
	)
}

func listChartsHandler(store ports.ChartStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if store == nil {
			return toolError(errNoStore)
		}
		records, err := commands.NewListChartsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return render(req, func(buf *bytes.Buffer, f format.Format) error {
			return format.Records(buf, f, records)
		})
	}
}

// --- show_chart ---

func showChartTool() mcp.Tool {
	return mcp.NewTool("show_chart",
		mcp.WithDescription("Show a saved chart by its ID."),
		mcp.WithString("id",
			mcp.Description("Chart ID as returned by compute_kundli or list_charts"),
			mcp.Required(),
		),
		outputParam(),
	)
}

func showChartHandler(store ports.ChartStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if store == nil {
			return toolError(errNoStore)
		}
		rec, err := commands.NewShowChartCommand(store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return render(req, func(buf *bytes.Buffer, f format.Format) error {
			return format.Chart(buf, f, rec.Chart)
		})
	}
}

// --- helpers ---

func outputParam() mcp.ToolOption {
	return mcp.WithString("output",
		mcp.Description("Output format: text (default), json or yaml"),
		mcp.Enum(string(format.Text), string(format.JSON), string(format.YAML)),
	)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func render(req mcp.CallToolRequest, write func(*bytes.Buffer, format.Format) error) (*mcp.CallToolResult, error) {
	f, err := format.Parse(req.GetString("output", ""))
	if err != nil {
		return toolError(err)
	}
	var buf bytes.Buffer
	if err := write(&buf, f); err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}
