package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "kundli/internal/adapters/mcp"
	"kundli/internal/bootstrap"
	"kundli/internal/config"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default .kundli.yaml)")
	flag.Parse()

	if err := config.Init(*cfgFlag); err != nil {
		log.Fatalf("kundli-mcp: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("kundli-mcp: %v", err)
	}

	// stdout carries the protocol, so logs go to stderr
	logger := bootstrap.NewLogger(os.Stderr, cfg.Verbose)
	app, err := bootstrap.Build(cfg, logger)
	if err != nil {
		log.Fatalf("kundli-mcp: %v", err)
	}
	defer app.Close()

	mcpServer := server.NewMCPServer(
		"kundli-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, app.Store)
	mcpadapter.RegisterWriteTools(mcpServer, app.Engine, app.Store, cfg.Timezone)

	logger.Debug("serving", "provider", app.Engine.ProviderName(), "ayanamsa", app.Engine.Ayanamsa())
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("kundli-mcp: %v", err)
	}
}
