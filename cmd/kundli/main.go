package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"kundli/internal/adapters/editor"
	"kundli/internal/adapters/tui"
	"kundli/internal/bootstrap"
	"kundli/internal/config"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default .kundli.yaml)")
	flag.Parse()

	if err := run(*cfgFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	if err := config.Init(cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; only verbose runs keep a log file.
	var logOut io.Writer = io.Discard
	if cfg.Verbose {
		f, err := tea.LogToFile("kundli-debug.log", "")
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := bootstrap.NewLogger(logOut, cfg.Verbose)

	app, err := bootstrap.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	model := tui.NewApp(app.Engine, app.Store, editor.NewOpener(cfg.ExportDir), tui.Options{
		DefaultZone: cfg.Timezone,
		Timeout:     cfg.Timeout,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
