package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kundli/internal/bootstrap"
	"kundli/internal/config"
	"kundli/internal/ports"
)

var (
	cfgFile string
	app     *bootstrap.App
)

var rootCmd = &cobra.Command{
	Use:   "kundli-cli",
	Short: "Compute sidereal birth charts from the command line",
	Long: `kundli-cli computes Vedic (sidereal) birth charts: planetary signs,
whole-sign houses, nakshatras and padas, doshas, and the Vimshottari dasha.

Settings come from .kundli.yaml (working directory or $HOME), KUNDLI_*
environment variables, and flags, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := bootstrap.NewLogger(os.Stderr, cfg.Verbose)

		app, err = bootstrap.Build(cfg, logger)
		if err != nil {
			return err
		}
		logger.Debug("configured", "provider", cfg.Provider, "ayanamsa", cfg.Ayanamsa, "cache", cfg.Cache)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default .kundli.yaml)")
	flags.BoolP("verbose", "v", false, "debug logging to stderr")
	flags.String("provider", config.DefaultProvider, "ephemeris provider: meeus, swetest or static")
	flags.String("ayanamsa", "lahiri", "ayanamsa: lahiri, raman, krishnamurti or fagan_bradley")
	flags.String("static-file", "", "TOML fixture for the static provider")
	flags.String("db", "", "chart cache database (default $XDG_DATA_HOME/kundli/charts.db)")
	flags.Bool("cache", true, "cache computed charts in the database")

	bind := map[string]string{
		"verbose":     "verbose",
		"provider":    "provider",
		"ayanamsa":    "ayanamsa",
		"static_file": "static-file",
		"db_path":     "db",
		"cache":       "cache",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// requireStore returns the chart store, or an error when caching is disabled
func requireStore() (ports.ChartStore, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("chart cache is disabled (enable with --cache or cache: true)")
	}
	return app.Store, nil
}
