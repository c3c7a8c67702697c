package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kundli/internal/adapters/editor"
	"kundli/internal/adapters/format"
	"kundli/internal/adapters/static"
	"kundli/internal/application"
	"kundli/internal/application/commands"
)

var (
	computeBirth   birthFlags
	computeLabel   string
	computeFixture string
	computeOpen    bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a birth chart",
	Long: `Compute a sidereal birth chart: ascendant, planetary placements with
nakshatra and pada, whole-sign houses, doshas and the running mahadasha.

Charts are cached by their inputs; repeating a computation loads the saved chart.

Examples:
  kundli-cli compute --date 1990-05-15 --time 10:30 --zone +05:30 --lat 28.6139 --lng 77.209
  kundli-cli compute -d 1985-11-02 -z Asia/Kolkata --lat 19.07 --lng 72.88 -o json
  kundli-cli compute -d 1990-05-15 -t 10:30 --lat 28.61 --lng 77.21 --save-fixture chart.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		f, err := computeBirth.format()
		if err != nil {
			return err
		}
		asOf, err := computeBirth.asOfTime()
		if err != nil {
			return err
		}

		input := computeBirth.input()
		computeCmd := commands.NewComputeKundliCommand(app.Engine, app.Store, input)
		computeCmd.Label = computeLabel
		computeCmd.AsOf = asOf
		result, err := computeCmd.Execute(ctx)
		if err != nil {
			return err
		}
		app.Logger.Debug("chart ready", "id", result.ID, "cached", result.Cached)

		if computeFixture != "" {
			if err := saveFixture(ctx, input, computeFixture); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved fixture: %s\n", computeFixture)
		}

		if computeOpen {
			return openInEditor(result)
		}

		if err := format.Chart(os.Stdout, f, result.Chart); err != nil {
			return err
		}
		if f == format.Text {
			fmt.Fprintln(os.Stderr, result.Message)
		}
		return nil
	},
}

func saveFixture(ctx context.Context, input application.BirthInput, path string) error {
	birth, err := application.ParseBirth(input)
	if err != nil {
		return err
	}
	obs, err := app.Engine.Observe(ctx, birth)
	if err != nil {
		return err
	}
	return static.Save(path, static.Snapshot(obs))
}

func openInEditor(result *commands.ComputeKundliResult) error {
	name := result.ID
	if name == "" {
		name = result.Chart.Birth.Date + "_" + result.Chart.Birth.Time
	}
	ed := editor.NewOpener(app.Config.ExportDir)
	path, err := ed.Export(name, format.ChartText(result.Chart))
	if err != nil {
		return err
	}
	return ed.OpenFile(path)
}

func init() {
	computeBirth.register(computeCmd)
	computeCmd.Flags().StringVarP(&computeLabel, "label", "l", "", "label stored with the chart")
	computeCmd.Flags().StringVar(&computeFixture, "save-fixture", "", "write the raw ephemeris data to a TOML fixture for the static provider")
	computeCmd.Flags().BoolVarP(&computeOpen, "edit", "e", false, "open the text chart in $EDITOR instead of printing it")
	rootCmd.AddCommand(computeCmd)
}
