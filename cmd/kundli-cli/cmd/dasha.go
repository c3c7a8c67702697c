package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"kundli/internal/adapters/format"
	"kundli/internal/application/commands"
)

var dashaBirth birthFlags

var dashaCmd = &cobra.Command{
	Use:   "dasha",
	Short: "Show the Vimshottari dasha timeline",
	Long: `Show the mahadasha sequence from birth, the running mahadasha and its
antardashas. The Moon's nakshatra at birth fixes the starting lord and the
balance of its period.

Examples:
  kundli-cli dasha --date 1990-05-15 --time 10:30 --lat 28.6139 --lng 77.209
  kundli-cli dasha -d 1990-05-15 -t 10:30 --lat 28.61 --lng 77.21 --as-of 2030-01-01 -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := dashaBirth.format()
		if err != nil {
			return err
		}
		asOf, err := dashaBirth.asOfTime()
		if err != nil {
			return err
		}

		dashaCmd := commands.NewDashaTimelineCommand(app.Engine, app.Store, dashaBirth.input(), asOf)
		result, err := dashaCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		return format.Timeline(os.Stdout, f, result)
	},
}

func init() {
	dashaBirth.register(dashaCmd)
	rootCmd.AddCommand(dashaCmd)
}
