package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kundli/internal/adapters/format"
	"kundli/internal/application/commands"
)

var chartsOutput string

var chartsCmd = &cobra.Command{
	Use:   "charts [list|show|delete]",
	Short: "Manage cached charts",
	Long: `List, show, or delete charts saved in the chart cache.

Examples:
  kundli-cli charts list
  kundli-cli charts show 3f2b9c1e-...
  kundli-cli charts delete 3f2b9c1e-...`,
}

var chartsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached charts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := format.Parse(chartsOutput)
		if err != nil {
			return err
		}
		store, err := requireStore()
		if err != nil {
			return err
		}

		records, err := commands.NewListChartsCommand(store).Execute(context.Background())
		if err != nil {
			return err
		}
		return format.Records(os.Stdout, f, records)
	},
}

var chartsShowCmd = &cobra.Command{
	Use:   "show <chart-id>",
	Short: "Show a cached chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := format.Parse(chartsOutput)
		if err != nil {
			return err
		}
		store, err := requireStore()
		if err != nil {
			return err
		}

		rec, err := commands.NewShowChartCommand(store, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		return format.Chart(os.Stdout, f, rec.Chart)
	},
}

var chartsDeleteCmd = &cobra.Command{
	Use:   "delete <chart-id>",
	Short: "Delete a cached chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := requireStore()
		if err != nil {
			return err
		}

		result, err := commands.NewDeleteChartCommand(store, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.PersistentFlags().StringVarP(&chartsOutput, "output", "o", "text", "output format: text, json or yaml")
	chartsCmd.AddCommand(chartsListCmd)
	chartsCmd.AddCommand(chartsShowCmd)
	chartsCmd.AddCommand(chartsDeleteCmd)
}
