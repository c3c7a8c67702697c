package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"kundli/internal/adapters/format"
	"kundli/internal/application"
	"kundli/internal/application/commands"
)

var (
	nakshatraAscendant float64
	nakshatraOutput    string
)

var nakshatraCmd = &cobra.Command{
	Use:   "nakshatra <degree>",
	Short: "Classify a sidereal degree",
	Long: `Show the sign, degree within sign, nakshatra, pada and nakshatra lord
for a sidereal longitude. With --ascendant, also show the whole-sign house.

Examples:
  kundli-cli nakshatra 45
  kundli-cli nakshatra 213.5 --ascendant 24`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := format.Parse(nakshatraOutput)
		if err != nil {
			return err
		}
		degree, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return &application.ValidationError{Field: "degree", Message: "not a number: " + args[0]}
		}

		var asc *float64
		if cmd.Flags().Changed("ascendant") {
			asc = &nakshatraAscendant
		}
		info, err := commands.NewClassifyDegreeCommand(degree, asc).Execute(context.Background())
		if err != nil {
			return err
		}
		return format.Degree(os.Stdout, f, info)
	},
}

func init() {
	nakshatraCmd.Flags().Float64Var(&nakshatraAscendant, "ascendant", 0, "sidereal ascendant degree for house placement")
	nakshatraCmd.Flags().StringVarP(&nakshatraOutput, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(nakshatraCmd)
}
