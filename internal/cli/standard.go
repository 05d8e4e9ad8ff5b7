package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/draw"
)

func newStandardCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "standard <diameter>",
		Short: "Show the flange table row for a duct diameter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := strconv.ParseFloat(args[0], 64)
			if err != nil || !(d > 0) {
				return fmt.Errorf("diameter must be a positive number, got %q", args[0])
			}
			lib, err := opts.library()
			if err != nil {
				return err
			}
			row := lib.Table().Lookup(d)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Nominal diameter:\t%s\n", draw.Num(row.NominalDiameter))
			fmt.Fprintf(tw, "Inside diameter:\t%s\n", draw.Num(row.InsideDiameter))
			fmt.Fprintf(tw, "Outside diameter:\t%s\n", draw.Num(row.OutsideDiameter))
			fmt.Fprintf(tw, "Flange thickness:\t%s\n", draw.Num(row.FlangeThickness))
			fmt.Fprintf(tw, "Bolt circle (PCD):\t%s\n", draw.Num(row.BoltCircleDiameter))
			fmt.Fprintf(tw, "Holes:\t%d x %s (%s)\n", row.HoleCount, draw.Num(row.HoleSize), row.BoltSize)
			if row.Extrapolated {
				fmt.Fprintf(tw, "Note:\textrapolated beyond the largest table row\n")
			}
			return tw.Flush()
		},
	}
}

func newArchetypesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "archetypes",
		Short: "List the drawable fittings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := opts.library()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTITLE")
			for _, a := range lib.Archetypes() {
				fmt.Fprintf(tw, "%s\t%s\n", a.Name, a.Title)
			}
			return tw.Flush()
		},
	}
}
