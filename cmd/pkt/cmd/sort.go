package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sambeau/distress/pkg/packet/ast"
	"github.com/sambeau/distress/pkg/packet/compare"
	"github.com/sambeau/distress/pkg/packet/format"
	"github.com/sambeau/distress/pkg/packet/solve"
)

func newSortCmd(o *options) *cobra.Command {
	var (
		withDividers bool
		dividers     []string
		pretty       bool
	)

	cmd := &cobra.Command{
		Use:   "sort [file]",
		Short: "Print the packets in order",
		Long: `Sorts the packets with the packet comparison. Packets whose order cannot
be decided keep their input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, packets, err := o.loadPackets(cmd, args)
			if err != nil {
				return err
			}

			var sorted []ast.Expression
			if withDividers || len(dividers) > 0 {
				divs, err := o.dividers(dividers)
				if err != nil {
					return err
				}
				sorted, _, _ = solve.Dividers(packets, divs, nil)
			} else {
				sorted = append(sorted, packets...)
				compare.Sort(sorted)
			}

			fmt.Fprint(cmd.OutOrStdout(), format.All(sorted, pretty))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withDividers, "dividers", false, "include the divider packets")
	cmd.Flags().StringArrayVarP(&dividers, "divider", "d", nil, "divider packet (repeatable, implies --dividers)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "spread long packets over several lines")
	return cmd
}

func newFmtCmd(o *options) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print packets in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, packets, err := o.loadPackets(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), format.All(packets, pretty))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "spread long packets over several lines")
	return cmd
}
