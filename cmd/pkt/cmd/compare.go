package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sambeau/distress/pkg/packet/ast"
	"github.com/sambeau/distress/pkg/packet/compare"
	"github.com/sambeau/distress/pkg/packet/packet"
)

func newCompareCmd(o *options) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Report whether two packets are in the right order",
		Example: `  pkt compare '[1,1,3,1,1]' '[1,1,5,1,1]'
  pkt compare --short '[[1],[2,3,4]]' '[[1],4]'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := o.parseArg(args[0])
			if err != nil {
				return err
			}
			right, err := o.parseArg(args[1])
			if err != nil {
				return err
			}

			res := compare.Compare(left, right)
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), res)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), res.Sentence())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print in-order, out-of-order or undetermined")
	return cmd
}

// parseArg parses a packet given on the command line.
func (o *options) parseArg(arg string) (ast.Expression, error) {
	packets, err := packet.Parse(arg, o.parseOptions()...)
	if err != nil {
		return nil, withSource(err, "<argument>", arg)
	}
	if len(packets) != 1 {
		return nil, fmt.Errorf("expected exactly one packet in %q, got %d", arg, len(packets))
	}
	return packets[0], nil
}
