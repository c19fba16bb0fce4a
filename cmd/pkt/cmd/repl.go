package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sambeau/distress/pkg/packet/repl"
)

func newReplCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Compare packets interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			divs, err := o.dividers(nil)
			if err != nil {
				return err
			}
			repl.Start(cmd.OutOrStdout(), Version, repl.NewSession(divs, o.cfg.MaxDepth))
			return nil
		},
	}
}
