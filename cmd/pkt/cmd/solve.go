package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sambeau/distress/pkg/packet/packet"
	"github.com/sambeau/distress/pkg/packet/solve"
	"github.com/sambeau/distress/report"
)

func newSolveCmd(o *options) *cobra.Command {
	var (
		format   string
		trace    bool
		dividers []string
		record   bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Sum the in-order pairs and compute the decoder key",
		Long: `Compares packets pair by pair and sums the 1-based indices of the pairs
that are in the right order. Then sorts every packet together with the
divider packets and multiplies the dividers' positions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, text, packets, err := o.loadPackets(cmd, args)
			if err != nil {
				return err
			}
			divs, err := o.dividers(dividers)
			if err != nil {
				return err
			}

			sopts := solve.Options{Dividers: divs}
			if verbose {
				sopts.Logger = packet.WriterLogger(cmd.ErrOrStderr())
			}
			r, err := solve.Run(packets, sopts)
			if err != nil {
				return withSource(err, path, text)
			}

			opts := report.OptionsFromConfig(o.cfg.Output)
			if cmd.Flags().Changed("format") {
				opts.Format = format
			}
			if trace {
				opts.Trace = true
			}
			if err := report.Render(cmd.OutOrStdout(), r, opts); err != nil {
				return err
			}

			if record {
				return o.record(cmd.Context(), cmd, path, text, r)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json, yaml, markdown, html")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "show every pair and the sorted list")
	cmd.Flags().StringArrayVarP(&dividers, "divider", "d", nil, "divider packet (repeatable, default [[2]] and [[6]])")
	cmd.Flags().BoolVar(&record, "record", false, "store the run in the history database")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every comparison to stderr while solving")
	return cmd
}
