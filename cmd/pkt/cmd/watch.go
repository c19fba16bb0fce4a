package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sambeau/distress/pkg/packet/packet"
	"github.com/sambeau/distress/report"
	"github.com/sambeau/distress/watch"
)

func newWatchCmd(o *options) *cobra.Command {
	var (
		trace   bool
		record  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Solve a file again every time it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.inputPath(args)
			if path == "" || path == "-" {
				return fmt.Errorf("watch needs a file, not stdin")
			}
			divs, err := o.dividers(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := report.OptionsFromConfig(o.cfg.Output)
			if trace {
				opts.Trace = true
			}
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			wopts := watch.Options{
				Debounce: o.cfg.Watch.DebounceDuration(),
				MaxDepth: o.cfg.MaxDepth,
				Dividers: divs,
				Logger:   packet.WriterLogger(errOut),
			}
			if verbose {
				wopts.Trace = packet.WriterLogger(errOut)
			}
			w, err := watch.New(path, wopts, func(res watch.Result) {
				fmt.Fprintf(out, "--- run %d ---\n", res.Seq)
				if res.Err != nil {
					PrintError(errOut, withSource(res.Err, res.Path, res.Text))
					return
				}
				if err := report.Render(out, res.Report, opts); err != nil {
					PrintError(errOut, err)
					return
				}
				if record {
					if err := o.record(ctx, cmd, res.Path, res.Text, res.Report); err != nil {
						PrintError(errOut, err)
					}
				}
			})
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "show every pair and the sorted list")
	cmd.Flags().BoolVar(&record, "record", false, "store every run in the history database")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every comparison to stderr while solving")
	return cmd
}
