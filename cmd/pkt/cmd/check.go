package cmd

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/sambeau/distress/input"
	perrors "github.com/sambeau/distress/pkg/packet/errors"
	"github.com/sambeau/distress/pkg/packet/packet"
)

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check file...",
		Short: "Check packet files for syntax errors",
		Long: `Parses every file and reports all the errors found, not just the first.
A file with an odd number of packets is also reported, since its packets
cannot be paired.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs *multierror.Error
			for _, path := range args {
				text, err := input.ReadFile(path)
				if err != nil {
					errs = multierror.Append(errs, err)
					continue
				}

				packets, err := packet.Parse(text, o.parseOptions()...)
				if err != nil {
					errs = multierror.Append(errs, withSource(err, path, text))
					continue
				}

				if len(packets)%2 != 0 {
					odd := perrors.New(perrors.CodeOddPacketCount, map[string]any{"Count": len(packets)})
					errs = multierror.Append(errs, odd.WithFile(path))
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d packets)\n", path, len(packets))
			}
			return errs.ErrorOrNil()
		},
	}
}
