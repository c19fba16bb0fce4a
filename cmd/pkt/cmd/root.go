package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sambeau/distress/config"
)

// options is shared by every subcommand. cfg is loaded before any of them run.
type options struct {
	cfgFile string
	noColor bool
	cfg     *config.Config
}

// NewRootCmd builds the pkt command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:   "pkt",
		Short: "Compare, sort and check nested packet lists",
		Long: `pkt reads packets such as [1,[2,3],4], one per line, and reports
which consecutive pairs are in the right order and where the divider
packets land once everything is sorted.

Input files may be plain text, gzip or zstd. A path of "-" reads stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.cfgFile, os.Getenv)
			if err != nil {
				return err
			}
			if o.noColor {
				cfg.Output.Color = false
				color.NoColor = true
			}
			o.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default: ./pkt.yaml, ./pkt.yml or ./pkt.toml)")
	rootCmd.PersistentFlags().BoolVar(&o.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(
		newSolveCmd(o),
		newCheckCmd(o),
		newCompareCmd(o),
		newSortCmd(o),
		newFmtCmd(o),
		newReplCmd(o),
		newWatchCmd(o),
		newHistoryCmd(o),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command named by os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
