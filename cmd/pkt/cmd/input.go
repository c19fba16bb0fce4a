package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sambeau/distress/input"
	"github.com/sambeau/distress/pkg/packet/ast"
	perrors "github.com/sambeau/distress/pkg/packet/errors"
	"github.com/sambeau/distress/pkg/packet/packet"
	"github.com/sambeau/distress/pkg/packet/parser"
	"github.com/sambeau/distress/pkg/packet/solve"
	"github.com/sambeau/distress/store"
)

// inputPath returns the file named on the command line, or the configured
// input when none is given.
func (o *options) inputPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return o.cfg.Input
}

// readInput reads a file, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, string, error) {
	if path == "" || path == input.Stdin {
		text, err := input.Read(cmd.InOrStdin())
		if err != nil {
			return "<stdin>", "", perrors.New(perrors.CodeUnreadableInput, map[string]any{
				"Path":   "<stdin>",
				"Reason": err.Error(),
			})
		}
		return "<stdin>", text, nil
	}
	text, err := input.ReadFile(path)
	return path, text, err
}

// loadPackets reads and parses the input for cmd.
func (o *options) loadPackets(cmd *cobra.Command, args []string) (string, string, []ast.Expression, error) {
	path, text, err := readInput(cmd, o.inputPath(args))
	if err != nil {
		return path, "", nil, err
	}
	packets, err := packet.Parse(text, o.parseOptions()...)
	if err != nil {
		return path, text, nil, withSource(err, path, text)
	}
	return path, text, packets, nil
}

func (o *options) parseOptions() []parser.Option {
	return []parser.Option{parser.WithMaxDepth(o.cfg.MaxDepth)}
}

// dividers parses the --divider flags, falling back to the configured
// dividers and then to the defaults.
func (o *options) dividers(flags []string) ([]ast.Expression, error) {
	specs := flags
	if len(specs) == 0 {
		specs = o.cfg.Dividers
	}
	return packet.ParseDividers(specs)
}

// record stores a finished run in the history database.
func (o *options) record(ctx context.Context, cmd *cobra.Command, path, text string, r *solve.Report) error {
	s, err := store.Open(o.cfg.Store.Driver, o.cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer s.Close()

	run := store.NewRun(path, text, r)
	if err := s.Record(ctx, run); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "recorded run %s\n", run.ID)
	return nil
}
