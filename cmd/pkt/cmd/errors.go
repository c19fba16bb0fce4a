package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"

	perrors "github.com/sambeau/distress/pkg/packet/errors"
)

// sourceError keeps the input text next to a packet error so the failing
// line can be shown.
type sourceError struct {
	err    *perrors.PacketError
	source string
}

func (e *sourceError) Error() string { return e.err.Error() }
func (e *sourceError) Unwrap() error { return e.err }

// withSource attaches file and source to packet errors. Other errors are
// returned unchanged.
func withSource(err error, file, source string) error {
	var perr *perrors.PacketError
	if errors.As(err, &perr) {
		return &sourceError{err: perr.WithFile(file), source: source}
	}
	return err
}

// PrintError writes err for a person to read. Aggregated errors are printed
// one after another.
func PrintError(w io.Writer, err error) {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for i, e := range merr.Errors {
			if i > 0 {
				fmt.Fprintln(w)
			}
			PrintError(w, e)
		}
		return
	}

	var serr *sourceError
	if errors.As(err, &serr) {
		fmt.Fprintln(w, serr.err.PrettyString())
		printSourceContext(w, strings.Split(serr.source, "\n"), serr.err.Line, serr.err.Column)
		return
	}

	var perr *perrors.PacketError
	if errors.As(err, &perr) {
		fmt.Fprintln(w, perr.PrettyString())
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
}

// printSourceContext shows the source line with a caret under the column.
func printSourceContext(w io.Writer, lines []string, lineNum, colNum int) {
	if lineNum <= 0 || lineNum > len(lines) {
		return
	}

	sourceLine := strings.TrimRight(lines[lineNum-1], "\r")
	fmt.Fprintf(w, "    %s\n", sourceLine)

	if colNum > 0 {
		fmt.Fprintf(w, "    %s^\n", strings.Repeat(" ", colNum-1))
	}
}
