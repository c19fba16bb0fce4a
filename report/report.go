// Package report renders solve results for people and for machines.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/sambeau/distress/config"
	"github.com/sambeau/distress/pkg/packet/ast"
	"github.com/sambeau/distress/pkg/packet/compare"
	"github.com/sambeau/distress/pkg/packet/solve"
)

// Options controls rendering.
type Options struct {
	Format string // one of the config.Format* values; empty means text
	Trace  bool   // include every pair and the sorted list
	Color  bool
	Locale string
}

// OptionsFromConfig builds render options from the output section of a config.
func OptionsFromConfig(out config.OutputConfig) Options {
	return Options{
		Format: out.Format,
		Trace:  out.Trace,
		Color:  out.Color,
		Locale: out.Locale,
	}
}

// Summary is the serializable form of a solve report.
type Summary struct {
	Packets      int              `json:"packets" yaml:"packets"`
	InOrderSum   int              `json:"in_order_sum" yaml:"in_order_sum"`
	Undetermined int              `json:"undetermined" yaml:"undetermined"`
	DecoderKey   int              `json:"decoder_key" yaml:"decoder_key"`
	Dividers     []DividerSummary `json:"dividers" yaml:"dividers"`
	ElapsedNS    int64            `json:"elapsed_ns" yaml:"elapsed_ns"`
	Pairs        []PairSummary    `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Sorted       []string         `json:"sorted,omitempty" yaml:"sorted,omitempty"`
}

// DividerSummary is a divider and its 1-based position after sorting.
type DividerSummary struct {
	Packet   string `json:"packet" yaml:"packet"`
	Position int    `json:"position" yaml:"position"`
}

// PairSummary is one pair's verdict.
type PairSummary struct {
	Index  int    `json:"index" yaml:"index"`
	Left   string `json:"left" yaml:"left"`
	Right  string `json:"right" yaml:"right"`
	Result string `json:"result" yaml:"result"`
}

// Summarize flattens a report. Pairs and the sorted list are only included
// when trace is set.
func Summarize(r *solve.Report, trace bool) Summary {
	s := Summary{
		Packets:      r.Packets,
		InOrderSum:   r.InOrderSum,
		Undetermined: r.Undetermined,
		DecoderKey:   r.DecoderKey,
		Dividers:     make([]DividerSummary, 0, len(r.Dividers)),
		ElapsedNS:    r.Elapsed.Nanoseconds(),
	}
	for _, d := range r.Dividers {
		s.Dividers = append(s.Dividers, DividerSummary{Packet: d.Packet.String(), Position: d.Position})
	}
	if !trace {
		return s
	}
	for _, p := range r.Pairs {
		s.Pairs = append(s.Pairs, PairSummary{
			Index:  p.Index,
			Left:   p.Left.String(),
			Right:  p.Right.String(),
			Result: p.Result.String(),
		})
	}
	for _, e := range r.Sorted {
		s.Sorted = append(s.Sorted, e.String())
	}
	return s
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r *solve.Report, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return renderText(w, r, opts)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Summarize(r, opts.Trace))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Summarize(r, opts.Trace)); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r, opts))
		return err
	case config.FormatHTML:
		return renderHTML(w, r, opts)
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

// verdictColor returns the colour used for a comparison result.
func verdictColor(res compare.Result, enabled bool) *color.Color {
	var c *color.Color
	switch res {
	case compare.InOrder:
		c = color.New(color.FgGreen)
	case compare.OutOfOrder:
		c = color.New(color.FgRed)
	default:
		c = color.New(color.FgYellow)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func renderText(w io.Writer, r *solve.Report, opts Options) error {
	p := numberPrinter(opts.Locale)
	bold := color.New(color.Bold)
	if opts.Color {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}

	var sb strings.Builder
	if opts.Trace {
		for _, pair := range r.Pairs {
			sb.WriteString(bold.Sprintf("== Pair %d ==", pair.Index))
			sb.WriteString("\n")
			sb.WriteString(pair.Left.String() + "\n")
			sb.WriteString(pair.Right.String() + "\n")
			sb.WriteString(verdictColor(pair.Result, opts.Color).Sprint(pair.Result.Sentence()))
			sb.WriteString("\n\n")
		}
		sb.WriteString(bold.Sprint("== Sorted =="))
		sb.WriteString("\n")
		for _, e := range r.Sorted {
			sb.WriteString(e.String())
			if isDivider(r, e) {
				sb.WriteString("  <- divider")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	positions := make([]string, 0, len(r.Dividers))
	for _, d := range r.Dividers {
		positions = append(positions, p.Sprintf("%d", d.Position))
	}

	sb.WriteString(p.Sprintf("Packets:         %d\n", r.Packets))
	sb.WriteString(p.Sprintf("Pairs in order:  %d (sum of indices)\n", r.InOrderSum))
	if r.Undetermined > 0 {
		sb.WriteString(verdictColor(compare.Undetermined, opts.Color).Sprint(
			p.Sprintf("Undetermined:    %d", r.Undetermined)))
		sb.WriteString("\n")
	}
	sb.WriteString(p.Sprintf("Decoder key:     %d (dividers at %s)\n", r.DecoderKey, strings.Join(positions, ", ")))
	sb.WriteString(fmt.Sprintf("Elapsed:         %s\n", humanize.SIWithDigits(r.Elapsed.Seconds(), 1, "s")))

	_, err := io.WriteString(w, sb.String())
	return err
}

func isDivider(r *solve.Report, e ast.Expression) bool {
	for _, d := range r.Dividers {
		if d.Packet == e {
			return true
		}
	}
	return false
}

// Markdown renders r as a GitHub-flavoured markdown document.
func Markdown(r *solve.Report, opts Options) string {
	p := numberPrinter(opts.Locale)
	var sb strings.Builder

	sb.WriteString("# Packet report\n\n")
	sb.WriteString("| Measure | Value |\n")
	sb.WriteString("|---|---|\n")
	sb.WriteString(p.Sprintf("| Packets | %d |\n", r.Packets))
	sb.WriteString(p.Sprintf("| Pairs in order (sum of indices) | %d |\n", r.InOrderSum))
	sb.WriteString(p.Sprintf("| Undetermined pairs | %d |\n", r.Undetermined))
	sb.WriteString(p.Sprintf("| Decoder key | %d |\n", r.DecoderKey))
	for _, d := range r.Dividers {
		sb.WriteString(p.Sprintf("| Divider `%s` | position %d |\n", d.Packet.String(), d.Position))
	}

	if opts.Trace {
		sb.WriteString("\n## Pairs\n\n")
		sb.WriteString("| # | Left | Right | Result |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, pair := range r.Pairs {
			fmt.Fprintf(&sb, "| %d | `%s` | `%s` | %s |\n", pair.Index, pair.Left, pair.Right, pair.Result)
		}

		sb.WriteString("\n## Sorted\n\n")
		for i, e := range r.Sorted {
			fmt.Fprintf(&sb, "%d. `%s`", i+1, e)
			if isDivider(r, e) {
				sb.WriteString(" *(divider)*")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderHTML(w io.Writer, r *solve.Report, opts Options) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(r, opts)), &body); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}

	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Packet report</title>
</head>
<body>
%s</body>
</html>
`, body.String())
	return err
}
