package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sambeau/distress/pkg/packet/ast"
	"github.com/sambeau/distress/pkg/packet/compare"
	"github.com/sambeau/distress/pkg/packet/errors"
	"github.com/sambeau/distress/pkg/packet/packet"
	"github.com/sambeau/distress/pkg/packet/parser"
	"github.com/sambeau/distress/pkg/packet/solve"
)

const PROMPT = ">> "
const CONTINUATION_PROMPT = ".. "

// REPL commands for tab completion
var completionWords = []string{
	":help", ":list", ":sort", ":solve", ":dividers", ":clear", "exit", "quit",
}

// Session holds the packets entered so far. It is independent of the
// terminal so it can be driven from tests.
type Session struct {
	packets  []ast.Expression
	dividers []ast.Expression
	maxDepth int
}

// NewSession creates an empty session. A nil dividers list uses the defaults.
func NewSession(dividers []ast.Expression, maxDepth int) *Session {
	if dividers == nil {
		dividers, _ = packet.ParseDividers(nil)
	}
	return &Session{dividers: dividers, maxDepth: maxDepth}
}

// Packets returns the packets entered so far.
func (s *Session) Packets() []ast.Expression {
	return s.packets
}

// Eval handles one complete input and returns what to print. quit is true
// when the user asked to leave.
//
// A line holding two packets separated by whitespace is compared on the
// spot. A line holding one packet is added to the session; every second
// packet completes a pair and its verdict is printed. Input spanning several
// lines is parsed as a whole, the same way a file is.
func (s *Session) Eval(line string) (output string, quit bool) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return "", false
	case trimmed == "exit" || trimmed == "quit":
		return "Goodbye!\n", true
	case strings.HasPrefix(trimmed, ":"):
		return s.command(trimmed), false
	}

	var parsed []ast.Expression
	if strings.Contains(trimmed, "\n") {
		packets, err := packet.Parse(trimmed, parser.WithMaxDepth(s.maxDepth))
		if err != nil {
			return formatError(trimmed, err), false
		}
		parsed = packets
	} else {
		for _, f := range strings.Fields(trimmed) {
			packets, err := packet.Parse(f, parser.WithMaxDepth(s.maxDepth))
			if err != nil {
				return formatError(f, err), false
			}
			parsed = append(parsed, packets...)
		}
	}

	switch len(parsed) {
	case 1:
		s.packets = append(s.packets, parsed[0])
		n := len(s.packets)
		out := fmt.Sprintf("#%d %s\n", n, parsed[0])
		if n%2 == 0 {
			res := compare.Compare(s.packets[n-2], s.packets[n-1])
			out += fmt.Sprintf("pair %d: %s\n", n/2, res.Sentence())
		}
		return out, false
	case 2:
		return compare.Compare(parsed[0], parsed[1]).Sentence() + "\n", false
	default:
		return fmt.Sprintf("expected one or two packets, got %d\n", len(parsed)), false
	}
}

// command handles REPL meta-commands that start with ':'
func (s *Session) command(cmd string) string {
	var sb strings.Builder
	switch cmd {
	case ":help", ":h", ":?":
		sb.WriteString("REPL Commands:\n")
		sb.WriteString("  :help, :h, :?   Show this help\n")
		sb.WriteString("  :list           Show the packets entered so far\n")
		sb.WriteString("  :sort           Show the packets in order, dividers included\n")
		sb.WriteString("  :solve          Show the pair sum and decoder key\n")
		sb.WriteString("  :dividers       Show the divider packets\n")
		sb.WriteString("  :clear          Forget every packet\n")
		sb.WriteString("  exit, quit      Exit the REPL\n")
		sb.WriteString("\n")
		sb.WriteString("Enter one packet per line to build pairs, or two packets\n")
		sb.WriteString("separated by a space to compare them directly.\n")

	case ":list":
		if len(s.packets) == 0 {
			return "(no packets)\n"
		}
		for i, p := range s.packets {
			fmt.Fprintf(&sb, "#%d %s\n", i+1, p)
		}

	case ":sort":
		sorted, positions, key := solve.Dividers(s.packets, s.dividers, nil)
		for i, p := range sorted {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
		}
		fmt.Fprintf(&sb, "decoder key: %d (dividers at %s)\n", key, joinPositions(positions))

	case ":solve":
		report, err := solve.Run(s.packets, solve.Options{Dividers: s.dividers})
		if err != nil {
			return formatError("", err)
		}
		fmt.Fprintf(&sb, "sum of indices: %d\n", report.InOrderSum)
		if report.Undetermined > 0 {
			fmt.Fprintf(&sb, "undetermined pairs: %d\n", report.Undetermined)
		}
		fmt.Fprintf(&sb, "decoder key: %d\n", report.DecoderKey)

	case ":dividers":
		for _, d := range s.dividers {
			fmt.Fprintf(&sb, "%s\n", d)
		}

	case ":clear":
		s.packets = nil
		sb.WriteString("Packets cleared\n")

	default:
		fmt.Fprintf(&sb, "Unknown command: %s (type :help for commands)\n", cmd)
	}
	return sb.String()
}

func joinPositions(positions []solve.DividerPosition) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprint(p.Position)
	}
	return strings.Join(parts, ", ")
}

// formatError renders an error with a caret under the failing column when
// the position is known. src may span several lines.
func formatError(src string, err error) string {
	perr, ok := err.(*errors.PacketError)
	if !ok {
		return "error: " + err.Error() + "\n"
	}
	var sb strings.Builder
	sb.WriteString(perr.PrettyString())
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}
	lines := strings.Split(src, "\n")
	if src != "" && perr.Line >= 1 && perr.Line <= len(lines) && perr.Column > 0 {
		sb.WriteString("  " + lines[perr.Line-1] + "\n")
		sb.WriteString("  " + strings.Repeat(" ", perr.Column-1) + "^\n")
	}
	return sb.String()
}

// Start starts the REPL with line editing, history, and tab completion
func Start(out io.Writer, version string, session *Session) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(filterCompletions)

	historyFile := filepath.Join(os.TempDir(), ".pkt_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, "pkt", version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit, ':help' for commands")
	fmt.Fprintln(out, "")

	var buf inputBuffer
	for {
		prompt := PROMPT
		if buf.pending() {
			prompt = CONTINUATION_PROMPT
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if buf.pending() {
					fmt.Fprintln(out, "^C (cleared)")
				} else {
					fmt.Fprintln(out, "^C")
				}
				buf.reset()
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		full, ok := buf.add(input)
		if !ok {
			continue
		}

		if full != "" {
			line.AppendHistory(full)
		}
		result, quit := session.Eval(full)
		io.WriteString(out, result)
		if quit {
			return
		}
	}
}

// inputBuffer collects prompt lines until the brackets balance. Lines are
// kept apart with '\n', which separates tokens the same way it does in a
// file, so "[1" followed by "2]" is an error and never [12].
type inputBuffer struct {
	lines []string
}

// add appends a line. It returns the whole input and true once the input is
// complete, and clears the buffer for the next one.
func (b *inputBuffer) add(line string) (string, bool) {
	b.lines = append(b.lines, strings.TrimSpace(line))
	full := strings.Join(b.lines, "\n")
	if NeedsMoreInput(full) {
		return full, false
	}
	b.reset()
	return full, true
}

func (b *inputBuffer) pending() bool {
	return len(b.lines) > 0
}

func (b *inputBuffer) reset() {
	b.lines = b.lines[:0]
}

// filterCompletions returns completion suggestions based on current input
func filterCompletions(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t") {
		return nil
	}
	var matches []string
	for _, word := range completionWords {
		if strings.HasPrefix(word, trimmed) {
			matches = append(matches, word)
		}
	}
	return matches
}

// NeedsMoreInput reports whether input has more '[' than ']', so a packet
// can be typed across several lines.
func NeedsMoreInput(input string) bool {
	if strings.HasPrefix(strings.TrimSpace(input), ":") {
		return false
	}
	depth := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
	}
	return depth > 0
}
