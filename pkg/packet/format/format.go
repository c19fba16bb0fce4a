// Package format prints packet trees.
//
// Compact output is exactly the input syntax. Pretty output breaks long lists
// over several lines; a list stays on one line when its compact form fits
// within InlineThreshold characters. Line breaks are bare newlines, which the
// lexer skips, so pretty output parses back to the same packets.
package format

import (
	"strings"

	"github.com/sambeau/distress/pkg/packet/ast"
)

// Line width - the target maximum line length
const MaxLineWidth = 80

// InlineThreshold is the widest a list may be and still print inline
var InlineThreshold = MaxLineWidth / 2

// Compact renders e in input syntax, e.g. [1,[2,3]].
func Compact(e ast.Expression) string {
	return e.String()
}

// Pretty renders e over multiple lines where it is too wide to fit inline.
func Pretty(e ast.Expression) string {
	p := NewPrinter()
	p.expression(e)
	return p.String()
}

// All renders packets one per line, compact or pretty.
func All(packets []ast.Expression, pretty bool) string {
	var sb strings.Builder
	for _, e := range packets {
		if pretty {
			sb.WriteString(Pretty(e))
		} else {
			sb.WriteString(Compact(e))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Printer manages formatting state and output
type Printer struct {
	output strings.Builder
}

// NewPrinter creates a new Printer instance
func NewPrinter() *Printer {
	return &Printer{}
}

// String returns the formatted output
func (p *Printer) String() string {
	return p.output.String()
}

// Reset clears the printer state for reuse
func (p *Printer) Reset() {
	p.output.Reset()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

// newline breaks the line. No indentation: the packet alphabet has no spaces.
func (p *Printer) newline() {
	p.output.WriteByte('\n')
}

func (p *Printer) expression(e ast.Expression) {
	c, ok := e.(*ast.Container)
	if !ok {
		p.write(e.String())
		return
	}

	compact := c.String()
	if len(c.Elements) == 0 || len(compact) <= InlineThreshold {
		p.write(compact)
		return
	}

	p.write("[")
	for i, el := range c.Elements {
		if i > 0 {
			p.write(",")
		}
		p.newline()
		p.expression(el)
	}
	p.newline()
	p.write("]")
}
