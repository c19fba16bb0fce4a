// Package packet provides the public API for reading and ordering packets.
//
// A packet is a bracketed list of unsigned integers and nested lists, such as
// [1,[2,3],4]. Input holds one packet per line; blank lines are ignored.
//
// Example:
//
//	packets, err := packet.Parse("[1,1,3,1,1]\n[1,1,5,1,1]\n")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(packet.Compare(packets[0], packets[1])) // in-order
package packet

import (
	"fmt"

	"github.com/sambeau/distress/pkg/packet/ast"
	"github.com/sambeau/distress/pkg/packet/compare"
	"github.com/sambeau/distress/pkg/packet/parser"
)

// DefaultDividers are the divider packets injected before sorting.
var DefaultDividers = []string{"[[2]]", "[[6]]"}

// Parse tokenizes and parses every packet in input.
func Parse(input string, opts ...parser.Option) ([]ast.Expression, error) {
	return parser.ParseString(input, opts...)
}

// ParseOne parses input that must hold exactly one packet.
func ParseOne(input string) (ast.Expression, error) {
	packets, err := parser.ParseString(input)
	if err != nil {
		return nil, err
	}
	if len(packets) != 1 {
		return nil, fmt.Errorf("expected exactly one packet, got %d", len(packets))
	}
	return packets[0], nil
}

// MustParse parses a single packet and panics on error. Useful for tests and
// initialization.
func MustParse(input string) ast.Expression {
	p, err := ParseOne(input)
	if err != nil {
		panic(fmt.Sprintf("packet.MustParse: %v", err))
	}
	return p
}

// Validate checks if input is a well-formed packet list.
func Validate(input string) error {
	_, err := parser.ParseString(input)
	return err
}

// Compare reports whether left and right are in the right order.
func Compare(left, right ast.Expression) compare.Result {
	return compare.Compare(left, right)
}

// Divider builds the divider packet [[v]].
func Divider(v uint64) ast.Expression {
	return ast.Wrap(ast.Wrap(ast.NewScalar(v)))
}

// ParseDividers parses divider specs such as "[[2]]". A nil or empty list
// yields the default dividers.
func ParseDividers(specs []string) ([]ast.Expression, error) {
	if len(specs) == 0 {
		specs = DefaultDividers
	}
	dividers := make([]ast.Expression, 0, len(specs))
	for _, spec := range specs {
		d, err := ParseOne(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid divider %q: %w", spec, err)
		}
		dividers = append(dividers, d)
	}
	return dividers, nil
}
