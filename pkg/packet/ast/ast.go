// Package ast defines the tree built by the packet parser.
package ast

import (
	"strconv"
	"strings"
)

// Expression is a node in a packet tree: either a *Scalar or a *Container.
// Trees are built once by the parser and never mutated afterwards.
type Expression interface {
	String() string
	expressionNode()
}

// Scalar holds a single unsigned integer.
type Scalar struct {
	Value uint64
}

func (s *Scalar) expressionNode() {}

func (s *Scalar) String() string {
	return strconv.FormatUint(s.Value, 10)
}

// Container holds an ordered, possibly empty, list of child expressions.
// A container exclusively owns its children.
type Container struct {
	Elements []Expression
}

func (c *Container) expressionNode() {}

func (c *Container) String() string {
	var sb strings.Builder
	writeCompact(&sb, c)
	return sb.String()
}

// Len returns the number of direct children.
func (c *Container) Len() int {
	return len(c.Elements)
}

func writeCompact(sb *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *Scalar:
		sb.WriteString(strconv.FormatUint(n.Value, 10))
	case *Container:
		sb.WriteByte('[')
		for i, el := range n.Elements {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeCompact(sb, el)
		}
		sb.WriteByte(']')
	}
}

// NewScalar returns a scalar holding v.
func NewScalar(v uint64) *Scalar {
	return &Scalar{Value: v}
}

// NewContainer returns a container holding elems.
func NewContainer(elems ...Expression) *Container {
	if elems == nil {
		elems = []Expression{}
	}
	return &Container{Elements: elems}
}

// Wrap returns a one-element container holding e.
func Wrap(e Expression) *Container {
	return &Container{Elements: []Expression{e}}
}

// Clone returns a deep copy of e.
func Clone(e Expression) Expression {
	switch n := e.(type) {
	case *Scalar:
		return &Scalar{Value: n.Value}
	case *Container:
		elems := make([]Expression, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = Clone(el)
		}
		return &Container{Elements: elems}
	}
	return nil
}

// Depth returns the nesting depth of e. A scalar has depth 0 and an empty
// container has depth 1.
func Depth(e Expression) int {
	c, ok := e.(*Container)
	if !ok {
		return 0
	}
	max := 0
	for _, el := range c.Elements {
		if d := Depth(el); d > max {
			max = d
		}
	}
	return max + 1
}
