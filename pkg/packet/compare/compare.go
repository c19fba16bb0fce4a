// Package compare orders packet trees.
//
// Compare is three-valued: two packets can be in order, out of order, or
// undetermined when nothing at this level decides. Undetermined is a real
// outcome, distinct from both orderings, so that an enclosing container can
// keep looking at its remaining elements.
package compare

import (
	"sort"

	"github.com/sambeau/distress/pkg/packet/ast"
)

// Result is the outcome of comparing two packets
type Result int

const (
	Undetermined Result = iota
	InOrder
	OutOfOrder
)

// String returns a short name for the result
func (r Result) String() string {
	switch r {
	case InOrder:
		return "in-order"
	case OutOfOrder:
		return "out-of-order"
	default:
		return "undetermined"
	}
}

// Sentence describes the result as a full sentence for traces.
func (r Result) Sentence() string {
	switch r {
	case InOrder:
		return "packets are in the right order"
	case OutOfOrder:
		return "packets are not in the right order"
	default:
		return "comparison result is undetermined"
	}
}

// Determined reports whether r is InOrder or OutOfOrder.
func (r Result) Determined() bool {
	return r == InOrder || r == OutOfOrder
}

// Compare decides whether left and right are in the right order.
//
// Integers compare numerically. Lists compare element by element and the
// first decided pair wins; if none decides, the shorter list comes first.
// When an integer meets a list the integer is treated as a one-element list.
func Compare(left, right ast.Expression) Result {
	switch l := left.(type) {
	case *ast.Scalar:
		switch r := right.(type) {
		case *ast.Scalar:
			return compareScalars(l.Value, r.Value)
		case *ast.Container:
			return compareContainers(ast.Wrap(l), r)
		}
	case *ast.Container:
		switch r := right.(type) {
		case *ast.Scalar:
			return compareContainers(l, ast.Wrap(r))
		case *ast.Container:
			return compareContainers(l, r)
		}
	}
	return Undetermined
}

func compareScalars(left, right uint64) Result {
	switch {
	case left < right:
		return InOrder
	case left > right:
		return OutOfOrder
	default:
		return Undetermined
	}
}

func compareContainers(left, right *ast.Container) Result {
	n := min(len(left.Elements), len(right.Elements))
	for i := 0; i < n; i++ {
		if result := Compare(left.Elements[i], right.Elements[i]); result.Determined() {
			return result
		}
	}
	return compareScalars(uint64(len(left.Elements)), uint64(len(right.Elements)))
}

// Less reports whether a sorts before b. Undetermined counts as not less.
func Less(a, b ast.Expression) bool {
	return Compare(a, b) == InOrder
}

// Sort sorts packets in place. The sort is stable: packets that compare
// Undetermined keep their relative input order.
func Sort(packets []ast.Expression) {
	sort.SliceStable(packets, func(i, j int) bool {
		return Less(packets[i], packets[j])
	})
}

// SortIndices returns the permutation that sorts packets without touching
// the slice: result[k] is the input index of the packet at sorted position k.
func SortIndices(packets []ast.Expression) []int {
	order := make([]int, len(packets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return Less(packets[order[i]], packets[order[j]])
	})
	return order
}
