// Package solve runs the two packet checks over a parsed input.
//
// The pair check compares packets (1,2), (3,4), ... and sums the 1-based
// indices of the pairs that are in the right order. The divider check appends
// divider packets, sorts everything, and multiplies the 1-based positions the
// dividers end up at.
package solve

import (
	"time"

	"github.com/sambeau/distress/pkg/packet/ast"
	"github.com/sambeau/distress/pkg/packet/compare"
	perrors "github.com/sambeau/distress/pkg/packet/errors"
	"github.com/sambeau/distress/pkg/packet/packet"
)

// PairResult is the verdict for one pair of packets.
type PairResult struct {
	Index  int // 1-based
	Left   ast.Expression
	Right  ast.Expression
	Result compare.Result
}

// DividerPosition records where a divider landed after sorting.
type DividerPosition struct {
	Packet   ast.Expression
	Position int // 1-based
}

// Report holds the results of a full run.
type Report struct {
	Packets      int
	Pairs        []PairResult
	InOrderSum   int
	Undetermined int
	Sorted       []ast.Expression
	Dividers     []DividerPosition
	DecoderKey   int
	Elapsed      time.Duration
}

// Options configures Run.
type Options struct {
	Dividers []ast.Expression // nil means packet.DefaultDividers
	Logger   packet.Logger    // nil means packet.DefaultLogger
}

// Pairs checks consecutive pairs of packets. It fails when the packet count
// is odd. Undetermined pairs are returned but never counted in the sum.
func Pairs(packets []ast.Expression, logger packet.Logger) ([]PairResult, int, error) {
	if logger == nil {
		logger = packet.DefaultLogger
	}
	if len(packets)%2 != 0 {
		return nil, 0, perrors.New(perrors.CodeOddPacketCount, map[string]any{
			"Count": len(packets),
		})
	}

	results := make([]PairResult, 0, len(packets)/2)
	sum := 0
	for i := 0; i+1 < len(packets); i += 2 {
		pr := PairResult{
			Index:  i/2 + 1,
			Left:   packets[i],
			Right:  packets[i+1],
			Result: compare.Compare(packets[i], packets[i+1]),
		}
		if pr.Result == compare.InOrder {
			sum += pr.Index
		}
		logger.LogLine(pr.Left)
		logger.LogLine(pr.Right)
		logger.LogLine(pr.Result.Sentence())
		logger.LogLine()
		results = append(results, pr)
	}
	logger.LogLine("sum of indices:", sum)
	return results, sum, nil
}

// Dividers sorts packets together with the dividers and returns the sorted
// list, each divider's position and the product of those positions.
// Dividers are located by identity, so an input packet that happens to equal
// a divider is never mistaken for one. Matching by structure would report
// the first equal packet instead, and the key would change whenever the
// input already contains [[2]] or [[6]].
func Dividers(packets, dividers []ast.Expression, logger packet.Logger) ([]ast.Expression, []DividerPosition, int) {
	if logger == nil {
		logger = packet.DefaultLogger
	}

	all := make([]ast.Expression, 0, len(packets)+len(dividers))
	all = append(all, packets...)
	all = append(all, dividers...)

	order := compare.SortIndices(all)
	sorted := make([]ast.Expression, len(all))
	positions := make([]DividerPosition, len(dividers))
	for pos, idx := range order {
		sorted[pos] = all[idx]
		if idx >= len(packets) {
			d := idx - len(packets)
			positions[d] = DividerPosition{Packet: all[idx], Position: pos + 1}
		}
		logger.LogLine(all[idx])
	}

	product := 1
	for _, p := range positions {
		product *= p.Position
	}
	logger.LogLine("product:", product)
	return sorted, positions, product
}

// Run performs both checks and times them.
func Run(packets []ast.Expression, opts Options) (*Report, error) {
	start := time.Now()

	dividers := opts.Dividers
	if dividers == nil {
		var err error
		dividers, err = packet.ParseDividers(nil)
		if err != nil {
			return nil, err
		}
	}

	pairs, sum, err := Pairs(packets, opts.Logger)
	if err != nil {
		return nil, err
	}

	sorted, positions, key := Dividers(packets, dividers, opts.Logger)

	report := &Report{
		Packets:    len(packets),
		Pairs:      pairs,
		InOrderSum: sum,
		Sorted:     sorted,
		Dividers:   positions,
		DecoderKey: key,
		Elapsed:    time.Since(start),
	}
	for _, p := range pairs {
		if !p.Result.Determined() {
			report.Undetermined++
		}
	}
	return report, nil
}
