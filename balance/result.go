package balance

import "fmt"

// Result holds, for every card variant, the rounds in which it was first
// bought across all trials. Bags only grow and their order carries no meaning.
type Result struct {
	Trials int
	bags   [][]int
}

// NewResult wraps precomputed bags, mainly for tests and replays.
func NewResult(trials int, bags [][]int) *Result {
	return &Result{Trials: trials, bags: bags}
}

func (r *Result) Bag(i int) []int {
	return r.bags[i]
}

func (r *Result) Variants() int {
	return len(r.bags)
}

// PatternSpeed is how soon a pattern tends to be bought: the average over its
// color variants of the earliest round each variant was ever bought.
type PatternSpeed struct {
	Pattern int     `json:"pattern"`
	Speed   float64 `json:"speed"`
}

// Speeds aggregates the bags per pattern. Variants are grouped by pattern in
// runs of colors, matching the layout produced by the deck builder.
func (r *Result) Speeds(colors int) []PatternSpeed {
	speeds := make([]PatternSpeed, 0, len(r.bags)/colors)
	for p := 0; p < len(r.bags)/colors; p++ {
		total := 0
		for c := 0; c < colors; c++ {
			total += minTurn(r.bags[p*colors+c], p*colors+c)
		}
		speeds = append(speeds, PatternSpeed{Pattern: p, Speed: float64(total) / float64(colors)})
	}
	return speeds
}

func minTurn(bag []int, variant int) int {
	if len(bag) == 0 {
		panic(fmt.Sprintf("balance: variant %d was never bought", variant))
	}
	m := bag[0]
	for _, t := range bag[1:] {
		if t < m {
			m = t
		}
	}
	return m
}
