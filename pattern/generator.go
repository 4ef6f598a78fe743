package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"go-tycoon/entities"
)

type RotationScheme string

const (
	// RotationCostShift offsets each pattern's rotation by its word index so
	// the expensive slot lands on a different color from pattern to pattern.
	RotationCostShift RotationScheme = "cost-shift"
	// RotationPlain rotates variant i by i.
	RotationPlain RotationScheme = "plain"
)

type Options struct {
	Colors           int            `json:"colors" mapstructure:"colors"`
	Alphabet         int            `json:"alphabet" mapstructure:"alphabet"`
	MaxColorsPerCard int            `json:"maxColorsPerCard" mapstructure:"max_colors_per_card"`
	Rotation         RotationScheme `json:"rotation" mapstructure:"rotation"`
}

func DefaultOptions() Options {
	return Options{
		Colors:           entities.ColorCount,
		Alphabet:         3,
		MaxColorsPerCard: 4,
		Rotation:         RotationCostShift,
	}
}

func (o Options) Validate() error {
	if o.Colors != entities.ColorCount {
		return fmt.Errorf("pattern: colors must be %d, got %d", entities.ColorCount, o.Colors)
	}
	if o.Alphabet < 2 || o.Alphabet > 3 {
		return fmt.Errorf("pattern: alphabet must be 2 or 3, got %d", o.Alphabet)
	}
	if o.MaxColorsPerCard < 1 || o.MaxColorsPerCard > o.Colors {
		return fmt.Errorf("pattern: max colors per card must be in [1,%d], got %d", o.Colors, o.MaxColorsPerCard)
	}
	switch o.Rotation {
	case RotationCostShift, RotationPlain:
	default:
		return fmt.Errorf("pattern: unknown rotation scheme %q", o.Rotation)
	}
	return nil
}

// Accept applies the card-shape filter to a word:
// at least colors-maxColorsPerCard zeros, at least one 1, and at most a
// single 2 which must sit in the last position.
func Accept(word []int, opts Options) bool {
	var counts [3]int
	for _, d := range word {
		if d < 0 || d > 2 {
			return false
		}
		counts[d]++
	}
	if counts[0] == 0 || counts[0] < opts.Colors-opts.MaxColorsPerCard {
		return false
	}
	if counts[1] == 0 {
		return false
	}
	if counts[2] > 0 {
		if counts[2] > 1 || counts[2] > counts[1] {
			return false
		}
		if word[len(word)-1] != 2 {
			return false
		}
	}
	return true
}

// BaseCost is the price of a 1 digit for the wordIndex-th accepted pattern.
func BaseCost(wordIndex int) int {
	return (wordIndex + 3) / 4
}

// CostOf substitutes digit costs into a word: 0 is free, 1 costs the base
// and 2 costs half as much again, rounded up.
func CostOf(word []int, wordIndex int) entities.CostVector {
	base := BaseCost(wordIndex)
	costs := [3]int{0, base, base + (base+1)/2}
	var v entities.CostVector
	for i, d := range word {
		v[i] = costs[d]
	}
	return v
}

// Generate enumerates the accepted cost patterns, cheapest shapes last.
// Words are consumed in reverse lexicographic order, skipping the leading
// all-zero word, and numbered from 1 as they pass the filter.
func Generate(opts Options) []entities.CostPattern {
	words := AllWords(opts.Colors, opts.Alphabet)
	if len(words) == 0 {
		return nil
	}
	words = words[1:]

	var patterns []entities.CostPattern
	wordIndex := 0
	for i := len(words) - 1; i >= 0; i-- {
		word := words[i]
		if !Accept(word, opts) {
			continue
		}
		wordIndex++
		patterns = append(patterns, entities.CostPattern{
			Index: wordIndex,
			Word:  word,
			Cost:  CostOf(word, wordIndex),
		})
	}
	return patterns
}

// WordString renders a word as its digit string, e.g. "011102".
func WordString(word []int) string {
	var sb strings.Builder
	for _, d := range word {
		sb.WriteString(strconv.Itoa(d))
	}
	return sb.String()
}
