package pattern

import "go-tycoon/entities"

// Shift is the rotation applied to the variant of color for a pattern.
func Shift(p entities.CostPattern, color int, opts Options) int {
	if opts.Rotation == RotationPlain {
		return color % opts.Colors
	}
	return (color + p.Index - 1) % opts.Colors
}

// BuildCardCosts expands every pattern into one rotated variant per color.
// The result is grouped by pattern, so variant i of pattern p sits at
// p*Colors+i and is colored i.
func BuildCardCosts(patterns []entities.CostPattern, opts Options) []entities.CardCost {
	costs := make([]entities.CardCost, 0, len(patterns)*opts.Colors)
	for p, pat := range patterns {
		for color := 0; color < opts.Colors; color++ {
			costs = append(costs, entities.CardCost{
				Index:   len(costs),
				Pattern: p,
				Color:   color,
				Cost:    pat.Cost.Rotate(Shift(pat, color, opts)),
			})
		}
	}
	return costs
}
