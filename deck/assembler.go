package deck

import (
	"fmt"
	"math"
	"sort"

	"go-tycoon/balance"
	"go-tycoon/entities"
)

const maxPoints = 5

// ExcludeRule drops every pattern that ends up with exactly these values.
type ExcludeRule struct {
	Points int `json:"points" mapstructure:"points"`
	Bonus  int `json:"bonus" mapstructure:"bonus"`
}

type Rules struct {
	// Exclude reports whether a pattern with the given values is left out of
	// the deck. It sees the bonus before the coupon rule can clear it.
	Exclude func(points, bonus int) bool
}

// ExcludeAny builds rules that drop patterns matching any of the given pairs.
func ExcludeAny(rules ...ExcludeRule) Rules {
	return Rules{Exclude: func(points, bonus int) bool {
		for _, r := range rules {
			if r.Points == points && r.Bonus == bonus {
				return true
			}
		}
		return false
	}}
}

// DefaultRules leaves out the 5-point patterns carrying a +4 bonus, which
// keeps the printed deck to a whole number of sheets.
func DefaultRules() Rules {
	return ExcludeAny(ExcludeRule{Points: 5, Bonus: 4})
}

// Ranked is one pattern in speed order with the values assigned to it.
type Ranked struct {
	Pattern  int                 `json:"pattern"`
	Index    int                 `json:"index"`
	Word     []int               `json:"word"`
	Cost     entities.CostVector `json:"cost"`
	Speed    float64             `json:"speed"`
	Points   int                 `json:"points"`
	Bonus    int                 `json:"bonus"`
	Coupons  int                 `json:"coupons"`
	Excluded bool                `json:"excluded"`
	InfoID   int                 `json:"infoId"` // -1 when excluded
}

type Deck struct {
	Infos   []entities.CardInfo `json:"infos"`
	Cards   []entities.Card     `json:"cards"`
	Ranking []Ranked            `json:"ranking"`
}

// Points converts a speed to a point value. Faster patterns are worth less;
// the value is capped at 5 but never floored, so slow-to-zero and negative
// values behave the same downstream.
func Points(speed float64) int {
	return min(maxPoints, int(math.RoundToEven(speed))-3)
}

// Bonus is awarded to scoring patterns whose every required color costs at
// least 3 and whose total is at least 6.
func Bonus(points int, cost entities.CostVector) int {
	if points > 0 && cost.MinNonZero() >= 3 && cost.Sum() >= 6 {
		return (cost.Max() + 1) / 2
	}
	return 0
}

// Assemble ranks the patterns by speed, assigns points, bonuses and coupon
// values, and prints colors-many cards per kept pattern. names[c] is the name
// pool for color c; a pool shorter than the number of kept patterns is a
// programming error and panics.
func Assemble(patterns []entities.CostPattern, costs []entities.CardCost, speeds []balance.PatternSpeed, names [][]string, rules Rules) (*Deck, error) {
	colors := entities.ColorCount
	if len(costs) != len(patterns)*colors {
		return nil, fmt.Errorf("deck: %d variants for %d patterns", len(costs), len(patterns))
	}
	if len(speeds) != len(patterns) {
		return nil, fmt.Errorf("deck: %d speeds for %d patterns", len(speeds), len(patterns))
	}
	if len(names) != colors {
		return nil, fmt.Errorf("deck: %d name pools for %d colors", len(names), colors)
	}
	if rules.Exclude == nil {
		rules.Exclude = func(int, int) bool { return false }
	}

	ordered := make([]balance.PatternSpeed, len(speeds))
	copy(ordered, speeds)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Speed != ordered[j].Speed {
			return ordered[i].Speed < ordered[j].Speed
		}
		return patterns[ordered[i].Pattern].Cost.Sum() < patterns[ordered[j].Pattern].Cost.Sum()
	})

	d := &Deck{}
	for _, s := range ordered {
		pat := patterns[s.Pattern]
		points := Points(s.Speed)
		bonus := Bonus(points, pat.Cost)
		rank := Ranked{
			Pattern: s.Pattern,
			Index:   pat.Index,
			Word:    pat.Word,
			Cost:    pat.Cost,
			Speed:   s.Speed,
			Points:  points,
			InfoID:  -1,
		}

		if rules.Exclude(points, bonus) {
			rank.Bonus = bonus
			rank.Excluded = true
			d.Ranking = append(d.Ranking, rank)
			continue
		}

		coupons := 1
		if points == 4 && pat.Cost.NonZero() >= 3 {
			coupons = 2
			bonus = 0
		}

		infoID := len(d.Infos)
		d.Infos = append(d.Infos, entities.CardInfo{
			ID:      infoID,
			Pattern: s.Pattern,
			Cost:    pat.Cost,
			Points:  points,
			Bonus:   bonus,
		})
		for c := 0; c < colors; c++ {
			if infoID >= len(names[c]) {
				panic(fmt.Sprintf("deck: color %d has %d names, card %d needs index %d", c, len(names[c]), len(d.Cards), infoID))
			}
			d.Cards = append(d.Cards, entities.Card{
				ID:          len(d.Cards),
				Cost:        costs[s.Pattern*colors+c].Cost,
				Points:      points,
				Bonus:       bonus,
				Color:       c,
				CouponValue: coupons,
				Name:        names[c][infoID],
			})
		}

		rank.Bonus = bonus
		rank.Coupons = coupons
		rank.InfoID = infoID
		d.Ranking = append(d.Ranking, rank)
	}
	return d, nil
}
