package entities

// ColorCount is the number of sectors; every cost vector has one entry per sector.
const ColorCount = 6

// CostVector is the per-color cost of a card.
type CostVector [ColorCount]int

func (v CostVector) Sum() int {
	sum := 0
	for _, c := range v {
		sum += c
	}
	return sum
}

func (v CostVector) Max() int {
	max := 0
	for _, c := range v {
		if c > max {
			max = c
		}
	}
	return max
}

// MinNonZero returns the smallest positive entry, or 0 for an all-zero vector.
func (v CostVector) MinNonZero() int {
	min := 0
	for _, c := range v {
		if c > 0 && (min == 0 || c < min) {
			min = c
		}
	}
	return min
}

// NonZero counts the colors a card requires.
func (v CostVector) NonZero() int {
	n := 0
	for _, c := range v {
		if c > 0 {
			n++
		}
	}
	return n
}

// Rotate moves the last j entries to the front.
func (v CostVector) Rotate(j int) CostVector {
	j = ((j % ColorCount) + ColorCount) % ColorCount
	var out CostVector
	for i := range v {
		out[(i+j)%ColorCount] = v[i]
	}
	return out
}

// CostPattern is an accepted Lyndon word and its canonical (unrotated) cost.
type CostPattern struct {
	Index int        `json:"index"` // 1-based word index, drives the cost tier
	Word  []int      `json:"word"`
	Cost  CostVector `json:"cost"`
}

// CardCost is one colored variant of a pattern, used only while balancing.
type CardCost struct {
	Index   int        `json:"index"`   // position in the flat variant list
	Pattern int        `json:"pattern"` // 0-based position of the pattern
	Color   int        `json:"color"`
	Cost    CostVector `json:"cost"`
}

// CardInfo is the colorless balancing record of one pattern.
type CardInfo struct {
	ID      int        `json:"id"`
	Pattern int        `json:"pattern"`
	Cost    CostVector `json:"cost"`
	Points  int        `json:"points"`
	Bonus   int        `json:"bonus"`
}

// Card is a printed card. Acquired is zero on the template and set only on
// the stamped copy a player receives.
type Card struct {
	ID          int        `json:"id"`
	Cost        CostVector `json:"cost"`
	Points      int        `json:"points"`
	Bonus       int        `json:"bonus"`
	Color       int        `json:"color"`
	CouponValue int        `json:"couponValue"`
	Name        string     `json:"name"`
	Acquired    int        `json:"acquired,omitempty"`
}

// Stamped returns a copy of the card carrying its acquisition sequence.
func (c Card) Stamped(seq int) Card {
	c.Acquired = seq
	return c
}
