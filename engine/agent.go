package engine

import (
	"math"
	"sort"
)

const costTieBreak = 0.01

// selectTarget picks the card the active player works toward and records it
// as that player's target. chosen is false when no card passed the
// reachability checks and one was drawn at random instead; ok is false when
// there is nothing left to pick at all.
func (g *Game) selectTarget() (slot int, chosen, ok bool) {
	s := &g.state
	p := s.Active
	player := &s.Players[p]
	coupons := player.Coupons()

	visible := s.Visible()
	sort.SliceStable(visible, func(i, j int) bool {
		return s.Tableau[visible[i]].Card.Points > s.Tableau[visible[j]].Card.Points
	})

	best := math.MaxFloat64
	slot = -1
	for _, i := range visible {
		card := s.Tableau[i].Card
		if p == len(s.Players)-1 && card.Points == 0 {
			continue
		}
		if g.targetedByOther(p, card.ID) {
			continue
		}

		need := NetCost(card.Cost, coupons, player.Chips)
		if !g.bankCovers(need) {
			continue
		}
		excess := Excess(card.Cost, coupons, player.Chips)
		if player.Chips.Sum()+need.Sum()-excess.Sum() > g.cfg.ChipLimit {
			continue
		}

		perTurn := g.cfg.ChipsPerTurn
		turns := float64(max(need.Max(), (need.Sum()+perTurn-1)/perTurn)) + costTieBreak*float64(need.Sum())
		stocked := 0
		for c, n := range need {
			if n > 0 && s.Bank[c] > 0 {
				stocked++
			}
		}
		if turns < best && stocked >= min(3, need.NonZero()) {
			best = turns
			slot = i
		}
	}

	if slot >= 0 {
		g.targets[p] = s.Tableau[slot].Card.ID
		return slot, true, true
	}

	g.targets[p] = -1
	var open []int
	for _, i := range s.Visible() {
		if !g.targetedByOther(p, s.Tableau[i].Card.ID) {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return -1, false, false
	}
	return open[g.rng.Intn(len(open))], false, true
}

func (g *Game) targetedByOther(player, cardID int) bool {
	for q, id := range g.targets {
		if q != player && id == cardID {
			return true
		}
	}
	return false
}

func (g *Game) bankCovers(need Chips) bool {
	for c, n := range need {
		if g.state.Bank[c] < n {
			return false
		}
	}
	return true
}
