package engine

import (
	"fmt"

	"go-tycoon/entities"
)

// Chips is a per-color chip count.
type Chips [entities.ColorCount]int

func (c Chips) Sum() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

func (c Chips) Max() int {
	m := 0
	for _, n := range c {
		m = max(m, n)
	}
	return m
}

func (c Chips) NonZero() int {
	n := 0
	for _, v := range c {
		if v > 0 {
			n++
		}
	}
	return n
}

type PlayerState struct {
	Name  string          `json:"name"`
	Chips Chips           `json:"chips"`
	Cards []entities.Card `json:"cards"`
	Score int             `json:"score"`
}

// Coupons is the standing discount per color from the cards a player owns.
func (p *PlayerState) Coupons() Chips {
	var coupons Chips
	for _, card := range p.Cards {
		coupons[card.Color] += card.CouponValue
	}
	return coupons
}

// Slot is one tableau position. An empty slot keeps its place in the grid.
type Slot struct {
	Card     entities.Card `json:"card"`
	Occupied bool          `json:"occupied"`
}

type State struct {
	Bank    Chips           `json:"bank"`
	Players []PlayerState   `json:"players"`
	Tableau []Slot          `json:"tableau"`
	Draw    []entities.Card `json:"draw"`
	Active  int             `json:"active"`
	Turn    int             `json:"turn"`
}

// Visible returns the indexes of the occupied tableau slots.
func (s *State) Visible() []int {
	var idx []int
	for i, slot := range s.Tableau {
		if slot.Occupied {
			idx = append(idx, i)
		}
	}
	return idx
}

// CheckConservation verifies that no chip was created or destroyed.
func (s *State) CheckConservation(initial Chips) error {
	for c := range initial {
		total := s.Bank[c]
		for _, p := range s.Players {
			if p.Chips[c] < 0 {
				return fmt.Errorf("engine: %s holds %d chips of color %d", p.Name, p.Chips[c], c)
			}
			total += p.Chips[c]
		}
		if s.Bank[c] < 0 || total != initial[c] {
			return fmt.Errorf("engine: color %d has bank %d and %d in total, want %d", c, s.Bank[c], total, initial[c])
		}
	}
	return nil
}

// NetCost is what a player still has to gather for a card: the cost after
// coupons and held chips, floored at zero per color.
func NetCost(cost entities.CostVector, coupons, chips Chips) Chips {
	var need Chips
	for c := range cost {
		need[c] = max(0, cost[c]-coupons[c]-chips[c])
	}
	return need
}

// EffectiveCost is the cost after coupons, floored at zero per color.
func EffectiveCost(cost entities.CostVector, coupons Chips) Chips {
	var eff Chips
	for c := range cost {
		eff[c] = max(0, cost[c]-coupons[c])
	}
	return eff
}

// Excess counts held chips beyond what the card still asks for.
func Excess(cost entities.CostVector, coupons, chips Chips) Chips {
	eff := EffectiveCost(cost, coupons)
	var excess Chips
	for c := range cost {
		excess[c] = max(0, chips[c]-eff[c])
	}
	return excess
}
