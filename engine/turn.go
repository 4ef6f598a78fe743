package engine

import (
	"fmt"

	"go-tycoon/dto"
	"go-tycoon/entities"
	"go-tycoon/utils"
)

// buy purchases the card in slot. Any missing chips are made up with
// wildcards, each bought by turning three excess chips back in to the bank.
func (g *Game) buy(slot int, need, excess Chips) {
	s := &g.state
	p := s.Active
	player := &s.Players[p]
	card := s.Tableau[slot].Card
	coupons := player.Coupons()

	wild := 0
	if need.Sum() > 0 {
		var turnedIn Chips
		for need.Sum() > wild {
			for k := 0; k < 3; k++ {
				c := g.randomColor(excess)
				turnedIn[c]++
				excess[c]--
				player.Chips[c]--
				s.Bank[c]++
			}
			wild++
		}
		g.result.Highlights.Wildcard++
		g.emit(dto.Event{
			Kind:      dto.EventWildcard,
			Chips:     turnedIn,
			Wildcards: wild,
			CardID:    card.ID,
			CardName:  card.Name,
			Message:   g.wildcardMessage(player.Name, turnedIn, wild),
		})
	}

	g.lastBuyTurn = s.Turn
	effective := EffectiveCost(card.Cost, coupons)
	if g.usesDoubleCoupon(player, card) {
		g.result.Highlights.DoubleCoupon++
	}

	var paid Chips
	for c := range effective {
		pay := effective[c]
		for pay > player.Chips[c] && wild > 0 {
			pay--
			wild--
		}
		if pay > player.Chips[c] {
			panic(fmt.Sprintf("engine: %s owes %d of color %d for %s but holds %d",
				player.Name, pay, c, card.Name, player.Chips[c]))
		}
		player.Chips[c] -= pay
		s.Bank[c] += pay
		paid[c] = pay
	}
	noChips := effective.Sum() == 0

	g.acquired++
	player.Cards = append(player.Cards, card.Stamped(g.acquired))
	g.targets[p] = -1

	bonus := 0
	if card.Points > 0 {
		player.Score += card.Points
		if noChips && card.Bonus > 0 {
			bonus = card.Bonus
			player.Score += bonus
			g.result.BonusAwards[bonus]++
			g.result.Highlights.BonusPoints++
		}
	}
	g.emit(dto.Event{
		Kind:     dto.EventBuy,
		Chips:    paid,
		CardID:   card.ID,
		CardName: card.Name,
		Bonus:    bonus,
		Message:  g.buyMessage(player.Name, card.Name, paid, noChips, bonus),
	})

	replacement := ""
	if len(s.Draw) > 0 {
		var next entities.Card
		next, s.Draw = utils.TakeRandom(s.Draw, g.rng)
		s.Tableau[slot] = Slot{Card: next, Occupied: true}
		replacement = next.Name
	} else {
		s.Tableau[slot] = Slot{}
	}
	g.emit(dto.Event{
		Kind:        dto.EventReplenish,
		CardID:      card.ID,
		CardName:    card.Name,
		Replacement: replacement,
		Message:     replenishMessage(replacement),
	})
}

// usesDoubleCoupon reports whether a double-coupon card the player owns
// discounts a color the card costs.
func (g *Game) usesDoubleCoupon(player *PlayerState, card entities.Card) bool {
	for _, owned := range player.Cards {
		if owned.CouponValue > 1 && card.Cost[owned.Color] > 0 {
			return true
		}
	}
	return false
}

// takeChips takes up to ChipsPerTurn chips of distinct colors: the colors
// needed most first, then any needed color, then a speculative chip while
// there is room. It ends by handing back chips above the limit.
func (g *Game) takeChips(card entities.Card, need Chips) {
	s := &g.state
	player := &s.Players[s.Active]
	coupons := player.Coupons()

	var taken, extra Chips
	picked := make(map[int]bool)
	for i := 0; i < g.cfg.ChipsPerTurn; i++ {
		excess := Excess(card.Cost, coupons, player.Chips)
		if player.Chips.Sum() >= g.cfg.ChipLimit+excess.Sum() {
			break
		}

		most := -1
		for c := range need {
			if !picked[c] && s.Bank[c] > 0 {
				most = max(most, need[c])
			}
		}
		if most < 0 {
			break
		}

		order := g.rng.Perm(entities.ColorCount)
		open := func(c int) bool { return !picked[c] && s.Bank[c] > 0 }
		j := -1
		if most > 0 {
			j = firstColor(order, func(c int) bool { return open(c) && need[c] == most })
		}
		if j == -1 {
			j = firstColor(order, func(c int) bool { return open(c) && need[c] > 0 })
		}
		if j == -1 {
			if player.Chips.Sum() >= g.cfg.ChipLimit {
				break
			}
			j = firstColor(order, open)
			extra[j]++
		} else {
			taken[j]++
		}

		picked[j] = true
		if need[j] > 0 {
			need[j]--
		}
		s.Bank[j]--
		player.Chips[j]++
	}

	e := dto.Event{
		Kind:     dto.EventTakeChips,
		Chips:    taken,
		CardID:   card.ID,
		CardName: card.Name,
		Message:  g.takeMessage(player.Name, card.Name, taken, extra),
	}
	if extra.Sum() > 0 {
		g.result.Highlights.ExtraChips++
		ex := [entities.ColorCount]int(extra)
		e.Extra = &ex
	}
	g.emit(e)

	if player.Chips.Sum() <= g.cfg.ChipLimit {
		return
	}
	var returned Chips
	for player.Chips.Sum() > g.cfg.ChipLimit {
		excess := Excess(card.Cost, coupons, player.Chips)
		if excess.Sum() == 0 {
			excess = player.Chips
		}
		c := g.randomColor(excess)
		player.Chips[c]--
		s.Bank[c]++
		returned[c]++
	}
	g.result.Highlights.ForcedReturn++
	g.emit(dto.Event{
		Kind:     dto.EventReturn,
		Chips:    returned,
		CardID:   card.ID,
		CardName: card.Name,
		Message:  g.returnMessage(returned),
	})
}

// advance passes play to the next player. The game can only end when the
// round wraps, so everyone gets the same number of turns.
func (g *Game) advance() {
	s := &g.state
	s.Active = (s.Active + 1) % len(s.Players)
	if s.Active != 0 {
		g.emit(dto.Event{Kind: dto.EventAdvance})
		return
	}

	s.Turn++
	winner, top := 0, s.Players[0].Score
	for p, ps := range s.Players {
		if ps.Score > top {
			winner, top = p, ps.Score
		}
	}
	if top < g.cfg.WinningScore {
		g.emit(dto.Event{Kind: dto.EventAdvance, Message: fmt.Sprintf("Round %d begins.", s.Turn)})
		return
	}

	leaders := 0
	for _, ps := range s.Players {
		if ps.Score == top {
			leaders++
		}
	}
	g.done = true
	g.result.Outcome = OutcomeFinished
	g.result.Winner = winner
	g.result.Tie = leaders > 1
	g.emit(dto.Event{
		Kind:    dto.EventGameOver,
		Player:  winner,
		Score:   top,
		Message: gameOverMessage(s.Players[winner].Name, top, g.result.Tie),
	})
}

// randomColor picks uniformly among the colors with a positive count.
func (g *Game) randomColor(counts Chips) int {
	var colors []int
	for c, n := range counts {
		if n > 0 {
			colors = append(colors, c)
		}
	}
	if len(colors) == 0 {
		panic("engine: no color to choose from")
	}
	return colors[g.rng.Intn(len(colors))]
}

func firstColor(order []int, ok func(int) bool) int {
	for _, c := range order {
		if ok(c) {
			return c
		}
	}
	return -1
}
