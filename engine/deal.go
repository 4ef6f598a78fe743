package engine

import (
	"golang.org/x/exp/rand"

	"go-tycoon/entities"
	"go-tycoon/utils"
)

const topPoints = 5

// drawPile copies the deck, dropping the top-scoring cards in large games.
func drawPile(cards []entities.Card, cfg Config) []entities.Card {
	pile := make([]entities.Card, 0, len(cards))
	for _, c := range cards {
		if cfg.Players >= cfg.DropTopCardsAt && c.Points >= topPoints {
			continue
		}
		pile = append(pile, c)
	}
	return pile
}

// deal lays out rows*perRow slots. All rows but the last are random draws;
// the last row only takes zero-point cards, putting anything else back.
func deal(pile []entities.Card, rows, perRow int, rng *rand.Rand) ([]Slot, []entities.Card, error) {
	if len(pile) < rows*perRow {
		return nil, nil, ErrDeckTooSmall
	}
	tableau := make([]Slot, rows*perRow)
	for i := 0; i < (rows-1)*perRow; i++ {
		var card entities.Card
		card, pile = utils.TakeRandom(pile, rng)
		tableau[i] = Slot{Card: card, Occupied: true}
	}
	for i := (rows - 1) * perRow; i < rows*perRow; i++ {
		if !hasZeroPointCard(pile) {
			return nil, nil, ErrNoZeroPointCards
		}
		for {
			var card entities.Card
			card, pile = utils.TakeRandom(pile, rng)
			if card.Points == 0 {
				tableau[i] = Slot{Card: card, Occupied: true}
				break
			}
			pile = append(pile, card)
		}
	}
	return tableau, pile, nil
}

func hasZeroPointCard(pile []entities.Card) bool {
	for _, c := range pile {
		if c.Points == 0 {
			return true
		}
	}
	return false
}
