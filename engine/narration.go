package engine

import (
	"fmt"
	"strings"

	"go-tycoon/utils"
)

// chipPhrases describes a chip movement: "a red", "two blue".
func (g *Game) chipPhrases(chips Chips) []string {
	var out []string
	for c, n := range chips {
		switch {
		case n == 1:
			out = append(out, utils.Article(g.cfg.chipName(c)))
		case n > 1:
			out = append(out, utils.NumberWord(n)+" "+g.cfg.chipName(c))
		}
	}
	return out
}

func (g *Game) describeChips(chips Chips, none string) string {
	phrases := g.chipPhrases(chips)
	if len(phrases) == 0 {
		return none
	}
	return utils.AsEnglish(phrases)
}

func targetMessage(actor, card string, chosen bool) string {
	if chosen {
		return fmt.Sprintf("%s sets their sights on %s.", actor, card)
	}
	return fmt.Sprintf("%s finds nothing within reach and picks %s at random.", actor, card)
}

func (g *Game) wildcardMessage(actor string, turnedIn Chips, wild int) string {
	uses := "a wildcard"
	if wild != 1 {
		uses = utils.NumberWord(wild) + " wildcards"
	}
	return fmt.Sprintf("%s turns in %s to use as %s.", actor, g.describeChips(turnedIn, "no chips"), uses)
}

func (g *Game) buyMessage(actor, card string, paid Chips, noChips bool, bonus int) string {
	none := "no additional chips"
	if noChips {
		none = "no chips"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s invests %s to attract %s to %sville", actor, g.describeChips(paid, none), card, actor)
	if bonus > 0 {
		fmt.Fprintf(&sb, " and earns %s bonus points", utils.NumberWord(bonus))
	}
	sb.WriteString(".")
	return sb.String()
}

func replenishMessage(replacement string) string {
	if replacement == "" {
		return "The draw pile is empty and the slot stays open."
	}
	return fmt.Sprintf("They then draw %s.", replacement)
}

func (g *Game) takeMessage(actor, card string, taken, extra Chips) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s takes %s, intending to attract %s", actor, g.describeChips(taken, "no chips"), card)
	if extra.Sum() > 0 {
		fmt.Fprintf(&sb, ", and %s for later", g.describeChips(extra, "no chips"))
	}
	sb.WriteString(".")
	return sb.String()
}

func (g *Game) returnMessage(returned Chips) string {
	return fmt.Sprintf("They have more than %d chips and decide to return %s.", g.cfg.ChipLimit, g.describeChips(returned, "no chips"))
}

func gameOverMessage(winner string, score int, tie bool) string {
	if tie {
		return fmt.Sprintf("The game ends in a tie at %d points; %s is listed first.", score, winner)
	}
	return fmt.Sprintf("%s wins the game with a score of %d!", winner, score)
}
