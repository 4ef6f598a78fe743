package deck

import (
	"bufio"
	"fmt"
	"io"

	"go-tycoon/dto"
	"go-tycoon/entities"
)

// WriteSummary writes the deck table as tab separated text, one card per row.
func WriteSummary(w io.Writer, cards []entities.Card) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "Id\tColor\tPoints\tBonus\tCoupons")
	for c := 0; c < entities.ColorCount; c++ {
		fmt.Fprintf(bw, "\tCost%d", c)
	}
	fmt.Fprintln(bw, "\tName")

	for _, card := range cards {
		fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%d", card.ID, card.Color, card.Points, card.Bonus, card.CouponValue)
		for _, cost := range card.Cost {
			fmt.Fprintf(bw, "\t%d", cost)
		}
		fmt.Fprintf(bw, "\t%s\n", card.Name)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write deck summary: %w", err)
	}
	return nil
}

func Rows(cards []entities.Card) []dto.DeckRow {
	rows := make([]dto.DeckRow, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, dto.DeckRow{
			ID:      c.ID,
			Color:   c.Color,
			Points:  c.Points,
			Bonus:   c.Bonus,
			Coupons: c.CouponValue,
			Cost0:   c.Cost[0],
			Cost1:   c.Cost[1],
			Cost2:   c.Cost[2],
			Cost3:   c.Cost[3],
			Cost4:   c.Cost[4],
			Cost5:   c.Cost[5],
			Name:    c.Name,
		})
	}
	return rows
}

// Ranks flattens the ranking for the API, numbering kept and excluded
// patterns alike in speed order.
func Ranks(d *Deck) []dto.PatternRank {
	out := make([]dto.PatternRank, 0, len(d.Ranking))
	for i, r := range d.Ranking {
		word := make([]byte, len(r.Word))
		for j, digit := range r.Word {
			word[j] = byte('0' + digit)
		}
		out = append(out, dto.PatternRank{
			Rank:     i + 1,
			Pattern:  r.Index,
			Word:     string(word),
			Cost:     r.Cost[:],
			Speed:    r.Speed,
			Points:   r.Points,
			Bonus:    r.Bonus,
			Coupons:  r.Coupons,
			Excluded: r.Excluded,
		})
	}
	return out
}
