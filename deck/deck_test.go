package deck

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"go-tycoon/balance"
	"go-tycoon/entities"
	"go-tycoon/pattern"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		speed float64
		want  int
	}{
		{2.5, -1}, // half rounds to even
		{3.0, 0},
		{3.5, 1},
		{4.5, 1},
		{7.49, 4},
		{8.6, 5},
		{20, 5},
	}
	for _, tt := range tests {
		if got := Points(tt.speed); got != tt.want {
			t.Errorf("Points(%v) = %d, want %d", tt.speed, got, tt.want)
		}
	}
}

func TestBonus(t *testing.T) {
	tests := []struct {
		points int
		cost   entities.CostVector
		want   int
	}{
		{2, entities.CostVector{0, 0, 0, 4, 4, 6}, 3},
		{1, entities.CostVector{0, 0, 3, 0, 0, 5}, 3},
		{5, entities.CostVector{0, 0, 0, 0, 5, 8}, 4},
		{5, entities.CostVector{0, 0, 0, 0, 0, 5}, 0}, // sum below 6
		{5, entities.CostVector{0, 1, 1, 1, 0, 2}, 0}, // entry below 3
		{0, entities.CostVector{0, 0, 0, 4, 4, 6}, 0},
		{-2, entities.CostVector{0, 0, 0, 4, 4, 6}, 0},
	}
	for _, tt := range tests {
		if got := Bonus(tt.points, tt.cost); got != tt.want {
			t.Errorf("Bonus(%d, %v) = %d, want %d", tt.points, tt.cost, got, tt.want)
		}
	}
}

func fixture() ([]entities.CostPattern, []entities.CardCost, []balance.PatternSpeed) {
	patterns := []entities.CostPattern{
		{Index: 1, Word: []int{0, 1, 1, 1, 0, 2}, Cost: entities.CostVector{0, 1, 1, 1, 0, 2}},
		{Index: 13, Word: []int{0, 0, 0, 1, 1, 2}, Cost: entities.CostVector{0, 0, 0, 4, 4, 6}},
		{Index: 17, Word: []int{0, 0, 0, 0, 1, 2}, Cost: entities.CostVector{0, 0, 0, 0, 5, 8}},
		{Index: 19, Word: []int{0, 0, 0, 0, 0, 1}, Cost: entities.CostVector{0, 0, 0, 0, 0, 5}},
		{Index: 12, Word: []int{0, 0, 1, 0, 0, 2}, Cost: entities.CostVector{0, 0, 3, 0, 0, 5}},
	}
	costs := pattern.BuildCardCosts(patterns, pattern.DefaultOptions())
	speeds := []balance.PatternSpeed{
		{Pattern: 0, Speed: 7.6},
		{Pattern: 1, Speed: 7.0},
		{Pattern: 2, Speed: 8.2},
		{Pattern: 3, Speed: 3.0},
		{Pattern: 4, Speed: 7.0},
	}
	return patterns, costs, speeds
}

func namePools(n int) [][]string {
	pools := make([][]string, entities.ColorCount)
	for c := range pools {
		for i := 0; i < n; i++ {
			pools[c] = append(pools[c], fmt.Sprintf("c%d-n%d", c, i))
		}
	}
	return pools
}

func TestAssemble(t *testing.T) {
	patterns, costs, speeds := fixture()
	d, err := Assemble(patterns, costs, speeds, namePools(4), DefaultRules())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	wantOrder := []int{3, 4, 1, 0, 2}
	if len(d.Ranking) != len(wantOrder) {
		t.Fatalf("ranking has %d entries", len(d.Ranking))
	}
	for i, p := range wantOrder {
		if d.Ranking[i].Pattern != p {
			t.Fatalf("rank %d is pattern %d, want %d", i, d.Ranking[i].Pattern, p)
		}
	}
	last := d.Ranking[4]
	if !last.Excluded || last.InfoID != -1 || last.Points != 5 || last.Bonus != 4 {
		t.Fatalf("5/+4 pattern not excluded: %+v", last)
	}

	if len(d.Infos) != 4 || len(d.Cards) != 4*entities.ColorCount {
		t.Fatalf("got %d infos and %d cards", len(d.Infos), len(d.Cards))
	}
	for i, card := range d.Cards {
		if card.ID != i {
			t.Fatalf("card %d has id %d", i, card.ID)
		}
		if card.Color != i%entities.ColorCount {
			t.Fatalf("card %d has color %d", i, card.Color)
		}
		info := d.Infos[i/entities.ColorCount]
		if want := costs[info.Pattern*entities.ColorCount+card.Color].Cost; card.Cost != want {
			t.Fatalf("card %d cost %v, want %v", i, card.Cost, want)
		}
		if want := fmt.Sprintf("c%d-n%d", card.Color, info.ID); card.Name != want {
			t.Fatalf("card %d named %q, want %q", i, card.Name, want)
		}
	}

	checks := []struct {
		info    int
		points  int
		bonus   int
		coupons int
	}{
		{0, 0, 0, 1}, // slow-to-sell single color card
		{1, 4, 3, 1}, // two colors keep their bonus
		{2, 4, 0, 2}, // three colors at 4 points become double coupons
		{3, 5, 0, 1},
	}
	for _, c := range checks {
		card := d.Cards[c.info*entities.ColorCount]
		if card.Points != c.points || card.Bonus != c.bonus || card.CouponValue != c.coupons {
			t.Errorf("info %d: got %d/%d/%d, want %d/%d/%d", c.info,
				card.Points, card.Bonus, card.CouponValue, c.points, c.bonus, c.coupons)
		}
	}
}

func TestAssembleWithoutExclusions(t *testing.T) {
	patterns, costs, speeds := fixture()
	d, err := Assemble(patterns, costs, speeds, namePools(5), Rules{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(d.Infos) != 5 {
		t.Fatalf("got %d infos, want 5", len(d.Infos))
	}
}

func TestAssembleShortNamePoolPanics(t *testing.T) {
	patterns, costs, speeds := fixture()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a short name pool")
		}
	}()
	Assemble(patterns, costs, speeds, namePools(3), DefaultRules())
}

func TestAssembleRejectsMismatchedInput(t *testing.T) {
	patterns, costs, speeds := fixture()
	if _, err := Assemble(patterns, costs[:5], speeds, namePools(5), DefaultRules()); err == nil {
		t.Fatal("short variant list accepted")
	}
	if _, err := Assemble(patterns, costs, speeds[:2], namePools(5), DefaultRules()); err == nil {
		t.Fatal("short speed list accepted")
	}
}

func TestWriteSummary(t *testing.T) {
	cards := []entities.Card{
		{ID: 0, Color: 2, Points: 3, Bonus: 2, CouponValue: 1, Cost: entities.CostVector{0, 0, 3, 0, 0, 5}, Name: "Harbor Mill"},
	}
	var buf bytes.Buffer
	if err := WriteSummary(&buf, cards); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != "Id\tColor\tPoints\tBonus\tCoupons\tCost0\tCost1\tCost2\tCost3\tCost4\tCost5\tName" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "0\t2\t3\t2\t1\t0\t0\t3\t0\t0\t5\tHarbor Mill" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestRowsAndRanks(t *testing.T) {
	patterns, costs, speeds := fixture()
	d, err := Assemble(patterns, costs, speeds, namePools(4), DefaultRules())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	rows := Rows(d.Cards)
	if len(rows) != len(d.Cards) {
		t.Fatalf("got %d rows", len(rows))
	}
	r := rows[7]
	c := d.Cards[7]
	if r.ID != c.ID || r.Cost0 != c.Cost[0] || r.Cost5 != c.Cost[5] || r.Name != c.Name {
		t.Fatalf("row %+v does not match card %+v", r, c)
	}

	ranks := Ranks(d)
	if ranks[0].Rank != 1 || ranks[0].Word != "000001" || ranks[0].Pattern != 19 {
		t.Fatalf("first rank = %+v", ranks[0])
	}
	if !ranks[4].Excluded {
		t.Fatal("excluded pattern not flagged")
	}
}
