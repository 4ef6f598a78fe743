package pattern

import (
	"reflect"
	"testing"

	"go-tycoon/entities"
)

func TestLyndonWordsCount(t *testing.T) {
	words := AllWords(6, 3)
	// 116 Lyndon words of length 6 over three symbols, plus the leading zero word.
	if len(words) != 117 {
		t.Fatalf("got %d words, want 117", len(words))
	}
	if !reflect.DeepEqual(words[0], []int{0, 0, 0, 0, 0, 0}) {
		t.Fatalf("first word = %v", words[0])
	}
	if !reflect.DeepEqual(words[1], []int{0, 0, 0, 0, 0, 1}) {
		t.Fatalf("second word = %v", words[1])
	}
	if !reflect.DeepEqual(words[len(words)-1], []int{1, 2, 2, 2, 2, 2}) {
		t.Fatalf("last word = %v", words[len(words)-1])
	}
}

func TestLyndonIteratorIsExhausted(t *testing.T) {
	it := LyndonWords(3, 2)
	var got [][]int
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		got = append(got, w)
	}
	want := [][]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if _, ok := it.Next(); ok {
		t.Fatal("exhausted iterator produced another word")
	}
}

func TestLyndonWordsDegenerate(t *testing.T) {
	if words := AllWords(0, 3); len(words) != 0 {
		t.Fatalf("n=0 gave %v", words)
	}
	if words := AllWords(4, 1); len(words) != 1 {
		t.Fatalf("k=1 gave %v", words)
	}
}

func TestGenerateDefaults(t *testing.T) {
	patterns := Generate(DefaultOptions())
	if len(patterns) != 19 {
		t.Fatalf("got %d patterns, want 19", len(patterns))
	}

	tests := []struct {
		pos  int
		word string
		cost entities.CostVector
	}{
		{0, "011102", entities.CostVector{0, 1, 1, 1, 0, 2}},
		{4, "010102", entities.CostVector{0, 2, 0, 2, 0, 3}},
		{9, "001012", entities.CostVector{0, 0, 3, 0, 3, 5}},
		{12, "000112", entities.CostVector{0, 0, 0, 4, 4, 6}},
		{16, "000012", entities.CostVector{0, 0, 0, 0, 5, 8}},
		{18, "000001", entities.CostVector{0, 0, 0, 0, 0, 5}},
	}
	for _, tt := range tests {
		p := patterns[tt.pos]
		if p.Index != tt.pos+1 {
			t.Errorf("pattern %d index = %d", tt.pos, p.Index)
		}
		if got := WordString(p.Word); got != tt.word {
			t.Errorf("pattern %d word = %s, want %s", tt.pos, got, tt.word)
		}
		if p.Cost != tt.cost {
			t.Errorf("pattern %d cost = %v, want %v", tt.pos, p.Cost, tt.cost)
		}
	}
}

func TestGeneratedPatternsPassFilter(t *testing.T) {
	opts := DefaultOptions()
	for _, p := range Generate(opts) {
		if !Accept(p.Word, opts) {
			t.Errorf("pattern %s fails the filter", WordString(p.Word))
		}
		var zeros, ones, twos int
		for _, d := range p.Word {
			switch d {
			case 0:
				zeros++
			case 1:
				ones++
			case 2:
				twos++
			}
		}
		if zeros < 2 || ones == 0 || twos > 1 || twos > ones {
			t.Errorf("pattern %s has digit counts %d/%d/%d", WordString(p.Word), zeros, ones, twos)
		}
		if twos == 1 && p.Word[len(p.Word)-1] != 2 {
			t.Errorf("pattern %s has its 2 out of place", WordString(p.Word))
		}
	}
}

func TestAccept(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		word []int
		want bool
	}{
		{[]int{0, 1, 1, 1, 0, 2}, true},
		{[]int{0, 0, 0, 0, 1, 1}, true},
		{[]int{1, 1, 1, 1, 1, 2}, false}, // no zero
		{[]int{0, 1, 1, 1, 1, 2}, false}, // one zero is not enough
		{[]int{0, 0, 0, 0, 0, 2}, false}, // no one
		{[]int{0, 0, 1, 2, 0, 2}, false}, // two twos
		{[]int{0, 0, 1, 2, 0, 1}, false}, // two not last
	}
	for _, tt := range tests {
		if got := Accept(tt.word, opts); got != tt.want {
			t.Errorf("Accept(%v) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(DefaultOptions())
	b := Generate(DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs with the same options differ")
	}
}

func TestVariantsShareSum(t *testing.T) {
	opts := DefaultOptions()
	patterns := Generate(opts)
	costs := BuildCardCosts(patterns, opts)
	if len(costs) != len(patterns)*opts.Colors {
		t.Fatalf("got %d variants", len(costs))
	}
	for i, cc := range costs {
		p := patterns[cc.Pattern]
		if cc.Index != i || cc.Pattern != i/opts.Colors || cc.Color != i%opts.Colors {
			t.Fatalf("variant %d is mislabeled: %+v", i, cc)
		}
		if cc.Cost.Sum() != p.Cost.Sum() {
			t.Errorf("variant %d sum %d, pattern sum %d", i, cc.Cost.Sum(), p.Cost.Sum())
		}
	}
}

func TestPairPatternSums(t *testing.T) {
	opts := DefaultOptions()
	patterns := Generate(opts)
	var pair *entities.CostPattern
	for i := range patterns {
		if WordString(patterns[i].Word) == "000011" {
			pair = &patterns[i]
		}
	}
	if pair == nil {
		t.Fatal("000011 not generated")
	}
	if pair.Index != 18 {
		t.Fatalf("000011 index = %d, want 18", pair.Index)
	}
	costs := BuildCardCosts([]entities.CostPattern{*pair}, opts)
	for _, cc := range costs {
		if cc.Cost.Sum() != 2*BaseCost(pair.Index) {
			t.Errorf("color %d sum = %d, want %d", cc.Color, cc.Cost.Sum(), 2*BaseCost(pair.Index))
		}
	}
}

func TestRotationSchemes(t *testing.T) {
	p := entities.CostPattern{Index: 1, Word: []int{0, 1, 1, 1, 0, 2}, Cost: entities.CostVector{0, 1, 1, 1, 0, 2}}

	opts := DefaultOptions()
	costs := BuildCardCosts([]entities.CostPattern{p}, opts)
	if costs[0].Cost != p.Cost {
		t.Errorf("color 0 = %v", costs[0].Cost)
	}
	if want := (entities.CostVector{2, 0, 1, 1, 1, 0}); costs[1].Cost != want {
		t.Errorf("color 1 = %v, want %v", costs[1].Cost, want)
	}

	shifted := p
	shifted.Index = 3
	costs = BuildCardCosts([]entities.CostPattern{shifted}, opts)
	if want := (entities.CostVector{0, 2, 0, 1, 1, 1}); costs[0].Cost != want {
		t.Errorf("cost-shift color 0 = %v, want %v", costs[0].Cost, want)
	}

	opts.Rotation = RotationPlain
	costs = BuildCardCosts([]entities.CostPattern{shifted}, opts)
	if costs[0].Cost != p.Cost {
		t.Errorf("plain color 0 = %v", costs[0].Cost)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	bad := DefaultOptions()
	bad.Rotation = "diagonal"
	if err := bad.Validate(); err == nil {
		t.Fatal("unknown rotation accepted")
	}
	bad = DefaultOptions()
	bad.Colors = 5
	if err := bad.Validate(); err == nil {
		t.Fatal("five colors accepted")
	}
}
