package utils

import (
	"sort"
	"testing"
	"time"

	"golang.org/x/exp/rand"
)

func TestScrambleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out := Scramble(in, rng)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("scrambled slice is not a permutation: %v", out)
		}
	}
	for i, v := range in {
		if v != i {
			t.Fatalf("input modified: %v", in)
		}
	}
}

func TestScrambleDeterministic(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	a := Scramble(in, rand.New(rand.NewSource(42)))
	b := Scramble(in, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave %v and %v", a, b)
		}
	}
}

func TestAsEnglish(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"red"}, "red"},
		{[]string{"red", "blue"}, "red and blue"},
		{[]string{"red", "blue", "green"}, "red, blue, and green"},
	}
	for _, tt := range tests {
		if got := AsEnglish(tt.in); got != tt.want {
			t.Errorf("AsEnglish(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSliceHelpers(t *testing.T) {
	if !Contains([]int{4, 5}, 5) || Contains([]int{4, 5}, 6) {
		t.Error("Contains")
	}
	if got := RemoveAt([]int{1, 2, 3}, 1); len(got) != 2 || got[1] != 3 {
		t.Errorf("RemoveAt = %v", got)
	}
	rng := rand.New(rand.NewSource(3))
	item, rest := TakeRandom([]int{7, 8, 9}, rng)
	if len(rest) != 2 || Contains(rest, item) {
		t.Errorf("TakeRandom = %d, %v", item, rest)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := GenerateAccessToken(secret, "alice", time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseAccessToken(secret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "alice" {
		t.Fatalf("user = %q", claims.UserID)
	}
	if _, err := ParseAccessToken([]byte("other"), tok); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestNumberWordAndArticle(t *testing.T) {
	for n, want := range map[int]string{0: "no", 3: "three", 10: "ten", 12: "12"} {
		if got := NumberWord(n); got != want {
			t.Errorf("NumberWord(%d) = %q, want %q", n, got, want)
		}
	}
	if got := Article("ivory chip"); got != "an ivory chip" {
		t.Errorf("Article = %q", got)
	}
	if got := Article("red chip"); got != "a red chip" {
		t.Errorf("Article = %q", got)
	}
}
