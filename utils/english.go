package utils

import (
	"strconv"
	"strings"
)

var numberWords = []string{"no", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

// AsEnglish joins items the way a sentence lists them:
// "a", "a and b", "a, b, and c".
func AsEnglish(items []string) string {
	s := make([]string, len(items))
	copy(s, items)
	if len(s) > 1 {
		s[len(s)-1] = "and " + s[len(s)-1]
	}
	sep := " "
	if len(s) > 2 {
		sep = ", "
	}
	return strings.Join(s, sep)
}

// NumberWord spells small counts out; larger ones stay numeric.
func NumberWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return strconv.Itoa(n)
}

// Article prefixes a noun with "a" or "an".
func Article(word string) string {
	if word == "" {
		return word
	}
	switch strings.ToLower(word[:1]) {
	case "a", "e", "i", "o", "u":
		return "an " + word
	}
	return "a " + word
}
