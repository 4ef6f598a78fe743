package pattern

// WordIterator walks the Lyndon words of length n over the alphabet {0..k-1}
// in lexicographic order. The first word produced is n zeros, which is not a
// Lyndon word itself but falls out of the successor rule.
// An iterator cannot be rewound; build a new one to start over.
type WordIterator struct {
	n, k int
	w    []int
	done bool
}

func LyndonWords(n, k int) *WordIterator {
	it := &WordIterator{n: n, k: k}
	if n <= 0 || k <= 0 {
		it.done = true
		return it
	}
	it.w = make([]int, n)
	return it
}

// Next returns a fresh copy of the next full-length word.
func (it *WordIterator) Next() ([]int, bool) {
	for !it.done {
		var word []int
		if len(it.w) == it.n {
			word = append([]int(nil), it.w...)
		}
		it.advance()
		if word != nil {
			return word, true
		}
	}
	return nil, false
}

func (it *WordIterator) advance() {
	period := len(it.w)
	for len(it.w) < it.n {
		it.w = append(it.w, it.w[len(it.w)-period])
	}
	for len(it.w) > 0 && it.w[len(it.w)-1] == it.k-1 {
		it.w = it.w[:len(it.w)-1]
	}
	if len(it.w) == 0 {
		it.done = true
		return
	}
	it.w[len(it.w)-1]++
}

// AllWords drains a fresh iterator.
func AllWords(n, k int) [][]int {
	var words [][]int
	it := LyndonWords(n, k)
	for w, ok := it.Next(); ok; w, ok = it.Next() {
		words = append(words, w)
	}
	return words
}
