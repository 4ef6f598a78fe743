package utils

import "golang.org/x/exp/rand"

// Scramble returns a shuffled copy of items, leaving the input untouched.
// It builds the permutation inside out so the copy is filled in one pass.
func Scramble[T any](items []T, rng *rand.Rand) []T {
	p := make([]int, len(items))
	for i := range items {
		j := rng.Intn(i + 1)
		p[i] = p[j]
		p[j] = i
	}
	out := make([]T, len(items))
	for i, idx := range p {
		out[i] = items[idx]
	}
	return out
}

// RemoveAt deletes the element at index, preserving order.
func RemoveAt[T any](slice []T, index int) []T {
	if index < 0 || index >= len(slice) {
		return slice
	}
	return append(slice[:index], slice[index+1:]...)
}

// TakeRandom removes and returns a uniformly chosen element.
func TakeRandom[T any](slice []T, rng *rand.Rand) (T, []T) {
	i := rng.Intn(len(slice))
	item := slice[i]
	return item, RemoveAt(slice, i)
}

func Contains[T comparable](list []T, target T) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
