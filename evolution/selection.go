package evolution

import (
	"math/rand"
	"sort"
)

// Rank returns the indices of scores ordered by descending score.
// Equal scores keep their original order.
func Rank(scores []int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// SelectCount returns how many individuals survive selection out of n.
func SelectCount(n int) int {
	return min(n, max(2, n/2))
}

// Select returns the indices of the retained individuals, best first: the
// top half of the population, but never fewer than two.
func Select(scores []int) []int {
	return Rank(scores)[:SelectCount(len(scores))]
}

// Breed builds a generation of exactly n pairs from parents, which must be
// ordered best first. The first elitism parents are copied unchanged; the
// rest are children of every unordered parent pair, two complementary
// children per pair, mutated and truncated to size. The pair loop repeats
// with fresh draws until enough children exist.
func Breed(parents []Pair, n, elitism int, m Mutator, rng *rand.Rand) []Pair {
	if len(parents) == 0 || n <= 0 {
		return nil
	}
	elitism = min(elitism, len(parents), n)

	next := make([]Pair, 0, n)
	next = append(next, parents[:elitism]...)

	want := n - elitism
	children := make([]Pair, 0, want+len(parents)*len(parents))
	for len(children) < want {
		if len(parents) == 1 {
			children = append(children, m.MutatePair(parents[0], rng))
			continue
		}
		for i := 0; i < len(parents); i++ {
			for j := i + 1; j < len(parents); j++ {
				a, b := CrossoverPair(parents[i], parents[j], rng)
				children = append(children, m.MutatePair(a, rng), m.MutatePair(b, rng))
			}
		}
	}

	return append(next, children[:want]...)
}
