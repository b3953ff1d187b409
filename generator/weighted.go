package generator

import "math/rand/v2"

// Pick resolves a draw u in [0,1) against the cumulative mass of the table.
// When rounding leaves u unmatched the last key is returned. An empty table
// yields "".
func (w Weights) Pick(u float64) string {
	if len(w) == 0 {
		return ""
	}
	cumulative := 0.0
	for _, opt := range w {
		cumulative += opt.P
		if u <= cumulative {
			return opt.Key
		}
	}
	return w[len(w)-1].Key
}

// Choose draws one key from the table.
func (w Weights) Choose(r *rand.Rand) string {
	return w.Pick(r.Float64())
}

// Total returns the summed probability mass.
func (w Weights) Total() float64 {
	var sum float64
	for _, opt := range w {
		sum += opt.P
	}
	return sum
}

func choice[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// between returns a uniform int in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
