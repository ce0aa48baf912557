package dice

// Weighted pairs a candidate value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Pick returns a uniformly chosen element of items.
//
// Precondition: len(items) > 0.
func Pick[T any](s *Stream, items []T) T {
	if len(items) == 0 {
		panic("dice: Pick requires a non-empty slice")
	}
	return items[s.Int(0, len(items)-1)]
}

// Shuffle returns a Fisher-Yates shuffled copy of items; items is untouched.
func Shuffle[T any](s *Stream, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := s.Int(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// WeightedPick selects a value with probability proportional to its weight.
// Entries with non-positive weight are never selected.
//
// Precondition: the sum of positive weights must be > 0.
// Postcondition: exactly one Float draw is consumed.
func WeightedPick[T any](s *Stream, entries []Weighted[T]) T {
	total := 0.0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		panic("dice: WeightedPick requires positive total weight")
	}
	roll := s.Float() * total
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		roll -= e.Weight
		if roll <= 0 {
			return e.Value
		}
	}
	return entries[len(entries)-1].Value
}
