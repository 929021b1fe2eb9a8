package dnd

// ShiftIndexes removes the element at from and reinserts it at to, counted in
// the slice that remains after the removal. from is clamped to [0, len-1] and
// to to [0, len]. When they are equal the input is returned untouched;
// otherwise a new slice is returned and order is not modified.
func ShiftIndexes[T any](order []T, from, to int) []T {
	if len(order) == 0 {
		return order
	}
	from = clampInt(from, 0, len(order)-1)
	to = clampInt(to, 0, len(order))
	if from == to {
		return order
	}

	out := make([]T, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)
	moved := order[from]
	if to > len(out) {
		to = len(out)
	}
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}

// MoveToEnd moves the first element for which match returns true to the end of the slice in
// place, so it is drawn last. It reports whether anything matched.
func MoveToEnd[T any](order []T, match func(T) bool) bool {
	for i, v := range order {
		if match(v) {
			copy(order[i:], order[i+1:])
			order[len(order)-1] = v
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
