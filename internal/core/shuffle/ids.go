package shuffle

// Select returns the ids in [0, n) for which keep reports true, in order.
func Select(n int, keep func(id int) bool) []int {
	ids := make([]int, 0, n)
	for id := 0; id < n; id++ {
		if keep == nil || keep(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Range returns the ids in [lo, hi). An empty or inverted range yields nil.
func Range(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	ids := make([]int, 0, hi-lo)
	for id := lo; id < hi; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Exclude returns ids without any of the reserved ids, keeping order.
func Exclude(ids []int, reserved ...int) []int {
	if len(reserved) == 0 {
		return ids
	}
	skip := make(map[int]struct{}, len(reserved))
	for _, id := range reserved {
		skip[id] = struct{}{}
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := skip[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}
