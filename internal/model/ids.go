package model

// WithoutID returns a copy of ids with the first occurrence of id removed.
func WithoutID(ids []int64, id int64) []int64 {
	return without(ids, id)
}

func without[T comparable](list []T, elem T) []T {
	out := make([]T, 0, len(list))
	removed := false
	for _, item := range list {
		if !removed && item == elem {
			removed = true

			continue
		}
		out = append(out, item)
	}

	return out
}

// cloneIDs and cloneStrings always return a non-nil slice so empty lists
// encode as [] rather than null.
func cloneIDs(ids []int64) []int64 {
	out := make([]int64, len(ids))
	copy(out, ids)

	return out
}

func cloneStrings(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)

	return out
}
