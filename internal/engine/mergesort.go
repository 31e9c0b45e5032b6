// SPDX-License-Identifier: MPL-2.0

package engine

// mergeSort sorts s stably using cmp. aux is scratch space of at least
// len(s) elements; it is reused across calls so a batch sort allocates once.
func mergeSort[T any](s, aux []T, cmp func(a, b T) int) {
	n := len(s)
	if n <= 2 {
		// Swap only on strict disorder to keep equal pairs in input order.
		if n == 2 && cmp(s[0], s[1]) > 0 {
			s[0], s[1] = s[1], s[0]
		}
		return
	}

	mid := n / 2
	mergeSort(s[:mid], aux[:mid], cmp)
	mergeSort(s[mid:], aux[mid:n], cmp)
	if cmp(s[mid-1], s[mid]) <= 0 {
		return
	}

	copy(aux[:n], s)
	left, right := aux[:mid], aux[mid:n]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		// Ties take from the left half, which holds the earlier input.
		if cmp(left[i], right[j]) <= 0 {
			s[k] = left[i]
			i++
		} else {
			s[k] = right[j]
			j++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}
