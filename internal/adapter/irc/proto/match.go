package proto

// Match reports whether the input matches a WHO mask. '*' matches any run of
// characters, '?' matches exactly one, and the mask is anchored at both ends:
// "nick" does not match "nick!user@host" but "nick*" does.
func Match(input, mask string) bool {
	// Iterative glob with single-star backtracking.
	var (
		i, m         int
		star         = -1
		starredInput int
	)
	for i < len(input) {
		switch {
		case m < len(mask) && (mask[m] == '?' || mask[m] == input[i]):
			i++
			m++
		case m < len(mask) && mask[m] == '*':
			star = m
			starredInput = i
			m++
		case star >= 0:
			m = star + 1
			starredInput++
			i = starredInput
		default:
			return false
		}
	}
	for m < len(mask) && mask[m] == '*' {
		m++
	}
	return m == len(mask)
}
