package selection

// Permutation shuffles 0..n-1 with Fisher-Yates driven by Mulberry32(seed).
// For a fixed (n, seed) the result is identical in every process.
func Permutation(n int, seed uint32) []int {
	if n <= 0 {
		return []int{}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	rng := NewMulberry32(seed)
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// DailyPermutation is the permutation of 0..n-1 shared by every player on day
func DailyPermutation(n int, day string) []int {
	return Permutation(n, DayHash(day))
}
