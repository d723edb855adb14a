package domain

// DefaultSampleTarget bounds the working set kept in memory.
const DefaultSampleTarget = 10000

// SampleStride returns ceil(n/target), never less than 1.
func SampleStride(n, target int) int {
	if target <= 0 {
		target = DefaultSampleTarget
	}
	if n <= target {
		return 1
	}
	return (n + target - 1) / target
}

// Sample keeps every row whose index is a multiple of the stride, preserving
// input order.
func Sample[T any](rows []T, target int) []T {
	stride := SampleStride(len(rows), target)
	out := make([]T, 0, (len(rows)+stride-1)/stride)
	for i := 0; i < len(rows); i += stride {
		out = append(out, rows[i])
	}
	return out
}
