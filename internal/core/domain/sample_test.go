package domain

import "testing"

func TestSampleStride(t *testing.T) {
	tests := []struct {
		n, target, want int
	}{
		{n: 0, target: 10000, want: 1},
		{n: 9999, target: 10000, want: 1},
		{n: 10000, target: 10000, want: 1},
		{n: 10001, target: 10000, want: 2},
		{n: 114000, target: 10000, want: 12},
		{n: 25, target: 0, want: 1},
	}
	for _, tc := range tests {
		if got := SampleStride(tc.n, tc.target); got != tc.want {
			t.Errorf("SampleStride(%d, %d) = %d, want %d", tc.n, tc.target, got, tc.want)
		}
	}
}

func TestSample_RetainsCeilAndOrder(t *testing.T) {
	for _, n := range []int{0, 1, 7, 10, 11, 99, 100, 101, 1234} {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		const target = 10
		stride := SampleStride(n, target)
		got := Sample(rows, target)

		wantLen := (n + stride - 1) / stride
		if len(got) != wantLen {
			t.Fatalf("n=%d: expected %d rows, got %d", n, wantLen, len(got))
		}
		for i, v := range got {
			if v != i*stride {
				t.Fatalf("n=%d: row %d = %d, want %d", n, i, v, i*stride)
			}
		}
	}
}
