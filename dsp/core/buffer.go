package core

// EnsureLen returns a slice of length n, reusing the capacity of buf when it
// is large enough. Reused elements are not cleared.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	return copy(dst, src)
}

// ZeroPad returns x extended with trailing zeros to length n. x is returned
// as is when it already holds n samples and is never written to.
func ZeroPad(x []float64, n int) []float64 {
	if len(x) >= n {
		return x
	}
	out := EnsureLen(nil, n)
	CopyInto(out, x)
	return out
}
