package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Clone returns a copy of src. The result is never nil, so an empty input
// still yields an empty buffer.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ClampBlockInPlace coerces every sample of buf to [-1, 1].
func ClampBlockInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = ClampSample(x)
	}
}

// ClampBlock returns a copy of src with every sample coerced to [-1, 1].
func ClampBlock(src []float64) []float64 {
	out := Clone(src)
	ClampBlockInPlace(out)
	return out
}
