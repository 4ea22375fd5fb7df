package resample

// knotVec is a non-decreasing knot vector.
type knotVec []float64

// span finds the index of the knot span containing t, for a curve with n
// basis functions of the given degree. This is the binary search from
// The NURBS Book (Piegl & Tiller), algorithm A2.1.
//
// n is the number of control points; the last valid span index is n-1.
func (kv knotVec) span(n, degree int, t float64) int {
	if t >= kv[n] {
		return n - 1
	}
	if t < kv[degree] {
		return degree
	}
	low, high := degree, n
	mid := (low + high) / 2
	for t < kv[mid] || t >= kv[mid+1] {
		if t < kv[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

func (kv knotVec) nondecreasing() bool {
	prev := kv[0]
	for _, knot := range kv[1:] {
		if knot < prev {
			return false
		}
		prev = knot
	}
	return true
}

// basisFuns evaluates the degree+1 non-vanishing B-spline basis functions at
// t on the span with the given index (The NURBS Book, algorithm A2.2).
// out[i] holds the value of basis function span-degree+i.
func (kv knotVec) basisFuns(span, degree int, t float64) []float64 {
	out := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	out[0] = 1.0
	for j := 1; j <= degree; j++ {
		left[j] = t - kv[span+1-j]
		right[j] = kv[span+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := out[r] / (right[r+1] + left[j-r])
			out[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		out[j] = saved
	}
	return out
}
