package resample

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	a := Pt(1, 2, 3)
	b := Pt(4, 6, 3)

	diff(t, Vec(3, 4, 0), b.Sub(a))
	diff(t, 5.0, a.Distance(b))
	diff(t, 25.0, a.DistanceSquared(b))
	diff(t, Pt(2.5, 4, 3), a.Midpoint(b))
	diff(t, Pt(4, 6, 3), a.Translate(Vec(3, 4, 0)))
}

func TestPointLerp(t *testing.T) {
	a := Pt(0, 0, 0)
	b := Pt(10, -10, 4)

	diff(t, a, a.Lerp(b, 0))
	diff(t, b, a.Lerp(b, 1))
	diff(t, Pt(5, -5, 2), a.Lerp(b, 0.5))
}

func TestPointIsNaNIsInf(t *testing.T) {
	if Pt(0, 1, 2).IsNaN() || Pt(0, 1, 2).IsInf() {
		t.Error("finite point reported as NaN or Inf")
	}
	if !Pt(0, math.NaN(), 2).IsNaN() {
		t.Error("NaN point not reported")
	}
	if !Pt(math.Inf(1), 1, 2).IsInf() {
		t.Error("Inf point not reported")
	}
}
