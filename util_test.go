package resample

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func approx(tol float64) cmp.Option {
	return cmpopts.EquateApprox(0, tol)
}

func mustBSpline(t *testing.T, pts []Point, degree int, form Form) *BSpline {
	t.Helper()
	c, err := NewBSpline(pts, degree, form)
	if err != nil {
		t.Fatalf("NewBSpline: %v", err)
	}
	return c
}

// wavePoints returns n points on a gentle sine wave along x, a
// well-conditioned open test curve.
func wavePoints(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		x := float64(i)
		pts[i] = Pt(x, math.Sin(x*0.7), 0.25*x)
	}
	return pts
}

// ringPoints returns n points evenly spaced on a circle of the given radius
// in the xy plane.
func ringPoints(n int, radius float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		th := 2.0 * math.Pi * float64(i) / float64(n)
		s, c := math.Sincos(th)
		pts[i] = Pt(radius*c, radius*s, 0)
	}
	return pts
}
