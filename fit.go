package resample

import (
	"gonum.org/v1/gonum/mat"
)

// FitPoints fits a smooth open cubic B-spline through the given points, in
// order. The result interpolates every input point exactly.
//
// The fit uses global curve interpolation (The NURBS Book, algorithm A9.1):
// the points are assigned chord-length parameters, the knot vector is
// derived by parameter averaging, and the control points fall out of a
// linear solve of the basis-function collocation matrix.
//
// Consecutive coincident points make the collocation matrix singular and
// fail with [GeometryError].
func FitPoints(pts []Point) (*BSpline, error) {
	if len(pts) < 2 {
		return nil, invalidArgf("need at least 2 points to fit a curve, got %d", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].DistanceSquared(pts[i-1]) == 0.0 {
			return nil, geometryErrf("coincident consecutive points at index %d", i)
		}
	}

	// A cubic needs at least 4 control points. Densify short inputs with
	// chord midpoints; the fit still interpolates the originals.
	work := append([]Point(nil), pts...)
	for len(work) < 4 {
		dense := make([]Point, 0, 2*len(work)-1)
		for i, pt := range work {
			if i > 0 {
				dense = append(dense, work[i-1].Midpoint(pt))
			}
			dense = append(dense, pt)
		}
		work = dense
	}

	const degree = 3
	n := len(work)

	// Chord-length parameterization over [0, 1].
	ubar := make([]float64, n)
	var total float64
	for i := 1; i < n; i++ {
		total += work[i].Distance(work[i-1])
	}
	var acc float64
	for i := 1; i < n; i++ {
		acc += work[i].Distance(work[i-1])
		ubar[i] = acc / total
	}
	ubar[n-1] = 1.0

	// Knot vector by parameter averaging.
	knots := make(knotVec, n+degree+1)
	for i := 0; i <= degree; i++ {
		knots[i] = 0.0
		knots[n+i] = 1.0
	}
	for j := 1; j <= n-degree-1; j++ {
		var sum float64
		for i := j; i <= j+degree-1; i++ {
			sum += ubar[i]
		}
		knots[j+degree] = sum / degree
	}

	coef := mat.NewDense(n, n, nil)
	rhs := mat.NewDense(n, 3, nil)
	for k := 0; k < n; k++ {
		span := knots.span(n, degree, ubar[k])
		b := knots.basisFuns(span, degree, ubar[k])
		for i := 0; i <= degree; i++ {
			coef.Set(k, span-degree+i, b[i])
		}
		rhs.Set(k, 0, work[k].X)
		rhs.Set(k, 1, work[k].Y)
		rhs.Set(k, 2, work[k].Z)
	}

	var sol mat.Dense
	if err := sol.Solve(coef, rhs); err != nil {
		return nil, geometryErrf("interpolation matrix is singular: %v", err)
	}
	ctrl := make([]Point, n)
	for i := range ctrl {
		ctrl[i] = Pt(sol.At(i, 0), sol.At(i, 1), sol.At(i, 2))
	}
	return newBSplineKnots(ctrl, degree, knots)
}
