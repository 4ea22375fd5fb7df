package resample

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// quadNodes is the number of Gauss-Legendre nodes used per knot span when
// integrating curve speed. 16 nodes put the quadrature error of a single
// cubic span well below DefaultAccuracy.
const quadNodes = 16

// BSpline is a non-rational B-spline curve in 3D space of degree 1 or 3. It
// implements [Evaluator], [ControlPointer], and [TangentEvaluator].
//
// A BSpline is immutable after construction. Open and closed curves use a
// clamped uniform knot vector with an integer domain of [0, spans]; periodic
// curves use an unclamped uniform knot vector and wrap their first degree
// control points.
type BSpline struct {
	degree int
	form   Form
	// ctrl holds the raw control points, including the wrap-around
	// duplicates appended for closed and periodic forms. numCtrl is the
	// count of distinct ones.
	ctrl    []Point
	numCtrl int
	knots   knotVec
	spans   int
	dmin    float64
	dmax    float64
	length  float64
}

var (
	_ Evaluator        = (*BSpline)(nil)
	_ ControlPointer   = (*BSpline)(nil)
	_ TangentEvaluator = (*BSpline)(nil)
)

// NewBSpline constructs a B-spline curve of the given degree and form from
// distinct control points. For closed and periodic forms the wrap-around
// control points are supplied implicitly; do not duplicate the first point
// at the end.
//
// The degree must be 1 or 3, and at least degree+1 control points are
// required. Control points that all coincide fail with [GeometryError].
func NewBSpline(pts []Point, degree int, form Form) (*BSpline, error) {
	if degree != 1 && degree != 3 {
		return nil, &UnsupportedDegreeError{Degree: degree}
	}
	if len(pts) < degree+1 {
		return nil, invalidArgf("degree %d needs at least %d control points, got %d", degree, degree+1, len(pts))
	}
	if coincident(pts) {
		return nil, geometryErrf("all %d control points coincide", len(pts))
	}

	c := &BSpline{
		degree:  degree,
		form:    form,
		numCtrl: len(pts),
	}
	switch form {
	case FormOpen, FormClosed:
		c.ctrl = append(c.ctrl, pts...)
		if form == FormClosed {
			c.ctrl = append(c.ctrl, pts[0])
		}
		c.spans = len(c.ctrl) - degree
		c.knots = clampedKnots(len(c.ctrl), degree)
	case FormPeriodic:
		c.ctrl = append(c.ctrl, pts...)
		c.ctrl = append(c.ctrl, pts[:degree]...)
		c.spans = len(pts)
		c.knots = periodicKnots(len(c.ctrl), degree)
	default:
		return nil, invalidArgf("unknown form %d", form)
	}
	c.dmin = c.knots[degree]
	c.dmax = c.knots[len(c.ctrl)]
	c.length = c.lengthAt(c.dmax)
	return c, nil
}

// newBSplineKnots constructs a curve over a caller-provided clamped knot
// vector. Used by [FitPoints], which derives its knots from the data
// parameterization.
func newBSplineKnots(pts []Point, degree int, knots knotVec) (*BSpline, error) {
	if len(knots) != len(pts)+degree+1 || !knots.nondecreasing() {
		return nil, geometryErrf("invalid knot vector of length %d for %d control points", len(knots), len(pts))
	}
	c := &BSpline{
		degree:  degree,
		form:    FormOpen,
		ctrl:    pts,
		numCtrl: len(pts),
		knots:   knots,
		spans:   len(pts) - degree,
	}
	c.dmin = knots[degree]
	c.dmax = knots[len(pts)]
	c.length = c.lengthAt(c.dmax)
	return c, nil
}

func coincident(pts []Point) bool {
	const epsilon = 1e-12
	for _, pt := range pts[1:] {
		if pt.DistanceSquared(pts[0]) > epsilon {
			return false
		}
	}
	return true
}

// clampedKnots returns the uniform clamped knot vector for n control points:
// degree+1 repeated knots at either end, integer interior knots.
func clampedKnots(n, degree int) knotVec {
	kv := make(knotVec, n+degree+1)
	spans := n - degree
	for i := range kv {
		switch {
		case i <= degree:
			kv[i] = 0.0
		case i >= n:
			kv[i] = float64(spans)
		default:
			kv[i] = float64(i - degree)
		}
	}
	return kv
}

// periodicKnots returns the uniform unclamped knot vector for n raw control
// points, running from -degree to n.
func periodicKnots(n, degree int) knotVec {
	kv := make(knotVec, n+degree+1)
	for i := range kv {
		kv[i] = float64(i - degree)
	}
	return kv
}

func (c *BSpline) Degree() int { return c.degree }

func (c *BSpline) Form() Form { return c.form }

func (c *BSpline) SpanCount() int { return c.spans }

// Domain returns the knot domain [min, max].
func (c *BSpline) Domain() (min, max float64) {
	return c.dmin, c.dmax
}

// Arclen returns the total arc length of the curve.
func (c *BSpline) Arclen() float64 { return c.length }

// ControlPoints returns the distinct control points, without the
// wrap-around duplicates of closed and periodic forms.
func (c *BSpline) ControlPoints() []Point {
	out := make([]Point, c.numCtrl)
	copy(out, c.ctrl[:c.numCtrl])
	return out
}

// clampParam maps t into the knot domain, wrapping for periodic curves and
// clamping otherwise.
func (c *BSpline) clampParam(t float64) float64 {
	if c.form == FormPeriodic {
		if t >= c.dmin && t <= c.dmax {
			return t
		}
		r := c.dmax - c.dmin
		t = math.Mod(t-c.dmin, r)
		if t < 0.0 {
			t += r
		}
		return c.dmin + t
	}
	return min(max(t, c.dmin), c.dmax)
}

// Eval evaluates the curve at parameter t using the De Boor basis functions
// (The NURBS Book, algorithm A3.1).
func (c *BSpline) Eval(t float64) Point {
	t = c.clampParam(t)
	span := c.knots.span(len(c.ctrl), c.degree, t)
	b := c.knots.basisFuns(span, c.degree, t)
	var acc Vec3
	for i := 0; i <= c.degree; i++ {
		acc = acc.Add(Vec3(c.ctrl[span-c.degree+i]).Mul(b[i]))
	}
	return Point(acc)
}

// EvalDeriv evaluates the point and first derivative at parameter t. The
// derivative is formed from the derivative curve's control points (The
// NURBS Book, algorithm A3.2), so no finite differencing is involved.
func (c *BSpline) EvalDeriv(t float64) (Point, Vec3) {
	t = c.clampParam(t)
	span := c.knots.span(len(c.ctrl), c.degree, t)
	b := c.knots.basisFuns(span, c.degree, t)
	var acc Vec3
	for i := 0; i <= c.degree; i++ {
		acc = acc.Add(Vec3(c.ctrl[span-c.degree+i]).Mul(b[i]))
	}

	db := c.knots.basisFuns(span, c.degree-1, t)
	var deriv Vec3
	p := float64(c.degree)
	for i := 0; i < c.degree; i++ {
		// b[i] is basis function k of degree-1; its coefficient is the
		// derivative control point Q_{k-1} = p (P_k − P_{k-1}) / Δknot.
		k := span - c.degree + 1 + i
		den := c.knots[k+c.degree] - c.knots[k]
		if den > 0.0 {
			q := c.ctrl[k].Sub(c.ctrl[k-1]).Mul(p / den)
			deriv = deriv.Add(q.Mul(db[i]))
		}
	}
	return Point(acc), deriv
}

func (c *BSpline) speed(t float64) float64 {
	_, d := c.EvalDeriv(t)
	return d.Hypot()
}

// LengthAt returns the arc length from the domain start to t, integrating
// curve speed with fixed Gauss-Legendre quadrature one knot span at a time.
func (c *BSpline) LengthAt(t float64) float64 {
	return c.lengthAt(c.clampParam(t))
}

func (c *BSpline) lengthAt(t float64) float64 {
	var length float64
	last := len(c.knots) - c.degree - 1
	for i := c.degree; i < last; i++ {
		a, b := c.knots[i], c.knots[i+1]
		if b <= a {
			continue
		}
		if t <= a {
			break
		}
		length += quad.Fixed(c.speed, a, min(b, t), quadNodes, quad.Legendre{}, 0)
	}
	return length
}

// ParamAt solves for the parameter at the given arc length from the domain
// start. The length map is monotonic, so a bracketed solve over the whole
// domain converges unconditionally.
//
// For closed and periodic curves, lengths beyond the total arc length wrap
// around. For open curves they fail with [OutOfRangeError], as do negative
// lengths on any form.
func (c *BSpline) ParamAt(length float64) (float64, error) {
	total := c.length
	if length < 0.0 {
		return 0, &OutOfRangeError{What: "arc length", Value: length, Min: 0, Max: total}
	}
	if length > total {
		switch {
		case c.form.Closed():
			length = math.Mod(length, total)
		case length-total <= DefaultAccuracy*max(total, 1.0):
			length = total
		default:
			return 0, &OutOfRangeError{What: "arc length", Value: length, Min: 0, Max: total}
		}
	}
	if length == 0.0 {
		return c.dmin, nil
	}
	if length == total {
		return c.dmax, nil
	}
	t, err := Brent(func(t float64) float64 {
		return c.lengthAt(t) - length
	}, c.dmin, c.dmax, 1e-10, 100)
	if err != nil {
		return 0, fmt.Errorf("param at length %g: %w", length, err)
	}
	return t, nil
}

// Nearest returns the on-curve point closest to pt, along with its
// parameter. It scans each knot span coarsely, refines the best candidate
// bracket with a golden-section search, and sharpens interior minima by
// solving for the zero crossing of the derivative dot product.
func (c *BSpline) Nearest(pt Point) (Point, float64, error) {
	if c.length < 1e-12 {
		return Point{}, 0, geometryErrf("zero-length curve has no well-defined closest point")
	}
	const samplesPerSpan = 16
	n := c.spans * samplesPerSpan
	h := (c.dmax - c.dmin) / float64(n)

	best := 0
	bestDist := pt.DistanceSquared(c.Eval(c.dmin))
	for i := 1; i <= n; i++ {
		d := pt.DistanceSquared(c.Eval(c.dmin + float64(i)*h))
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	lo := c.dmin + float64(best-1)*h
	hi := c.dmin + float64(best+1)*h
	if c.form != FormPeriodic {
		lo = max(lo, c.dmin)
		hi = min(hi, c.dmax)
	}
	dist2 := func(t float64) float64 {
		return pt.DistanceSquared(c.Eval(t))
	}
	t := goldenMin(dist2, lo, hi)

	// The squared distance is flat around its minimum, which caps the
	// parameter precision of the golden-section search at roughly the
	// square root of the distance. An interior minimum is also a zero
	// crossing of g(t) = (P(t) - pt) · P'(t); when the bracket straddles
	// one, solving for it directly recovers full precision. Minima at the
	// endpoints of an open curve have no crossing and keep the
	// golden-section result.
	g := func(t float64) float64 {
		p, d := c.EvalDeriv(t)
		return p.Sub(pt).Dot(d)
	}
	if ga, gb := g(lo), g(hi); ga == 0.0 || gb == 0.0 || (ga > 0.0) != (gb > 0.0) {
		if r, err := Brent(g, lo, hi, 1e-14, 100); err == nil && dist2(r) <= dist2(t) {
			t = r
		}
	}
	t = c.clampParam(t)
	return c.Eval(t), t, nil
}

// goldenMin minimizes a unimodal function over [a, b] with golden-section
// search.
func goldenMin(f func(float64) float64, a, b float64) float64 {
	const invPhi = 0.6180339887498949
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1, f2 := f(x1), f(x2)
	for iter := 0; iter < 80; iter++ {
		if b-a < 1e-12 {
			break
		}
		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
	}
	return 0.5 * (a + b)
}

// OnCurve reports whether pt lies on the curve within tolerance.
func (c *BSpline) OnCurve(pt Point, tolerance float64) bool {
	nearest, _, err := c.Nearest(pt)
	if err != nil {
		return false
	}
	return nearest.Distance(pt) <= tolerance
}

// BSplineBuilder is the [Builder] and [Fitter] backed by this package's own
// [BSpline] implementation.
type BSplineBuilder struct{}

func (BSplineBuilder) Build(pts []Point, degree int, form Form) (Evaluator, error) {
	return NewBSpline(pts, degree, form)
}

func (BSplineBuilder) Fit(pts []Point) (Evaluator, error) {
	return FitPoints(pts)
}
