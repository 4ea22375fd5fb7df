package resample

// DefaultAccuracy is a default value for methods that take an accuracy
// argument. It is suitable for general-purpose interactive use.
const DefaultAccuracy = 1e-6

// Form describes how a curve's ends relate to each other.
type Form int

const (
	// FormOpen curves have distinct endpoints.
	FormOpen Form = iota
	// FormClosed curves connect their endpoints without tangent continuity.
	FormClosed
	// FormPeriodic curves connect their endpoints with full continuity.
	FormPeriodic
)

func (f Form) String() string {
	switch f {
	case FormOpen:
		return "open"
	case FormClosed:
		return "closed"
	case FormPeriodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Closed reports whether the curve's ends meet, i.e. whether arc-length
// arithmetic on it wraps around.
func (f Form) Closed() bool {
	return f == FormClosed || f == FormPeriodic
}

// Evaluator describes a curve parametrized over a knot domain. It is the
// boundary the sampler and refiner operate against; [BSpline] is the
// implementation provided by this package, but any curve representation that
// can answer these queries will do.
type Evaluator interface {
	// Eval evaluates the curve at parameter t. Parameters outside the
	// domain are clamped, or wrapped for periodic curves.
	Eval(t float64) Point
	// Nearest returns the on-curve point closest to pt, along with its
	// parameter.
	Nearest(pt Point) (Point, float64, error)
	// LengthAt returns the arc length from the domain start to t. It is
	// monotonically non-decreasing in t.
	LengthAt(t float64) float64
	// ParamAt is the inverse of LengthAt. For closed and periodic curves
	// the length wraps around; for open curves a length beyond the total
	// arc length is out of range.
	ParamAt(length float64) (float64, error)
	// Domain returns the knot domain [min, max].
	Domain() (min, max float64)
	// SpanCount returns the number of knot spans.
	SpanCount() int
	Degree() int
	Form() Form
	// Arclen returns the total arc length of the curve.
	Arclen() float64
	// OnCurve reports whether pt lies on the curve within tolerance.
	OnCurve(pt Point, tolerance float64) bool
}

// ControlPointer is an optional interface implemented by curves that expose
// their control points. Refinement requires it.
//
// For periodic and closed curves the returned slice holds only the distinct
// control points, without the wrap-around duplicates.
type ControlPointer interface {
	ControlPoints() []Point
}

// TangentEvaluator is an optional interface implemented by curves that can
// evaluate their derivative.
type TangentEvaluator interface {
	// EvalDeriv evaluates the point and derivative at parameter t.
	EvalDeriv(t float64) (Point, Vec3)
}

// Builder constructs a curve from an ordered control point sequence. It is
// the collaborator that [Refiner] hands its result back to.
type Builder interface {
	Build(pts []Point, degree int, form Form) (Evaluator, error)
}

// Fitter fits a smooth curve through an ordered point sequence. Refinement
// of degree-1 curves uses it to obtain an auxiliary curve with a meaningful
// arc-length map.
type Fitter interface {
	Fit(pts []Point) (Evaluator, error)
}
