package resample

import (
	"fmt"
	"log/slog"
)

// CenterOptions bounds the fixed-point loop of [Refiner.Center]. The zero
// value selects [DefaultMaxIterations] and [DefaultAccuracy].
type CenterOptions struct {
	Iterations int
	Tolerance  float64
}

func (opts *CenterOptions) defaults() {
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultAccuracy
	}
}

// Refiner increases the control point density of a curve while preserving
// its shape. Builder constructs the refined curves and Fitter supplies the
// auxiliary smooth curve needed for degree-1 input; both default to
// [BSplineBuilder]. Logger, if set, receives debug output and the
// non-fatal centering warning.
type Refiner struct {
	Curve   Evaluator
	Builder Builder
	Fitter  Fitter
	Logger  *slog.Logger
}

// NewRefiner returns a Refiner for the given curve, backed by
// [BSplineBuilder] for curve construction and fitting.
func NewRefiner(curve Evaluator) *Refiner {
	return &Refiner{
		Curve:   curve,
		Builder: BSplineBuilder{},
		Fitter:  BSplineBuilder{},
	}
}

// InsertCVs rebuilds the curve with divisions additional control points
// inserted into every gap between neighboring control points, placed at
// equal arc-length subdivisions of the gap. An n-point open curve yields
// n + (n-1)*divisions points; closed and periodic curves subdivide the
// wrap-around gap as well and yield n * (1+divisions) points.
//
// The inserted points lie on the curve connecting the existing control
// points' closest on-curve positions, so the rebuilt curve preserves the
// original shape as closely as the degree allows. Degree-3 results are
// additionally centered (see [Refiner.Center]) to compensate for the drift
// between control points and the curve itself; degree-1 input is measured
// along an auxiliary smooth fit instead, whose own arc-length map is
// meaningful where the polyline's is not.
//
// Only degrees 1 and 3 are supported. A two-point curve is a straight
// segment and subdivides by exact linear interpolation; in closed form it
// doubles back on itself and the return leg is subdivided the same way.
func (r *Refiner) InsertCVs(divisions int) (Evaluator, error) {
	if divisions < 1 {
		return nil, invalidArgf("divisions must be 1 or more, got %d", divisions)
	}
	degree := r.Curve.Degree()
	if degree != 1 && degree != 3 {
		return nil, &UnsupportedDegreeError{Degree: degree}
	}
	cp, ok := r.Curve.(ControlPointer)
	if !ok {
		return nil, invalidArgf("curve of type %T does not expose control points", r.Curve)
	}
	pts := cp.ControlPoints()
	form := r.Curve.Form()
	open := form == FormOpen

	var newPts []Point
	switch {
	case len(pts) == 2:
		// A straight segment; uniform interpolation is exact and needs no
		// arc-length machinery. Closed forms run back along the same
		// segment, so the return leg is subdivided too.
		newPts = append(newPts, pts[0])
		for j := 1; j <= divisions; j++ {
			newPts = append(newPts, pts[0].Lerp(pts[1], float64(j)/float64(divisions+1)))
		}
		newPts = append(newPts, pts[1])
		if !open {
			for j := 1; j <= divisions; j++ {
				newPts = append(newPts, pts[1].Lerp(pts[0], float64(j)/float64(divisions+1)))
			}
		}
	case degree == 1:
		fitInput := pts
		if !open {
			// Route the fit through the seam so the wrap-around gap is
			// part of the auxiliary curve's arc-length map.
			fitInput = append(append([]Point(nil), pts...), pts[0])
		}
		aux, err := r.Fitter.Fit(fitInput)
		if err != nil {
			return nil, fmt.Errorf("fit auxiliary curve: %w", err)
		}
		newPts, err = subdivideGaps(aux, pts, divisions, open)
		if err != nil {
			return nil, err
		}
	default:
		var err error
		newPts, err = subdivideGaps(r.Curve, pts, divisions, open)
		if err != nil {
			return nil, err
		}
	}

	rebuilt, err := r.Builder.Build(newPts, degree, form)
	if err != nil {
		return nil, fmt.Errorf("build refined curve: %w", err)
	}
	if degree != 3 {
		return rebuilt, nil
	}
	rcp, ok := rebuilt.(ControlPointer)
	if !ok {
		return rebuilt, nil
	}
	centered, _, err := r.Center(rebuilt, rcp.ControlPoints(), CenterOptions{})
	if err != nil {
		return nil, err
	}
	return centered, nil
}

// subdivideGaps places divisions new points at equal arc-length
// subdivisions of every gap between consecutive control points, measured
// along ev. For open curves the final control point closes the sequence;
// otherwise the wrap-around gap from the last point back to the first is
// subdivided too.
func subdivideGaps(ev Evaluator, pts []Point, divisions int, open bool) ([]Point, error) {
	n := len(pts)
	closest := make([]Point, n)
	lengths := make([]float64, n)
	for i, pt := range pts {
		cpt, t, err := ev.Nearest(pt)
		if err != nil {
			return nil, fmt.Errorf("closest point for control point %d: %w", i, err)
		}
		closest[i] = cpt
		lengths[i] = ev.LengthAt(t)
	}
	total := ev.Arclen()

	gaps := n
	if open {
		gaps = n - 1
	}
	out := make([]Point, 0, gaps*(1+divisions)+1)
	for i := 0; i < gaps; i++ {
		out = append(out, closest[i])

		next := lengths[(i+1)%n]
		var diff float64
		if next > lengths[i] {
			diff = next - lengths[i]
		} else {
			// Wrap-around gap; never a negative length.
			diff = total - lengths[i] + next
		}
		for j := 1; j <= divisions; j++ {
			length := lengths[i] + diff*float64(j)/float64(divisions+1)
			if length > total {
				length -= total
			}
			t, err := ev.ParamAt(length)
			if err != nil {
				return nil, fmt.Errorf("subdivide gap %d: %w", i, err)
			}
			out = append(out, ev.Eval(t))
		}
	}
	if open {
		out = append(out, closest[n-1])
	}
	return out, nil
}

// Center iteratively nudges the curve's control points so that the curve
// passes through the given target positions; targets must correspond to
// the curve's control points one to one. For degree-3 curves, control
// points are not interpolation points, so a curve rebuilt from on-curve
// positions drifts away from them; centering compensates.
//
// Each pass translates every adjustable control point by the offset from
// the current curve's closest point to its target, then rebuilds the curve
// through the Builder. The endpoints of open curves already interpolate
// and are left alone. The loop stops early once every target lies on the
// curve within opts.Tolerance.
//
// Centering is a damped fixed-point iteration with no convergence
// guarantee. Exhausting the iteration bound is not an error: the
// best-effort curve is returned with converged set to false, and a warning
// is logged. Degree-1 curves pass through their control points already and
// are returned unchanged.
func (r *Refiner) Center(curve Evaluator, targets []Point, opts CenterOptions) (Evaluator, bool, error) {
	opts.defaults()
	if curve.Degree() != 3 {
		return curve, true, nil
	}
	cp, ok := curve.(ControlPointer)
	if !ok {
		return nil, false, invalidArgf("curve of type %T does not expose control points", curve)
	}
	ctrl := cp.ControlPoints()
	if len(targets) != len(ctrl) {
		return nil, false, invalidArgf("got %d targets for %d control points", len(targets), len(ctrl))
	}

	first, last := 0, len(ctrl)
	if curve.Form() == FormOpen {
		first, last = 1, len(ctrl)-1
	}

	cur := curve
	converged := false
	count := 0
	for ; count < opts.Iterations; count++ {
		for i := first; i < last; i++ {
			nearest, _, err := cur.Nearest(targets[i])
			if err != nil {
				return nil, false, fmt.Errorf("center curve: %w", err)
			}
			ctrl[i] = ctrl[i].Translate(targets[i].Sub(nearest))
		}
		rebuilt, err := r.Builder.Build(ctrl, curve.Degree(), curve.Form())
		if err != nil {
			return nil, false, fmt.Errorf("center curve: %w", err)
		}
		cur = rebuilt

		onCurve := true
		for i := first; i < last; i++ {
			if !cur.OnCurve(targets[i], opts.Tolerance) {
				onCurve = false
				break
			}
		}
		if onCurve {
			converged = true
			count++
			break
		}
	}
	if r.Logger != nil {
		r.Logger.Debug("centering finished", "iterations", count, "max", opts.Iterations)
		if !converged {
			r.Logger.Warn("failed to center the curve", "iterations", count)
		}
	}
	return cur, converged, nil
}
