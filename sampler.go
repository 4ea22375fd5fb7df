package resample

import (
	"fmt"
	"log/slog"
	"math"
)

// Defaults for the bounded numerical loops in this package.
const (
	DefaultMaxIterations      = 100
	DefaultChordTolerance     = 1e-5
	DefaultCloudMaxIterations = 500
	DefaultCloudStep          = 0.1
)

// Sample is a position on a curve together with the parameter it was
// evaluated at. Samples are ordered along the curve in insertion order.
type Sample struct {
	Pos   Point
	Param float64
}

// Sampler maps between curve parameters and arc lengths and generates
// evenly or custom-spaced samples on a curve.
type Sampler struct {
	curve Evaluator
}

func NewSampler(curve Evaluator) *Sampler {
	return &Sampler{curve: curve}
}

// LengthAt returns the arc length from the domain start to t. Parameters
// outside the knot domain fail with [OutOfRangeError]; periodic curves wrap
// instead.
func (s *Sampler) LengthAt(t float64) (float64, error) {
	dmin, dmax := s.curve.Domain()
	if s.curve.Form() != FormPeriodic && (t < dmin || t > dmax) {
		return 0, &OutOfRangeError{What: "parameter", Value: t, Min: dmin, Max: dmax}
	}
	return s.curve.LengthAt(t), nil
}

// ParamAt returns the parameter at the given arc length from the domain
// start. See [Evaluator.ParamAt] for the range and wraparound rules.
func (s *Sampler) ParamAt(length float64) (float64, error) {
	return s.curve.ParamAt(length)
}

// UniformByLength samples the curve at equal arc-length spacing. It
// produces divisions+1 points for open curves and divisions points
// otherwise, as the final sample of a closed or periodic curve would
// coincide with the first.
func (s *Sampler) UniformByLength(divisions int) ([]Sample, error) {
	if divisions < 1 {
		return nil, invalidArgf("divisions must be 1 or more, got %d", divisions)
	}
	total := s.curve.Arclen()
	numPoints := divisions
	if s.curve.Form() == FormOpen {
		numPoints++
	}
	out := make([]Sample, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		length := total * float64(i) / float64(divisions)
		t, err := s.curve.ParamAt(length)
		if err != nil {
			return nil, err
		}
		out = append(out, Sample{Pos: s.curve.Eval(t), Param: t})
	}
	return out, nil
}

// UniformByParam samples the curve at equal parameter spacing, with the
// same point counts as [Sampler.UniformByLength]. Unlike arc-length
// spacing, the euclidean gaps between the samples vary with curvature and
// knot distribution.
func (s *Sampler) UniformByParam(divisions int) ([]Sample, error) {
	if divisions < 1 {
		return nil, invalidArgf("divisions must be 1 or more, got %d", divisions)
	}
	dmin, dmax := s.curve.Domain()
	numPoints := divisions
	if s.curve.Form() == FormOpen {
		numPoints++
	}
	out := make([]Sample, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		t := dmin + (dmax-dmin)*float64(i)/float64(divisions)
		out = append(out, Sample{Pos: s.curve.Eval(t), Param: t})
	}
	return out, nil
}

// ChordOptions bounds the root solve of [Sampler.EqualizeChordLength]. The
// zero value selects [DefaultMaxIterations] and [DefaultChordTolerance].
type ChordOptions struct {
	MaxIterations int
	Tolerance     float64
}

func (opts *ChordOptions) defaults() {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultChordTolerance
	}
}

// EqualizeChordLength solves for the parameter at which the straight-line
// (chord) distance from the point at start equals target. Chord length and
// arc length diverge on curved sections; use this when samples must be a
// fixed euclidean distance apart rather than a fixed distance along the
// curve.
//
// The root is bracketed between start and the domain max. If the remaining
// piece of the curve cannot span the target chord, or the solve exhausts
// its iterations, the call fails with [ConvergenceError].
func (s *Sampler) EqualizeChordLength(start, target float64, opts ChordOptions) (float64, error) {
	opts.defaults()
	dmin, dmax := s.curve.Domain()
	if start < dmin || start >= dmax {
		return 0, &OutOfRangeError{What: "start parameter", Value: start, Min: dmin, Max: dmax}
	}
	if target <= 0.0 {
		return 0, invalidArgf("target chord length must be positive, got %g", target)
	}
	startPt := s.curve.Eval(start)
	t, err := Brent(func(t float64) float64 {
		return startPt.Distance(s.curve.Eval(t)) - target
	}, start, dmax, opts.Tolerance, opts.MaxIterations)
	if err != nil {
		return 0, fmt.Errorf("equalize chord length %g from %g: %w", target, start, err)
	}
	return t, nil
}

// CloudOptions bounds the outer adaptation loop of [Sampler.Cloud]. The
// zero value selects [DefaultCloudMaxIterations], [DefaultChordTolerance],
// and [DefaultCloudStep].
type CloudOptions struct {
	MaxIterations int
	Tolerance     float64
	// Step is the initial amount by which the common chord length is grown
	// or shrunk between passes. It shrinks by a factor of ten whenever the
	// loop overshoots.
	Step   float64
	Logger *slog.Logger
}

func (opts *CloudOptions) defaults() {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultCloudMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultChordTolerance
	}
	if opts.Step <= 0 {
		opts.Step = DefaultCloudStep
	}
}

// Cloud samples an open curve at divisions+1 points whose consecutive
// chord distances are all equal, endpoints included. This differs from
// [Sampler.UniformByLength]: the samples are equidistant in space, not
// along the curve.
//
// No closed form exists for the common chord length, so the method adapts
// it iteratively: a candidate length is marched from the curve start with
// [Sampler.EqualizeChordLength], then grown or shrunk depending on the gap
// left over at the curve end, with the step size shrinking on every
// overshoot. The loop is bounded by MaxIterations and additionally aborts
// with [ConvergenceError] when the candidate length or the step size
// underflows, which happens on pathological high-curvature geometry.
func (s *Sampler) Cloud(divisions int, opts CloudOptions) ([]Sample, error) {
	if s.curve.Form() != FormOpen {
		return nil, invalidArgf("chord-length cloud requires an open curve, got %v form", s.curve.Form())
	}
	if divisions < 2 {
		return nil, invalidArgf("divisions must be 2 or more, got %d", divisions)
	}
	opts.defaults()

	dmin, dmax := s.curve.Domain()
	endPoint := s.curve.Eval(dmax)
	chordOpts := ChordOptions{Tolerance: opts.Tolerance}

	// Seed with the chord of the whole curve; the true common length can
	// only be shorter than the arc-length split and longer than zero.
	length := s.curve.Eval(dmin).Distance(endPoint) / float64(divisions)
	step := opts.Step

	var params []float64
	count := 0
	overshot := false
	for ; count < opts.MaxIterations; count++ {
		params = params[:0]
		tmp := dmin
		overshot = false
		for j := 0; j < divisions-1; j++ {
			t, err := s.EqualizeChordLength(tmp, length, chordOpts)
			if err != nil {
				// The remaining curve cannot span the candidate chord.
				length -= step
				step *= 0.1
				overshot = true
				break
			}
			params = append(params, t)
			tmp = t
		}
		if length <= 0.0 || step < 1e-12 {
			return nil, &ConvergenceError{Op: "chord-length cloud", Iterations: count}
		}
		if overshot {
			continue
		}

		endLength := endPoint.Distance(s.curve.Eval(params[len(params)-1]))
		if math.Abs(endLength-length) < opts.Tolerance {
			break
		}
		if endLength > length {
			length += step
		} else {
			length -= step
			step *= 0.1
		}
	}
	if opts.Logger != nil {
		opts.Logger.Debug("chord-length cloud finished", "iterations", count, "max", opts.MaxIterations)
	}
	if count == opts.MaxIterations {
		// A capped-out but complete march is still returned, with a warning.
		if overshot {
			return nil, &ConvergenceError{Op: "chord-length cloud", Iterations: count}
		}
		if opts.Logger != nil {
			opts.Logger.Warn("chord-length cloud hit its iteration bound", "iterations", count)
		}
	}

	out := make([]Sample, 0, len(params)+2)
	out = append(out, Sample{Pos: s.curve.Eval(dmin), Param: dmin})
	for _, t := range params {
		out = append(out, Sample{Pos: s.curve.Eval(t), Param: t})
	}
	out = append(out, Sample{Pos: endPoint, Param: dmax})
	return out, nil
}
