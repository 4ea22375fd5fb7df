package resample

import "fmt"

// InvalidArgumentError reports a precondition violation, such as a
// non-positive division count. Operations fail with it before touching any
// curve data.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Msg
}

func invalidArgf(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedDegreeError reports a curve degree that refinement cannot
// handle. Only degrees 1 and 3 are supported.
type UnsupportedDegreeError struct {
	Degree int
}

func (e *UnsupportedDegreeError) Error() string {
	return fmt.Sprintf("unsupported degree %d, must be 1 or 3", e.Degree)
}

// OutOfRangeError reports a parameter or arc length outside of its valid
// range.
type OutOfRangeError struct {
	What     string
	Value    float64
	Min, Max float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.What, e.Value, e.Min, e.Max)
}

// ConvergenceError reports an iterative solve that did not reach its
// tolerance within the iteration bound, or that could not bracket a root at
// all.
type ConvergenceError struct {
	Op         string
	Iterations int
}

func (e *ConvergenceError) Error() string {
	if e.Iterations == 0 {
		return e.Op + ": root not bracketed"
	}
	return fmt.Sprintf("%s: no convergence after %d iterations", e.Op, e.Iterations)
}

// GeometryError reports degenerate curve geometry, such as a zero-extent
// curve, that breaks closest-point or arc-length queries.
type GeometryError struct {
	Msg string
}

func (e *GeometryError) Error() string {
	return "degenerate geometry: " + e.Msg
}

func geometryErrf(format string, args ...any) *GeometryError {
	return &GeometryError{Msg: fmt.Sprintf(format, args...)}
}
