package resample

import "math"

const machineEpsilon = 2.220446049250313e-16

// Brent solves an arbitrary function for a zero-crossing using [Brent's
// method], combining bisection with secant and inverse quadratic
// interpolation steps.
//
// The a and b parameters represent the lower and upper bounds of the
// bracket searched for a solution; f(a) and f(b) must have opposite signs,
// otherwise the solve fails with [ConvergenceError]. Like bisection the
// method cannot escape the bracket, but on smooth functions it converges
// superlinearly.
//
// The returned parameter is within tol of the zero-crossing. If no such
// value is found within maxIter iterations, the solve fails with
// [ConvergenceError].
//
// [Brent's method]: https://en.wikipedia.org/wiki/Brent%27s_method
func Brent(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa := f(a)
	fb := f(b)
	if fa == 0.0 {
		return a, nil
	}
	if fb == 0.0 {
		return b, nil
	}
	if (fa > 0.0) == (fb > 0.0) {
		return 0, &ConvergenceError{Op: "root solve"}
	}
	c, fc := a, fa
	d := b - a
	e := d
	for iter := 0; iter < maxIter; iter++ {
		if (fb > 0.0) == (fc > 0.0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol1 := 2.0*machineEpsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0.0 {
			return b, nil
		}
		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation; fall back to the
			// secant method when only two distinct points are available.
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2.0 * xm * s
				q = 1.0 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2.0*xm*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (s - 1.0)
			}
			if p > 0.0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3.0*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2.0*p < min(min1, min2) {
				// Interpolation is acceptable.
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}
	return b, &ConvergenceError{Op: "root solve", Iterations: maxIter}
}
