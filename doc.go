// Package resample provides arc-length-parameterized resampling, refinement,
// and centering of piecewise-polynomial (NURBS-like) curves in 3D space.
//
// It grew out of rigging tooling for 3D content creation, where curves that
// drive deformers routinely need more control points without a change in
// shape, or points spread at equal distances along or across a curve. The
// algorithms here are host-agnostic: they operate on the abstract [Evaluator]
// boundary and hand finished point sequences to a [Builder], so they work
// against any curve representation that can answer parameter, arc-length, and
// closest-point queries.
//
// # Features
//
//   - Conversion between curve parameters and arc lengths ([Sampler.LengthAt],
//     [Sampler.ParamAt])
//   - Sampling at uniform arc-length or parameter spacing
//     ([Sampler.UniformByLength], [Sampler.UniformByParam])
//   - Sampling at equal chord (straight-line) spacing
//     ([Sampler.EqualizeChordLength], [Sampler.Cloud])
//   - Control point insertion that preserves curve shape ([Refiner.InsertCVs])
//   - Iterative curve centering through target positions ([Refiner.Center])
//   - A self-contained non-rational B-spline implementation of the evaluator
//     boundary ([BSpline]), including interpolating curve fitting ([FitPoints])
//
// # Curves, evaluators, and builders
//
// [Evaluator] describes a curve parametrized over a knot domain: it can be
// evaluated at a parameter, queried for the closest on-curve point, and
// mapped between parameters and arc lengths. [ControlPointer] and
// [TangentEvaluator] are optional interfaces for curves that expose their
// control points or derivatives. [Builder] and [Fitter] are the construction
// collaborators: the refiner produces plain point sequences and leaves curve
// construction to them.
//
// [BSpline] implements all of the above for non-rational B-splines of degree
// 1 and 3 in open, closed, and periodic forms, following the algorithms of
// The NURBS Book. It exists so the package is usable stand-alone; hosts with
// their own curve engines only need to satisfy [Evaluator].
//
// # Numerical approach
//
// All iterative routines are bounded, synchronous loops: bracketed
// root-finding uses [Brent], inverse arc length solves against the monotonic
// length map, and centering is a damped fixed-point iteration with an
// explicit iteration cap. Arc lengths are computed by Gauss-Legendre
// quadrature of curve speed, one knot span at a time. Nothing in this package
// shares state between calls, and no operation suspends mid-computation.
//
// # Literature
//
//   - The NURBS Book, Piegl & Tiller, 2nd edition (basis function evaluation,
//     derivatives, global curve interpolation)
//   - [Brent's method]
//
// [Brent's method]: https://en.wikipedia.org/wiki/Brent%27s_method
package resample
