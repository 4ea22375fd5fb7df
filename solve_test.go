package resample

import (
	"errors"
	"math"
	"testing"
)

func TestBrent(t *testing.T) {
	test := func(f func(float64) float64, a, b, want float64) {
		t.Helper()
		got, err := Brent(f, a, b, 1e-12, 100)
		if err != nil {
			t.Fatalf("Brent: %v", err)
		}
		if math.Abs(got-want) > 1e-10 {
			t.Errorf("got root %v, want %v", got, want)
		}
	}

	test(math.Cos, 0, 3, math.Pi/2)
	test(func(x float64) float64 { return x*x*x - 2*x - 5 }, 0, 3, 2.0945514815423265)
	test(func(x float64) float64 { return x - 0.25 }, 0, 1, 0.25)
	// Root at a bracket endpoint.
	test(func(x float64) float64 { return x }, 0, 1, 0)
}

func TestBrentNotBracketed(t *testing.T) {
	_, err := Brent(func(x float64) float64 { return x*x + 1 }, -1, 1, 1e-12, 100)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want ConvergenceError", err)
	}
	if cerr.Iterations != 0 {
		t.Errorf("bracket failure should report 0 iterations, got %d", cerr.Iterations)
	}
}

func TestBrentIterationCap(t *testing.T) {
	// A near-step function forces many bisection-like iterations.
	f := func(x float64) float64 { return math.Tanh(1e6 * (x - 0.123456789)) }
	_, err := Brent(f, 0, 1, 1e-15, 3)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want ConvergenceError", err)
	}
}
