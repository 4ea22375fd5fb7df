package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func controlPoints(t *testing.T, ev Evaluator) []Point {
	t.Helper()
	cp, ok := ev.(ControlPointer)
	require.True(t, ok, "curve %T does not expose control points", ev)
	return cp.ControlPoints()
}

func TestInsertCVsOpenCount(t *testing.T) {
	// n + (n-1)*divisions control points for open curves.
	c := mustBSpline(t, wavePoints(5), 3, FormOpen)
	refined, err := NewRefiner(c).InsertCVs(2)
	require.NoError(t, err)

	assert.Len(t, controlPoints(t, refined), 5+4*2)
	assert.Equal(t, 3, refined.Degree())
	assert.Equal(t, FormOpen, refined.Form())
}

func TestInsertCVsClosedCount(t *testing.T) {
	// n * (1+divisions) control points; the wrap-around gap is
	// subdivided too.
	for _, form := range []Form{FormClosed, FormPeriodic} {
		c := mustBSpline(t, ringPoints(5, 2), 3, form)
		refined, err := NewRefiner(c).InsertCVs(1)
		require.NoError(t, err, "form %v", form)

		assert.Len(t, controlPoints(t, refined), 5*2, "form %v", form)
		assert.Equal(t, form, refined.Form())
	}
}

func TestInsertCVsDegree1(t *testing.T) {
	pts := []Point{Pt(0, 0, 0), Pt(2, 1, 0), Pt(4, 1, 1), Pt(6, 0, 1)}
	c := mustBSpline(t, pts, 1, FormOpen)
	refined, err := NewRefiner(c).InsertCVs(1)
	require.NoError(t, err)

	got := controlPoints(t, refined)
	require.Len(t, got, 4+3*1)
	assert.Equal(t, 1, refined.Degree())

	// The auxiliary fit interpolates the original points, so they survive
	// at every second index.
	for i, want := range pts {
		assert.InDelta(t, 0, want.Distance(got[2*i]), 1e-5, "control point %d", i)
	}
}

func TestInsertCVsTwoPointSegment(t *testing.T) {
	// A straight two-point segment subdivides by exact interpolation:
	// parametric fractions 0, 1/3, 2/3, 1.
	c := mustBSpline(t, []Point{Pt(0, 0, 0), Pt(3, 3, 0)}, 1, FormOpen)
	refined, err := NewRefiner(c).InsertCVs(2)
	require.NoError(t, err)

	want := []Point{Pt(0, 0, 0), Pt(1, 1, 0), Pt(2, 2, 0), Pt(3, 3, 0)}
	diff(t, want, controlPoints(t, refined), approx(1e-9))
}

func TestInsertCVsTwoPointClosed(t *testing.T) {
	// A closed two-point curve doubles back on itself; both legs are
	// subdivided, so the n*(1+divisions) count holds here too.
	c := mustBSpline(t, []Point{Pt(0, 0, 0), Pt(3, 3, 0)}, 1, FormClosed)
	refined, err := NewRefiner(c).InsertCVs(2)
	require.NoError(t, err)

	want := []Point{
		Pt(0, 0, 0), Pt(1, 1, 0), Pt(2, 2, 0),
		Pt(3, 3, 0), Pt(2, 2, 0), Pt(1, 1, 0),
	}
	diff(t, want, controlPoints(t, refined), approx(1e-9))
	assert.Equal(t, FormClosed, refined.Form())
}

func TestInsertCVsClosedSpacing(t *testing.T) {
	// Arc-length spacing between consecutive control points of a refined
	// closed curve, measured with the wrap-around difference for the seam
	// gap. Every gap is positive and the gaps tile the curve exactly.
	c := mustBSpline(t, ringPoints(4, 2), 1, FormPeriodic)
	refined, err := NewRefiner(c).InsertCVs(1)
	require.NoError(t, err)

	pts := controlPoints(t, refined)
	require.Len(t, pts, 8)
	total := refined.Arclen()
	lengths := make([]float64, len(pts))
	for i, pt := range pts {
		_, u, err := refined.Nearest(pt)
		require.NoError(t, err)
		lengths[i] = refined.LengthAt(u)
	}

	var sum float64
	for i := range pts {
		next := lengths[(i+1)%len(pts)]
		gap := next - lengths[i]
		if gap <= 0 {
			gap = total - lengths[i] + next
		}
		assert.Greater(t, gap, 0.0, "gap after control point %d", i)
		assert.Less(t, gap, total, "gap after control point %d", i)
		sum += gap
	}
	assert.InDelta(t, total, sum, 1e-6)
}

func TestInsertCVsPreservesShape(t *testing.T) {
	c := mustBSpline(t, wavePoints(6), 3, FormOpen)
	refined, err := NewRefiner(c).InsertCVs(2)
	require.NoError(t, err)

	// Sampling the refined curve stays close to the original.
	s := NewSampler(refined)
	samples, err := s.UniformByLength(20)
	require.NoError(t, err)
	for _, sm := range samples {
		nearest, _, err := c.Nearest(sm.Pos)
		require.NoError(t, err)
		assert.InDelta(t, 0, nearest.Distance(sm.Pos), 2e-2)
	}
}

// stubCurve lets tests hand the refiner degrees and forms that BSpline
// cannot represent.
type stubCurve struct {
	degree int
}

func (s stubCurve) Eval(float64) Point                   { return Point{} }
func (s stubCurve) Nearest(Point) (Point, float64, error) { return Point{}, 0, nil }
func (s stubCurve) LengthAt(float64) float64             { return 0 }
func (s stubCurve) ParamAt(float64) (float64, error)     { return 0, nil }
func (s stubCurve) Domain() (min, max float64)           { return 0, 1 }
func (s stubCurve) SpanCount() int                       { return 1 }
func (s stubCurve) Degree() int                          { return s.degree }
func (s stubCurve) Form() Form                           { return FormOpen }
func (s stubCurve) Arclen() float64                      { return 0 }
func (s stubCurve) OnCurve(Point, float64) bool          { return false }

func TestInsertCVsErrors(t *testing.T) {
	c := mustBSpline(t, wavePoints(5), 3, FormOpen)

	var aerr *InvalidArgumentError
	_, err := NewRefiner(c).InsertCVs(0)
	require.ErrorAs(t, err, &aerr)

	var derr *UnsupportedDegreeError
	_, err = NewRefiner(stubCurve{degree: 2}).InsertCVs(1)
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 2, derr.Degree)
}

func maxTargetDistance(t *testing.T, ev Evaluator, targets []Point) float64 {
	t.Helper()
	var worst float64
	for _, pt := range targets {
		nearest, _, err := ev.Nearest(pt)
		require.NoError(t, err)
		worst = max(worst, nearest.Distance(pt))
	}
	return worst
}

func TestCenterConverges(t *testing.T) {
	// Build a curve from on-curve positions: its control points drift off
	// the curve, and centering must pull the curve back through them.
	targets := wavePoints(6)
	c := mustBSpline(t, targets, 3, FormOpen)
	r := NewRefiner(c)

	before := maxTargetDistance(t, c, targets[1:5])
	require.Greater(t, before, 1e-4, "test curve should start off its targets")

	centered, converged, err := r.Center(c, targets, CenterOptions{})
	require.NoError(t, err)
	assert.True(t, converged)
	assert.Less(t, maxTargetDistance(t, centered, targets[1:5]), 2e-6)
}

func TestCenterReducesDistanceMonotonically(t *testing.T) {
	targets := wavePoints(6)
	c := mustBSpline(t, targets, 3, FormOpen)
	r := NewRefiner(c)

	prev := maxTargetDistance(t, c, targets[1:5])
	for _, iters := range []int{1, 2, 4, 8} {
		centered, _, err := r.Center(c, targets, CenterOptions{Iterations: iters})
		require.NoError(t, err)
		d := maxTargetDistance(t, centered, targets[1:5])
		assert.LessOrEqual(t, d, prev+1e-9, "distance grew at %d iterations", iters)
		prev = d
	}
}

func TestCenterDegree1Unchanged(t *testing.T) {
	pts := []Point{Pt(0, 0, 0), Pt(1, 1, 0), Pt(2, 0, 0)}
	c := mustBSpline(t, pts, 1, FormOpen)

	centered, converged, err := NewRefiner(c).Center(c, pts, CenterOptions{})
	require.NoError(t, err)
	assert.True(t, converged)
	assert.Same(t, Evaluator(c), centered)
}
