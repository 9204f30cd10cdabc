package triangle

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"dxf-viewer/pkg/geometry"
)

// surveyChain builds a two-triangle chain to fit against.
func surveyChain(t *testing.T) *Chain {
	t.Helper()
	chain := NewChain()
	if _, err := chain.AddRoot(5, 4, 3, geometry.Point2D{}); err != nil {
		t.Fatal(err)
	}
	if _, err := chain.Attach(1, SideB, 4, 4); err != nil {
		t.Fatal(err)
	}
	return chain
}

// measure applies rotation (degrees), uniform scale and translation to a
// solved vertex, standing in for a field measurement.
func measure(chain *Chain, number, vertex int, rotDeg, scale, tx, ty float64) ControlPoint {
	tri, _ := chain.Get(number)
	p := tri.Points[vertex]
	sin, cos := math.Sincos(rotDeg * math.Pi / 180)
	return ControlPoint{
		TriangleNumber: number,
		Vertex:         vertex,
		Measured: geometry.Point2D{
			X: scale*(p.X*cos-p.Y*sin) + tx,
			Y: scale*(p.X*sin+p.Y*cos) + ty,
		},
	}
}

func TestFitRigidRecoversPose(t *testing.T) {
	chain := surveyChain(t)
	points := []ControlPoint{
		measure(chain, 1, 0, 30, 1, 10, -5),
		measure(chain, 1, 1, 30, 1, 10, -5),
		measure(chain, 2, 2, 30, 1, 10, -5),
	}

	transform, residual, err := chain.Fit(points, false)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !scalar.EqualWithinAbs(residual, 0, 1e-6) {
		t.Errorf("residual = %g, want ~0 for exact control points", residual)
	}
	for _, cp := range points {
		tri, _ := chain.Get(cp.TriangleNumber)
		got := transform.Apply(tri.Points[cp.Vertex])
		if !scalar.EqualWithinAbs(got.X, cp.Measured.X, 1e-6) ||
			!scalar.EqualWithinAbs(got.Y, cp.Measured.Y, 1e-6) {
			t.Errorf("vertex maps to %+v, want %+v", got, cp.Measured)
		}
	}

	// The recovered rotation must be the 30 degrees that was applied.
	theta := math.Atan2(transform.C, transform.A) * 180 / math.Pi
	if !scalar.EqualWithinAbs(theta, 30, 1e-6) {
		t.Errorf("recovered rotation = %g, want 30", theta)
	}
}

func TestFitAffineAbsorbsScale(t *testing.T) {
	chain := surveyChain(t)
	points := []ControlPoint{
		measure(chain, 1, 0, -20, 2.5, 3, 7),
		measure(chain, 1, 1, -20, 2.5, 3, 7),
		measure(chain, 1, 2, -20, 2.5, 3, 7),
		measure(chain, 2, 2, -20, 2.5, 3, 7),
	}

	_, residual, err := chain.Fit(points, true)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !scalar.EqualWithinAbs(residual, 0, 1e-6) {
		t.Errorf("affine residual = %g, want ~0", residual)
	}

	// A rigid fit cannot absorb the scale; it must leave real residual.
	_, rigidResidual, err := chain.Fit(points, false)
	if err != nil {
		t.Fatalf("Fit(rigid): %v", err)
	}
	if rigidResidual < 0.1 {
		t.Errorf("rigid residual = %g, expected the scale mismatch to show", rigidResidual)
	}
}

func TestAlignMovesChainOntoControlPoints(t *testing.T) {
	chain := surveyChain(t)
	points := []ControlPoint{
		measure(chain, 1, 0, 45, 1, -12, 8),
		measure(chain, 1, 1, 45, 1, -12, 8),
		measure(chain, 2, 2, 45, 1, -12, 8),
	}

	residual, err := chain.Align(points)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if !scalar.EqualWithinAbs(residual, 0, 1e-6) {
		t.Errorf("residual = %g, want ~0", residual)
	}

	// After alignment the re-solved chain sits on the measurements.
	for _, cp := range points {
		tri, err := chain.Get(cp.TriangleNumber)
		if err != nil {
			t.Fatal(err)
		}
		got := tri.Points[cp.Vertex]
		if !scalar.EqualWithinAbs(got.X, cp.Measured.X, 1e-6) ||
			!scalar.EqualWithinAbs(got.Y, cp.Measured.Y, 1e-6) {
			t.Errorf("vertex at %+v, want %+v", got, cp.Measured)
		}
	}

	// Side lengths survive a rigid alignment untouched.
	root, _ := chain.Get(1)
	if root.Lengths != [3]float64{5, 4, 3} {
		t.Errorf("root lengths changed to %v", root.Lengths)
	}
}

func TestFitRejectsBadControlPoints(t *testing.T) {
	chain := surveyChain(t)

	if _, _, err := chain.Fit(nil, false); err == nil {
		t.Error("expected an error for no control points")
	}
	if _, _, err := chain.Fit([]ControlPoint{{TriangleNumber: 99}}, false); err == nil {
		t.Error("expected an error for an unknown triangle")
	}
	if _, _, err := chain.Fit([]ControlPoint{{TriangleNumber: 1, Vertex: 5}}, false); err == nil {
		t.Error("expected an error for an invalid vertex")
	}
}
