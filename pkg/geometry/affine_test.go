package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func transformsClose(t *testing.T, got, want AffineTransform, tolerance float64) {
	t.Helper()
	pairs := [][2]float64{
		{got.A, want.A}, {got.B, want.B}, {got.TX, want.TX},
		{got.C, want.C}, {got.D, want.D}, {got.TY, want.TY},
	}
	for _, pair := range pairs {
		if !scalar.EqualWithinAbs(pair[0], pair[1], tolerance) {
			t.Errorf("transform mismatch:\ngot  %+v\nwant %+v", got, want)
			return
		}
	}
}

func TestApplyAndCompose(t *testing.T) {
	rot := Rotation(math.Pi / 2)
	trans := Translation(10, 20)

	// Compose applies the right operand first.
	combined := trans.Compose(rot)
	got := combined.Apply(Point2D{X: 1, Y: 0})
	if !scalar.EqualWithinAbs(got.X, 10, 1e-12) || !scalar.EqualWithinAbs(got.Y, 21, 1e-12) {
		t.Errorf("rotate-then-translate of (1,0) = %+v, want (10, 21)", got)
	}

	if got := Scaling(2, 3).Apply(Point2D{X: 4, Y: 5}); got != (Point2D{X: 8, Y: 15}) {
		t.Errorf("Scaling.Apply = %+v, want (8, 15)", got)
	}
	if got := Identity().Apply(Point2D{X: 4, Y: 5}); got != (Point2D{X: 4, Y: 5}) {
		t.Errorf("Identity.Apply = %+v", got)
	}
}

func TestInverse(t *testing.T) {
	transform := Translation(10, 20).Compose(Rotation(0.7)).Compose(Scaling(2, 2))
	inverse, ok := transform.Inverse()
	if !ok {
		t.Fatal("invertible transform reported singular")
	}

	p := Point2D{X: 3.5, Y: -8}
	got := inverse.Apply(transform.Apply(p))
	if !scalar.EqualWithinAbs(got.X, p.X, 1e-9) || !scalar.EqualWithinAbs(got.Y, p.Y, 1e-9) {
		t.Errorf("inverse round trip = %+v, want %+v", got, p)
	}

	if _, ok := Scaling(0, 1).Inverse(); ok {
		t.Error("singular transform reported invertible")
	}
}

func TestFitAffineRecoversKnownTransform(t *testing.T) {
	want := AffineTransform{A: 1.5, B: -0.3, TX: 12, C: 0.4, D: 2.1, TY: -7}

	src := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 7, Y: 3}}
	dst := make([]Point2D, len(src))
	for i, p := range src {
		dst[i] = want.Apply(p)
	}

	got, err := FitAffine(src, dst)
	if err != nil {
		t.Fatalf("FitAffine: %v", err)
	}
	transformsClose(t, got, want, 1e-9)

	if residual := MeanResidual(src, dst, got); !scalar.EqualWithinAbs(residual, 0, 1e-9) {
		t.Errorf("residual = %g, want ~0", residual)
	}
}

func TestFitAffineArgumentChecks(t *testing.T) {
	two := []Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if _, err := FitAffine(two, two); err == nil {
		t.Error("expected an error for fewer than 3 points")
	}
	three := []Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	if _, err := FitAffine(three, two); err == nil {
		t.Error("expected an error for mismatched point counts")
	}
}

func TestFitRigidRecoversRotationAndTranslation(t *testing.T) {
	theta := 0.6
	want := Translation(-4, 9).Compose(Rotation(theta))

	src := []Point2D{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5}}
	dst := make([]Point2D, len(src))
	for i, p := range src {
		dst[i] = want.Apply(p)
	}

	got, err := FitRigid(src, dst)
	if err != nil {
		t.Fatalf("FitRigid: %v", err)
	}
	transformsClose(t, got, want, 1e-9)

	// The rotation block stays orthonormal.
	if det := got.A*got.D - got.B*got.C; !scalar.EqualWithinAbs(det, 1, 1e-9) {
		t.Errorf("rotation determinant = %g, want 1", det)
	}
}

func TestFitRigidIgnoresScale(t *testing.T) {
	// Scaled data cannot be matched rigidly; the fit must keep unit scale
	// and report the mismatch as residual.
	src := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	dst := make([]Point2D, len(src))
	for i, p := range src {
		dst[i] = p.Scale(2)
	}

	got, err := FitRigid(src, dst)
	if err != nil {
		t.Fatalf("FitRigid: %v", err)
	}
	if norm := math.Hypot(got.A, got.C); !scalar.EqualWithinAbs(norm, 1, 1e-9) {
		t.Errorf("column norm = %g, rigid fit must not scale", norm)
	}
	if residual := MeanResidual(src, dst, got); residual < 1 {
		t.Errorf("residual = %g, expected the scale mismatch to show", residual)
	}
}

func TestMeanResidualDegenerate(t *testing.T) {
	if r := MeanResidual(nil, nil, Identity()); !math.IsInf(r, 1) {
		t.Errorf("MeanResidual(empty) = %g, want +Inf", r)
	}
}
