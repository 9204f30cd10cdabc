package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-12

func TestPointArithmetic(t *testing.T) {
	p := Point2D{X: 3, Y: 4}

	if got := p.Add(Point2D{X: 1, Y: -2}); got != (Point2D{X: 4, Y: 2}) {
		t.Errorf("Add = %+v", got)
	}
	if got := p.Sub(Point2D{X: 1, Y: -2}); got != (Point2D{X: 2, Y: 6}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := p.Scale(0.5); got != (Point2D{X: 1.5, Y: 2}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := p.Norm(); got != 5 {
		t.Errorf("Norm = %g, want 5", got)
	}
	if got := p.Distance(Point2D{X: 6, Y: 8}); got != 5 {
		t.Errorf("Distance = %g, want 5", got)
	}
}

func TestPointRotate(t *testing.T) {
	// Quarter turn counter-clockwise sends +X to +Y.
	got := Point2D{X: 1, Y: 0}.Rotate(math.Pi / 2)
	if !scalar.EqualWithinAbs(got.X, 0, tol) || !scalar.EqualWithinAbs(got.Y, 1, tol) {
		t.Errorf("Rotate(pi/2) = %+v, want (0, 1)", got)
	}

	got = Point2D{X: 2, Y: 0}.RotateAround(Point2D{X: 1, Y: 0}, math.Pi)
	if !scalar.EqualWithinAbs(got.X, 0, tol) || !scalar.EqualWithinAbs(got.Y, 0, tol) {
		t.Errorf("RotateAround = %+v, want (0, 0)", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !(Point2D{X: 1, Y: 2}).IsFinite() {
		t.Error("finite point reported non-finite")
	}
	for _, p := range []Point2D{
		{X: math.NaN()},
		{Y: math.Inf(1)},
		{X: math.Inf(-1), Y: 3},
	} {
		if p.IsFinite() {
			t.Errorf("%+v reported finite", p)
		}
	}
}

func TestRectContainsAndCenter(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if !r.Contains(Point2D{X: 10, Y: 20}) || !r.Contains(Point2D{X: 40, Y: 60}) {
		t.Error("boundary points should be contained")
	}
	if r.Contains(Point2D{X: 9.9, Y: 30}) {
		t.Error("point left of the rect reported contained")
	}
	if got := r.Center(); got != (Point2D{X: 25, Y: 40}) {
		t.Errorf("Center = %+v, want (25, 40)", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, -5, 10, 10)
	if diff := cmp.Diff(NewRect(0, -5, 15, 15), a.Union(b)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
}

func TestRectExpandToPoint(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if diff := cmp.Diff(NewRect(-5, 0, 15, 20), r.ExpandToPoint(Point2D{X: -5, Y: 20})); diff != "" {
		t.Errorf("ExpandToPoint mismatch (-want +got):\n%s", diff)
	}
	// A contained point changes nothing.
	if got := r.ExpandToPoint(Point2D{X: 5, Y: 5}); got != r {
		t.Errorf("ExpandToPoint(inside) = %+v", got)
	}
}

func TestRectIsEmpty(t *testing.T) {
	if !(Rect{}).IsEmpty() {
		t.Error("zero rect should be empty")
	}
	// A degenerate line segment still has extent in one axis.
	if (Rect{Width: 0, Height: 5}).IsEmpty() {
		t.Error("zero-width rect with height should not be empty")
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Point2D{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 0, Y: 3}})
	if got != (Point2D{X: 2, Y: 1}) {
		t.Errorf("Centroid = %+v, want (2, 1)", got)
	}
	if got := Centroid(nil); got != (Point2D{}) {
		t.Errorf("Centroid(nil) = %+v, want origin", got)
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point2D{{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 0, Y: 0}}
	if diff := cmp.Diff(NewRect(-2, -1, 5, 5), BoundingBox(points)); diff != "" {
		t.Errorf("BoundingBox mismatch (-want +got):\n%s", diff)
	}
	if got := BoundingBox(nil); got != (Rect{}) {
		t.Errorf("BoundingBox(nil) = %+v, want zero rect", got)
	}
	// A single point yields a zero-size box at the point.
	if got := BoundingBox([]Point2D{{X: 7, Y: 8}}); got != (NewRect(7, 8, 0, 0)) {
		t.Errorf("BoundingBox(single) = %+v", got)
	}
}
