package entity

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"

	"dxf-viewer/pkg/geometry"
)

func TestColorForIndex(t *testing.T) {
	fallback := color.RGBA{R: 10, G: 20, B: 30, A: 255}

	cases := []struct {
		index int
		want  color.RGBA
	}{
		{1, color.RGBA{R: 255, A: 255}},
		{3, color.RGBA{G: 255, A: 255}},
		{7, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{0, fallback},   // ByLayer / default
		{256, fallback}, // outside the basic table
		{-5, fallback},
	}
	for _, tc := range cases {
		if got := ColorForIndex(tc.index, fallback); got != tc.want {
			t.Errorf("ColorForIndex(%d) = %+v, want %+v", tc.index, got, tc.want)
		}
	}
}

func TestResolveLineweight(t *testing.T) {
	opts := DefaultLineweightOptions()

	cases := []struct {
		name string
		raw  int
		opts LineweightOptions
		want float64
	}{
		{"explicit 0.5mm", 50, opts, 5},
		{"explicit 0.13mm", 13, opts, 1.3},
		{"zero falls back to default", 0, opts, 1.0},
		{"tiny explicit sits on the floor", 1, opts, 0.1},
		{"default sentinel", LineweightDefault, opts, 1.0},
		{"by block", LineweightByBlock, opts, 1.0},
		{"by layer", LineweightByLayer, opts, 1.0},
		{"scale factor applies", 50, LineweightOptions{DefaultWidth: 1, MinWidth: 0.1, ScaleFactor: 2}, 10},
		{"scale factor on default", LineweightDefault, LineweightOptions{DefaultWidth: 2, MinWidth: 0.1, ScaleFactor: 3}, 6},
	}
	for _, tc := range cases {
		if got := ResolveLineweight(tc.raw, tc.opts); !scalar.EqualWithinAbs(got, tc.want, 1e-12) {
			t.Errorf("%s: ResolveLineweight(%d) = %g, want %g", tc.name, tc.raw, got, tc.want)
		}
	}
}

func TestMapHAlign(t *testing.T) {
	cases := []struct {
		code     int
		want     HorizontalAlign
		wantNote bool
	}{
		{0, AlignLeft, false},
		{1, AlignCenter, false},
		{2, AlignRight, false},
		{3, AlignCenter, true}, // ALIGNED approximated
		{4, AlignCenter, false},
		{5, AlignCenter, true}, // FIT approximated
		{9, AlignLeft, true},
	}
	for _, tc := range cases {
		got, note := MapHAlign(tc.code)
		if got != tc.want {
			t.Errorf("MapHAlign(%d) = %v, want %v", tc.code, got, tc.want)
		}
		if (note != "") != tc.wantNote {
			t.Errorf("MapHAlign(%d) note = %q, want note: %v", tc.code, note, tc.wantNote)
		}
	}
}

func TestMapVAlign(t *testing.T) {
	cases := []struct {
		code     int
		want     VerticalAlign
		wantNote bool
	}{
		{0, AlignBaseline, false},
		{1, AlignBottom, false},
		{2, AlignMiddle, false},
		{3, AlignTop, false},
		{7, AlignBaseline, true},
	}
	for _, tc := range cases {
		got, note := MapVAlign(tc.code)
		if got != tc.want {
			t.Errorf("MapVAlign(%d) = %v, want %v", tc.code, got, tc.want)
		}
		if (note != "") != tc.wantNote {
			t.Errorf("MapVAlign(%d) note = %q, want note: %v", tc.code, note, tc.wantNote)
		}
	}
}

func TestEntityBounds(t *testing.T) {
	line := Line{Start: geometry.Point2D{X: 5, Y: -2}, End: geometry.Point2D{X: -1, Y: 4}}
	if diff := cmp.Diff(geometry.NewRect(-1, -2, 6, 6), line.Bounds()); diff != "" {
		t.Errorf("line bounds mismatch (-want +got):\n%s", diff)
	}

	circle := Circle{Center: geometry.Point2D{X: 10, Y: 10}, Radius: 3}
	if diff := cmp.Diff(geometry.NewRect(7, 7, 6, 6), circle.Bounds()); diff != "" {
		t.Errorf("circle bounds mismatch (-want +got):\n%s", diff)
	}

	// Arc bounds use the full circle; good enough for fit-to-view.
	arc := Arc{Center: geometry.Point2D{}, Radius: 2, StartAngle: 0, EndAngle: 90}
	if diff := cmp.Diff(geometry.NewRect(-2, -2, 4, 4), arc.Bounds()); diff != "" {
		t.Errorf("arc bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawingBounds(t *testing.T) {
	entities := []Entity{
		Line{Start: geometry.Point2D{X: 0, Y: 0}, End: geometry.Point2D{X: 10, Y: 10}},
		Circle{Center: geometry.Point2D{X: 20, Y: 0}, Radius: 5},
	}
	bounds, ok := DrawingBounds(entities)
	if !ok {
		t.Fatal("DrawingBounds found nothing")
	}
	if diff := cmp.Diff(geometry.NewRect(0, -5, 25, 15), bounds); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawingBoundsEmpty(t *testing.T) {
	if _, ok := DrawingBounds(nil); ok {
		t.Error("empty slice reported bounds")
	}
}

func TestDrawingBoundsSkipsNaN(t *testing.T) {
	entities := []Entity{
		Line{Start: geometry.Point2D{X: math.NaN()}, End: geometry.Point2D{X: 1, Y: 1}},
		Circle{Center: geometry.Point2D{X: 5, Y: 5}, Radius: 1},
	}
	bounds, ok := DrawingBounds(entities)
	if !ok {
		t.Fatal("DrawingBounds found nothing")
	}
	if diff := cmp.Diff(geometry.NewRect(4, 4, 2, 2), bounds); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}
