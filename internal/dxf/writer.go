package dxf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"dxf-viewer/internal/entity"
	"dxf-viewer/pkg/geometry"
)

// Writer emits a minimal R12 DXF stream: a single ENTITIES section with no
// header tables, which every reader of the format accepts. Errors stick;
// the first write failure is returned by Close and later calls no-op.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter starts an R12 document on w.
func NewWriter(w io.Writer) *Writer {
	dw := &Writer{w: bufio.NewWriter(w)}
	dw.tag(0, "SECTION")
	dw.tag(2, "ENTITIES")
	return dw
}

// Close ends the ENTITIES section and flushes. The Writer must not be used
// afterwards.
func (w *Writer) Close() error {
	w.tag(0, "ENDSEC")
	w.tag(0, "EOF")
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Line writes a LINE entity.
func (w *Writer) Line(start, end geometry.Point2D) {
	w.tag(0, "LINE")
	w.tag(8, "0")
	w.point(10, 20, start)
	w.point(11, 21, end)
}

// Circle writes a CIRCLE entity.
func (w *Writer) Circle(center geometry.Point2D, radius float64) {
	w.tag(0, "CIRCLE")
	w.tag(8, "0")
	w.point(10, 20, center)
	w.float(40, radius)
}

// Arc writes an ARC entity with angles in degrees counter-clockwise.
func (w *Writer) Arc(center geometry.Point2D, radius, startAngle, endAngle float64) {
	w.tag(0, "ARC")
	w.tag(8, "0")
	w.point(10, 20, center)
	w.float(40, radius)
	w.float(50, startAngle)
	w.float(51, endAngle)
}

// Polyline writes a POLYLINE/VERTEX/SEQEND sequence, the R12 polyline form.
func (w *Writer) Polyline(points []geometry.Point2D, closed bool) {
	w.tag(0, "POLYLINE")
	w.tag(8, "0")
	w.tag(66, "1")
	if closed {
		w.tag(70, "1")
	} else {
		w.tag(70, "0")
	}
	for _, p := range points {
		w.tag(0, "VERTEX")
		w.tag(8, "0")
		w.point(10, 20, p)
	}
	w.tag(0, "SEQEND")
}

// Text writes a TEXT entity with default (left/baseline) justification.
func (w *Writer) Text(value string, insert geometry.Point2D, height float64) {
	w.tag(0, "TEXT")
	w.tag(8, "0")
	w.point(10, 20, insert)
	w.float(40, height)
	w.tag(1, value)
}

// AlignedText writes a TEXT entity with explicit justification codes. For
// any non-default alignment the anchor goes into the second alignment
// point, as the format requires.
func (w *Writer) AlignedText(value string, anchor geometry.Point2D, height, rotation float64, halign, valign int) {
	w.tag(0, "TEXT")
	w.tag(8, "0")
	w.point(10, 20, anchor)
	if halign != 0 || valign != 0 {
		w.point(11, 21, anchor)
	}
	w.float(40, height)
	if rotation != 0 {
		w.float(50, rotation)
	}
	w.tag(1, value)
	w.tag(72, fmt.Sprintf("%d", halign))
	w.tag(73, fmt.Sprintf("%d", valign))
}

func (w *Writer) tag(code int, value string) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, "%d\n%s\n", code, value)
}

func (w *Writer) float(code int, v float64) {
	w.tag(code, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), "."))
}

func (w *Writer) point(xCode, yCode int, p geometry.Point2D) {
	w.float(xCode, p.X)
	w.float(yCode, p.Y)
}

// WriteEntities serializes parsed entities back to DXF. Unsupported entity
// types are counted and reported in the returned count.
func WriteEntities(w io.Writer, entities []entity.Entity) (skipped int, err error) {
	dw := NewWriter(w)
	for _, e := range entities {
		switch ent := e.(type) {
		case entity.Line:
			dw.Line(ent.Start, ent.End)
		case entity.Circle:
			dw.Circle(ent.Center, ent.Radius)
		case entity.Arc:
			dw.Arc(ent.Center, ent.Radius, ent.StartAngle, ent.EndAngle)
		case entity.Polyline:
			dw.Polyline(ent.Points, ent.Closed)
		case entity.Text:
			dw.AlignedText(ent.Value, ent.Insert, ent.Height, ent.Rotation,
				halignCode(ent.HAlign), valignCode(ent.VAlign))
		default:
			skipped++
		}
	}
	return skipped, dw.Close()
}

func halignCode(a entity.HorizontalAlign) int {
	switch a {
	case entity.AlignCenter:
		return 1
	case entity.AlignRight:
		return 2
	default:
		return 0
	}
}

func valignCode(a entity.VerticalAlign) int {
	switch a {
	case entity.AlignBottom:
		return 1
	case entity.AlignMiddle:
		return 2
	case entity.AlignTop:
		return 3
	default:
		return 0
	}
}

// WriteSample writes the built-in demo drawing: a square with diagonals and
// an inscribed circle, a closed polyline, a title, and a ladder of labeled
// lineweight-test lines. Loading it exercises every entity type the viewer
// renders.
func WriteSample(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dxf: create %s: %w", path, err)
	}
	defer f.Close()

	w := NewWriter(f)

	for i := 0; i < 5; i++ {
		y := 150.0 + float64(i)*20
		w.Line(geometry.Point2D{X: 10, Y: y}, geometry.Point2D{X: 190, Y: y})
		w.Text(fmt.Sprintf("width test %d", i+1), geometry.Point2D{X: 200, Y: y}, 7)
	}

	w.Line(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 0})
	w.Line(geometry.Point2D{X: 100, Y: 0}, geometry.Point2D{X: 100, Y: 100})
	w.Line(geometry.Point2D{X: 100, Y: 100}, geometry.Point2D{X: 0, Y: 100})
	w.Line(geometry.Point2D{X: 0, Y: 100}, geometry.Point2D{X: 0, Y: 0})

	w.Circle(geometry.Point2D{X: 50, Y: 50}, 40)

	w.Text("sample drawing", geometry.Point2D{X: 10, Y: 110}, 10)

	w.Line(geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 100, Y: 100})
	w.Line(geometry.Point2D{X: 0, Y: 100}, geometry.Point2D{X: 100, Y: 0})

	w.Polyline([]geometry.Point2D{
		{X: 150, Y: 10}, {X: 170, Y: 20}, {X: 190, Y: 40}, {X: 180, Y: 60}, {X: 150, Y: 50},
	}, true)

	if err := w.Close(); err != nil {
		return fmt.Errorf("dxf: write %s: %w", path, err)
	}
	return nil
}
