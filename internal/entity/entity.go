// Package entity defines the typed CAD entity records handed to the renderer.
// Entities are read-only snapshots produced by the DXF reader; nothing in the
// rendering pipeline mutates them.
package entity

import (
	"math"

	"dxf-viewer/pkg/geometry"
)

// HorizontalAlign is the horizontal anchoring of a text entity relative to
// its insertion point.
type HorizontalAlign int

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

// VerticalAlign is the vertical anchoring of a text entity relative to its
// insertion point.
type VerticalAlign int

const (
	AlignBaseline VerticalAlign = iota
	AlignBottom
	AlignMiddle
	AlignTop
)

// Entity is a drawable CAD record in world (engineering-unit) coordinates.
type Entity interface {
	// Bounds returns the world-space axis-aligned bounding box.
	Bounds() geometry.Rect
}

// Attributes carries the display properties common to all entity types.
type Attributes struct {
	ColorIndex int    // ACI color index, 0 = by default color
	Lineweight int    // raw DXF lineweight (1/100 mm), <= 0 means default
	Layer      string // source layer name, informational only
}

// Line is a straight segment between two world points.
type Line struct {
	Attributes
	Start geometry.Point2D
	End   geometry.Point2D
}

// Bounds implements Entity.
func (l Line) Bounds() geometry.Rect {
	return geometry.BoundingBox([]geometry.Point2D{l.Start, l.End})
}

// Circle is a full circle around a world center.
type Circle struct {
	Attributes
	Center geometry.Point2D
	Radius float64
}

// Bounds implements Entity.
func (c Circle) Bounds() geometry.Rect {
	return geometry.NewRect(c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius)
}

// Arc is a counter-clockwise circular arc from StartAngle to EndAngle,
// both in degrees measured from the positive X axis (DXF convention).
type Arc struct {
	Attributes
	Center     geometry.Point2D
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// Bounds implements Entity. The full circle bounds are used; tight arc
// bounds are not needed for fit-to-view.
func (a Arc) Bounds() geometry.Rect {
	return geometry.NewRect(a.Center.X-a.Radius, a.Center.Y-a.Radius, 2*a.Radius, 2*a.Radius)
}

// Polyline is an open or closed sequence of world vertices.
type Polyline struct {
	Attributes
	Points []geometry.Point2D
	Closed bool
}

// Bounds implements Entity.
func (p Polyline) Bounds() geometry.Rect {
	return geometry.BoundingBox(p.Points)
}

// Text is a single-line text entity. Height is the cap height in world
// units; Rotation is counter-clockwise degrees around the insertion point.
type Text struct {
	Attributes
	Value      string
	Insert     geometry.Point2D
	Height     float64
	Rotation   float64
	HAlign     HorizontalAlign
	VAlign     VerticalAlign
	FontFamily string // empty = viewer default
	Bold       bool
	Italic     bool
}

// Bounds implements Entity. The box is approximated from the insertion
// point and the nominal height; exact text extents require font metrics,
// which the renderer owns.
func (t Text) Bounds() geometry.Rect {
	approxWidth := t.Height * float64(len(t.Value))
	return geometry.NewRect(t.Insert.X, t.Insert.Y, approxWidth, t.Height)
}

// DrawingBounds returns the union of all entity bounds, and false if the
// slice is empty or contains no finite bounds.
func DrawingBounds(entities []Entity) (geometry.Rect, bool) {
	var bounds geometry.Rect
	found := false
	for _, e := range entities {
		b := e.Bounds()
		if math.IsNaN(b.X) || math.IsNaN(b.Y) {
			continue
		}
		if !found {
			bounds = b
			found = true
			continue
		}
		bounds = bounds.Union(b)
	}
	return bounds, found
}
