package render

import (
	"math"

	"dxf-viewer/internal/entity"
	"dxf-viewer/internal/fontmetrics"
	"dxf-viewer/internal/view"
	"dxf-viewer/pkg/geometry"
)

// TextBaselineResolver converts a text entity's CAD anchoring (insertion
// point, cap-height size, alignment, rotation) into the exact device origin
// for a box-anchored draw call.
//
// The host surface anchors text at its bounding box's top-left, while CAD
// anchors at the baseline of the insertion point. The resolver bridges the
// two by computing an offset vector in world units, rotating it with the
// entity around the insertion point, and only then projecting to device
// space. Rotation and vertical metric compensation do not commute with the
// surface's own box rotation, which is why the offset is pre-rotated in
// world space rather than corrected afterwards.
type TextBaselineResolver struct {
	metrics *fontmetrics.Adapter
}

// NewTextBaselineResolver creates a resolver over the given metrics adapter.
func NewTextBaselineResolver(metrics *fontmetrics.Adapter) *TextBaselineResolver {
	return &TextBaselineResolver{metrics: metrics}
}

// Resolve computes the device draw command for a text entity. The caller
// must have validated Height > 0 and finite coordinates.
func (r *TextBaselineResolver) Resolve(t entity.Text, vt *view.Transform) (DrawText, error) {
	spec := fontmetrics.FontSpec{
		Family:              t.FontFamily,
		CapHeightWorldUnits: t.Height,
		Bold:                t.Bold,
		Italic:              t.Italic,
	}

	m, err := r.metrics.Metrics(spec)
	if err != nil {
		return DrawText{}, err
	}
	advance, err := r.metrics.HorizontalAdvance(t.Value, spec)
	if err != nil {
		return DrawText{}, err
	}

	// Horizontal offset along the text direction. An empty string has zero
	// advance, so every alignment collapses to the insertion point.
	var h float64
	switch t.HAlign {
	case entity.AlignCenter:
		h = -advance / 2
	case entity.AlignRight:
		h = -advance
	}

	// Vertical offset from the insertion point to the box top. "up" is the
	// world-Y direction that is screen-up: +Y when the view flips Y-up
	// world into Y-down device space, -Y when world is already Y-down.
	up := -1.0
	if vt.YFlip() {
		up = 1.0
	}
	var v float64
	switch t.VAlign {
	case entity.AlignBaseline:
		v = up * m.AscentWorldUnits
	case entity.AlignBottom:
		v = up * (m.AscentWorldUnits + m.DescentWorldUnits)
	case entity.AlignMiddle:
		v = up * (m.AscentWorldUnits - m.CapHeightWorldUnits/2)
	case entity.AlignTop:
		v = up * (m.AscentWorldUnits - m.CapHeightWorldUnits)
	}

	// Rotate the offset with the entity around the insertion point, in
	// world space, then project. The surface rotates the box by the same
	// angle around the corrected origin, so baseline and alignment hold at
	// any rotation.
	offset := geometry.Point2D{X: h, Y: v}.Rotate(t.Rotation * math.Pi / 180)
	origin := vt.ToDevice(t.Insert.Add(offset))

	rotation := t.Rotation
	if vt.YFlip() {
		rotation = -rotation
	}

	return DrawText{
		Origin:          origin,
		Text:            t.Value,
		RotationDegrees: rotation,
		Font:            spec,
		CapHeightPixels: t.Height * vt.Scale(),
	}, nil
}
