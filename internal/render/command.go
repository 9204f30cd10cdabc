// Package render turns CAD entities into device-space draw commands.
//
// It owns the two pieces of reconciliation math the viewer exists for:
// transforming Y-up engineering geometry through the session view transform,
// and converting CAD insertion-point text anchoring into the box-anchored
// model of the host drawing surface (see TextBaselineResolver).
package render

import (
	"image/color"

	"dxf-viewer/internal/fontmetrics"
	"dxf-viewer/pkg/geometry"
)

// Command is a device-space draw instruction. Commands are produced per
// frame, consumed by a Surface, and never retained: every frame is a pure
// function of (entities, view transform, font metrics).
type Command interface {
	isCommand()
}

// DrawLine draws a straight segment between two device points.
type DrawLine struct {
	From  geometry.Point2D
	To    geometry.Point2D
	Width float64
	Color color.RGBA
}

// DrawArc draws a circular arc. Angles are degrees from the positive X
// axis measured in raw device coordinates (Y down), and the sweep runs
// from StartAngle to EndAngle in increasing angle, wrapping past 360.
// A Y-flipped view emits the negated world interval, endpoints swapped,
// so the same pixels are covered. A full circle is StartAngle 0,
// EndAngle 360.
type DrawArc struct {
	Center     geometry.Point2D
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Width      float64
	Color      color.RGBA
}

// DrawPolyline draws connected segments through device points, optionally
// closed back to the first point.
type DrawPolyline struct {
	Points []geometry.Point2D
	Closed bool
	Width  float64
	Color  color.RGBA
}

// DrawText draws a single line of text. Origin is the device position of
// the text box's top-left corner, already corrected so the glyph baseline
// lands on the entity's insertion point; the surface must not apply its own
// alignment or margins. RotationDegrees is clockwise-positive on the
// Y-down device plane, around Origin.
type DrawText struct {
	Origin          geometry.Point2D
	Text            string
	RotationDegrees float64
	Font            fontmetrics.FontSpec
	CapHeightPixels float64
	Color           color.RGBA
}

func (DrawLine) isCommand()     {}
func (DrawArc) isCommand()      {}
func (DrawPolyline) isCommand() {}
func (DrawText) isCommand()     {}

// Surface is the host drawing target. Implementations receive fully
// resolved device-space primitives and do no coordinate math of their own.
type Surface interface {
	DrawLine(DrawLine)
	DrawArc(DrawArc)
	DrawPolyline(DrawPolyline)
	DrawText(DrawText)
}

// Replay feeds a command sequence to a surface in order.
func Replay(commands []Command, surface Surface) {
	for _, cmd := range commands {
		switch c := cmd.(type) {
		case DrawLine:
			surface.DrawLine(c)
		case DrawArc:
			surface.DrawArc(c)
		case DrawPolyline:
			surface.DrawPolyline(c)
		case DrawText:
			surface.DrawText(c)
		}
	}
}
