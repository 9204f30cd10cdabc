// Package view maintains the world-to-device transform for a viewer session.
//
// World coordinates are engineering units, Y-up by CAD convention; device
// coordinates are pixels, Y-down. A Transform owns the pan offset, the zoom
// scale and the optional Y flip, and converts in both directions:
//
//	device = ((x, yFlip ? -y : y) * scale) + (panX, panY)
//
// Scale is a single scalar, so a world circle stays a device circle under
// any zoom.
package view

import (
	"errors"
	"math"

	"dxf-viewer/pkg/geometry"
)

// Sentinel errors for rejected transform mutations. The transform is left
// unchanged whenever one of these is returned.
var (
	ErrInvalidZoomFactor = errors.New("view: zoom factor must be positive")
	ErrDegenerateBounds  = errors.New("view: bounding box has zero size")
)

// Transform is the world-to-device mapping for one viewer session. It is
// mutated only on the event thread, by the interaction controller or by an
// explicit fit operation. The zero value is not valid; use NewTransform.
type Transform struct {
	scale float64
	panX  float64
	panY  float64
	yFlip bool
}

// NewTransform returns an identity transform (scale 1, no pan). yFlip
// selects whether world Y-up is mirrored into device Y-down; a DXF viewer
// wants true, callers feeding device-oriented data pass false.
func NewTransform(yFlip bool) *Transform {
	return &Transform{scale: 1, yFlip: yFlip}
}

// Scale returns the current zoom scale. Always positive.
func (t *Transform) Scale() float64 { return t.scale }

// Pan returns the current device-space pan offset.
func (t *Transform) Pan() (x, y float64) { return t.panX, t.panY }

// YFlip reports whether world Y is mirrored.
func (t *Transform) YFlip() bool { return t.yFlip }

// ToDevice converts a world point to device pixels.
func (t *Transform) ToDevice(p geometry.Point2D) geometry.Point2D {
	y := p.Y
	if t.yFlip {
		y = -y
	}
	return geometry.Point2D{
		X: p.X*t.scale + t.panX,
		Y: y*t.scale + t.panY,
	}
}

// ToWorld converts a device point back to world units. Exact inverse of
// ToDevice given the scale > 0 invariant.
func (t *Transform) ToWorld(p geometry.Point2D) geometry.Point2D {
	x := (p.X - t.panX) / t.scale
	y := (p.Y - t.panY) / t.scale
	if t.yFlip {
		y = -y
	}
	return geometry.Point2D{X: x, Y: y}
}

// PanBy shifts the view by a device-space delta. Always succeeds.
func (t *Transform) PanBy(dxDevice, dyDevice float64) {
	t.panX += dxDevice
	t.panY += dyDevice
}

// ZoomAbout rescales by factor while keeping the world point under the
// device focus stationary. A non-positive factor is rejected with
// ErrInvalidZoomFactor and the transform is unchanged.
func (t *Transform) ZoomAbout(deviceFocus geometry.Point2D, factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return ErrInvalidZoomFactor
	}

	worldBefore := t.ToWorld(deviceFocus)
	t.scale *= factor

	// Solve pan so that toDevice(worldBefore) == deviceFocus again.
	y := worldBefore.Y
	if t.yFlip {
		y = -y
	}
	t.panX = deviceFocus.X - worldBefore.X*t.scale
	t.panY = deviceFocus.Y - y*t.scale
	return nil
}

// FitToBounds sets scale and pan so the world bounding box fills the device
// viewport, centered, with marginFraction of the viewport left free. A box
// with zero width and height is rejected with ErrDegenerateBounds.
func (t *Transform) FitToBounds(worldBounds geometry.Rect, viewport geometry.Size, marginFraction float64) error {
	if worldBounds.IsEmpty() {
		return ErrDegenerateBounds
	}

	scaleX := math.Inf(1)
	scaleY := math.Inf(1)
	if worldBounds.Width > 0 {
		scaleX = viewport.Width / worldBounds.Width
	}
	if worldBounds.Height > 0 {
		scaleY = viewport.Height / worldBounds.Height
	}
	scale := math.Min(scaleX, scaleY) * (1 - marginFraction)
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return ErrDegenerateBounds
	}
	t.scale = scale

	// Center the box: its world center must land on the viewport center.
	center := worldBounds.Center()
	cy := center.Y
	if t.yFlip {
		cy = -cy
	}
	t.panX = viewport.Width/2 - center.X*t.scale
	t.panY = viewport.Height/2 - cy*t.scale
	return nil
}

// Clone returns an independent copy of the transform.
func (t *Transform) Clone() *Transform {
	c := *t
	return &c
}
