// Package interaction translates raw pointer and wheel events into view
// transform mutations.
package interaction

import (
	"math"

	"dxf-viewer/internal/view"
	"dxf-viewer/pkg/geometry"
)

// ZoomStepBase is the per-notch wheel zoom factor. Factors compound
// multiplicatively, so repeated notches never drive the scale non-positive.
const ZoomStepBase = 1.15

// State is the controller's drag state.
type State int

const (
	Idle State = iota
	Panning
)

// Controller is a two-state machine (Idle, Panning) over pointer events.
// It owns no view state beyond the current machine state and the last drag
// anchor; the transform itself belongs to the viewer session. Mutations are
// applied strictly in event-arrival order.
type Controller struct {
	transform *view.Transform
	state     State
	anchor    geometry.Point2D // device position of the last drag event
}

// NewController creates a controller driving the given transform.
func NewController(transform *view.Transform) *Controller {
	return &Controller{transform: transform}
}

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// PointerDown starts a pan drag at the given device position.
// Returns true if a redraw is needed (never, for a plain press).
func (c *Controller) PointerDown(pos geometry.Point2D) bool {
	c.state = Panning
	c.anchor = pos
	return false
}

// PointerMove pans by the device delta since the previous event while a
// drag is active. Returns true if the view changed and a redraw is needed.
func (c *Controller) PointerMove(pos geometry.Point2D) bool {
	if c.state != Panning {
		return false
	}
	dx := pos.X - c.anchor.X
	dy := pos.Y - c.anchor.Y
	c.anchor = pos
	if dx == 0 && dy == 0 {
		return false
	}
	c.transform.PanBy(dx, dy)
	return true
}

// PointerUp ends the drag.
func (c *Controller) PointerUp(pos geometry.Point2D) bool {
	c.state = Idle
	return false
}

// Wheel zooms about the current pointer position. notches is the signed
// wheel step count; the factor is ZoomStepBase^notches, so zooming is
// geometric in both directions. Returns true if the view changed.
func (c *Controller) Wheel(pos geometry.Point2D, notches float64) bool {
	if notches == 0 {
		return false
	}
	factor := math.Pow(ZoomStepBase, notches)
	if err := c.transform.ZoomAbout(pos, factor); err != nil {
		// Non-positive factors cannot arise from a finite notch count;
		// ignore the event and keep the prior transform.
		return false
	}
	return true
}
