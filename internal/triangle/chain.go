package triangle

import (
	"fmt"
	"math"

	"dxf-viewer/internal/entity"
	"dxf-viewer/pkg/geometry"
)

// Default placement of the root triangle: CA at the origin, side A pointed
// along the negative X axis.
const defaultRootBearing = 180.0

// Chain is an ordered set of triangles connected edge-to-edge. Triangle 1
// is the root; every other triangle hangs off one side of an earlier one.
// Triangles are stored in number order, so solving in slice order always
// sees a parent before its children.
type Chain struct {
	triangles []*Triangle
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Len returns the number of triangles.
func (c *Chain) Len() int { return len(c.triangles) }

// Triangles returns the triangles in number order. The slice is shared;
// callers must not modify it.
func (c *Chain) Triangles() []*Triangle { return c.triangles }

// Get returns the triangle with the given number.
func (c *Chain) Get(number int) (*Triangle, error) {
	for _, t := range c.triangles {
		if t.Number == number {
			return t, nil
		}
	}
	return nil, fmt.Errorf("triangle %d not found", number)
}

// AddRoot places the first triangle with its CA vertex at origin. The chain
// must be empty.
func (c *Chain) AddRoot(a, b, cc float64, origin geometry.Point2D) (*Triangle, error) {
	if len(c.triangles) > 0 {
		return nil, fmt.Errorf("chain already has a root")
	}
	if !ValidLengths(a, b, cc) {
		return nil, fmt.Errorf("lengths %g, %g, %g violate the triangle inequality", a, b, cc)
	}
	t := &Triangle{
		Number:         1,
		Lengths:        [3]float64{a, b, cc},
		Bearing:        defaultRootBearing,
		ConnectionSide: -1,
	}
	if err := t.Solve(origin); err != nil {
		return nil, err
	}
	c.triangles = append(c.triangles, t)
	return t, nil
}

// Attach adds a triangle to one side of an existing triangle. The new
// triangle's side A coincides with the parent side, so its length is forced
// to the parent side's length; only b and c are free.
func (c *Chain) Attach(parentNumber, side int, b, cc float64) (*Triangle, error) {
	parent, err := c.Get(parentNumber)
	if err != nil {
		return nil, err
	}
	if c.childOn(parentNumber, side) != nil {
		return nil, fmt.Errorf("triangle %d side %d already has a triangle attached", parentNumber, side)
	}
	a, err := parent.SideLength(side)
	if err != nil {
		return nil, err
	}
	if !ValidLengths(a, b, cc) {
		return nil, fmt.Errorf("lengths %g, %g, %g violate the triangle inequality", a, b, cc)
	}

	ca, err := parent.ConnectionPoint(side)
	if err != nil {
		return nil, err
	}
	bearing, err := parent.ConnectionBearing(side)
	if err != nil {
		return nil, err
	}

	t := &Triangle{
		Number:         c.nextNumber(),
		Lengths:        [3]float64{a, b, cc},
		Bearing:        bearing,
		ParentNumber:   parentNumber,
		ConnectionSide: side,
	}
	if err := t.Solve(ca); err != nil {
		return nil, err
	}
	c.triangles = append(c.triangles, t)
	return t, nil
}

// Update changes a triangle's side lengths and re-solves it and every
// triangle downstream of it. A triangle with a parent keeps side A locked
// to the parent side.
func (c *Chain) Update(number int, a, b, cc float64) error {
	t, err := c.Get(number)
	if err != nil {
		return err
	}
	if t.ParentNumber != 0 {
		parent, err := c.Get(t.ParentNumber)
		if err != nil {
			return err
		}
		locked, err := parent.SideLength(t.ConnectionSide)
		if err != nil {
			return err
		}
		if a != locked {
			return fmt.Errorf("triangle %d: side a is shared with triangle %d and fixed at %g", number, t.ParentNumber, locked)
		}
	}
	if !ValidLengths(a, b, cc) {
		return fmt.Errorf("lengths %g, %g, %g violate the triangle inequality", a, b, cc)
	}

	t.Lengths = [3]float64{a, b, cc}
	return c.Recompute()
}

// Remove deletes a triangle and everything attached downstream of it.
func (c *Chain) Remove(number int) error {
	if _, err := c.Get(number); err != nil {
		return err
	}
	doomed := map[int]bool{number: true}
	// Children have higher numbers than parents, so one forward pass
	// closes the set.
	for _, t := range c.triangles {
		if doomed[t.ParentNumber] {
			doomed[t.Number] = true
		}
	}
	kept := c.triangles[:0]
	for _, t := range c.triangles {
		if !doomed[t.Number] {
			kept = append(kept, t)
		}
	}
	c.triangles = kept
	return nil
}

// Recompute re-solves every triangle from the root outward. Attached
// triangles re-read their shared side length and connection geometry from
// the parent, so an edit anywhere propagates through the whole chain.
func (c *Chain) Recompute() error {
	for _, t := range c.triangles {
		ca := t.Points[0]
		if t.ParentNumber != 0 {
			parent, err := c.Get(t.ParentNumber)
			if err != nil {
				return err
			}
			shared, err := parent.SideLength(t.ConnectionSide)
			if err != nil {
				return err
			}
			t.Lengths[0] = shared
			if ca, err = parent.ConnectionPoint(t.ConnectionSide); err != nil {
				return err
			}
			if t.Bearing, err = parent.ConnectionBearing(t.ConnectionSide); err != nil {
				return err
			}
		}
		if err := t.Solve(ca); err != nil {
			return err
		}
	}
	return nil
}

// Bounds returns the world bounding box over all solved vertices.
func (c *Chain) Bounds() (geometry.Rect, bool) {
	if len(c.triangles) == 0 {
		return geometry.Rect{}, false
	}
	var points []geometry.Point2D
	for _, t := range c.triangles {
		points = append(points, t.Points[:]...)
	}
	return geometry.BoundingBox(points), true
}

// Entities converts the solved chain into drawable entities: one closed
// polyline per triangle, a number label at each centroid, and a dimension
// label at each side midpoint rotated along the side.
func (c *Chain) Entities(labelHeight float64) []entity.Entity {
	sideNames := [3]string{"A", "B", "C"}
	var out []entity.Entity
	for _, t := range c.triangles {
		out = append(out, entity.Polyline{
			Points: []geometry.Point2D{t.Points[0], t.Points[1], t.Points[2]},
			Closed: true,
		})

		out = append(out, entity.Text{
			Value:  fmt.Sprintf("%d", t.Number),
			Insert: t.Center,
			Height: labelHeight * 1.5,
			HAlign: entity.AlignCenter,
			VAlign: entity.AlignMiddle,
			Bold:   true,
		})

		for side := SideA; side <= SideC; side++ {
			from, to, _ := t.SideLine(side)
			mid := geometry.Point2D{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
			angle := math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
			// Keep dimension text readable: never upside down.
			if angle > 90 || angle <= -90 {
				angle += 180
			}
			if angle > 180 {
				angle -= 360
			}
			out = append(out, entity.Text{
				Value:    fmt.Sprintf("%s: %.1f", sideNames[side], t.Lengths[side]),
				Insert:   mid,
				Height:   labelHeight,
				Rotation: angle,
				HAlign:   entity.AlignCenter,
				VAlign:   entity.AlignBottom,
				Bold:     true,
			})
		}
	}
	return out
}

// childOn returns the triangle attached to the given parent side, or nil.
func (c *Chain) childOn(parentNumber, side int) *Triangle {
	for _, t := range c.triangles {
		if t.ParentNumber == parentNumber && t.ConnectionSide == side {
			return t
		}
	}
	return nil
}

func (c *Chain) nextNumber() int {
	max := 0
	for _, t := range c.triangles {
		if t.Number > max {
			max = t.Number
		}
	}
	return max + 1
}
