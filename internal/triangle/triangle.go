// Package triangle implements the triangle chain tool: triangles defined by
// their three side lengths, solved into world coordinates and connected
// edge-to-edge into a chain. The solved chain renders through the same
// entity pipeline as a loaded drawing.
package triangle

import (
	"fmt"
	"math"

	"dxf-viewer/pkg/geometry"
)

// Side indices. Side A runs CA->AB, side B runs AB->BC, side C runs BC->CA.
const (
	SideA = 0
	SideB = 1
	SideC = 2
)

// Triangle is one solved triangle in a chain. Lengths are the side lengths
// [a, b, c]; Points are the solved vertices [CA, AB, BC] in world units.
// Bearing is the direction of side A in degrees counter-clockwise from the
// positive X axis.
type Triangle struct {
	Number  int        `json:"number"`
	Lengths [3]float64 `json:"lengths"`
	Bearing float64    `json:"bearing_deg"`

	// Chain linkage. ParentNumber is 0 for the root; ConnectionSide is the
	// parent side this triangle hangs off.
	ParentNumber   int `json:"parent,omitempty"`
	ConnectionSide int `json:"connection_side"`

	// Derived by Solve.
	Points         [3]geometry.Point2D `json:"points"`
	InternalAngles [3]float64          `json:"internal_angles_deg"`
	Center         geometry.Point2D    `json:"center"`
}

// ValidLengths reports whether a, b, c satisfy the triangle inequality with
// all sides positive.
func ValidLengths(a, b, c float64) bool {
	if a <= 0 || b <= 0 || c <= 0 {
		return false
	}
	return a+b > c && b+c > a && c+a > b
}

// Area returns the triangle area for side lengths a, b, c (Heron's formula).
func Area(a, b, c float64) float64 {
	s := (a + b + c) / 2
	v := s * (s - a) * (s - b) * (s - c)
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// internalAngles returns the angles at the vertices opposite sides a, b, c,
// in degrees, by the law of cosines. Cosines are clamped so floating point
// noise near degenerate triangles cannot escape acos's domain.
func internalAngles(a, b, c float64) [3]float64 {
	angle := func(opposite, s1, s2 float64) float64 {
		if s1*s2 == 0 {
			return 0
		}
		cos := (s1*s1 + s2*s2 - opposite*opposite) / (2 * s1 * s2)
		cos = math.Max(-1, math.Min(1, cos))
		return math.Acos(cos) * 180 / math.Pi
	}
	return [3]float64{
		angle(a, b, c),
		angle(b, a, c),
		angle(c, a, b),
	}
}

// Solve computes the vertex positions from the CA vertex, the side lengths
// and the bearing. Vertex AB lies at distance a from CA along the bearing;
// vertex BC is placed on the left side of CA->AB at the height given by the
// triangle's area.
func (t *Triangle) Solve(ca geometry.Point2D) error {
	a, b, c := t.Lengths[0], t.Lengths[1], t.Lengths[2]
	if !ValidLengths(a, b, c) {
		return fmt.Errorf("triangle %d: lengths %v violate the triangle inequality", t.Number, t.Lengths)
	}

	bearing := t.Bearing * math.Pi / 180
	ab := geometry.Point2D{
		X: ca.X + a*math.Cos(bearing),
		Y: ca.Y + a*math.Sin(bearing),
	}

	t.InternalAngles = internalAngles(a, b, c)

	// Drop a perpendicular from BC onto side A. The foot sits base units
	// from CA, where base^2 + height^2 = c^2.
	height := 2 * Area(a, b, c) / a
	sq := c*c - height*height
	if sq < 0 {
		sq = 0
	}
	base := math.Sqrt(sq)

	dir := ab.Sub(ca).Scale(1 / a)
	perp := geometry.Point2D{X: -dir.Y, Y: dir.X}
	foot := ca.Add(dir.Scale(base))
	bc := foot.Add(perp.Scale(height))

	t.Points = [3]geometry.Point2D{ca, ab, bc}
	t.Center = geometry.Centroid(t.Points[:])
	return nil
}

// SideLine returns the endpoints of a side in chain winding order.
func (t *Triangle) SideLine(side int) (geometry.Point2D, geometry.Point2D, error) {
	switch side {
	case SideA:
		return t.Points[0], t.Points[1], nil
	case SideB:
		return t.Points[1], t.Points[2], nil
	case SideC:
		return t.Points[2], t.Points[0], nil
	default:
		return geometry.Point2D{}, geometry.Point2D{}, fmt.Errorf("triangle %d: invalid side %d", t.Number, side)
	}
}

// ConnectionPoint returns the CA vertex for a child attached to the given
// side: the side's end vertex in winding order.
func (t *Triangle) ConnectionPoint(side int) (geometry.Point2D, error) {
	switch side {
	case SideA:
		return t.Points[1], nil
	case SideB:
		return t.Points[2], nil
	case SideC:
		return t.Points[0], nil
	default:
		return geometry.Point2D{}, fmt.Errorf("triangle %d: invalid side %d", t.Number, side)
	}
}

// ConnectionBearing returns the bearing for a child attached to the given
// side: the side's direction reversed, so the child grows outward.
func (t *Triangle) ConnectionBearing(side int) (float64, error) {
	from, to, err := t.SideLine(side)
	if err != nil {
		return 0, err
	}
	v := to.Sub(from)
	deg := math.Atan2(v.Y, v.X) * 180 / math.Pi
	return math.Mod(deg+180+360, 360), nil
}

// SideLength returns the length of a side by index.
func (t *Triangle) SideLength(side int) (float64, error) {
	if side < 0 || side > 2 {
		return 0, fmt.Errorf("triangle %d: invalid side %d", t.Number, side)
	}
	return t.Lengths[side], nil
}
