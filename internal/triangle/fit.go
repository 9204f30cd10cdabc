package triangle

import (
	"fmt"
	"math"

	"dxf-viewer/pkg/geometry"
)

// ControlPoint pairs a chain vertex with its surveyed world position.
type ControlPoint struct {
	TriangleNumber int              `json:"triangle"`
	Vertex         int              `json:"vertex"` // 0=CA, 1=AB, 2=BC
	Measured       geometry.Point2D `json:"measured"`
}

// Fit computes the transform mapping the solved chain onto surveyed control
// points, plus the mean residual in world units. A rigid fit (rotation and
// translation only) preserves the chain's measured side lengths; the affine
// fit additionally absorbs scale and shear and is only useful as a check on
// how distorted the field measurements are. Affine needs three control
// points, rigid two.
func (c *Chain) Fit(points []ControlPoint, affine bool) (geometry.AffineTransform, float64, error) {
	src, dst, err := c.correspondences(points)
	if err != nil {
		return geometry.AffineTransform{}, 0, err
	}

	var transform geometry.AffineTransform
	if affine {
		transform, err = geometry.FitAffine(src, dst)
	} else {
		transform, err = geometry.FitRigid(src, dst)
	}
	if err != nil {
		return geometry.AffineTransform{}, 0, err
	}
	return transform, geometry.MeanResidual(src, dst, transform), nil
}

// Align rigidly fits the chain onto the control points and applies the
// result by moving the root: the root CA vertex is transformed and the root
// bearing rotated, then the chain re-solves. Side lengths are untouched.
// Returns the mean residual after alignment.
func (c *Chain) Align(points []ControlPoint) (float64, error) {
	if len(c.triangles) == 0 {
		return 0, fmt.Errorf("empty chain")
	}
	transform, residual, err := c.Fit(points, false)
	if err != nil {
		return 0, err
	}

	root := c.triangles[0]
	root.Points[0] = transform.Apply(root.Points[0])
	// A rigid transform's rotation is recoverable from its first column.
	theta := math.Atan2(transform.C, transform.A)
	root.Bearing = math.Mod(root.Bearing+theta*180/math.Pi+360, 360)

	if err := c.Recompute(); err != nil {
		return 0, err
	}
	return residual, nil
}

// correspondences resolves control points against solved vertices.
func (c *Chain) correspondences(points []ControlPoint) (src, dst []geometry.Point2D, err error) {
	if len(points) == 0 {
		return nil, nil, fmt.Errorf("no control points")
	}
	for _, cp := range points {
		t, err := c.Get(cp.TriangleNumber)
		if err != nil {
			return nil, nil, err
		}
		if cp.Vertex < 0 || cp.Vertex > 2 {
			return nil, nil, fmt.Errorf("triangle %d: invalid vertex %d", cp.TriangleNumber, cp.Vertex)
		}
		src = append(src, t.Points[cp.Vertex])
		dst = append(dst, cp.Measured)
	}
	return src, dst, nil
}
