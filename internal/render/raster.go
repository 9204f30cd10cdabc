package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"dxf-viewer/internal/fontmetrics"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Rasterizer rasterizes draw commands into an RGBA image. It implements
// Surface with plain pixel loops; the viewer's drawings are small
// enough that a software pass per frame is not a bottleneck.
type Rasterizer struct {
	img   *image.RGBA
	fonts *fontmetrics.GoFontSource
}

// NewRasterizer creates a rasterizer drawing into img.
func NewRasterizer(img *image.RGBA, fonts *fontmetrics.GoFontSource) *Rasterizer {
	return &Rasterizer{img: img, fonts: fonts}
}

// Fill paints the whole image with the background color.
func (s *Rasterizer) Fill(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// DrawLine implements Surface.
func (s *Rasterizer) DrawLine(cmd DrawLine) {
	s.thickLine(cmd.From.X, cmd.From.Y, cmd.To.X, cmd.To.Y, cmd.Width, cmd.Color)
}

// DrawArc implements Surface. The arc is approximated by short
// segments; the step shrinks with radius so the error stays under a pixel.
func (s *Rasterizer) DrawArc(cmd DrawArc) {
	if cmd.Radius <= 0 {
		return
	}
	sweep := cmd.EndAngle - cmd.StartAngle
	if sweep <= 0 {
		sweep += 360
	}

	stepDeg := math.Min(10, 180/(math.Pi*cmd.Radius)*2)
	if stepDeg <= 0 {
		stepDeg = 1
	}
	steps := int(math.Ceil(sweep / stepDeg))
	if steps < 8 {
		steps = 8
	}

	px, py := s.arcPoint(cmd, cmd.StartAngle)
	for i := 1; i <= steps; i++ {
		a := cmd.StartAngle + sweep*float64(i)/float64(steps)
		x, y := s.arcPoint(cmd, a)
		s.thickLine(px, py, x, y, cmd.Width, cmd.Color)
		px, py = x, y
	}
}

func (s *Rasterizer) arcPoint(cmd DrawArc, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cmd.Center.X + cmd.Radius*math.Cos(rad), cmd.Center.Y + cmd.Radius*math.Sin(rad)
}

// DrawPolyline implements Surface.
func (s *Rasterizer) DrawPolyline(cmd DrawPolyline) {
	if len(cmd.Points) == 0 {
		return
	}
	for i := 1; i < len(cmd.Points); i++ {
		a, b := cmd.Points[i-1], cmd.Points[i]
		s.thickLine(a.X, a.Y, b.X, b.Y, cmd.Width, cmd.Color)
	}
	if cmd.Closed && len(cmd.Points) > 2 {
		a, b := cmd.Points[len(cmd.Points)-1], cmd.Points[0]
		s.thickLine(a.X, a.Y, b.X, b.Y, cmd.Width, cmd.Color)
	}
}

// DrawText implements Surface. Glyphs are rendered into an
// offscreen box, then blitted; rotated text samples the box through the
// inverse rotation so the box's top-left stays pinned at Origin.
func (s *Rasterizer) DrawText(cmd DrawText) {
	if cmd.Text == "" || cmd.CapHeightPixels <= 0 {
		return
	}
	face, err := s.fonts.FaceForCapHeight(cmd.Font.Family, cmd.Font.Bold, cmd.Font.Italic, cmd.CapHeightPixels)
	if err != nil {
		return
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	width := font.MeasureString(face, cmd.Text).Ceil()
	if width <= 0 || height <= 0 {
		return
	}

	box := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := font.Drawer{
		Dst:  box,
		Src:  &image.Uniform{C: cmd.Color},
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	drawer.DrawString(cmd.Text)

	if cmd.RotationDegrees == 0 {
		s.blit(box, int(math.Round(cmd.Origin.X)), int(math.Round(cmd.Origin.Y)))
		return
	}
	s.blitRotated(box, cmd.Origin.X, cmd.Origin.Y, cmd.RotationDegrees)
}

// blit alpha-composites the box at an integer device position.
func (s *Rasterizer) blit(box *image.RGBA, x, y int) {
	r := box.Bounds().Add(image.Pt(x, y))
	draw.Draw(s.img, r, box, box.Bounds().Min, draw.Over)
}

// blitRotated composites the box rotated by deg (positive turns clockwise
// on the Y-down plane) around its top-left corner placed at (ox, oy).
// Destination pixels are mapped back into the box with the inverse
// rotation and sampled nearest-neighbor.
func (s *Rasterizer) blitRotated(box *image.RGBA, ox, oy, deg float64) {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	// Device bounding box of the rotated rectangle.
	w := float64(box.Bounds().Dx())
	h := float64(box.Bounds().Dy())
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x := ox + c[0]*cos - c[1]*sin
		y := oy + c[0]*sin + c[1]*cos
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	bounds := s.img.Bounds()
	x0 := clampInt(int(math.Floor(minX)), bounds.Min.X, bounds.Max.X)
	x1 := clampInt(int(math.Ceil(maxX))+1, bounds.Min.X, bounds.Max.X)
	y0 := clampInt(int(math.Floor(minY)), bounds.Min.Y, bounds.Max.Y)
	y1 := clampInt(int(math.Ceil(maxY))+1, bounds.Min.Y, bounds.Max.Y)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := float64(x) - ox
			dy := float64(y) - oy
			u := dx*cos + dy*sin
			v := -dx*sin + dy*cos
			if u < 0 || u >= w || v < 0 || v >= h {
				continue
			}
			c := box.RGBAAt(int(u), int(v))
			if c.A == 0 {
				continue
			}
			s.compose(x, y, c)
		}
	}
}

// thickLine draws a line of the given width by stamping a filled square of
// the line width at evenly spaced samples. Widths under one pixel still
// produce a single-pixel line.
func (s *Rasterizer) thickLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	if width < 1 {
		width = 1
	}
	half := int(width / 2)

	dx := x1 - x0
	dy := y1 - y0
	length := math.Hypot(dx, dy)
	steps := int(length) + 1

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := int(math.Round(x0 + dx*t))
		cy := int(math.Round(y0 + dy*t))
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				s.setPixel(cx+ox, cy+oy, c)
			}
		}
	}
}

func (s *Rasterizer) setPixel(x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(s.img.Bounds()) {
		return
	}
	s.img.SetRGBA(x, y, c)
}

// compose alpha-blends a premultiplied source pixel over the destination.
func (s *Rasterizer) compose(x, y int, src color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(s.img.Bounds()) {
		return
	}
	if src.A == 0xff {
		s.img.SetRGBA(x, y, src)
		return
	}
	dst := s.img.RGBAAt(x, y)
	inv := uint32(0xff - src.A)
	s.img.SetRGBA(x, y, color.RGBA{
		R: uint8(uint32(src.R) + uint32(dst.R)*inv/0xff),
		G: uint8(uint32(src.G) + uint32(dst.G)*inv/0xff),
		B: uint8(uint32(src.B) + uint32(dst.B)*inv/0xff),
		A: uint8(uint32(src.A) + uint32(dst.A)*inv/0xff),
	})
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
