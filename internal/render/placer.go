package render

import (
	"fmt"
	"image/color"
	"math"

	"dxf-viewer/internal/entity"
	"dxf-viewer/internal/fontmetrics"
	"dxf-viewer/internal/view"
	"dxf-viewer/pkg/geometry"
)

// SkippedEntity reports an entity omitted from a frame. Skips never abort
// the pass; the remaining entities still render.
type SkippedEntity struct {
	Index  int
	Reason string
}

func (s SkippedEntity) String() string {
	return fmt.Sprintf("entity %d skipped: %s", s.Index, s.Reason)
}

// Options configures a placer.
type Options struct {
	LineColor  color.RGBA               // fallback for ACI index 0 and unmapped indices
	ForceColor bool                     // ignore entity colors, draw everything in LineColor
	Lineweight entity.LineweightOptions // raw-lineweight resolution
	FontFamily string                   // family for text entities that specify none
}

// DefaultOptions renders white-on-dark with default lineweights.
func DefaultOptions() Options {
	return Options{
		LineColor:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Lineweight: entity.DefaultLineweightOptions(),
	}
}

// Placer converts CAD entities into device draw commands for one frame at
// a time. It keeps no per-frame state: re-rendering after any view change
// is idempotent and order-independent across entities.
type Placer struct {
	opts     Options
	resolver *TextBaselineResolver
}

// NewPlacer creates a placer using the given font metrics adapter.
func NewPlacer(metrics *fontmetrics.Adapter, opts Options) *Placer {
	return &Placer{
		opts:     opts,
		resolver: NewTextBaselineResolver(metrics),
	}
}

// RenderFrame places all entities through the view transform. Invalid
// entities are reported as SkippedEntity diagnostics and left out of the
// command sequence.
func (p *Placer) RenderFrame(entities []entity.Entity, vt *view.Transform) ([]Command, []SkippedEntity) {
	commands := make([]Command, 0, len(entities))
	var skipped []SkippedEntity

	for i, e := range entities {
		cmd, err := p.place(e, vt)
		if err != nil {
			skipped = append(skipped, SkippedEntity{Index: i, Reason: err.Error()})
			continue
		}
		commands = append(commands, cmd)
	}
	return commands, skipped
}

// place converts a single entity. Geometric entities transform each
// control point independently; text delegates to the baseline resolver.
func (p *Placer) place(e entity.Entity, vt *view.Transform) (Command, error) {
	switch ent := e.(type) {
	case entity.Line:
		if !ent.Start.IsFinite() || !ent.End.IsFinite() {
			return nil, fmt.Errorf("non-finite line coordinates")
		}
		return DrawLine{
			From:  vt.ToDevice(ent.Start),
			To:    vt.ToDevice(ent.End),
			Width: p.deviceWidth(ent.Attributes, vt),
			Color: p.color(ent.Attributes),
		}, nil

	case entity.Circle:
		if !ent.Center.IsFinite() || !isFinite(ent.Radius) {
			return nil, fmt.Errorf("non-finite circle parameters")
		}
		if ent.Radius <= 0 {
			return nil, fmt.Errorf("non-positive circle radius")
		}
		return DrawArc{
			Center:     vt.ToDevice(ent.Center),
			Radius:     ent.Radius * vt.Scale(),
			StartAngle: 0,
			EndAngle:   360,
			Width:      p.deviceWidth(ent.Attributes, vt),
			Color:      p.color(ent.Attributes),
		}, nil

	case entity.Arc:
		if !ent.Center.IsFinite() || !isFinite(ent.Radius) ||
			!isFinite(ent.StartAngle) || !isFinite(ent.EndAngle) {
			return nil, fmt.Errorf("non-finite arc parameters")
		}
		if ent.Radius <= 0 {
			return nil, fmt.Errorf("non-positive arc radius")
		}
		start, end := ent.StartAngle, ent.EndAngle
		if vt.YFlip() {
			// The flip negates angles, which maps the swept interval
			// [start, end] onto [-end, -start].
			start, end = normalizeAngle(-ent.EndAngle), normalizeAngle(-ent.StartAngle)
		}
		return DrawArc{
			Center:     vt.ToDevice(ent.Center),
			Radius:     ent.Radius * vt.Scale(),
			StartAngle: start,
			EndAngle:   end,
			Width:      p.deviceWidth(ent.Attributes, vt),
			Color:      p.color(ent.Attributes),
		}, nil

	case entity.Polyline:
		if len(ent.Points) == 0 {
			return nil, fmt.Errorf("empty polyline")
		}
		points := make([]geometry.Point2D, len(ent.Points))
		for i, pt := range ent.Points {
			if !pt.IsFinite() {
				return nil, fmt.Errorf("non-finite polyline vertex %d", i)
			}
			points[i] = vt.ToDevice(pt)
		}
		return DrawPolyline{
			Points: points,
			Closed: ent.Closed,
			Width:  p.deviceWidth(ent.Attributes, vt),
			Color:  p.color(ent.Attributes),
		}, nil

	case entity.Text:
		if !ent.Insert.IsFinite() || !isFinite(ent.Rotation) {
			return nil, fmt.Errorf("non-finite text parameters")
		}
		if !isFinite(ent.Height) || ent.Height <= 0 {
			return nil, fmt.Errorf("non-positive text height")
		}
		if ent.FontFamily == "" {
			ent.FontFamily = p.opts.FontFamily
		}
		cmd, err := p.resolver.Resolve(ent, vt)
		if err != nil {
			return nil, err
		}
		cmd.Color = p.color(ent.Attributes)
		return cmd, nil

	default:
		return nil, fmt.Errorf("unsupported entity type %T", e)
	}
}

func (p *Placer) color(attrs entity.Attributes) color.RGBA {
	if p.opts.ForceColor {
		return p.opts.LineColor
	}
	return entity.ColorForIndex(attrs.ColorIndex, p.opts.LineColor)
}

// deviceWidth scales the resolved lineweight with the zoom, matching
// non-cosmetic CAD pens: lines thicken as the user zooms in.
func (p *Placer) deviceWidth(attrs entity.Attributes, vt *view.Transform) float64 {
	return entity.ResolveLineweight(attrs.Lineweight, p.opts.Lineweight) * vt.Scale()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// normalizeAngle maps degrees into [0, 360).
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
