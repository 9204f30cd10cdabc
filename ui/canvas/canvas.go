// Package canvas provides the drawing viewport: a software-rendered view
// of the loaded drawing and the triangle chain with pan and zoom.
package canvas

import (
	"image"
	"math"

	"dxf-viewer/internal/app"
	"dxf-viewer/internal/entity"
	"dxf-viewer/internal/fontmetrics"
	"dxf-viewer/internal/interaction"
	"dxf-viewer/internal/render"
	"dxf-viewer/internal/view"
	"dxf-viewer/pkg/geometry"
	"dxf-viewer/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// fitMargin leaves 10% of the viewport free around a fitted drawing.
const fitMargin = 0.1

// Viewer displays entities through the view transform and feeds pointer
// input to the interaction controller. All world geometry is Y-up; the
// transform flips it into the raster's Y-down pixels.
type Viewer struct {
	widget.BaseWidget

	state *app.State
	prefs *prefs.Prefs

	transform  *view.Transform
	controller *interaction.Controller

	fonts   *fontmetrics.GoFontSource
	metrics *fontmetrics.Adapter
	placer  *render.Placer

	raster *fynecanvas.Raster

	// Pixel geometry from the last raster pass. Events arrive in
	// device-independent units and are scaled by pixelRatio.
	pixelW, pixelH int
	pixelRatio     float64
	pendingFit     bool

	// Callbacks
	onPointerMove func(world geometry.Point2D)
	onFrame       func(skipped int)
}

// NewViewer creates the viewport bound to the application state.
func NewViewer(state *app.State, p *prefs.Prefs) *Viewer {
	fonts := fontmetrics.NewGoFontSource()
	v := &Viewer{
		state:      state,
		prefs:      p,
		transform:  view.NewTransform(true),
		fonts:      fonts,
		metrics:    fontmetrics.NewAdapter(fonts),
		pixelRatio: 1,
		pendingFit: true,
	}
	v.controller = interaction.NewController(v.transform)
	v.rebuildPlacer()
	v.raster = fynecanvas.NewRaster(v.renderFrame)
	v.ExtendBaseWidget(v)

	state.On(app.EventDrawingLoaded, func(interface{}) {
		v.FitToView()
	})
	state.On(app.EventChainChanged, func(interface{}) {
		v.Refresh()
	})
	state.On(app.EventThemeChanged, func(interface{}) {
		v.rebuildPlacer()
		v.Refresh()
	})
	return v
}

// OnPointerMove sets the hover callback, reporting world coordinates.
func (v *Viewer) OnPointerMove(fn func(world geometry.Point2D)) { v.onPointerMove = fn }

// OnFrame sets the per-frame callback, reporting the skipped entity count.
func (v *Viewer) OnFrame(fn func(skipped int)) { v.onFrame = fn }

// Transform exposes the view transform for tests and tools.
func (v *Viewer) Transform() *view.Transform { return v.transform }

// CreateRenderer implements fyne.Widget.
func (v *Viewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// FitToView re-centers and re-scales to show the whole drawing, then
// redraws. The fit happens during the next raster pass, when the pixel
// viewport size is known.
func (v *Viewer) FitToView() {
	v.pendingFit = true
	v.Refresh()
}

// ZoomIn zooms about the viewport center by one wheel notch.
func (v *Viewer) ZoomIn() { v.zoomCenter(1) }

// ZoomOut zooms about the viewport center by one wheel notch.
func (v *Viewer) ZoomOut() { v.zoomCenter(-1) }

func (v *Viewer) zoomCenter(notches float64) {
	center := geometry.Point2D{X: float64(v.pixelW) / 2, Y: float64(v.pixelH) / 2}
	if v.controller.Wheel(center, notches) {
		v.Refresh()
	}
}

// renderFrame is the raster generator: it rasterizes the current frame at
// the requested pixel size.
func (v *Viewer) renderFrame(w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	v.pixelW, v.pixelH = w, h
	if size := v.Size(); size.Width > 0 {
		v.pixelRatio = float64(w) / float64(size.Width)
	}

	entities := v.sceneEntities()

	if v.pendingFit {
		v.pendingFit = false
		if bounds, ok := entity.DrawingBounds(entities); ok {
			viewport := geometry.Size{Width: float64(w), Height: float64(h)}
			// Degenerate bounds keep the previous transform.
			_ = v.transform.FitToBounds(bounds, viewport, fitMargin)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	surface := render.NewRasterizer(img, v.fonts)

	theme := v.state.CurrentTheme()
	surface.Fill(theme.Background)

	commands, skipped := v.placer.RenderFrame(entities, v.transform)
	render.Replay(commands, surface)

	v.state.SetSkipped(skipped)
	if v.onFrame != nil {
		v.onFrame(len(skipped))
	}
	return img
}

// sceneEntities merges the loaded drawing with the triangle chain's
// generated outlines and labels.
func (v *Viewer) sceneEntities() []entity.Entity {
	drawing, _, _ := v.state.Drawing()
	labelHeight := v.prefs.FloatWithFallback("dimension_font_size", 6)

	chain := v.state.Chain
	if chain == nil || chain.Len() == 0 {
		return drawing
	}
	out := make([]entity.Entity, 0, len(drawing))
	out = append(out, drawing...)
	return append(out, chain.Entities(labelHeight)...)
}

func (v *Viewer) rebuildPlacer() {
	theme := v.state.CurrentTheme()
	opts := render.DefaultOptions()
	opts.LineColor = theme.LineColor
	opts.ForceColor = theme.ForceLineColor
	v.placer = render.NewPlacer(v.metrics, opts)
}

// devicePos converts an event position to raster pixels.
func (v *Viewer) devicePos(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{
		X: float64(pos.X) * v.pixelRatio,
		Y: float64(pos.Y) * v.pixelRatio,
	}
}

// Dragged implements fyne.Draggable; dragging pans the view.
func (v *Viewer) Dragged(ev *fyne.DragEvent) {
	pos := v.devicePos(ev.Position)
	if v.controller.State() == interaction.Idle {
		prev := v.devicePos(fyne.Position{
			X: ev.Position.X - ev.Dragged.DX,
			Y: ev.Position.Y - ev.Dragged.DY,
		})
		v.controller.PointerDown(prev)
	}
	if v.controller.PointerMove(pos) {
		v.Refresh()
	}
}

// DragEnd implements fyne.Draggable.
func (v *Viewer) DragEnd() {
	v.controller.PointerUp(geometry.Point2D{})
}

// Scrolled implements fyne.Scrollable; the wheel zooms about the cursor.
func (v *Viewer) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY == 0 {
		return
	}
	notches := 1.0
	if ev.Scrolled.DY < 0 {
		notches = -1
	}
	if v.controller.Wheel(v.devicePos(ev.Position), notches) {
		v.Refresh()
	}
}

// MouseIn implements desktop.Hoverable.
func (v *Viewer) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable; hovering reports the world
// position under the cursor.
func (v *Viewer) MouseMoved(ev *desktop.MouseEvent) {
	if v.onPointerMove == nil {
		return
	}
	world := v.transform.ToWorld(v.devicePos(ev.Position))
	if math.IsNaN(world.X) || math.IsNaN(world.Y) {
		return
	}
	v.onPointerMove(world)
}

// MouseOut implements desktop.Hoverable.
func (v *Viewer) MouseOut() {}
