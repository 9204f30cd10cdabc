// Package mainwindow builds the application window: menus, the drawing
// viewport, and the status bar.
package mainwindow

import (
	"fmt"
	"log"
	"time"

	"dxf-viewer/internal/app"
	"dxf-viewer/internal/dxf"
	"dxf-viewer/internal/version"
	"dxf-viewer/pkg/geometry"
	uicanvas "dxf-viewer/ui/canvas"
	"dxf-viewer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow owns the top-level window and wires UI events to the state.
type MainWindow struct {
	win   fyne.Window
	state *app.State
	prefs *prefs.Prefs

	viewer      *uicanvas.Viewer
	coordLabel  *widget.Label
	statusLabel *widget.Label

	watcher *app.FileWatcher
}

// New creates the main window.
func New(a fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	w := &MainWindow{
		win:   a.NewWindow("DXF Viewer"),
		state: state,
		prefs: p,
	}

	w.viewer = uicanvas.NewViewer(state, p)
	w.coordLabel = widget.NewLabel("x: -, y: -")
	w.statusLabel = widget.NewLabel("")

	w.viewer.OnPointerMove(func(world geometry.Point2D) {
		w.coordLabel.SetText(fmt.Sprintf("x: %.2f, y: %.2f", world.X, world.Y))
	})
	w.viewer.OnFrame(func(skipped int) {
		w.updateStatus(skipped)
	})

	state.On(app.EventDrawingLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			w.win.SetTitle("DXF Viewer - " + path)
			w.watcher.Watch(path)
		}
	})
	state.On(app.EventThemeChanged, func(data interface{}) {
		if name, ok := data.(string); ok {
			w.prefs.SetString("theme", name)
		}
	})

	w.watcher = app.NewFileWatcher(2 * time.Second)
	w.watcher.OnChange(func(path string) {
		log.Printf("Drawing changed on disk, reloading: %s", path)
		if err := state.LoadDrawing(path); err != nil {
			log.Printf("Reload failed: %v", err)
		}
	})
	w.watcher.Start()

	w.win.SetMainMenu(w.buildMenu())

	status := container.NewHBox(w.coordLabel, widget.NewSeparator(), w.statusLabel)
	w.win.SetContent(container.NewBorder(nil, status, nil, nil, w.viewer))
	w.win.Resize(fyne.NewSize(1000, 700))

	if theme := p.String("theme"); theme != "" {
		state.SetTheme(theme)
	}
	return w
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window { return w.win }

// Show shows the window.
func (w *MainWindow) Show() { w.win.Show() }

func (w *MainWindow) buildMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Drawing...", w.openDrawing),
		fyne.NewMenuItem("Create Sample Drawing...", w.createSample),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Triangle Chain...", w.openChain),
		fyne.NewMenuItem("Save Triangle Chain...", w.saveChain),
		fyne.NewMenuItem("Export Chain as DXF...", w.exportChain),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Fit to Window", w.viewer.FitToView),
		fyne.NewMenuItem("Zoom In", w.viewer.ZoomIn),
		fyne.NewMenuItem("Zoom Out", w.viewer.ZoomOut),
		fyne.NewMenuItemSeparator(),
	)
	for _, name := range app.ThemeNames() {
		theme := name
		viewMenu.Items = append(viewMenu.Items,
			fyne.NewMenuItem("Theme: "+theme, func() { w.state.SetTheme(theme) }))
	}

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("DXF Viewer",
				fmt.Sprintf("DXF Viewer %s\nbuilt %s (%s)",
					version.Version, version.BuildTime, version.GitCommit),
				w.win)
		}),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu, helpMenu)
}

func (w *MainWindow) openDrawing() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		if err := w.state.LoadDrawing(path); err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		log.Printf("Loaded drawing: %s", path)
	}, w.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".dxf"}))
	fd.Show()
}

func (w *MainWindow) createSample() {
	fd := dialog.NewFileSave(func(wr fyne.URIWriteCloser, err error) {
		if err != nil || wr == nil {
			return
		}
		path := wr.URI().Path()
		_ = wr.Close()
		if err := dxf.WriteSample(path); err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if err := w.state.LoadDrawing(path); err != nil {
			dialog.ShowError(err, w.win)
		}
	}, w.win)
	fd.SetFileName("sample.dxf")
	fd.Show()
}

func (w *MainWindow) openChain() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		if err := w.state.LoadChain(path); err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		w.viewer.FitToView()
	}, w.win)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".trichain", ".json"}))
	fd.Show()
}

func (w *MainWindow) saveChain() {
	fd := dialog.NewFileSave(func(wr fyne.URIWriteCloser, err error) {
		if err != nil || wr == nil {
			return
		}
		path := wr.URI().Path()
		_ = wr.Close()
		if err := w.state.SaveChain(path); err != nil {
			dialog.ShowError(err, w.win)
		}
	}, w.win)
	fd.SetFileName("chain.trichain")
	fd.Show()
}

func (w *MainWindow) exportChain() {
	fd := dialog.NewFileSave(func(wr fyne.URIWriteCloser, err error) {
		if err != nil || wr == nil {
			return
		}
		path := wr.URI().Path()
		_ = wr.Close()
		labelHeight := w.prefs.FloatWithFallback("dimension_font_size", 6)
		if err := w.state.ExportChainDXF(path, labelHeight); err != nil {
			dialog.ShowError(err, w.win)
		}
	}, w.win)
	fd.SetFileName("chain.dxf")
	fd.Show()
}

// updateStatus shows load diagnostics and the latest frame's skip count.
func (w *MainWindow) updateStatus(skipped int) {
	diags := w.state.Diagnostics()
	switch {
	case skipped > 0:
		w.statusLabel.SetText(fmt.Sprintf("%d entities skipped (%d notes)", skipped, len(diags)))
	case len(diags) > 0:
		w.statusLabel.SetText(fmt.Sprintf("%d notes", len(diags)))
	default:
		w.statusLabel.SetText("")
	}
}
