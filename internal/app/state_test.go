package app

import (
	"path/filepath"
	"testing"

	"dxf-viewer/internal/dxf"
	"dxf-viewer/internal/render"
	"dxf-viewer/pkg/geometry"
)

func TestEventListeners(t *testing.T) {
	state := NewState()

	var themeEvents []string
	state.On(EventThemeChanged, func(data interface{}) {
		themeEvents = append(themeEvents, data.(string))
	})
	var modified []bool
	state.On(EventModified, func(data interface{}) {
		modified = append(modified, data.(bool))
	})

	state.SetTheme(ThemeLight)
	state.SetModified(true)
	state.SetModified(false)

	if len(themeEvents) != 1 || themeEvents[0] != ThemeLight {
		t.Errorf("theme events = %v, want [light]", themeEvents)
	}
	if len(modified) != 2 || !modified[0] || modified[1] {
		t.Errorf("modified events = %v, want [true false]", modified)
	}

	// Emitting an event nobody listens to is a no-op.
	state.Emit(EventChainSaved, "x")
}

func TestLoadDrawing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.dxf")
	if err := dxf.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}

	state := NewState()
	var loaded []string
	state.On(EventDrawingLoaded, func(data interface{}) {
		loaded = append(loaded, data.(string))
	})

	if err := state.LoadDrawing(path); err != nil {
		t.Fatalf("LoadDrawing: %v", err)
	}

	entities, bounds, ok := state.Drawing()
	if len(entities) == 0 || !ok {
		t.Fatal("no drawing after load")
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		t.Errorf("implausible bounds %+v", bounds)
	}
	if len(loaded) != 1 || loaded[0] != path {
		t.Errorf("load events = %v, want [%s]", loaded, path)
	}
}

func TestLoadDrawingMissingFile(t *testing.T) {
	state := NewState()
	if err := state.LoadDrawing(filepath.Join(t.TempDir(), "nope.dxf")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDiagnosticsMergeLoadAndFrame(t *testing.T) {
	state := NewState()
	state.LoadDiagnostics = []string{"unmapped halign 5, using left"}
	state.SetSkipped([]render.SkippedEntity{{Index: 3, Reason: "zero radius"}})

	diags := state.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme(ThemeLight); got.Name != ThemeLight {
		t.Errorf("GetTheme(light).Name = %q", got.Name)
	}
	// Unknown names fall back to dark.
	if got := GetTheme("plaid"); got.Name != ThemeDark {
		t.Errorf("GetTheme(plaid).Name = %q, want dark", got.Name)
	}
	if len(ThemeNames()) != 3 {
		t.Errorf("ThemeNames = %v", ThemeNames())
	}
}

func TestChainSaveLoadThroughState(t *testing.T) {
	state := NewState()
	if _, err := state.Chain.AddRoot(5, 4, 3, geometry.Point2D{}); err != nil {
		t.Fatal(err)
	}
	state.SetModified(true)

	path := filepath.Join(t.TempDir(), "field.trichain")
	if err := state.SaveChain(path); err != nil {
		t.Fatalf("SaveChain: %v", err)
	}
	if state.Modified {
		t.Error("save did not clear the modified flag")
	}

	fresh := NewState()
	if err := fresh.LoadChain(path); err != nil {
		t.Fatalf("LoadChain: %v", err)
	}
	if fresh.Chain.Len() != 1 {
		t.Errorf("loaded chain has %d triangles, want 1", fresh.Chain.Len())
	}
	if fresh.ChainPath != path {
		t.Errorf("chain path = %q, want %q", fresh.ChainPath, path)
	}
}

func TestExportChainDXFEmptyChain(t *testing.T) {
	state := NewState()
	if err := state.ExportChainDXF(filepath.Join(t.TempDir(), "out.dxf"), 6); err == nil {
		t.Error("expected an error exporting an empty chain")
	}
}
