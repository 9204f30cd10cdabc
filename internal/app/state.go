// Package app provides application state, events, and theming.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dxf-viewer/internal/dxf"
	"dxf-viewer/internal/entity"
	"dxf-viewer/internal/render"
	"dxf-viewer/internal/triangle"
	"dxf-viewer/pkg/geometry"
)

// State holds the application state: the loaded drawing, the triangle
// chain, diagnostics from the last load/render, and the active theme.
type State struct {
	mu sync.RWMutex

	// Drawing
	FilePath  string
	Entities  []entity.Entity
	Bounds    geometry.Rect
	HasBounds bool

	// Triangle chain tool
	Chain     *triangle.Chain
	ChainPath string
	Modified  bool

	// Diagnostics from the DXF reader and the last rendered frame
	LoadDiagnostics []string
	Skipped         []render.SkippedEntity

	// Display
	Theme Theme

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventDrawingLoaded EventType = iota
	EventChainChanged
	EventChainSaved
	EventThemeChanged
	EventModified
	EventFrameRendered
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with the dark theme and an
// empty chain.
func NewState() *State {
	return &State{
		Chain:     triangle.NewChain(),
		Theme:     GetTheme(ThemeDark),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the chain as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadDrawing parses a DXF file and replaces the current drawing.
func (s *State) LoadDrawing(path string) error {
	doc, err := dxf.ReadFile(path)
	if err != nil {
		return err
	}

	bounds, ok := entity.DrawingBounds(doc.Entities)

	s.mu.Lock()
	s.FilePath = path
	s.Entities = doc.Entities
	s.Bounds = bounds
	s.HasBounds = ok
	s.LoadDiagnostics = doc.Diagnostics
	s.Skipped = nil
	s.mu.Unlock()

	s.Emit(EventDrawingLoaded, path)
	return nil
}

// Drawing returns the current entities and their bounds.
func (s *State) Drawing() ([]entity.Entity, geometry.Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Entities, s.Bounds, s.HasBounds
}

// SetSkipped records the per-frame skip diagnostics.
func (s *State) SetSkipped(skipped []render.SkippedEntity) {
	s.mu.Lock()
	s.Skipped = skipped
	s.mu.Unlock()
	s.Emit(EventFrameRendered, len(skipped))
}

// Diagnostics returns load diagnostics plus the latest frame's skips.
func (s *State) Diagnostics() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.LoadDiagnostics)+len(s.Skipped))
	out = append(out, s.LoadDiagnostics...)
	for _, sk := range s.Skipped {
		out = append(out, sk.String())
	}
	return out
}

// SetTheme switches the display theme.
func (s *State) SetTheme(name string) {
	s.mu.Lock()
	s.Theme = GetTheme(name)
	s.mu.Unlock()
	s.Emit(EventThemeChanged, name)
}

// CurrentTheme returns the active theme.
func (s *State) CurrentTheme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Theme
}

// LoadChain loads a triangle chain file.
func (s *State) LoadChain(path string) error {
	_, chain, err := triangle.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Chain = chain
	s.ChainPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventChainChanged, nil)
	return nil
}

// SaveChain saves the triangle chain to a file.
func (s *State) SaveChain(path string) error {
	s.mu.RLock()
	file := triangle.NewFile(s.chainName(path), s.Chain)
	s.mu.RUnlock()

	if err := file.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.ChainPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventChainSaved, path)
	return nil
}

// ExportChainDXF writes the chain as a DXF drawing.
func (s *State) ExportChainDXF(path string, labelHeight float64) error {
	s.mu.RLock()
	chain := s.Chain
	s.mu.RUnlock()

	if chain.Len() == 0 {
		return fmt.Errorf("app: chain is empty")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return chain.ExportDXF(f, labelHeight)
}

func (s *State) chainName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
