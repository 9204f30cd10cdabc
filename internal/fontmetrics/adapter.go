// Package fontmetrics converts host-toolkit font measurements into CAD
// world units.
//
// CAD sizes text by cap height, while font APIs report ascent, descent and
// point size. The adapter resolves that mismatch with a single ratio:
// requested cap height in world units divided by the native cap height in
// pixels. Every world-unit value it hands out is a native pixel value
// multiplied by that ratio.
package fontmetrics

import (
	"fmt"
	"sync"
)

// FontSpec identifies a font request. Specs are immutable; equal specs are
// interchangeable cache keys.
type FontSpec struct {
	Family              string
	CapHeightWorldUnits float64
	Bold                bool
	Italic              bool
}

// Metrics are font extents in world units for a given FontSpec.
type Metrics struct {
	AscentWorldUnits    float64
	DescentWorldUnits   float64
	CapHeightWorldUnits float64
}

// NativeMetrics are the host toolkit's measurements in pixels at the
// source's reference size. CapHeightPixels must be positive.
type NativeMetrics struct {
	AscentPixels    float64
	DescentPixels   float64
	CapHeightPixels float64
}

// FaceSource is the host-toolkit measurement surface the adapter wraps.
// Implementations report metrics at one fixed reference size; the adapter
// never asks for a particular size because the cap-height ratio is
// scale-invariant.
type FaceSource interface {
	NativeMetrics(family string, bold, italic bool) (NativeMetrics, error)
	NativeAdvance(family string, bold, italic bool, text string) (float64, error)
}

// faceKey is the size-independent identity of a cached metrics record.
type faceKey struct {
	family string
	bold   bool
	italic bool
}

// Adapter caches one native metrics record per distinct (family, bold,
// italic) triple. Entries never expire; the set of fonts a drawing uses is
// small. Population on first use is the only mutation, guarded for hosts
// that measure from a draw goroutine.
type Adapter struct {
	source FaceSource

	mu    sync.RWMutex
	cache map[faceKey]NativeMetrics
}

// NewAdapter creates an adapter over the given measurement source.
func NewAdapter(source FaceSource) *Adapter {
	return &Adapter{
		source: source,
		cache:  make(map[faceKey]NativeMetrics),
	}
}

// Metrics returns the font extents for spec in world units.
func (a *Adapter) Metrics(spec FontSpec) (Metrics, error) {
	native, err := a.native(spec)
	if err != nil {
		return Metrics{}, err
	}

	ratio := spec.CapHeightWorldUnits / native.CapHeightPixels
	return Metrics{
		AscentWorldUnits:    native.AscentPixels * ratio,
		DescentWorldUnits:   native.DescentPixels * ratio,
		CapHeightWorldUnits: spec.CapHeightWorldUnits,
	}, nil
}

// HorizontalAdvance returns the advance width of text in world units.
// The empty string measures zero.
func (a *Adapter) HorizontalAdvance(text string, spec FontSpec) (float64, error) {
	if text == "" {
		return 0, nil
	}

	native, err := a.native(spec)
	if err != nil {
		return 0, err
	}

	advancePixels, err := a.source.NativeAdvance(spec.Family, spec.Bold, spec.Italic, text)
	if err != nil {
		return 0, err
	}
	return advancePixels * spec.CapHeightWorldUnits / native.CapHeightPixels, nil
}

// native returns the cached pixel metrics for the spec's face, measuring
// it on first use.
func (a *Adapter) native(spec FontSpec) (NativeMetrics, error) {
	key := faceKey{family: spec.Family, bold: spec.Bold, italic: spec.Italic}

	a.mu.RLock()
	native, ok := a.cache[key]
	a.mu.RUnlock()
	if ok {
		return native, nil
	}

	native, err := a.source.NativeMetrics(spec.Family, spec.Bold, spec.Italic)
	if err != nil {
		return NativeMetrics{}, err
	}
	if native.CapHeightPixels <= 0 {
		return NativeMetrics{}, fmt.Errorf("fontmetrics: face %q reports non-positive cap height", spec.Family)
	}

	a.mu.Lock()
	a.cache[key] = native
	a.mu.Unlock()
	return native, nil
}
