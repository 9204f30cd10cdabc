package fontmetrics

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// fakeSource reports fixed metrics and counts measurement calls.
type fakeSource struct {
	metricsCalls int
	advanceCalls int
	capPixels    float64
}

func (f *fakeSource) NativeMetrics(family string, bold, italic bool) (NativeMetrics, error) {
	f.metricsCalls++
	if family == "broken" {
		return NativeMetrics{}, fmt.Errorf("no such face")
	}
	return NativeMetrics{
		AscentPixels:    48,
		DescentPixels:   16,
		CapHeightPixels: f.capPixels,
	}, nil
}

func (f *fakeSource) NativeAdvance(family string, bold, italic bool, text string) (float64, error) {
	f.advanceCalls++
	return float64(len(text)) * 20, nil
}

func TestMetricsCapHeightRatio(t *testing.T) {
	adapter := NewAdapter(&fakeSource{capPixels: 32})
	spec := FontSpec{Family: "sans", CapHeightWorldUnits: 8}

	m, err := adapter.Metrics(spec)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}

	// ratio = 8/32 = 0.25
	if !scalar.EqualWithinAbs(m.AscentWorldUnits, 12, 1e-12) {
		t.Errorf("ascent = %g, want 12", m.AscentWorldUnits)
	}
	if !scalar.EqualWithinAbs(m.DescentWorldUnits, 4, 1e-12) {
		t.Errorf("descent = %g, want 4", m.DescentWorldUnits)
	}
	if m.CapHeightWorldUnits != 8 {
		t.Errorf("cap height = %g, want the requested 8", m.CapHeightWorldUnits)
	}
}

func TestMetricsSizeInvariantCache(t *testing.T) {
	src := &fakeSource{capPixels: 32}
	adapter := NewAdapter(src)

	// Different requested sizes share one native record per face identity.
	for _, h := range []float64{2, 8, 100} {
		if _, err := adapter.Metrics(FontSpec{Family: "sans", CapHeightWorldUnits: h}); err != nil {
			t.Fatalf("Metrics(h=%g): %v", h, err)
		}
	}
	if src.metricsCalls != 1 {
		t.Errorf("native measured %d times, want 1", src.metricsCalls)
	}

	// A different style is a different cache entry.
	if _, err := adapter.Metrics(FontSpec{Family: "sans", CapHeightWorldUnits: 8, Bold: true}); err != nil {
		t.Fatalf("Metrics(bold): %v", err)
	}
	if src.metricsCalls != 2 {
		t.Errorf("native measured %d times after style change, want 2", src.metricsCalls)
	}
}

func TestHorizontalAdvance(t *testing.T) {
	adapter := NewAdapter(&fakeSource{capPixels: 32})
	spec := FontSpec{Family: "sans", CapHeightWorldUnits: 8}

	adv, err := adapter.HorizontalAdvance("AB", spec)
	if err != nil {
		t.Fatalf("HorizontalAdvance: %v", err)
	}
	// 2 chars * 20 px * (8/32) world per px
	if !scalar.EqualWithinAbs(adv, 10, 1e-12) {
		t.Errorf("advance = %g, want 10", adv)
	}
}

func TestHorizontalAdvanceEmptyString(t *testing.T) {
	src := &fakeSource{capPixels: 32}
	adapter := NewAdapter(src)

	adv, err := adapter.HorizontalAdvance("", FontSpec{Family: "sans", CapHeightWorldUnits: 8})
	if err != nil {
		t.Fatalf("HorizontalAdvance: %v", err)
	}
	if adv != 0 {
		t.Errorf("advance = %g, want 0", adv)
	}
	if src.advanceCalls != 0 {
		t.Errorf("empty string hit the source %d times", src.advanceCalls)
	}
}

func TestNonPositiveCapHeightRejected(t *testing.T) {
	adapter := NewAdapter(&fakeSource{capPixels: 0})
	if _, err := adapter.Metrics(FontSpec{Family: "sans", CapHeightWorldUnits: 8}); err == nil {
		t.Error("expected an error for a face with no cap height")
	}
}

func TestSourceErrorPropagates(t *testing.T) {
	adapter := NewAdapter(&fakeSource{capPixels: 32})
	if _, err := adapter.Metrics(FontSpec{Family: "broken", CapHeightWorldUnits: 8}); err == nil {
		t.Error("expected the source error to propagate")
	}
}

func TestGoFontSourceMetrics(t *testing.T) {
	src := NewGoFontSource()

	native, err := src.NativeMetrics("", false, false)
	if err != nil {
		t.Fatalf("NativeMetrics: %v", err)
	}
	if native.CapHeightPixels <= 0 || native.AscentPixels <= 0 {
		t.Errorf("implausible native metrics: %+v", native)
	}
	if native.CapHeightPixels >= native.AscentPixels {
		t.Errorf("cap height %g should be below ascent %g", native.CapHeightPixels, native.AscentPixels)
	}

	wide, err := src.NativeAdvance("", false, false, "MMM")
	if err != nil {
		t.Fatalf("NativeAdvance: %v", err)
	}
	narrow, err := src.NativeAdvance("", false, false, "iii")
	if err != nil {
		t.Fatalf("NativeAdvance: %v", err)
	}
	if wide <= narrow {
		t.Errorf("proportional face: MMM (%g) should out-measure iii (%g)", wide, narrow)
	}
}
