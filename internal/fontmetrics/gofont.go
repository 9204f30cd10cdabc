package fontmetrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// referenceSizePixels is the size faces are opened at. Any value works
// since all derived ratios are scale-invariant; a large one keeps the
// fixed-point metrics precise.
const referenceSizePixels = 64

// FamilyMono selects the bundled monospaced face. Any other family name
// (including "") selects the proportional default.
const FamilyMono = "mono"

// GoFontSource measures text with the embedded Go fonts through
// x/image/font/opentype. It implements FaceSource.
type GoFontSource struct {
	mu     sync.Mutex
	parsed map[faceKey]*opentype.Font
	faces  map[faceKey]font.Face
	sized  map[sizedKey]font.Face
}

// sizedKey caches display faces by size quantized to quarter pixels.
type sizedKey struct {
	faceKey
	quarterPixels int
}

// NewGoFontSource creates an empty source; faces are parsed on first use.
func NewGoFontSource() *GoFontSource {
	return &GoFontSource{
		parsed: make(map[faceKey]*opentype.Font),
		faces:  make(map[faceKey]font.Face),
		sized:  make(map[sizedKey]font.Face),
	}
}

// NativeMetrics implements FaceSource. When a face does not report a cap
// height, the tight bounds of 'H' are used instead.
func (s *GoFontSource) NativeMetrics(family string, bold, italic bool) (NativeMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	face, err := s.face(family, bold, italic)
	if err != nil {
		return NativeMetrics{}, err
	}

	m := face.Metrics()
	capHeight := fixedToFloat(m.CapHeight)
	if capHeight <= 0 {
		if bounds, _, ok := face.GlyphBounds('H'); ok {
			capHeight = -fixedToFloat(bounds.Min.Y)
		}
	}

	return NativeMetrics{
		AscentPixels:    fixedToFloat(m.Ascent),
		DescentPixels:   fixedToFloat(m.Descent),
		CapHeightPixels: capHeight,
	}, nil
}

// NativeAdvance implements FaceSource.
func (s *GoFontSource) NativeAdvance(family string, bold, italic bool, text string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	face, err := s.face(family, bold, italic)
	if err != nil {
		return 0, err
	}
	return fixedToFloat(font.MeasureString(face, text)), nil
}

// FaceForCapHeight opens a face sized so its cap height lands on
// capHeightPixels, for surfaces that draw glyphs directly. Faces are cached
// by quarter-pixel size. The returned face is guarded by the source's own
// lock only during creation; callers drawing concurrently need their own
// serialization, as font.Face is not safe for concurrent use.
func (s *GoFontSource) FaceForCapHeight(family string, bold, italic bool, capHeightPixels float64) (font.Face, error) {
	if capHeightPixels <= 0 {
		return nil, fmt.Errorf("fontmetrics: non-positive cap height %g", capHeightPixels)
	}

	native, err := s.NativeMetrics(family, bold, italic)
	if err != nil {
		return nil, err
	}
	if native.CapHeightPixels <= 0 {
		return nil, fmt.Errorf("fontmetrics: face %q reports no cap height", family)
	}
	size := capHeightPixels * referenceSizePixels / native.CapHeightPixels

	s.mu.Lock()
	defer s.mu.Unlock()

	key := sizedKey{
		faceKey:       faceKey{family: family, bold: bold, italic: italic},
		quarterPixels: int(size*4 + 0.5),
	}
	if face, ok := s.sized[key]; ok {
		return face, nil
	}

	parsed, err := s.parsedFont(key.faceKey)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(key.quarterPixels) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("fontmetrics: open face: %w", err)
	}
	s.sized[key] = face
	return face, nil
}

// face returns a cached reference-size face, opening it on first use.
// Callers hold s.mu; font.Face is not safe for concurrent use.
func (s *GoFontSource) face(family string, bold, italic bool) (font.Face, error) {
	key := faceKey{family: family, bold: bold, italic: italic}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}

	parsed, err := s.parsedFont(key)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    referenceSizePixels,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("fontmetrics: open face: %w", err)
	}

	s.faces[key] = face
	return face, nil
}

// parsedFont returns the parsed font data for a style. Callers hold s.mu.
func (s *GoFontSource) parsedFont(key faceKey) (*opentype.Font, error) {
	if f, ok := s.parsed[key]; ok {
		return f, nil
	}
	f, err := opentype.Parse(ttfFor(key.family, key.bold, key.italic))
	if err != nil {
		return nil, fmt.Errorf("fontmetrics: parse embedded font: %w", err)
	}
	s.parsed[key] = f
	return f, nil
}

// ttfFor picks the embedded font data for a family/style combination.
// The mono family has no italic variant; italic requests fall back to the
// upright cut.
func ttfFor(family string, bold, italic bool) []byte {
	if family == FamilyMono {
		if bold {
			return gomonobold.TTF
		}
		return gomono.TTF
	}
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
