package entity

// Raw DXF lineweight values carry special meanings when negative.
const (
	LineweightDefault = -1
	LineweightByBlock = -2
	LineweightByLayer = -3
)

// LineweightOptions controls how raw DXF lineweights map to drawing widths.
type LineweightOptions struct {
	DefaultWidth float64 // width for default/by-block/by-layer values
	MinWidth     float64 // lower clamp for explicit widths
	ScaleFactor  float64 // global multiplier applied to the resolved width
}

// DefaultLineweightOptions matches the viewer defaults: 1.0 unit lines, a
// 0.1 floor, no extra scaling.
func DefaultLineweightOptions() LineweightOptions {
	return LineweightOptions{DefaultWidth: 1.0, MinWidth: 0.1, ScaleFactor: 1.0}
}

// ResolveLineweight converts a raw DXF lineweight (1/100 mm) to a drawing
// width. Positive values become lw/10 clamped to MinWidth; DEFAULT, BYBLOCK
// and BYLAYER fall back to DefaultWidth.
func ResolveLineweight(raw int, opts LineweightOptions) float64 {
	width := opts.DefaultWidth
	if raw > 0 {
		width = float64(raw) / 10.0
		if width < opts.MinWidth {
			width = opts.MinWidth
		}
	}
	return width * opts.ScaleFactor
}
