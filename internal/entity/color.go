package entity

import "image/color"

// aciColors maps the basic AutoCAD Color Index values to RGB. Indices
// outside the table render in the theme's default line color.
var aciColors = map[int]color.RGBA{
	1: {R: 255, G: 0, B: 0, A: 255},     // red
	2: {R: 255, G: 255, B: 0, A: 255},   // yellow
	3: {R: 0, G: 255, B: 0, A: 255},     // green
	4: {R: 0, G: 255, B: 255, A: 255},   // cyan
	5: {R: 0, G: 0, B: 255, A: 255},     // blue
	6: {R: 255, G: 0, B: 255, A: 255},   // magenta
	7: {R: 255, G: 255, B: 255, A: 255}, // white
	8: {R: 128, G: 128, B: 128, A: 255}, // gray
	9: {R: 192, G: 192, B: 192, A: 255}, // light gray
}

// ColorForIndex resolves an ACI color index to RGB. The fallback is
// returned for index 0 (ByLayer/default) and for unmapped indices.
func ColorForIndex(index int, fallback color.RGBA) color.RGBA {
	if c, ok := aciColors[index]; ok {
		return c
	}
	return fallback
}
