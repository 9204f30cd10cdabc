package app

import "image/color"

// Theme names accepted by GetTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeBlue  = "blue"
)

// Theme is a canvas color scheme.
type Theme struct {
	Name       string
	Background color.RGBA
	LineColor  color.RGBA
	// ForceLineColor draws every entity in LineColor, ignoring per-entity
	// ACI colors. Used for print-style monochrome output.
	ForceLineColor bool
}

// GetTheme returns the named theme, or the dark theme for unknown names.
func GetTheme(name string) Theme {
	switch name {
	case ThemeLight:
		return Theme{
			Name:       ThemeLight,
			Background: color.RGBA{R: 240, G: 240, B: 240, A: 255},
			LineColor:  color.RGBA{R: 0, G: 0, B: 0, A: 255},
		}
	case ThemeBlue:
		return Theme{
			Name:       ThemeBlue,
			Background: color.RGBA{R: 25, G: 35, B: 45, A: 255},
			LineColor:  color.RGBA{R: 200, G: 220, B: 255, A: 255},
		}
	default:
		return Theme{
			Name:       ThemeDark,
			Background: color.RGBA{R: 40, G: 40, B: 40, A: 255},
			LineColor:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		}
	}
}

// ThemeNames lists the selectable themes in menu order.
func ThemeNames() []string {
	return []string{ThemeDark, ThemeLight, ThemeBlue}
}
