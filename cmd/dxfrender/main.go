// Command dxfrender renders a DXF file headlessly: it parses the drawing,
// fits it to a virtual viewport, and writes the resulting draw commands or
// a PNG image. Useful for debugging placement without a display.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"dxf-viewer/internal/dxf"
	"dxf-viewer/internal/entity"
	"dxf-viewer/internal/fontmetrics"
	"dxf-viewer/internal/render"
	"dxf-viewer/internal/view"
	"dxf-viewer/pkg/geometry"
)

func main() {
	input := flag.String("in", "", "Path to DXF file")
	width := flag.Int("w", 800, "Viewport width in pixels")
	height := flag.Int("h", 600, "Viewport height in pixels")
	margin := flag.Float64("margin", 0.1, "Fit margin fraction")
	out := flag.String("png", "", "Render to PNG at this path instead of listing commands")
	flag.Parse()

	if *input == "" {
		fmt.Println("Usage: dxfrender -in <file.dxf> [-w 800] [-h 600] [-margin 0.1] [-png out.png]")
		os.Exit(1)
	}

	doc, err := dxf.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read drawing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d entities\n", len(doc.Entities))
	for _, d := range doc.Diagnostics {
		fmt.Printf("  note: %s\n", d)
	}

	bounds, ok := entity.DrawingBounds(doc.Entities)
	if !ok {
		fmt.Fprintln(os.Stderr, "Drawing has no finite bounds")
		os.Exit(1)
	}
	fmt.Printf("Bounds: (%.2f, %.2f) %.2f x %.2f\n", bounds.X, bounds.Y, bounds.Width, bounds.Height)

	vt := view.NewTransform(true)
	viewport := geometry.Size{Width: float64(*width), Height: float64(*height)}
	if err := vt.FitToBounds(bounds, viewport, *margin); err != nil {
		fmt.Fprintf(os.Stderr, "Fit failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Fit: scale=%.4f pan=(%.2f, %.2f)\n", vt.Scale(), panX(vt), panY(vt))

	metrics := fontmetrics.NewAdapter(fontmetrics.NewGoFontSource())
	placer := render.NewPlacer(metrics, render.DefaultOptions())
	commands, skipped := placer.RenderFrame(doc.Entities, vt)

	for _, s := range skipped {
		fmt.Printf("  %s\n", s)
	}

	if *out != "" {
		if err := writePNG(*out, commands, *width, *height); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write PNG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *out)
		return
	}

	for i, cmd := range commands {
		fmt.Printf("%4d: %s\n", i, describe(cmd))
	}
}

func panX(vt *view.Transform) float64 { x, _ := vt.Pan(); return x }
func panY(vt *view.Transform) float64 { _, y := vt.Pan(); return y }

func describe(cmd render.Command) string {
	switch c := cmd.(type) {
	case render.DrawLine:
		return fmt.Sprintf("line (%.1f, %.1f) -> (%.1f, %.1f) w=%.1f",
			c.From.X, c.From.Y, c.To.X, c.To.Y, c.Width)
	case render.DrawArc:
		return fmt.Sprintf("arc center=(%.1f, %.1f) r=%.1f %.1f..%.1f w=%.1f",
			c.Center.X, c.Center.Y, c.Radius, c.StartAngle, c.EndAngle, c.Width)
	case render.DrawPolyline:
		return fmt.Sprintf("polyline %d points closed=%v w=%.1f", len(c.Points), c.Closed, c.Width)
	case render.DrawText:
		return fmt.Sprintf("text %q at (%.1f, %.1f) rot=%.1f cap=%.1fpx",
			c.Text, c.Origin.X, c.Origin.Y, c.RotationDegrees, c.CapHeightPixels)
	default:
		return fmt.Sprintf("%T", cmd)
	}
}

// writePNG rasterizes the commands with the same software rasterizer the
// UI canvas uses, on a dark background.
func writePNG(path string, commands []render.Command, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	surface := render.NewRasterizer(img, fontmetrics.NewGoFontSource())
	surface.Fill(color.RGBA{R: 40, G: 40, B: 40, A: 255})
	render.Replay(commands, surface)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
