// Command trichain solves a triangle chain file, reports its geometry, and
// optionally exports DXF or checks the chain against surveyed control
// points.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"dxf-viewer/internal/triangle"
)

func main() {
	input := flag.String("in", "", "Path to chain file (.trichain)")
	exportPath := flag.String("dxf", "", "Export the solved chain as DXF to this path")
	controlPath := flag.String("control", "", "JSON file of control points to fit against")
	affine := flag.Bool("affine", false, "Use an affine fit instead of rigid (diagnoses measurement distortion)")
	labelHeight := flag.Float64("label-height", 6, "Dimension label height in drawing units")
	flag.Parse()

	if *input == "" {
		fmt.Println("Usage: trichain -in <file.trichain> [-dxf out.dxf] [-control points.json] [-affine]")
		os.Exit(1)
	}

	_, chain, err := triangle.Load(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load chain: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Solved %d triangles\n", chain.Len())
	for _, t := range chain.Triangles() {
		fmt.Printf("  %d: a=%.2f b=%.2f c=%.2f area=%.2f angles=(%.1f, %.1f, %.1f)\n",
			t.Number, t.Lengths[0], t.Lengths[1], t.Lengths[2],
			triangle.Area(t.Lengths[0], t.Lengths[1], t.Lengths[2]),
			t.InternalAngles[0], t.InternalAngles[1], t.InternalAngles[2])
		for i, p := range t.Points {
			fmt.Printf("     v%d: (%.3f, %.3f)\n", i, p.X, p.Y)
		}
	}

	if *controlPath != "" {
		data, err := os.ReadFile(*controlPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read control points: %v\n", err)
			os.Exit(1)
		}
		var points []triangle.ControlPoint
		if err := json.Unmarshal(data, &points); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse control points: %v\n", err)
			os.Exit(1)
		}

		transform, residual, err := chain.Fit(points, *affine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fit failed: %v\n", err)
			os.Exit(1)
		}
		kind := "rigid"
		if *affine {
			kind = "affine"
		}
		fmt.Printf("\n%s fit over %d control points:\n", kind, len(points))
		fmt.Printf("  [%8.4f %8.4f %10.3f]\n", transform.A, transform.B, transform.TX)
		fmt.Printf("  [%8.4f %8.4f %10.3f]\n", transform.C, transform.D, transform.TY)
		fmt.Printf("  mean residual: %.4f\n", residual)

		if !*affine {
			if _, err := chain.Align(points); err != nil {
				fmt.Fprintf(os.Stderr, "Align failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("  chain aligned to control points")
		}
	}

	if *exportPath != "" {
		f, err := os.Create(*exportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create DXF: %v\n", err)
			os.Exit(1)
		}
		if err := chain.ExportDXF(f, *labelHeight); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "Failed to export DXF: %v\n", err)
			os.Exit(1)
		}
		f.Close()
		fmt.Printf("Wrote %s\n", *exportPath)
	}
}
