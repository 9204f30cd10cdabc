// Command dxfsample writes the built-in sample drawing to a DXF file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"dxf-viewer/internal/dxf"
)

func main() {
	out := flag.String("out", "sample.dxf", "Output DXF path")
	flag.Parse()

	path := *out
	if !strings.HasSuffix(strings.ToLower(path), ".dxf") {
		path += ".dxf"
	}

	if err := dxf.WriteSample(path); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write sample: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
