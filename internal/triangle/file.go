package triangle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"dxf-viewer/internal/dxf"
)

// File is the on-disk form of a triangle chain (.trichain).
type File struct {
	Version   int         `json:"version"`
	Name      string      `json:"name,omitempty"`
	Created   time.Time   `json:"created"`
	Modified  time.Time   `json:"modified"`
	Triangles []*Triangle `json:"triangles"`
}

// NewFile wraps a chain for saving.
func NewFile(name string, chain *Chain) *File {
	now := time.Now()
	return &File{
		Version:   1,
		Name:      name,
		Created:   now,
		Modified:  now,
		Triangles: chain.Triangles(),
	}
}

// Load loads a chain file and re-solves the chain, so stale stored vertex
// positions can never disagree with the stored lengths.
func Load(path string) (*File, *Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("triangle: parse %s: %w", path, err)
	}

	// Solving walks the slice in order and needs parents before children.
	sort.Slice(f.Triangles, func(i, j int) bool {
		return f.Triangles[i].Number < f.Triangles[j].Number
	})

	chain := &Chain{triangles: f.Triangles}
	if err := chain.Recompute(); err != nil {
		return nil, nil, fmt.Errorf("triangle: solve %s: %w", path, err)
	}
	return &f, chain, nil
}

// Save saves the chain to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ExportDXF writes the solved chain as a DXF drawing, with the same
// outlines and labels the viewer renders.
func (c *Chain) ExportDXF(w io.Writer, labelHeight float64) error {
	_, err := dxf.WriteEntities(w, c.Entities(labelHeight))
	return err
}
