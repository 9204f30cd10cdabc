// Package dxf reads and writes the R12 subset of the DXF format that the
// viewer works with: LINE, CIRCLE, ARC, LWPOLYLINE, POLYLINE and TEXT
// entities from the ENTITIES section, plus layer, color and lineweight
// attributes. Everything else in the file is skipped with a diagnostic.
package dxf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dxf-viewer/internal/entity"
	"dxf-viewer/pkg/geometry"
)

// Document is the parsed content of a DXF file.
type Document struct {
	Entities []entity.Entity
	// Diagnostics records entities or attributes the reader could not
	// fully honor (unknown types, approximated alignment codes). The
	// drawing still loads; diagnostics are advisory.
	Diagnostics []string
}

// ReadFile parses the DXF file at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dxf: open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("dxf: parse %s: %w", path, err)
	}
	return doc, nil
}

// Read parses a DXF stream. The reader walks group-code/value pairs,
// collects the ENTITIES section and ignores the rest of the file.
func Read(r io.Reader) (*Document, error) {
	tr := newTagReader(r)
	doc := &Document{}

	inEntities := false
	for {
		t, ok, err := tr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if t.code != 0 {
			continue
		}
		switch t.value {
		case "SECTION":
			name, ok, err := tr.next()
			if err != nil {
				return nil, err
			}
			inEntities = ok && name.code == 2 && name.value == "ENTITIES"
		case "ENDSEC":
			inEntities = false
		case "EOF":
			return doc, nil
		default:
			if !inEntities {
				continue
			}
			if err := doc.readEntity(tr, t.value); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// readEntity consumes the tags of one entity (the type tag has already
// been read) and appends the result. tr is left positioned so the next
// code-0 tag is re-read by the caller loop via pushback.
func (d *Document) readEntity(tr *tagReader, kind string) error {
	tags, err := tr.entityTags()
	if err != nil {
		return err
	}

	switch kind {
	case "LINE":
		d.Entities = append(d.Entities, entity.Line{
			Start:      tags.point(10, 20),
			End:        tags.point(11, 21),
			Attributes: tags.attributes(),
		})
	case "CIRCLE":
		d.Entities = append(d.Entities, entity.Circle{
			Center:     tags.point(10, 20),
			Radius:     tags.float(40, 0),
			Attributes: tags.attributes(),
		})
	case "ARC":
		d.Entities = append(d.Entities, entity.Arc{
			Center:     tags.point(10, 20),
			Radius:     tags.float(40, 0),
			StartAngle: tags.float(50, 0),
			EndAngle:   tags.float(51, 0),
			Attributes: tags.attributes(),
		})
	case "LWPOLYLINE":
		d.Entities = append(d.Entities, entity.Polyline{
			Points:     tags.vertices(),
			Closed:     int(tags.float(70, 0))&1 != 0,
			Attributes: tags.attributes(),
		})
	case "POLYLINE":
		poly, err := d.readPolyline(tr, tags)
		if err != nil {
			return err
		}
		d.Entities = append(d.Entities, poly)
	case "TEXT":
		d.Entities = append(d.Entities, d.readText(tags))
	case "SEQEND", "VERTEX":
		// Stray sequence tags outside a POLYLINE; ignore.
	default:
		d.Diagnostics = append(d.Diagnostics,
			fmt.Sprintf("unsupported entity type %s skipped", kind))
	}
	return nil
}

// readPolyline collects the VERTEX entities following a POLYLINE header
// up to SEQEND.
func (d *Document) readPolyline(tr *tagReader, header tagSet) (entity.Polyline, error) {
	poly := entity.Polyline{
		Closed:     int(header.float(70, 0))&1 != 0,
		Attributes: header.attributes(),
	}
	for {
		t, ok, err := tr.next()
		if err != nil {
			return poly, err
		}
		if !ok {
			return poly, fmt.Errorf("dxf: unterminated POLYLINE sequence")
		}
		if t.code != 0 {
			continue
		}
		switch t.value {
		case "VERTEX":
			tags, err := tr.entityTags()
			if err != nil {
				return poly, err
			}
			poly.Points = append(poly.Points, tags.point(10, 20))
		case "SEQEND":
			if _, err := tr.entityTags(); err != nil {
				return poly, err
			}
			return poly, nil
		default:
			return poly, fmt.Errorf("dxf: unexpected %s inside POLYLINE sequence", t.value)
		}
	}
}

// readText builds a text entity. DXF anchors default-aligned text at the
// first point (10/20) and every other alignment at the second alignment
// point (11/21).
func (d *Document) readText(tags tagSet) entity.Text {
	halign, hnote := entity.MapHAlign(int(tags.float(72, 0)))
	valign, vnote := entity.MapVAlign(int(tags.float(73, 0)))
	if hnote != "" {
		d.Diagnostics = append(d.Diagnostics, hnote)
	}
	if vnote != "" {
		d.Diagnostics = append(d.Diagnostics, vnote)
	}

	insert := tags.point(10, 20)
	if (halign != entity.AlignLeft || valign != entity.AlignBaseline) && tags.has(11) {
		insert = tags.point(11, 21)
	}

	return entity.Text{
		Value:      tags.str(1, ""),
		Insert:     insert,
		Height:     tags.float(40, 0),
		Rotation:   tags.float(50, 0),
		HAlign:     halign,
		VAlign:     valign,
		Attributes: tags.attributes(),
	}
}

type tag struct {
	code  int
	value string
}

// tagReader yields group-code/value pairs and supports a one-tag pushback
// so entity parsing can stop cleanly at the next code-0 tag.
type tagReader struct {
	scanner *bufio.Scanner
	line    int
	pushed  *tag
}

func newTagReader(r io.Reader) *tagReader {
	return &tagReader{scanner: bufio.NewScanner(r)}
}

func (tr *tagReader) next() (tag, bool, error) {
	if tr.pushed != nil {
		t := *tr.pushed
		tr.pushed = nil
		return t, true, nil
	}
	if !tr.scanner.Scan() {
		return tag{}, false, tr.scanner.Err()
	}
	tr.line++
	codeText := strings.TrimSpace(tr.scanner.Text())
	code, err := strconv.Atoi(codeText)
	if err != nil {
		return tag{}, false, fmt.Errorf("dxf: line %d: bad group code %q", tr.line, codeText)
	}
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return tag{}, false, err
		}
		return tag{}, false, fmt.Errorf("dxf: line %d: group code %d has no value", tr.line, code)
	}
	tr.line++
	return tag{code: code, value: strings.TrimSpace(tr.scanner.Text())}, true, nil
}

func (tr *tagReader) push(t tag) {
	tr.pushed = &t
}

// entityTags reads tags until the next code-0 tag (pushed back) or end of
// input. Repeated codes keep every occurrence, in order, for vertex lists.
func (tr *tagReader) entityTags() (tagSet, error) {
	set := tagSet{}
	for {
		t, ok, err := tr.next()
		if err != nil {
			return set, err
		}
		if !ok {
			return set, nil
		}
		if t.code == 0 {
			tr.push(t)
			return set, nil
		}
		set = append(set, t)
	}
}

// tagSet is the ordered tag list of one entity.
type tagSet []tag

func (s tagSet) has(code int) bool {
	for _, t := range s {
		if t.code == code {
			return true
		}
	}
	return false
}

func (s tagSet) str(code int, def string) string {
	for _, t := range s {
		if t.code == code {
			return t.value
		}
	}
	return def
}

func (s tagSet) float(code int, def float64) float64 {
	for _, t := range s {
		if t.code == code {
			if v, err := strconv.ParseFloat(t.value, 64); err == nil {
				return v
			}
		}
	}
	return def
}

func (s tagSet) point(xCode, yCode int) geometry.Point2D {
	return geometry.Point2D{X: s.float(xCode, 0), Y: s.float(yCode, 0)}
}

// vertices pairs each code-10 tag with the following code-20 tag, the
// LWPOLYLINE layout.
func (s tagSet) vertices() []geometry.Point2D {
	var points []geometry.Point2D
	var x float64
	haveX := false
	for _, t := range s {
		switch t.code {
		case 10:
			if v, err := strconv.ParseFloat(t.value, 64); err == nil {
				x, haveX = v, true
			}
		case 20:
			if !haveX {
				continue
			}
			if v, err := strconv.ParseFloat(t.value, 64); err == nil {
				points = append(points, geometry.Point2D{X: x, Y: v})
			}
			haveX = false
		}
	}
	return points
}

func (s tagSet) attributes() entity.Attributes {
	return entity.Attributes{
		Layer:      s.str(8, "0"),
		ColorIndex: int(s.float(62, 0)),
		Lineweight: int(s.float(370, entity.LineweightDefault)),
	}
}
