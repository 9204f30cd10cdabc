package entity

import "fmt"

// DXF group 72 horizontal justification codes.
const (
	dxfHAlignLeft    = 0
	dxfHAlignCenter1 = 1 // center via second alignment point
	dxfHAlignRight   = 2
	dxfHAlignAligned = 3
	dxfHAlignMiddle  = 4
	dxfHAlignFit     = 5
)

// DXF group 73 vertical justification codes.
const (
	dxfVAlignBaseline = 0
	dxfVAlignBottom   = 1
	dxfVAlignMiddle   = 2
	dxfVAlignTop      = 3
)

// MapHAlign converts a DXF horizontal justification code to the viewer's
// alignment. ALIGNED (3) and FIT (5) have no direct equivalent; they fall
// back to CENTER and the returned note flags the approximation. Unknown
// codes fall back to LEFT with a note.
func MapHAlign(code int) (HorizontalAlign, string) {
	switch code {
	case dxfHAlignLeft:
		return AlignLeft, ""
	case dxfHAlignCenter1, dxfHAlignMiddle:
		return AlignCenter, ""
	case dxfHAlignRight:
		return AlignRight, ""
	case dxfHAlignAligned, dxfHAlignFit:
		return AlignCenter, fmt.Sprintf("halign %d (aligned/fit) approximated as center", code)
	default:
		return AlignLeft, fmt.Sprintf("unmapped halign %d, using left", code)
	}
}

// MapVAlign converts a DXF vertical justification code to the viewer's
// alignment. Unknown codes fall back to BASELINE with a note.
func MapVAlign(code int) (VerticalAlign, string) {
	switch code {
	case dxfVAlignBaseline:
		return AlignBaseline, ""
	case dxfVAlignBottom:
		return AlignBottom, ""
	case dxfVAlignMiddle:
		return AlignMiddle, ""
	case dxfVAlignTop:
		return AlignTop, ""
	default:
		return AlignBaseline, fmt.Sprintf("unmapped valign %d, using baseline", code)
	}
}
