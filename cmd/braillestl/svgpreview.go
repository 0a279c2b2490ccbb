package main

import (
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/brailleforge/braillestl/internal/types"
)

// pxPerMM scales the card's millimeter coordinates up to a readable
// pixel canvas, the way dshills/dungo's export.ExportSVG scales graph
// layout units to pixels before drawing.
const pxPerMM = 8

// writeCardPreviewSVG renders a top-down debug view of a card
// GeometrySpec: the base outline plus one circle per dot feature, a
// rect per rect marker, a polygon per triangle marker, and a text
// label per character marker. Cylinder specs are not
// supported since an unrolled cylindrical projection has no single
// natural top-down view; callers only invoke this for card shapes.
func writeCardPreviewSVG(spec *types.GeometrySpec, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	width := int(spec.Base.Width*pxPerMM) + 2*int(pxPerMM)
	height := int(spec.Base.Height*pxPerMM) + 2*int(pxPerMM)

	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Rect(int(pxPerMM), int(pxPerMM), int(spec.Base.Width*pxPerMM), int(spec.Base.Height*pxPerMM), "fill:none;stroke:black;stroke-width:1")

	for _, feat := range spec.Features {
		x := int(feat.Center.X*pxPerMM) + int(pxPerMM)
		y := int(feat.Center.Y*pxPerMM) + int(pxPerMM)
		style := "fill:#333"
		if feat.ForSubtraction {
			style = "fill:none;stroke:#333;stroke-width:1"
		}
		switch feat.Kind {
		case types.FeatureDot:
			canvas.Circle(x, y, 3, style)
		case types.FeatureRect:
			w, d := int(feat.Width*pxPerMM), int(feat.Depth*pxPerMM)
			canvas.Rect(x-w/2, y-d/2, w, d, style)
		case types.FeatureTriangle:
			s := int(feat.Size * pxPerMM)
			canvas.Polygon([]int{x, x - s/2, x + s/2}, []int{y - s/2, y + s/2, y + s/2}, style)
		case types.FeatureCharacter:
			canvas.Text(x, y, feat.Glyph, "font-size:10;fill:#333")
		}
	}

	canvas.End()
	return nil
}
