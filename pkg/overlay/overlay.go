// Package overlay rasterizes labeled polygons onto a transparent layer and
// composites that layer over a source image.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/draw"

	"github.com/ritukun0720/mirror-anotation/pkg/palette"
	"github.com/ritukun0720/mirror-anotation/pkg/types"
)

// Layer is a transparent raster surface that polygons are filled onto.
// Fills blend with source-over in the order they are drawn.
type Layer struct {
	img *image.RGBA
	gc  *draw2dimg.GraphicContext
}

// NewLayer allocates a fully transparent layer covering bounds
func NewLayer(bounds image.Rectangle) *Layer {
	img := image.NewRGBA(bounds)
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillRule(draw2d.FillRuleEvenOdd)
	return &Layer{img: img, gc: gc}
}

// Image returns the layer pixels
func (l *Layer) Image() *image.RGBA {
	return l.img
}

// FillPolygon fills the closed polygon through points with c
func (l *Layer) FillPolygon(points []types.Point, c color.Color) error {
	if len(points) == 0 {
		return fmt.Errorf("polygon has no points")
	}
	for i, pt := range points {
		if len(pt) != 2 {
			return fmt.Errorf("point %d has %d coordinates, expected 2", i, len(pt))
		}
	}

	l.gc.BeginPath()
	l.gc.SetFillColor(c)
	l.gc.MoveTo(points[0][0], points[0][1])
	for _, pt := range points[1:] {
		l.gc.LineTo(pt[0], pt[1])
	}
	l.gc.Close()
	l.gc.Fill()
	return nil
}

// Rasterize draws every polygon shape onto a new layer sized to
// bounds, in document order. Non-polygon shapes are skipped.
func Rasterize(bounds image.Rectangle, shapes []types.Shape, pal *palette.Palette) (*Layer, error) {
	layer := NewLayer(bounds)
	for i, shape := range shapes {
		if !shape.IsPolygon() {
			continue
		}
		if err := layer.FillPolygon(shape.Points, pal.Lookup(shape.Label)); err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, shape.Label, err)
		}
	}
	return layer, nil
}

// Composite returns a new image with layer blended over base using
// source-over. base is left untouched. Pixels where the layer is fully
// transparent are copied from base exactly.
func Composite(base *image.NRGBA, layer image.Image) *image.NRGBA {
	out := imaging.Clone(base)
	draw.Draw(out, out.Bounds(), layer, layer.Bounds().Min, draw.Over)

	// draw.Over round-trips NRGBA through premultiplied alpha, which shifts
	// the color channels of translucent pixels
	lmin, bmin := layer.Bounds().Min, base.Bounds().Min
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if alphaAt(layer, lmin.X+x, lmin.Y+y) != 0 {
				continue
			}
			i := out.PixOffset(x, y)
			j := base.PixOffset(bmin.X+x, bmin.Y+y)
			copy(out.Pix[i:i+4], base.Pix[j:j+4])
		}
	}
	return out
}

func alphaAt(img image.Image, x, y int) uint32 {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return 0
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return uint32(rgba.Pix[rgba.PixOffset(x, y)+3])
	}
	_, _, _, a := img.At(x, y).RGBA()
	return a
}
