package overlay

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/ritukun0720/mirror-anotation/pkg/palette"
	"github.com/ritukun0720/mirror-anotation/pkg/types"
)

// createTestImage creates an opaque gradient test image
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.SetNRGBA(x, y, color.NRGBA{r, g, 128, 255})
		}
	}

	return img
}

func square(x0, y0, x1, y1 float64) []types.Point {
	return []types.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func TestRasterizeEmpty(t *testing.T) {
	layer, err := Rasterize(image.Rect(0, 0, 20, 10), nil, palette.Default())
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	for i, v := range layer.Image().Pix {
		if v != 0 {
			t.Fatalf("Expected fully transparent layer, byte %d is %d", i, v)
		}
	}
}

func TestRasterizePolygonColor(t *testing.T) {
	shapes := []types.Shape{
		{Label: "mirror", Points: square(10, 10, 30, 30), ShapeType: types.ShapeTypePolygon},
	}
	layer, err := Rasterize(image.Rect(0, 0, 40, 40), shapes, palette.Default())
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	// premultiplied red at alpha 128
	inside := layer.Image().RGBAAt(20, 20)
	if !near(inside.A, 128, 1) || !near(inside.R, 128, 1) || inside.G != 0 || inside.B != 0 {
		t.Errorf("Unexpected inside pixel %v", inside)
	}

	outside := layer.Image().RGBAAt(5, 5)
	if outside != (color.RGBA{}) {
		t.Errorf("Expected transparent outside pixel, got %v", outside)
	}
}

func TestRasterizeFallbackColor(t *testing.T) {
	shapes := []types.Shape{
		{Label: "unmapped", Points: square(0, 0, 10, 10), ShapeType: types.ShapeTypePolygon},
	}
	layer, err := Rasterize(image.Rect(0, 0, 10, 10), shapes, palette.Default())
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	px := layer.Image().RGBAAt(5, 5)
	if !near(px.A, 128, 1) || !near(px.R, 64, 1) || !near(px.G, 64, 1) || !near(px.B, 64, 1) {
		t.Errorf("Expected premultiplied fallback gray, got %v", px)
	}
}

func TestRasterizeOverlapOrder(t *testing.T) {
	shapes := []types.Shape{
		{Label: "mirror", Points: square(0, 0, 30, 30), ShapeType: types.ShapeTypePolygon},
		{Label: "glass", Points: square(10, 10, 40, 40), ShapeType: types.ShapeTypePolygon},
	}
	layer, err := Rasterize(image.Rect(0, 0, 40, 40), shapes, palette.Default())
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	overlap := layer.Image().RGBAAt(20, 20)
	// 128 + 127*(1-128/255) with blue drawn last on top of red
	if !near(overlap.A, 191, 2) {
		t.Errorf("Expected blended alpha near 191, got %d", overlap.A)
	}
	if overlap.B <= overlap.R {
		t.Errorf("Later polygon should dominate the overlap, got %v", overlap)
	}
}

func TestRasterizeSkipsNonPolygons(t *testing.T) {
	polygons := []types.Shape{
		{Label: "mirror", Points: square(2, 2, 20, 18), ShapeType: types.ShapeTypePolygon},
		{Label: "glass", Points: []types.Point{{5, 5}, {25, 15}, {8, 19}}, ShapeType: types.ShapeTypePolygon},
	}
	mixed := []types.Shape{
		{Label: "other", Points: square(0, 0, 30, 20), ShapeType: "rectangle"},
		polygons[0],
		{Label: "mirror", Points: []types.Point{{3, 3}, {9, 9}}, ShapeType: "line"},
		polygons[1],
		{Label: "glass", Points: []types.Point{{1, 2, 3}}, ShapeType: "point"},
	}

	bounds := image.Rect(0, 0, 30, 20)
	want, err := Rasterize(bounds, polygons, palette.Default())
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}
	got, err := Rasterize(bounds, mixed, palette.Default())
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if !bytes.Equal(want.Image().Pix, got.Image().Pix) {
		t.Error("Non-polygon shapes should not change the layer")
	}
}

func TestRasterizeMalformedPoints(t *testing.T) {
	tests := [][]types.Point{
		{},
		{{1, 2}, {3}},
		{{1, 2}, {3, 4, 5}},
	}
	for _, pts := range tests {
		shapes := []types.Shape{{Label: "mirror", Points: pts, ShapeType: types.ShapeTypePolygon}}
		if _, err := Rasterize(image.Rect(0, 0, 10, 10), shapes, palette.Default()); err == nil {
			t.Errorf("Expected error for points %v", pts)
		}
	}
}

func TestCompositeTransparentLayer(t *testing.T) {
	base := createTestImage(30, 20)
	out := Composite(base, NewLayer(base.Bounds()).Image())

	if out.Bounds() != base.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", base.Bounds(), out.Bounds())
	}
	if !bytes.Equal(out.Pix, base.Pix) {
		t.Error("Transparent layer should pass an opaque source through unchanged")
	}
	if out == base {
		t.Error("Composite should return a new image")
	}
}

func TestCompositeTransparentLayerKeepsTranslucentSource(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 6, 1))
	base.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 255})
	base.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 77})
	base.SetNRGBA(2, 0, color.NRGBA{13, 250, 99, 1})
	base.SetNRGBA(3, 0, color.NRGBA{10, 20, 30, 0})
	base.SetNRGBA(4, 0, color.NRGBA{100, 50, 7, 1})
	base.SetNRGBA(5, 0, color.NRGBA{101, 51, 7, 16})

	out := Composite(base, NewLayer(base.Bounds()).Image())

	if !bytes.Equal(out.Pix, base.Pix) {
		for x := 0; x < 6; x++ {
			if got, want := out.NRGBAAt(x, 0), base.NRGBAAt(x, 0); got != want {
				t.Errorf("pixel %d: expected %v, got %v", x, want, got)
			}
		}
	}
}

func TestCompositeKeepsTranslucentSourceOutsidePolygon(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			base.SetNRGBA(x, y, color.NRGBA{101, 51, 7, 16})
		}
	}

	layer := NewLayer(base.Bounds())
	if err := layer.FillPolygon(square(0, 0, 8, 10), color.NRGBA{255, 0, 0, 128}); err != nil {
		t.Fatal(err)
	}

	out := Composite(base, layer.Image())
	if got := out.NRGBAAt(15, 5); got != base.NRGBAAt(15, 5) {
		t.Errorf("Expected untouched pixel %v, got %v", base.NRGBAAt(15, 5), got)
	}
	if got := out.NRGBAAt(4, 5); got.A <= 128 || got.R <= got.G {
		t.Errorf("Expected red blended over the source, got %v", got)
	}
}

func TestCompositeOffsetBounds(t *testing.T) {
	base := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	for i := 0; i < len(base.Pix); i += 4 {
		copy(base.Pix[i:i+4], []uint8{100, 50, 7, 1})
	}

	out := Composite(base, NewLayer(base.Bounds()).Image())
	if !bytes.Equal(out.Pix, base.Pix) {
		t.Error("Transparent layer should pass an offset source through unchanged")
	}
}

func TestCompositeBlend(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := range base.Pix {
		base.Pix[i] = 255
	}
	orig := append([]byte(nil), base.Pix...)

	layer := NewLayer(base.Bounds())
	if err := layer.FillPolygon(square(0, 0, 10, 10), color.NRGBA{255, 0, 0, 128}); err != nil {
		t.Fatal(err)
	}

	out := Composite(base, layer.Image())
	px := out.NRGBAAt(5, 5)
	if px.R != 255 || !near(px.G, 127, 1) || !near(px.B, 127, 1) || px.A != 255 {
		t.Errorf("Expected half red over white, got %v", px)
	}

	if !bytes.Equal(base.Pix, orig) {
		t.Error("Composite must not modify the base image")
	}
}

func BenchmarkRasterize(b *testing.B) {
	shapes := []types.Shape{
		{Label: "mirror", Points: square(100, 100, 900, 600), ShapeType: types.ShapeTypePolygon},
		{Label: "glass", Points: []types.Point{{50, 50}, {1800, 200}, {1000, 1000}}, ShapeType: types.ShapeTypePolygon},
	}
	pal := palette.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Rasterize(image.Rect(0, 0, 1920, 1080), shapes, pal)
	}
}
