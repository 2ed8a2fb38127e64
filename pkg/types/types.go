package types

// ShapeTypePolygon is the only shape type that produces an overlay.
const ShapeTypePolygon = "polygon"

// Point is an (x, y) pixel coordinate as stored in the annotation file.
// Anything other than exactly two numbers is rejected at render time.
type Point []float64

// Shape represents one labeled region of an annotation document
type Shape struct {
	Label     string  `json:"label"`
	Points    []Point `json:"points"`
	ShapeType string  `json:"shape_type"`
}

// IsPolygon reports whether the shape should be rasterized
func (s Shape) IsPolygon() bool {
	return s.ShapeType == ShapeTypePolygon
}

// Annotation is one parsed annotation document describing polygon regions
// over a single source image
type Annotation struct {
	ImagePath string  `json:"imagePath"`
	Shapes    []Shape `json:"shapes"`
}

// RenderOptions contains options for overlay rendering
type RenderOptions struct {
	ImageDir      string
	AnnotationDir string
	OutputDir     string
	Prefix        string
	Suffix        string
	Format        string
}
