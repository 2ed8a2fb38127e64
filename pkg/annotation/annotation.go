// Package annotation reads labelme-style annotation documents.
package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ritukun0720/mirror-anotation/pkg/types"
)

// ErrMissingField is returned when a required field is absent from a document
var ErrMissingField = errors.New("missing required field")

// rawDocument mirrors the consumed part of a document with pointer fields so
// that absent keys can be told apart from zero values.
type rawDocument struct {
	ImagePath *string     `json:"imagePath"`
	Shapes    *[]rawShape `json:"shapes"`
}

type rawShape struct {
	Label     *string        `json:"label"`
	Points    *[]types.Point `json:"points"`
	ShapeType *string        `json:"shape_type"`
}

// LoadFile reads and parses an annotation document from disk
func LoadFile(path string) (*types.Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes an annotation document and checks the fields the renderer
// consumes: imagePath, shapes, and label/points/shape_type on every shape.
func Parse(r io.Reader) (*types.Annotation, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode annotation: %w", err)
	}

	if raw.ImagePath == nil || strings.TrimSpace(*raw.ImagePath) == "" {
		return nil, fmt.Errorf("imagePath: %w", ErrMissingField)
	}
	if raw.Shapes == nil {
		return nil, fmt.Errorf("shapes: %w", ErrMissingField)
	}

	doc := &types.Annotation{
		ImagePath: *raw.ImagePath,
		Shapes:    make([]types.Shape, 0, len(*raw.Shapes)),
	}
	for i, s := range *raw.Shapes {
		switch {
		case s.Label == nil:
			return nil, fmt.Errorf("shapes[%d].label: %w", i, ErrMissingField)
		case s.Points == nil:
			return nil, fmt.Errorf("shapes[%d].points: %w", i, ErrMissingField)
		case s.ShapeType == nil:
			return nil, fmt.Errorf("shapes[%d].shape_type: %w", i, ErrMissingField)
		}
		doc.Shapes = append(doc.Shapes, types.Shape{
			Label:     *s.Label,
			Points:    *s.Points,
			ShapeType: *s.ShapeType,
		})
	}

	return doc, nil
}
