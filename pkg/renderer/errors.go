package renderer

import (
	"fmt"
	"strings"
)

// ParseError is returned when an annotation document cannot be read or is
// missing a required field
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ImageNotFoundError is returned when the referenced source image exists in
// none of the candidate locations
type ImageNotFoundError struct {
	RecordPath string
	Tried      []string
}

func (e *ImageNotFoundError) Error() string {
	return fmt.Sprintf("image not found for %s (tried %s)", e.RecordPath, strings.Join(e.Tried, ", "))
}

// Stages at which a RenderError can occur
const (
	StageDecode    = "decode"
	StageRasterize = "rasterize"
	StageWrite     = "write"
)

// RenderError is returned for failures while loading, drawing or saving an
// image
type RenderError struct {
	Path  string
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
