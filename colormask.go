// Package colormask renders colored polygon overlays for labelme-style
// image annotations and collects annotation/image pairs into flat datasets.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		colormask "github.com/ritukun0720/mirror-anotation"
//	)
//
//	func main() {
//		cm := colormask.New()
//
//		// Render every ./json/*.json document against ./rgb into ./color_mask
//		summary, err := cm.RenderAll()
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("rendered %d of %d", summary.Rendered, summary.Found)
//	}
//
// The package consists of these components:
//
// 1. Annotation (pkg/annotation): parses annotation documents
// 2. Palette (pkg/palette): maps labels to fill colors with a fallback
// 3. Overlay (pkg/overlay): rasterizes polygons and composites the layer
// 4. Renderer (pkg/renderer): per-document rendering and the batch driver
// 5. Collect (pkg/collect): copies JSON/PNG pairs out of a directory tree
//
// Each annotation document is processed on its own. A document that cannot
// be parsed, whose image cannot be found, or whose rendering fails is logged
// and skipped without stopping the batch.
package colormask

import (
	"log"

	"github.com/ritukun0720/mirror-anotation/pkg/collect"
	"github.com/ritukun0720/mirror-anotation/pkg/palette"
	"github.com/ritukun0720/mirror-anotation/pkg/renderer"
	"github.com/ritukun0720/mirror-anotation/pkg/types"
)

// Version of the colormask library
const Version = "1.0.0"

// ColorMask provides a high-level interface for rendering and collecting
type ColorMask struct {
	renderer  *renderer.Renderer
	collector *collect.Collector
}

// New creates a new ColorMask with default directories and palette
func New() *ColorMask {
	return NewWithConfig(renderer.DefaultOptions(), palette.Default())
}

// NewWithConfig creates a new ColorMask with custom options and palette
func NewWithConfig(opts types.RenderOptions, pal *palette.Palette) *ColorMask {
	return &ColorMask{
		renderer:  renderer.New(opts, pal),
		collector: collect.New(),
	}
}

// SetLogger sets the logger for both rendering and collecting
func (cm *ColorMask) SetLogger(logger *log.Logger) {
	cm.renderer.SetLogger(logger)
	cm.collector.SetLogger(logger)
}

// Render renders a single annotation document using the configured image
// and output directories
func (cm *ColorMask) Render(recordPath string) (string, error) {
	opts := cm.renderer.Options()
	return cm.renderer.Render(recordPath, opts.ImageDir, opts.OutputDir)
}

// RenderAll renders every annotation document in the configured directory
func (cm *ColorMask) RenderAll() (renderer.Summary, error) {
	return cm.renderer.RenderAll()
}

// Collect copies JSON/PNG pairs found under sourceDir into destDir
func (cm *ColorMask) Collect(sourceDir, destDir string) (collect.Result, error) {
	return cm.collector.Collect(sourceDir, destDir)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
