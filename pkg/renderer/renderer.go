// Package renderer turns labelme annotation documents into images with
// semi-transparent colored polygon overlays.
package renderer

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ritukun0720/mirror-anotation/internal/utils"
	"github.com/ritukun0720/mirror-anotation/pkg/annotation"
	"github.com/ritukun0720/mirror-anotation/pkg/overlay"
	"github.com/ritukun0720/mirror-anotation/pkg/palette"
	"github.com/ritukun0720/mirror-anotation/pkg/processing"
	"github.com/ritukun0720/mirror-anotation/pkg/types"
)

// DefaultSuffix is appended to the source base name of every output file
const DefaultSuffix = "_visualized"

// Renderer draws annotation overlays
type Renderer struct {
	opts      types.RenderOptions
	palette   *palette.Palette
	processor *processing.Processor
	logger    *log.Logger
}

// DefaultOptions returns the directory layout used by the dataset scripts
func DefaultOptions() types.RenderOptions {
	return types.RenderOptions{
		ImageDir:      "./rgb",
		AnnotationDir: "./json",
		OutputDir:     "./color_mask",
		Suffix:        DefaultSuffix,
		Format:        processing.FormatPNG,
	}
}

// New creates a new Renderer. A nil palette uses palette.Default and an
// empty format means PNG.
func New(opts types.RenderOptions, pal *palette.Palette) *Renderer {
	if pal == nil {
		pal = palette.Default()
	}
	if opts.Format == "" {
		opts.Format = processing.FormatPNG
	}
	return &Renderer{
		opts:      opts,
		palette:   pal,
		processor: processing.NewProcessor(),
		logger:    log.Default(),
	}
}

// SetLogger replaces the logger used by RenderAll
func (r *Renderer) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Options returns the renderer options
func (r *Renderer) Options() types.RenderOptions {
	return r.opts
}

// Render converts one annotation document and its source image into an
// overlay image written to outputDir (created when missing), returning the
// written path. The source image is looked up in imageDir first and then
// next to the document.
//
// Errors are *ParseError, *ImageNotFoundError or *RenderError.
func (r *Renderer) Render(recordPath, imageDir, outputDir string) (outPath string, err error) {
	stage := StageDecode
	defer func() {
		if e := recover(); e != nil {
			outPath = ""
			err = &RenderError{Path: recordPath, Stage: stage, Err: fmt.Errorf("panic: %v", e)}
		}
	}()

	if !processing.IsAlphaFormat(r.opts.Format) {
		return "", &RenderError{Path: recordPath, Stage: StageWrite, Err: fmt.Errorf("unsupported output format: %s", r.opts.Format)}
	}

	doc, err := annotation.LoadFile(recordPath)
	if err != nil {
		return "", &ParseError{Path: recordPath, Err: err}
	}

	imgPath, err := ResolveImage(recordPath, doc.ImagePath, imageDir)
	if err != nil {
		return "", err
	}

	base, err := r.processor.LoadNRGBA(imgPath)
	if err != nil {
		return "", &RenderError{Path: imgPath, Stage: StageDecode, Err: err}
	}

	stage = StageRasterize
	layer, err := overlay.Rasterize(base.Bounds(), doc.Shapes, r.palette)
	if err != nil {
		return "", &RenderError{Path: recordPath, Stage: StageRasterize, Err: err}
	}
	result := overlay.Composite(base, layer.Image())

	stage = StageWrite
	if err := utils.EnsureDir(outputDir); err != nil {
		return "", &RenderError{Path: outputDir, Stage: StageWrite, Err: err}
	}
	outPath = utils.GenerateOutputFilename(imgPath, outputDir, r.opts.Prefix, r.opts.Suffix, r.opts.Format)
	if err := r.processor.SaveImage(result, outPath, r.opts.Format); err != nil {
		return "", &RenderError{Path: outPath, Stage: StageWrite, Err: err}
	}

	return outPath, nil
}

// ResolveImage finds the source image referenced by an annotation document.
// Relative paths are tried against imageDir, then against the directory of
// the document. Backslash separators written by labelme on Windows are
// accepted.
func ResolveImage(recordPath, imagePath, imageDir string) (string, error) {
	rel := filepath.FromSlash(strings.ReplaceAll(imagePath, `\`, "/"))

	tried := []string{
		joinImagePath(imageDir, rel),
		joinImagePath(filepath.Dir(recordPath), rel),
	}
	for _, candidate := range tried {
		if utils.FileExists(candidate) {
			return candidate, nil
		}
	}

	return "", &ImageNotFoundError{RecordPath: recordPath, Tried: tried}
}

func joinImagePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
