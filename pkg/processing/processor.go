package processing

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Output formats that keep the alpha channel
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// Processor handles image loading and saving
type Processor struct{}

// NewProcessor creates a new image processor
func NewProcessor() *Processor {
	return &Processor{}
}

// LoadImage loads an image from a file path with WebP support
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.decodeImageFromBytes(data, path)
}

// LoadNRGBA loads an image and converts it to a non-premultiplied 4-channel
// image with the same dimensions, origin at (0, 0)
func (p *Processor) LoadNRGBA(path string) (*image.NRGBA, error) {
	img, err := p.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// decodeImageFromBytes decodes an image from byte data with WebP support
func (p *Processor) decodeImageFromBytes(data []byte, name string) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format for %s", name)
}

// IsAlphaFormat reports whether format can be used for overlay output
func IsAlphaFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPNG, FormatWebP:
		return true
	}
	return false
}

// Encode writes img to w in an alpha-preserving format
func (p *Processor) Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// SaveImage saves an image to path in an alpha-preserving format,
// replacing any existing file
func (p *Processor) SaveImage(img image.Image, path, format string) error {
	switch strings.ToLower(format) {
	case FormatPNG:
		if !strings.EqualFold(filepath.Ext(path), ".png") {
			return fmt.Errorf("png output requires a .png path: %s", path)
		}
		return imaging.Save(img, path)
	case FormatWebP:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := p.Encode(f, img, format); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
