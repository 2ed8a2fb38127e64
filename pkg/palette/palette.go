// Package palette maps annotation labels to overlay fill colors.
package palette

import (
	"fmt"
	"image/color"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultKey is the reserved label holding the fallback color
const DefaultKey = "_default_"

// Color is an RGBA fill color. In config files it is written as a list
// [r, g, b, a] with every channel in 0..255; a three element list is opaque.
type Color color.NRGBA

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var channels []int
	if err := value.Decode(&channels); err != nil {
		return fmt.Errorf("color must be a list of channel values: %w", err)
	}
	if len(channels) != 3 && len(channels) != 4 {
		return fmt.Errorf("color must have 3 or 4 channels, got %d", len(channels))
	}
	for i, ch := range channels {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("color channel %d out of range: %d", i, ch)
		}
	}
	alpha := 255
	if len(channels) == 4 {
		alpha = channels[3]
	}
	*c = Color{R: uint8(channels[0]), G: uint8(channels[1]), B: uint8(channels[2]), A: uint8(alpha)}
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (c Color) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, ch := range []uint8{c.R, c.G, c.B, c.A} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(ch)})
	}
	return node, nil
}

// Palette is a label to color lookup table with a guaranteed fallback
type Palette struct {
	colors   map[string]color.NRGBA
	fallback color.NRGBA
}

// Fallback is the gray used for labels without an explicit mapping
var Fallback = color.NRGBA{128, 128, 128, 128}

// New creates a palette from explicit label colors and a fallback color.
// A DefaultKey entry in colors overrides the fallback argument.
func New(colors map[string]color.NRGBA, fallback color.NRGBA) *Palette {
	p := &Palette{
		colors:   make(map[string]color.NRGBA, len(colors)),
		fallback: fallback,
	}
	for label, c := range colors {
		if label == DefaultKey {
			p.fallback = c
			continue
		}
		p.colors[label] = c
	}
	return p
}

// Default returns the palette used for mirror/glass segmentation datasets
func Default() *Palette {
	return New(map[string]color.NRGBA{
		"mirror":        {255, 0, 0, 128},
		"glass":         {0, 0, 255, 128},
		"mirror object": {0, 255, 0, 128},
		"other":         {255, 255, 0, 128},
	}, Fallback)
}

// Lookup returns the fill color for label, or the fallback color when the
// label has no mapping. It never fails.
func (p *Palette) Lookup(label string) color.NRGBA {
	if p == nil {
		return Fallback
	}
	if c, ok := p.colors[label]; ok {
		return c
	}
	return p.fallback
}

// Has reports whether label has an explicit mapping
func (p *Palette) Has(label string) bool {
	if p == nil {
		return false
	}
	_, ok := p.colors[label]
	return ok
}

// FallbackColor returns the color used for unmapped labels
func (p *Palette) FallbackColor() color.NRGBA {
	if p == nil {
		return Fallback
	}
	return p.fallback
}

// Labels returns the explicitly mapped labels in sorted order
func (p *Palette) Labels() []string {
	if p == nil {
		return nil
	}
	labels := make([]string, 0, len(p.colors))
	for label := range p.colors {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// UnmarshalYAML implements yaml.Unmarshaler. A mapping without DefaultKey
// gets the built-in Fallback.
func (p *Palette) UnmarshalYAML(value *yaml.Node) error {
	var entries map[string]Color
	if err := value.Decode(&entries); err != nil {
		return err
	}
	colors := make(map[string]color.NRGBA, len(entries))
	for label, c := range entries {
		colors[label] = color.NRGBA(c)
	}
	*p = *New(colors, Fallback)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (p Palette) MarshalYAML() (interface{}, error) {
	entries := make(map[string]Color, len(p.colors)+1)
	for label, c := range p.colors {
		entries[label] = Color(c)
	}
	entries[DefaultKey] = Color(p.fallback)
	return entries, nil
}
