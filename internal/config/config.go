package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ritukun0720/mirror-anotation/pkg/palette"
	"github.com/ritukun0720/mirror-anotation/pkg/processing"
	"github.com/ritukun0720/mirror-anotation/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Render  RenderConfig     `yaml:"render"`
	Collect CollectConfig    `yaml:"collect"`
	Colors  *palette.Palette `yaml:"colors"`
}

// RenderConfig holds the directories and naming used by the overlay renderer
type RenderConfig struct {
	ImageDir      string `yaml:"image_dir"`
	AnnotationDir string `yaml:"annotation_dir"`
	OutputDir     string `yaml:"output_dir"`
	Prefix        string `yaml:"prefix"`
	Suffix        string `yaml:"suffix"`
	Format        string `yaml:"format"`
}

// CollectConfig holds configuration for the pair collector
type CollectConfig struct {
	SourceDir string `yaml:"source_dir"`
	DestDir   string `yaml:"dest_dir"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			ImageDir:      "./rgb",
			AnnotationDir: "./json",
			OutputDir:     "./color_mask",
			Prefix:        "",
			Suffix:        "_visualized",
			Format:        processing.FormatPNG,
		},
		Collect: CollectConfig{
			SourceDir: ".",
			DestDir:   "./output",
		},
		Colors: palette.Default(),
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. Keys that are
// absent keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Colors == nil {
		config.Colors = palette.Default()
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Render.AnnotationDir) == "" {
		return fmt.Errorf("render.annotation_dir cannot be empty")
	}

	if strings.TrimSpace(c.Render.OutputDir) == "" {
		return fmt.Errorf("render.output_dir cannot be empty")
	}

	if !processing.IsAlphaFormat(c.Render.Format) {
		return fmt.Errorf("render.format must be png or webp, got %q", c.Render.Format)
	}

	if c.Render.Prefix == "" && c.Render.Suffix == "" && filepath.Clean(c.Render.OutputDir) == filepath.Clean(c.Render.ImageDir) {
		return fmt.Errorf("render.output_dir equals render.image_dir with no prefix or suffix; sources would be overwritten")
	}

	return nil
}

// RenderOptions converts the render section for the renderer package
func (c *Config) RenderOptions() types.RenderOptions {
	return types.RenderOptions{
		ImageDir:      c.Render.ImageDir,
		AnnotationDir: c.Render.AnnotationDir,
		OutputDir:     c.Render.OutputDir,
		Prefix:        c.Render.Prefix,
		Suffix:        c.Render.Suffix,
		Format:        strings.ToLower(c.Render.Format),
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./colormask.yaml"
	}
	return filepath.Join(home, ".config", "colormask", "config.yaml")
}
