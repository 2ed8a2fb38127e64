// Package collect gathers annotation/image pairs scattered over a directory
// tree into one flat directory.
package collect

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/ritukun0720/mirror-anotation/internal/utils"
)

// Result counts the pairs handled by Collect
type Result struct {
	Copied int
	Failed int
}

// Collector copies <name>.json and <name>.png pairs
type Collector struct {
	logger *log.Logger
}

// New creates a Collector logging to log.Default
func New() *Collector {
	return &Collector{logger: log.Default()}
}

// SetLogger replaces the collector logger
func (c *Collector) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// Collect walks sourceDir recursively and copies every JSON file that has a
// PNG file with the same base name in the same directory into destDir,
// together with that PNG. Files with the same name from different
// directories overwrite each other in destDir.
func (c *Collector) Collect(sourceDir, destDir string) (Result, error) {
	var result Result

	if !utils.DirExists(sourceDir) {
		return result, fmt.Errorf("source directory %s does not exist", sourceDir)
	}
	if !utils.DirExists(destDir) {
		if err := utils.EnsureDir(destDir); err != nil {
			return result, fmt.Errorf("failed to create destination directory: %w", err)
		}
		c.logger.Printf("created %s", destDir)
	}

	destAbs, err := filepath.Abs(destDir)
	if err != nil {
		return result, err
	}

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// already flattened pairs must not be copied onto themselves
			if abs, err := filepath.Abs(path); err == nil && abs == destAbs {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		pngPath := strings.TrimSuffix(path, ".json") + ".png"
		if !utils.FileExists(pngPath) {
			return nil
		}

		if err := copyPair(path, pngPath, destDir); err != nil {
			c.logger.Printf("copy %s and %s failed: %v", d.Name(), filepath.Base(pngPath), err)
			result.Failed++
			return nil
		}
		c.logger.Printf("copied %s and %s", d.Name(), filepath.Base(pngPath))
		result.Copied++
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to walk %s: %w", sourceDir, err)
	}

	if result.Copied == 0 {
		c.logger.Printf("no JSON/PNG pairs found in %s", sourceDir)
	} else {
		c.logger.Printf("copied %d pairs to %s", result.Copied, destDir)
	}

	return result, nil
}

func copyPair(jsonPath, pngPath, destDir string) error {
	for _, src := range []string{jsonPath, pngPath} {
		if err := utils.CopyFile(src, filepath.Join(destDir, filepath.Base(src))); err != nil {
			return err
		}
	}
	return nil
}
