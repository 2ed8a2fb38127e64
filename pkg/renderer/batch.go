package renderer

import (
	"errors"
	"fmt"

	"github.com/ritukun0720/mirror-anotation/internal/utils"
)

// Failure records one annotation document that produced no output
type Failure struct {
	Path string
	Err  error
}

// Summary is the outcome of a batch run
type Summary struct {
	Found    int
	Rendered int
	Outputs  []string
	Failures []Failure
}

// RenderAll renders every *.json document in the configured annotation
// directory. Per-document failures are logged and collected in the summary;
// only a failure to prepare the output directory is returned as an error.
func (r *Renderer) RenderAll() (Summary, error) {
	var summary Summary

	if err := utils.EnsureDir(r.opts.OutputDir); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}

	records, err := utils.ListFilesWithExt(r.opts.AnnotationDir, "json")
	if err != nil {
		return summary, fmt.Errorf("failed to list annotation files: %w", err)
	}
	if len(records) == 0 {
		r.logger.Printf("no JSON files found in %s", r.opts.AnnotationDir)
		return summary, nil
	}

	summary.Found = len(records)
	for _, record := range records {
		out, err := r.Render(record, r.opts.ImageDir, r.opts.OutputDir)
		if err != nil {
			r.logFailure(record, err)
			summary.Failures = append(summary.Failures, Failure{Path: record, Err: err})
			continue
		}
		summary.Rendered++
		summary.Outputs = append(summary.Outputs, out)
		r.logger.Printf("wrote %s", out)
	}

	r.logger.Printf("rendered %d of %d annotation files", summary.Rendered, summary.Found)
	return summary, nil
}

func (r *Renderer) logFailure(record string, err error) {
	var notFound *ImageNotFoundError
	if errors.As(err, &notFound) {
		r.logger.Printf("warning: %v", err)
		return
	}
	r.logger.Printf("error processing %s: %v", record, err)
}
