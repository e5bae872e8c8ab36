package h5imageextractor

import (
	"fmt"

	"github.com/gcioc/h5-image-extractor/pkg/extractor"
	"github.com/gcioc/h5-image-extractor/pkg/formatter"
	"github.com/gcioc/h5-image-extractor/pkg/stack"
)

// Options configures the extraction.
type Options struct {
	FilePath string
	Count    int                  // number of images to extract; 0 = all
	Confirm  func(total int) bool // asked before extracting all; nil = proceed
	Logger   Logger               // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the extraction output.
type Result struct {
	Images   *stack.Result     // assembled images
	Summary  extractor.Summary // scanned file path and image count
	Markdown string            // formatted markdown report
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

// Run executes the extraction pipeline against one HDF5 file: validate
// the path, scan for images, and extract. When Options.Count is zero
// everything found is extracted, after asking Options.Confirm if one is
// set; a declined confirmation returns an empty Result rather than an
// error.
func Run(opts Options) (*Result, error) {
	ex, err := extractor.New(opts.FilePath, extractor.WithLogger(opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("open extractor: %w", err)
	}

	total := ex.Scan()

	if opts.Count == 0 {
		opts.logInfo("No specific count requested. Will extract all %d images.", total)
		if opts.Confirm != nil && !opts.Confirm(total) {
			opts.logInfo("Extraction cancelled.")
			return &Result{
				Images:  &stack.Result{},
				Summary: ex.Summary(),
			}, nil
		}
	}

	var res *stack.Result
	if opts.Count == 0 {
		res, err = ex.ExtractAll()
	} else {
		res, err = ex.Extract(opts.Count)
	}
	if err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}

	sum := ex.Summary()
	return &Result{
		Images:   res,
		Summary:  sum,
		Markdown: formatter.ToMarkdown(sum, res),
	}, nil
}
