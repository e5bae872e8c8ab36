// Package extractor scans a single HDF5 file for image datasets and
// extracts them. An Extractor is bound to one file path; Scan counts
// the qualifying arrays and Extract reads them, in the same
// deterministic traversal order, so that "the first n images" means the
// same n images in both passes. The file is opened and closed inside
// each operation, never held across calls.
package extractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcioc/h5-image-extractor/pkg/h5walk"
	"github.com/gcioc/h5-image-extractor/pkg/stack"
)

// Common errors
var (
	ErrFileNotFound = errors.New("file does not exist")
	ErrNotAFile     = errors.New("path is not a regular file")
	ErrNotScanned   = errors.New("no images found in file, run Scan first")
	ErrOutOfRange   = errors.New("requested count exceeds available images")
	ErrInvalidCount = errors.New("image count must be positive")
)

// Logger receives progress and warning messages. A nil Logger means
// silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger for progress and warning messages.
func WithLogger(l Logger) Option {
	return func(ex *Extractor) {
		ex.logger = l
	}
}

// openFunc opens a file and returns its root group with a close
// function. Tests substitute an in-memory tree here.
type openFunc func(filePath string) (h5walk.Group, func() error, error)

// Extractor extracts image datasets from a single HDF5 file. It holds
// the bound file path and the image count cached by Scan; it keeps no
// open file handle and no references to extracted data.
type Extractor struct {
	filePath    string
	logger      Logger
	totalImages int
	open        openFunc
}

// Summary describes the scanned file and its cached image count.
type Summary struct {
	FilePath    string
	TotalImages int
}

// New creates an Extractor bound to the given file path. The path must
// name an existing regular file; a missing path fails with
// ErrFileNotFound and a directory with ErrNotAFile. A file without the
// .h5 extension is accepted with a warning.
func New(filePath string, opts ...Option) (*Extractor, error) {
	ex := &Extractor{filePath: filePath, open: h5walk.Open}
	for _, opt := range opts {
		opt(ex)
	}

	info, err := os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filePath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, filePath)
	}

	if !strings.EqualFold(filepath.Ext(filePath), ".h5") {
		ex.warnf("file does not have a .h5 extension: %s", filePath)
	}

	return ex, nil
}

// FilePath returns the file path the Extractor is bound to.
func (ex *Extractor) FilePath() string {
	return ex.filePath
}

// TotalImages returns the image count cached by the last Scan.
func (ex *Extractor) TotalImages() int {
	return ex.totalImages
}

// Scan opens the file, counts the image datasets (arrays of rank two or
// higher) in depth-first order, caches the count, and returns it.
// Scanning is best-effort: if the file cannot be opened or walked the
// count resets to zero with a warning rather than an error.
func (ex *Extractor) Scan() int {
	count, err := ex.countImages()
	if err != nil {
		ex.warnf("error reading %s: %v", ex.filePath, err)
		count = 0
	}
	ex.totalImages = count

	ex.infof("%s: %d images", filepath.Base(ex.filePath), count)
	ex.infof("Total images found: %d", count)

	return count
}

func (ex *Extractor) countImages() (int, error) {
	root, closeFile, err := ex.open(ex.filePath)
	if err != nil {
		return 0, err
	}
	defer closeFile()

	count := 0
	err = h5walk.Images(root, func(h5walk.Array) error {
		count++
		return nil
	}, ex.warnf)

	return count, err
}

// Extract reads the first n image datasets in traversal order and
// assembles them into a single result. It requires a prior successful
// Scan: a cached count of zero fails with ErrNotScanned, n <= 0 with
// ErrInvalidCount, and n above the cached count with ErrOutOfRange.
// Individual arrays that cannot be read are skipped with a warning; the
// walk continues until n images are collected or the tree is exhausted,
// whichever comes first.
func (ex *Extractor) Extract(n int) (*stack.Result, error) {
	if ex.totalImages == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotScanned, ex.filePath)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	if n > ex.totalImages {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrOutOfRange, n, ex.totalImages)
	}

	ex.infof("Extracting %d image(s)", n)

	images, err := ex.readImages(n)
	if err != nil {
		return nil, err
	}
	if len(images) < n {
		ex.warnf("only %d of %d requested image(s) could be read", len(images), n)
	}

	ex.infof("Extracted %d from %s", len(images), filepath.Base(ex.filePath))

	res := stack.Assemble(images, ex.warnf)
	if res.Uniform {
		ex.infof("Output shape: %v", res.Shape)
	}

	return res, nil
}

// ExtractAll extracts every image counted by the last Scan.
func (ex *Extractor) ExtractAll() (*stack.Result, error) {
	return ex.Extract(ex.totalImages)
}

func (ex *Extractor) readImages(max int) ([]stack.Image, error) {
	root, closeFile, err := ex.open(ex.filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ex.filePath, err)
	}
	defer closeFile()

	images := make([]stack.Image, 0, max)
	err = h5walk.Images(root, func(a h5walk.Array) error {
		data, err := a.Read()
		if err != nil {
			ex.warnf("could not read dataset %q: %v", a.PathName(), err)
			return nil
		}

		images = append(images, stack.Image{
			Path:  a.PathName(),
			Shape: a.Shape(),
			Elem:  a.Elem(),
			Data:  data,
		})

		if len(images) >= max {
			return h5walk.ErrStop
		}
		return nil
	}, ex.warnf)
	if err != nil {
		return nil, err
	}

	return images, nil
}

// Summary returns the bound file path and the cached image count. It
// reads cached state only and performs no I/O.
func (ex *Extractor) Summary() Summary {
	return Summary{
		FilePath:    ex.filePath,
		TotalImages: ex.totalImages,
	}
}

func (ex *Extractor) infof(format string, args ...any) {
	if ex.logger != nil {
		ex.logger.Infof(format, args...)
	}
}

func (ex *Extractor) warnf(format string, args ...any) {
	if ex.logger != nil {
		ex.logger.Warnf(format, args...)
	}
}
