// Package h5imageextractor extracts image datasets from HDF5 files.
// It walks the group hierarchy of a file, counts the arrays of rank two
// or higher, reads them in a stable depth-first order, and assembles the
// result into a single stacked container when every image shares one
// shape and element type, or a heterogeneous sequence when they do not.
//
// The CLI lives in cmd/h5-image-extractor; this root package exposes the
// same pipeline as a Go API so that callers can embed extraction in
// their own tools without shelling out.
//
// # Import
//
// The module path contains hyphens but Go package names cannot, so the
// package is named h5imageextractor:
//
//	import "github.com/gcioc/h5-image-extractor" // package h5imageextractor
//
// # Quick start
//
//	result, err := h5imageextractor.Run(h5imageextractor.Options{
//	    FilePath: "experiment.h5",
//	    Count:    10,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Images.Len(), "images extracted")
//
// For finer control construct an [extractor.Extractor] directly and call
// Scan, Extract, and Summary yourself.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages and the warnings emitted for skipped nodes, unreadable
// datasets, and shape mismatches. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Confirmation
//
// When [Options.Count] is zero the whole file is extracted. Set
// [Options.Confirm] to intercept that case; the CLI uses it for an
// interactive y/n prompt. A declined confirmation yields an empty
// Result, not an error.
package h5imageextractor
