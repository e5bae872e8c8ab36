// Package stack assembles extracted images into a single result: a
// uniform stacked container when every image shares one shape and
// element type, or a heterogeneous sequence otherwise.
package stack

import (
	"reflect"
)

// Image is one extracted dataset: its location in the source file, its
// shape, its element type, and the raw element buffer. Elem is nil when
// the dataset's element type has no Go equivalent.
type Image struct {
	Path  string
	Shape []uint64
	Elem  reflect.Type
	Data  []byte
}

// Rank returns the number of dimensions in the image's shape.
func (im Image) Rank() int {
	return len(im.Shape)
}

// WarnFunc receives a diagnostic message when stacking has to fall back
// to a heterogeneous result. A nil WarnFunc drops the diagnostics.
type WarnFunc func(format string, args ...any)

// Result holds the assembled extraction output. Images always carries
// every extracted image with its original shape. When Uniform is true
// the images additionally form one stacked container: Shape has a new
// leading dimension equal to len(Images), Elem is the shared element
// type, and Data is the contiguous concatenation of all image buffers.
type Result struct {
	Uniform bool
	Shape   []uint64
	Elem    reflect.Type
	Data    []byte

	Images []Image
}

// Len returns the number of images in the result.
func (r *Result) Len() int {
	return len(r.Images)
}

// Assemble builds a Result from the extracted images. The shapes and
// element types are compared in one upfront pass; only when they all
// agree is the stacked buffer allocated. On any mismatch a warning is
// emitted and the images are returned individually instead.
func Assemble(images []Image, warn WarnFunc) *Result {
	res := &Result{Images: images}
	if len(images) == 0 {
		return res
	}

	if !uniform(images, warn) {
		return res
	}

	first := images[0]
	res.Uniform = true
	res.Elem = first.Elem
	res.Shape = make([]uint64, 0, len(first.Shape)+1)
	res.Shape = append(res.Shape, uint64(len(images)))
	res.Shape = append(res.Shape, first.Shape...)

	res.Data = make([]byte, 0, len(images)*len(first.Data))
	for _, im := range images {
		res.Data = append(res.Data, im.Data...)
	}

	return res
}

func uniform(images []Image, warn WarnFunc) bool {
	first := images[0]
	if first.Elem == nil {
		warnf(warn, "element type of %q could not be resolved, returning images individually", first.Path)
		return false
	}

	for _, im := range images[1:] {
		if im.Elem == nil {
			warnf(warn, "element type of %q could not be resolved, returning images individually", im.Path)
			return false
		}
		if !shapeEqual(im.Shape, first.Shape) {
			warnf(warn, "images have inconsistent shapes, returning images individually")
			return false
		}
		if im.Elem != first.Elem {
			warnf(warn, "images have inconsistent element types, returning images individually")
			return false
		}
	}

	return true
}

func warnf(warn WarnFunc, format string, args ...any) {
	if warn != nil {
		warn(format, args...)
	}
}

func shapeEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
