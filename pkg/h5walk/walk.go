// Package h5walk models the node hierarchy of an HDF5 file — groups
// containing sub-groups and arrays — and walks it depth-first to find
// the arrays that qualify as images. The hierarchy sits behind small
// Group and Array interfaces so that traversal logic can be exercised
// against in-memory trees; Open adapts a real HDF5 file to them.
package h5walk

import (
	"errors"
	"reflect"
)

// ErrStop can be returned from an ImageFunc to stop the traversal early
// without reporting an error.
var ErrStop = errors.New("walk stopped")

// Node is one entry in the hierarchy, either a Group or an Array.
type Node interface {
	// PathName returns the node's full path within the file, used for
	// diagnostic messages.
	PathName() string
}

// Group is a container node holding named child nodes in a stable
// order: the same group always reports its children in the same
// sequence.
type Group interface {
	Node
	Children() ([]Child, error)
}

// Array is a leaf node holding a multi-dimensional buffer of a fixed
// element type and shape.
type Array interface {
	Node
	// Shape returns the ordered dimension sizes of the array.
	Shape() []uint64
	// Elem returns the Go type of one element, or nil when the stored
	// element type has no Go equivalent.
	Elem() reflect.Type
	// Read returns the raw element buffer.
	Read() ([]byte, error)
}

// Child is one entry of a group, tagged by kind: exactly one of Group,
// Array, or Err is set. Err carries the failure for a child that could
// not be opened at all.
type Child struct {
	Path  string
	Group Group
	Array Array
	Err   error
}

// ImageFunc is called for each image-candidate array during traversal,
// in depth-first order. Return ErrStop to end the walk early.
type ImageFunc func(a Array) error

// WarnFunc receives a diagnostic message for every node that had to be
// skipped during traversal. A nil WarnFunc drops the diagnostics.
type WarnFunc func(format string, args ...any)

// IsImage reports whether an array qualifies as an image candidate: an
// array of rank two or higher. Scalars and one-dimensional arrays are
// not images.
func IsImage(a Array) bool {
	return a != nil && len(a.Shape()) >= 2
}

// Images walks the hierarchy rooted at g depth-first, in the stable
// child order each group reports, and calls fn for every array that
// satisfies IsImage. Children that could not be opened are skipped with
// a warning and the walk continues with their siblings; a group whose
// child list cannot be read is likewise skipped as a whole. The same
// tree always yields the same sequence, so two passes over one file see
// the images in identical order.
func Images(g Group, fn ImageFunc, warn WarnFunc) error {
	err := walkGroup(g, fn, warn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func walkGroup(g Group, fn ImageFunc, warn WarnFunc) error {
	children, err := g.Children()
	if err != nil {
		warnf(warn, "could not list children of %q: %v", g.PathName(), err)
		return nil
	}

	for _, child := range children {
		switch {
		case child.Err != nil:
			warnf(warn, "skipping unreadable node %q: %v", child.Path, child.Err)
		case child.Group != nil:
			if err := walkGroup(child.Group, fn, warn); err != nil {
				return err
			}
		case child.Array != nil:
			if !IsImage(child.Array) {
				continue
			}
			if err := fn(child.Array); err != nil {
				return err
			}
		}
	}

	return nil
}

func warnf(warn WarnFunc, format string, args ...any) {
	if warn != nil {
		warn(format, args...)
	}
}
