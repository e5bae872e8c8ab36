package h5walk

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// In-memory tree used to exercise traversal without a real file.

type memArray struct {
	path    string
	shape   []uint64
	data    []byte
	readErr error
}

func (a *memArray) PathName() string   { return a.path }
func (a *memArray) Shape() []uint64    { return a.shape }
func (a *memArray) Elem() reflect.Type { return reflect.TypeOf(float64(0)) }
func (a *memArray) Read() ([]byte, error) {
	return a.data, a.readErr
}

type memGroup struct {
	path     string
	children []Child
	listErr  error
}

func (g *memGroup) PathName() string { return g.path }
func (g *memGroup) Children() ([]Child, error) {
	return g.children, g.listErr
}

func arr(path string, shape ...uint64) Child {
	return Child{Path: path, Array: &memArray{path: path, shape: shape}}
}

func grp(g *memGroup) Child {
	return Child{Path: g.path, Group: g}
}

func bad(path string, err error) Child {
	return Child{Path: path, Err: err}
}

func visited(t *testing.T, root Group, warn WarnFunc) []string {
	t.Helper()
	var paths []string
	err := Images(root, func(a Array) error {
		paths = append(paths, a.PathName())
		return nil
	}, warn)
	if err != nil {
		t.Fatalf("Images() error = %v", err)
	}
	return paths
}

func TestImagesDepthFirstOrderAndFilter(t *testing.T) {
	// Mirrors a file with /a holding a (10,10) array and a nested
	// (10,10) array, plus a rank-1 array at /c that must be excluded.
	root := &memGroup{path: "/", children: []Child{
		grp(&memGroup{path: "/a", children: []Child{
			arr("/a/img0", 10, 10),
			grp(&memGroup{path: "/a/b", children: []Child{
				arr("/a/b/img1", 10, 10),
			}}),
		}}),
		arr("/c", 5),
	}}

	got := visited(t, root, nil)
	want := []string{"/a/img0", "/a/b/img1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visited = %v, want %v", got, want)
	}
}

func TestImagesDeterministicOrder(t *testing.T) {
	root := &memGroup{path: "/", children: []Child{
		arr("/x", 2, 2),
		grp(&memGroup{path: "/g", children: []Child{
			arr("/g/y", 2, 2),
			arr("/g/z", 3, 3),
		}}),
		arr("/w", 4, 4),
	}}

	first := visited(t, root, nil)
	second := visited(t, root, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two walks differ: %v vs %v", first, second)
	}
	want := []string{"/x", "/g/y", "/g/z", "/w"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("visited = %v, want %v", first, want)
	}
}

func TestImagesEarlyStop(t *testing.T) {
	root := &memGroup{path: "/", children: []Child{
		arr("/a", 2, 2),
		arr("/b", 2, 2),
		arr("/c", 2, 2),
	}}

	var paths []string
	err := Images(root, func(a Array) error {
		paths = append(paths, a.PathName())
		return ErrStop
	}, nil)
	if err != nil {
		t.Fatalf("Images() error = %v, want nil after ErrStop", err)
	}
	if len(paths) != 1 || paths[0] != "/a" {
		t.Errorf("visited = %v, want [/a]", paths)
	}
}

func TestImagesSkipsUnreadableChild(t *testing.T) {
	root := &memGroup{path: "/", children: []Child{
		arr("/a", 2, 2),
		bad("/broken", errors.New("corrupt node")),
		arr("/b", 2, 2),
	}}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	got := visited(t, root, warn)
	want := []string{"/a", "/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visited = %v, want %v", got, want)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestImagesSkipsGroupWithUnreadableChildList(t *testing.T) {
	root := &memGroup{path: "/", children: []Child{
		grp(&memGroup{path: "/bad", listErr: errors.New("corrupt heap")}),
		arr("/ok", 2, 2),
	}}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	got := visited(t, root, warn)
	want := []string{"/ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visited = %v, want %v", got, want)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestImagesPropagatesCallbackError(t *testing.T) {
	root := &memGroup{path: "/", children: []Child{arr("/a", 2, 2)}}

	boom := errors.New("boom")
	err := Images(root, func(Array) error { return boom }, nil)
	if !errors.Is(err, boom) {
		t.Errorf("Images() error = %v, want %v", err, boom)
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name  string
		array Array
		want  bool
	}{
		{name: "nil array", array: nil, want: false},
		{name: "scalar", array: &memArray{shape: nil}, want: false},
		{name: "rank 1", array: &memArray{shape: []uint64{5}}, want: false},
		{name: "rank 2", array: &memArray{shape: []uint64{10, 10}}, want: true},
		{name: "rank 3", array: &memArray{shape: []uint64{3, 10, 10}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImage(tt.array); got != tt.want {
				t.Errorf("IsImage() = %v, want %v", got, tt.want)
			}
		})
	}
}
