package h5walk

import (
	"path"
	"reflect"

	"github.com/robert-malhotra/go-hdf5/hdf5"
)

// Open opens an HDF5 file read-only and returns its root group together
// with a close function. The caller must invoke close before the
// operation returns; the handle is never shared or kept open across
// calls.
func Open(filePath string) (Group, func() error, error) {
	f, err := hdf5.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	return fileGroup{g: f.Root()}, f.Close, nil
}

// fileGroup adapts an hdf5.Group to the Group interface.
type fileGroup struct {
	g *hdf5.Group
}

func (fg fileGroup) PathName() string {
	return fg.g.Path()
}

// Children probes each member as a group first and as a dataset second,
// in the member order stored in the file. A member that opens as
// neither is reported as a Child with Err set, so the walker can skip
// it without losing the diagnostic.
func (fg fileGroup) Children() ([]Child, error) {
	members, err := fg.g.Members()
	if err != nil {
		return nil, err
	}

	children := make([]Child, 0, len(members))
	for _, name := range members {
		childPath := path.Join(fg.g.Path(), name)

		if sub, err := fg.g.OpenGroup(name); err == nil {
			children = append(children, Child{Path: childPath, Group: fileGroup{g: sub}})
			continue
		}

		ds, err := fg.g.OpenDataset(name)
		if err != nil {
			children = append(children, Child{Path: childPath, Err: err})
			continue
		}

		children = append(children, Child{Path: childPath, Array: fileArray{d: ds}})
	}

	return children, nil
}

// fileArray adapts an hdf5.Dataset to the Array interface.
type fileArray struct {
	d *hdf5.Dataset
}

func (fa fileArray) PathName() string {
	return fa.d.Path()
}

func (fa fileArray) Shape() []uint64 {
	return append([]uint64(nil), fa.d.Shape()...)
}

func (fa fileArray) Elem() reflect.Type {
	t, err := fa.d.GoType()
	if err != nil {
		return nil
	}
	return t
}

func (fa fileArray) Read() ([]byte, error) {
	return fa.d.ReadRaw()
}
