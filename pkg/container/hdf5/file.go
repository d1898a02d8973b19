package hdf5

import (
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	gh5 "gonum.org/v1/hdf5"

	"github.com/bft-labs/lakhbronze/pkg/container"
)

var libMu sync.Mutex

// File is an open HDF5 file. It is the root group of the container.
type File struct {
	f    *gh5.File
	root *group
	tmp  string
}

var _ container.Group = (*File)(nil)

// Open opens an HDF5 file read-only.
func Open(path string) (*File, error) {
	libMu.Lock()
	defer libMu.Unlock()

	f, err := gh5.OpenFile(path, gh5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open hdf5 %s: %w", path, err)
	}
	return &File{f: f, root: &group{fg: &f.CommonFG}}, nil
}

// OpenBytes spills content to a temporary file in dir (the system default
// when empty) and opens it. Close removes the temporary file.
func OpenBytes(content []byte, dir string) (*File, error) {
	tmp, err := os.CreateTemp(dir, "lakhbronze-*.h5")
	if err != nil {
		return nil, fmt.Errorf("create temp container: %w", err)
	}
	name := tmp.Name()

	_, werr := tmp.Write(content)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(name)
		return nil, fmt.Errorf("spill container: %w", multierror.Append(werr, cerr).ErrorOrNil())
	}

	f, err := Open(name)
	if err != nil {
		os.Remove(name)
		return nil, err
	}
	f.tmp = name
	return f, nil
}

func (f *File) Members() ([]container.Member, error) { return f.root.Members() }

func (f *File) OpenGroup(name string) (container.Group, error) { return f.root.OpenGroup(name) }

func (f *File) ReadDataset(name string) (container.Node, error) { return f.root.ReadDataset(name) }

// Close closes the file and removes any temporary copy.
func (f *File) Close() error {
	var result error

	libMu.Lock()
	if err := f.f.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close hdf5: %w", err))
	}
	libMu.Unlock()

	if f.tmp != "" {
		if err := os.Remove(f.tmp); err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, fmt.Errorf("remove temp container: %w", err))
		}
	}
	return result
}

// group adapts a file or group's CommonFG.
type group struct {
	fg *gh5.CommonFG
	g  *gh5.Group
}

func (g *group) Members() ([]container.Member, error) {
	libMu.Lock()
	defer libMu.Unlock()

	n, err := g.fg.NumObjects()
	if err != nil {
		return nil, err
	}
	members := make([]container.Member, 0, n)
	for i := uint(0); i < n; i++ {
		name, err := g.fg.ObjectNameByIndex(i)
		if err != nil {
			return nil, err
		}
		typ, err := g.fg.ObjectTypeByIndex(i)
		if err != nil {
			return nil, err
		}
		m := container.Member{Name: name, Kind: container.MemberOther}
		switch typ {
		case gh5.H5G_GROUP:
			m.Kind = container.MemberGroup
		case gh5.H5G_DATASET:
			m.Kind = container.MemberDataset
		}
		members = append(members, m)
	}
	return members, nil
}

func (g *group) OpenGroup(name string) (container.Group, error) {
	libMu.Lock()
	defer libMu.Unlock()

	sub, err := g.fg.OpenGroup(name)
	if err != nil {
		return nil, err
	}
	return &group{fg: &sub.CommonFG, g: sub}, nil
}

func (g *group) ReadDataset(name string) (container.Node, error) {
	libMu.Lock()
	defer libMu.Unlock()

	ds, err := g.fg.OpenDataset(name)
	if err != nil {
		return nil, err
	}
	defer ds.Close()
	return readDataset(name, ds)
}

func (g *group) Close() error {
	if g.g == nil {
		return nil
	}
	libMu.Lock()
	defer libMu.Unlock()
	return g.g.Close()
}
