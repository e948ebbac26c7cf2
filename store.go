package fontdata

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/hdf5"
)

// ErrDatasetExists is returned when a symbol's datasets are already present in the container.
var ErrDatasetExists = fmt.Errorf("dataset already exists")

// LabelsName returns the name of the dataset holding the font names for a symbol.
func LabelsName(symbol string) string {
	return symbol + "-labels"
}

// VectorsName returns the name of the dataset holding the bitmaps for a symbol.
func VectorsName(symbol string) string {
	return symbol + "-vectors"
}

// Store is an HDF5 file holding two datasets per symbol: the font names as fixed-length strings and the bitmaps as an N×H×W array of uint8.
type Store struct {
	Filename string

	f *hdf5.File
}

// OpenStore opens the HDF5 file for appending datasets, creating it when it doesn't exist. When truncate is set any existing content is discarded.
func OpenStore(filename string, truncate bool) (*Store, error) {
	var f *hdf5.File
	var err error
	if _, errStat := os.Stat(filename); errStat == nil && !truncate {
		if !hdf5.IsHDF5(filename) {
			return nil, fmt.Errorf("%v: not an HDF5 file", filename)
		}
		f, err = hdf5.OpenFile(filename, hdf5.F_ACC_RDWR)
	} else {
		f, err = hdf5.CreateFile(filename, hdf5.F_ACC_TRUNC)
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return &Store{
		Filename: filename,
		f:        f,
	}, nil
}

// OpenStoreReadOnly opens an existing HDF5 file for reading.
func OpenStoreReadOnly(filename string) (*Store, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return &Store{
		Filename: filename,
		f:        f,
	}, nil
}

// Close closes the file.
func (s *Store) Close() error {
	return s.f.Close()
}

// HasSymbol returns true if either dataset of the symbol exists.
func (s *Store) HasSymbol(symbol string) bool {
	return s.f.LinkExists(LabelsName(symbol)) || s.f.LinkExists(VectorsName(symbol))
}

// WriteSymbol writes the labels and the stacked bitmaps of a symbol. All bitmaps must have the same size.
func (s *Store) WriteSymbol(symbol string, labels []string, images []*Bitmap) error {
	if len(images) == 0 {
		return fmt.Errorf("%v: no images", symbol)
	} else if len(labels) != len(images) {
		return fmt.Errorf("%v: %d labels for %d images", symbol, len(labels), len(images))
	} else if s.HasSymbol(symbol) {
		return fmt.Errorf("%w: %v", ErrDatasetExists, symbol)
	}

	width, height := images[0].Width, images[0].Height
	vectors := make([]uint8, 0, len(images)*width*height)
	for i, img := range images {
		if !img.SameSize(images[0]) {
			return fmt.Errorf("%v: image %d is %dx%d, expected %dx%d", labels[i], i, img.Width, img.Height, width, height)
		}
		vectors = append(vectors, img.Pix...)
	}

	if err := s.writeLabels(LabelsName(symbol), labels); err != nil {
		return err
	}
	dims := []uint{uint(len(images)), uint(height), uint(width)}
	return s.write(VectorsName(symbol), hdf5.T_NATIVE_UINT8, dims, &vectors)
}

func (s *Store) writeLabels(name string, labels []string) error {
	size := 1
	for _, label := range labels {
		if size < len(label) {
			size = len(label)
		}
	}

	buf := make([]byte, len(labels)*size)
	for i, label := range labels {
		copy(buf[i*size:], label)
	}

	dtype, err := hdf5.T_C_S1.Copy()
	if err != nil {
		return err
	}
	defer dtype.Close()
	if err := dtype.SetSize(size); err != nil {
		return err
	}
	return s.write(name, dtype, []uint{uint(len(labels))}, &buf)
}

func (s *Store) write(name string, dtype *hdf5.Datatype, dims []uint, data interface{}) error {
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer space.Close()

	dset, err := s.f.CreateDataset(name, dtype, space)
	if err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}
	if err := dset.Write(data); err != nil {
		dset.Close()
		return fmt.Errorf("%v: %w", name, err)
	}
	return dset.Close()
}

// Datasets returns the names of all datasets in the file in sorted order.
func (s *Store) Datasets() ([]string, error) {
	n, err := s.f.NumObjects()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		name, err := s.f.ObjectNameByIndex(i)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Dims returns the dimensions of a dataset.
func (s *Store) Dims(name string) ([]uint, error) {
	dset, err := s.f.OpenDataset(name)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	return dims, err
}

// ReadSymbol reads the labels and bitmaps of a symbol.
func (s *Store) ReadSymbol(symbol string) ([]string, []*Bitmap, error) {
	labels, err := s.readLabels(LabelsName(symbol))
	if err != nil {
		return nil, nil, err
	}

	name := VectorsName(symbol)
	dims, err := s.Dims(name)
	if err != nil {
		return nil, nil, err
	} else if len(dims) != 3 {
		return nil, nil, fmt.Errorf("%v: expected 3 dimensions, got %d", name, len(dims))
	}
	n, height, width := int(dims[0]), int(dims[1]), int(dims[2])

	vectors := make([]uint8, n*height*width)
	if err := s.read(name, &vectors); err != nil {
		return nil, nil, err
	}
	images := make([]*Bitmap, n)
	for i := range images {
		images[i] = &Bitmap{
			Width:  width,
			Height: height,
			Pix:    vectors[i*width*height : (i+1)*width*height],
		}
	}
	return labels, images, nil
}

func (s *Store) readLabels(name string) ([]string, error) {
	dset, err := s.f.OpenDataset(name)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	defer dset.Close()

	dtype, err := dset.Datatype()
	if err != nil {
		return nil, err
	}
	size := int(dtype.Size())
	dtype.Close()

	space := dset.Space()
	dims, _, err := space.SimpleExtentDims()
	space.Close()
	if err != nil {
		return nil, err
	} else if len(dims) != 1 {
		return nil, fmt.Errorf("%v: expected 1 dimension, got %d", name, len(dims))
	}

	buf := make([]byte, int(dims[0])*size)
	if err := dset.Read(&buf); err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	labels := make([]string, dims[0])
	for i := range labels {
		labels[i] = string(bytes.TrimRight(buf[i*size:(i+1)*size], "\x00"))
	}
	return labels, nil
}

func (s *Store) read(name string, data interface{}) error {
	dset, err := s.f.OpenDataset(name)
	if err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}
	if err := dset.Read(data); err != nil {
		dset.Close()
		return fmt.Errorf("%v: %w", name, err)
	}
	return dset.Close()
}
