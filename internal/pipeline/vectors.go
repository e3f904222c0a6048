package pipeline

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/mmap"
)

// Static vector files carry a fixed 16 byte header followed by rows*dims
// little-endian float32 values.
var vectorsMagic = [4]byte{'S', 'V', 'E', 'C'}

const (
	vectorsVersion    uint16 = 1
	vectorsHeaderSize        = 16
)

type vectorsHeader struct {
	Magic    [4]byte
	Version  uint16
	Reserved uint16
	Rows     uint32
	Dims     uint32
}

// VectorTable provides read access to a bundle's static word vectors via
// memory mapping. Vector files can be hundreds of megabytes, so rows are
// read on demand instead of loading the table into memory.
type VectorTable struct {
	path string
	r    *mmap.ReaderAt
	rows int
	dims int
}

// OpenVectors memory-maps a vectors file and validates its header.
func OpenVectors(path string) (*VectorTable, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap vectors: %w", err)
	}

	buf := make([]byte, vectorsHeaderSize)
	if _, err := r.ReadAt(buf, 0); err != nil {
		r.Close()
		return nil, fmt.Errorf("read vectors header: %w", err)
	}

	var hdr vectorsHeader
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &hdr); err != nil {
		r.Close()
		return nil, fmt.Errorf("decode vectors header: %w", err)
	}
	if hdr.Magic != vectorsMagic {
		r.Close()
		return nil, fmt.Errorf("vectors: bad magic %q", hdr.Magic[:])
	}
	if hdr.Version != vectorsVersion {
		r.Close()
		return nil, fmt.Errorf("vectors: unsupported version %d", hdr.Version)
	}

	rows, dims := int(hdr.Rows), int(hdr.Dims)
	want := int64(vectorsHeaderSize) + int64(rows)*int64(dims)*4
	if int64(r.Len()) < want {
		r.Close()
		return nil, fmt.Errorf("vectors: file truncated (%d bytes, want %d)", r.Len(), want)
	}

	return &VectorTable{path: path, r: r, rows: rows, dims: dims}, nil
}

// Shape returns the number of stored vectors and their dimensionality.
func (t *VectorTable) Shape() (rows, dims int) {
	return t.rows, t.dims
}

// Path returns the mapped file path.
func (t *VectorTable) Path() string { return t.path }

// Row reads vector row i.
func (t *VectorTable) Row(i int) ([]float32, error) {
	if i < 0 || i >= t.rows {
		return nil, fmt.Errorf("vectors: row %d out of range [0, %d)", i, t.rows)
	}

	buf := make([]byte, t.dims*4)
	off := int64(vectorsHeaderSize) + int64(i)*int64(t.dims)*4
	if _, err := t.r.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("vectors: read row %d: %w", i, err)
	}

	vec := make([]float32, t.dims)
	for j := range vec {
		vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[j*4:]))
	}
	return vec, nil
}

// Close unmaps the file.
func (t *VectorTable) Close() error {
	if t.r == nil {
		return nil
	}
	err := t.r.Close()
	t.r = nil
	return err
}
