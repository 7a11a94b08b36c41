// Package npy reads and writes NumPy .npy version 1.0 files holding
// little-endian float64 arrays in C order.
//
// This is the minimal subset the burst pipeline needs to exchange matrices
// and axis vectors with the ingestion tooling: 1-D and 2-D '<f8' arrays,
// nothing else. Fortran-ordered files and other dtypes are rejected on read.
package npy

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrBadMagic indicates a stream that is not a .npy file.
	ErrBadMagic = errors.New("npy: bad magic")
	// ErrUnsupported indicates a dtype, ordering, or version this package does not handle.
	ErrUnsupported = errors.New("npy: unsupported format")
	// ErrBadHeader indicates a malformed header dictionary.
	ErrBadHeader = errors.New("npy: malformed header")
)

var magic = []byte("\x93NUMPY")

// headerAlign is the total header alignment required by the format spec.
const headerAlign = 64

func writeHeader(w io.Writer, shape string) error {
	dict := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': %s, }", shape)

	// magic + version (2) + header length field (2) + dict + '\n', space-padded
	// to a multiple of 64 bytes.
	prefix := len(magic) + 2 + 2
	total := prefix + len(dict) + 1
	pad := (headerAlign - total%headerAlign) % headerAlign
	dict += strings.Repeat(" ", pad) + "\n"

	if _, err := w.Write(magic); err != nil {
		return err
	}

	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}

	var hlen [2]byte

	binary.LittleEndian.PutUint16(hlen[:], uint16(len(dict)))
	if _, err := w.Write(hlen[:]); err != nil {
		return err
	}

	_, err := w.Write([]byte(dict))

	return err
}

// WriteMatrix writes a rectangular float64 matrix as a 2-D .npy array.
func WriteMatrix(w io.Writer, data [][]float64) error {
	rows := len(data)

	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}

	for _, row := range data {
		if len(row) != cols {
			return fmt.Errorf("%w: ragged rows", ErrUnsupported)
		}
	}

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, fmt.Sprintf("(%d, %d)", rows, cols)); err != nil {
		return err
	}

	for _, row := range data {
		if err := binary.Write(bw, binary.LittleEndian, row); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteVector writes a float64 slice as a 1-D .npy array.
func WriteVector(w io.Writer, data []float64) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, fmt.Sprintf("(%d,)", len(data))); err != nil {
		return err
	}

	if err := binary.Write(bw, binary.LittleEndian, data); err != nil {
		return err
	}

	return bw.Flush()
}

func readHeader(r io.Reader) (shape []int, err error) {
	head := make([]byte, len(magic)+2+2)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, err
	}

	if string(head[:len(magic)]) != string(magic) {
		return nil, ErrBadMagic
	}

	if head[6] != 1 || head[7] != 0 {
		return nil, fmt.Errorf("%w: version %d.%d", ErrUnsupported, head[6], head[7])
	}

	hlen := binary.LittleEndian.Uint16(head[8:])

	dict := make([]byte, hlen)
	if _, err := io.ReadFull(r, dict); err != nil {
		return nil, err
	}

	text := string(dict)
	if !strings.Contains(text, "'descr': '<f8'") {
		return nil, fmt.Errorf("%w: dtype", ErrUnsupported)
	}

	if !strings.Contains(text, "'fortran_order': False") {
		return nil, fmt.Errorf("%w: fortran order", ErrUnsupported)
	}

	return parseShape(text)
}

func parseShape(dict string) ([]int, error) {
	i := strings.Index(dict, "'shape':")
	if i < 0 {
		return nil, ErrBadHeader
	}

	open := strings.Index(dict[i:], "(")
	end := strings.Index(dict[i:], ")")
	if open < 0 || end < open {
		return nil, ErrBadHeader
	}

	var shape []int

	for _, part := range strings.Split(dict[i+open+1:i+end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, ErrBadHeader
		}

		shape = append(shape, n)
	}

	if len(shape) == 0 || len(shape) > 2 {
		return nil, fmt.Errorf("%w: %d-dimensional array", ErrUnsupported, len(shape))
	}

	return shape, nil
}

// ReadMatrix reads a 2-D .npy array. A 1-D array is returned as a single row.
func ReadMatrix(r io.Reader) ([][]float64, error) {
	shape, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	rows, cols := 1, shape[0]
	if len(shape) == 2 {
		rows, cols = shape[0], shape[1]
	}

	data := make([][]float64, rows)
	for i := range data {
		data[i] = make([]float64, cols)
		if err := binary.Read(r, binary.LittleEndian, data[i]); err != nil {
			return nil, err
		}
	}

	return data, nil
}

// ReadVector reads a 1-D .npy array.
func ReadVector(r io.Reader) ([]float64, error) {
	shape, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	if len(shape) != 1 {
		return nil, fmt.Errorf("%w: expected 1-D array", ErrUnsupported)
	}

	data := make([]float64, shape[0])
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}

	return data, nil
}
