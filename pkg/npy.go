package extract

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table holds the three accumulated result columns. The columns are
// index-aligned: one entry per qualifying physics frame, in file order.
type Table struct {
	TrueE   []float32
	TrueDec []float32
	OW      []float64
}

func (t *Table) Append(trueE float32, trueDec float32, ow float64) {
	t.TrueE = append(t.TrueE, trueE)
	t.TrueDec = append(t.TrueDec, trueDec)
	t.OW = append(t.OW, ow)
}

func (t *Table) Rows() int {
	return len(t.TrueE)
}

func (t *Table) validate() error {
	if len(t.TrueE) != len(t.TrueDec) || len(t.TrueE) != len(t.OW) {
		return fmt.Errorf("table columns have unequal lengths: %d/%d/%d",
			len(t.TrueE), len(t.TrueDec), len(t.OW))
	}
	return nil
}

var npyMagic = []byte("\x93NUMPY")

const npyDescr = "[('trueE', '<f4'), ('trueDec', '<f4'), ('ow', '<f8')]"

// npyRow mirrors the record dtype above: 16 packed little-endian bytes.
type npyRow struct {
	TrueE   float32
	TrueDec float32
	OW      float64
}

// WriteNpy writes the table as a NumPy .npy version 1.0 file with a
// structured record dtype. Zero rows still produces a valid file.
func WriteNpy(fname string, table *Table) error {
	if err := table.validate(); err != nil {
		return err
	}

	file, err := os.Create(fname)
	if err != nil {
		return &ErrOpenFile{Filename: fname, Err: err}
	}
	defer file.Close()

	header := fmt.Sprintf("{'descr': %s, 'fortran_order': False, 'shape': (%d,), }",
		npyDescr, table.Rows())
	// Pad with spaces so the data block starts on a 64-byte boundary,
	// terminated by a newline as the format requires.
	preamble := len(npyMagic) + 2 + 2
	padded := (preamble+len(header)+1+63)/64*64 - preamble
	header = header + strings.Repeat(" ", padded-len(header)-1) + "\n"

	buffer := new(bytes.Buffer)
	buffer.Write(npyMagic)
	buffer.WriteByte(1)
	buffer.WriteByte(0)
	binary.Write(buffer, binary.LittleEndian, uint16(len(header)))
	buffer.WriteString(header)

	rows := make([]npyRow, table.Rows())
	for i := range rows {
		rows[i] = npyRow{TrueE: table.TrueE[i], TrueDec: table.TrueDec[i], OW: table.OW[i]}
	}
	binary.Write(buffer, binary.LittleEndian, rows)

	_, err = file.Write(buffer.Bytes())
	return err
}

// ReadNpy reads a file written by WriteNpy back into a Table.
func ReadNpy(fname string) (*Table, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	defer file.Close()

	magic := make([]byte, len(npyMagic))
	if _, err := io.ReadFull(file, magic); err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	if !bytes.Equal(magic, npyMagic) {
		return nil, fmt.Errorf("%q is not a npy file", fname)
	}

	version := make([]byte, 2)
	if _, err := io.ReadFull(file, version); err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	if version[0] != 1 {
		return nil, fmt.Errorf("unsupported npy version %d.%d in %q", version[0], version[1], fname)
	}

	var headerLen uint16
	if err := binary.Read(file, binary.LittleEndian, &headerLen); err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	headerBinary := make([]byte, headerLen)
	if _, err := io.ReadFull(file, headerBinary); err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	header := string(headerBinary)

	if !strings.Contains(header, npyDescr) {
		return nil, fmt.Errorf("%q has an unexpected dtype, want %s", fname, npyDescr)
	}
	rows, err := parseShape(header)
	if err != nil {
		return nil, fmt.Errorf("parsing npy header of %q: %w", fname, err)
	}

	data := make([]npyRow, rows)
	if err := binary.Read(file, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("reading %d rows from %q: %w", rows, fname, err)
	}

	table := &Table{
		TrueE:   make([]float32, rows),
		TrueDec: make([]float32, rows),
		OW:      make([]float64, rows),
	}
	for i, row := range data {
		table.TrueE[i] = row.TrueE
		table.TrueDec[i] = row.TrueDec
		table.OW[i] = row.OW
	}
	return table, nil
}

func parseShape(header string) (int, error) {
	start := strings.Index(header, "'shape': (")
	if start < 0 {
		return 0, fmt.Errorf("no shape entry in header %q", header)
	}
	rest := header[start+len("'shape': ("):]
	end := strings.IndexAny(rest, ",)")
	if end < 0 {
		return 0, fmt.Errorf("unterminated shape entry in header %q", header)
	}
	return strconv.Atoi(strings.TrimSpace(rest[:end]))
}
