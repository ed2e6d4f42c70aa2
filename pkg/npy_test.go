package extract

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNpyHeader(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "table.npy")
	table := &Table{
		TrueE:   []float32{10.5},
		TrueDec: []float32{-0.2},
		OW:      []float64{1e-7},
	}
	require.NoError(t, WriteNpy(fname, table))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)

	assert.Equal(t, []byte("\x93NUMPY"), data[:6])
	assert.Equal(t, byte(1), data[6])
	assert.Equal(t, byte(0), data[7])

	headerLen := binary.LittleEndian.Uint16(data[8:10])
	dataStart := 10 + int(headerLen)
	assert.Equal(t, 0, dataStart%64, "data block must start on a 64-byte boundary")

	header := string(data[10:dataStart])
	assert.Contains(t, header, "'trueE', '<f4'")
	assert.Contains(t, header, "'trueDec', '<f4'")
	assert.Contains(t, header, "'ow', '<f8'")
	assert.Contains(t, header, "'fortran_order': False")
	assert.Contains(t, header, "'shape': (1,)")
	assert.Equal(t, byte('\n'), header[len(header)-1])

	// One 16-byte row follows the header.
	assert.Equal(t, dataStart+16, len(data))
}

func TestNpyRoundTrip(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "table.npy")
	table := &Table{}
	table.Append(10.5, -0.2, 1e-7)
	table.Append(2000, 0.75, 3.2e-9)
	table.Append(0.9, 1.5, 4.4e-6)

	require.NoError(t, WriteNpy(fname, table))

	got, err := ReadNpy(fname)
	require.NoError(t, err)
	assert.Equal(t, table.TrueE, got.TrueE)
	assert.Equal(t, table.TrueDec, got.TrueDec)
	assert.Equal(t, table.OW, got.OW)
}

func TestNpyZeroRows(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "empty.npy")
	require.NoError(t, WriteNpy(fname, &Table{}))

	got, err := ReadNpy(fname)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rows())
}

func TestWriteNpyUnequalColumns(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "bad.npy")
	table := &Table{TrueE: []float32{1, 2}, TrueDec: []float32{0}, OW: []float64{1, 2}}
	err := WriteNpy(fname, table)
	require.Error(t, err)
}

func TestReadNpyRejectsJunk(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "junk.npy")
	require.NoError(t, os.WriteFile(fname, []byte("not a numpy file"), 0644))
	_, err := ReadNpy(fname)
	require.Error(t, err)
}
