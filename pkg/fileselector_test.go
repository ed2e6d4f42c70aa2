package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFilesSortedAndTruncated(t *testing.T) {
	base := t.TempDir()
	runDir := filepath.Join(base, "140000")
	require.NoError(t, os.MkdirAll(runDir, 0755))

	// Create out of order; selection must come back sorted.
	for _, i := range []int{3, 0, 7, 1, 5, 2, 6, 4} {
		fname := filepath.Join(runDir, fmt.Sprintf("oscNext_140000_%05d.i3f", i))
		require.NoError(t, os.WriteFile(fname, nil, 0644))
	}
	// Files from another pattern are never selected.
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "GeoCalibDetectorStatus.i3g"), nil, 0644))

	files, err := SelectFiles(base, "140000", "oscNext_*.i3f", 5)
	require.NoError(t, err)
	require.Len(t, files, 5)
	for i, fname := range files {
		expected := fmt.Sprintf("oscNext_140000_%05d.i3f", i)
		assert.Equal(t, expected, filepath.Base(fname))
	}

	all, err := SelectFiles(base, "140000", "oscNext_*.i3f", 100)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestSelectFilesEmpty(t *testing.T) {
	files, err := SelectFiles(t.TempDir(), "140000", "oscNext_*.i3f", 100)
	require.NoError(t, err)
	assert.Empty(t, files)
}
