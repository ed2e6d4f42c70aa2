package extract

import (
	"path/filepath"
	"sort"
)

// SelectFiles lists the run's frame files in lexicographic order, truncated
// to the first maxFiles entries. Fewer matches than maxFiles is not an
// error; zero matches yields an empty result downstream.
func SelectFiles(inDir string, run string, pattern string, maxFiles int) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(inDir, run, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	if maxFiles > 0 && len(matches) > maxFiles {
		matches = matches[:maxFiles]
	}
	return matches, nil
}
