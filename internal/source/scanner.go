package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DetectFormat maps a file extension to a Format, ignoring case.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension (use .xlsx or .csv)", ErrUnsupportedFormat, filepath.Base(path))
	}
	return "", fmt.Errorf("%w: %q (use .xlsx or .csv)", ErrUnsupportedFormat, ext)
}

// ScanDir lists the ledger files directly inside dir, sorted by name.
// Spreadsheet lock files ("~$...") and unsupported extensions are skipped.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		return nil, err
	}

	var files []DiscoveredFile
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		format, err := DetectFormat(e.Name())
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue //nolint:nilerr // entry vanished between ReadDir and Info
		}
		files = append(files, DiscoveredFile{
			Path:    filepath.Join(dir, e.Name()),
			Name:    e.Name(),
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}
